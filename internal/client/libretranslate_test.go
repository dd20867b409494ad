package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibreTranslateClient_Translate(t *testing.T) {
	var requests []libreRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/translate", r.URL.Path)

		var req libreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		translations := map[string]string{"曼哈顿": "Manhattan", "中央公园": "Central Park"}
		json.NewEncoder(w).Encode(libreResponse{TranslatedText: translations[req.Q]})
	}))
	defer srv.Close()

	c := NewLibreTranslateClient(srv.URL, "", srv.Client())
	out, err := c.Translate(context.Background(), []string{"曼哈顿", " ", "中央公园"}, "zh", "en")
	require.NoError(t, err)

	assert.Equal(t, []string{"Manhattan", " ", "Central Park"}, out)
	require.Len(t, requests, 2)
	assert.Equal(t, libreRequest{Q: "曼哈顿", Source: "zh", Target: "en", Format: "text"}, requests[0])
}

func TestLibreTranslateClient_DefaultsToAutoSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req libreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "auto", req.Source)
		json.NewEncoder(w).Encode(libreResponse{TranslatedText: "你好"})
	}))
	defer srv.Close()

	c := NewLibreTranslateClient(srv.URL, "", srv.Client())
	out, err := c.Translate(context.Background(), []string{"hello"}, "", "zh")
	require.NoError(t, err)
	assert.Equal(t, []string{"你好"}, out)
}

func TestLibreTranslateClient_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewLibreTranslateClient(srv.URL, "", srv.Client())
	_, err := c.Translate(context.Background(), []string{"曼哈顿"}, "zh", "en")

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "libretranslate", perr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
}
