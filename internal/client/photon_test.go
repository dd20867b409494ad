package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const photonPayload = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-74.0036, 40.7336]},
      "properties": {
        "name": "West Village",
        "housenumber": "10",
        "street": "Bleecker Street",
        "town": "New York",
        "borough": "Manhattan",
        "state": "New York",
        "postcode": "10014",
        "country": "United States"
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [2.35, 48.85]},
      "properties": {"name": "Paris", "country": "France"}
    }
  ]
}`

func TestPhotonClient_URLs(t *testing.T) {
	c := NewPhotonClient("https://photon.example.com/", nil)

	assert.Equal(t, "https://photon.example.com/api?lang=en&limit=5&q=west+village", c.SearchURL("west village", 5, "en"))
	assert.Equal(t, "https://photon.example.com/reverse?lang=en&lat=40.7336&lon=-74.0036", c.ReverseURL(40.7336, -74.0036, "en"))
}

func TestPhotonClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(photonPayload))
	}))
	defer srv.Close()

	c := NewPhotonClient(srv.URL, srv.Client())
	places, err := c.Fetch(context.Background(), c.SearchURL("west village", 5, "en"))
	require.NoError(t, err)
	require.Len(t, places, 2)

	first := places[0]
	assert.Equal(t, "West Village", *first.Name)
	assert.Equal(t, "New York", *first.City)
	assert.Equal(t, "Manhattan", *first.County)
	assert.Equal(t, "10 Bleecker Street, New York, New York, 10014, United States", first.Address)
	assert.InDelta(t, 40.7336, *first.Lat, 1e-9)
	assert.InDelta(t, -74.0036, *first.Lon, 1e-9)

	second := places[1]
	assert.Nil(t, second.City)
	assert.Nil(t, second.Street)
	assert.Equal(t, "France", second.Address)
}

func TestPhotonClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "server error", status: http.StatusBadGateway, body: "bad gateway", wantStatus: http.StatusBadGateway},
		{name: "invalid body", status: http.StatusOK, body: "not json", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewPhotonClient(srv.URL, srv.Client())
			_, err := c.Fetch(context.Background(), c.SearchURL("x", 5, "en"))
			require.Error(t, err)

			var perr *ProviderError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "photon", perr.Provider)
			assert.Equal(t, tt.wantStatus, perr.StatusCode)
		})
	}
}
