package client

import (
	"context"
	"net/http"
	"strings"
)

const libreTranslateProvider = "libretranslate"

// LibreTranslateClient calls a LibreTranslate server.
type LibreTranslateClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewLibreTranslateClient creates a client for the server at baseURL. apiKey may be empty.
func NewLibreTranslateClient(baseURL, apiKey string, httpClient *http.Client) *LibreTranslateClient {
	return &LibreTranslateClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClientOrDefault(httpClient),
	}
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate translates each text in order. An empty source asks the server to detect it.
func (c *LibreTranslateClient) Translate(ctx context.Context, texts []string, source, target string) ([]string, error) {
	if source == "" {
		source = "auto"
	}

	out := make([]string, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			out[i] = text
			continue
		}

		var resp libreResponse
		err := doJSON(ctx, c.httpClient, libreTranslateProvider, http.MethodPost, c.baseURL+"/translate", nil, libreRequest{
			Q:      text,
			Source: source,
			Target: target,
			Format: "text",
			APIKey: c.apiKey,
		}, &resp)
		if err != nil {
			return nil, err
		}
		out[i] = resp.TranslatedText
	}
	return out, nil
}
