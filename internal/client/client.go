// Package client holds the HTTP clients for the external providers the API depends on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 4 << 20

// ProviderError is returned when an external provider call fails.
// StatusCode is zero when no response was received.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// doJSON sends body (when non-nil) as JSON and decodes a 2xx response into out.
func doJSON(ctx context.Context, hc *http.Client, provider, method, url string, header http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &ProviderError{Provider: provider, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &ProviderError{Provider: provider, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return &ProviderError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncate(string(data), 200))}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func httpClientOrDefault(hc *http.Client) *http.Client {
	if hc == nil {
		return http.DefaultClient
	}
	return hc
}
