package client

import (
	"context"
	"fmt"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

const googleTranslateProvider = "google-translate"

// GoogleTranslateClient uses the Cloud Translation v2 API with an API key.
type GoogleTranslateClient struct {
	client *translate.Client
}

// NewGoogleTranslateClient creates a client authenticated by apiKey.
func NewGoogleTranslateClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GoogleTranslateClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	c, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, &ProviderError{Provider: googleTranslateProvider, Err: err}
	}
	return &GoogleTranslateClient{client: c}, nil
}

// Translate translates texts into target. source "" or "auto" lets Google detect it.
func (c *GoogleTranslateClient) Translate(ctx context.Context, texts []string, source, target string) ([]string, error) {
	targetTag, err := language.Parse(target)
	if err != nil {
		return nil, &ProviderError{Provider: googleTranslateProvider, Err: fmt.Errorf("invalid target language %q: %w", target, err)}
	}

	opts := &translate.Options{Format: translate.Text}
	if tag, ok := sourceTag(source); ok {
		opts.Source = tag
	}

	res, err := c.client.Translate(ctx, texts, targetTag, opts)
	if err != nil {
		return nil, &ProviderError{Provider: googleTranslateProvider, Err: err}
	}

	out := make([]string, len(res))
	for i, t := range res {
		out[i] = t.Text
	}
	return out, nil
}

// Close releases the underlying client.
func (c *GoogleTranslateClient) Close() error {
	return c.client.Close()
}

func sourceTag(source string) (language.Tag, bool) {
	if source == "" || source == "auto" {
		return language.Und, false
	}
	tag, err := language.Parse(source)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
