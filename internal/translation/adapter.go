package translation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"moveasy-api/internal/telemetry"
)

const (
	targetLanguage  = "en"
	providerTimeout = 10 * time.Second
)

var (
	// ErrNoProvider is returned when text needs a provider but none is configured.
	ErrNoProvider = errors.New("translation: no provider configured")
	// ErrEmptyTranslation is returned when the provider answers with blank text.
	ErrEmptyTranslation = errors.New("translation: provider returned empty text")
)

// Provider is a machine translation backend.
type Provider interface {
	Translate(ctx context.Context, texts []string, source, target string) ([]string, error)
}

// Adapter turns free text typed in another language into an English search term.
type Adapter struct {
	dict     *Dictionary
	cache    *Cache
	provider Provider
	timeout  time.Duration
}

// NewAdapter creates an adapter. provider may be nil, in which case untranslated
// input is passed through after the dictionary and cache miss.
func NewAdapter(dict *Dictionary, cache *Cache, provider Provider) *Adapter {
	if dict == nil {
		dict = NewDictionary()
	}
	return &Adapter{
		dict:     dict,
		cache:    cache,
		provider: provider,
		timeout:  providerTimeout,
	}
}

// ResolveToEnglish returns the best English rendering of text. It never fails:
// on any provider problem the input is returned unchanged.
func (a *Adapter) ResolveToEnglish(ctx context.Context, text string) string {
	out, err := a.Resolve(ctx, text)
	if err != nil {
		log.Warn().Err(err).Str("text", text).Msg("translation: provider failed, using original text")
		telemetry.ProviderFallbacks.WithLabelValues("translation", "passthrough").Inc()
	}
	return out
}

// Resolve is ResolveToEnglish with the provider failure made explicit. On error the
// returned string is the unchanged input.
func (a *Adapter) Resolve(ctx context.Context, text string) (string, error) {
	if !ContainsCJK(text) {
		return text, nil
	}

	if v, ok := a.dict.Lookup(text); ok {
		log.Debug().Str("text", text).Str("translated", v).Msg("translation: dictionary hit")
		return v, nil
	}

	if v, ok := a.dict.ReplaceFirst(text); ok {
		log.Debug().Str("text", text).Str("translated", v).Msg("translation: partial dictionary hit")
		return v, nil
	}

	if a.cache != nil {
		if v, ok := a.cache.Get(ctx, text, targetLanguage); ok {
			return v, nil
		}
	}

	if a.provider == nil {
		return text, ErrNoProvider
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.provider.Translate(callCtx, []string{text}, DetectLanguage(text), targetLanguage)
	if err != nil {
		return text, err
	}
	if len(out) == 0 || strings.TrimSpace(out[0]) == "" {
		return text, ErrEmptyTranslation
	}

	translated := strings.TrimSpace(out[0])
	if a.cache != nil {
		a.cache.Set(ctx, text, targetLanguage, translated)
	}
	return translated, nil
}
