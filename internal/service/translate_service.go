package service

import (
	"context"
	"fmt"
	"strings"

	"moveasy-api/internal/translation"

	"github.com/rs/zerolog/log"
)

const autoLanguage = "auto"

// TranslationCache is the shared (text, language) translation cache
type TranslationCache interface {
	Get(ctx context.Context, text, lang string) (string, bool)
	Set(ctx context.Context, text, lang, translated string)
	Clear(ctx context.Context) error
	ClearLanguage(ctx context.Context, lang string) error
}

// TranslateService translates UI text on behalf of the frontend
type TranslateService struct {
	provider translation.Provider
	cache    TranslationCache
}

// NewTranslateService creates a new translate service
func NewTranslateService(provider translation.Provider, cache TranslationCache) *TranslateService {
	return &TranslateService{provider: provider, cache: cache}
}

// Text translates a single string into target.
func (s *TranslateService) Text(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" || target == "" {
		return "", fmt.Errorf("%w: text and target are required", ErrInvalidArgument)
	}

	out, err := s.Batch(ctx, []string{text}, source, target)
	if err != nil {
		return "", err
	}
	return out[0], nil
}

// Batch translates texts into target, preserving order. Cached entries are served
// locally and the rest go to the provider in one call.
func (s *TranslateService) Batch(ctx context.Context, texts []string, source, target string) ([]string, error) {
	if texts == nil || target == "" {
		return nil, fmt.Errorf("%w: texts and target are required", ErrInvalidArgument)
	}
	if source == "" {
		source = autoLanguage
	}

	out := make([]string, len(texts))
	var (
		missing []string
		index   []int
	)
	for i, text := range texts {
		if strings.TrimSpace(text) == "" || source == target {
			out[i] = text
			continue
		}
		if v, ok := s.cache.Get(ctx, text, target); ok {
			out[i] = v
			continue
		}
		missing = append(missing, text)
		index = append(index, i)
	}

	if len(missing) == 0 {
		return out, nil
	}

	translated, err := s.provider.Translate(ctx, missing, source, target)
	if err != nil {
		return nil, fmt.Errorf("service: failed to translate: %w", err)
	}
	if len(translated) != len(missing) {
		return nil, fmt.Errorf("service: provider returned %d translations for %d texts", len(translated), len(missing))
	}

	for i, t := range translated {
		out[index[i]] = t
		s.cache.Set(ctx, missing[i], target, t)
	}
	log.Debug().Int("texts", len(texts)).Int("translated", len(missing)).Str("target", target).Msg("batch translated")
	return out, nil
}

// JSON translates every non-blank string leaf of a decoded JSON document and returns
// a new document of the same shape. Keys are never translated.
func (s *TranslateService) JSON(ctx context.Context, data any, source, target string) (any, error) {
	if data == nil || target == "" {
		return nil, fmt.Errorf("%w: data and target are required", ErrInvalidArgument)
	}

	var leaves []string
	seen := make(map[string]struct{})
	collectLeaves(data, func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		leaves = append(leaves, s)
	})
	if len(leaves) == 0 {
		return data, nil
	}

	translated, err := s.Batch(ctx, leaves, source, target)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]string, len(leaves))
	for i, leaf := range leaves {
		lookup[leaf] = translated[i]
	}
	return rebuild(data, lookup), nil
}

func collectLeaves(v any, visit func(string)) {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) != "" {
			visit(t)
		}
	case map[string]any:
		for _, child := range t {
			collectLeaves(child, visit)
		}
	case []any:
		for _, child := range t {
			collectLeaves(child, visit)
		}
	}
}

func rebuild(v any, lookup map[string]string) any {
	switch t := v.(type) {
	case string:
		if tr, ok := lookup[t]; ok {
			return tr
		}
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = rebuild(child, lookup)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = rebuild(child, lookup)
		}
		return out
	default:
		return v
	}
}

// ClearCache drops cached translations into lang, or all of them when lang is empty.
func (s *TranslateService) ClearCache(ctx context.Context, lang string) error {
	var err error
	if lang == "" {
		err = s.cache.Clear(ctx)
	} else {
		err = s.cache.ClearLanguage(ctx, lang)
	}
	if err != nil {
		return fmt.Errorf("service: failed to clear translation cache: %w", err)
	}
	log.Info().Str("lang", lang).Msg("translation cache cleared")
	return nil
}
