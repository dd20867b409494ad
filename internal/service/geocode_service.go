package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moveasy-api/internal/models"
	"moveasy-api/internal/normalize"
	"moveasy-api/internal/telemetry"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

const (
	defaultGeocodeLimit = 5
	maxGeocodeLimit     = 10
	defaultGeocodeLang  = "en"
	stateSuffix         = ", California, USA"
)

var usCountryNames = map[string]struct{}{
	"United States":            {},
	"United States of America": {},
	"USA":                      {},
}

// Translator turns free text into an English search term
type Translator interface {
	ResolveToEnglish(ctx context.Context, text string) string
}

// PlaceProvider is the external geocoder
type PlaceProvider interface {
	SearchURL(q string, limit int, lang string) string
	ReverseURL(lat, lon float64, lang string) string
	Fetch(ctx context.Context, url string) ([]models.Place, error)
}

// GeocodeCache stores geocode payloads by request URL
type GeocodeCache interface {
	Get(key string) (models.GeocodeResult, bool)
	Add(key string, value models.GeocodeResult) bool
}

// NewGeocodeCache creates the bounded, expiring cache shared by search and reverse lookups
func NewGeocodeCache(size int, ttl time.Duration) *expirable.LRU[string, models.GeocodeResult] {
	return expirable.NewLRU[string, models.GeocodeResult](size, nil, ttl)
}

// GeocodeService wraps the external geocoder with translation, US filtering and caching
type GeocodeService struct {
	provider   PlaceProvider
	translator Translator
	cache      GeocodeCache
}

// NewGeocodeService creates a new geocode service
func NewGeocodeService(provider PlaceProvider, translator Translator, cache GeocodeCache) *GeocodeService {
	return &GeocodeService{provider: provider, translator: translator, cache: cache}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultGeocodeLimit
	}
	if limit > maxGeocodeLimit {
		return maxGeocodeLimit
	}
	return limit
}

func isUSPlace(p models.Place) bool {
	_, ok := usCountryNames[p.CountryName()]
	return ok
}

func filterUS(places []models.Place) []models.Place {
	out := make([]models.Place, 0, len(places))
	for _, p := range places {
		if isUSPlace(p) {
			out = append(out, p)
		}
	}
	return out
}

// Search geocodes free text to US places. When the US filter removes every result it
// retries once with a California suffix. Provider failures on either call are returned
// and nothing is cached.
func (s *GeocodeService) Search(ctx context.Context, q string, limit int, lang string) (models.GeocodeResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return models.GeocodeResult{}, fmt.Errorf("%w: query cannot be empty", ErrInvalidArgument)
	}
	limit = clampLimit(limit)
	if lang == "" {
		lang = defaultGeocodeLang
	}

	key := s.provider.SearchURL(q, limit, lang)
	if res, ok := s.cache.Get(key); ok {
		telemetry.CacheHit("geocode", true)
		return res, nil
	}
	telemetry.CacheHit("geocode", false)

	query := q
	if s.translator != nil {
		query = s.translator.ResolveToEnglish(ctx, q)
	}

	raw, err := s.provider.Fetch(ctx, s.provider.SearchURL(query, limit, lang))
	if err != nil {
		return models.GeocodeResult{}, fmt.Errorf("service: failed to geocode: %w", err)
	}

	candidates := filterUS(raw)
	if len(candidates) == 0 && len(raw) > 0 {
		telemetry.ProviderFallbacks.WithLabelValues("geocode", "state_suffix").Inc()
		log.Debug().Str("query", query).Int("raw", len(raw)).Msg("no US results, retrying with state suffix")

		retried, err := s.provider.Fetch(ctx, s.provider.SearchURL(query+stateSuffix, limit, lang))
		if err != nil {
			return models.GeocodeResult{}, fmt.Errorf("service: failed to geocode with state suffix: %w", err)
		}
		candidates = filterUS(retried)
	}

	res := models.NewGeocodeResult(candidates)
	s.cache.Add(key, res)
	return res, nil
}

// SmartGeocode tries progressively simpler forms of an address and returns the first
// place that has coordinates.
func (s *GeocodeService) SmartGeocode(ctx context.Context, address string) (*models.Place, bool) {
	for _, q := range normalize.GeocodingQueries(address) {
		res, err := s.Search(ctx, q, defaultGeocodeLimit, defaultGeocodeLang)
		if err != nil {
			log.Warn().Err(err).Str("query", q).Msg("smart geocode attempt failed")
			continue
		}
		for _, p := range res.Candidates {
			if p.Lat != nil && p.Lon != nil {
				place := p
				return &place, true
			}
		}
	}
	return nil, false
}
