package service

import (
	"context"
	"fmt"
	"math"

	"moveasy-api/internal/models"
	"moveasy-api/internal/telemetry"
)

// Reverse finds the places at the given coordinates. Results are neither translated
// nor filtered to the US.
func (s *GeocodeService) Reverse(ctx context.Context, lat, lon float64, lang string) (models.GeocodeResult, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return models.GeocodeResult{}, fmt.Errorf("%w: invalid latitude: %f", ErrInvalidArgument, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return models.GeocodeResult{}, fmt.Errorf("%w: invalid longitude: %f", ErrInvalidArgument, lon)
	}
	if lang == "" {
		lang = defaultGeocodeLang
	}

	url := s.provider.ReverseURL(lat, lon, lang)
	if res, ok := s.cache.Get(url); ok {
		telemetry.CacheHit("geocode", true)
		return res, nil
	}
	telemetry.CacheHit("geocode", false)

	places, err := s.provider.Fetch(ctx, url)
	if err != nil {
		return models.GeocodeResult{}, fmt.Errorf("service: failed to reverse geocode: %w", err)
	}

	res := models.NewGeocodeResult(places)
	s.cache.Add(url, res)
	return res, nil
}
