package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"moveasy-api/internal/client"
	"moveasy-api/internal/models"
	"moveasy-api/internal/telemetry"

	"github.com/rs/zerolog/log"
)

const (
	earthRadiusMiles    = 3959.0
	metersPerMile       = 1609.34
	milesPerMeter       = 0.000621371
	feetPerMeter        = 3.28084
	estimateSpeedMPH    = 30.0
	estimateMode        = "straight-line"
	defaultRouteProfile = "driving-car"
)

// routeProfiles maps accepted travel modes to routing profiles. Transit has no
// profile of its own and is approximated by driving.
var routeProfiles = map[string]string{
	"driving-car":     "driving-car",
	"foot-walking":    "foot-walking",
	"cycling-regular": "cycling-regular",
	"driving":         "driving-car",
	"walking":         "foot-walking",
	"cycling":         "cycling-regular",
	"bicycling":       "cycling-regular",
	"transit":         "driving-car",
}

// RouteProvider computes road routes between coordinates
type RouteProvider interface {
	Configured() bool
	Directions(ctx context.Context, profile string, origin, dest models.Coordinate) (client.RouteSummary, error)
	Matrix(ctx context.Context, profile string, origin models.Coordinate, dests []models.Coordinate) ([]*client.RouteSummary, error)
}

// CommuteService estimates travel time, preferring a routing provider and falling
// back to straight-line distance.
type CommuteService struct {
	routes RouteProvider
}

// NewCommuteService creates a new commute service. routes may be nil.
func NewCommuteService(routes RouteProvider) *CommuteService {
	return &CommuteService{routes: routes}
}

// RouteProfile resolves a travel mode to a routing profile.
func RouteProfile(mode string) string {
	if p, ok := routeProfiles[strings.ToLower(strings.TrimSpace(mode))]; ok {
		return p
	}
	return defaultRouteProfile
}

func (s *CommuteService) routingAvailable() bool {
	return s.routes != nil && s.routes.Configured()
}

// GetCommuteTime returns the route between origin and dest. It never fails: without a
// usable provider the result is a straight-line estimate.
func (s *CommuteService) GetCommuteTime(ctx context.Context, origin, dest models.Coordinate, mode string) models.CommuteResult {
	profile := RouteProfile(mode)
	if s.routingAvailable() {
		route, err := s.routes.Directions(ctx, profile, origin, dest)
		if err == nil {
			return routeResult(route, profile, nil)
		}
		log.Warn().Err(err).Str("profile", profile).Msg("routing failed, using straight-line estimate")
	}

	telemetry.ProviderFallbacks.WithLabelValues("routing", "estimate").Inc()
	return EstimateCommute(origin, dest)
}

// GetBatchCommuteTimes returns one result per destination, in order. Destinations the
// provider cannot route get a straight-line estimate.
func (s *CommuteService) GetBatchCommuteTimes(ctx context.Context, origin models.Coordinate, dests []models.Coordinate, mode string) []models.CommuteResult {
	results := make([]models.CommuteResult, len(dests))
	if len(dests) == 0 {
		return results
	}

	profile := RouteProfile(mode)
	var routes []*client.RouteSummary
	if s.routingAvailable() {
		var err error
		routes, err = s.routes.Matrix(ctx, profile, origin, dests)
		if err != nil {
			log.Warn().Err(err).Str("profile", profile).Int("destinations", len(dests)).Msg("routing matrix failed, using straight-line estimates")
			routes = nil
		}
	}

	for i, d := range dests {
		dest := d
		if i < len(routes) && routes[i] != nil {
			results[i] = routeResult(*routes[i], profile, &dest)
			continue
		}
		telemetry.ProviderFallbacks.WithLabelValues("routing", "estimate").Inc()
		results[i] = EstimateCommute(origin, dest)
		results[i].Destination = &dest
	}
	return results
}

func routeResult(route client.RouteSummary, profile string, dest *models.Coordinate) models.CommuteResult {
	return models.CommuteResult{
		Destination:  dest,
		Duration:     route.Duration,
		Distance:     route.Distance,
		DurationText: FormatDuration(route.Duration),
		DistanceText: FormatDistance(route.Distance),
		Mode:         profile,
	}
}

// HaversineMiles returns the great-circle distance between two points in miles.
func HaversineMiles(a, b models.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

// EstimateCommute approximates a drive at a constant 30 mph along the great circle.
func EstimateCommute(origin, dest models.Coordinate) models.CommuteResult {
	miles := HaversineMiles(origin, dest)
	minutes := math.Round(miles / estimateSpeedMPH * 60)

	return models.CommuteResult{
		Duration:     minutes * 60,
		Distance:     miles * metersPerMile,
		DurationText: FormatDuration(minutes * 60),
		DistanceText: fmt.Sprintf("%.1f mi", miles),
		Mode:         estimateMode,
		IsEstimate:   true,
	}
}

// FormatDuration renders seconds as "1 hr 30 min", "15 min" or "< 1 min".
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "N/A"
	}

	total := int(seconds)
	hours, minutes := total/3600, (total%3600)/60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d hr %d min", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d hr", hours)
	case minutes > 0:
		return fmt.Sprintf("%d min", minutes)
	default:
		return "< 1 min"
	}
}

// FormatDistance renders meters in miles, or in feet below a tenth of a mile.
func FormatDistance(meters float64) string {
	if meters <= 0 {
		return "N/A"
	}

	miles := meters * milesPerMeter
	if miles < 0.1 {
		return fmt.Sprintf("%d ft", int(math.Round(meters*feetPerMeter)))
	}
	return fmt.Sprintf("%.1f mi", miles)
}
