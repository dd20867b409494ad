package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"moveasy-api/internal/models"
)

const openRouteProvider = "openrouteservice"

// RouteSummary is the travel time in seconds and distance in meters for one leg.
type RouteSummary struct {
	Duration float64
	Distance float64
}

// OpenRouteClient calls the OpenRouteService directions and matrix APIs.
type OpenRouteClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenRouteClient creates a client. Without an API key every call fails fast.
func NewOpenRouteClient(baseURL, apiKey string, httpClient *http.Client) *OpenRouteClient {
	return &OpenRouteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClientOrDefault(httpClient),
	}
}

// Configured reports whether an API key is set.
func (c *OpenRouteClient) Configured() bool {
	return c.apiKey != ""
}

func (c *OpenRouteClient) header() http.Header {
	h := http.Header{}
	h.Set("Authorization", c.apiKey)
	return h
}

func lonLat(p models.Coordinate) [2]float64 {
	return [2]float64{p.Lon, p.Lat}
}

type directionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Duration float64 `json:"duration"`
			Distance float64 `json:"distance"`
		} `json:"summary"`
	} `json:"routes"`
}

// Directions returns the summary of the first route from origin to dest.
func (c *OpenRouteClient) Directions(ctx context.Context, profile string, origin, dest models.Coordinate) (RouteSummary, error) {
	if !c.Configured() {
		return RouteSummary{}, &ProviderError{Provider: openRouteProvider, Err: fmt.Errorf("api key not configured")}
	}

	var resp directionsResponse
	err := doJSON(ctx, c.httpClient, openRouteProvider, http.MethodPost,
		c.baseURL+"/v2/directions/"+profile, c.header(),
		directionsRequest{Coordinates: [][2]float64{lonLat(origin), lonLat(dest)}}, &resp)
	if err != nil {
		return RouteSummary{}, err
	}
	if len(resp.Routes) == 0 {
		return RouteSummary{}, &ProviderError{Provider: openRouteProvider, StatusCode: http.StatusOK, Err: fmt.Errorf("no route found")}
	}

	s := resp.Routes[0].Summary
	return RouteSummary{Duration: s.Duration, Distance: s.Distance}, nil
}

type matrixRequest struct {
	Locations    [][2]float64 `json:"locations"`
	Sources      []int        `json:"sources"`
	Destinations []int        `json:"destinations"`
	Metrics      []string     `json:"metrics"`
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

// Matrix returns one summary per destination. A nil entry means the provider
// found no route to that destination.
func (c *OpenRouteClient) Matrix(ctx context.Context, profile string, origin models.Coordinate, dests []models.Coordinate) ([]*RouteSummary, error) {
	if !c.Configured() {
		return nil, &ProviderError{Provider: openRouteProvider, Err: fmt.Errorf("api key not configured")}
	}
	if len(dests) == 0 {
		return []*RouteSummary{}, nil
	}

	req := matrixRequest{
		Locations:    make([][2]float64, 0, len(dests)+1),
		Sources:      []int{0},
		Destinations: make([]int, len(dests)),
		Metrics:      []string{"duration", "distance"},
	}
	req.Locations = append(req.Locations, lonLat(origin))
	for i, d := range dests {
		req.Locations = append(req.Locations, lonLat(d))
		req.Destinations[i] = i + 1
	}

	var resp matrixResponse
	if err := doJSON(ctx, c.httpClient, openRouteProvider, http.MethodPost, c.baseURL+"/v2/matrix/"+profile, c.header(), req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Durations) == 0 || len(resp.Distances) == 0 {
		return nil, &ProviderError{Provider: openRouteProvider, StatusCode: http.StatusOK, Err: fmt.Errorf("empty matrix")}
	}

	// destinations are requested as columns, so row 0 holds origin -> dest i
	durations, distances := resp.Durations[0], resp.Distances[0]
	out := make([]*RouteSummary, len(dests))
	for i := range dests {
		if i >= len(durations) || i >= len(distances) || durations[i] == nil || distances[i] == nil {
			continue
		}
		out[i] = &RouteSummary{Duration: *durations[i], Distance: *distances[i]}
	}
	return out, nil
}
