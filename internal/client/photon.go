package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"moveasy-api/internal/models"
)

const photonProvider = "photon"

// PhotonClient queries a Photon geocoder (https://photon.komoot.io).
type PhotonClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPhotonClient creates a Photon client rooted at baseURL.
func NewPhotonClient(baseURL string, httpClient *http.Client) *PhotonClient {
	return &PhotonClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClientOrDefault(httpClient),
	}
}

// SearchURL builds the forward geocoding URL.
func (c *PhotonClient) SearchURL(q string, limit int, lang string) string {
	v := url.Values{}
	v.Set("q", q)
	v.Set("limit", strconv.Itoa(limit))
	v.Set("lang", lang)
	return c.baseURL + "/api?" + v.Encode()
}

// ReverseURL builds the reverse geocoding URL.
func (c *PhotonClient) ReverseURL(lat, lon float64, lang string) string {
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	v.Set("lang", lang)
	return c.baseURL + "/reverse?" + v.Encode()
}

// Fetch runs a request built by SearchURL or ReverseURL and normalizes every feature.
func (c *PhotonClient) Fetch(ctx context.Context, rawURL string) ([]models.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &ProviderError{Provider: photonProvider, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: photonProvider, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ProviderError{Provider: photonProvider, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: photonProvider, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncate(string(data), 200))}
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, &ProviderError{Provider: photonProvider, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode features: %w", err)}
	}

	places := make([]models.Place, 0, len(fc.Features))
	for _, f := range fc.Features {
		places = append(places, NormalizeFeature(f))
	}
	return places, nil
}

// NormalizeFeature flattens a Photon feature into a Place.
func NormalizeFeature(f *geojson.Feature) models.Place {
	props := f.Properties
	p := models.Place{
		Name:        prop(props, "name"),
		Street:      prop(props, "street"),
		HouseNumber: prop(props, "housenumber"),
		City:        prop(props, "city", "town", "village", "suburb", "neighbourhood"),
		County:      prop(props, "county", "district", "borough"),
		State:       prop(props, "state"),
		Country:     prop(props, "country"),
		Postcode:    prop(props, "postcode"),
	}

	if pt, ok := f.Geometry.(orb.Point); ok {
		lon, lat := pt.Lon(), pt.Lat()
		p.Lat = &lat
		p.Lon = &lon
	}

	streetLine := strings.TrimSpace(deref(p.HouseNumber) + " " + deref(p.Street))

	parts := make([]string, 0, 5)
	for _, s := range []string{streetLine, deref(p.City), deref(p.State), deref(p.Postcode), deref(p.Country)} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	p.Address = strings.Join(parts, ", ")

	return p
}

// prop returns the first non-empty property among keys. Numbers are formatted as text.
func prop(props geojson.Properties, keys ...string) *string {
	for _, k := range keys {
		var s string
		switch v := props[k].(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if s != "" {
			return &s
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
