package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moveasy-api/internal/models"
	"moveasy-api/internal/service"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGeoService is a mock implementation of the GeoService interface
type MockGeoService struct {
	mock.Mock
}

func (m *MockGeoService) Search(ctx context.Context, q string, limit int, lang string) (models.GeocodeResult, error) {
	args := m.Called(ctx, q, limit, lang)
	return args.Get(0).(models.GeocodeResult), args.Error(1)
}

func (m *MockGeoService) Reverse(ctx context.Context, lat, lon float64, lang string) (models.GeocodeResult, error) {
	args := m.Called(ctx, lat, lon, lang)
	return args.Get(0).(models.GeocodeResult), args.Error(1)
}

type MockTranslateService struct {
	mock.Mock
}

func (m *MockTranslateService) Text(ctx context.Context, text, source, target string) (string, error) {
	args := m.Called(ctx, text, source, target)
	return args.String(0), args.Error(1)
}

func (m *MockTranslateService) Batch(ctx context.Context, texts []string, source, target string) ([]string, error) {
	args := m.Called(ctx, texts, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTranslateService) JSON(ctx context.Context, data any, source, target string) (any, error) {
	args := m.Called(ctx, data, source, target)
	return args.Get(0), args.Error(1)
}

func (m *MockTranslateService) ClearCache(ctx context.Context, lang string) error {
	args := m.Called(ctx, lang)
	return args.Error(0)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) PerformSearch(ctx context.Context, rawQuery string, filters models.SearchFilters) models.SearchResult {
	args := m.Called(ctx, rawQuery, filters)
	return args.Get(0).(models.SearchResult)
}

func (m *MockSearchService) GetAreaDetails(ctx context.Context, id int64) (models.AreaDetails, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.AreaDetails), args.Error(1)
}

func (m *MockSearchService) LocateArea(ctx context.Context, keyword string) (models.LocateResult, bool) {
	args := m.Called(ctx, keyword)
	return args.Get(0).(models.LocateResult), args.Bool(1)
}

func (m *MockSearchService) BuildingCategories(ctx context.Context) []models.BuildingCategory {
	args := m.Called(ctx)
	return args.Get(0).([]models.BuildingCategory)
}

type MockMapService struct {
	mock.Mock
}

func (m *MockMapService) DataForZoom(ctx context.Context, zoom float64, filters models.MapFilters) (models.MapData, error) {
	args := m.Called(ctx, zoom, filters)
	return args.Get(0).(models.MapData), args.Error(1)
}

type MockAreaSyncService struct {
	mock.Mock
}

func (m *MockAreaSyncService) Sync(ctx context.Context, data []byte, fileType string, truncate bool) (service.SyncResult, error) {
	args := m.Called(ctx, data, fileType, truncate)
	return args.Get(0).(service.SyncResult), args.Error(1)
}

func (m *MockAreaSyncService) SyncFiles(ctx context.Context, paths []string, truncate bool) (service.SyncResult, error) {
	args := m.Called(ctx, paths, truncate)
	return args.Get(0).(service.SyncResult), args.Error(1)
}

func (m *MockAreaSyncService) Status(ctx context.Context) (models.AreaStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.AreaStatus), args.Error(1)
}

type MockCommuteService struct {
	mock.Mock
}

func (m *MockCommuteService) GetCommuteTime(ctx context.Context, origin, dest models.Coordinate, mode string) models.CommuteResult {
	args := m.Called(ctx, origin, dest, mode)
	return args.Get(0).(models.CommuteResult)
}

func (m *MockCommuteService) GetBatchCommuteTimes(ctx context.Context, origin models.Coordinate, dests []models.Coordinate, mode string) []models.CommuteResult {
	args := m.Called(ctx, origin, dests, mode)
	return args.Get(0).([]models.CommuteResult)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Check(ctx context.Context, token string) (models.AdminCheck, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.AdminCheck), args.Error(1)
}

func (m *MockAdminService) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserProfile), args.Error(1)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// perform sends a request through a router and decodes the JSON response body.
func perform(t *testing.T, r http.Handler, method, path, body string, header http.Header) (int, interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	return w.Code, decoded
}
