package service

import (
	"context"
	"strconv"

	"moveasy-api/internal/client"
	"moveasy-api/internal/models"
	"moveasy-api/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockAreaStore struct {
	mock.Mock
}

func (m *MockAreaStore) SearchAreas(ctx context.Context, q repository.AreaQuery) ([]models.Area, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Area), args.Error(1)
}

type MockBuildingStore struct {
	mock.Mock
}

func (m *MockBuildingStore) SearchBuildings(ctx context.Context, q repository.BuildingQuery) ([]models.Building, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Building), args.Error(1)
}

type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) GetArea(ctx context.Context, id int64) (*models.Area, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Area), args.Error(1)
}

func (m *MockSearchRepository) ListAmenities(ctx context.Context, areaID int64, limit int) ([]models.AmenityRecord, error) {
	args := m.Called(ctx, areaID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AmenityRecord), args.Error(1)
}

func (m *MockSearchRepository) ListTransport(ctx context.Context, areaID int64, limit int) ([]models.TransportRecord, error) {
	args := m.Called(ctx, areaID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TransportRecord), args.Error(1)
}

func (m *MockSearchRepository) ListBuildingsByArea(ctx context.Context, areaID int64, limit int) ([]models.Building, error) {
	args := m.Called(ctx, areaID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Building), args.Error(1)
}

func (m *MockSearchRepository) BuildingCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMapStore struct {
	mock.Mock
}

func (m *MockMapStore) ListMapAreas(ctx context.Context, limit int) ([]models.Area, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Area), args.Error(1)
}

func (m *MockMapStore) ListMapBuildings(ctx context.Context, limit int) ([]models.Building, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Building), args.Error(1)
}

type MockAreaSearcher struct {
	mock.Mock
}

func (m *MockAreaSearcher) SearchAreas(ctx context.Context, term string, limit int) []models.Area {
	args := m.Called(ctx, term, limit)
	return args.Get(0).([]models.Area)
}

type MockBuildingSearcher struct {
	mock.Mock
}

func (m *MockBuildingSearcher) SearchBuildingsFallback(ctx context.Context, term string, limit int) []models.Building {
	args := m.Called(ctx, term, limit)
	return args.Get(0).([]models.Building)
}

type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) ResolveToEnglish(ctx context.Context, text string) string {
	args := m.Called(ctx, text)
	return args.String(0)
}

type MockPlaceLocator struct {
	mock.Mock
}

func (m *MockPlaceLocator) SmartGeocode(ctx context.Context, address string) (*models.Place, bool) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.Place), args.Bool(1)
}

type MockPlaceProvider struct {
	mock.Mock
}

func (m *MockPlaceProvider) SearchURL(q string, limit int, lang string) string {
	return "search?q=" + q + "&limit=" + itoa(limit) + "&lang=" + lang
}

func (m *MockPlaceProvider) ReverseURL(lat, lon float64, lang string) string {
	return "reverse?lat=" + ftoa(lat) + "&lon=" + ftoa(lon) + "&lang=" + lang
}

func (m *MockPlaceProvider) Fetch(ctx context.Context, url string) ([]models.Place, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

type MockRouteProvider struct {
	mock.Mock
}

func (m *MockRouteProvider) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockRouteProvider) Directions(ctx context.Context, profile string, origin, dest models.Coordinate) (client.RouteSummary, error) {
	args := m.Called(ctx, profile, origin, dest)
	return args.Get(0).(client.RouteSummary), args.Error(1)
}

func (m *MockRouteProvider) Matrix(ctx context.Context, profile string, origin models.Coordinate, dests []models.Coordinate) ([]*client.RouteSummary, error) {
	args := m.Called(ctx, profile, origin, dests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*client.RouteSummary), args.Error(1)
}

type MockTranslationProvider struct {
	mock.Mock
}

func (m *MockTranslationProvider) Translate(ctx context.Context, texts []string, source, target string) ([]string, error) {
	args := m.Called(ctx, texts, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, []string, string, string) []string); ok {
		return fn(ctx, texts, source, target), args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAreaWriter struct {
	mock.Mock
}

func (m *MockAreaWriter) ReplaceAreas(ctx context.Context, areas []models.NewArea, truncate bool) (int64, error) {
	args := m.Called(ctx, areas, truncate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAreaWriter) CountAreas(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileStore) ListUserProfiles(ctx context.Context) ([]models.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserProfile), args.Error(1)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func itoa(i int) string { return strconv.Itoa(i) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
