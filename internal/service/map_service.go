package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"moveasy-api/internal/models"
	"moveasy-api/internal/normalize"

	"github.com/rs/zerolog/log"
)

const (
	// NeighborhoodZoom is the zoom level from which the map shows areas instead of buildings.
	NeighborhoodZoom = 14.5
	mapListLimit     = 1000
)

// MapStore lists map content when no location is given
type MapStore interface {
	ListMapAreas(ctx context.Context, limit int) ([]models.Area, error)
	ListMapBuildings(ctx context.Context, limit int) ([]models.Building, error)
}

// MapService picks the map layer for a zoom level and fills it
type MapService struct {
	store      MapStore
	areas      AreaSearcher
	buildings  BuildingSearcher
	translator Translator
}

// NewMapService creates a new map service. translator may be nil.
func NewMapService(store MapStore, areas AreaSearcher, buildings BuildingSearcher, translator Translator) *MapService {
	return &MapService{store: store, areas: areas, buildings: buildings, translator: translator}
}

func (s *MapService) locationTerm(ctx context.Context, location string) string {
	location = strings.TrimSpace(location)
	if location == "" || strings.EqualFold(location, "all") {
		return ""
	}
	if s.translator != nil {
		location = s.translator.ResolveToEnglish(ctx, location)
	}
	return normalize.Normalize(location)
}

// DataForZoom returns areas at or above NeighborhoodZoom and buildings below it. A
// location narrows the list through the area or building resolver; otherwise the full
// list is read from the store. Both layers keep only items whose area tags intersect
// filters.Tags.
func (s *MapService) DataForZoom(ctx context.Context, zoom float64, filters models.MapFilters) (models.MapData, error) {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return models.MapData{}, fmt.Errorf("%w: invalid zoom: %v", ErrInvalidArgument, zoom)
	}

	term := s.locationTerm(ctx, filters.Location)
	data := models.MapData{
		Zoom:      zoom,
		Areas:     []models.Area{},
		Buildings: []models.Building{},
	}

	if zoom >= NeighborhoodZoom {
		data.Level = models.MapLevelAreas
		areas, err := s.mapAreas(ctx, term)
		if err != nil {
			return models.MapData{}, err
		}
		data.Areas = filterAreas(areas, filters.Tags)
		log.Debug().Float64("zoom", zoom).Str("term", term).Int("areas", len(data.Areas)).Msg("map areas loaded")
		return data, nil
	}

	data.Level = models.MapLevelBuildings
	buildings, err := s.mapBuildings(ctx, term)
	if err != nil {
		return models.MapData{}, err
	}
	data.Buildings = filterBuildings(buildings, filters.Tags, nil)
	log.Debug().Float64("zoom", zoom).Str("term", term).Int("buildings", len(data.Buildings)).Msg("map buildings loaded")
	return data, nil
}

func (s *MapService) mapAreas(ctx context.Context, term string) ([]models.Area, error) {
	if term != "" {
		return s.areas.SearchAreas(ctx, term, 0), nil
	}
	areas, err := s.store.ListMapAreas(ctx, mapListLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list map areas: %w", err)
	}
	return areas, nil
}

func (s *MapService) mapBuildings(ctx context.Context, term string) ([]models.Building, error) {
	if term != "" {
		return s.buildings.SearchBuildingsFallback(ctx, term, 0), nil
	}
	buildings, err := s.store.ListMapBuildings(ctx, mapListLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list map buildings: %w", err)
	}
	return buildings, nil
}

// filterAreas keeps areas whose tags intersect tags. An empty tag list keeps everything.
func filterAreas(areas []models.Area, tags []string) []models.Area {
	if len(tags) == 0 {
		return areas
	}

	out := []models.Area{}
	for _, a := range areas {
		if intersects(a.AreaTags, tags) {
			out = append(out, a)
		}
	}
	return out
}
