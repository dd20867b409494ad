package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"moveasy-api/internal/models"
	"moveasy-api/internal/normalize"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	searchAreaLimit     = 5
	searchBuildingLimit = 20
	detailAmenityLimit  = 12
	detailBuildingLimit = 8
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	labelSeparators = regexp.MustCompile(`[\s_-]+`)
)

var defaultCategories = []string{"apartment", "condo", "townhouse", "studio", "loft", "penthouse"}

// SearchRepository loads the records of an area detail view
type SearchRepository interface {
	GetArea(ctx context.Context, id int64) (*models.Area, error)
	ListAmenities(ctx context.Context, areaID int64, limit int) ([]models.AmenityRecord, error)
	ListTransport(ctx context.Context, areaID int64, limit int) ([]models.TransportRecord, error)
	ListBuildingsByArea(ctx context.Context, areaID int64, limit int) ([]models.Building, error)
	BuildingCategories(ctx context.Context) ([]string, error)
}

// AreaSearcher resolves a term to areas
type AreaSearcher interface {
	SearchAreas(ctx context.Context, term string, limit int) []models.Area
}

// BuildingSearcher resolves a term to buildings when no area matched
type BuildingSearcher interface {
	SearchBuildingsFallback(ctx context.Context, term string, limit int) []models.Building
}

// PlaceLocator geocodes an address that matched no area
type PlaceLocator interface {
	SmartGeocode(ctx context.Context, address string) (*models.Place, bool)
}

// SearchService is the entry point of free-text listing search
type SearchService struct {
	repo       SearchRepository
	areas      AreaSearcher
	buildings  BuildingSearcher
	translator Translator
	locator    PlaceLocator
}

// NewSearchService creates a new search service. locator may be nil.
func NewSearchService(repo SearchRepository, areas AreaSearcher, buildings BuildingSearcher, translator Translator, locator PlaceLocator) *SearchService {
	return &SearchService{
		repo:       repo,
		areas:      areas,
		buildings:  buildings,
		translator: translator,
		locator:    locator,
	}
}

func (s *SearchService) searchTerm(ctx context.Context, raw string) string {
	term := raw
	if s.translator != nil {
		term = s.translator.ResolveToEnglish(ctx, raw)
	}
	return normalize.Normalize(term)
}

// PerformSearch resolves rawQuery to an area with its details or, failing that, to a
// list of buildings. It never returns an error: panics and unexpected failures become
// a result of type error.
func (s *SearchService) PerformSearch(ctx context.Context, rawQuery string, filters models.SearchFilters) (result models.SearchResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("query", rawQuery).Msg("search failed")
			result = models.SearchFailure(fmt.Sprint(rec))
		}
	}()

	term := s.searchTerm(ctx, rawQuery)
	if term == "" {
		return models.BuildingMatch(nil)
	}

	areas := s.areas.SearchAreas(ctx, term, searchAreaLimit)
	if len(areas) > 0 {
		picked := areas[0]
		details, err := s.GetAreaDetails(ctx, picked.ID)
		if err == nil {
			log.Info().Str("term", term).Int64("area_id", picked.ID).Msg("search matched area")
			return models.AreaMatch(picked, filterDetails(details, filters.Tags))
		}
		log.Error().Err(err).Int64("area_id", picked.ID).Msg("failed to load area details, falling back to buildings")
	}

	buildings := s.buildings.SearchBuildingsFallback(ctx, term, searchBuildingLimit)
	log.Info().Str("term", term).Int("buildings", len(buildings)).Msg("search used building fallback")
	return models.BuildingMatch(filterBuildings(buildings, filters.Tags, nil))
}

// GetAreaDetails loads an area with its newest amenities, transport and buildings.
// The lists are fetched concurrently and a failed list reads as empty; only a failure
// to load the area itself is returned.
func (s *SearchService) GetAreaDetails(ctx context.Context, id int64) (models.AreaDetails, error) {
	var (
		g         errgroup.Group
		area      *models.Area
		amenities = []models.AmenityRecord{}
		transport = []models.TransportRecord{}
		buildings = []models.Building{}
	)

	g.Go(func() error {
		var err error
		area, err = s.repo.GetArea(ctx, id)
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.ListAmenities(ctx, id, detailAmenityLimit)
		if err != nil {
			log.Warn().Err(err).Int64("area_id", id).Msg("failed to load amenities")
			return nil
		}
		amenities = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.ListTransport(ctx, id, 0)
		if err != nil {
			log.Warn().Err(err).Int64("area_id", id).Msg("failed to load transport")
			return nil
		}
		transport = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.ListBuildingsByArea(ctx, id, detailBuildingLimit)
		if err != nil {
			log.Warn().Err(err).Int64("area_id", id).Msg("failed to load buildings")
			return nil
		}
		buildings = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.AreaDetails{}, fmt.Errorf("service: failed to load area %d: %w", id, err)
	}

	return models.AreaDetails{
		Area:      *area,
		Amenities: amenities,
		Transport: transport,
		Buildings: buildings,
	}, nil
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// filterDetails returns a copy of details keeping only the child records whose
// inherited area tags intersect tags. An empty tag list keeps everything.
func filterDetails(details models.AreaDetails, tags []string) models.AreaDetails {
	if len(tags) == 0 {
		return details
	}

	out := details
	out.Buildings = filterBuildings(details.Buildings, tags, details.Area.AreaTags)
	if intersects(details.Area.AreaTags, tags) {
		out.Amenities = append([]models.AmenityRecord{}, details.Amenities...)
		out.Transport = append([]models.TransportRecord{}, details.Transport...)
	} else {
		out.Amenities = []models.AmenityRecord{}
		out.Transport = []models.TransportRecord{}
	}
	return out
}

// filterBuildings keeps buildings whose parent area tags intersect tags. Buildings
// without a joined area use fallbackTags.
func filterBuildings(buildings []models.Building, tags, fallbackTags []string) []models.Building {
	if len(tags) == 0 {
		return buildings
	}

	out := []models.Building{}
	for _, b := range buildings {
		inherited := fallbackTags
		if b.Area != nil {
			inherited = b.Area.AreaTags
		}
		if intersects(inherited, tags) {
			out = append(out, b)
		}
	}
	return out
}

// LocateArea finds map coordinates for a keyword: a matching area's center when it
// has one, otherwise a geocoded place. ok is false when neither is found.
func (s *SearchService) LocateArea(ctx context.Context, keyword string) (models.LocateResult, bool) {
	term := s.searchTerm(ctx, keyword)
	if term == "" {
		return models.LocateResult{}, false
	}

	for _, a := range s.areas.SearchAreas(ctx, term, searchAreaLimit) {
		if !a.HasCoordinates() {
			continue
		}
		area := a
		return models.LocateResult{
			Type:        "area",
			Area:        &area,
			Coordinates: [2]float64{*a.GeneralLatitude, *a.GeneralLongitude},
		}, true
	}

	if s.locator == nil {
		return models.LocateResult{}, false
	}
	place, ok := s.locator.SmartGeocode(ctx, keyword)
	if !ok {
		return models.LocateResult{}, false
	}
	return models.LocateResult{
		Type:        "geocoded",
		Place:       place,
		Coordinates: [2]float64{*place.Lat, *place.Lon},
	}, true
}

// BuildingCategories lists the distinct building categories for filter menus. On a
// store failure it returns a fixed default list.
func (s *SearchService) BuildingCategories(ctx context.Context) []models.BuildingCategory {
	raw, err := s.repo.BuildingCategories(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load building categories, using defaults")
		raw = defaultCategories
	}

	out := make([]models.BuildingCategory, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		out = append(out, models.BuildingCategory{Value: categoryValue(c), Label: categoryLabel(c)})
	}
	return out
}

func categoryValue(c string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(c), "_")
}

func categoryLabel(c string) string {
	title := cases.Title(language.English)
	words := labelSeparators.Split(c, -1)
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			parts = append(parts, title.String(w))
		}
	}
	return strings.Join(parts, " ")
}
