package service

import (
	"context"

	"moveasy-api/internal/models"
	"moveasy-api/internal/normalize"
	"moveasy-api/internal/repository"
	"moveasy-api/internal/telemetry"

	"github.com/rs/zerolog/log"
)

// BuildingStore is the building lookup the fallback resolver needs
type BuildingStore interface {
	SearchBuildings(ctx context.Context, q repository.BuildingQuery) ([]models.Building, error)
}

// buildingQueries lists the fallback sub-queries in merge priority order.
var buildingQueries = []struct {
	field repository.BuildingField
	limit int
}{
	{field: repository.BuildingAreaBorough, limit: 20},
	{field: repository.BuildingAreaName, limit: 10},
	{field: repository.BuildingName, limit: 10},
}

// BuildingResolver searches buildings directly when no area matches a term
type BuildingResolver struct {
	store BuildingStore
}

// NewBuildingResolver creates a resolver over store
func NewBuildingResolver(store BuildingStore) *BuildingResolver {
	return &BuildingResolver{store: store}
}

// SearchBuildingsFallback merges buildings in a matching borough, then in a matching
// area, then with a matching name. Duplicates keep their first position.
func (r *BuildingResolver) SearchBuildingsFallback(ctx context.Context, term string, limit int) []models.Building {
	term = normalize.Normalize(term)
	if term == "" {
		return []models.Building{}
	}

	seen := make(map[int64]struct{})
	merged := []models.Building{}
	for _, bq := range buildingQueries {
		rows, err := r.store.SearchBuildings(ctx, repository.BuildingQuery{Field: bq.field, Term: term, Limit: bq.limit})
		if err != nil {
			log.Error().Err(err).Stringer("field", bq.field).Str("term", term).Msg("building search query failed")
			continue
		}
		log.Debug().Stringer("field", bq.field).Str("term", term).Int("rows", len(rows)).Msg("building search step")

		for _, b := range rows {
			if _, dup := seen[b.ID]; dup {
				continue
			}
			seen[b.ID] = struct{}{}
			merged = append(merged, b)
		}
	}

	if len(merged) > 0 {
		telemetry.ResolverSteps.WithLabelValues("building", "fallback").Inc()
	}
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
