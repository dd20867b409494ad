package service

import (
	"context"

	"moveasy-api/internal/models"
	"moveasy-api/internal/normalize"
	"moveasy-api/internal/repository"
	"moveasy-api/internal/telemetry"

	"github.com/rs/zerolog/log"
)

// AreaStore is the area lookup the resolvers need
type AreaStore interface {
	SearchAreas(ctx context.Context, q repository.AreaQuery) ([]models.Area, error)
}

// areaStrategy is one step of the area fallback chain. Its queries run in order and
// their rows are merged with id de-duplication.
type areaStrategy struct {
	name    string
	queries func(term string) []repository.AreaQuery
}

func areaFields(fields ...repository.AreaField) []repository.AreaField { return fields }

// areaStrategies is tried in order until one yields rows.
var areaStrategies = []areaStrategy{
	{
		name: "name_or_borough",
		queries: func(term string) []repository.AreaQuery {
			return []repository.AreaQuery{
				{Fields: areaFields(repository.AreaBorough), Terms: []string{term}, Limit: 10},
				{Fields: areaFields(repository.AreaName), Terms: []string{term}, Limit: 10},
			}
		},
	},
	{
		name: "city",
		queries: func(term string) []repository.AreaQuery {
			return []repository.AreaQuery{
				{Fields: areaFields(repository.AreaCity), Terms: []string{term}, Limit: 20},
			}
		},
	},
	{
		name: "borough",
		queries: func(term string) []repository.AreaQuery {
			return []repository.AreaQuery{
				{Fields: areaFields(repository.AreaBorough), Terms: []string{term}, Limit: 20},
			}
		},
	},
	{
		name: "variants",
		queries: func(term string) []repository.AreaQuery {
			return []repository.AreaQuery{
				{
					Fields: areaFields(repository.AreaName, repository.AreaCity, repository.AreaBorough),
					Terms:  normalize.ExpandVariants(term),
					Limit:  20,
				},
			}
		},
	},
}

// AreaResolver finds areas for a free-text term through an ordered list of strategies
type AreaResolver struct {
	store      AreaStore
	strategies []areaStrategy
}

// NewAreaResolver creates a resolver over store
func NewAreaResolver(store AreaStore) *AreaResolver {
	return &AreaResolver{store: store, strategies: areaStrategies}
}

// SearchAreas returns the areas of the first strategy that matches, capped at limit
// when limit > 0. Store errors are logged and treated as no rows.
func (r *AreaResolver) SearchAreas(ctx context.Context, term string, limit int) []models.Area {
	term = normalize.Normalize(term)
	if term == "" {
		return []models.Area{}
	}

	for _, s := range r.strategies {
		areas := r.run(ctx, s, term)
		log.Debug().Str("strategy", s.name).Str("term", term).Int("rows", len(areas)).Msg("area search step")
		if len(areas) == 0 {
			continue
		}

		telemetry.ResolverSteps.WithLabelValues("area", s.name).Inc()
		if limit > 0 && len(areas) > limit {
			areas = areas[:limit]
		}
		return areas
	}

	telemetry.ResolverSteps.WithLabelValues("area", "none").Inc()
	return []models.Area{}
}

func (r *AreaResolver) run(ctx context.Context, s areaStrategy, term string) []models.Area {
	seen := make(map[int64]struct{})
	var merged []models.Area
	for _, q := range s.queries(term) {
		rows, err := r.store.SearchAreas(ctx, q)
		if err != nil {
			log.Error().Err(err).Str("strategy", s.name).Str("term", term).Msg("area search query failed")
			continue
		}
		for _, a := range rows {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			merged = append(merged, a)
		}
	}
	return merged
}
