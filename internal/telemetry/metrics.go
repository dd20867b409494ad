package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderFallbacks counts degraded outcomes of external providers, labelled by
	// provider and the fallback taken.
	ProviderFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moveasy_provider_fallbacks_total",
			Help: "Number of provider calls that fell back to a local result",
		},
		[]string{"provider", "fallback"},
	)

	// CacheLookups counts cache lookups by cache name and outcome (hit/miss).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moveasy_cache_lookups_total",
			Help: "Number of cache lookups",
		},
		[]string{"cache", "outcome"},
	)

	// ResolverSteps counts which search strategy produced the result.
	ResolverSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moveasy_resolver_steps_total",
			Help: "Number of searches resolved by each strategy",
		},
		[]string{"resolver", "strategy"},
	)
)

// CacheHit records a cache lookup outcome.
func CacheHit(cache string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheLookups.WithLabelValues(cache, outcome).Inc()
}
