package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog and search metrics.
var (
	CatalogCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "catalog_cache_total",
			Help:      "Catalog file cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CatalogLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog collection resolutions by entity and status",
		},
		[]string{"entity", "status"}, // status: ok / not_found / error
	)

	AlternativesRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "alternatives_runs_total",
			Help:      "Find-alternatives runs by outcome",
		},
		[]string{"outcome"},
	)

	AlternativesResultSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "alternatives_result_size",
			Help:      "Number of alternatives returned per successful run",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)
)

var registerOnce sync.Once

// RegisterCatalogMetrics registers catalog and search metrics with the default registry.
// Safe to call more than once.
func RegisterCatalogMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CatalogCacheTotal,
			CatalogLoadsTotal,
			AlternativesRunsTotal,
			AlternativesResultSize,
		)
	})
}
