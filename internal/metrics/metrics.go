package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ResolveTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "worldcup_resolve_total",
		Help: "Selections resolved, by mode and outcome",
	}, []string{"mode", "outcome"})
	ResolveDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worldcup_resolve_duration_ms",
		Help:    "Time to resolve a selection in milliseconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	}, []string{"mode"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "worldcup_cache_hits_total",
		Help: "Projection cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "worldcup_cache_misses_total",
		Help: "Projection cache misses",
	})
	CacheErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "worldcup_cache_errors_total",
		Help: "Projection cache read or write failures",
	})
	EditionsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "worldcup_editions_loaded",
		Help: "Rows in the loaded result table",
	})
	DuplicateYears = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "worldcup_duplicate_years",
		Help: "Years recorded by more than one row in the loaded result table",
	})
)

func init() {
	prometheus.MustRegister(ResolveTotal)
	prometheus.MustRegister(ResolveDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(CacheErrorsTotal)
	prometheus.MustRegister(EditionsLoaded)
	prometheus.MustRegister(DuplicateYears)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
