package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "larder_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// CacheHits counts cache reads answered from the key-value store, by key namespace.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "larder_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"namespace"},
	)

	// CacheMisses counts cache reads that fell through to the backing store.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "larder_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"namespace"},
	)

	// CacheFailures counts suppressed cache errors by operation (get|set|delete|delete_pattern).
	CacheFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "larder_cache_failures_total",
			Help: "Total number of suppressed cache operation failures",
		},
		[]string{"operation"},
	)

	// JanitorSweeps counts entries removed by the in-memory cache janitor.
	JanitorSweeps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "larder_cache_janitor_swept_total",
			Help: "Total number of expired cache entries removed by the janitor",
		},
	)
)
