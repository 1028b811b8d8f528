package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Cache metrics carry a "cache" label with the Group of the instrumented cache.
var (
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatapi_cache_hits_total",
			Help: "Total number of response cache hits.",
		},
		[]string{"cache"},
	)

	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatapi_cache_misses_total",
			Help: "Total number of response cache misses.",
		},
		[]string{"cache"},
	)

	WritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatapi_cache_writes_total",
			Help: "Total number of response cache writes.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		WritesTotal,
	)
}
