package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Tracker request metrics
var (
	// RequestsTotal counts outbound tracker requests by endpoint (login, ajax:<action>,
	// snatched, upload, logout) and outcome (success, error).
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatapi_requests_total",
			Help: "Total number of requests sent to the tracker.",
		},
		[]string{"endpoint", "outcome"},
	)

	// RateLimitWaitSeconds observes how long callers were held back by the limiter.
	RateLimitWaitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "whatapi_ratelimit_wait_seconds",
			Help:    "Time spent waiting for the request rate limiter.",
			Buckets: []float64{0, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	// SnatchEntriesTotal counts snatch history entries emitted by the scraper.
	SnatchEntriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "whatapi_snatch_entries_total",
			Help: "Total number of snatch entries streamed to callers.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RateLimitWaitSeconds,
		SnatchEntriesTotal,
	)
}

// Outcome maps an error to the outcome label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
