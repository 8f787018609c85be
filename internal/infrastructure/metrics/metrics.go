// Package metrics holds the Prometheus collectors of the web front end.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of a match request
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation"
	OutcomeBackend    = "backend_error"
	OutcomeTransport  = "transport_error"
)

// MatchBuckets covers image matching latencies from 50ms to 60s.
var MatchBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

var (
	// MatchRequestsTotal counts search submissions by outcome.
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookalike_match_requests_total",
			Help: "Match requests",
		},
		[]string{"input", "outcome"},
	)

	// MatchDuration records the duration of requests sent to the matching service.
	MatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lookalike_match_duration_seconds",
			Help:    "Match request duration",
			Buckets: MatchBuckets,
		},
		[]string{"input"},
	)

	// MatchResultsReturned records how many products each successful match returned.
	MatchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lookalike_match_results",
			Help:    "Products returned per match",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	// FilterLoadsTotal counts filter option loads by source (cache/backend) and status.
	FilterLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookalike_filter_loads_total",
			Help: "Filter option loads",
		},
		[]string{"source", "status"},
	)

	// SessionsCreatedTotal counts search sessions started.
	SessionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lookalike_sessions_created_total",
			Help: "Search sessions created",
		},
	)

	// RateLimitRejectedTotal counts requests rejected by the per-IP limiter.
	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lookalike_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		MatchRequestsTotal,
		MatchDuration,
		MatchResultsReturned,
		FilterLoadsTotal,
		SessionsCreatedTotal,
		RateLimitRejectedTotal,
	)
}

// ObserveMatch records one settled (or rejected) search.
func ObserveMatch(input, outcome string, elapsed time.Duration, results int) {
	MatchRequestsTotal.WithLabelValues(input, outcome).Inc()
	if outcome == OutcomeValidation {
		return
	}
	MatchDuration.WithLabelValues(input).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess {
		MatchResultsReturned.Observe(float64(results))
	}
}
