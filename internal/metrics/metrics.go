// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics registers the Prometheus collectors for curated-reads.
// Collectors live on the default registry and are exposed by the server's
// /metrics route.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CurationOutcomes counts curation requests by outcome:
	// pinned, ranked, no_match, empty_query, error.
	CurationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curated_reads_curation_outcomes_total",
			Help: "Total number of curation requests by outcome",
		},
		[]string{"outcome"},
	)

	// ProviderRequests counts metadata provider calls by operation and HTTP status.
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curated_reads_provider_requests_total",
			Help: "Total number of metadata provider requests",
		},
		[]string{"operation", "status"},
	)

	// ProviderLatency tracks provider call latency, retries included.
	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curated_reads_provider_request_duration_seconds",
			Help:    "Duration of metadata provider requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	// BreakerState reports the provider circuit breaker state
	// (0 closed, 1 half-open, 2 open).
	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curated_reads_provider_breaker_state",
			Help: "Provider circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
	)

	// SearchCacheLookups counts search cache lookups by result (hit, miss).
	SearchCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curated_reads_search_cache_lookups_total",
			Help: "Total number of search cache lookups",
		},
		[]string{"result"},
	)

	// HTTPRequests counts API requests by route pattern, method and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curated_reads_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPLatency tracks API request latency by route pattern.
	HTTPLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curated_reads_http_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// ObserveProvider records one provider call.
func ObserveProvider(operation, status string, elapsed time.Duration) {
	ProviderRequests.WithLabelValues(operation, status).Inc()
	ProviderLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}
