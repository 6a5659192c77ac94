// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fym_provider_requests_total",
			Help: "Total number of metadata provider calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fym_provider_request_duration_seconds",
			Help:    "Duration of metadata provider calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	QueryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fym_query_cache_lookups_total",
			Help: "Query cache lookups by result (hit, miss, shared)",
		},
		[]string{"result"},
	)

	QueryCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fym_query_cache_entries",
			Help: "Number of entries held by the query cache",
		},
	)

	CarouselCollections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fym_carousel_collections_total",
			Help: "Carousel image collections by source (cache, network, placeholder)",
		},
		[]string{"source"},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fym_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fym_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	TasksQueued = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fym_background_tasks_queued",
			Help: "Background tasks waiting for a worker",
		},
	)
)

func RecordProviderCall(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ProviderRequests.WithLabelValues(operation, outcome).Inc()
	ProviderDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordAPIRequest(method string, status int, duration time.Duration) {
	APIRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
