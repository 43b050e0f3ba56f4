// Package metrics holds the prometheus collectors shared by the gateway.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipenexus_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipenexus_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipenexus_upstream_requests_total",
			Help: "Upstream provider calls by outcome",
		},
		[]string{"provider", "op", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipenexus_upstream_request_duration_seconds",
			Help:    "Upstream provider call latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		},
		[]string{"provider", "op"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipenexus_cache_lookups_total",
			Help: "Cache lookups by route and result",
		},
		[]string{"route", "result"},
	)

	cacheInvalidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipenexus_cache_invalidated_keys_total",
			Help: "Cache keys removed by prefix invalidation",
		},
	)

	aggregationFaultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipenexus_aggregation_faults_total",
			Help: "Merged responses degraded to local-only data",
		},
		[]string{"reason"},
	)
)

// ObserveHTTP records a served request.
func ObserveHTTP(method, path string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// ObserveUpstream records one provider call.
func ObserveUpstream(provider, op string, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamRequestsTotal.WithLabelValues(provider, op, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(provider, op).Observe(d.Seconds())
}

// CacheLookup records a cache hit or miss for a route.
func CacheLookup(route string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(route, result).Inc()
}

// CacheInvalidated records keys dropped by prefix deletion.
func CacheInvalidated(n int) {
	cacheInvalidationsTotal.Add(float64(n))
}

// AggregationFault records a degraded merged response.
func AggregationFault(reason string) {
	aggregationFaultsTotal.WithLabelValues(reason).Inc()
}
