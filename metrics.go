package main

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "activity_log"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status class",
		},
		[]string{"method", "class"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	upstreamFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "github_fetches_total",
			Help:      "Events API calls by outcome",
		},
		[]string{"outcome"},
	)

	upstreamFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "github_fetch_duration_seconds",
			Help:      "Duration of events API calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "feed_cache_lookups_total",
			Help:      "Feed cache lookups by result",
		},
		[]string{"result"},
	)

	headingFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "heading_fallbacks_total",
			Help:      "Events rendered as an inline error line, by event type",
		},
		[]string{"type"},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "build_info",
			Help:      "Configuration information",
		},
		[]string{"cache_backend"},
	)
)

func recordHTTPRequest(method string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status/100)+"xx").Inc()
	httpRequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// IncrementCacheHit increments the cache hit counter
func IncrementCacheHit() {
	cacheLookupsTotal.WithLabelValues("hit").Inc()
}

// IncrementCacheMiss increments the cache miss counter
func IncrementCacheMiss() {
	cacheLookupsTotal.WithLabelValues("miss").Inc()
}

func recordHeadingFallback(eventType string) {
	headingFallbacksTotal.WithLabelValues(eventType).Inc()
}

// fetchObserver feeds events API outcomes into the upstream metrics.
type fetchObserver struct{}

func (fetchObserver) ObserveFetch(outcome string, elapsed time.Duration) {
	upstreamFetchesTotal.WithLabelValues(outcome).Inc()
	upstreamFetchDuration.Observe(elapsed.Seconds())
}
