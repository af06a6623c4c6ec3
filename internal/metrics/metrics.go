// Package metrics provides Prometheus collectors for the snow tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the application metrics.
type Collector struct {
	// Ingestion
	RowsIngestedTotal *prometheus.CounterVec
	RowsDroppedTotal  *prometheus.CounterVec
	FetchDuration     *prometheus.HistogramVec
	FetchErrorsTotal  *prometheus.CounterVec

	// Analytics
	ComputeDuration prometheus.Histogram
	CacheHitsTotal  prometheus.Counter
	CacheMissTotal  prometheus.Counter

	// API
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewCollector registers and returns the application metrics. reg may be
// prometheus.DefaultRegisterer in production; tests pass a fresh registry so
// collectors never collide.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RowsIngestedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_ingested_total",
				Help:      "Daily observation rows accepted during series ingestion",
			},
			[]string{"station"},
		),
		RowsDroppedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_dropped_total",
				Help:      "Malformed rows dropped during series ingestion",
			},
			[]string{"station"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Upstream series fetch duration in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"source"},
		),
		FetchErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_errors_total",
				Help:      "Upstream fetch failures by source",
			},
			[]string{"source"},
		),
		ComputeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analytics_compute_duration_seconds",
				Help:      "Station analytics computation duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
		),
		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "series_cache_hits_total",
				Help:      "Period-of-record cache hits",
			},
		),
		CacheMissTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "series_cache_misses_total",
				Help:      "Period-of-record cache misses",
			},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"route"},
		),
	}
}
