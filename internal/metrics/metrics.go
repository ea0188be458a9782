// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

// Package metrics provides Prometheus instrumentation for the HTTP API,
// the discovery engine fan-out, and DuckDB query performance.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Discovery engine metrics
	DiscoveryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_requests_total",
			Help: "Total number of discovery calls",
		},
		[]string{"sort", "outcome"}, // outcome: "success", "validation_error", "source_error", "canceled"
	)

	DiscoverySourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_source_fetch_duration_seconds",
			Help:    "Duration of per-source candidate fetches during discovery fan-out",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"}, // "listing", "event", "offer"
	)

	DiscoveryCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_candidates",
			Help:    "Number of candidates contributed per source before ranking",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"source"},
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Category cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "category_cache_hits_total",
			Help: "Total number of category cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "category_cache_misses_total",
			Help: "Total number of category cache misses",
		},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSourceFetch records one per-source fetch during discovery fan-out.
func RecordSourceFetch(source string, candidates int, duration time.Duration) {
	DiscoverySourceDuration.WithLabelValues(source).Observe(duration.Seconds())
	DiscoveryCandidates.WithLabelValues(source).Observe(float64(candidates))
}

// RecordDBQuery records one database query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}
