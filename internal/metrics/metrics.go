// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

// Package metrics defines the Prometheus collectors for the LoreAtlas
// server: API throughput and latency, discovery cache efficiency, rate
// limiting, upstream Wikipedia calls, and background sweeps.
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
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	// Discovery pipeline metrics
	DiscoveryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_cache_hits_total",
			Help: "Explore lookups served from the history proximity cache",
		},
	)

	DiscoveryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_cache_misses_total",
			Help: "Explore lookups that required an upstream resolution",
		},
	)

	DiscoveryPlaceholders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_placeholders_total",
			Help: "Explorations that found no upstream coverage and persisted a placeholder",
		},
	)

	RateLimitDenials = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_rate_limit_denials_total",
			Help: "Discovery attempts denied by the per-client rate limiter",
		},
	)

	// Upstream Wikipedia metrics
	WikipediaRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikipedia_requests_total",
			Help: "Total upstream Wikipedia API calls",
		},
		[]string{"endpoint", "language", "outcome"},
	)

	WikipediaRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wikipedia_request_duration_seconds",
			Help:    "Duration of upstream Wikipedia API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wikipedia_circuit_breaker_state",
			Help: "Wikipedia circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Background sweep metrics
	HistorySweepDeletions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_sweep_deletions_total",
			Help: "History rows removed by the retention sweep",
		},
	)

	RateLimitSweepRemovals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_sweep_removals_total",
			Help: "Expired rate-limit windows removed by the hourly sweep",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, path string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordWikipediaRequest records one upstream call with its outcome
// ("success", "missing" or "error").
func RecordWikipediaRequest(endpoint, language, outcome string, duration time.Duration) {
	WikipediaRequestsTotal.WithLabelValues(endpoint, language, outcome).Inc()
	WikipediaRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
