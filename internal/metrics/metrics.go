// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Database query performance (DuckDB / PostgreSQL)
// - API endpoint latency and throughput
// - Recommendation engine (paths, items served, similarity builds, cache)
// - Merchant advisor (suggestions by rule and priority)
// - Circuit breakers guarding external caches

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopsense_db_query_duration_seconds",
			Help:    "Duration of repository queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsense_db_query_errors_total",
			Help: "Total number of repository query errors",
		},
		[]string{"operation"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsense_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopsense_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shopsense_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopsense_recommend_duration_seconds",
			Help:    "Time to produce a recommendation list",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"}, // "history", "popularity"
	)

	RecommendItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsense_recommend_items_total",
			Help: "Recommendation items served by reason",
		},
		[]string{"reason"},
	)

	RecommendErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shopsense_recommend_errors_total",
			Help: "Recommendation requests that failed",
		},
	)

	SimilarityBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopsense_similarity_build_duration_seconds",
			Help:    "Time to compute the item similarity matrix",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	SimilarityItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shopsense_similarity_items",
			Help: "Number of items in the most recently built similarity matrix",
		},
	)

	SimilarityCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsense_similarity_cache_hits_total",
			Help: "Similarity cache hits by backend",
		},
		[]string{"backend"},
	)

	SimilarityCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsense_similarity_cache_misses_total",
			Help: "Similarity cache misses by backend (errors count as misses)",
		},
		[]string{"backend"},
	)

	SimilarityCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shopsense_similarity_cache_entries",
			Help: "Matrices held by the in-process similarity cache after the last sweep",
		},
	)

	// Advisor Metrics
	AdvisorSuggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsense_advisor_suggestions_total",
			Help: "Merchant suggestions emitted by rule and priority",
		},
		[]string{"rule", "priority"},
	)

	AdvisorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopsense_advisor_duration_seconds",
			Help:    "Time to evaluate all products of a merchant",
			Buckets: prometheus.DefBuckets,
		},
	)

	AdvisorProductsEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shopsense_advisor_products_evaluated_total",
			Help: "Products run through the rule engine",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shopsense_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsense_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsense_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shopsense_app_info",
			Help: "Application build information",
		},
		[]string{"version", "db_driver"},
	)
)

// RecordDBQuery records a repository query metric
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records a served recommendation list.
func RecordRecommendation(path string, historyItems, popularityItems int, duration time.Duration) {
	RecommendDuration.WithLabelValues(path).Observe(duration.Seconds())
	if historyItems > 0 {
		RecommendItems.WithLabelValues("history").Add(float64(historyItems))
	}
	if popularityItems > 0 {
		RecommendItems.WithLabelValues("popularity").Add(float64(popularityItems))
	}
}

// RecordSimilarityBuild records a similarity matrix computation.
func RecordSimilarityBuild(items int, duration time.Duration) {
	SimilarityBuildDuration.Observe(duration.Seconds())
	SimilarityItems.Set(float64(items))
}

// RecordSimilarityCache records a similarity cache lookup.
func RecordSimilarityCache(backend string, hit bool) {
	if hit {
		SimilarityCacheHits.WithLabelValues(backend).Inc()
	} else {
		SimilarityCacheMisses.WithLabelValues(backend).Inc()
	}
}

// RecordSimilarityCacheEntries records the in-process cache size.
func RecordSimilarityCacheEntries(size int) {
	SimilarityCacheEntries.Set(float64(size))
}

// RecordSuggestion records one emitted merchant suggestion.
func RecordSuggestion(rule, priority string) {
	AdvisorSuggestions.WithLabelValues(rule, priority).Inc()
}

// RecordAdvisorRun records a full merchant evaluation.
func RecordAdvisorRun(products int, duration time.Duration) {
	AdvisorDuration.Observe(duration.Seconds())
	AdvisorProductsEvaluated.Add(float64(products))
}
