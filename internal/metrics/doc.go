// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

/*
Package metrics provides Prometheus metrics collection and export.

All collectors are registered on the default registry with promauto and are
exposed at /metrics by the API router.

# Available Metrics

HTTP Metrics:
  - shopsense_http_requests_total: Labels method, endpoint, status
  - shopsense_http_request_duration_seconds: Labels method, endpoint
  - shopsense_http_requests_in_flight

Database Metrics:
  - shopsense_db_query_duration_seconds: Label operation
  - shopsense_db_query_errors_total: Label operation

Recommendation Metrics:
  - shopsense_recommend_duration_seconds: Label path (history, popularity)
  - shopsense_recommend_items_total: Label reason
  - shopsense_recommend_errors_total
  - shopsense_similarity_build_duration_seconds
  - shopsense_similarity_items
  - shopsense_similarity_cache_hits_total / _misses_total: Label backend

Advisor Metrics:
  - shopsense_advisor_suggestions_total: Labels rule, priority
  - shopsense_advisor_duration_seconds
  - shopsense_advisor_products_evaluated_total

Circuit Breaker Metrics:
  - shopsense_circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - shopsense_circuit_breaker_requests_total: Labels name, result
  - shopsense_circuit_breaker_transitions_total: Labels name, from, to

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("purchase_counts", time.Since(start), err)
*/
package metrics
