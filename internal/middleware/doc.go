// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

// Package middleware provides HTTP middleware shared by the API router.
//
// All middleware have the chi signature func(http.Handler) http.Handler:
//
//   - RequestID: assigns or propagates X-Request-ID and stores it in the
//     logging context
//   - PrometheusMetrics: request count, latency and in-flight gauge, labeled
//     by chi route pattern
//   - AccessLog: one zerolog line per request
//
// Typical stack:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(middleware.AccessLog(logger))
//	r.Use(middleware.PrometheusMetrics)
package middleware
