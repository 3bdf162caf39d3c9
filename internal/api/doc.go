// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

// Package api provides the HTTP surface of ShopSense on the Chi router.
//
// # Endpoints
//
//	GET /api/v1/users/{userID}/recommendations?limit=N
//	GET /api/v1/merchants/{merchantID}/suggestions
//	GET /api/v1/health/live
//	GET /api/v1/health/ready
//	GET /metrics
//
// # Response Envelope
//
// Every JSON response uses models.APIResponse:
//
//	{"status": "success", "data": [...], "metadata": {"timestamp": "...", "request_id": "..."}}
//	{"status": "error", "error": {"code": "VALIDATION_ERROR", "message": "limit must be at most 50"}, ...}
//
// Error codes: VALIDATION_ERROR (400), NOT_FOUND (404),
// METHOD_NOT_ALLOWED (405), TOO_MANY_REQUESTS (429), INTERNAL_ERROR (500),
// SERVICE_UNAVAILABLE (503).
//
// # Middleware
//
// Global: request ID, real IP, access log, panic recovery, CORS. Data
// endpoints add per-IP rate limiting (go-chi/httprate), Prometheus
// instrumentation and gzip.
package api
