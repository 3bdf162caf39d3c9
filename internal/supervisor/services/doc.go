// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

/*
Package services provides suture.Service wrappers for ShopSense components.

Each wrapper translates a component's lifecycle into suture's
context-aware Serve pattern and implements fmt.Stringer so the supervisor
event log names it.

HTTPServerService:
  - Wraps *http.Server; cancellation triggers a bounded graceful Shutdown
  - A listener failure is returned and the supervisor restarts the server

SimilarityWarmService:
  - Calls recommend.Engine.Warm on startup and every warm interval
  - Failures are logged and retried on the next tick

CacheSweepService:
  - Evicts expired entries from the in-memory similarity cache

Return behavior follows suture: nil stops the service for good, an error
triggers a restart, and ctx.Err() is returned on shutdown.
*/
package services
