// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

// Package testinfra provides container-backed infrastructure for integration tests.
//
// It uses testcontainers-go to start real PostgreSQL and Redis servers so the
// repository and cache layers are exercised against the same engines they run
// on in production. Everything in this package is behind the integration
// build tag:
//
//	go test -tags integration ./internal/database/... ./internal/cache/...
//
// # Example
//
//	func TestPostgresRepository(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    db, err := database.New(&config.DatabaseConfig{Driver: "postgres", DSN: pg.DSN})
//	    // ...
//	}
//
// Tests skip cleanly when Docker is unavailable.
package testinfra
