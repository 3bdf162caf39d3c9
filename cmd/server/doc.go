// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

/*
Package main is the entry point for the ShopSense server.

ShopSense serves two engines over HTTP: item-based collaborative filtering
recommendations for shoppers and rule-based inventory and pricing advice for
merchants.

# Application Architecture

	RootSupervisor ("shopsense")
	├── DataSupervisor ("data-layer")
	│   └── Cache sweeper (memory cache backend)
	├── RecommendSupervisor ("recommend-layer")
	│   └── Similarity warmer (RECOMMEND_WARM_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Initialization order:

 1. Configuration: koanf v2 (defaults, config.yaml, .env, environment)
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB (embedded) or PostgreSQL, schema bootstrap, demo seed
 4. Recommendation engine with the configured similarity cache
 5. Merchant advisor
 6. Chi router and HTTP server
 7. Supervisor tree, stopped gracefully on SIGINT or SIGTERM

# Endpoints

	GET /api/v1/users/{userID}/recommendations?limit=N
	GET /api/v1/merchants/{merchantID}/suggestions
	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /metrics

# Configuration

Core environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info                    # trace, debug, info, warn, error
	LOG_FORMAT=json                   # json or console

	DB_DRIVER=duckdb                  # duckdb or postgres
	DUCKDB_PATH=/data/shopsense.duckdb
	DATABASE_URL=postgres://shop:secret@db:5432/shop?sslmode=disable
	SEED_DEMO_DATA=true

	RECOMMEND_CACHE_BACKEND=memory    # none, memory or redis
	RECOMMEND_CACHE_TTL=10m
	RECOMMEND_WARM_INTERVAL=5m        # 0 disables background warming
	REDIS_ADDR=127.0.0.1:6379

	API_MAX_LIMIT=50
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m

# Running

	go run ./cmd/server
	SEED_DEMO_DATA=true LOG_FORMAT=console go run ./cmd/server
	curl localhost:8080/api/v1/users/1/recommendations?limit=5
	curl localhost:8080/api/v1/merchants/1/suggestions
*/
package main
