// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

/*
Package config provides centralized configuration management for ShopSense.

# Configuration Sources

Configuration is layered with Koanf v2. Later sources override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. YAML file: CONFIG_PATH, or config.yaml / /etc/shopsense/config.yaml
 3. .env file (DOTENV_PATH or ./.env), merged into the process environment
    without overriding variables that are already set
 4. Environment variables

Only environment variables listed in the explicit mapping are read, so
unrelated variables never leak into the configuration.

# Environment Variables

Database:
  - DB_DRIVER: duckdb or postgres (default: duckdb)
  - DUCKDB_PATH: DuckDB file, empty for in-memory (default: /data/shopsense.duckdb)
  - DATABASE_URL: PostgreSQL DSN, required for the postgres driver
  - DB_MAX_OPEN_CONNS (default: 10), DB_QUERY_TIMEOUT (default: 30s)
  - SEED_DEMO_DATA: create the schema and a demo catalog (default: false)

HTTP Server:
  - HTTP_HOST (default: 0.0.0.0), HTTP_PORT (default: 8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

API:
  - API_DEFAULT_LIMIT (default: 10), API_MAX_LIMIT (default: 50)
  - CORS_ORIGINS: comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Recommender:
  - RECOMMEND_DEFAULT_TOP_N, RECOMMEND_WORKERS
  - RECOMMEND_CACHE_BACKEND: none, memory or redis (default: memory)
  - RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_CAPACITY
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_KEY_PREFIX

Advisor:
  - ADVISOR_WORKERS (default: 4)

Logging:
  - LOG_LEVEL (default: info), LOG_FORMAT (default: json), LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
