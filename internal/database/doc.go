// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

/*
Package database provides the order and catalog repository for ShopSense.

The same SQL runs on two drivers:

  - duckdb (github.com/duckdb/duckdb-go/v2): embedded store, the default,
    and the driver used by unit tests with an in-memory database
  - postgres (github.com/lib/pq): shared production store

Queries use $n placeholders, which both drivers accept. Prices are stored
as NUMERIC(10,2) and cast to FLOAT8 on read; timestamps are UTC TIMESTAMP
values.

# Read Paths

The recommender reads:

  - PurchaseCounts: distinct order count per (user, product)
  - GetProduct, GetMerchant: metadata lookups returning ErrNotFound
  - TopSellers: active products by units sold, with an exclusion list

The advisor reads:

  - ProductsByMerchant: every product of a merchant, all statuses
  - SalesBetween: units sold in a half-open time window
  - AvgActivePrice: mean price of active products in a category

Every call is bounded by the configured query timeout and recorded in the
shopsense_db_query_* Prometheus metrics.

# Schema

EnsureSchema creates the merchants, products and orders tables. The store
is usually owned by the marketplace, so the schema is only created when
SeedDemoData is enabled.
*/
package database
