// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package database

import (
	"context"
	"fmt"
)

// Column types are chosen to be valid on both DuckDB and PostgreSQL.
// Timestamps are stored as UTC wall-clock TIMESTAMP values; DuckDB's
// TIMESTAMPTZ would need the ICU extension.
var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS merchants (
		id   BIGINT PRIMARY KEY,
		name VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGINT PRIMARY KEY,
		merchant_id BIGINT NOT NULL,
		name        VARCHAR(100) NOT NULL,
		price       NUMERIC(10, 2) NOT NULL,
		stock       INTEGER NOT NULL DEFAULT 0,
		category    VARCHAR(50),
		status      SMALLINT NOT NULL DEFAULT 1,
		created_at  TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         BIGINT PRIMARY KEY,
		order_id   BIGINT NOT NULL,
		user_id    BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		quantity   INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

var indexCreationQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_products_merchant_status ON products(merchant_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category_status ON products(category, status)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_time ON orders(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_product_time ON orders(product_id, created_at)`,
}

// EnsureSchema creates the merchants, products and orders tables and their
// indexes if they do not exist. It is idempotent.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, q := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, q := range indexCreationQueries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
