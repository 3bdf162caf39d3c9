// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/shopsense/internal/models"
)

// PurchaseCounts returns, for every (user, product) pair with at least one
// order, the number of distinct orders containing that product. Quantity is
// ignored. Rows are ordered by user then product.
func (db *DB) PurchaseCounts(ctx context.Context) (events []models.PurchaseEvent, err error) {
	defer func(start time.Time) { observe("purchase_counts", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT user_id, product_id, COUNT(DISTINCT order_id) AS order_count
		FROM orders
		GROUP BY user_id, product_id
		ORDER BY user_id, product_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query purchase counts: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var e models.PurchaseEvent
		if err := rows.Scan(&e.UserID, &e.ItemID, &e.OrderCount); err != nil {
			return nil, fmt.Errorf("scan purchase count: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchase counts: %w", err)
	}
	return events, nil
}

// SalesBetween returns the units of a product sold in [from, to).
// A product with no orders in the window yields 0.
func (db *DB) SalesBetween(ctx context.Context, productID int64, from, to time.Time) (units int, err error) {
	defer func(start time.Time) { observe("sales_between", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx, `
		SELECT CAST(COALESCE(SUM(quantity), 0) AS BIGINT)
		FROM orders
		WHERE product_id = $1 AND created_at >= $2 AND created_at < $3
	`, productID, from.UTC(), to.UTC()).Scan(&units)
	if err != nil {
		return 0, fmt.Errorf("query sales for product %d: %w", productID, err)
	}
	return units, nil
}

// InsertOrder stores one order line.
func (db *DB) InsertOrder(ctx context.Context, o *models.Order) (err error) {
	defer func(start time.Time) { observe("insert_order", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO orders (id, order_id, user_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.OrderID, o.UserID, o.ProductID, o.Quantity, o.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert order %d: %w", o.ID, err)
	}
	return nil
}
