// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/shopsense/internal/database/query"
	"github.com/tomtom215/shopsense/internal/models"
)

// productColumns is the projection shared by every product query. Price is
// cast so both drivers scan it into a float64.
const productColumns = `p.id, p.merchant_id, p.name, CAST(p.price AS FLOAT8), p.stock, p.category, p.status, p.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		p        models.Product
		category sql.NullString
		status   int
	)
	if err := row.Scan(&p.ID, &p.MerchantID, &p.Name, &p.Price, &p.Stock, &category, &status, &p.CreatedAt); err != nil {
		return nil, err
	}
	if category.Valid {
		c := category.String
		p.Category = &c
	}
	p.Status = models.ProductStatus(status)
	return &p, nil
}

// GetProduct returns a product by id in any status, or ErrNotFound.
func (db *DB) GetProduct(ctx context.Context, id int64) (product *models.Product, err error) {
	defer func(start time.Time) { observe("get_product", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	product, err = scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

// TopSellers returns active products ranked by total units sold, descending,
// with ties broken by ascending id. Products without orders count as zero
// sales. Ids in exclude are skipped.
func (db *DB) TopSellers(ctx context.Context, exclude []int64, limit int) (products []models.Product, err error) {
	if limit <= 0 {
		return nil, nil
	}
	defer func(start time.Time) { observe("top_sellers", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	wb := query.NewWhereBuilder().
		AddClause("p.status = ?", int(models.ProductActive)).
		AddNotIn("p.id", exclude)
	limitArg := wb.Arg(limit)
	where, args := wb.Build()

	q := `SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN orders o ON o.product_id = p.id
		` + where + `
		GROUP BY p.id, p.merchant_id, p.name, p.price, p.stock, p.category, p.status, p.created_at
		ORDER BY COALESCE(SUM(o.quantity), 0) DESC, p.id ASC
		LIMIT ` + limitArg

	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query top sellers: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan top seller: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top sellers: %w", err)
	}
	return products, nil
}

// ProductsByMerchant returns every product of a merchant in all statuses,
// ordered by ascending id.
func (db *DB) ProductsByMerchant(ctx context.Context, merchantID int64) (products []models.Product, err error) {
	defer func(start time.Time) { observe("products_by_merchant", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products p WHERE p.merchant_id = $1 ORDER BY p.id`, merchantID)
	if err != nil {
		return nil, fmt.Errorf("query products of merchant %d: %w", merchantID, err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// AvgActivePrice returns the mean price of active products in a category,
// or 0 when the category has no active product. A nil category averages the
// uncategorized products.
func (db *DB) AvgActivePrice(ctx context.Context, category *string) (avg float64, err error) {
	defer func(start time.Time) { observe("avg_active_price", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	if category == nil {
		err = db.conn.QueryRowContext(ctx, `
			SELECT CAST(COALESCE(AVG(price), 0) AS FLOAT8)
			FROM products
			WHERE category IS NULL AND status = $1
		`, int(models.ProductActive)).Scan(&avg)
		if err != nil {
			return 0, fmt.Errorf("query average price of uncategorized products: %w", err)
		}
		return avg, nil
	}

	err = db.conn.QueryRowContext(ctx, `
		SELECT CAST(COALESCE(AVG(price), 0) AS FLOAT8)
		FROM products
		WHERE category = $1 AND status = $2
	`, *category, int(models.ProductActive)).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("query average price of %q: %w", *category, err)
	}
	return avg, nil
}

// GetMerchant returns a merchant by id, or ErrNotFound.
func (db *DB) GetMerchant(ctx context.Context, id int64) (merchant *models.Merchant, err error) {
	defer func(start time.Time) { observe("get_merchant", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	var m models.Merchant
	err = db.conn.QueryRowContext(ctx, `SELECT id, name FROM merchants WHERE id = $1`, id).Scan(&m.ID, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("merchant %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get merchant %d: %w", id, err)
	}
	return &m, nil
}

// InsertMerchant stores a merchant.
func (db *DB) InsertMerchant(ctx context.Context, m *models.Merchant) (err error) {
	defer func(start time.Time) { observe("insert_merchant", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	if _, err = db.conn.ExecContext(ctx, `INSERT INTO merchants (id, name) VALUES ($1, $2)`, m.ID, m.Name); err != nil {
		return fmt.Errorf("insert merchant %d: %w", m.ID, err)
	}
	return nil
}

// InsertProduct stores a product. A nil Category is stored as NULL.
func (db *DB) InsertProduct(ctx context.Context, p *models.Product) (err error) {
	defer func(start time.Time) { observe("insert_product", start, err) }(time.Now())

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	var category sql.NullString
	if p.Category != nil {
		category = sql.NullString{String: *p.Category, Valid: true}
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO products (id, merchant_id, name, price, stock, category, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.MerchantID, p.Name, p.Price, p.Stock, category, int(p.Status), p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert product %d: %w", p.ID, err)
	}
	return nil
}
