// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/shopsense/internal/logging"
	"github.com/tomtom215/shopsense/internal/models"
)

// demoOrder describes a seeded order line relative to the seeding time.
type demoOrder struct {
	orderID   int64
	userID    int64
	productID int64
	quantity  int
	daysAgo   int
}

func strPtr(s string) *string { return &s }

var demoMerchants = []models.Merchant{
	{ID: 1, Name: "Northwind Outfitters"},
	{ID: 2, Name: "Blue Harbor Books"},
}

var demoProducts = []models.Product{
	{ID: 101, MerchantID: 1, Name: "Trail Running Shoes", Price: 89.90, Stock: 10, Category: strPtr("footwear"), Status: models.ProductActive},
	{ID: 102, MerchantID: 1, Name: "Merino Hiking Socks", Price: 14.50, Stock: 120, Category: strPtr("footwear"), Status: models.ProductActive},
	{ID: 103, MerchantID: 1, Name: "Rain Shell Jacket", Price: 129.00, Stock: 80, Category: strPtr("apparel"), Status: models.ProductActive},
	{ID: 104, MerchantID: 1, Name: "Insulated Bottle", Price: 24.00, Stock: 300, Category: strPtr("gear"), Status: models.ProductActive},
	{ID: 105, MerchantID: 1, Name: "Vintage Compass", Price: 45.00, Stock: 15, Category: nil, Status: models.ProductDelisted},
	{ID: 201, MerchantID: 2, Name: "Field Guide to Birds", Price: 32.00, Stock: 40, Category: strPtr("books"), Status: models.ProductActive},
	{ID: 202, MerchantID: 2, Name: "Mountain Atlas", Price: 55.00, Stock: 60, Category: strPtr("books"), Status: models.ProductActive},
	{ID: 203, MerchantID: 2, Name: "Camp Cookbook", Price: 21.00, Stock: 25, Category: strPtr("books"), Status: models.ProductActive},
}

var demoOrders = []demoOrder{
	{orderID: 1, userID: 1, productID: 101, quantity: 1, daysAgo: 2},
	{orderID: 1, userID: 1, productID: 102, quantity: 3, daysAgo: 2},
	{orderID: 2, userID: 1, productID: 201, quantity: 1, daysAgo: 12},
	{orderID: 3, userID: 2, productID: 101, quantity: 2, daysAgo: 5},
	{orderID: 3, userID: 2, productID: 103, quantity: 1, daysAgo: 5},
	{orderID: 4, userID: 2, productID: 101, quantity: 1, daysAgo: 20},
	{orderID: 5, userID: 3, productID: 102, quantity: 2, daysAgo: 1},
	{orderID: 5, userID: 3, productID: 202, quantity: 1, daysAgo: 1},
	{orderID: 6, userID: 3, productID: 203, quantity: 4, daysAgo: 9},
	{orderID: 7, userID: 4, productID: 101, quantity: 10, daysAgo: 3},
	{orderID: 8, userID: 4, productID: 101, quantity: 12, daysAgo: 15},
	{orderID: 9, userID: 5, productID: 203, quantity: 30, daysAgo: 4},
	{orderID: 10, userID: 5, productID: 202, quantity: 2, daysAgo: 10},
}

// SeedDemoData creates the schema and loads a small, deterministic demo
// catalog with order history spread over the last three weeks. It does
// nothing when the products table already has rows.
func (db *DB) SeedDemoData(ctx context.Context, now time.Time) error {
	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		logging.Info().Int("products", count).Msg("Demo data skipped, catalog is not empty")
		return nil
	}

	logging.Info().Msg("Seeding database with demo catalog...")

	for i := range demoMerchants {
		if err := db.InsertMerchant(ctx, &demoMerchants[i]); err != nil {
			return err
		}
	}

	created := now.AddDate(0, -2, 0)
	for i := range demoProducts {
		p := demoProducts[i]
		p.CreatedAt = created
		if err := db.InsertProduct(ctx, &p); err != nil {
			return err
		}
	}

	for i, o := range demoOrders {
		order := models.Order{
			ID:        int64(i + 1),
			OrderID:   o.orderID,
			UserID:    o.userID,
			ProductID: o.productID,
			Quantity:  o.quantity,
			CreatedAt: now.AddDate(0, 0, -o.daysAgo),
		}
		if err := db.InsertOrder(ctx, &order); err != nil {
			return err
		}
	}

	logging.Info().
		Int("merchants", len(demoMerchants)).
		Int("products", len(demoProducts)).
		Int("orders", len(demoOrders)).
		Msg("Demo catalog seeded")
	return nil
}
