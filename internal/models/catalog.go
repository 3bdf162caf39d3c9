// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package models

import (
	"time"
)

// ProductStatus is the listing state of a product in the catalog.
type ProductStatus int

const (
	// ProductActive marks a product that is listed and purchasable.
	ProductActive ProductStatus = 1

	// ProductDelisted marks a product removed from sale. Delisted products
	// are never recommended but still receive merchant suggestions.
	ProductDelisted ProductStatus = 2
)

// String returns the lowercase status name used in logs.
func (s ProductStatus) String() string {
	switch s {
	case ProductActive:
		return "active"
	case ProductDelisted:
		return "delisted"
	default:
		return "unknown"
	}
}

// Product is a catalog entry owned by a single merchant.
//
// Category is nil for uncategorized products. Price is stored as
// DECIMAL(10,2) in the database and scanned as a float64.
type Product struct {
	ID         int64         `json:"id"`
	MerchantID int64         `json:"merchant_id"`
	Name       string        `json:"name"`
	Price      float64       `json:"price"`
	Stock      int           `json:"stock"`
	Category   *string       `json:"category"`
	Status     ProductStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// IsActive reports whether the product is currently listed.
func (p *Product) IsActive() bool {
	return p.Status == ProductActive
}

// Merchant owns products in the marketplace.
type Merchant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Order is a single order line: one product bought by one user.
// Several lines may share an OrderID.
type Order struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// PurchaseEvent is the implicit rating a user gave an item: the number of
// distinct orders in which the user bought it. Quantity is ignored.
type PurchaseEvent struct {
	UserID     int64 `json:"user_id"`
	ItemID     int64 `json:"item_id"`
	OrderCount int   `json:"order_count"`
}
