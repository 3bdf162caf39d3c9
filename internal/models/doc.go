// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

/*
Package models defines data structures shared across ShopSense.

Catalog Models:
  - Product: A merchant's listing with price, stock, optional category and status
  - Merchant: Owner of products
  - Order: A single order line (order_id, user, product, quantity, timestamp)
  - PurchaseEvent: Distinct-order count per (user, item), the implicit rating
    consumed by the recommender

API Models:
  - APIResponse: Standard response wrapper ("success" or "error")
  - APIError: Machine-readable code plus message
  - Metadata: Timestamp, query time and request id
  - HealthStatus: Liveness and readiness payload

Product status values mirror the storage encoding: 1 is active (listed),
2 is delisted.

Usage Example:

	import "github.com/tomtom215/shopsense/internal/models"

	p := &models.Product{ID: 7, MerchantID: 1, Name: "Kettle", Price: 29.9, Stock: 12,
	    Status: models.ProductActive}
	if p.IsActive() {
	    // eligible for recommendation
	}

Thread Safety:

Models are plain value types with no internal synchronization. Values
returned by repositories are owned by the caller.
*/
package models
