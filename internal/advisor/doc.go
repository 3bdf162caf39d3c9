// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

// Package advisor turns a merchant's sales history into prioritized,
// human-readable suggestions.
//
// For every product of the merchant the Calculator derives a Snapshot:
// units sold in the last 7 days, the 7 days before that and the last 30
// days, turnover rate (monthly sales over stock), week-over-week change in
// percent and the average price of active products in the same category.
//
// The RuleEngine walks an ordered table of CEL conditions and returns the
// first match:
//
//	low_stock         turnover_rate > 2 && stock < monthly_sales * 0.3   high
//	stale_inventory   recent_sales == 0 && stock > 50                   medium
//	declining_sales   change_pct < -10 && turnover_rate < 0.5           medium
//	price_increase    change_pct > 20 && price < avg * 0.9 && stock > 100 low
//	excess_inventory  turnover_rate < 0.2 && stock > 200                medium
//	restock           turnover_rate > 1.5 && stock < 50                 low
//
// Advisor.Suggestions evaluates products concurrently and returns the
// matches sorted high, medium, low, keeping product id order within a
// priority.
package advisor
