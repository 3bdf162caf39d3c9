// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package advisor

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/shopsense/internal/models"
)

// ErrInvalidMerchant is returned for a non-positive merchant id.
var ErrInvalidMerchant = errors.New("invalid merchant")

// Priority orders suggestions for a merchant.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort position of the priority: high first. Unknown
// priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Snapshot holds the sales and inventory figures for one product at one
// point in time. Values are unrounded; rules evaluate against them.
type Snapshot struct {
	ProductID        int64
	ProductName      string
	RecentSales      int // units sold in [now-7d, now)
	PreviousSales    int // units sold in [now-14d, now-7d)
	MonthlySales     int // units sold in [now-30d, now)
	Stock            int
	Price            float64
	AvgCategoryPrice float64
	TurnoverRate     float64
	ChangePct        float64
}

// SuggestionMetrics is the rounded view of a Snapshot emitted with each
// suggestion.
type SuggestionMetrics struct {
	RecentSales      int     `json:"recent_sales"`
	ChangePct        float64 `json:"change_pct"`
	TurnoverRate     float64 `json:"turnover_rate"`
	CurrentStock     int     `json:"current_stock"`
	CurrentPrice     float64 `json:"current_price"`
	AvgCategoryPrice float64 `json:"avg_category_price"`
}

// Suggestion is one actionable piece of advice for a product.
type Suggestion struct {
	ProductID   int64             `json:"product_id"`
	ProductName string            `json:"product_name"`
	Suggestion  string            `json:"suggestion"`
	Priority    Priority          `json:"priority"`
	Metrics     SuggestionMetrics `json:"metrics"`
	GeneratedAt time.Time         `json:"generated_at"`

	// Rule names the rule that produced the suggestion.
	Rule string `json:"-"`
}

// SalesReader sums units sold for a product in a half-open time window.
type SalesReader interface {
	SalesBetween(ctx context.Context, productID int64, from, to time.Time) (int, error)
}

// CatalogReader reads a merchant's products and category price averages.
type CatalogReader interface {
	ProductsByMerchant(ctx context.Context, merchantID int64) ([]models.Product, error)
	AvgActivePrice(ctx context.Context, category *string) (float64, error)
}

// Store is everything the advisor reads. *database.DB satisfies it.
type Store interface {
	SalesReader
	CatalogReader
}
