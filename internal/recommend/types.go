// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/shopsense/internal/models"
)

// Reason tells the client why an item was recommended.
type Reason string

const (
	// ReasonHistory marks items ranked by item-based collaborative filtering
	// over the user's purchase history.
	ReasonHistory Reason = "history"

	// ReasonPopularity marks best sellers used as a fallback or top-up.
	ReasonPopularity Reason = "popularity"
)

// UnknownMerchant is the merchant name used when the owning merchant of a
// product cannot be resolved.
const UnknownMerchant = "Unknown merchant"

// Path labels describe which ranking path produced a response.
const (
	PathHistory    = "history"
	PathPopularity = "popularity"
)

// ErrInvalidRequest is returned for requests that cannot be served, such as a
// non-positive user id or a negative TopN.
var ErrInvalidRequest = errors.New("invalid recommendation request")

// Request asks for personalized recommendations.
type Request struct {
	// UserID is the user to generate recommendations for.
	UserID int64 `json:"user_id"`

	// TopN is the maximum number of items to return.
	// Defaults to Config.DefaultTopN if zero and is capped at Config.MaxTopN.
	TopN int `json:"top_n,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Record is one recommended product.
type Record struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Category     *string `json:"category"`
	MerchantName string  `json:"merchant_name"`
	Reason       Reason  `json:"reason"`

	// Score is the accumulated similarity. Only history records carry one.
	Score *float64 `json:"score,omitempty"`
}

// Response is the ranked recommendation list for one request.
type Response struct {
	// Items holds history records first, then popularity top-up records.
	Items []Record `json:"items"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`
	UserID    int64  `json:"user_id"`

	// Path is "history" when collaborative filtering ran, "popularity" when
	// the request fell back entirely to best sellers.
	Path string `json:"path"`

	HistoryItems    int `json:"history_items"`
	PopularityItems int `json:"popularity_items"`

	// SimilarityCached reports whether the similarity matrix came from cache.
	SimilarityCached bool `json:"similarity_cached"`

	LatencyMS   int64     `json:"latency_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

// OrderReader provides the purchase history the user-item matrix is built from.
type OrderReader interface {
	// PurchaseCounts returns the distinct order count per (user, item) pair.
	PurchaseCounts(ctx context.Context) ([]models.PurchaseEvent, error)
}

// ProductReader resolves product metadata and best sellers.
type ProductReader interface {
	// GetProduct returns a product in any status, or an error wrapping
	// models.ErrNotFound.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)

	// TopSellers returns active products by units sold descending, ties by
	// ascending id, skipping ids in exclude.
	TopSellers(ctx context.Context, exclude []int64, limit int) ([]models.Product, error)
}

// MerchantReader resolves merchant names.
type MerchantReader interface {
	GetMerchant(ctx context.Context, id int64) (*models.Merchant, error)
}

// Store is the full set of reads the engine needs. *database.DB satisfies it.
type Store interface {
	OrderReader
	ProductReader
	MerchantReader
}
