// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package advisor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/shopsense/internal/models"
)

// Sales windows, all ending at the evaluation time.
const (
	RecentWindow  = 7 * 24 * time.Hour
	MonthlyWindow = 30 * 24 * time.Hour
)

// Calculator derives a Snapshot for a product from the order history.
type Calculator struct {
	sales   SalesReader
	catalog CatalogReader
	now     func() time.Time
}

// NewCalculator creates a metrics calculator using the wall clock.
func NewCalculator(sales SalesReader, catalog CatalogReader) *Calculator {
	return &Calculator{sales: sales, catalog: catalog, now: time.Now}
}

// Compute returns the product's metrics as of now.
func (c *Calculator) Compute(ctx context.Context, p *models.Product) (Snapshot, error) {
	avg, err := c.categoryAverage(ctx, p.Category)
	if err != nil {
		return Snapshot{}, err
	}
	return c.computeAt(ctx, p, avg, c.now().UTC())
}

// categoryAverage averages the active products sharing the category. Products
// without a category are compared with the other uncategorized products.
func (c *Calculator) categoryAverage(ctx context.Context, category *string) (float64, error) {
	avg, err := c.catalog.AvgActivePrice(ctx, category)
	if err != nil {
		if category == nil {
			return 0, fmt.Errorf("average price for uncategorized products: %w", err)
		}
		return 0, fmt.Errorf("average price for category %q: %w", *category, err)
	}
	return avg, nil
}

// computeAt reads the three sales windows ending at now. The category
// average is supplied by the caller so a merchant run can share it across
// products.
func (c *Calculator) computeAt(ctx context.Context, p *models.Product, avg float64, now time.Time) (Snapshot, error) {
	recent, err := c.sales.SalesBetween(ctx, p.ID, now.Add(-RecentWindow), now)
	if err != nil {
		return Snapshot{}, fmt.Errorf("recent sales for product %d: %w", p.ID, err)
	}
	previous, err := c.sales.SalesBetween(ctx, p.ID, now.Add(-2*RecentWindow), now.Add(-RecentWindow))
	if err != nil {
		return Snapshot{}, fmt.Errorf("previous sales for product %d: %w", p.ID, err)
	}
	monthly, err := c.sales.SalesBetween(ctx, p.ID, now.Add(-MonthlyWindow), now)
	if err != nil {
		return Snapshot{}, fmt.Errorf("monthly sales for product %d: %w", p.ID, err)
	}

	return Snapshot{
		ProductID:        p.ID,
		ProductName:      p.Name,
		RecentSales:      recent,
		PreviousSales:    previous,
		MonthlySales:     monthly,
		Stock:            p.Stock,
		Price:            p.Price,
		AvgCategoryPrice: avg,
		TurnoverRate:     TurnoverRate(monthly, p.Stock),
		ChangePct:        ChangePct(recent, previous),
	}, nil
}

// TurnoverRate is monthly sales over current stock, 0 when out of stock.
func TurnoverRate(monthly, stock int) float64 {
	if stock <= 0 {
		return 0
	}
	return float64(monthly) / float64(stock)
}

// ChangePct is the week-over-week sales change in percent. With no sales
// in the previous week it is 100 if anything sold this week and 0 otherwise.
func ChangePct(recent, previous int) float64 {
	if previous > 0 {
		return float64(recent-previous) / float64(previous) * 100
	}
	if recent > 0 {
		return 100
	}
	return 0
}

// DaysToEmpty estimates how many whole days the stock lasts at the
// monthly sales pace. It is 0 when nothing sold in the month.
func DaysToEmpty(stock, monthly int) int {
	if monthly <= 0 {
		return 0
	}
	daily := float64(monthly) / 30
	return int(math.Floor(float64(stock) / daily))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns the snapshot as emitted with a suggestion.
func (s *Snapshot) Rounded() SuggestionMetrics {
	return SuggestionMetrics{
		RecentSales:      s.RecentSales,
		ChangePct:        round2(s.ChangePct),
		TurnoverRate:     round2(s.TurnoverRate),
		CurrentStock:     s.Stock,
		CurrentPrice:     round2(s.Price),
		AvgCategoryPrice: round2(s.AvgCategoryPrice),
	}
}
