// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package advisor

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/shopsense/internal/models"
)

func TestChangePct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		recent   int
		previous int
		want     float64
	}{
		{"no sales either week", 0, 0, 0},
		{"new sales", 5, 0, 100},
		{"doubled", 20, 10, 100},
		{"halved", 5, 10, -50},
		{"stopped", 0, 10, -100},
		{"flat", 7, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ChangePct(tt.recent, tt.previous); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ChangePct(%d, %d) = %v, want %v", tt.recent, tt.previous, got, tt.want)
			}
		})
	}
}

func TestTurnoverRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		monthly, stock int
		want           float64
	}{
		{40, 10, 4},
		{10, 40, 0.25},
		{10, 0, 0},
		{0, 10, 0},
		{5, -3, 0},
	}
	for _, tt := range tests {
		if got := TurnoverRate(tt.monthly, tt.stock); got != tt.want {
			t.Errorf("TurnoverRate(%d, %d) = %v, want %v", tt.monthly, tt.stock, got, tt.want)
		}
	}
}

func TestDaysToEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stock, monthly int
		want           int
	}{
		{10, 40, 7},
		{30, 30, 30},
		{1, 90, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := DaysToEmpty(tt.stock, tt.monthly); got != tt.want {
			t.Errorf("DaysToEmpty(%d, %d) = %d, want %d", tt.stock, tt.monthly, got, tt.want)
		}
	}
}

func TestCalculator_Compute(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	kitchen := strPtr("kitchen")
	p := product(1, 20, 10, kitchen)
	store.addProduct(p)
	other := product(2, 5, 30, kitchen)
	store.addProduct(other)

	store.sell(1, 1, 6)    // recent
	store.sell(1, 7, 4)    // recent: window start is inclusive
	store.sell(1, 7.5, 5)  // previous
	store.sell(1, 13, 3)   // previous
	store.sell(1, 20, 2)   // monthly only
	store.sell(1, 30, 1)   // monthly: window start is inclusive
	store.sell(1, 31, 100) // outside
	store.sell(1, 0, 100)  // at now: end is exclusive

	calc := NewCalculator(store, store)
	calc.now = func() time.Time { return testNow }

	snap, err := calc.Compute(context.Background(), &p)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if snap.RecentSales != 10 {
		t.Errorf("RecentSales = %d, want 10", snap.RecentSales)
	}
	if snap.PreviousSales != 8 {
		t.Errorf("PreviousSales = %d, want 8", snap.PreviousSales)
	}
	if snap.MonthlySales != 21 {
		t.Errorf("MonthlySales = %d, want 21", snap.MonthlySales)
	}
	if math.Abs(snap.TurnoverRate-1.05) > 1e-9 {
		t.Errorf("TurnoverRate = %v, want 1.05", snap.TurnoverRate)
	}
	if math.Abs(snap.ChangePct-25) > 1e-9 {
		t.Errorf("ChangePct = %v, want 25", snap.ChangePct)
	}
	if snap.AvgCategoryPrice != 20 {
		t.Errorf("AvgCategoryPrice = %v, want 20 (includes the product itself)", snap.AvgCategoryPrice)
	}
}

func TestCalculator_NilCategoryAveragesUncategorized(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	p := product(1, 20, 10, nil)
	store.addProduct(p)
	store.addProduct(product(2, 5, 100, nil))
	store.addProduct(product(3, 5, 100, nil))
	delisted := product(4, 5, 900, nil)
	delisted.Status = models.ProductDelisted
	store.addProduct(delisted)
	store.addProduct(product(5, 5, 500, strPtr("toys")))

	calc := NewCalculator(store, store)
	calc.now = func() time.Time { return testNow }

	snap, err := calc.Compute(context.Background(), &p)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if math.Abs(snap.AvgCategoryPrice-70) > 1e-9 {
		t.Errorf("AvgCategoryPrice = %v, want 70", snap.AvgCategoryPrice)
	}
	if n := store.avgCalls[uncategorized]; n != 1 {
		t.Errorf("uncategorized average loaded %d times, want 1", n)
	}
}

func TestCalculator_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")

	store := newFakeStore()
	store.salesErr = boom
	p := product(1, 20, 10, nil)
	if _, err := NewCalculator(store, store).Compute(context.Background(), &p); !errors.Is(err, boom) {
		t.Errorf("sales error = %v, want %v", err, boom)
	}

	store = newFakeStore()
	store.avgErr = boom
	p = product(1, 20, 10, strPtr("toys"))
	if _, err := NewCalculator(store, store).Compute(context.Background(), &p); !errors.Is(err, boom) {
		t.Errorf("average error = %v, want %v", err, boom)
	}
}

func TestSnapshot_Rounded(t *testing.T) {
	t.Parallel()

	s := Snapshot{
		RecentSales:      3,
		Stock:            9,
		Price:            19.999,
		AvgCategoryPrice: 12.3456,
		TurnoverRate:     1.0 / 3.0,
		ChangePct:        -33.33333,
	}
	got := s.Rounded()
	want := SuggestionMetrics{
		RecentSales:      3,
		ChangePct:        -33.33,
		TurnoverRate:     0.33,
		CurrentStock:     9,
		CurrentPrice:     20,
		AvgCategoryPrice: 12.35,
	}
	if got != want {
		t.Errorf("Rounded() = %+v, want %+v", got, want)
	}
}
