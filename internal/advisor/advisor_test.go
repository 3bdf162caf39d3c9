// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package advisor

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsense/internal/models"
)

func newTestAdvisor(t *testing.T, store Store, workers int) *Advisor {
	t.Helper()
	a, err := New(store, workers, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a.calc.now = func() time.Time { return testNow }
	return a
}

// merchantStore builds merchant 1 with one product per outcome:
//
//	1: low stock (high)
//	2: delisted, unsold, stock 60 (stale, medium)
//	3: fast seller with little stock (restock, low)
//	4: steady seller, nothing to say
//	5: overstocked (excess inventory, medium)
//
// Merchant 2 owns product 6, which must never show up.
func merchantStore() *fakeStore {
	s := newFakeStore()
	kitchen := strPtr("kitchen")

	s.addProduct(product(1, 10, 10, kitchen))
	delisted := product(2, 60, 99, kitchen)
	delisted.Status = models.ProductDelisted
	s.addProduct(delisted)
	s.addProduct(product(3, 30, 30, kitchen))
	s.addProduct(product(4, 80, 5, strPtr("garden")))
	s.addProduct(product(5, 300, 7, nil))
	other := product(6, 60, 1, nil)
	other.MerchantID = 2
	s.addProduct(other)

	s.sell(1, 1, 20)
	s.sell(1, 10, 20)
	s.sell(3, 2, 30)
	s.sell(3, 9, 30)
	s.sell(4, 2, 10)
	s.sell(4, 9, 10)
	s.sell(5, 2, 5)
	s.sell(5, 9, 5)
	return s
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	store := merchantStore()
	a := newTestAdvisor(t, store, 3)

	got, err := a.Suggestions(context.Background(), 1)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}

	type brief struct {
		id       int64
		rule     string
		priority Priority
	}
	var briefs []brief
	for _, s := range got {
		briefs = append(briefs, brief{s.ProductID, s.Rule, s.Priority})
	}
	want := []brief{
		{1, "low_stock", PriorityHigh},
		{2, "stale_inventory", PriorityMedium},
		{5, "excess_inventory", PriorityMedium},
		{3, "restock", PriorityLow},
	}
	if !reflect.DeepEqual(briefs, want) {
		t.Fatalf("suggestions = %+v, want %+v", briefs, want)
	}

	first := got[0]
	if first.Suggestion != "Low stock: expected to sell out in 7 days, restock soon" {
		t.Errorf("Suggestion = %q", first.Suggestion)
	}
	wantMetrics := SuggestionMetrics{
		RecentSales:      20,
		ChangePct:        0,
		TurnoverRate:     4,
		CurrentStock:     10,
		CurrentPrice:     10,
		AvgCategoryPrice: 20,
	}
	if first.Metrics != wantMetrics {
		t.Errorf("Metrics = %+v, want %+v", first.Metrics, wantMetrics)
	}
	if !first.GeneratedAt.Equal(testNow) {
		t.Errorf("GeneratedAt = %v, want %v", first.GeneratedAt, testNow)
	}

	if n := store.avgCalls["kitchen"]; n != 1 {
		t.Errorf("kitchen average loaded %d times, want 1", n)
	}
}

func TestSuggestions_UncategorizedPriceIncrease(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addProduct(product(1, 150, 10, nil))
	store.addProduct(product(2, 5, 100, nil))
	store.addProduct(product(3, 5, 100, nil))
	store.sell(1, 1, 5)

	got, err := newTestAdvisor(t, store, 2).Suggestions(context.Background(), 1)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if len(got) == 0 || got[0].ProductID != 1 {
		t.Fatalf("Suggestions() = %+v, want product 1 first", got)
	}
	if got[0].Rule != "price_increase" {
		t.Errorf("Rule = %q, want price_increase", got[0].Rule)
	}
	if got[0].Metrics.AvgCategoryPrice != 70 {
		t.Errorf("AvgCategoryPrice = %v, want 70", got[0].Metrics.AvgCategoryPrice)
	}
	if n := store.avgCalls[uncategorized]; n != 1 {
		t.Errorf("uncategorized average loaded %d times, want 1", n)
	}
}

func TestSuggestions_Deterministic(t *testing.T) {
	t.Parallel()

	a := newTestAdvisor(t, merchantStore(), 8)
	first, err := a.Suggestions(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := a.Suggestions(context.Background(), 1)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs", i)
		}
	}
}

func TestSuggestions_EmptyMerchant(t *testing.T) {
	t.Parallel()

	got, err := newTestAdvisor(t, merchantStore(), 1).Suggestions(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Suggestions() = %v, want empty list", got)
	}
}

func TestSuggestions_InvalidMerchant(t *testing.T) {
	t.Parallel()

	a := newTestAdvisor(t, merchantStore(), 1)
	for _, id := range []int64{0, -1} {
		if _, err := a.Suggestions(context.Background(), id); !errors.Is(err, ErrInvalidMerchant) {
			t.Errorf("Suggestions(%d) error = %v, want ErrInvalidMerchant", id, err)
		}
	}
}

func TestSuggestions_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	tests := []struct {
		name  string
		setup func(*fakeStore)
	}{
		{"products", func(s *fakeStore) { s.productsErr = boom }},
		{"sales", func(s *fakeStore) { s.salesErr = boom }},
		{"average", func(s *fakeStore) { s.avgErr = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := merchantStore()
			tt.setup(store)
			if _, err := newTestAdvisor(t, store, 2).Suggestions(context.Background(), 1); !errors.Is(err, boom) {
				t.Errorf("Suggestions() error = %v, want %v", err, boom)
			}
		})
	}
}

func TestSortByPriority_Stable(t *testing.T) {
	t.Parallel()

	in := []Suggestion{
		{ProductName: "A", Priority: PriorityLow},
		{ProductName: "B", Priority: PriorityHigh},
		{ProductName: "C", Priority: PriorityMedium},
		{ProductName: "D", Priority: PriorityHigh},
	}
	SortByPriority(in)

	var got []string
	for _, s := range in {
		got = append(got, s.ProductName+":"+string(s.Priority))
	}
	want := []string{"B:high", "D:high", "C:medium", "A:low"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByPriority() = %v, want %v", got, want)
	}
}

func TestPriority_Rank(t *testing.T) {
	t.Parallel()

	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("priorities must order high < medium < low")
	}
	if Priority("other").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priority must sort last")
	}
}

func TestSuggestion_JSONShape(t *testing.T) {
	t.Parallel()

	s := Suggestion{
		ProductID:   7,
		ProductName: "Kettle",
		Suggestion:  "Selling well, increase stock to meet demand",
		Priority:    PriorityLow,
		Metrics:     SuggestionMetrics{RecentSales: 1},
		GeneratedAt: testNow,
		Rule:        "restock",
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"product_id", "product_name", "suggestion", "priority", "metrics", "generated_at"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if _, ok := decoded["rule"]; ok {
		t.Error("rule must not be serialized")
	}
	if decoded["priority"] != "low" {
		t.Errorf("priority = %v, want low", decoded["priority"])
	}

	metrics, _ := decoded["metrics"].(map[string]any)
	for _, key := range []string{"recent_sales", "change_pct", "turnover_rate", "current_stock", "current_price", "avg_category_price"} {
		if _, ok := metrics[key]; !ok {
			t.Errorf("missing metrics key %q", key)
		}
	}
}
