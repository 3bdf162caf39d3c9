// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package advisor

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/shopsense/internal/models"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// sale is units sold for a product at an instant.
type sale struct {
	productID int64
	at        time.Time
	units     int
}

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu sync.Mutex

	products []models.Product
	sales    []sale

	productsErr error
	salesErr    error
	avgErr      error
	avgCalls    map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{avgCalls: make(map[string]int)}
}

func (f *fakeStore) addProduct(p models.Product) {
	f.products = append(f.products, p)
}

// sell records units sold daysAgo days before testNow.
func (f *fakeStore) sell(productID int64, daysAgo float64, units int) {
	at := testNow.Add(-time.Duration(daysAgo * float64(24*time.Hour)))
	f.sales = append(f.sales, sale{productID: productID, at: at, units: units})
}

func (f *fakeStore) SalesBetween(_ context.Context, productID int64, from, to time.Time) (int, error) {
	if f.salesErr != nil {
		return 0, f.salesErr
	}
	total := 0
	for _, s := range f.sales {
		if s.productID == productID && !s.at.Before(from) && s.at.Before(to) {
			total += s.units
		}
	}
	return total, nil
}

func (f *fakeStore) ProductsByMerchant(_ context.Context, merchantID int64) ([]models.Product, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	var out []models.Product
	for _, p := range f.products {
		if p.MerchantID == merchantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// uncategorized is the avgCalls key for a nil category.
const uncategorized = "<none>"

func (f *fakeStore) AvgActivePrice(_ context.Context, category *string) (float64, error) {
	label := uncategorized
	if category != nil {
		label = *category
	}
	f.mu.Lock()
	f.avgCalls[label]++
	f.mu.Unlock()
	if f.avgErr != nil {
		return 0, f.avgErr
	}
	var sum float64
	n := 0
	for _, p := range f.products {
		if !p.IsActive() {
			continue
		}
		same := p.Category == nil && category == nil ||
			p.Category != nil && category != nil && *p.Category == *category
		if same {
			sum += p.Price
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func strPtr(s string) *string { return &s }

func product(id int64, stock int, price float64, category *string) models.Product {
	return models.Product{
		ID:         id,
		MerchantID: 1,
		Name:       "product",
		Price:      price,
		Stock:      stock,
		Category:   category,
		Status:     models.ProductActive,
	}
}
