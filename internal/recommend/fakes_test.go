// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tomtom215/shopsense/internal/cache"
	"github.com/tomtom215/shopsense/internal/models"
	"github.com/tomtom215/shopsense/internal/recommend/algorithms"
)

// fakeStore is an in-memory Store. sales holds units sold per product for
// TopSellers; events is the purchase history.
type fakeStore struct {
	mu sync.Mutex

	events    []models.PurchaseEvent
	products  map[int64]models.Product
	merchants map[int64]models.Merchant
	sales     map[int64]int

	purchaseErr    error
	productErrs    map[int64]error
	merchantErr    error
	purchaseCalls  int
	topSellerCalls [][]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:    make(map[int64]models.Product),
		merchants:   make(map[int64]models.Merchant),
		sales:       make(map[int64]int),
		productErrs: make(map[int64]error),
	}
}

func (f *fakeStore) addProduct(id, merchantID int64, status models.ProductStatus, sold int) {
	cat := fmt.Sprintf("cat-%d", id%3)
	f.products[id] = models.Product{
		ID:         id,
		MerchantID: merchantID,
		Name:       fmt.Sprintf("product-%d", id),
		Price:      float64(id),
		Stock:      10,
		Category:   &cat,
		Status:     status,
	}
	f.sales[id] = sold
}

func (f *fakeStore) PurchaseCounts(context.Context) ([]models.PurchaseEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchaseCalls++
	if f.purchaseErr != nil {
		return nil, f.purchaseErr
	}
	return f.events, nil
}

func (f *fakeStore) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	if err := f.productErrs[id]; err != nil {
		return nil, err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, models.ErrNotFound)
	}
	return &p, nil
}

func (f *fakeStore) TopSellers(_ context.Context, exclude []int64, limit int) ([]models.Product, error) {
	f.mu.Lock()
	f.topSellerCalls = append(f.topSellerCalls, append([]int64(nil), exclude...))
	f.mu.Unlock()

	skip := make(map[int64]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	var out []models.Product
	for id, p := range f.products {
		if p.IsActive() && !skip[id] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := f.sales[out[i].ID], f.sales[out[j].ID]
		if si != sj {
			return si > sj
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) GetMerchant(_ context.Context, id int64) (*models.Merchant, error) {
	if f.merchantErr != nil {
		return nil, f.merchantErr
	}
	m, ok := f.merchants[id]
	if !ok {
		return nil, fmt.Errorf("merchant %d: %w", id, models.ErrNotFound)
	}
	return &m, nil
}

// failingCache always fails reads and writes with a non-miss error.
type failingCache struct{}

func (failingCache) Get(context.Context, string) (*algorithms.ItemSimilarity, error) {
	return nil, fmt.Errorf("connection refused")
}

func (failingCache) Set(context.Context, string, *algorithms.ItemSimilarity) error {
	return fmt.Errorf("connection refused")
}

func (failingCache) Backend() string { return "failing" }

// mapByteStore is an in-memory byteStore standing in for Redis.
type mapByteStore struct {
	data map[string][]byte
}

func (m *mapByteStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (m *mapByteStore) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func recordIDs(records []Record) []int64 {
	ids := make([]int64, len(records))
	for i := range records {
		ids[i] = records[i].ProductID
	}
	return ids
}
