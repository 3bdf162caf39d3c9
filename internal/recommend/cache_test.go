// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/shopsense/internal/cache"
	"github.com/tomtom215/shopsense/internal/metrics"
	"github.com/tomtom215/shopsense/internal/models"
	"github.com/tomtom215/shopsense/internal/recommend/algorithms"
)

func testSimilarity(t *testing.T) *algorithms.ItemSimilarity {
	t.Helper()
	m := algorithms.BuildUserItemMatrix([]models.PurchaseEvent{
		{UserID: 1, ItemID: 10, OrderCount: 1},
		{UserID: 1, ItemID: 11, OrderCount: 1},
		{UserID: 2, ItemID: 10, OrderCount: 1},
		{UserID: 2, ItemID: 12, OrderCount: 1},
	})
	sim, err := algorithms.ComputeItemSimilarity(context.Background(), m, 2)
	if err != nil {
		t.Fatalf("ComputeItemSimilarity() error = %v", err)
	}
	return sim
}

func TestMemorySimilarityCache(t *testing.T) {
	t.Parallel()

	c := NewMemorySimilarityCache(2, time.Minute)
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Get(missing) error = %v, want ErrMiss", err)
	}

	sim := testSimilarity(t)
	if err := c.Set(ctx, "k", sim); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get(k) error = %v", err)
	}
	if got != sim {
		t.Error("expected the stored matrix to be returned")
	}
	if c.Backend() != "memory" {
		t.Errorf("Backend() = %q", c.Backend())
	}
}

func TestMemorySimilarityCache_Expiry(t *testing.T) {
	t.Parallel()

	c := NewMemorySimilarityCache(2, time.Millisecond)
	if err := c.Set(context.Background(), "k", testSimilarity(t)); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Get after ttl error = %v, want ErrMiss", err)
	}
}

func TestMemorySimilarityCache_SweepPublishesSize(t *testing.T) {
	c := NewMemorySimilarityCache(4, 20*time.Millisecond)
	ctx := context.Background()
	if err := c.Set(ctx, "old", testSimilarity(t)); err != nil {
		t.Fatal(err)
	}
	time.Sleep(40 * time.Millisecond)
	if err := c.Set(ctx, "fresh", testSimilarity(t)); err != nil {
		t.Fatal(err)
	}

	if removed := c.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if got := testutil.ToFloat64(metrics.SimilarityCacheEntries); got != 1 {
		t.Errorf("cache entries gauge = %v, want 1", got)
	}
	if _, err := c.Get(ctx, "fresh"); err != nil {
		t.Errorf("Get(fresh) error = %v", err)
	}
}

func TestRedisSimilarityCache_RoundTrip(t *testing.T) {
	t.Parallel()

	c := &RedisSimilarityCache{store: &mapByteStore{data: make(map[string][]byte)}}
	ctx := context.Background()
	sim := testSimilarity(t)

	if err := c.Set(ctx, "fp", sim); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := c.Get(ctx, "fp")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	for _, a := range sim.Items() {
		for _, b := range sim.Items() {
			if got.Score(a, b) != sim.Score(a, b) {
				t.Errorf("Score(%d, %d) = %v, want %v", a, b, got.Score(a, b), sim.Score(a, b))
			}
		}
	}
	if c.Backend() != "redis" {
		t.Errorf("Backend() = %q", c.Backend())
	}
}

func TestRedisSimilarityCache_Errors(t *testing.T) {
	t.Parallel()

	store := &mapByteStore{data: map[string][]byte{"bad": []byte("{not json")}}
	c := &RedisSimilarityCache{store: store}
	ctx := context.Background()

	if _, err := c.Get(ctx, "absent"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Get(absent) error = %v, want ErrMiss", err)
	}

	_, err := c.Get(ctx, "bad")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, cache.ErrMiss) {
		t.Error("decode error must not look like a miss")
	}
}
