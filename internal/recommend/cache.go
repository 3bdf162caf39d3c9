// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopsense/internal/cache"
	"github.com/tomtom215/shopsense/internal/metrics"
	"github.com/tomtom215/shopsense/internal/recommend/algorithms"
)

// SimilarityCache stores item similarity matrices keyed by a fingerprint of
// the purchase history they were built from. Get reports an absent key with
// cache.ErrMiss. Any error makes the engine rebuild the matrix.
type SimilarityCache interface {
	Get(ctx context.Context, key string) (*algorithms.ItemSimilarity, error)
	Set(ctx context.Context, key string, sim *algorithms.ItemSimilarity) error
	// Backend names the cache in metrics ("memory" or "redis").
	Backend() string
}

// MemorySimilarityCache keeps matrices in a process-local LRU.
type MemorySimilarityCache struct {
	lru *cache.LRU[*algorithms.ItemSimilarity]
}

// NewMemorySimilarityCache creates an in-process cache holding up to
// capacity matrices for ttl each.
func NewMemorySimilarityCache(capacity int, ttl time.Duration) *MemorySimilarityCache {
	return &MemorySimilarityCache{lru: cache.NewLRU[*algorithms.ItemSimilarity](capacity, ttl)}
}

// Get returns the cached matrix or cache.ErrMiss.
func (c *MemorySimilarityCache) Get(_ context.Context, key string) (*algorithms.ItemSimilarity, error) {
	sim, ok := c.lru.Get(key)
	if !ok {
		return nil, cache.ErrMiss
	}
	return sim, nil
}

// Set stores the matrix. Matrices are immutable so sharing the pointer is safe.
func (c *MemorySimilarityCache) Set(_ context.Context, key string, sim *algorithms.ItemSimilarity) error {
	c.lru.Add(key, sim)
	return nil
}

// Backend returns "memory".
func (c *MemorySimilarityCache) Backend() string { return "memory" }

// Sweep drops expired entries, publishes the remaining size and returns how
// many were removed.
func (c *MemorySimilarityCache) Sweep() int {
	removed := c.lru.CleanupExpired()
	_, _, size := c.lru.Stats()
	metrics.RecordSimilarityCacheEntries(size)
	return removed
}

// byteStore is the subset of cache.RedisStore used here.
type byteStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisSimilarityCache shares matrices between replicas through Redis,
// encoded as JSON.
type RedisSimilarityCache struct {
	store byteStore
}

// NewRedisSimilarityCache wraps a breaker-guarded Redis store.
func NewRedisSimilarityCache(store *cache.RedisStore) *RedisSimilarityCache {
	return &RedisSimilarityCache{store: store}
}

// Get loads and decodes a matrix. A missing key returns cache.ErrMiss.
func (c *RedisSimilarityCache) Get(ctx context.Context, key string) (*algorithms.ItemSimilarity, error) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	sim := &algorithms.ItemSimilarity{}
	if err := json.Unmarshal(data, sim); err != nil {
		return nil, fmt.Errorf("decode similarity %s: %w", key, err)
	}
	return sim, nil
}

// Set encodes and stores a matrix.
func (c *RedisSimilarityCache) Set(ctx context.Context, key string, sim *algorithms.ItemSimilarity) error {
	data, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("encode similarity: %w", err)
	}
	return c.store.Set(ctx, key, data)
}

// Backend returns "redis".
func (c *RedisSimilarityCache) Backend() string { return "redis" }
