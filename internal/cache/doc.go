// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

/*
Package cache provides the two storage backends behind the similarity cache.

# Backends

LRU is a generic, thread-safe, in-process Least Recently Used cache with a
per-entry TTL:

	c := cache.NewLRU[*algorithms.ItemSimilarity](16, 10*time.Minute)
	c.Add(fingerprint, sim)
	if sim, ok := c.Get(fingerprint); ok {
	    // reuse
	}

RedisStore is a byte-oriented store on Redis (go-redis/v9) for deployments
running several replicas. All calls go through a sony/gobreaker circuit
breaker; a missing key is ErrMiss and never trips the breaker:

	store := cache.NewRedisStore(cache.RedisConfig{
	    Addr:      "localhost:6379",
	    KeyPrefix: "shopsense:sim:",
	    TTL:       10 * time.Minute,
	})
	data, err := store.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
	    // rebuild
	}

# Correctness

Entries are keyed by a content fingerprint of the data they were built
from, so a stale entry can never be served for changed data. Any cache
failure is treated as a miss by callers.

# Observability

RedisStore exports circuit breaker state, transitions and per-call results
through the metrics package.
*/
package cache
