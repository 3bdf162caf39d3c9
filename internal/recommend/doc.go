// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

// Package recommend serves personalized product recommendations.
//
// # Pipeline
//
// Each request reads the current purchase history and runs:
//
//  1. algorithms.BuildUserItemMatrix: distinct order counts per (user, item)
//  2. algorithms.ComputeItemSimilarity: cosine similarity between items,
//     rows computed concurrently
//  3. algorithms.ScoreCandidates: accumulate similarity from every item the
//     user bought, drop bought items, keep the top N
//  4. metadata resolution: missing or delisted products are dropped and the
//     merchant name falls back to "Unknown merchant"
//  5. popularity top-up: best sellers the user has not bought fill the list
//
// Users without history, and stores without orders, get the popularity
// ranking directly.
//
// # Similarity Cache
//
// Building the similarity matrix is the expensive step. With a
// SimilarityCache configured (MemorySimilarityCache or RedisSimilarityCache)
// the matrix is stored under an xxhash fingerprint of the purchase history,
// so it is reused only while the history is unchanged. Cache misses and
// cache errors always rebuild.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), db, logger,
//	    recommend.WithSimilarityCache(recommend.NewMemorySimilarityCache(8, 10*time.Minute)))
//	resp, err := engine.Recommend(ctx, recommend.Request{UserID: 42, TopN: 10})
package recommend
