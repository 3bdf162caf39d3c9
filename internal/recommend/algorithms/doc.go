// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

// Package algorithms implements the item-based collaborative filtering math
// behind the recommendation engine.
//
// # Pipeline
//
//  1. BuildUserItemMatrix: purchase events -> sparse user x item matrix whose
//     cells are distinct order counts (nil when there is no history)
//  2. ComputeItemSimilarity: item-major vectors -> symmetric cosine matrix
//  3. ScoreCandidates: accumulate similarity from each purchased item to every
//     item the user has not bought, rank and truncate
//
// Fingerprint hashes a purchase history with xxhash so a built similarity
// matrix can be cached and reused while the history is unchanged.
//
// # Ordering
//
// Every ordering in this package breaks ties by ascending item id, so results
// are deterministic for a given input.
//
// # Usage Example
//
//	matrix := algorithms.BuildUserItemMatrix(events)
//	if matrix == nil {
//	    // no history: use popularity
//	}
//	sim, err := algorithms.ComputeItemSimilarity(ctx, matrix, 4)
//	if err != nil {
//	    return err
//	}
//	ranked := algorithms.ScoreCandidates(sim, matrix.Purchased(userID), 10)
//
// # Thread Safety
//
// UserItemMatrix and ItemSimilarity are read-only after construction and may
// be shared between goroutines.
package algorithms
