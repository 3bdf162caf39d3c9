// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package algorithms

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/shopsense/internal/models"
)

// ScoreCandidates ranks items a user has not bought yet.
//
// For every purchased item that has a similarity row, the row is walked in
// descending score order and each non-purchased candidate accumulates that
// score. Candidates are then ordered by accumulated score descending, ties by
// ascending item id, and truncated to topN. Purchased items never appear in
// the result. A non-positive topN yields nil.
func ScoreCandidates(sim *ItemSimilarity, purchased []int64, topN int) []Neighbor {
	if topN <= 0 || sim.Len() == 0 || len(purchased) == 0 {
		return nil
	}

	owned := make(map[int64]struct{}, len(purchased))
	for _, id := range purchased {
		owned[id] = struct{}{}
	}

	// Accumulate in a fixed purchased-item order so float sums are reproducible
	sources := make([]int64, 0, len(owned))
	for id := range owned {
		sources = append(sources, id)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	scores := make(map[int64]float64)
	for _, src := range sources {
		for _, n := range sim.Row(src) {
			if _, bought := owned[n.ItemID]; bought {
				continue
			}
			scores[n.ItemID] += n.Score
		}
	}

	ranked := make([]Neighbor, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, Neighbor{ItemID: id, Score: score})
	}
	sortNeighbors(ranked)

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Fingerprint returns a content hash of a purchase history.
//
// The hash is independent of event order, so two snapshots of the same
// history map to the same similarity cache entry.
//
//nolint:gocritic // rangeValCopy: PurchaseEvent is small
func Fingerprint(events []models.PurchaseEvent) string {
	sorted := make([]models.PurchaseEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].UserID != sorted[j].UserID {
			return sorted[i].UserID < sorted[j].UserID
		}
		if sorted[i].ItemID != sorted[j].ItemID {
			return sorted[i].ItemID < sorted[j].ItemID
		}
		return sorted[i].OrderCount < sorted[j].OrderCount
	})

	h := xxhash.New()
	var buf [24]byte
	for _, ev := range sorted {
		binary.LittleEndian.PutUint64(buf[0:8], uint64(ev.UserID))
		binary.LittleEndian.PutUint64(buf[8:16], uint64(ev.ItemID))
		binary.LittleEndian.PutUint64(buf[16:24], uint64(ev.OrderCount))
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
