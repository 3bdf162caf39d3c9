// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package algorithms

import (
	"sort"

	"github.com/tomtom215/shopsense/internal/models"
)

// UserItemMatrix is a sparse user -> item -> rating matrix.
//
// The rating of a (user, item) cell is the number of distinct orders in which
// the user bought the item. Absent cells are 0. A matrix is built fresh for
// every request and never mutated after construction. A nil matrix means the
// store holds no order history at all.
type UserItemMatrix map[int64]map[int64]float64

// BuildUserItemMatrix aggregates purchase events into a UserItemMatrix.
//
// Events for the same (user, item) pair are summed, so callers may pass either
// pre-aggregated counts or one event per order. Events with a non-positive
// order count carry no signal and are skipped. Returns nil when no event
// remains, which callers treat as the popularity fallback signal.
//
//nolint:gocritic // rangeValCopy: PurchaseEvent is small
func BuildUserItemMatrix(events []models.PurchaseEvent) UserItemMatrix {
	if len(events) == 0 {
		return nil
	}

	m := make(UserItemMatrix)
	for _, ev := range events {
		if ev.OrderCount <= 0 {
			continue
		}
		row := m[ev.UserID]
		if row == nil {
			row = make(map[int64]float64)
			m[ev.UserID] = row
		}
		row[ev.ItemID] += float64(ev.OrderCount)
	}

	if len(m) == 0 {
		return nil
	}
	return m
}

// Purchased returns the distinct item ids the user has bought, ascending.
// Unknown users yield an empty slice.
func (m UserItemMatrix) Purchased(userID int64) []int64 {
	row := m[userID]
	if len(row) == 0 {
		return nil
	}

	items := make([]int64, 0, len(row))
	for itemID := range row {
		items = append(items, itemID)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}

// Items returns every item id that appears in the matrix, ascending.
func (m UserItemMatrix) Items() []int64 {
	seen := make(map[int64]struct{})
	for _, row := range m {
		for itemID := range row {
			seen[itemID] = struct{}{}
		}
	}

	items := make([]int64, 0, len(seen))
	for itemID := range seen {
		items = append(items, itemID)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}

// Users returns every user id in the matrix, ascending.
func (m UserItemMatrix) Users() []int64 {
	users := make([]int64, 0, len(m))
	for userID := range m {
		users = append(users, userID)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}

// Rating returns the cell value, 0 when absent.
func (m UserItemMatrix) Rating(userID, itemID int64) float64 {
	return m[userID][itemID]
}

// itemVectors transposes the matrix into item-major sparse vectors
// (item -> user -> rating).
func (m UserItemMatrix) itemVectors() map[int64]map[int64]float64 {
	vectors := make(map[int64]map[int64]float64)
	for userID, row := range m {
		for itemID, rating := range row {
			vec := vectors[itemID]
			if vec == nil {
				vec = make(map[int64]float64)
				vectors[itemID] = vec
			}
			vec[userID] = rating
		}
	}
	return vectors
}
