// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package database

import (
	"testing"

	"github.com/tomtom215/shopsense/internal/models"
)

// checkNoError fails the test if err is not nil
func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// checkIntEqual checks that got equals want
func checkIntEqual(t *testing.T, fieldName string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

// checkProductIDs checks the ids of products in order
func checkProductIDs(t *testing.T, got []models.Product, want ...int64) {
	t.Helper()
	ids := make([]int64, len(got))
	for i := range got {
		ids[i] = got[i].ID
	}
	if len(ids) != len(want) {
		t.Fatalf("product ids: expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("product ids: expected %v, got %v", want, ids)
		}
	}
}
