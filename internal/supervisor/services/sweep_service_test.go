// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsense/internal/recommend"
	"github.com/tomtom215/shopsense/internal/recommend/algorithms"
)

type countingSweeper struct{ calls atomic.Int32 }

func (c *countingSweeper) Sweep() int {
	c.calls.Add(1)
	return 1
}

func TestCacheSweepService_Ticks(t *testing.T) {
	t.Parallel()

	sweeper := &countingSweeper{}
	svc := NewCacheSweepService(sweeper, 15*time.Millisecond, zerolog.Nop())

	err := runFor(t, svc.Serve, 80*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if got := sweeper.calls.Load(); got < 2 {
		t.Errorf("Sweep() called %d times, want at least 2", got)
	}
}

func TestCacheSweepService_DefaultInterval(t *testing.T) {
	t.Parallel()

	svc := NewCacheSweepService(&countingSweeper{}, 0, zerolog.Nop())
	if svc.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", svc.interval)
	}
}

func TestCacheSweepService_EvictsExpiredSimilarity(t *testing.T) {
	t.Parallel()

	c := recommend.NewMemorySimilarityCache(4, 10*time.Millisecond)
	if err := c.Set(context.Background(), "k", &algorithms.ItemSimilarity{}); err != nil {
		t.Fatal(err)
	}

	svc := NewCacheSweepService(c, 20*time.Millisecond, zerolog.Nop())
	_ = runFor(t, svc.Serve, 60*time.Millisecond)

	if c.Sweep() != 0 {
		t.Error("expired entry survived the sweeper")
	}
}
