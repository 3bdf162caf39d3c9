// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper drops expired cache entries and reports how many it removed.
// *recommend.MemorySimilarityCache satisfies it.
type Sweeper interface {
	Sweep() int
}

// CacheSweepService periodically evicts expired in-memory cache entries so
// large similarity matrices do not outlive their TTL waiting for the LRU.
type CacheSweepService struct {
	sweeper  Sweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheSweepService creates the sweeper. A non-positive interval means
// one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheSweepService(sweeper Sweeper, interval time.Duration, logger zerolog.Logger) *CacheSweepService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheSweepService{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With().Str("service", "cache-sweeper").Logger(),
		name:     "cache-sweeper",
	}
}

// Serve implements suture.Service.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.sweeper.Sweep(); n > 0 {
				s.logger.Debug().Int("evicted", n).Msg("Expired cache entries swept")
			}
		}
	}
}

// String implements fmt.Stringer for suture's event log.
func (s *CacheSweepService) String() string {
	return s.name
}
