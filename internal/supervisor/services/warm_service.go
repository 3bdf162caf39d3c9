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

// warmTimeout bounds a single rebuild so a stuck query cannot pin the loop.
const warmTimeout = 5 * time.Minute

// SimilarityWarmer rebuilds and caches the item similarity matrix.
// *recommend.Engine satisfies it.
type SimilarityWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// SimilarityWarmService warms the similarity cache on startup and then
// every interval. Failures are logged and retried on the next tick rather
// than returned, so a flaky database does not trip the supervisor backoff.
type SimilarityWarmService struct {
	warmer   SimilarityWarmer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSimilarityWarmService creates the warmer. interval must be positive;
// callers skip the service when warming is disabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSimilarityWarmService(warmer SimilarityWarmer, interval time.Duration, logger zerolog.Logger) *SimilarityWarmService {
	return &SimilarityWarmService{
		warmer:   warmer,
		interval: interval,
		logger:   logger.With().Str("service", "similarity-warmer").Logger(),
		name:     "similarity-warmer",
	}
}

// Serve implements suture.Service.
func (s *SimilarityWarmService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("Similarity warmer starting")
	s.warm(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Similarity warmer shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.warm(ctx)
		}
	}
}

func (s *SimilarityWarmService) warm(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, warmTimeout)
	defer cancel()

	start := time.Now()
	items, err := s.warmer.Warm(warmCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("Similarity warm failed, retrying next interval")
		}
		return
	}
	s.logger.Debug().Int("items", items).Dur("took", time.Since(start)).Msg("Similarity cache warmed")
}

// String implements fmt.Stringer for suture's event log.
func (s *SimilarityWarmService) String() string {
	return s.name
}
