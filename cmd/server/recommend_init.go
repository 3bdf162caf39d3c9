// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/shopsense/internal/cache"
	"github.com/tomtom215/shopsense/internal/config"
	"github.com/tomtom215/shopsense/internal/logging"
	"github.com/tomtom215/shopsense/internal/recommend"
	"github.com/tomtom215/shopsense/internal/supervisor"
	"github.com/tomtom215/shopsense/internal/supervisor/services"
)

// buildEngineConfig maps application config onto the engine config. The
// API limit bound doubles as the engine's TopN cap.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		DefaultTopN: cfg.Recommend.DefaultTopN,
		MaxTopN:     cfg.API.MaxLimit,
		Workers:     cfg.Recommend.Workers,
	}
}

// initRecommend builds the recommendation engine with the configured
// similarity cache and registers its background services on the tree. The
// returned func releases the cache backend.
func initRecommend(ctx context.Context, cfg *config.Config, store recommend.Store, tree *supervisor.SupervisorTree) (*recommend.Engine, func(), error) {
	logger := logging.WithComponent("recommend")
	rc := &cfg.Recommend
	closeFn := func() {}

	var opts []recommend.Option
	switch rc.CacheBackend {
	case config.CacheMemory:
		memCache := recommend.NewMemorySimilarityCache(rc.CacheCapacity, rc.CacheTTL)
		opts = append(opts, recommend.WithSimilarityCache(memCache))
		tree.AddDataService(services.NewCacheSweepService(memCache, rc.CacheTTL, logger))

	case config.CacheRedis:
		redisStore := cache.NewRedisStore(cache.RedisConfig{
			Addr:      rc.RedisAddr,
			Password:  rc.RedisPassword,
			DB:        rc.RedisDB,
			KeyPrefix: rc.KeyPrefix,
			TTL:       rc.CacheTTL,
		})
		if err := redisStore.Ping(ctx); err != nil {
			// The breaker turns an unavailable redis into cache misses.
			logger.Warn().Err(err).Str("addr", rc.RedisAddr).Msg("Redis unreachable at startup, similarity will be rebuilt per request")
		}
		opts = append(opts, recommend.WithSimilarityCache(recommend.NewRedisSimilarityCache(redisStore)))
		closeFn = func() {
			if err := redisStore.Close(); err != nil {
				logger.Warn().Err(err).Msg("Error closing redis client")
			}
		}
	}

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), store, logging.Logger(), opts...)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("create engine: %w", err)
	}

	if rc.CacheBackend != config.CacheNone && rc.WarmInterval > 0 {
		tree.AddRecommendService(services.NewSimilarityWarmService(engine, rc.WarmInterval, logger))
	}

	logger.Info().
		Str("cache", rc.CacheBackend).
		Dur("cache_ttl", rc.CacheTTL).
		Dur("warm_interval", rc.WarmInterval).
		Int("workers", rc.Workers).
		Msg("Recommendation engine initialized")

	return engine, closeFn, nil
}
