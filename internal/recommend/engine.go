// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsense/internal/cache"
	"github.com/tomtom215/shopsense/internal/logging"
	"github.com/tomtom215/shopsense/internal/metrics"
	"github.com/tomtom215/shopsense/internal/models"
	"github.com/tomtom215/shopsense/internal/recommend/algorithms"
)

// Engine produces personalized recommendations with item-based
// collaborative filtering and falls back to best sellers when history is
// sparse. Every request works on a fresh snapshot of the order history; the
// engine holds no per-user state and is safe for concurrent use.
type Engine struct {
	config     *Config
	logger     zerolog.Logger
	orders     OrderReader
	products   ProductReader
	merchants  MerchantReader
	popularity *Popularity
	cache      SimilarityCache
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithSimilarityCache enables reuse of similarity matrices across requests
// whose order history fingerprint matches.
func WithSimilarityCache(c SimilarityCache) Option {
	return func(e *Engine) { e.cache = c }
}

// NewEngine creates a recommendation engine over the given store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store Store, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, errors.New("recommend: store is required")
	}

	e := &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		orders:     store,
		products:   store,
		merchants:  store,
		popularity: NewPopularity(store, store, logger),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Recommend returns up to TopN products for the user.
//
// Users with purchase history get collaborative filtering results first,
// topped up with best sellers they have not bought when the list is short.
// Users without history, or a store without any orders, get the best seller
// ranking.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	req, err := e.prepareRequest(req)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx, e.logger).With().
		Int64("user_id", req.UserID).
		Int("top_n", req.TopN).
		Logger()
	names := newMerchantNames(e.merchants, &logger)

	resp := &Response{Metadata: ResponseMetadata{RequestID: req.RequestID, UserID: req.UserID}}

	events, err := e.orders.PurchaseCounts(ctx)
	if err != nil {
		metrics.RecommendErrors.Inc()
		return nil, fmt.Errorf("load purchase history: %w", err)
	}

	matrix := algorithms.BuildUserItemMatrix(events)
	purchased := matrix.Purchased(req.UserID)

	if len(purchased) == 0 {
		// No order history at all, or a user who never bought anything.
		items, err := e.popularity.rank(ctx, req.TopN, nil, names)
		if err != nil {
			metrics.RecommendErrors.Inc()
			return nil, err
		}
		resp.Items = items
		resp.Metadata.Path = PathPopularity
		resp.Metadata.PopularityItems = len(items)
		return e.finish(resp, start, &logger), nil
	}

	sim, cached, err := e.similarity(ctx, events, matrix, &logger)
	if err != nil {
		metrics.RecommendErrors.Inc()
		return nil, err
	}
	resp.Metadata.SimilarityCached = cached

	candidates := algorithms.ScoreCandidates(sim, purchased, req.TopN)
	items := e.resolve(ctx, candidates, names, &logger)
	resp.Metadata.HistoryItems = len(items)

	if len(items) < req.TopN {
		exclude := make([]int64, 0, len(items)+len(purchased))
		for i := range items {
			exclude = append(exclude, items[i].ProductID)
		}
		exclude = append(exclude, purchased...)

		topUp, err := e.popularity.rank(ctx, req.TopN-len(items), exclude, names)
		if err != nil {
			metrics.RecommendErrors.Inc()
			return nil, err
		}
		items = append(items, topUp...)
		resp.Metadata.PopularityItems = len(topUp)
	}

	resp.Items = items
	resp.Metadata.Path = PathHistory
	return e.finish(resp, start, &logger), nil
}

// Warm builds the similarity matrix for the current order history and stores
// it in the similarity cache, returning the number of items it covers.
// Without a cache, or without any orders, there is nothing to warm.
func (e *Engine) Warm(ctx context.Context) (int, error) {
	if e.cache == nil {
		return 0, nil
	}

	events, err := e.orders.PurchaseCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("load purchase history: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	logger := e.logger.With().Str("op", "warm").Logger()
	sim, _, err := e.similarity(ctx, events, algorithms.BuildUserItemMatrix(events), &logger)
	if err != nil {
		return 0, err
	}
	return sim.Len(), nil
}

// prepareRequest validates the request and applies defaults.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.UserID <= 0 {
		return req, fmt.Errorf("%w: user id must be positive, got %d", ErrInvalidRequest, req.UserID)
	}
	if req.TopN < 0 {
		return req, fmt.Errorf("%w: top_n must not be negative, got %d", ErrInvalidRequest, req.TopN)
	}
	if req.TopN == 0 {
		req.TopN = e.config.DefaultTopN
	}
	if req.TopN > e.config.MaxTopN {
		req.TopN = e.config.MaxTopN
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	return req, nil
}

// similarity returns the item similarity matrix for the history snapshot,
// from cache when possible. Cache failures are logged and never fail the
// request.
func (e *Engine) similarity(ctx context.Context, events []models.PurchaseEvent, matrix algorithms.UserItemMatrix, logger *zerolog.Logger) (*algorithms.ItemSimilarity, bool, error) {
	var key string
	if e.cache != nil {
		key = algorithms.Fingerprint(events)
		sim, err := e.cache.Get(ctx, key)
		if err == nil {
			metrics.RecordSimilarityCache(e.cache.Backend(), true)
			return sim, true, nil
		}
		metrics.RecordSimilarityCache(e.cache.Backend(), false)
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn().Err(err).Str("backend", e.cache.Backend()).Msg("Similarity cache read failed, rebuilding")
		}
	}

	start := time.Now()
	sim, err := algorithms.ComputeItemSimilarity(ctx, matrix, e.config.Workers)
	if err != nil {
		return nil, false, err
	}
	metrics.RecordSimilarityBuild(sim.Len(), time.Since(start))
	logger.Debug().Int("items", sim.Len()).Dur("took", time.Since(start)).Msg("Similarity matrix built")

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, sim); err != nil {
			logger.Warn().Err(err).Str("backend", e.cache.Backend()).Msg("Similarity cache write failed")
		}
	}
	return sim, false, nil
}

// resolve turns ranked candidates into history records. Missing and
// delisted products are dropped without replacement; other lookup failures
// are logged and the candidate is skipped.
func (e *Engine) resolve(ctx context.Context, candidates []algorithms.Neighbor, names *merchantNames, logger *zerolog.Logger) []Record {
	records := make([]Record, 0, len(candidates))
	for _, c := range candidates {
		product, err := e.products.GetProduct(ctx, c.ItemID)
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				logger.Warn().Err(err).Int64("product_id", c.ItemID).Msg("Product lookup failed, skipping candidate")
			}
			continue
		}
		if !product.IsActive() {
			continue
		}
		score := c.Score
		records = append(records, newRecord(product, names.lookup(ctx, product.MerchantID), ReasonHistory, &score))
	}
	return records
}

// finish stamps timing metadata and records metrics.
func (e *Engine) finish(resp *Response, start time.Time, logger *zerolog.Logger) *Response {
	elapsed := time.Since(start)
	resp.Metadata.LatencyMS = elapsed.Milliseconds()
	resp.Metadata.GeneratedAt = e.now()
	if resp.Items == nil {
		resp.Items = []Record{}
	}

	metrics.RecordRecommendation(resp.Metadata.Path, resp.Metadata.HistoryItems, resp.Metadata.PopularityItems, elapsed)
	logger.Debug().
		Str("path", resp.Metadata.Path).
		Int("history_items", resp.Metadata.HistoryItems).
		Int("popularity_items", resp.Metadata.PopularityItems).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("Recommendation complete")
	return resp
}
