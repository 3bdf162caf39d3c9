// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package advisor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/shopsense/internal/logging"
	"github.com/tomtom215/shopsense/internal/metrics"
	"github.com/tomtom215/shopsense/internal/models"
)

// DefaultWorkers bounds concurrent product evaluations.
const DefaultWorkers = 4

// Advisor produces operational suggestions for a merchant's products.
type Advisor struct {
	catalog CatalogReader
	calc    *Calculator
	rules   *RuleEngine
	workers int
	logger  zerolog.Logger
}

// New creates an advisor with the built-in rule table. workers below 1
// falls back to DefaultWorkers.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(store Store, workers int, logger zerolog.Logger) (*Advisor, error) {
	rules, err := NewRuleEngine(DefaultRules())
	if err != nil {
		return nil, err
	}
	return NewWithRules(store, rules, workers, logger)
}

// NewWithRules creates an advisor with a custom rule engine.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWithRules(store Store, rules *RuleEngine, workers int, logger zerolog.Logger) (*Advisor, error) {
	if store == nil {
		return nil, errors.New("advisor: store is required")
	}
	if rules == nil {
		return nil, errors.New("advisor: rule engine is required")
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Advisor{
		catalog: store,
		calc:    NewCalculator(store, store),
		rules:   rules,
		workers: workers,
		logger:  logger.With().Str("component", "advisor").Logger(),
	}, nil
}

// Suggestions evaluates every product of the merchant, whatever its status,
// and returns at most one suggestion per product ordered by priority.
// Products of equal priority keep ascending product id order. A merchant
// without products yields an empty list.
func (a *Advisor) Suggestions(ctx context.Context, merchantID int64) ([]Suggestion, error) {
	if merchantID <= 0 {
		return nil, fmt.Errorf("%w: id must be positive, got %d", ErrInvalidMerchant, merchantID)
	}

	start := time.Now()
	now := a.calc.now().UTC()
	logger := logging.FromContext(ctx, a.logger).With().Int64("merchant_id", merchantID).Logger()

	products, err := a.catalog.ProductsByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("load products for merchant %d: %w", merchantID, err)
	}

	averages, err := a.categoryAverages(ctx, products)
	if err != nil {
		return nil, err
	}

	slots := make([]*Suggestion, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range products {
		p := &products[i]
		g.Go(func() error {
			s, err := a.evaluate(gctx, p, averages[keyOf(p.Category)], now)
			if err != nil {
				return err
			}
			slots[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(products))
	for _, s := range slots {
		if s != nil {
			suggestions = append(suggestions, *s)
			metrics.RecordSuggestion(s.Rule, string(s.Priority))
		}
	}
	SortByPriority(suggestions)

	metrics.RecordAdvisorRun(len(products), time.Since(start))
	logger.Debug().
		Int("products", len(products)).
		Int("suggestions", len(suggestions)).
		Dur("took", time.Since(start)).
		Msg("Merchant suggestions generated")
	return suggestions, nil
}

// evaluate computes one product's metrics and applies the rule table.
func (a *Advisor) evaluate(ctx context.Context, p *models.Product, avg float64, now time.Time) (*Suggestion, error) {
	snap, err := a.calc.computeAt(ctx, p, avg, now)
	if err != nil {
		return nil, err
	}
	match, err := a.rules.Evaluate(&snap)
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", p.ID, err)
	}
	if match == nil {
		return nil, nil
	}
	return &Suggestion{
		ProductID:   p.ID,
		ProductName: p.Name,
		Suggestion:  match.Message,
		Priority:    match.Priority,
		Metrics:     snap.Rounded(),
		GeneratedAt: now,
		Rule:        match.Rule,
	}, nil
}

// categoryKey identifies a category group; null marks uncategorized products.
type categoryKey struct {
	name string
	null bool
}

func keyOf(category *string) categoryKey {
	if category == nil {
		return categoryKey{null: true}
	}
	return categoryKey{name: *category}
}

// categoryAverages loads the active-price average once per distinct
// category among the products, uncategorized included.
func (a *Advisor) categoryAverages(ctx context.Context, products []models.Product) (map[categoryKey]float64, error) {
	averages := make(map[categoryKey]float64)
	for i := range products {
		cat := products[i].Category
		key := keyOf(cat)
		if _, ok := averages[key]; ok {
			continue
		}
		avg, err := a.calc.categoryAverage(ctx, cat)
		if err != nil {
			return nil, err
		}
		averages[key] = avg
	}
	return averages, nil
}

// SortByPriority orders suggestions high, medium, low. The sort is stable:
// equal priorities keep their input order.
func SortByPriority(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Priority.Rank() < s[j].Priority.Rank()
	})
}
