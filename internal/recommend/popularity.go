// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsense/internal/logging"
	"github.com/tomtom215/shopsense/internal/models"
)

// Popularity ranks active products by total units sold. It is the fallback
// for users without history and the top-up for short history lists.
type Popularity struct {
	products  ProductReader
	merchants MerchantReader
	logger    zerolog.Logger
}

// NewPopularity creates a popularity ranker.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPopularity(products ProductReader, merchants MerchantReader, logger zerolog.Logger) *Popularity {
	return &Popularity{
		products:  products,
		merchants: merchants,
		logger:    logger.With().Str("component", "popularity").Logger(),
	}
}

// Top returns up to n best sellers not in exclude as popularity records,
// without scores.
func (p *Popularity) Top(ctx context.Context, n int, exclude []int64) ([]Record, error) {
	return p.rank(ctx, n, exclude, newMerchantNames(p.merchants, logging.FromContext(ctx, p.logger)))
}

// rank is Top with a merchant name memo shared with the calling request.
func (p *Popularity) rank(ctx context.Context, n int, exclude []int64, names *merchantNames) ([]Record, error) {
	if n <= 0 {
		return nil, nil
	}
	products, err := p.products.TopSellers(ctx, exclude, n)
	if err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}

	records := make([]Record, 0, len(products))
	for i := range products {
		records = append(records, newRecord(&products[i], names.lookup(ctx, products[i].MerchantID), ReasonPopularity, nil))
	}
	return records, nil
}

func newRecord(p *models.Product, merchant string, reason Reason, score *float64) Record {
	return Record{
		ProductID:    p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Category:     p.Category,
		MerchantName: merchant,
		Reason:       reason,
		Score:        score,
	}
}

// merchantNames memoizes merchant lookups for the lifetime of one request.
type merchantNames struct {
	reader MerchantReader
	logger *zerolog.Logger
	names  map[int64]string
}

func newMerchantNames(reader MerchantReader, logger *zerolog.Logger) *merchantNames {
	return &merchantNames{reader: reader, logger: logger, names: make(map[int64]string)}
}

// lookup returns the merchant's name, or UnknownMerchant when it cannot be
// resolved. Failures other than not-found are logged.
func (m *merchantNames) lookup(ctx context.Context, id int64) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	name := UnknownMerchant
	merchant, err := m.reader.GetMerchant(ctx, id)
	switch {
	case err == nil:
		name = merchant.Name
	case !errors.Is(err, models.ErrNotFound):
		m.logger.Warn().Err(err).Int64("merchant_id", id).Msg("Merchant lookup failed")
	}
	m.names[id] = name
	return name
}
