// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/shopsense/internal/advisor"
	"github.com/tomtom215/shopsense/internal/config"
	"github.com/tomtom215/shopsense/internal/recommend"
)

// Recommender produces recommendations for a user. *recommend.Engine
// satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// SuggestionSource produces merchant suggestions. *advisor.Advisor
// satisfies it.
type SuggestionSource interface {
	Suggestions(ctx context.Context, merchantID int64) ([]advisor.Suggestion, error)
}

// Pinger reports database reachability. *database.DB satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness probes
//   - handlers_recommend.go: user recommendations
//   - handlers_suggestions.go: merchant suggestions
type Handler struct {
	recommender Recommender
	advisor     SuggestionSource
	db          Pinger
	config      *config.APIConfig
	version     string
	startTime   time.Time
}

// NewHandler creates the API handler.
func NewHandler(rec Recommender, adv SuggestionSource, db Pinger, cfg *config.APIConfig, version string) *Handler {
	return &Handler{
		recommender: rec,
		advisor:     adv,
		db:          db,
		config:      cfg,
		version:     version,
		startTime:   time.Now(),
	}
}

// respondServiceError maps engine errors to HTTP responses.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidRequest), errors.Is(err, advisor.ErrInvalidMerchant):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "Request timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
	}
}
