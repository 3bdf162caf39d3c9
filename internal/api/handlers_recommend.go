// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shopsense/internal/logging"
	"github.com/tomtom215/shopsense/internal/recommend"
)

// recommendationPathHeader tells clients whether the list came from purchase
// history or the best-seller fallback.
const recommendationPathHeader = "X-Recommendation-Path"

// Recommendations handles GET /api/v1/users/{userID}/recommendations.
//
// Query parameters:
//   - limit: number of products, 1..api.max_limit (default api.default_limit)
//
// The response data is the ordered list of recommendation records.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := h.parseRecommendationsRequest(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	resp, err := h.recommender.Recommend(r.Context(), recommend.Request{
		UserID:    req.UserID,
		TopN:      req.Limit,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("user_id", req.UserID).
		Str("path", resp.Metadata.Path).
		Int("items", len(resp.Items)).
		Bool("similarity_cached", resp.Metadata.SimilarityCached).
		Msg("Recommendations served")

	w.Header().Set(recommendationPathHeader, resp.Metadata.Path)
	respondJSON(w, r, http.StatusOK, resp.Items, start)
}
