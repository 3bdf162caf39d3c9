// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shopsense/internal/advisor"
	"github.com/tomtom215/shopsense/internal/logging"
)

// suggestionsData is the data payload of the suggestions endpoint.
type suggestionsData struct {
	Suggestions []advisor.Suggestion `json:"suggestions"`
}

// MerchantSuggestions handles GET /api/v1/merchants/{merchantID}/suggestions.
// Suggestions are ordered high, medium, low priority.
func (h *Handler) MerchantSuggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := parseSuggestionsRequest(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	suggestions, err := h.advisor.Suggestions(r.Context(), req.MerchantID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if suggestions == nil {
		suggestions = []advisor.Suggestion{}
	}

	logging.Ctx(r.Context()).Info().
		Int64("merchant_id", req.MerchantID).
		Int("suggestions", len(suggestions)).
		Msg("Merchant suggestions served")

	respondJSON(w, r, http.StatusOK, suggestionsData{Suggestions: suggestions}, start)
}
