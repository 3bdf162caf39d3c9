// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shopsense/internal/models"
	"github.com/tomtom215/shopsense/internal/validation"
)

// recommendationsRequest is GET /api/v1/users/{userID}/recommendations.
type recommendationsRequest struct {
	UserID int64 `path:"userID" validate:"gt=0"`
	Limit  int   `query:"limit" validate:"min=1"`
}

// suggestionsRequest is GET /api/v1/merchants/{merchantID}/suggestions.
type suggestionsRequest struct {
	MerchantID int64 `path:"merchantID" validate:"gt=0"`
}

func invalidParam(name, message string) *models.APIError {
	return &models.APIError{
		Code:    ErrCodeValidation,
		Message: message,
		Details: map[string]interface{}{"field": name},
	}
}

// pathID parses a positive-looking integer URL parameter.
func pathID(r *http.Request, name string) (int64, *models.APIError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidParam(name, name+" must be an integer")
	}
	return id, nil
}

// parseRecommendationsRequest reads and validates the request. limit
// defaults to the configured default and is capped by the configured max.
func (h *Handler) parseRecommendationsRequest(r *http.Request) (*recommendationsRequest, *models.APIError) {
	userID, apiErr := pathID(r, "userID")
	if apiErr != nil {
		return nil, apiErr
	}

	req := &recommendationsRequest{UserID: userID, Limit: h.config.DefaultLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, invalidParam("limit", "limit must be an integer")
		}
		req.Limit = limit
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr.ToAPIError()
	}
	if verr := validation.ValidateVar("limit", req.Limit, fmt.Sprintf("max=%d", h.config.MaxLimit)); verr != nil {
		return nil, verr.ToAPIError()
	}
	return req, nil
}

func parseSuggestionsRequest(r *http.Request) (*suggestionsRequest, *models.APIError) {
	merchantID, apiErr := pathID(r, "merchantID")
	if apiErr != nil {
		return nil, apiErr
	}
	req := &suggestionsRequest{MerchantID: merchantID}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr.ToAPIError()
	}
	return req, nil
}
