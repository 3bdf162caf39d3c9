// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

// Package validation provides request validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Failures are reported as
// *RequestValidationError, which converts to the API's VALIDATION_ERROR
// body with ToAPIError.
//
//	type suggestionsRequest struct {
//	    MerchantID int64 `path:"merchantID" validate:"gt=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError(), nil)
//	    return
//	}
//
// Bounds known only at runtime go through ValidateVar:
//
//	validation.ValidateVar("limit", limit, fmt.Sprintf("min=1,max=%d", maxLimit))
package validation
