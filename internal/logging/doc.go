// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

// Package logging provides centralized zerolog-based logging for ShopSense.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("Server starting")
//	logging.Error().Err(err).Msg("Operation failed")
//
//	// With the request ID set by the HTTP middleware
//	logging.Ctx(ctx).Info().Int64("merchant_id", id).Msg("Suggestions served")
//
// # Components
//
// Engines receive a zerolog.Logger at construction and tag it with a
// component field. FromContext adds the request ID of the current request
// to such a logger:
//
//	logging.FromContext(ctx, e.logger).Warn().Err(err).Msg("Product lookup failed")
//
// # slog Interop
//
// SlogHandler lets libraries that only speak log/slog (the suture event hook
// via sutureslog) write through the same zerolog output.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
