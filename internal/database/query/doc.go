// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

// Package query provides SQL query building utilities for the database
// package. WhereBuilder numbers placeholders as it binds arguments, so
// dynamic clauses such as exclusion lists stay parameterized on every driver.
package query
