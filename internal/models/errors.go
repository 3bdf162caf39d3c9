// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package models

import "errors"

// ErrNotFound is returned by repositories when a requested record does not
// exist. Callers compare with errors.Is.
var ErrNotFound = errors.New("not found")
