// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package recommend

import (
	"fmt"

	"github.com/tomtom215/shopsense/internal/recommend/algorithms"
)

// Config contains the engine's operational limits.
type Config struct {
	// DefaultTopN is used when a request leaves TopN at zero.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps TopN.
	MaxTopN int `json:"max_top_n"`

	// Workers bounds the goroutines computing similarity rows.
	Workers int `json:"workers"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopN: 10,
		MaxTopN:     50,
		Workers:     algorithms.DefaultSimilarityWorkers,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MaxTopN < 1 {
		return fmt.Errorf("max_top_n must be at least 1, got %d", c.MaxTopN)
	}
	if c.DefaultTopN < 1 || c.DefaultTopN > c.MaxTopN {
		return fmt.Errorf("default_top_n must be between 1 and %d, got %d", c.MaxTopN, c.DefaultTopN)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
