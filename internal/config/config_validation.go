// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Defaults applied by [StructuredConfig.validate] when the merged
// configuration leaves a field unset.
const (
	DefaultStorageDriver = "sqlite"
	DefaultStorageDSN    = "movievault.db"

	DefaultCatalogBaseURL      = "https://api.themoviedb.org/3"
	DefaultCatalogImageBaseURL = "https://image.tmdb.org/t/p"
	// DefaultCatalogAPIKey is the public demo key. Replace it with your
	// own via CATALOG_API_KEY, -api-key or the JSON config for real use.
	DefaultCatalogAPIKey         = "4e44d9029b1270a757cddc766a1bcb63"
	DefaultCatalogRequestTimeout = 15 * time.Second
	DefaultSearchLimit           = 8
	DefaultTrendingLimit         = 10

	DefaultTrendingRefreshInterval = 30 * time.Minute
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, filling unset
// fields with sensible defaults first.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	cfg.applyDefaults()

	if cfg.Storage.DB.Driver != "sqlite" && cfg.Storage.DB.Driver != "json" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Catalog.BaseURL == "" || cfg.Catalog.APIKey == "" {
		return ErrInvalidCatalogConfigs
	}

	if cfg.Catalog.RequestTimeout <= 0 || cfg.Catalog.SearchLimit <= 0 || cfg.Catalog.TrendingLimit <= 0 {
		return ErrInvalidCatalogConfigs
	}

	if cfg.Workers.TrendingRefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultStorageDriver
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultStorageDSN
	}

	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = DefaultCatalogBaseURL
	}
	if cfg.Catalog.ImageBaseURL == "" {
		cfg.Catalog.ImageBaseURL = DefaultCatalogImageBaseURL
	}
	if cfg.Catalog.APIKey == "" {
		cfg.Catalog.APIKey = DefaultCatalogAPIKey
	}
	if cfg.Catalog.RequestTimeout == 0 {
		cfg.Catalog.RequestTimeout = DefaultCatalogRequestTimeout
	}
	if cfg.Catalog.SearchLimit == 0 {
		cfg.Catalog.SearchLimit = DefaultSearchLimit
	}
	if cfg.Catalog.TrendingLimit == 0 {
		cfg.Catalog.TrendingLimit = DefaultTrendingLimit
	}

	if cfg.Workers.TrendingRefreshInterval == 0 {
		cfg.Workers.TrendingRefreshInterval = DefaultTrendingRefreshInterval
	}
}
