// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// movievault application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local vault persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Catalog holds configuration for the external metadata catalog
	// (TMDB) the application searches against.
	Catalog Catalog `envPrefix:"CATALOG_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged under the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Shown on the TUI menu screen.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the vault persistence backend.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds settings for the local vault store.
type DB struct {
	// Driver selects the persistence backend: "sqlite" (default) or
	// "json" for the single-document file store.
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the path of the SQLite database file or of the JSON vault
	// document, depending on Driver. The special value ":memory:" keeps
	// the JSON store entirely in memory.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Catalog holds settings for the external metadata catalog client.
type Catalog struct {
	// BaseURL is the API root of the catalog
	// (e.g. "https://api.themoviedb.org/3").
	// Env: CATALOG_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// ImageBaseURL is the root of the catalog's image host
	// (e.g. "https://image.tmdb.org/t/p").
	// Env: CATALOG_IMAGE_BASE_URL
	ImageBaseURL string `env:"IMAGE_BASE_URL"`

	// APIKey authenticates catalog requests.
	// Env: CATALOG_API_KEY
	APIKey string `env:"API_KEY"`

	// RequestTimeout is the maximum duration of a single outbound catalog
	// request (e.g. "15s").
	// Env: CATALOG_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SearchLimit caps how many search results are surfaced to the UI.
	// Env: CATALOG_SEARCH_LIMIT
	SearchLimit int `env:"SEARCH_LIMIT"`

	// TrendingLimit caps how many trending results are surfaced to the UI.
	// Env: CATALOG_TRENDING_LIMIT
	TrendingLimit int `env:"TRENDING_LIMIT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// TrendingRefreshInterval defines how often the trending cache is
	// refreshed in the background.
	// Env: WORKERS_TRENDING_REFRESH_INTERVAL
	TrendingRefreshInterval time.Duration `env:"TRENDING_REFRESH_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
