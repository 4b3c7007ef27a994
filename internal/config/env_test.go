// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION": "1.2.3",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DRIVER":       "json",
		"STORAGE_DB_DATABASE_URI": "/var/data/vault.json",

		"CATALOG_BASE_URL":        "https://catalog.example/3",
		"CATALOG_IMAGE_BASE_URL":  "https://img.example/t/p",
		"CATALOG_API_KEY":         "secret_key",
		"CATALOG_REQUEST_TIMEOUT": "30s",
		"CATALOG_SEARCH_LIMIT":    "12",
		"CATALOG_TRENDING_LIMIT":  "20",

		"WORKERS_TRENDING_REFRESH_INTERVAL": "1h",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "json", cfg.Storage.DB.Driver)
	assert.Equal(t, "/var/data/vault.json", cfg.Storage.DB.DSN)

	assert.Equal(t, "https://catalog.example/3", cfg.Catalog.BaseURL)
	assert.Equal(t, "https://img.example/t/p", cfg.Catalog.ImageBaseURL)
	assert.Equal(t, "secret_key", cfg.Catalog.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Catalog.RequestTimeout)
	assert.Equal(t, 12, cfg.Catalog.SearchLimit)
	assert.Equal(t, 20, cfg.Catalog.TrendingLimit)

	assert.Equal(t, time.Hour, cfg.Workers.TrendingRefreshInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"STORAGE_DB_DATABASE_URI": "movies.db",
		"CATALOG_API_KEY":         "secret_key",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// Storage partially filled
	assert.Empty(t, cfg.Storage.DB.Driver)
	assert.Equal(t, "movies.db", cfg.Storage.DB.DSN)

	// Catalog partially filled
	assert.Equal(t, "secret_key", cfg.Catalog.APIKey)
	assert.Empty(t, cfg.Catalog.BaseURL)
	assert.Zero(t, cfg.Catalog.RequestTimeout)
	assert.Zero(t, cfg.Catalog.SearchLimit)

	// Others untouched
	assert.Empty(t, cfg.App.Version)
	assert.Zero(t, cfg.Workers.TrendingRefreshInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// In this version all nested fields are non-pointer values,
	// so "empty" state is represented by zero values.
	assert.Equal(t, "", cfg.JSONFilePath)

	assert.Equal(t, App{}, cfg.App)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Catalog{}, cfg.Catalog)
	assert.Equal(t, Workers{}, cfg.Workers)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CATALOG_REQUEST_TIMEOUT": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	// Error wording may vary depending on parseEnv internals; assert loosely.
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"WORKERS_TRENDING_REFRESH_INTERVAL": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Workers.TrendingRefreshInterval)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_VERSION",

		"STORAGE_DB_DRIVER",
		"STORAGE_DB_DATABASE_URI",

		"CATALOG_BASE_URL",
		"CATALOG_IMAGE_BASE_URL",
		"CATALOG_API_KEY",
		"CATALOG_REQUEST_TIMEOUT",
		"CATALOG_SEARCH_LIMIT",
		"CATALOG_TRENDING_LIMIT",

		"WORKERS_TRENDING_REFRESH_INTERVAL",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
