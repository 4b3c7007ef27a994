package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database path (SQLite file or JSON vault document)
//	-driver storage driver: sqlite | json
//	-c/-config json file path with configs
//	-catalog-url metadata catalog API root
//	-image-url metadata catalog image host root
//	-api-key metadata catalog API key
//	-request-timeout outbound catalog request timeout (e.g., "15s")
//	-search-limit max search results shown
//	-trending-limit max trending results shown
//	-trending-refresh trending cache refresh interval (e.g., "30m")
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var storageDriver string
	var jsonConfigPath string
	var catalogURL string
	var imageURL string
	var apiKey string
	var requestTimeout time.Duration
	var searchLimit int
	var trendingLimit int
	var trendingRefresh time.Duration

	flag.StringVar(&databaseDSN, "d", "", "Database path")
	flag.StringVar(&storageDriver, "driver", "", "Storage driver: sqlite | json")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&catalogURL, "catalog-url", "", "Metadata catalog API root")
	flag.StringVar(&imageURL, "image-url", "", "Metadata catalog image host root")
	flag.StringVar(&apiKey, "api-key", "", "Metadata catalog API key")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Catalog request timeout (e.g., 15s)")
	flag.IntVar(&searchLimit, "search-limit", 0, "Max search results shown")
	flag.IntVar(&trendingLimit, "trending-limit", 0, "Max trending results shown")
	flag.DurationVar(&trendingRefresh, "trending-refresh", 0, "Trending refresh interval (e.g., 30m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{},
		Storage: Storage{
			DB: DB{
				Driver: storageDriver,
				DSN:    databaseDSN,
			},
		},
		Catalog: Catalog{
			BaseURL:        catalogURL,
			ImageBaseURL:   imageURL,
			APIKey:         apiKey,
			RequestTimeout: requestTimeout,
			SearchLimit:    searchLimit,
			TrendingLimit:  trendingLimit,
		},
		Workers: Workers{
			TrendingRefreshInterval: trendingRefresh,
		},
		JSONFilePath: jsonConfigPath,
	}
}
