package adapter

import "errors"

var (
	// ErrInvalidAPIKey is returned when the catalog rejects the configured
	// API key (HTTP 401).
	ErrInvalidAPIKey = errors.New("catalog rejected the api key")

	// ErrNotFound is returned when the requested title does not exist in
	// the catalog (HTTP 404).
	ErrNotFound = errors.New("title not found in catalog")

	// ErrRateLimited is returned when the catalog throttles the client
	// (HTTP 429).
	ErrRateLimited = errors.New("catalog rate limit exceeded")

	// ErrCatalogUnavailable is returned for 5xx responses and transport
	// failures: the catalog cannot be reached or cannot answer.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
