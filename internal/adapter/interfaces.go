// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the external metadata catalog.
//
// The primary abstraction is [CatalogAdapter], which decouples the service
// layer from the catalog's HTTP API. The package ships a TMDB implementation
// ([NewTMDBAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrInvalidAPIKey] for 401, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"movievault/models"
)

// CatalogAdapter defines transport-agnostic access to the metadata catalog.
// Implementations are responsible for serialisation, API-key management, and
// mapping transport-level errors to the sentinel values defined in this
// package.
type CatalogAdapter interface {
	// SearchMulti runs a combined movie-and-series search for the given
	// query. Person results and other non-media record kinds are filtered
	// out; the remaining records have their media type normalised to
	// [models.Movie] or [models.Series]. Result order is the catalog's
	// relevance order.
	SearchMulti(ctx context.Context, query string) ([]models.CatalogRecord, error)

	// Trending returns the catalog's currently trending movies and series
	// for the week, filtered and normalised like SearchMulti.
	Trending(ctx context.Context) ([]models.CatalogRecord, error)

	// MovieDetails fetches the full record of a single movie by catalog id.
	MovieDetails(ctx context.Context, id int64) (models.CatalogRecord, error)

	// SeriesDetails fetches the full record of a single series by catalog id.
	SeriesDetails(ctx context.Context, id int64) (models.CatalogRecord, error)

	// PosterURL resolves a record's poster reference to an absolute image
	// URL, or returns "" when the record has no poster.
	PosterURL(posterPath *string) string

	// BackdropURL resolves a record's backdrop reference to an absolute
	// image URL, or returns "" when the record has no backdrop.
	BackdropURL(backdropPath *string) string
}
