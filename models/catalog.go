// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strconv"

// UnknownTitle is the display title assigned to catalog records that carry
// neither a movie title nor a series name.
const UnknownTitle = "Unknown Title"

// CatalogRecord is a search or trending result from the external metadata
// catalog. It is not yet persisted; AddFromCatalog derives a VaultItem
// from it.
type CatalogRecord struct {
	// ID is the catalog's numeric identifier for the title.
	ID int64 `json:"id"`

	// Title is set for movies, Name for series. Use DisplayTitle to
	// resolve whichever is present.
	Title string `json:"title"`
	Name  string `json:"name,omitempty"`

	// Overview is the synopsis text.
	Overview string `json:"overview"`

	// PosterPath and BackdropPath are image references relative to the
	// catalog's image host. Nil when absent.
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`

	// ReleaseDate is set for movies, FirstAirDate for series.
	ReleaseDate  string `json:"release_date,omitempty"`
	FirstAirDate string `json:"first_air_date,omitempty"`

	// VoteAverage is the catalog's average rating.
	VoteAverage float64 `json:"vote_average"`

	// MediaType is Movie or Series. Records arriving without one default
	// to Movie.
	MediaType MediaType `json:"media_type,omitempty"`

	// GenreIDs lists the catalog's genre identifiers.
	GenreIDs []int `json:"genre_ids,omitempty"`
}

// DisplayTitle resolves the human-readable title of the record: the movie
// title, the series name, or the UnknownTitle sentinel.
func (r CatalogRecord) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	if r.Name != "" {
		return r.Name
	}
	return UnknownTitle
}

// ReleaseOrAirDate returns the release date for movies or the first air
// date for series, whichever is present.
func (r CatalogRecord) ReleaseOrAirDate() string {
	if r.ReleaseDate != "" {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

// ResolvedMediaType returns the record's media type, defaulting to Movie
// when the catalog omitted it.
func (r CatalogRecord) ResolvedMediaType() MediaType {
	if r.MediaType == "" {
		return Movie
	}
	return r.MediaType
}

// Key returns the identity the vault deduplicates on.
func (r CatalogRecord) Key() string {
	return string(r.ResolvedMediaType()) + ":" + strconv.FormatInt(r.ID, 10)
}
