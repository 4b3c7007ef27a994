package models

import (
	"strconv"
	"time"
)

// MediaType distinguishes the two kinds of media a vault item can hold.
type MediaType string

const (
	// Movie is a feature film record.
	Movie MediaType = "movie"

	// Series is a TV series record. The external catalog calls this "tv";
	// the adapter maps it on the way in.
	Series MediaType = "series"
)

// VaultItem represents a single saved piece of media in the user's vault.
// It is the primary persistence model of the application.
type VaultItem struct {
	// ID is the locally generated unique identifier of the item.
	// It is stable for the item's whole lifetime.
	ID string `json:"id"`

	// SourceID is the numeric identifier of the record in the external
	// catalog. Together with MediaType it identifies the underlying title:
	// at most one VaultItem exists per (SourceID, MediaType) pair.
	SourceID int64 `json:"sourceId"`

	// MediaType is either Movie or Series.
	MediaType MediaType `json:"mediaType"`

	// Title is the display title. Never empty: items derived from catalog
	// records without a usable title get the "Unknown Title" sentinel.
	Title string `json:"title"`

	// PosterPath is the catalog's poster reference. Nil when the catalog
	// has no poster for the title.
	PosterPath *string `json:"posterPath"`

	// Overview is the synopsis text from the catalog.
	Overview string `json:"overview"`

	// ReleaseDate is the release date (movies) or first air date (series),
	// optional.
	ReleaseDate string `json:"releaseDate,omitempty"`

	// Rating is the catalog's average vote, >= 0.
	Rating float64 `json:"rating"`

	// IsWatched marks whether the user has watched the item.
	IsWatched bool `json:"isWatched"`

	// CollectionIDs lists the ids of every collection the item belongs to.
	// Order carries no meaning.
	CollectionIDs []string `json:"collectionIds"`

	// AddedAt is the time the item was saved to the vault. Immutable.
	AddedAt time.Time `json:"addedAt"`
}

// Key returns a stable identity for the item combining media type and the
// external catalog id.
func (v VaultItem) Key() string {
	return string(v.MediaType) + ":" + strconv.FormatInt(v.SourceID, 10)
}

// VaultItemUpdate is a partial field patch for a vault item. Nil fields are
// left untouched.
type VaultItemUpdate struct {
	Title       *string    `json:"title,omitempty"`
	PosterPath  *string    `json:"posterPath,omitempty"`
	Overview    *string    `json:"overview,omitempty"`
	ReleaseDate *string    `json:"releaseDate,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	IsWatched   *bool      `json:"isWatched,omitempty"`
	MediaType   *MediaType `json:"mediaType,omitempty"`
}

// IsZero reports whether the patch carries no changes at all.
func (u VaultItemUpdate) IsZero() bool {
	return u.Title == nil && u.PosterPath == nil && u.Overview == nil &&
		u.ReleaseDate == nil && u.Rating == nil && u.IsWatched == nil &&
		u.MediaType == nil
}

// VaultStats summarises the vault for the UI header.
type VaultStats struct {
	Total   int `json:"total"`
	Movies  int `json:"movies"`
	Series  int `json:"series"`
	Watched int `json:"watched"`
}
