package service

import (
	"context"
	"time"

	"movievault/models"
)

// VaultFilter narrows the vault listing to a subset of items.
type VaultFilter string

const (
	FilterAll       VaultFilter = "all"
	FilterMovies    VaultFilter = "movies"
	FilterSeries    VaultFilter = "series"
	FilterWatched   VaultFilter = "watched"
	FilterUnwatched VaultFilter = "unwatched"
)

// VaultService is the application-level API over the local vault. It owns id
// generation, timestamps, and the item/collection consistency rules.
//
// The vault is treated as always available: persistence failures are logged
// and absorbed, so reads degrade to empty results and mutations to no-ops
// rather than surfacing storage errors to the UI.
type VaultService interface {
	// Items returns every saved item in the order it was added.
	Items(ctx context.Context) []models.VaultItem

	// Filtered returns the items matching the given filter, in the order
	// they were added.
	Filtered(ctx context.Context, filter VaultFilter) []models.VaultItem

	// Recent returns the most recently added items, newest first, capped
	// for the search screen sidebar.
	Recent(ctx context.Context) []models.VaultItem

	// Stats summarises the vault for the UI header.
	Stats(ctx context.Context) models.VaultStats

	// AddFromCatalog saves a catalog record to the vault. Adding a title
	// that is already saved (same catalog id and media type) is a no-op
	// that returns the existing item. The second return value reports
	// whether a new item was created.
	AddFromCatalog(ctx context.Context, record models.CatalogRecord) (models.VaultItem, bool)

	// UpdateItem applies a partial patch to an item. Unknown ids and empty
	// patches are no-ops.
	UpdateItem(ctx context.Context, itemID string, update models.VaultItemUpdate)

	// RemoveItem deletes an item and detaches it from every collection.
	// Unknown ids are a no-op.
	RemoveItem(ctx context.Context, itemID string)

	// ToggleWatched flips an item's watched flag and returns the new
	// value. Unknown ids are a no-op returning false.
	ToggleWatched(ctx context.Context, itemID string) bool

	// Collections returns every collection, oldest first.
	Collections(ctx context.Context) []models.Collection

	// Collection returns a single collection by id; ok is false when the
	// id is unknown.
	Collection(ctx context.Context, collectionID string) (c models.Collection, ok bool)

	// CreateCollection creates a new empty collection. The name is
	// trimmed; a blank description is stored as absent.
	CreateCollection(ctx context.Context, name, description string) models.Collection

	// UpdateCollection applies a partial patch to a collection. Unknown
	// ids and empty patches are no-ops.
	UpdateCollection(ctx context.Context, collectionID string, update models.CollectionUpdate)

	// DeleteCollection removes a collection and detaches all its members.
	// The items themselves stay in the vault. Unknown ids are a no-op.
	DeleteCollection(ctx context.Context, collectionID string)

	// AddItemToCollection records membership on both sides. Re-adding an
	// existing member is a no-op.
	AddItemToCollection(ctx context.Context, collectionID, itemID string)

	// RemoveItemFromCollection removes membership on both sides. Unknown
	// pairs are a no-op.
	RemoveItemFromCollection(ctx context.Context, collectionID, itemID string)

	// CollectionItems returns the collection's member items in membership
	// order, skipping ids whose items no longer exist.
	CollectionItems(ctx context.Context, collectionID string) []models.VaultItem
}

// CatalogService wraps the external metadata catalog with the application's
// result caps and the trending cache. Unlike the vault, catalog failures are
// returned to the caller so the UI can report them.
type CatalogService interface {
	// Search runs a combined movie-and-series search, capped to the
	// configured search limit.
	Search(ctx context.Context, query string) ([]models.CatalogRecord, error)

	// Trending returns the cached trending titles, refreshing the cache
	// from the catalog when it is empty. Capped to the configured
	// trending limit.
	Trending(ctx context.Context) ([]models.CatalogRecord, error)

	// RefreshTrending unconditionally reloads the trending cache. Used by
	// the background refresh job.
	RefreshTrending(ctx context.Context) error

	// PosterURL resolves a poster reference to an absolute URL, "" when
	// absent.
	PosterURL(posterPath *string) string
}

// TrendingJob periodically refreshes the trending cache in the background.
type TrendingJob interface {
	// Start launches the refresh loop with the given interval. A running
	// job is restarted. The loop exits when ctx is cancelled or Stop is
	// called.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the refresh loop and waits for it to exit. Safe to
	// call when the job is not running.
	Stop()
}
