package store

import (
	"context"

	"movievault/models"
)

// VaultRepository is the low-level local vault repository. Two
// implementations exist: an SQLite-backed one (the default) and a
// single-document JSON file store selected by the "json" driver.
//
// Both implementations keep item and collection membership consistent in
// both directions: removing an item also removes its id from every
// collection, and deleting a collection also detaches every member item.
type VaultRepository interface {
	Items(ctx context.Context) ([]models.VaultItem, error)
	ItemByID(ctx context.Context, itemID string) (models.VaultItem, error)
	ItemBySource(ctx context.Context, sourceID int64, mediaType models.MediaType) (models.VaultItem, error)
	SaveItem(ctx context.Context, item models.VaultItem) error
	UpdateItem(ctx context.Context, itemID string, update models.VaultItemUpdate) error
	DeleteItem(ctx context.Context, itemID string) error

	Collections(ctx context.Context) ([]models.Collection, error)
	CollectionByID(ctx context.Context, collectionID string) (models.Collection, error)
	SaveCollection(ctx context.Context, collection models.Collection) error
	UpdateCollection(ctx context.Context, collectionID string, update models.CollectionUpdate) error
	DeleteCollection(ctx context.Context, collectionID string) error

	AddItemToCollection(ctx context.Context, collectionID, itemID string) error
	RemoveItemFromCollection(ctx context.Context, collectionID, itemID string) error
	CollectionItems(ctx context.Context, collectionID string) ([]models.VaultItem, error)
}
