// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"movievault/models"
)

const (
	saveItem = `
		INSERT INTO vault_items (
			id,
			source_id,
			media_type,
			title,
			poster_path,
			overview,
			release_date,
			rating,
			is_watched,
			added_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	itemColumns = `
			id,
			source_id,
			media_type,
			title,
			poster_path,
			overview,
			release_date,
			rating,
			is_watched,
			added_at`

	getItemByID = `
		SELECT` + itemColumns + `
		FROM vault_items
		WHERE id = ?;`

	getItemBySource = `
		SELECT` + itemColumns + `
		FROM vault_items
		WHERE source_id = ? AND media_type = ?;`

	getAllItems = `
		SELECT` + itemColumns + `
		FROM vault_items
		ORDER BY rowid;`

	deleteItem = `
		DELETE FROM vault_items
		WHERE id = ?;`

	deleteItemMemberships = `
		DELETE FROM collection_items
		WHERE item_id = ?;`

	saveCollection = `
		INSERT INTO collections (id, name, description, created_at)
		VALUES (?, ?, ?, ?);`

	getCollectionByID = `
		SELECT id, name, description, created_at
		FROM collections
		WHERE id = ?;`

	getAllCollections = `
		SELECT id, name, description, created_at
		FROM collections
		ORDER BY created_at, id;`

	deleteCollection = `
		DELETE FROM collections
		WHERE id = ?;`

	deleteCollectionMemberships = `
		DELETE FROM collection_items
		WHERE collection_id = ?;`

	getAllMemberships = `
		SELECT collection_id, item_id
		FROM collection_items
		ORDER BY collection_id, position;`

	// appends at the end of the collection; re-adding an existing member
	// is a no-op so membership stays duplicate-free
	addMembership = `
		INSERT OR IGNORE INTO collection_items (collection_id, item_id, position)
		SELECT ?, ?, COALESCE(MAX(position) + 1, 0)
		FROM collection_items
		WHERE collection_id = ?;`

	removeMembership = `
		DELETE FROM collection_items
		WHERE collection_id = ? AND item_id = ?;`

	getCollectionItems = `
		SELECT
			i.id,
			i.source_id,
			i.media_type,
			i.title,
			i.poster_path,
			i.overview,
			i.release_date,
			i.rating,
			i.is_watched,
			i.added_at
		FROM collection_items ci
		JOIN vault_items i ON i.id = ci.item_id
		WHERE ci.collection_id = ?
		ORDER BY ci.position;`
)

// buildUpdateItemQuery dynamically builds a partial UPDATE for a vault item,
// touching only the fields present in the patch.
func buildUpdateItemQuery(itemID string, update models.VaultItemUpdate) (string, []any, error) {
	builder := sq.Update("vault_items")

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.PosterPath != nil {
		builder = builder.Set("poster_path", *update.PosterPath)
	}
	if update.Overview != nil {
		builder = builder.Set("overview", *update.Overview)
	}
	if update.ReleaseDate != nil {
		builder = builder.Set("release_date", *update.ReleaseDate)
	}
	if update.Rating != nil {
		builder = builder.Set("rating", *update.Rating)
	}
	if update.IsWatched != nil {
		builder = builder.Set("is_watched", *update.IsWatched)
	}
	if update.MediaType != nil {
		builder = builder.Set("media_type", string(*update.MediaType))
	}

	return builder.Where(sq.Eq{"id": itemID}).ToSql()
}

// buildUpdateCollectionQuery dynamically builds a partial UPDATE for a
// collection.
func buildUpdateCollectionQuery(collectionID string, update models.CollectionUpdate) (string, []any, error) {
	builder := sq.Update("collections")

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Description != nil {
		// blank means clear: the column goes back to NULL
		if *update.Description == "" {
			builder = builder.Set("description", nil)
		} else {
			builder = builder.Set("description", *update.Description)
		}
	}

	return builder.Where(sq.Eq{"id": collectionID}).ToSql()
}
