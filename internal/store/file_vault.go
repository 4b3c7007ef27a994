// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"movievault/internal/logger"
	"movievault/models"
)

// InMemoryDSN selects a purely in-memory vault document. Nothing is
// written to disk; the store starts empty on every run. Useful for tests.
const InMemoryDSN = ":memory:"

// vaultDocument is the on-disk shape of the JSON vault: a single document
// holding every item and collection. Each mutation rewrites the whole file,
// so the two sides of a membership always change together.
type vaultDocument struct {
	Items       []models.VaultItem  `json:"items"`
	Collections []models.Collection `json:"collections"`
}

type fileVaultRepository struct {
	mu     sync.Mutex
	path   string
	mem    *vaultDocument
	logger *logger.Logger
}

// NewFileVaultRepository constructs a [VaultRepository] backed by a single
// JSON document at path. The special path [InMemoryDSN] keeps the document
// in memory only. A missing or unreadable file is treated as an empty vault.
func NewFileVaultRepository(path string, logger *logger.Logger) VaultRepository {
	r := &fileVaultRepository{
		path:   path,
		logger: logger,
	}
	if path == InMemoryDSN {
		r.mem = &vaultDocument{}
	}
	return r
}

func (r *fileVaultRepository) load() *vaultDocument {
	if r.mem != nil {
		return r.mem
	}

	doc := &vaultDocument{}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Err(err).Str("func", "fileVaultRepository.load").Msg("error reading vault document")
		}
		return doc
	}

	if err := json.Unmarshal(data, doc); err != nil {
		// corrupt document: start over rather than refuse to run
		r.logger.Err(err).Str("func", "fileVaultRepository.load").Msg("vault document is corrupt, starting empty")
		return &vaultDocument{}
	}

	return doc
}

func (r *fileVaultRepository) save(doc *vaultDocument) error {
	if r.mem != nil {
		r.mem = doc
		return nil
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		r.logger.Err(err).Str("func", "fileVaultRepository.save").Msg("error encoding vault document")
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		r.logger.Err(err).Str("func", "fileVaultRepository.save").Msg("error writing vault document")
		return err
	}

	return os.Rename(tmp, r.path)
}

func (r *fileVaultRepository) Items(_ context.Context) ([]models.VaultItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()

	items := make([]models.VaultItem, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = copyItem(item)
	}

	return items, nil
}

func (r *fileVaultRepository) ItemByID(_ context.Context, itemID string) (models.VaultItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	for _, item := range doc.Items {
		if item.ID == itemID {
			return copyItem(item), nil
		}
	}

	return models.VaultItem{}, ErrItemNotFound
}

func (r *fileVaultRepository) ItemBySource(_ context.Context, sourceID int64, mediaType models.MediaType) (models.VaultItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	for _, item := range doc.Items {
		if item.SourceID == sourceID && item.MediaType == mediaType {
			return copyItem(item), nil
		}
	}

	return models.VaultItem{}, ErrItemNotFound
}

func (r *fileVaultRepository) SaveItem(_ context.Context, item models.VaultItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	for _, existing := range doc.Items {
		if existing.SourceID == item.SourceID && existing.MediaType == item.MediaType {
			return ErrItemAlreadyExists
		}
	}

	doc.Items = append(doc.Items, item)
	return r.save(doc)
}

func (r *fileVaultRepository) UpdateItem(_ context.Context, itemID string, update models.VaultItemUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if update.IsZero() {
		return nil
	}

	doc := r.load()
	for i := range doc.Items {
		if doc.Items[i].ID != itemID {
			continue
		}

		applyItemUpdate(&doc.Items[i], update)
		return r.save(doc)
	}

	return ErrItemNotFound
}

func (r *fileVaultRepository) DeleteItem(_ context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()

	idx := -1
	for i := range doc.Items {
		if doc.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}

	doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)

	// detach from every collection
	for i := range doc.Collections {
		doc.Collections[i].ItemIDs = removeString(doc.Collections[i].ItemIDs, itemID)
	}

	return r.save(doc)
}

func (r *fileVaultRepository) Collections(_ context.Context) ([]models.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()

	collections := make([]models.Collection, len(doc.Collections))
	for i, c := range doc.Collections {
		collections[i] = copyCollection(c)
	}

	return collections, nil
}

func (r *fileVaultRepository) CollectionByID(_ context.Context, collectionID string) (models.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	for _, c := range doc.Collections {
		if c.ID == collectionID {
			return copyCollection(c), nil
		}
	}

	return models.Collection{}, ErrCollectionNotFound
}

func (r *fileVaultRepository) SaveCollection(_ context.Context, collection models.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	doc.Collections = append(doc.Collections, collection)

	return r.save(doc)
}

func (r *fileVaultRepository) UpdateCollection(_ context.Context, collectionID string, update models.CollectionUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if update.Name == nil && update.Description == nil {
		return nil
	}

	doc := r.load()
	for i := range doc.Collections {
		if doc.Collections[i].ID != collectionID {
			continue
		}

		if update.Name != nil {
			doc.Collections[i].Name = *update.Name
		}
		if update.Description != nil {
			// blank means clear: a cleared description is absent
			if *update.Description == "" {
				doc.Collections[i].Description = nil
			} else {
				doc.Collections[i].Description = update.Description
			}
		}
		return r.save(doc)
	}

	return ErrCollectionNotFound
}

func (r *fileVaultRepository) DeleteCollection(_ context.Context, collectionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()

	idx := -1
	for i := range doc.Collections {
		if doc.Collections[i].ID == collectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCollectionNotFound
	}

	doc.Collections = append(doc.Collections[:idx], doc.Collections[idx+1:]...)

	// detach every member item
	for i := range doc.Items {
		doc.Items[i].CollectionIDs = removeString(doc.Items[i].CollectionIDs, collectionID)
	}

	return r.save(doc)
}

func (r *fileVaultRepository) AddItemToCollection(_ context.Context, collectionID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()

	var collection *models.Collection
	for i := range doc.Collections {
		if doc.Collections[i].ID == collectionID {
			collection = &doc.Collections[i]
			break
		}
	}
	if collection == nil {
		return ErrCollectionNotFound
	}

	if collection.Contains(itemID) {
		return nil
	}
	collection.ItemIDs = append(collection.ItemIDs, itemID)

	for i := range doc.Items {
		if doc.Items[i].ID == itemID {
			if !containsString(doc.Items[i].CollectionIDs, collectionID) {
				doc.Items[i].CollectionIDs = append(doc.Items[i].CollectionIDs, collectionID)
			}
			break
		}
	}

	return r.save(doc)
}

func (r *fileVaultRepository) RemoveItemFromCollection(_ context.Context, collectionID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()

	for i := range doc.Collections {
		if doc.Collections[i].ID == collectionID {
			doc.Collections[i].ItemIDs = removeString(doc.Collections[i].ItemIDs, itemID)
			break
		}
	}

	for i := range doc.Items {
		if doc.Items[i].ID == itemID {
			doc.Items[i].CollectionIDs = removeString(doc.Items[i].CollectionIDs, collectionID)
			break
		}
	}

	return r.save(doc)
}

func (r *fileVaultRepository) CollectionItems(_ context.Context, collectionID string) ([]models.VaultItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()

	var collection *models.Collection
	for i := range doc.Collections {
		if doc.Collections[i].ID == collectionID {
			collection = &doc.Collections[i]
			break
		}
	}
	if collection == nil {
		return nil, nil
	}

	byID := make(map[string]models.VaultItem, len(doc.Items))
	for _, item := range doc.Items {
		byID[item.ID] = item
	}

	// ids pointing at removed items are skipped
	var items []models.VaultItem
	for _, id := range collection.ItemIDs {
		if item, ok := byID[id]; ok {
			items = append(items, copyItem(item))
		}
	}

	return items, nil
}

// copyItem and copyCollection detach the membership slices from the stored
// document, so callers mutating a snapshot cannot alter live state in
// in-memory mode.
func copyItem(item models.VaultItem) models.VaultItem {
	if item.CollectionIDs != nil {
		ids := make([]string, len(item.CollectionIDs))
		copy(ids, item.CollectionIDs)
		item.CollectionIDs = ids
	}
	return item
}

func copyCollection(c models.Collection) models.Collection {
	if c.ItemIDs != nil {
		ids := make([]string, len(c.ItemIDs))
		copy(ids, c.ItemIDs)
		c.ItemIDs = ids
	}
	return c
}

func applyItemUpdate(item *models.VaultItem, update models.VaultItemUpdate) {
	if update.Title != nil {
		item.Title = *update.Title
	}
	if update.PosterPath != nil {
		item.PosterPath = update.PosterPath
	}
	if update.Overview != nil {
		item.Overview = *update.Overview
	}
	if update.ReleaseDate != nil {
		item.ReleaseDate = *update.ReleaseDate
	}
	if update.Rating != nil {
		item.Rating = *update.Rating
	}
	if update.IsWatched != nil {
		item.IsWatched = *update.IsWatched
	}
	if update.MediaType != nil {
		item.MediaType = *update.MediaType
	}
}

func removeString(values []string, target string) []string {
	out := values[:0]
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
