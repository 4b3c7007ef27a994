// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"movievault/internal/logger"
	"movievault/internal/store"
	"movievault/models"
)

// recentLimit caps the "recently added" strip on the search screen.
const recentLimit = 5

type vaultService struct {
	vault  store.VaultRepository
	logger *logger.Logger
}

func NewVaultService(vault store.VaultRepository, logger *logger.Logger) VaultService {
	return &vaultService{vault: vault, logger: logger}
}

func (s *vaultService) Items(ctx context.Context) []models.VaultItem {
	items, err := s.vault.Items(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "vaultService.Items").Msg("failed to load vault items")
		return nil
	}
	return items
}

func (s *vaultService) Filtered(ctx context.Context, filter VaultFilter) []models.VaultItem {
	items := s.Items(ctx)
	if filter == FilterAll || filter == "" {
		return items
	}

	filtered := make([]models.VaultItem, 0, len(items))
	for _, item := range items {
		switch filter {
		case FilterMovies:
			if item.MediaType == models.Movie {
				filtered = append(filtered, item)
			}
		case FilterSeries:
			if item.MediaType == models.Series {
				filtered = append(filtered, item)
			}
		case FilterWatched:
			if item.IsWatched {
				filtered = append(filtered, item)
			}
		case FilterUnwatched:
			if !item.IsWatched {
				filtered = append(filtered, item)
			}
		}
	}
	return filtered
}

func (s *vaultService) Recent(ctx context.Context) []models.VaultItem {
	items := s.Items(ctx)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	if len(items) > recentLimit {
		items = items[:recentLimit]
	}
	return items
}

func (s *vaultService) Stats(ctx context.Context) models.VaultStats {
	var stats models.VaultStats
	for _, item := range s.Items(ctx) {
		stats.Total++
		switch item.MediaType {
		case models.Movie:
			stats.Movies++
		case models.Series:
			stats.Series++
		}
		if item.IsWatched {
			stats.Watched++
		}
	}
	return stats
}

func (s *vaultService) AddFromCatalog(ctx context.Context, record models.CatalogRecord) (models.VaultItem, bool) {
	mediaType := record.ResolvedMediaType()

	if existing, err := s.vault.ItemBySource(ctx, record.ID, mediaType); err == nil {
		return existing, false
	}

	item := models.VaultItem{
		ID:          uuid.NewString(),
		SourceID:    record.ID,
		MediaType:   mediaType,
		Title:       record.DisplayTitle(),
		PosterPath:  record.PosterPath,
		Overview:    record.Overview,
		ReleaseDate: record.ReleaseOrAirDate(),
		Rating:      record.VoteAverage,
		AddedAt:     time.Now().UTC(),
	}

	if err := s.vault.SaveItem(ctx, item); err != nil {
		if errors.Is(err, store.ErrItemAlreadyExists) {
			// lost the race: return whoever got there first
			if existing, lookupErr := s.vault.ItemBySource(ctx, record.ID, mediaType); lookupErr == nil {
				return existing, false
			}
		}
		s.logger.Err(err).
			Str("func", "vaultService.AddFromCatalog").
			Int64("source_id", record.ID).
			Msg("failed to save vault item")
		return models.VaultItem{}, false
	}

	return item, true
}

func (s *vaultService) UpdateItem(ctx context.Context, itemID string, update models.VaultItemUpdate) {
	if err := s.vault.UpdateItem(ctx, itemID, update); err != nil && !errors.Is(err, store.ErrItemNotFound) {
		s.logger.Err(err).
			Str("func", "vaultService.UpdateItem").
			Str("id", itemID).
			Msg("failed to update vault item")
	}
}

func (s *vaultService) RemoveItem(ctx context.Context, itemID string) {
	if err := s.vault.DeleteItem(ctx, itemID); err != nil && !errors.Is(err, store.ErrItemNotFound) {
		s.logger.Err(err).
			Str("func", "vaultService.RemoveItem").
			Str("id", itemID).
			Msg("failed to delete vault item")
	}
}

func (s *vaultService) ToggleWatched(ctx context.Context, itemID string) bool {
	item, err := s.vault.ItemByID(ctx, itemID)
	if err != nil {
		if !errors.Is(err, store.ErrItemNotFound) {
			s.logger.Err(err).
				Str("func", "vaultService.ToggleWatched").
				Str("id", itemID).
				Msg("failed to load vault item")
		}
		return false
	}

	watched := !item.IsWatched
	s.UpdateItem(ctx, itemID, models.VaultItemUpdate{IsWatched: &watched})
	return watched
}

func (s *vaultService) Collections(ctx context.Context) []models.Collection {
	collections, err := s.vault.Collections(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "vaultService.Collections").Msg("failed to load collections")
		return nil
	}
	return collections
}

func (s *vaultService) Collection(ctx context.Context, collectionID string) (models.Collection, bool) {
	collection, err := s.vault.CollectionByID(ctx, collectionID)
	if err != nil {
		if !errors.Is(err, store.ErrCollectionNotFound) {
			s.logger.Err(err).
				Str("func", "vaultService.Collection").
				Str("id", collectionID).
				Msg("failed to load collection")
		}
		return models.Collection{}, false
	}
	return collection, true
}

func (s *vaultService) CreateCollection(ctx context.Context, name, description string) models.Collection {
	collection := models.Collection{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		collection.Description = &trimmed
	}

	if err := s.vault.SaveCollection(ctx, collection); err != nil {
		s.logger.Err(err).
			Str("func", "vaultService.CreateCollection").
			Str("name", collection.Name).
			Msg("failed to save collection")
		return models.Collection{}
	}

	return collection
}

func (s *vaultService) UpdateCollection(ctx context.Context, collectionID string, update models.CollectionUpdate) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	if update.Description != nil {
		trimmed := strings.TrimSpace(*update.Description)
		update.Description = &trimmed
	}

	if err := s.vault.UpdateCollection(ctx, collectionID, update); err != nil && !errors.Is(err, store.ErrCollectionNotFound) {
		s.logger.Err(err).
			Str("func", "vaultService.UpdateCollection").
			Str("id", collectionID).
			Msg("failed to update collection")
	}
}

func (s *vaultService) DeleteCollection(ctx context.Context, collectionID string) {
	if err := s.vault.DeleteCollection(ctx, collectionID); err != nil && !errors.Is(err, store.ErrCollectionNotFound) {
		s.logger.Err(err).
			Str("func", "vaultService.DeleteCollection").
			Str("id", collectionID).
			Msg("failed to delete collection")
	}
}

func (s *vaultService) AddItemToCollection(ctx context.Context, collectionID, itemID string) {
	err := s.vault.AddItemToCollection(ctx, collectionID, itemID)
	if err != nil && !errors.Is(err, store.ErrCollectionNotFound) && !errors.Is(err, store.ErrItemNotFound) {
		s.logger.Err(err).
			Str("func", "vaultService.AddItemToCollection").
			Str("collection_id", collectionID).
			Str("item_id", itemID).
			Msg("failed to attach item to collection")
	}
}

func (s *vaultService) RemoveItemFromCollection(ctx context.Context, collectionID, itemID string) {
	err := s.vault.RemoveItemFromCollection(ctx, collectionID, itemID)
	if err != nil {
		s.logger.Err(err).
			Str("func", "vaultService.RemoveItemFromCollection").
			Str("collection_id", collectionID).
			Str("item_id", itemID).
			Msg("failed to detach item from collection")
	}
}

func (s *vaultService) CollectionItems(ctx context.Context, collectionID string) []models.VaultItem {
	items, err := s.vault.CollectionItems(ctx, collectionID)
	if err != nil {
		s.logger.Err(err).
			Str("func", "vaultService.CollectionItems").
			Str("collection_id", collectionID).
			Msg("failed to load collection items")
		return nil
	}
	return items
}
