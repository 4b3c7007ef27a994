package service

import (
	"context"
	"sync"

	"movievault/internal/adapter"
	"movievault/internal/logger"
	"movievault/models"
)

type catalogService struct {
	catalog       adapter.CatalogAdapter
	searchLimit   int
	trendingLimit int
	logger        *logger.Logger

	mu       sync.RWMutex
	trending []models.CatalogRecord
}

func NewCatalogService(catalog adapter.CatalogAdapter, searchLimit, trendingLimit int, logger *logger.Logger) CatalogService {
	if searchLimit <= 0 {
		searchLimit = 8
	}
	if trendingLimit <= 0 {
		trendingLimit = 10
	}
	return &catalogService{
		catalog:       catalog,
		searchLimit:   searchLimit,
		trendingLimit: trendingLimit,
		logger:        logger,
	}
}

func (s *catalogService) Search(ctx context.Context, query string) ([]models.CatalogRecord, error) {
	records, err := s.catalog.SearchMulti(ctx, query)
	if err != nil {
		s.logger.Err(err).
			Str("func", "catalogService.Search").
			Str("query", query).
			Msg("catalog search failed")
		return nil, err
	}

	if len(records) > s.searchLimit {
		records = records[:s.searchLimit]
	}
	return records, nil
}

func (s *catalogService) Trending(ctx context.Context) ([]models.CatalogRecord, error) {
	s.mu.RLock()
	cached := s.trending
	s.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	if err := s.RefreshTrending(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trending, nil
}

func (s *catalogService) RefreshTrending(ctx context.Context) error {
	records, err := s.catalog.Trending(ctx)
	if err != nil {
		s.logger.Err(err).
			Str("func", "catalogService.RefreshTrending").
			Msg("trending refresh failed")
		return err
	}

	if len(records) > s.trendingLimit {
		records = records[:s.trendingLimit]
	}

	s.mu.Lock()
	s.trending = records
	s.mu.Unlock()

	s.logger.Debug().
		Str("func", "catalogService.RefreshTrending").
		Int("count", len(records)).
		Msg("trending cache refreshed")
	return nil
}

func (s *catalogService) PosterURL(posterPath *string) string {
	return s.catalog.PosterURL(posterPath)
}
