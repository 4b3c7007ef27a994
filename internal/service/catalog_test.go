package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movievault/internal/logger"
	"movievault/models"
)

// fakeCatalogAdapter тестовая заглушка каталога: отдаёт заготовленные
// результаты и считает обращения к сети.
type fakeCatalogAdapter struct {
	searchResults   []models.CatalogRecord
	trendingResults []models.CatalogRecord
	err             error

	searchCalls   atomic.Int64
	trendingCalls atomic.Int64
}

func (f *fakeCatalogAdapter) SearchMulti(_ context.Context, _ string) ([]models.CatalogRecord, error) {
	f.searchCalls.Add(1)
	return f.searchResults, f.err
}

func (f *fakeCatalogAdapter) Trending(_ context.Context) ([]models.CatalogRecord, error) {
	f.trendingCalls.Add(1)
	return f.trendingResults, f.err
}

func (f *fakeCatalogAdapter) MovieDetails(_ context.Context, id int64) (models.CatalogRecord, error) {
	return models.CatalogRecord{ID: id, MediaType: models.Movie}, f.err
}

func (f *fakeCatalogAdapter) SeriesDetails(_ context.Context, id int64) (models.CatalogRecord, error) {
	return models.CatalogRecord{ID: id, MediaType: models.Series}, f.err
}

func (f *fakeCatalogAdapter) PosterURL(posterPath *string) string {
	if posterPath == nil {
		return ""
	}
	return "https://img.example/t/p/w500" + *posterPath
}

func (f *fakeCatalogAdapter) BackdropURL(_ *string) string { return "" }

func makeRecords(n int) []models.CatalogRecord {
	records := make([]models.CatalogRecord, n)
	for i := range records {
		records[i] = models.CatalogRecord{ID: int64(i + 1), Title: "Movie", MediaType: models.Movie}
	}
	return records
}

func TestSearch_CapsResults(t *testing.T) {
	fake := &fakeCatalogAdapter{searchResults: makeRecords(20)}
	svc := NewCatalogService(fake, 8, 10, logger.Nop())

	records, err := svc.Search(context.Background(), "movie")

	require.NoError(t, err)
	assert.Len(t, records, 8)
}

func TestSearch_PropagatesCatalogError(t *testing.T) {
	fake := &fakeCatalogAdapter{err: errors.New("catalog down")}
	svc := NewCatalogService(fake, 8, 10, logger.Nop())

	_, err := svc.Search(context.Background(), "movie")

	require.Error(t, err)
}

func TestTrending_CapsAndCaches(t *testing.T) {
	fake := &fakeCatalogAdapter{trendingResults: makeRecords(25)}
	svc := NewCatalogService(fake, 8, 10, logger.Nop())

	first, err := svc.Trending(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 10)

	second, err := svc.Trending(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 10)

	assert.Equal(t, int64(1), fake.trendingCalls.Load(), "second call must hit the cache")
}

func TestTrending_EmptyResultIsCached(t *testing.T) {
	fake := &fakeCatalogAdapter{trendingResults: []models.CatalogRecord{}}
	svc := NewCatalogService(fake, 8, 10, logger.Nop())

	_, err := svc.Trending(context.Background())
	require.NoError(t, err)
	_, err = svc.Trending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), fake.trendingCalls.Load())
}

func TestRefreshTrending_ReplacesCache(t *testing.T) {
	fake := &fakeCatalogAdapter{trendingResults: makeRecords(3)}
	svc := NewCatalogService(fake, 8, 10, logger.Nop())

	_, err := svc.Trending(context.Background())
	require.NoError(t, err)

	fake.trendingResults = makeRecords(5)
	require.NoError(t, svc.RefreshTrending(context.Background()))

	records, err := svc.Trending(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestRefreshTrending_ErrorKeepsOldCache(t *testing.T) {
	fake := &fakeCatalogAdapter{trendingResults: makeRecords(3)}
	svc := NewCatalogService(fake, 8, 10, logger.Nop())

	_, err := svc.Trending(context.Background())
	require.NoError(t, err)

	fake.err = errors.New("catalog down")
	require.Error(t, svc.RefreshTrending(context.Background()))

	records, err := svc.Trending(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3, "stale cache is better than no cache")
}

func TestNewCatalogService_DefaultLimits(t *testing.T) {
	fake := &fakeCatalogAdapter{
		searchResults:   makeRecords(20),
		trendingResults: makeRecords(20),
	}
	svc := NewCatalogService(fake, 0, 0, logger.Nop())

	search, err := svc.Search(context.Background(), "movie")
	require.NoError(t, err)
	assert.Len(t, search, 8)

	trending, err := svc.Trending(context.Background())
	require.NoError(t, err)
	assert.Len(t, trending, 10)
}
