package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movievault/internal/service"
	"movievault/models"
)

// fakeCatalog serves canned search results so the model can be driven
// without a network.
type fakeCatalog struct {
	records []models.CatalogRecord
}

func (f *fakeCatalog) Search(context.Context, string) ([]models.CatalogRecord, error) {
	return f.records, nil
}

func (f *fakeCatalog) Trending(context.Context) ([]models.CatalogRecord, error) {
	return nil, nil
}

func (f *fakeCatalog) RefreshTrending(context.Context) error { return nil }

func (f *fakeCatalog) PosterURL(*string) string { return "" }

func newTestAppModel(records ...models.CatalogRecord) appModel {
	services := &service.Services{
		CatalogService: &fakeCatalog{records: records},
	}
	m := newAppModel(context.Background(), services)
	m.currentScreen = screenSearch
	return m
}

func asAppModel(t *testing.T, model tea.Model) appModel {
	t.Helper()
	m, ok := model.(appModel)
	require.True(t, ok)
	return m
}

// ── search debounce ───────────────────────────────────────────────────────────

func TestSearch_StaleDebounceIgnored(t *testing.T) {
	m := newTestAppModel()
	m.search.input.SetValue("matrix")
	m.search.seq = 2

	// a tick scheduled before the query changed again
	model, cmd := m.Update(searchDebounceMsg{seq: 1})

	got := asAppModel(t, model)
	assert.Nil(t, cmd)
	assert.False(t, got.search.searching)
}

func TestSearch_CurrentDebounceStartsSearch(t *testing.T) {
	record := models.CatalogRecord{ID: 603, Title: "The Matrix", MediaType: models.Movie}
	m := newTestAppModel(record)
	m.search.input.SetValue("matrix")
	m.search.seq = 2

	model, cmd := m.Update(searchDebounceMsg{seq: 2})

	got := asAppModel(t, model)
	require.NotNil(t, cmd)
	assert.True(t, got.search.searching)

	msg, ok := cmd().(searchResultsMsg)
	require.True(t, ok)
	assert.Equal(t, 2, msg.seq)
	require.Len(t, msg.records, 1)
	assert.Equal(t, "The Matrix", msg.records[0].Title)
}

func TestSearch_BlankQueryDebounceIsNoOp(t *testing.T) {
	m := newTestAppModel()
	m.search.input.SetValue("   ")

	model, cmd := m.Update(searchDebounceMsg{seq: m.search.seq})

	got := asAppModel(t, model)
	assert.Nil(t, cmd)
	assert.False(t, got.search.searching)
}

// ── search results ────────────────────────────────────────────────────────────

func TestSearch_StaleResultsIgnored(t *testing.T) {
	m := newTestAppModel()
	m.search.seq = 2
	m.search.searching = true

	model, _ := m.Update(searchResultsMsg{
		seq:     1,
		records: []models.CatalogRecord{{ID: 603, Title: "The Matrix", MediaType: models.Movie}},
	})

	got := asAppModel(t, model)
	assert.Empty(t, got.search.results, "an outdated response must not replace the current query's results")
	assert.True(t, got.search.searching, "the current query is still in flight")
}

func TestSearch_CurrentResultsApplied(t *testing.T) {
	m := newTestAppModel()
	m.search.seq = 2
	m.search.searching = true

	model, _ := m.Update(searchResultsMsg{
		seq:     2,
		records: []models.CatalogRecord{{ID: 603, Title: "The Matrix", MediaType: models.Movie}},
	})

	got := asAppModel(t, model)
	assert.False(t, got.search.searching)
	require.Len(t, got.search.results, 1)
	assert.Equal(t, "The Matrix", got.search.results[0].Title)
}

func TestSearch_TypingInvalidatesPendingSearches(t *testing.T) {
	m := newTestAppModel()
	before := m.search.seq

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})

	got := asAppModel(t, model)
	assert.Equal(t, before+1, got.search.seq, "every edit schedules a fresh search")
}
