package tui

import (
	"movievault/models"
)

// searchDebounceMsg fires after the typing pause. seq ties it to the input
// state it was scheduled for, so stale timers are ignored.
type searchDebounceMsg struct {
	seq int
}

// searchResultsMsg carries the results of one catalog search request.
// Results are applied only when seq still matches the search model.
type searchResultsMsg struct {
	seq     int
	records []models.CatalogRecord
	err     error
}

type trendingLoadedMsg struct {
	records []models.CatalogRecord
	err     error
}

type vaultLoadedMsg struct {
	items  []models.VaultItem
	recent []models.VaultItem
	stats  models.VaultStats

	// saved holds the catalog keys of every saved item regardless of the
	// active filter, for the "+" markers on search screens.
	saved map[string]bool
}

type itemAddedMsg struct {
	item    models.VaultItem
	created bool
}

type itemDeletedMsg struct{}

type watchedToggledMsg struct {
	itemID  string
	watched bool
}

type collectionsLoadedMsg struct {
	collections []models.Collection
}

type collectionItemsLoadedMsg struct {
	collectionID string
	items        []models.VaultItem
}

type collectionSavedMsg struct {
	collection models.Collection
}

type collectionDeletedMsg struct{}

type membershipChangedMsg struct{}

type copiedMsg struct{}

type copyFailedMsg struct {
	err error
}

type clearStatusMsg struct{}
