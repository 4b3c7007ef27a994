package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"movievault/internal/service"
	"movievault/models"
)

type screen int

const (
	screenMenu screen = iota
	screenSearch
	screenVault
	screenDetail
	screenPicker
	screenCollections
	screenCollectionDetail
	screenFormCollection
)

const searchDebounce = 300 * time.Millisecond

type appModel struct {
	ctx           context.Context
	services      *service.Services
	currentScreen screen

	menu             menuModel
	search           searchModel
	vault            vaultModel
	detail           detailModel
	picker           pickerModel
	collections      collectionsModel
	collectionDetail collectionDetailModel
	formCollection   formCollectionModel

	saved map[string]bool

	showError    bool
	errorOverlay errorOverlayModel

	showConfirm             bool
	confirm                 confirmModel
	pendingDeleteItem       string
	pendingDeleteCollection string
}

func newAppModel(ctx context.Context, services *service.Services) appModel {
	return appModel{
		ctx:           ctx,
		services:      services,
		currentScreen: screenMenu,
		menu:          newMenuModel(),
		search:        newSearchModel(),
		vault:         newVaultModel(),
		collections:   newCollectionsModel(),
		saved:         map[string]bool{},
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadVault(), m.cmdLoadTrending())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			return m.updateConfirm(msg)
		}
	case searchDebounceMsg:
		if msg.seq != m.search.seq {
			return m, nil
		}
		query := strings.TrimSpace(m.search.input.Value())
		if query == "" {
			return m, nil
		}
		m.search.searching = true
		return m, m.cmdSearch(query, msg.seq)
	case searchResultsMsg:
		if msg.seq != m.search.seq {
			return m, nil
		}
		m.search.searching = false
		if msg.err != nil {
			m.search.lastErr = humanizeCatalogError(msg.err)
			return m, nil
		}
		m.search.lastErr = ""
		m.search.results = msg.records
		m.search.idx = clampIdx(m.search.idx, len(msg.records))
		return m, nil
	case trendingLoadedMsg:
		if msg.err != nil {
			m.search.lastErr = humanizeCatalogError(msg.err)
			return m, nil
		}
		m.search.trending = msg.records
		return m, nil
	case vaultLoadedMsg:
		m.vault.loading = false
		m.vault.items = msg.items
		m.vault.idx = clampIdx(m.vault.idx, len(m.vault.visible()))
		m.vault.stats = msg.stats
		m.menu.stats = msg.stats
		m.search.recent = msg.recent
		m.saved = msg.saved
		return m, nil
	case itemAddedMsg:
		if msg.created {
			m.search.status = "Сохранено: " + msg.item.Title
		} else {
			m.search.status = "Уже в фильмотеке: " + msg.item.Title
		}
		return m, tea.Batch(m.cmdLoadVault(), cmdClearStatus())
	case watchedToggledMsg:
		if m.detail.item.ID == msg.itemID {
			m.detail.item.IsWatched = msg.watched
		}
		cmds := []tea.Cmd{m.cmdLoadVault()}
		if m.currentScreen == screenCollectionDetail || m.detail.backTo == screenCollectionDetail {
			cmds = append(cmds, m.cmdLoadCollectionItems(m.collectionDetail.collection.ID))
		}
		return m, tea.Batch(cmds...)
	case itemDeletedMsg:
		if m.currentScreen == screenDetail {
			m.currentScreen = m.detail.backTo
		}
		return m, tea.Batch(m.cmdLoadVault(), m.cmdLoadCollections())
	case collectionsLoadedMsg:
		m.collections.loading = false
		m.collections.collections = msg.collections
		m.collections.idx = clampIdx(m.collections.idx, len(msg.collections))
		m.picker.collections = msg.collections
		m.picker.idx = clampIdx(m.picker.idx, len(msg.collections))
		m.detail.collections = msg.collections
		for _, c := range msg.collections {
			if c.ID == m.collectionDetail.collection.ID {
				m.collectionDetail.collection = c
			}
		}
		return m, nil
	case collectionItemsLoadedMsg:
		if msg.collectionID != m.collectionDetail.collection.ID {
			return m, nil
		}
		m.collectionDetail.loading = false
		m.collectionDetail.items = msg.items
		m.collectionDetail.idx = clampIdx(m.collectionDetail.idx, len(msg.items))
		return m, nil
	case collectionSavedMsg:
		m.formCollection.submitting = false
		m.currentScreen = m.formCollection.backTo
		return m, m.cmdLoadCollections()
	case collectionDeletedMsg:
		return m, tea.Batch(m.cmdLoadCollections(), m.cmdLoadVault())
	case membershipChangedMsg:
		cmds := []tea.Cmd{m.cmdLoadCollections(), m.cmdLoadVault()}
		if m.collectionDetail.collection.ID != "" {
			cmds = append(cmds, m.cmdLoadCollectionItems(m.collectionDetail.collection.ID))
		}
		return m, tea.Batch(cmds...)
	case copiedMsg:
		m.detail.status = "Скопировано!"
		return m, cmdClearStatus()
	case copyFailedMsg:
		m.showErrorf("Не удалось скопировать в буфер обмена: " + msg.err.Error())
		return m, nil
	case clearStatusMsg:
		m.detail.status = ""
		m.search.status = ""
		m.vault.status = ""
		m.collectionDetail.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenSearch:
		return m.updateSearch(msg)
	case screenVault:
		return m.updateVault(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenPicker:
		return m.updatePicker(msg)
	case screenCollections:
		return m.updateCollections(msg)
	case screenCollectionDetail:
		return m.updateCollectionDetail(msg)
	case screenFormCollection:
		return m.updateFormCollection(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenMenu:
		body = m.menu.View()
	case screenSearch:
		body = m.search.View(m.saved)
	case screenVault:
		body = m.vault.View()
	case screenDetail:
		body = m.detail.View()
	case screenPicker:
		body = m.picker.View()
	case screenCollections:
		body = m.collections.View()
	case screenCollectionDetail:
		body = m.collectionDetail.View()
	case screenFormCollection:
		body = m.formCollection.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m appModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(keyMsg, keys.yes) {
		m.showConfirm = false
		switch {
		case m.pendingDeleteItem != "":
			id := m.pendingDeleteItem
			m.pendingDeleteItem = ""
			return m, m.cmdDeleteItem(id)
		case m.pendingDeleteCollection != "":
			id := m.pendingDeleteCollection
			m.pendingDeleteCollection = ""
			return m, m.cmdDeleteCollection(id)
		}
		return m, nil
	}
	if key.Matches(keyMsg, keys.no) || key.Matches(keyMsg, keys.esc) {
		m.showConfirm = false
		m.pendingDeleteItem = ""
		m.pendingDeleteCollection = ""
	}
	return m, nil
}

func (m appModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.menu.idx > 0 {
			m.menu.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.menu.idx < len(m.menu.items)-1 {
			m.menu.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		return m.openMenuEntry(m.menu.idx)
	case key.Matches(keyMsg, keys.search):
		return m.openMenuEntry(0)
	case key.Matches(keyMsg, keys.vault):
		return m.openMenuEntry(1)
	case key.Matches(keyMsg, keys.collections):
		return m.openMenuEntry(2)
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	default:
		switch keyMsg.String() {
		case "1":
			return m.openMenuEntry(0)
		case "2":
			return m.openMenuEntry(1)
		case "3":
			return m.openMenuEntry(2)
		}
	}
	return m, nil
}

func (m appModel) openMenuEntry(idx int) (tea.Model, tea.Cmd) {
	switch idx {
	case 0:
		m.currentScreen = screenSearch
		m.search.input.Focus()
		return m, m.cmdLoadTrending()
	case 1:
		m.currentScreen = screenVault
		return m, m.cmdLoadVault()
	case 2:
		m.currentScreen = screenCollections
		return m, m.cmdLoadCollections()
	}
	return m, nil
}

func (m appModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		if m.search.input.Value() != "" {
			m.search.input.SetValue("")
			m.search.seq++
			m.search.results = nil
			m.search.idx = 0
			m.search.searching = false
			m.search.lastErr = ""
			return m, nil
		}
		m.currentScreen = screenMenu
		return m, nil
	// Только стрелки: буквы j/k должны попадать в строку запроса.
	case keyMsg.String() == "up":
		if m.search.idx > 0 {
			m.search.idx--
		}
		return m, nil
	case keyMsg.String() == "down":
		if m.search.idx < m.search.listLen()-1 {
			m.search.idx++
		}
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		rec, ok := m.search.current()
		if strings.TrimSpace(m.search.input.Value()) == "" {
			rec, ok = m.search.idleCurrent()
		}
		if !ok {
			return m, nil
		}
		return m, m.cmdAddFromCatalog(rec)
	}

	before := m.search.input.Value()
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	if m.search.input.Value() == before {
		return m, cmd
	}

	// Каждое изменение запроса обесценивает все запланированные поиски.
	m.search.seq++
	m.search.idx = 0
	m.search.lastErr = ""
	if strings.TrimSpace(m.search.input.Value()) == "" {
		m.search.results = nil
		m.search.searching = false
		return m, cmd
	}
	return m, tea.Batch(cmd, cmdDebounce(m.search.seq))
}

func (m appModel) updateVault(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.vault.filtering {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.vault.filtering = false
			m.vault.query.SetValue("")
			m.vault.query.Blur()
			m.vault.idx = 0
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			m.vault.filtering = false
			m.vault.query.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.vault.query, cmd = m.vault.query.Update(msg)
		m.vault.idx = 0
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		if m.vault.query.Value() != "" {
			m.vault.query.SetValue("")
			m.vault.idx = 0
			return m, nil
		}
		m.currentScreen = screenMenu
	case keyMsg.String() == "/":
		m.vault.filtering = true
		m.vault.query.Focus()
		return m, nil
	case key.Matches(keyMsg, keys.up):
		if m.vault.idx > 0 {
			m.vault.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.vault.idx < len(m.vault.visible())-1 {
			m.vault.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		item, ok := m.vault.current()
		if !ok {
			return m, nil
		}
		return m.openDetail(item, screenVault)
	case key.Matches(keyMsg, keys.watched):
		item, ok := m.vault.current()
		if !ok {
			return m, nil
		}
		return m, m.cmdToggleWatched(item.ID)
	case key.Matches(keyMsg, keys.filter):
		m.vault.filter = nextFilter(m.vault.filter)
		m.vault.idx = 0
		return m, m.cmdLoadVault()
	case key.Matches(keyMsg, keys.delete):
		item, ok := m.vault.current()
		if !ok {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = item.Title
		m.pendingDeleteItem = item.ID
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) openDetail(item models.VaultItem, backTo screen) (tea.Model, tea.Cmd) {
	m.detail = detailModel{
		item:        item,
		collections: m.collections.collections,
		posterURL:   m.services.CatalogService.PosterURL(item.PosterPath),
		backTo:      backTo,
	}
	m.currentScreen = screenDetail
	return m, m.cmdLoadCollections()
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = m.detail.backTo
	case key.Matches(keyMsg, keys.watched):
		return m, m.cmdToggleWatched(m.detail.item.ID)
	case key.Matches(keyMsg, keys.add):
		m.picker = pickerModel{
			itemID:      m.detail.item.ID,
			collections: m.collections.collections,
		}
		m.currentScreen = screenPicker
		return m, m.cmdLoadCollections()
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.detail.item.Title)
	case key.Matches(keyMsg, keys.copyURL):
		if m.detail.posterURL == "" {
			return m, nil
		}
		return m, cmdCopyToClipboard(m.detail.posterURL)
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.confirm.message = m.detail.item.Title
		m.pendingDeleteItem = m.detail.item.ID
	}
	return m, nil
}

func (m appModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.up):
		if m.picker.idx > 0 {
			m.picker.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.picker.idx < len(m.picker.collections)-1 {
			m.picker.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		c, ok := m.picker.current()
		if !ok {
			return m, nil
		}
		m.currentScreen = screenDetail
		return m, m.cmdAddToCollection(c.ID, m.picker.itemID)
	case key.Matches(keyMsg, keys.newItem):
		m.formCollection = newFormCollectionModel(screenPicker)
		m.currentScreen = screenFormCollection
	}
	return m, nil
}

func (m appModel) updateCollections(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenMenu
	case key.Matches(keyMsg, keys.up):
		if m.collections.idx > 0 {
			m.collections.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.collections.idx < len(m.collections.collections)-1 {
			m.collections.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		c, ok := m.collections.current()
		if !ok {
			return m, nil
		}
		m.collectionDetail = collectionDetailModel{collection: c, loading: true}
		m.currentScreen = screenCollectionDetail
		return m, m.cmdLoadCollectionItems(c.ID)
	case key.Matches(keyMsg, keys.newItem):
		m.formCollection = newFormCollectionModel(screenCollections)
		m.currentScreen = screenFormCollection
	case keyMsg.String() == "e":
		c, ok := m.collections.current()
		if !ok {
			return m, nil
		}
		m.formCollection = newEditCollectionModel(c, screenCollections)
		m.currentScreen = screenFormCollection
	case key.Matches(keyMsg, keys.delete):
		c, ok := m.collections.current()
		if !ok {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = c.Name
		m.pendingDeleteCollection = c.ID
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateCollectionDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenCollections
	case key.Matches(keyMsg, keys.up):
		if m.collectionDetail.idx > 0 {
			m.collectionDetail.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.collectionDetail.idx < len(m.collectionDetail.items)-1 {
			m.collectionDetail.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		item, ok := m.collectionDetail.current()
		if !ok {
			return m, nil
		}
		return m.openDetail(item, screenCollectionDetail)
	case key.Matches(keyMsg, keys.remove):
		item, ok := m.collectionDetail.current()
		if !ok {
			return m, nil
		}
		return m, m.cmdRemoveFromCollection(m.collectionDetail.collection.ID, item.ID)
	}
	return m, nil
}

func (m appModel) updateFormCollection(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = m.formCollection.backTo
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.formCollection = focusNextFormCollection(m.formCollection)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.formCollection = focusPrevFormCollection(m.formCollection)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			name := strings.TrimSpace(m.formCollection.inputs[0].Value())
			if name == "" {
				m.formCollection.errText = "Название обязательно"
				return m, nil
			}
			m.formCollection.submitting = true
			if m.formCollection.editingID != "" {
				return m, m.cmdUpdateCollection(m.formCollection.editingID, name, m.formCollection.inputs[1].Value())
			}
			return m, m.cmdCreateCollection(name, m.formCollection.inputs[1].Value())
		}
	}

	var cmd tea.Cmd
	m.formCollection.inputs[m.formCollection.focus], cmd = m.formCollection.inputs[m.formCollection.focus].Update(msg)
	return m, cmd
}

func (m appModel) cmdLoadVault() tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	filter := m.vault.filter
	return func() tea.Msg {
		saved := map[string]bool{}
		for _, item := range svc.Items(ctx) {
			saved[item.Key()] = true
		}
		return vaultLoadedMsg{
			items:  svc.Filtered(ctx, filter),
			recent: svc.Recent(ctx),
			stats:  svc.Stats(ctx),
			saved:  saved,
		}
	}
}

func (m appModel) cmdSearch(query string, seq int) tea.Cmd {
	ctx := m.ctx
	svc := m.services.CatalogService
	return func() tea.Msg {
		records, err := svc.Search(ctx, query)
		return searchResultsMsg{seq: seq, records: records, err: err}
	}
}

func (m appModel) cmdLoadTrending() tea.Cmd {
	ctx := m.ctx
	svc := m.services.CatalogService
	return func() tea.Msg {
		records, err := svc.Trending(ctx)
		return trendingLoadedMsg{records: records, err: err}
	}
}

func (m appModel) cmdAddFromCatalog(record models.CatalogRecord) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		item, created := svc.AddFromCatalog(ctx, record)
		return itemAddedMsg{item: item, created: created}
	}
}

func (m appModel) cmdToggleWatched(itemID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		watched := svc.ToggleWatched(ctx, itemID)
		return watchedToggledMsg{itemID: itemID, watched: watched}
	}
}

func (m appModel) cmdDeleteItem(itemID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		svc.RemoveItem(ctx, itemID)
		return itemDeletedMsg{}
	}
}

func (m appModel) cmdLoadCollections() tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		return collectionsLoadedMsg{collections: svc.Collections(ctx)}
	}
}

func (m appModel) cmdLoadCollectionItems(collectionID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		return collectionItemsLoadedMsg{
			collectionID: collectionID,
			items:        svc.CollectionItems(ctx, collectionID),
		}
	}
}

func (m appModel) cmdCreateCollection(name, description string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		c := svc.CreateCollection(ctx, name, description)
		return collectionSavedMsg{collection: c}
	}
}

func (m appModel) cmdUpdateCollection(collectionID, name, description string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		// Описание отправляется всегда: пустое поле очищает его.
		trimmed := strings.TrimSpace(description)
		svc.UpdateCollection(ctx, collectionID, models.CollectionUpdate{
			Name:        &name,
			Description: &trimmed,
		})
		return collectionSavedMsg{}
	}
}

func (m appModel) cmdDeleteCollection(collectionID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		svc.DeleteCollection(ctx, collectionID)
		return collectionDeletedMsg{}
	}
}

func (m appModel) cmdAddToCollection(collectionID, itemID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		svc.AddItemToCollection(ctx, collectionID, itemID)
		return membershipChangedMsg{}
	}
}

func (m appModel) cmdRemoveFromCollection(collectionID, itemID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VaultService
	return func() tea.Msg {
		svc.RemoveItemFromCollection(ctx, collectionID, itemID)
		return membershipChangedMsg{}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copyFailedMsg{err: err}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func cmdDebounce(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func clampIdx(idx, length int) int {
	if idx >= length {
		idx = length - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
