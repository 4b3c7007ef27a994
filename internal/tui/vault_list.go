package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"movievault/internal/service"
	"movievault/models"
)

type vaultModel struct {
	items   []models.VaultItem
	idx     int
	filter  service.VaultFilter
	stats   models.VaultStats
	loading bool
	status  string

	// query narrows the listing by title on top of the active filter.
	// filtering is true while the query input holds focus.
	query     textinput.Model
	filtering bool
}

func newVaultModel() vaultModel {
	query := textinput.New()
	query.Placeholder = "часть названия"
	query.CharLimit = 60
	return vaultModel{filter: service.FilterAll, loading: true, query: query}
}

// visible returns the items matching the title query, case-insensitive.
func (m vaultModel) visible() []models.VaultItem {
	q := strings.ToLower(strings.TrimSpace(m.query.Value()))
	if q == "" {
		return m.items
	}
	matched := make([]models.VaultItem, 0, len(m.items))
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item.Title), q) {
			matched = append(matched, item)
		}
	}
	return matched
}

func (m vaultModel) current() (models.VaultItem, bool) {
	visible := m.visible()
	if len(visible) == 0 || m.idx < 0 || m.idx >= len(visible) {
		return models.VaultItem{}, false
	}
	return visible[m.idx], true
}

var filterOrder = []service.VaultFilter{
	service.FilterAll,
	service.FilterMovies,
	service.FilterSeries,
	service.FilterWatched,
	service.FilterUnwatched,
}

func nextFilter(f service.VaultFilter) service.VaultFilter {
	for i, candidate := range filterOrder {
		if candidate == f {
			return filterOrder[(i+1)%len(filterOrder)]
		}
	}
	return service.FilterAll
}

func filterLabel(f service.VaultFilter) string {
	switch f {
	case service.FilterMovies:
		return "фильмы"
	case service.FilterSeries:
		return "сериалы"
	case service.FilterWatched:
		return "просмотрено"
	case service.FilterUnwatched:
		return "не просмотрено"
	default:
		return "все"
	}
}

func watchedMark(watched bool) string {
	if watched {
		return "[x]"
	}
	return "[ ]"
}

func (m vaultModel) View() string {
	out := fmt.Sprintf(
		"Всего: %d │ фильмы: %d │ сериалы: %d │ просмотрено: %d │ фильтр: %s\n",
		m.stats.Total, m.stats.Movies, m.stats.Series, m.stats.Watched, filterLabel(m.filter),
	)
	if m.filtering || m.query.Value() != "" {
		out += "Поиск: [ " + m.query.View() + " ]\n"
	}
	out += "\n"

	visible := m.visible()
	if m.loading {
		out += "Загрузка...\n"
	} else if len(visible) == 0 {
		out += "Записей нет\n"
	} else {
		for i, item := range visible {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			line := fmt.Sprintf(
				"%s%s %s %-34s │ %s │ %s",
				cursor,
				watchedMark(item.IsWatched),
				mediaTypeIcon(item.MediaType),
				fitText(item.Title, 34),
				yearOf(item.ReleaseDate),
				ratingOf(item.Rating),
			)
			if item.IsWatched {
				line = watchedStyle.Render(line)
			}
			out += line + "\n"
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	hotkeys := "enter: открыть │ w: просм. │ f: фильтр │ /: поиск │ d: уд. │ esc: назад"
	if m.filtering {
		hotkeys = "enter: к списку │ esc: сбросить поиск"
	}

	return renderPage(
		"МОЯ ФИЛЬМОТЕКА",
		strings.TrimRight(out, "\n"),
		hotkeys,
	)
}
