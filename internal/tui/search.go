package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"movievault/models"
)

type searchModel struct {
	input     textinput.Model
	seq       int
	results   []models.CatalogRecord
	idx       int
	searching bool

	trending []models.CatalogRecord
	recent   []models.VaultItem

	status  string
	lastErr string
}

func newSearchModel() searchModel {
	input := textinput.New()
	input.Placeholder = "название фильма или сериала"
	input.CharLimit = 100
	input.Focus()

	return searchModel{input: input}
}

func (m searchModel) current() (models.CatalogRecord, bool) {
	if len(m.results) == 0 || m.idx < 0 || m.idx >= len(m.results) {
		return models.CatalogRecord{}, false
	}
	return m.results[m.idx], true
}

func mediaTypeIcon(t models.MediaType) string {
	if t == models.Series {
		return "[С]"
	}
	return "[Ф]"
}

func (m searchModel) View(saved map[string]bool) string {
	out := "Запрос: [ " + m.input.View() + " ]\n\n"

	switch {
	case strings.TrimSpace(m.input.Value()) == "":
		out += m.viewIdle(saved)
	case m.searching:
		out += "Поиск...\n"
	case len(m.results) == 0:
		out += "Ничего не найдено\n"
	default:
		for i, rec := range m.results {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			marker := " "
			if saved[rec.Key()] {
				marker = "+"
			}
			out += fmt.Sprintf(
				"%s%s %s │ %-34s │ %s │ %s\n",
				cursor,
				marker,
				mediaTypeIcon(rec.ResolvedMediaType()),
				fitText(rec.DisplayTitle(), 34),
				yearOf(rec.ReleaseOrAirDate()),
				ratingOf(rec.VoteAverage),
			)
		}
	}

	if m.lastErr != "" {
		out += "\nОшибка: " + m.lastErr + "\n"
	}
	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	return renderPage(
		"ПОИСК",
		strings.TrimRight(out, "\n"),
		"enter: сохранить │ ↑/↓: навигация │ esc: назад",
	)
}

func (m searchModel) viewIdle(saved map[string]bool) string {
	out := "[ В ТРЕНДЕ ]\n"
	if len(m.trending) == 0 {
		out += "Пока пусто\n"
	} else {
		for i, rec := range m.trending {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			marker := " "
			if saved[rec.Key()] {
				marker = "+"
			}
			out += fmt.Sprintf(
				"%s%s %s %s (%s)\n",
				cursor,
				marker,
				mediaTypeIcon(rec.ResolvedMediaType()),
				fitText(rec.DisplayTitle(), 40),
				yearOf(rec.ReleaseOrAirDate()),
			)
		}
	}

	out += "\n[ НЕДАВНО ДОБАВЛЕННЫЕ ]\n"
	if len(m.recent) == 0 {
		out += "Записей нет\n"
	} else {
		for _, item := range m.recent {
			out += fmt.Sprintf("  %s %s\n", mediaTypeIcon(item.MediaType), fitText(item.Title, 40))
		}
	}

	return out
}

// idleCurrent returns the highlighted trending record while the query is
// blank, when the cursor navigates the trending strip instead of results.
func (m searchModel) idleCurrent() (models.CatalogRecord, bool) {
	if len(m.trending) == 0 || m.idx < 0 || m.idx >= len(m.trending) {
		return models.CatalogRecord{}, false
	}
	return m.trending[m.idx], true
}

func (m searchModel) listLen() int {
	if strings.TrimSpace(m.input.Value()) == "" {
		return len(m.trending)
	}
	return len(m.results)
}
