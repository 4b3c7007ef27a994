package tui

import (
	"fmt"
	"strings"

	"movievault/models"
)

type collectionDetailModel struct {
	collection models.Collection
	items      []models.VaultItem
	idx        int
	loading    bool
	status     string
}

func (m collectionDetailModel) current() (models.VaultItem, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.VaultItem{}, false
	}
	return m.items[m.idx], true
}

func (m collectionDetailModel) View() string {
	out := "Описание: " + valueOrDash(m.collection.Description) + "\n\n"

	if m.loading {
		out += "Загрузка...\n"
	} else if len(m.items) == 0 {
		out += "Подборка пуста\n"
	} else {
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			out += fmt.Sprintf(
				"%s%s %s %-34s │ %s\n",
				cursor,
				watchedMark(item.IsWatched),
				mediaTypeIcon(item.MediaType),
				fitText(item.Title, 34),
				yearOf(item.ReleaseDate),
			)
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	return renderPage(
		"ПОДБОРКА: "+strings.ToUpper(m.collection.Name),
		strings.TrimRight(out, "\n"),
		"enter: открыть │ r: убрать из подборки │ ↑/↓: навигация │ esc: назад",
	)
}
