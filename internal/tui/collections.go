package tui

import (
	"fmt"
	"strings"

	"movievault/models"
)

type collectionsModel struct {
	collections []models.Collection
	idx         int
	loading     bool
}

func newCollectionsModel() collectionsModel {
	return collectionsModel{loading: true}
}

func (m collectionsModel) current() (models.Collection, bool) {
	if len(m.collections) == 0 || m.idx < 0 || m.idx >= len(m.collections) {
		return models.Collection{}, false
	}
	return m.collections[m.idx], true
}

func (m collectionsModel) View() string {
	out := ""
	if m.loading {
		out += "Загрузка...\n"
	} else if len(m.collections) == 0 {
		out += "Подборок пока нет\n"
	} else {
		for i, c := range m.collections {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			out += fmt.Sprintf(
				"%s%-28s │ %3d зап. │ %s\n",
				cursor,
				fitText(c.Name, 28),
				len(c.ItemIDs),
				fitText(valueOrDash(c.Description), 30),
			)
		}
	}

	return renderPage(
		"ПОДБОРКИ",
		strings.TrimRight(out, "\n"),
		"enter: открыть │ n: новая │ e: изм. │ d: удалить │ ↑/↓: навигация │ esc: назад",
	)
}
