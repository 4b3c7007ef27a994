package tui

import (
	"fmt"
	"strings"

	"movievault/models"
)

// pickerModel chooses a collection to put the opened item into.
type pickerModel struct {
	itemID      string
	collections []models.Collection
	idx         int
}

func (m pickerModel) current() (models.Collection, bool) {
	if len(m.collections) == 0 || m.idx < 0 || m.idx >= len(m.collections) {
		return models.Collection{}, false
	}
	return m.collections[m.idx], true
}

func (m pickerModel) View() string {
	out := ""
	if len(m.collections) == 0 {
		out += "Подборок пока нет, создайте первую клавишей n\n"
	} else {
		for i, c := range m.collections {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			marker := " "
			if c.Contains(m.itemID) {
				marker = "+"
			}
			out += fmt.Sprintf("%s%s %-30s │ %d зап.\n", cursor, marker, fitText(c.Name, 30), len(c.ItemIDs))
		}
	}

	return renderPage(
		"ДОБАВИТЬ В ПОДБОРКУ",
		strings.TrimRight(out, "\n"),
		"enter: добавить │ n: новая подборка │ ↑/↓: навигация │ esc: назад",
	)
}
