package tui

import (
	"fmt"

	"movievault/models"
)

type menuModel struct {
	items []string
	idx   int
	stats models.VaultStats
}

func newMenuModel() menuModel {
	return menuModel{
		items: []string{"Поиск по каталогу", "Моя фильмотека", "Подборки"},
	}
}

func (m menuModel) View() string {
	out := ""
	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		out += fmt.Sprintf("%s %d. %s\n", cursor, i+1, item)
	}

	out += "\n"
	out += fmt.Sprintf(
		"Сохранено: %d │ фильмы: %d │ сериалы: %d │ просмотрено: %d",
		m.stats.Total, m.stats.Movies, m.stats.Series, m.stats.Watched,
	)

	return renderPage(
		"MOVIEVAULT",
		out,
		"1-3/enter: выбрать │ s: поиск │ v: фильмотека │ p: подборки │ q: выход",
	)
}
