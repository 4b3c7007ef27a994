package tui

import (
	"fmt"
	"strings"

	"movievault/models"
)

type detailModel struct {
	item        models.VaultItem
	collections []models.Collection
	posterURL   string
	status      string

	// backTo is the screen esc returns to: the vault list or a
	// collection's member list.
	backTo screen
}

func mediaTypeName(t models.MediaType) string {
	if t == models.Series {
		return "Сериал"
	}
	return "Фильм"
}

func (m detailModel) memberOf() []string {
	names := make([]string, 0, len(m.collections))
	for _, c := range m.collections {
		if c.Contains(m.item.ID) {
			names = append(names, c.Name)
		}
	}
	return names
}

func (m detailModel) View() string {
	item := m.item

	out := fmt.Sprintf("%s  [%s]\n\n", item.Title, mediaTypeName(item.MediaType))
	out += fmt.Sprintf("Год       : %s\n", yearOf(item.ReleaseDate))
	out += fmt.Sprintf("Рейтинг   : %s\n", ratingOf(item.Rating))

	watched := "нет"
	if item.IsWatched {
		watched = "да"
	}
	out += fmt.Sprintf("Просмотрен: %s\n", watched)
	out += fmt.Sprintf("Постер    : %s\n", orDash(m.posterURL))
	out += fmt.Sprintf("Добавлен  : %s\n", item.AddedAt.Format("2006-01-02"))

	if names := m.memberOf(); len(names) > 0 {
		out += "Подборки  : " + strings.Join(names, ", ") + "\n"
	} else {
		out += "Подборки  : -\n"
	}

	out += "\n[ ОПИСАНИЕ ]\n"
	out += orDash(strings.TrimSpace(item.Overview)) + "\n"

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	return renderPage(
		strings.ToUpper(mediaTypeName(item.MediaType)),
		strings.TrimRight(out, "\n"),
		"w: просм. │ a: в подборку │ c: копир. название │ u: копир. постер │ d: уд. │ esc: назад",
	)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
