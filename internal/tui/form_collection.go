package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"movievault/models"
)

type formCollectionModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errText    string

	// editingID is set when the form edits an existing collection instead
	// of creating a new one.
	editingID string

	// backTo is where esc and a successful save return: the collections
	// list or the add-to-collection picker.
	backTo screen
}

func newFormCollectionModel(backTo screen) formCollectionModel {
	name := textinput.New()
	name.Placeholder = "название подборки"
	name.CharLimit = 60
	name.Focus()

	description := textinput.New()
	description.Placeholder = "описание (необязательно)"
	description.CharLimit = 200

	return formCollectionModel{
		inputs: []textinput.Model{name, description},
		backTo: backTo,
	}
}

func newEditCollectionModel(c models.Collection, backTo screen) formCollectionModel {
	m := newFormCollectionModel(backTo)
	m.editingID = c.ID
	m.inputs[0].SetValue(c.Name)
	if c.Description != nil {
		m.inputs[1].SetValue(*c.Description)
	}
	return m
}

func (m formCollectionModel) View() string {
	out := "Название  : [ " + m.inputs[0].View() + " ]\n"
	out += "Описание  : [ " + m.inputs[1].View() + " ]\n"
	if m.errText != "" {
		out += "\nОшибка: " + m.errText + "\n"
	}
	if m.submitting {
		out += "\nСохранение...\n"
	}

	title := "НОВАЯ ПОДБОРКА"
	if m.editingID != "" {
		title = "РЕДАКТИРОВАТЬ ПОДБОРКУ"
	}

	return renderPage(
		title,
		strings.TrimRight(out, "\n"),
		"tab: след. поле │ shift+tab: пред. поле │ enter: сохранить │ esc: отмена",
	)
}

func focusNextFormCollection(m formCollectionModel) formCollectionModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevFormCollection(m formCollectionModel) formCollectionModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
