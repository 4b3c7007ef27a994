package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	enter       key.Binding
	esc         key.Binding
	tab         key.Binding
	backtab     key.Binding
	quit        key.Binding
	search      key.Binding
	vault       key.Binding
	collections key.Binding
	add         key.Binding
	newItem     key.Binding
	filter      key.Binding
	watched     key.Binding
	delete      key.Binding
	remove      key.Binding
	copy        key.Binding
	copyURL     key.Binding
	yes         key.Binding
	no          key.Binding
}

var keys = keyMap{
	up:          key.NewBinding(key.WithKeys("up", "k")),
	down:        key.NewBinding(key.WithKeys("down", "j")),
	enter:       key.NewBinding(key.WithKeys("enter")),
	esc:         key.NewBinding(key.WithKeys("esc")),
	tab:         key.NewBinding(key.WithKeys("tab")),
	backtab:     key.NewBinding(key.WithKeys("shift+tab")),
	quit:        key.NewBinding(key.WithKeys("q", "ctrl+c")),
	search:      key.NewBinding(key.WithKeys("s")),
	vault:       key.NewBinding(key.WithKeys("v")),
	collections: key.NewBinding(key.WithKeys("p")),
	add:         key.NewBinding(key.WithKeys("a")),
	newItem:     key.NewBinding(key.WithKeys("n")),
	filter:      key.NewBinding(key.WithKeys("f")),
	watched:     key.NewBinding(key.WithKeys("w")),
	delete:      key.NewBinding(key.WithKeys("d")),
	remove:      key.NewBinding(key.WithKeys("r")),
	copy:        key.NewBinding(key.WithKeys("c")),
	copyURL:     key.NewBinding(key.WithKeys("u")),
	yes:         key.NewBinding(key.WithKeys("y")),
	no:          key.NewBinding(key.WithKeys("n")),
}
