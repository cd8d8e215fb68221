package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit        key.Binding
	toggleHelp  key.Binding
	moveUp      key.Binding
	moveDown    key.Binding
	addItem     key.Binding
	editItem    key.Binding
	itemInfo    key.Binding
	toggleDone  key.Binding
	deleteItem  key.Binding
	reorderUp   key.Binding
	reorderDown key.Binding
	cycleFilter key.Binding
	refresh     key.Binding
}

// KeyBindings holds user-remappable single-key actions.
type KeyBindings struct {
	Add         string
	Toggle      string
	Delete      string
	Refresh     string
	CycleFilter string
}

// DefaultKeyBindings returns the built-in single-key actions.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Add:         "n",
		Toggle:      "space",
		Delete:      "d",
		Refresh:     "r",
		CycleFilter: "f",
	}
}

// newKeyMap constructs key map.
func newKeyMap(bindings KeyBindings) keyMap {
	k := keyMap{
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveUp:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "cursor up")),
		moveDown:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "cursor down")),
		editItem:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit todo")),
		itemInfo:    key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i/enter", "todo info")),
		reorderUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move todo up")),
		reorderDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move todo down")),
	}
	k.addItem = key.NewBinding()
	configureBinding(&k.addItem, bindings.Add, "n", "new todo")
	k.toggleDone = key.NewBinding()
	configureBinding(&k.toggleDone, bindings.Toggle, "space", "toggle done")
	k.deleteItem = key.NewBinding()
	configureBinding(&k.deleteItem, bindings.Delete, "d", "delete todo")
	k.refresh = key.NewBinding()
	configureBinding(&k.refresh, bindings.Refresh, "r", "refresh")
	k.cycleFilter = key.NewBinding()
	configureBinding(&k.cycleFilter, bindings.CycleFilter, "f", "cycle filter")
	return k
}

// configureBinding applies one configured key override onto a binding.
func configureBinding(b *key.Binding, value, fallback, desc string) {
	keys, helpKey := parseBindingKeys(value, fallback)
	b.SetKeys(keys...)
	b.SetHelp(helpKey, desc)
}

// parseBindingKeys resolves one configured binding value into matcher keys and
// a help label. Space aliases both encodings, uppercase runes alias their
// shifted form, multi-rune chords are lowercased for matching.
func parseBindingKeys(value, fallback string) ([]string, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	if value == " " || strings.EqualFold(value, "space") {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if unicode.IsUpper(r) {
			return []string{value, "shift+" + strings.ToLower(value)}, value
		}
		return []string{value}, value
	}
	return []string{strings.ToLower(value)}, value
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addItem, k.toggleDone, k.deleteItem, k.cycleFilter, k.refresh, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addItem, k.editItem, k.itemInfo, k.toggleDone, k.deleteItem},
		{k.moveUp, k.moveDown, k.reorderUp, k.reorderDown},
		{k.cycleFilter, k.refresh, k.toggleHelp, k.quit},
	}
}
