package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
)

// TestParseBindingKeys verifies key parsing behavior for configured overrides.
func TestParseBindingKeys(t *testing.T) {
	t.Run("space aliases", func(t *testing.T) {
		keys, help := parseBindingKeys("space", ".")
		if len(keys) != 2 || keys[0] != " " || keys[1] != "space" {
			t.Fatalf("unexpected parsed space keys %#v", keys)
		}
		if help != "space" {
			t.Fatalf("unexpected space help text %q", help)
		}
	})

	t.Run("uppercase rune includes shift alias", func(t *testing.T) {
		keys, help := parseBindingKeys("Z", "z")
		if len(keys) != 2 || keys[0] != "Z" || keys[1] != "shift+z" {
			t.Fatalf("unexpected uppercase parsed keys %#v", keys)
		}
		if help != "Z" {
			t.Fatalf("unexpected uppercase help text %q", help)
		}
	})

	t.Run("multi rune lowercases key matcher", func(t *testing.T) {
		keys, help := parseBindingKeys("Ctrl+R", "r")
		if len(keys) != 1 || keys[0] != "ctrl+r" {
			t.Fatalf("unexpected multi-rune parsed keys %#v", keys)
		}
		if help != "Ctrl+R" {
			t.Fatalf("unexpected multi-rune help text %q", help)
		}
	})

	t.Run("blank uses fallback", func(t *testing.T) {
		keys, help := parseBindingKeys("", "x")
		if len(keys) != 1 || keys[0] != "x" {
			t.Fatalf("unexpected fallback parsed keys %#v", keys)
		}
		if help != "x" {
			t.Fatalf("unexpected fallback help text %q", help)
		}
	})
}

// TestConfigureBinding verifies binding override application behavior.
func TestConfigureBinding(t *testing.T) {
	b := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "old"))
	configureBinding(&b, "x", "d", "delete todo")
	keys := b.Keys()
	if len(keys) != 1 || keys[0] != "x" {
		t.Fatalf("unexpected configured keys %#v", keys)
	}
	if b.Help().Key != "x" || b.Help().Desc != "delete todo" {
		t.Fatalf("unexpected configured help %#v", b.Help())
	}
}

// TestNewKeyMapAppliesOverrides verifies configured bindings replace defaults.
func TestNewKeyMapAppliesOverrides(t *testing.T) {
	bindings := DefaultKeyBindings()
	bindings.Add = "a"
	bindings.CycleFilter = ""

	k := newKeyMap(bindings)
	if keys := k.addItem.Keys(); len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("unexpected add keys %#v", keys)
	}
	if keys := k.cycleFilter.Keys(); len(keys) != 1 || keys[0] != "f" {
		t.Fatalf("blank override must fall back: %#v", keys)
	}
	if keys := k.toggleDone.Keys(); len(keys) != 2 || keys[0] != " " {
		t.Fatalf("unexpected toggle keys %#v", keys)
	}
}

// TestHelpSurfaces verifies the help bubble receives bindings for both views.
func TestHelpSurfaces(t *testing.T) {
	k := newKeyMap(DefaultKeyBindings())
	if len(k.ShortHelp()) == 0 {
		t.Fatal("short help is empty")
	}
	rows := k.FullHelp()
	if len(rows) != 3 {
		t.Fatalf("unexpected full help shape %#v", rows)
	}
}
