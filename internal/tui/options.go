package tui

import (
	"context"
	"strings"

	"github.com/hylla/syssla/internal/domain"
)

// RuntimeConfig carries user-tunable UI settings into the model.
type RuntimeConfig struct {
	DefaultFilter string
	ShowStats     bool
	ConfirmDelete bool
	Keys          KeyBindings
}

type Option func(*Model)

// DefaultRuntimeConfig returns the built-in UI settings.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DefaultFilter: string(domain.FilterAll),
		ShowStats:     true,
		ConfirmDelete: true,
		Keys:          DefaultKeyBindings(),
	}
}

// WithRuntimeConfig applies user settings over the model defaults.
func WithRuntimeConfig(cfg RuntimeConfig) Option {
	return func(m *Model) {
		if filter, err := domain.ParseFilter(cfg.DefaultFilter); err == nil {
			m.store.SetFilter(filter)
		}
		m.showStats = cfg.ShowStats
		m.confirmDelete = cfg.ConfirmDelete
		m.keys = newKeyMap(cfg.Keys)
	}
}

// WithContext sets the context threaded through store operations.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithTitle overrides the header title.
func WithTitle(title string) Option {
	return func(m *Model) {
		if strings.TrimSpace(title) != "" {
			m.title = title
		}
	}
}
