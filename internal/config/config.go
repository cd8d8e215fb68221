package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the persisted TOML configuration.
type Config struct {
	Remote  RemoteConfig  `toml:"remote"`
	UI      UIConfig      `toml:"ui"`
	Seed    SeedConfig    `toml:"seed"`
	Logging LoggingConfig `toml:"logging"`
	Keys    KeyConfig     `toml:"keys"`
}

// RemoteConfig selects and tunes the networked store variant. An empty
// base_url selects the purely local variant.
type RemoteConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// UIConfig tunes the demonstration TUI.
type UIConfig struct {
	DefaultFilter string `toml:"default_filter"`
	ShowStats     bool   `toml:"show_stats"`
	ConfirmDelete bool   `toml:"confirm_delete"`
}

// SeedConfig lists mock items for the local variant's initial collection.
type SeedConfig struct {
	Items []SeedItem `toml:"items"`
}

// SeedItem is one pre-populated todo entry.
type SeedItem struct {
	Text      string `toml:"text"`
	Completed bool   `toml:"completed"`
}

// LoggingConfig tunes the runtime log sinks.
type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

// DevFileConfig tunes the optional logfmt dev-file sink.
type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// KeyConfig holds remappable single-key bindings for the TUI.
type KeyConfig struct {
	Add         string `toml:"add"`
	Toggle      string `toml:"toggle"`
	Delete      string `toml:"delete"`
	Refresh     string `toml:"refresh"`
	CycleFilter string `toml:"cycle_filter"`
}

// validFilters mirrors the domain filter values without importing the domain
// package into config parsing.
var validFilters = []string{"", "all", "completed", "uncompleted"}

// validLogLevels lists the charmbracelet/log levels accepted by validation.
var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Default returns the built-in configuration: local variant, seeded empty.
func Default() Config {
	return Config{
		Remote: RemoteConfig{
			BaseURL:        "",
			TimeoutSeconds: 10,
		},
		UI: UIConfig{
			DefaultFilter: "all",
			ShowStats:     true,
			ConfirmDelete: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
			},
		},
		Keys: KeyConfig{
			Add:         "n",
			Toggle:      " ",
			Delete:      "d",
			Refresh:     "r",
			CycleFilter: "f",
		},
	}
}

// Load reads the TOML file at path over the given defaults. A missing or
// empty file yields the defaults unchanged.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects values the rest of the process cannot act on.
func (c Config) Validate() error {
	if c.Remote.TimeoutSeconds < 0 {
		return fmt.Errorf("remote.timeout_seconds must be >= 0, got %d", c.Remote.TimeoutSeconds)
	}
	if base := strings.TrimSpace(c.Remote.BaseURL); base != "" {
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			return fmt.Errorf("remote.base_url must be an http(s) URL, got %q", base)
		}
	}

	filter := strings.TrimSpace(strings.ToLower(c.UI.DefaultFilter))
	if !slices.Contains(validFilters, filter) {
		return fmt.Errorf("invalid ui.default_filter: %q", c.UI.DefaultFilter)
	}

	level := strings.TrimSpace(strings.ToLower(c.Logging.Level))
	if level == "" {
		return errors.New("logging.level is required")
	}
	if !slices.Contains(validLogLevels, level) {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

// EnsureConfigDir creates the directory holding the config file.
func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
