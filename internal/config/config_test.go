package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	defaults := Default()
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Remote != defaults.Remote || cfg.UI != defaults.UI || cfg.Logging != defaults.Logging {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Seed.Items) != 0 {
		t.Fatalf("unexpected seed %+v", cfg.Seed)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("   ", Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[remote]
base_url = "http://127.0.0.1:9090"
timeout_seconds = 3

[ui]
default_filter = "uncompleted"
show_stats = false

[logging]
level = "debug"

[[seed.items]]
text = "buy milk"
completed = true

[[seed.items]]
text = "walk dog"

[keys]
add = "a"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Remote.BaseURL != "http://127.0.0.1:9090" || cfg.Remote.TimeoutSeconds != 3 {
		t.Fatalf("unexpected remote config %+v", cfg.Remote)
	}
	if cfg.UI.DefaultFilter != "uncompleted" || cfg.UI.ShowStats {
		t.Fatalf("unexpected ui config %+v", cfg.UI)
	}
	if len(cfg.Seed.Items) != 2 || cfg.Seed.Items[0].Text != "buy milk" || !cfg.Seed.Items[0].Completed {
		t.Fatalf("unexpected seed %+v", cfg.Seed)
	}
	if cfg.Keys.Add != "a" || cfg.Keys.Toggle != " " {
		t.Fatalf("unexpected keys %+v", cfg.Keys)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	for name, content := range map[string]string{
		"bad filter":  "[ui]\ndefault_filter = \"done\"\n[logging]\nlevel = \"info\"",
		"bad level":   "[logging]\nlevel = \"noisy\"",
		"bad url":     "[remote]\nbase_url = \"127.0.0.1:8080\"\n[logging]\nlevel = \"info\"",
		"bad timeout": "[remote]\ntimeout_seconds = -1\n[logging]\nlevel = \"info\"",
	} {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if _, err := Load(path, Default()); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[remote\nbase_url = "), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path, Default()); err == nil || !strings.Contains(err.Error(), "decode toml") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")
	if err := EnsureConfigDir(path); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("config dir missing: %v", err)
	}
}
