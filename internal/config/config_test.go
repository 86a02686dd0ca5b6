package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
}

func TestLoadFrom(t *testing.T) {
	input := `
[editor]
tab_width = 8
undo_limit = 50

[view]
theme = "dracula"
syntax = false

[log]
level = "debug"
path = "/tmp/strand.log"
`
	cfg, err := LoadFrom(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	// Unset keys keep their defaults.
	if cfg.Editor.HistoryLimit != 1024 {
		t.Errorf("HistoryLimit = %d, want default 1024", cfg.Editor.HistoryLimit)
	}
	if cfg.Editor.UndoLimit != 50 {
		t.Errorf("UndoLimit = %d, want 50", cfg.Editor.UndoLimit)
	}
	if cfg.View.Theme != "dracula" || cfg.View.Syntax {
		t.Errorf("View = %+v", cfg.View)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Path != "/tmp/strand.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := LoadFrom(strings.NewReader("[editor\ntab_width = 4"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error %T is not a ParseError", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tab width", func(c *Config) { c.Editor.TabWidth = 0 }},
		{"huge tab width", func(c *Config) { c.Editor.TabWidth = 99 }},
		{"zero history", func(c *Config) { c.Editor.HistoryLimit = 0 }},
		{"zero undo", func(c *Config) { c.Editor.UndoLimit = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWatchReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strand.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Config, 1)
	w, err := Watch(path, func(c Config) {
		select {
		case reloaded <- c:
		default:
		}
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Editor.TabWidth != 2 {
			t.Errorf("reloaded TabWidth = %d, want 2", cfg.Editor.TabWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatchBadConfigKeepsRunning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strand.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := make(chan error, 1)
	reloaded := make(chan Config, 1)
	w, err := Watch(path,
		func(c Config) {
			select {
			case reloaded <- c:
			default:
			}
		},
		WithDebounce(20*time.Millisecond),
		WithErrorFunc(func(e error) {
			select {
			case errs <- e:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("not toml at all ["), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error callback")
	}

	// A later good write still reloads.
	if err := os.WriteFile(path, []byte("[view]\ntheme = \"nord\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case cfg := <-reloaded:
		if cfg.View.Theme != "nord" {
			t.Errorf("Theme = %q, want nord", cfg.View.Theme)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload after recovery")
	}
}
