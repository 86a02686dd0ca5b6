// Package config loads and watches the editor's TOML configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the decoded strand.toml.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	View   ViewConfig   `toml:"view"`
	Log    LogConfig    `toml:"log"`
}

// EditorConfig controls buffer behavior.
type EditorConfig struct {
	// TabWidth is the rendered width of a tab character.
	TabWidth int `toml:"tab_width"`

	// HistoryLimit is the edit journal capacity. It is rounded up to a
	// power of two.
	HistoryLimit int `toml:"history_limit"`

	// UndoLimit bounds the undo stack.
	UndoLimit int `toml:"undo_limit"`
}

// ViewConfig controls rendering.
type ViewConfig struct {
	// Theme names the highlight style.
	Theme string `toml:"theme"`

	// Syntax toggles syntax highlighting.
	Syntax bool `toml:"syntax"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Path is the log file. Empty disables file logging.
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:     4,
			HistoryLimit: 1024,
			UndoLimit:    1000,
		},
		View: ViewConfig{
			Theme:  "monokai",
			Syntax: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the file at path over the defaults. A missing file is not
// an error; the defaults are returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadFrom reads configuration from an io.Reader over the defaults.
func LoadFrom(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

func parse(source string, data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks the decoded values.
func (c Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width %d outside [1,16]", c.Editor.TabWidth)
	}
	if c.Editor.HistoryLimit < 1 {
		return fmt.Errorf("editor.history_limit must be positive, got %d", c.Editor.HistoryLimit)
	}
	if c.Editor.UndoLimit < 1 {
		return fmt.Errorf("editor.undo_limit must be positive, got %d", c.Editor.UndoLimit)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// DefaultPath returns the conventional config location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "strand", "strand.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "strand.toml"
	}
	return filepath.Join(home, ".config", "strand", "strand.toml")
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
