package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dshills/codepad/internal/logging"
)

// Config holds every codepad setting.
type Config struct {
	Editor    EditorConfig    `toml:"editor" yaml:"editor"`
	UI        UIConfig        `toml:"ui" yaml:"ui"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
	Languages LanguagesConfig `toml:"languages" yaml:"languages"`

	// Keys maps action names to comma-separated key chords replacing the
	// default bindings. An empty value unbinds the action.
	Keys map[string]string `toml:"keys" yaml:"keys"`
}

// EditorConfig holds editing behavior.
type EditorConfig struct {
	// IndentWidth is the number of spaces inserted by Tab.
	IndentWidth int `toml:"indent_width" yaml:"indent_width"`

	// AutoIndent copies the current line's indentation on Enter.
	AutoIndent bool `toml:"auto_indent" yaml:"auto_indent"`

	// AutoPair inserts closing brackets and quotes.
	AutoPair bool `toml:"auto_pair" yaml:"auto_pair"`

	// MaxUndo limits undo entries per document; 0 means unlimited.
	MaxUndo int `toml:"max_undo" yaml:"max_undo"`
}

// UIConfig holds display settings.
type UIConfig struct {
	// Theme is the color theme name.
	Theme string `toml:"theme" yaml:"theme"`

	// ThemeFile is an optional JSON theme, registered under its own name.
	ThemeFile string `toml:"theme_file" yaml:"theme_file"`

	// LineNumbers shows the line number gutter.
	LineNumbers bool `toml:"line_numbers" yaml:"line_numbers"`

	// HighlightCurrentLine tints the line holding the cursor.
	HighlightCurrentLine bool `toml:"highlight_current_line" yaml:"highlight_current_line"`

	// Sidebar shows the file tree at start-up.
	Sidebar bool `toml:"sidebar" yaml:"sidebar"`

	// SidebarWidth is the file tree width in cells.
	SidebarWidth int `toml:"sidebar_width" yaml:"sidebar_width"`

	// ShowHidden lists dot files in the file tree.
	ShowHidden bool `toml:"show_hidden" yaml:"show_hidden"`
}

// LoggingConfig holds log settings. Logs are discarded unless File is set.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// LanguagesConfig points at user rule sets.
type LanguagesConfig struct {
	// File is a Lua script returning extra languages.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			IndentWidth: 4,
			AutoIndent:  true,
			AutoPair:    true,
			MaxUndo:     1000,
		},
		UI: UIConfig{
			Theme:                "dark",
			LineNumbers:          true,
			HighlightCurrentLine: true,
			Sidebar:              true,
			SidebarWidth:         30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Keys: map[string]string{},
	}
}

// Validate checks value ranges and returns every problem found.
func (c *Config) Validate() error {
	var errs []error
	if c.Editor.IndentWidth < 1 || c.Editor.IndentWidth > 16 {
		errs = append(errs, &ValidationError{Path: "editor.indent_width", Value: c.Editor.IndentWidth, Message: "must be between 1 and 16"})
	}
	if c.Editor.MaxUndo < 0 {
		errs = append(errs, &ValidationError{Path: "editor.max_undo", Value: c.Editor.MaxUndo, Message: "must not be negative"})
	}
	if c.UI.Theme == "" {
		errs = append(errs, &ValidationError{Path: "ui.theme", Value: c.UI.Theme, Message: "must not be empty"})
	}
	if c.UI.SidebarWidth < 10 || c.UI.SidebarWidth > 120 {
		errs = append(errs, &ValidationError{Path: "ui.sidebar_width", Value: c.UI.SidebarWidth, Message: "must be between 10 and 120"})
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: err.Error()})
	}
	return errors.Join(errs...)
}

// DefaultDir returns the user configuration directory, e.g.
// ~/.config/codepad on Linux.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "codepad")
	}
	return filepath.Join(dir, "codepad")
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// ResolvePath makes a path from the config file relative to the file's
// directory. Absolute paths, empty paths and "~/" paths are expanded only.
func ResolvePath(configPath, p string) string {
	if p == "" {
		return ""
	}
	if len(p) > 1 && p[0] == '~' && (p[1] == '/' || p[1] == filepath.Separator) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) || configPath == "" {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
