package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/dshills/codepad/internal/config"
	"github.com/dshills/codepad/internal/input"
	"github.com/dshills/codepad/internal/input/keymap"
	"github.com/dshills/codepad/internal/logging"
	"github.com/dshills/codepad/internal/plugin/lua"
	"github.com/dshills/codepad/internal/renderer/highlight"
	"github.com/dshills/codepad/internal/workspace"
)

// bootstrap initializes all components in dependency order. Problems the
// user can fix from inside the editor (a bad languages file, an unknown
// theme, a bad key binding) are logged and shown on the status line instead
// of stopping startup.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := config.Load(app.configPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logging
	if err := app.openLog(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.log.Info("starting, config %s", app.configPath)

	// 3. Languages
	registry, err := LoadRegistry(cfg, app.configPath)
	if err != nil {
		app.warn("languages: %v", err)
	}

	// 4. Themes
	app.themes, app.theme, err = LoadThemes(cfg, app.configPath)
	if err != nil {
		app.warn("theme: %v", err)
	}

	// 5. Keymap
	app.keymap = keymap.Default()
	if err := app.keymap.Apply(cfg.Keys); err != nil {
		app.warn("keys: %v", err)
	}

	// 6. Workspace
	handler := input.NewHandler(input.Config{
		IndentWidth: cfg.Editor.IndentWidth,
		AutoIndent:  cfg.Editor.AutoIndent,
		AutoPair:    cfg.Editor.AutoPair,
	})
	wsOpts := []workspace.Option{
		workspace.WithHandler(handler),
		workspace.WithLogger(app.log),
		workspace.WithMaxUndo(cfg.Editor.MaxUndo),
	}
	if w, err := workspace.NewWatcher(workspace.DefaultDebounce, app.log); err != nil {
		app.log.WithError(err).Warn("file watching disabled")
	} else {
		app.watcher = w
		wsOpts = append(wsOpts, workspace.WithWatcher(w))
	}
	app.workspace = workspace.New(registry, wsOpts...)
	app.workspace.OnDocumentChanged(func(path string, modified bool) {
		app.log.Debug("document %s modified=%t", path, modified)
	})

	// 7. Initial files
	for _, file := range app.files {
		if _, err := app.workspace.Open(file); err != nil {
			app.warn("%v", err)
		}
	}
	if app.workspace.Count() == 0 {
		app.workspace.NewUntitled()
	}

	// 8. File tree
	app.openTree()
	return nil
}

// openLog routes logging to the file named by the options or the config.
func (app *Application) openLog() error {
	if app.log != nil {
		return nil
	}
	levelName := app.config.Logging.Level
	if app.logLevel != "" {
		levelName = app.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	path := app.logFile
	if path == "" {
		path = config.ResolvePath(app.configPath, app.config.Logging.File)
	}
	if path == "" {
		app.log = logging.Nop()
		return nil
	}
	log, closer, err := logging.OpenFile(path, level)
	if err != nil {
		return err
	}
	app.log = log
	app.logCloser = closer
	return nil
}

// LoadRegistry builds the language registry: the built-in languages plus
// those from the config's Lua languages file. The registry is always
// usable; the error describes languages that were skipped.
func LoadRegistry(cfg *config.Config, configPath string) (*highlight.Registry, error) {
	path := config.ResolvePath(configPath, cfg.Languages.File)
	if path == "" {
		return highlight.NewRegistry()
	}
	sets, loadErr := lua.LoadLanguages(path)
	registry, err := highlight.NewRegistry(sets...)
	if loadErr != nil {
		err = errors.Join(loadErr, err)
	}
	return registry, err
}

// LoadThemes returns the theme registry, with the config's theme file
// registered, and the configured theme. An unknown theme name falls back
// to dark.
func LoadThemes(cfg *config.Config, configPath string) (*highlight.ThemeRegistry, *highlight.Theme, error) {
	themes := highlight.NewThemeRegistry()
	var errs []error

	if path := config.ResolvePath(configPath, cfg.UI.ThemeFile); path != "" {
		base, ok := themes.Get(cfg.UI.Theme)
		if !ok {
			base = highlight.DarkTheme()
		}
		theme, err := loadThemeFile(path, base)
		if err != nil {
			errs = append(errs, err)
		} else {
			themes.Register(theme)
		}
	}

	theme, ok := themes.Get(cfg.UI.Theme)
	if !ok {
		errs = append(errs, fmt.Errorf("unknown theme %q", cfg.UI.Theme))
		theme, _ = themes.Get("dark")
	}
	return themes, theme, errors.Join(errs...)
}

func loadThemeFile(path string, base *highlight.Theme) (*highlight.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	theme, err := highlight.ParseThemeJSON(data, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return theme, nil
}
