// Package app wires the editor together: configuration, logging, the
// language and theme registries, the keymap, the tab workspace, the file
// tree, the terminal backend and the renderer. It owns the main event loop.
package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/codepad/internal/config"
	"github.com/dshills/codepad/internal/filetree"
	"github.com/dshills/codepad/internal/input/keymap"
	"github.com/dshills/codepad/internal/logging"
	"github.com/dshills/codepad/internal/renderer"
	"github.com/dshills/codepad/internal/renderer/backend"
	"github.com/dshills/codepad/internal/renderer/highlight"
	"github.com/dshills/codepad/internal/workspace"
)

// Application is the central coordinator for all codepad components.
type Application struct {
	// Startup options
	configPath string
	files      []string
	logLevel   string
	logFile    string

	// Core infrastructure
	config    *config.Config
	log       *logging.Logger
	logCloser io.Closer

	// Editor components
	themes    *highlight.ThemeRegistry
	theme     *highlight.Theme
	keymap    *keymap.Keymap
	workspace *workspace.Manager
	watcher   *workspace.Watcher
	clipboard Clipboard
	actions   map[string]func() error

	// Display
	backend  backend.Backend
	renderer *renderer.Renderer
	status   renderer.Status

	// File tree sidebar; tree is nil when the working directory is unreadable.
	tree           *filetree.Tree
	sidebarVisible bool
	sidebarFocused bool

	// State
	running   atomic.Bool
	forwarder sync.WaitGroup
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses
	// config.DefaultPath.
	ConfigPath string

	// Files are files to open on startup.
	Files []string

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogFile overrides the configured log file.
	LogFile string

	// Backend is the display. Nil uses the terminal.
	Backend backend.Backend

	// Clipboard is used for cut, copy and paste. Nil uses the system
	// clipboard.
	Clipboard Clipboard

	// Logger replaces the logger built from the configuration.
	Logger *logging.Logger
}

// New creates an Application: it loads the configuration and opens the
// initial files, but does not touch the terminal until Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		configPath: opts.ConfigPath,
		files:      opts.Files,
		logLevel:   opts.LogLevel,
		logFile:    opts.LogFile,
		log:        opts.Logger,
		backend:    opts.Backend,
		clipboard:  opts.Clipboard,
	}
	if app.configPath == "" {
		app.configPath = config.DefaultPath()
	}
	if app.clipboard == nil {
		app.clipboard = NewSystemClipboard()
	}
	app.actions = app.actionTable()

	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}
	if app.backend == nil {
		t, err := backend.NewTerminal()
		if err != nil {
			app.stop()
			return nil, &InitError{Component: "terminal", Err: err}
		}
		app.backend = t
	}
	return app, nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Workspace returns the tab manager.
func (app *Application) Workspace() *workspace.Manager {
	return app.workspace
}

// Theme returns the active theme.
func (app *Application) Theme() *highlight.Theme {
	return app.theme
}

// Keymap returns the active key bindings.
func (app *Application) Keymap() *keymap.Keymap {
	return app.keymap
}

// FileTree returns the sidebar tree, or nil when there is none.
func (app *Application) FileTree() *filetree.Tree {
	return app.tree
}

// Status returns the current status line content.
func (app *Application) Status() renderer.Status {
	return app.status
}

// Run starts the application main loop. It blocks until the user quits.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.start(); err != nil {
		return err
	}
	defer app.stop()

	return app.eventLoop()
}
