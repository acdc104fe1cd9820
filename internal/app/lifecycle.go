package app

import (
	"github.com/dshills/codepad/internal/renderer"
	"github.com/dshills/codepad/internal/renderer/backend"
)

// start initializes the display and begins forwarding file events.
func (app *Application) start() error {
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	app.renderer = renderer.New(app.backend, app.theme, renderer.Options{
		LineNumbers:          app.config.UI.LineNumbers,
		HighlightCurrentLine: app.config.UI.HighlightCurrentLine,
		TabWidth:             app.config.Editor.IndentWidth,
	})

	if app.watcher != nil {
		app.forwarder.Add(1)
		go app.forwardFileEvents()
	}
	app.log.Info("started with %d tab(s)", app.workspace.Count())
	return nil
}

// forwardFileEvents moves watcher events onto the backend's event queue so
// they are handled on the main loop. It returns when the watcher closes.
func (app *Application) forwardFileEvents() {
	defer app.forwarder.Done()
	for ev := range app.watcher.Events() {
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: ev})
	}
}

// stop performs cleanup in reverse initialization order.
func (app *Application) stop() {
	if err := app.workspace.Shutdown(); err != nil {
		app.log.WithError(err).Warn("workspace shutdown")
	}
	app.forwarder.Wait()
	if app.renderer != nil {
		app.backend.Shutdown()
	}
	app.log.Info("stopped")
	app.closeLog()
}

func (app *Application) closeLog() {
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
}
