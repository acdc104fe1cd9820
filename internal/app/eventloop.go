package app

import (
	"errors"
	"fmt"

	"github.com/dshills/codepad/internal/input/key"
	"github.com/dshills/codepad/internal/renderer"
	"github.com/dshills/codepad/internal/renderer/backend"
	"github.com/dshills/codepad/internal/workspace"
)

// eventLoop draws a frame, waits for the next event and handles it, until
// an action returns ErrQuit.
func (app *Application) eventLoop() error {
	for {
		app.render()
		if err := app.HandleEvent(app.backend.PollEvent()); errors.Is(err, ErrQuit) {
			return nil
		}
	}
}

// HandleEvent processes one backend event. Failures are shown on the status
// line; only ErrQuit is returned.
func (app *Application) HandleEvent(ev backend.Event) error {
	var err error
	switch ev.Type {
	case backend.EventKey:
		err = app.handleKey(ev.Key)
	case backend.EventResize:
		app.handleResize(ev)
	case backend.EventInterrupt:
		err = app.handleInterrupt(ev)
	}
	if err == nil || errors.Is(err, ErrQuit) {
		return err
	}
	app.report(err)
	return nil
}

// handleKey runs the action bound to ev, or gives ev to the focused file
// tree or the current pane.
func (app *Application) handleKey(ev key.Event) error {
	app.status.Message = ""

	if action, ok := app.keymap.Lookup(ev); ok {
		app.log.Debug("key %s -> %s", ev, action)
		if fn, ok := app.actions[action]; ok {
			return fn()
		}
		return fmt.Errorf("no handler for action %q", action)
	}

	if app.sidebarFocused && app.sidebarVisible {
		return app.handleSidebarKey(ev)
	}

	p := app.workspace.Current()
	if p == nil {
		return nil
	}
	_, err := p.HandleKey(ev)
	return err
}

func (app *Application) handleResize(ev backend.Event) {
	if app.renderer != nil {
		app.renderer.Resize(ev.Width, ev.Height)
	}
}

// quitRequest is posted by RequestQuit.
type quitRequest struct{}

// RequestQuit asks the event loop to stop without prompting about unsaved
// changes. It is safe to call from any goroutine.
func (app *Application) RequestQuit() {
	app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
}

// handleInterrupt receives file events forwarded from the watcher and quit
// requests.
func (app *Application) handleInterrupt(ev backend.Event) error {
	switch data := ev.Data.(type) {
	case quitRequest:
		app.log.Info("quit requested")
		return ErrQuit
	case workspace.FileEvent:
		p := app.workspace.HandleFileEvent(data)
		if p == nil {
			return nil
		}
		if data.Op.Has(workspace.OpRemove) || data.Op.Has(workspace.OpRename) {
			app.setStatus(renderer.MessageWarning, "%s was removed from disk", p.Name())
			return nil
		}
		app.setStatus(renderer.MessageWarning, "%s changed on disk; reload to see it", p.Name())
	}
	return nil
}

// render draws the current state.
func (app *Application) render() {
	if app.renderer == nil {
		return
	}
	frame := renderer.Frame{Status: app.status, Sidebar: app.sidebarFrame()}

	cur := app.workspace.CurrentIndex()
	for i := 0; i < app.workspace.Count(); i++ {
		frame.Tabs = append(frame.Tabs, renderer.Tab{
			Title:  app.workspace.Title(i),
			Active: i == cur,
			Stale:  app.workspace.Pane(i).IsStale(),
		})
	}
	if p := app.workspace.Current(); p != nil {
		p.SetViewHeight(app.renderer.EditorRows())
		frame.Pane = p
		frame.Status.Encoding = app.workspace.Encoding(cur).String()
	}
	app.renderer.Render(frame)
}

// setStatus shows a message on the status line until the next key.
func (app *Application) setStatus(level renderer.MessageLevel, format string, args ...any) {
	app.status.Message = fmt.Sprintf(format, args...)
	app.status.Level = level
}

// warn logs a problem and shows it on the status line.
func (app *Application) warn(format string, args ...any) {
	app.log.Warn(format, args...)
	app.setStatus(renderer.MessageWarning, format, args...)
}

// report shows a failed action. Cancelled prompts are not failures.
func (app *Application) report(err error) {
	if errors.Is(err, workspace.ErrCancelled) {
		app.setStatus(renderer.MessageInfo, "Cancelled")
		return
	}
	var opErr *workspace.OperationError
	if errors.As(err, &opErr) {
		app.warn("%v", err)
		return
	}
	app.log.WithError(err).Error("action failed")
	app.setStatus(renderer.MessageError, "%v", err)
}
