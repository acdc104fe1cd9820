package app

import (
	"os"

	"github.com/dshills/codepad/internal/filetree"
	"github.com/dshills/codepad/internal/input/key"
	"github.com/dshills/codepad/internal/renderer"
	"github.com/dshills/codepad/internal/workspace"
)

// openTree lists the working directory. The editor runs without a sidebar
// when it cannot be read.
func (app *Application) openTree() {
	dir, err := os.Getwd()
	if err == nil {
		app.tree, err = filetree.New(dir,
			filetree.WithHidden(app.config.UI.ShowHidden),
			filetree.WithLogger(app.log))
	}
	if err != nil {
		app.log.WithError(err).Warn("file tree disabled")
		return
	}
	app.sidebarVisible = app.config.UI.Sidebar
}

// sidebarFrame describes the sidebar for the renderer, or nil when hidden.
func (app *Application) sidebarFrame() *renderer.Sidebar {
	if !app.sidebarVisible || app.tree == nil {
		return nil
	}
	app.tree.SetViewHeight(app.renderer.EditorRows())
	s := &renderer.Sidebar{
		Tree:    app.tree,
		Width:   app.config.UI.SidebarWidth,
		Focused: app.sidebarFocused,
	}
	if p := app.workspace.Current(); p != nil {
		s.Active = p.Path()
	}
	return s
}

// toggleSidebar shows or hides the file tree. Showing it re-reads the
// directory.
func (app *Application) toggleSidebar() error {
	if app.tree == nil {
		return ErrNoFileTree
	}
	app.sidebarVisible = !app.sidebarVisible
	if !app.sidebarVisible {
		app.sidebarFocused = false
		return nil
	}
	return app.refreshTree()
}

// focusSidebar moves focus between the file tree and the editor. Focusing
// the tree shows it and selects the current file.
func (app *Application) focusSidebar() error {
	if app.tree == nil {
		return ErrNoFileTree
	}
	if app.sidebarFocused {
		app.sidebarFocused = false
		return nil
	}
	if !app.sidebarVisible {
		app.sidebarVisible = true
		if err := app.refreshTree(); err != nil {
			return err
		}
	}
	app.sidebarFocused = true
	if p := app.workspace.Current(); p != nil && p.Path() != "" {
		app.tree.SelectPath(p.Path())
	}
	return nil
}

// openFolder asks for a directory and lists it in the tree.
func (app *Application) openFolder() error {
	if app.tree == nil {
		return ErrNoFileTree
	}
	dir, ok := app.prompt("Open folder: ", app.tree.Root())
	if !ok || dir == "" {
		return nil
	}
	if err := app.tree.SetRoot(dir); err != nil {
		return workspace.NewOperationError("open folder", dir, err)
	}
	app.sidebarVisible = true
	app.setStatus(renderer.MessageInfo, "Opened: %s", app.tree.Root())
	return nil
}

// refreshTree re-reads the tree when it is shown.
func (app *Application) refreshTree() error {
	if app.tree == nil || !app.sidebarVisible {
		return nil
	}
	if err := app.tree.Refresh(); err != nil {
		return workspace.NewOperationError("refresh", app.tree.Root(), err)
	}
	return nil
}

// handleSidebarKey navigates the focused tree. Enter on a file opens it in a
// tab and returns focus to the editor.
func (app *Application) handleSidebarKey(ev key.Event) error {
	t := app.tree
	switch {
	case ev.IsPlain(key.KeyUp):
		t.Move(-1)
	case ev.IsPlain(key.KeyDown):
		t.Move(1)
	case ev.IsPlain(key.KeyPageUp):
		t.Move(-t.ViewHeight())
	case ev.IsPlain(key.KeyPageDown):
		t.Move(t.ViewHeight())
	case ev.IsPlain(key.KeyHome):
		t.Move(-len(t.Visible()))
	case ev.IsPlain(key.KeyEnd):
		t.Move(len(t.Visible()))
	case ev.IsPlain(key.KeyLeft):
		t.CollapseSelected()
	case ev.IsPlain(key.KeyRight):
		return t.ExpandSelected()
	case ev.IsPlain(key.KeyEscape):
		app.sidebarFocused = false
	case ev.IsPlain(key.KeyEnter):
		path, err := t.Activate()
		if err != nil || path == "" {
			return err
		}
		p, err := app.workspace.Open(path)
		if err != nil {
			return err
		}
		app.sidebarFocused = false
		app.setStatus(renderer.MessageInfo, "Opened %s", p.Name())
	}
	return nil
}
