package app

import (
	"errors"

	"github.com/dshills/codepad/internal/editor"
	"github.com/dshills/codepad/internal/input/keymap"
	"github.com/dshills/codepad/internal/renderer"
	"github.com/dshills/codepad/internal/workspace"
)

// actionTable maps every keymap action to its handler.
func (app *Application) actionTable() map[string]func() error {
	return map[string]func() error{
		keymap.ActionNew:         app.newTab,
		keymap.ActionOpen:        app.openFile,
		keymap.ActionSave:        app.save,
		keymap.ActionSaveAs:      app.saveAs,
		keymap.ActionReload:      app.reload,
		keymap.ActionClose:       app.closeTab,
		keymap.ActionCloseAll:    app.closeAll,
		keymap.ActionNextTab:     app.nextTab,
		keymap.ActionPrevTab:     app.previousTab,
		keymap.ActionQuit:        app.quit,
		keymap.ActionFind:        app.find,
		keymap.ActionFindNext:    app.findNext,
		keymap.ActionFindPrev:    app.findPrevious,
		keymap.ActionCut:         app.cut,
		keymap.ActionCopy:        app.copy,
		keymap.ActionPaste:       app.paste,
		keymap.ActionToggleTheme: app.toggleTheme,

		keymap.ActionToggleSidebar: app.toggleSidebar,
		keymap.ActionFocusSidebar:  app.focusSidebar,
		keymap.ActionOpenFolder:    app.openFolder,
	}
}

// current returns the active pane and its index.
func (app *Application) current() (*editor.Pane, int, error) {
	p := app.workspace.Current()
	if p == nil {
		return nil, -1, ErrNoActivePane
	}
	return p, app.workspace.CurrentIndex(), nil
}

func (app *Application) newTab() error {
	app.workspace.NewUntitled()
	return nil
}

func (app *Application) openFile() error {
	path, ok := app.prompt("Open: ", "")
	if !ok || path == "" {
		return nil
	}
	p, err := app.workspace.Open(path)
	if err != nil {
		return err
	}
	app.setStatus(renderer.MessageInfo, "Opened %s", p.Name())
	return nil
}

func (app *Application) save() error {
	p, i, err := app.current()
	if err != nil {
		return err
	}
	if err := app.workspace.Save(i, app.prompter()); err != nil {
		return err
	}
	app.setStatus(renderer.MessageInfo, "Saved %s", p.Name())
	return app.refreshTree()
}

func (app *Application) saveAs() error {
	p, i, err := app.current()
	if err != nil {
		return err
	}
	path, ok := app.prompter().SavePath(p.Name())
	if !ok || path == "" {
		return workspace.ErrCancelled
	}
	if err := app.workspace.SaveAs(i, path); err != nil {
		return err
	}
	app.setStatus(renderer.MessageInfo, "Saved %s", p.Name())
	return app.refreshTree()
}

func (app *Application) reload() error {
	p, i, err := app.current()
	if err != nil {
		return err
	}
	if p.IsModified() && !app.confirm("Discard changes to "+p.Name()+" and reload? (y/n)") {
		return workspace.ErrCancelled
	}
	if err := app.workspace.Reload(i); err != nil {
		return err
	}
	app.setStatus(renderer.MessageInfo, "Reloaded %s", p.Name())
	return nil
}

func (app *Application) closeTab() error {
	_, i, err := app.current()
	if err != nil {
		return err
	}
	return app.workspace.Close(i, app.prompter())
}

func (app *Application) closeAll() error {
	return app.workspace.CloseAll(app.prompter())
}

func (app *Application) nextTab() error {
	app.workspace.Next()
	return nil
}

func (app *Application) previousTab() error {
	app.workspace.Previous()
	return nil
}

// quit closes every tab, asking about unsaved changes, then stops the loop.
func (app *Application) quit() error {
	if err := app.workspace.CloseAll(app.prompter()); err != nil {
		if errors.Is(err, workspace.ErrCancelled) {
			app.setStatus(renderer.MessageInfo, "Quit cancelled")
			return nil
		}
		return err
	}
	return ErrQuit
}

func (app *Application) find() error {
	p, _, err := app.current()
	if err != nil {
		return err
	}
	query, ok := app.prompt("Find: ", p.SearchQuery())
	if !ok {
		return nil
	}
	if p.Search(query) == 0 {
		if query != "" {
			app.setStatus(renderer.MessageWarning, "No matches for %q", query)
		}
		return nil
	}
	p.FindNext()
	return nil
}

func (app *Application) findNext() error {
	return app.findStep(true)
}

func (app *Application) findPrevious() error {
	return app.findStep(false)
}

func (app *Application) findStep(forward bool) error {
	p, _, err := app.current()
	if err != nil {
		return err
	}
	if p.SearchQuery() == "" {
		return app.find()
	}
	found := p.FindPrevious
	if forward {
		found = p.FindNext
	}
	if !found() {
		app.setStatus(renderer.MessageWarning, "No matches for %q", p.SearchQuery())
	}
	return nil
}

func (app *Application) cut() error {
	p, _, err := app.current()
	if err != nil {
		return err
	}
	text := p.SelectedText()
	if text == "" {
		return nil
	}
	if err := app.clipboard.WriteAll(text); err != nil {
		return NewComponentError("clipboard", "cut", err)
	}
	_, err = p.DeleteSelection()
	return err
}

func (app *Application) copy() error {
	p, _, err := app.current()
	if err != nil {
		return err
	}
	text := p.SelectedText()
	if text == "" {
		return nil
	}
	if err := app.clipboard.WriteAll(text); err != nil {
		return NewComponentError("clipboard", "copy", err)
	}
	return nil
}

func (app *Application) paste() error {
	p, _, err := app.current()
	if err != nil {
		return err
	}
	text, err := app.clipboard.ReadAll()
	if err != nil {
		return NewComponentError("clipboard", "paste", err)
	}
	if text == "" {
		return nil
	}
	return p.InsertText(text)
}

// toggleTheme switches between the dark and light themes. Any other theme
// switches to dark.
func (app *Application) toggleTheme() error {
	name := "dark"
	if app.theme.Name == "dark" {
		name = "light"
	}
	theme, ok := app.themes.Get(name)
	if !ok {
		return nil
	}
	app.theme = theme
	if app.renderer != nil {
		app.renderer.SetTheme(theme)
	}
	app.setStatus(renderer.MessageInfo, "Theme: %s", theme.Name)
	return nil
}
