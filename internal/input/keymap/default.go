package keymap

import "github.com/dshills/codepad/internal/input/key"

// Actions dispatched by the application.
const (
	ActionNew         = "file.new"
	ActionOpen        = "file.open"
	ActionSave        = "file.save"
	ActionSaveAs      = "file.saveAs"
	ActionReload      = "file.reload"
	ActionClose       = "tab.close"
	ActionCloseAll    = "tab.closeAll"
	ActionNextTab     = "tab.next"
	ActionPrevTab     = "tab.previous"
	ActionQuit        = "app.quit"
	ActionFind        = "find.open"
	ActionFindNext    = "find.next"
	ActionFindPrev    = "find.previous"
	ActionCut         = "clipboard.cut"
	ActionCopy        = "clipboard.copy"
	ActionPaste       = "clipboard.paste"
	ActionToggleTheme = "view.toggleTheme"

	ActionToggleSidebar = "view.toggleSidebar"
	ActionFocusSidebar  = "view.focusSidebar"
	ActionOpenFolder    = "file.openFolder"
)

var actions = map[string]string{
	ActionNew:         "New untitled tab",
	ActionOpen:        "Open a file",
	ActionSave:        "Save the current tab",
	ActionSaveAs:      "Save the current tab under a new name",
	ActionReload:      "Reload the current file from disk",
	ActionClose:       "Close the current tab",
	ActionCloseAll:    "Close every tab",
	ActionNextTab:     "Switch to the next tab",
	ActionPrevTab:     "Switch to the previous tab",
	ActionQuit:        "Quit",
	ActionFind:        "Find in the current tab",
	ActionFindNext:    "Find next match",
	ActionFindPrev:    "Find previous match",
	ActionCut:         "Cut the selection",
	ActionCopy:        "Copy the selection",
	ActionPaste:       "Paste",
	ActionToggleTheme: "Switch between the dark and light themes",

	ActionToggleSidebar: "Show or hide the file tree",
	ActionFocusSidebar:  "Move focus between the file tree and the editor",
	ActionOpenFolder:    "List another folder in the file tree",
}

// Actions returns every action name with its description.
func Actions() map[string]string {
	out := make(map[string]string, len(actions))
	for k, v := range actions {
		out[k] = v
	}
	return out
}

var defaults = []struct {
	keys   string
	action string
}{
	{"Ctrl+N", ActionNew},
	{"Ctrl+O", ActionOpen},
	{"Ctrl+S", ActionSave},
	{"Alt+S", ActionSaveAs},
	{"Ctrl+R", ActionReload},
	{"Ctrl+W", ActionClose},
	{"Alt+W", ActionCloseAll},
	{"Ctrl+PageDown", ActionNextTab},
	{"Alt+Right", ActionNextTab},
	{"Ctrl+PageUp", ActionPrevTab},
	{"Alt+Left", ActionPrevTab},
	{"Ctrl+Q", ActionQuit},
	{"Ctrl+F", ActionFind},
	{"F3", ActionFindNext},
	{"Shift+F3", ActionFindPrev},
	{"Ctrl+X", ActionCut},
	{"Ctrl+C", ActionCopy},
	{"Ctrl+V", ActionPaste},
	{"F5", ActionToggleTheme},
	{"Ctrl+B", ActionToggleSidebar},
	{"Ctrl+E", ActionFocusSidebar},
	{"Alt+O", ActionOpenFolder},
}

// Default returns the built-in bindings.
func Default() *Keymap {
	k := New()
	for _, d := range defaults {
		k.bindings[key.MustParse(d.keys)] = d.action
	}
	return k
}
