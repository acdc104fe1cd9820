// Package keymap maps key presses to editor actions.
//
// Bindings are single chords such as "Ctrl+S" or "Shift+F3"; every action may
// have several. The defaults come from Default and the user's configuration
// can rebind any action:
//
//	km := keymap.Default()
//	if err := km.Apply(map[string]string{"file.save": "F2"}); err != nil {
//	    // report and continue with the bindings that did apply
//	}
//
//	if action, ok := km.Lookup(ev); ok {
//	    // dispatch action
//	}
//
// Keys that are not bound fall through to the editor pane.
package keymap
