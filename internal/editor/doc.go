// Package editor implements the editing pane: one document plus the cursor,
// selection, scroll position and find state that go with it.
//
// A Pane routes key events through the input handler first and applies the
// default editing behavior to whatever the handler leaves alone: typing,
// deletion, cursor movement, undo and select-all.
package editor
