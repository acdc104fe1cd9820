// Package input applies the editing policies that run before a key reaches
// the default insertion behavior of an editor pane:
//
//   - Tab inserts spaces, or indents every line a selection covers
//   - Shift+Tab removes up to one indent from every selected line
//   - Enter carries the current line's indentation onto the new line
//   - opening brackets and quotes insert their closer or wrap the selection
//   - Backspace between an empty pair removes both characters
//
// The Handler keeps no state between events. Each edit it makes is a single
// undo step. Keys it does not consume are left to the caller.
package input
