// Package renderer draws the editor screen onto a backend.
//
// The screen has three areas:
//
//	┌─────────────────────────────────────────┐
//	│ main.go*  notes.txt  Untitled-1         │  tab bar
//	├────┬────────────────────────────────────┤
//	│  1 │ package main                       │
//	│  2 │                                    │  editor pane
//	│  3 │ func main() {                      │
//	├────┴────────────────────────────────────┤
//	│ main.go*           Go  Ln 3, Col 14 ... │  status line
//	└─────────────────────────────────────────┘
//
// An optional Sidebar lists the project files to the left of the tab bar and
// pane; the status line keeps the full width.
//
// A Renderer is stateless between frames apart from its theme and options:
// each Render call draws a Frame describing the tabs, the active pane and
// the status line. Colors come from a highlight.Theme; per-character token
// categories come from the document's cached highlight spans.
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b, highlight.DarkTheme(), renderer.DefaultOptions())
//	pane.SetViewHeight(r.EditorRows())
//	r.Render(renderer.Frame{Tabs: tabs, Pane: pane})
package renderer
