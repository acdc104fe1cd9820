package renderer

import (
	"github.com/dshills/codepad/internal/editor"
	"github.com/dshills/codepad/internal/renderer/backend"
	"github.com/dshills/codepad/internal/renderer/core"
	"github.com/dshills/codepad/internal/renderer/highlight"
)

// Options configures the renderer.
type Options struct {
	LineNumbers          bool // Show the line number gutter
	HighlightCurrentLine bool // Tint the cursor line
	TabWidth             int  // Columns a tab character expands to
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		LineNumbers:          true,
		HighlightCurrentLine: true,
		TabWidth:             4,
	}
}

// Tab is one entry of the tab bar.
type Tab struct {
	Title  string
	Active bool
	// Stale marks a tab whose file changed on disk.
	Stale bool
}

// MessageLevel selects the status message color.
type MessageLevel int

const (
	MessageInfo MessageLevel = iota
	MessageWarning
	MessageError
)

// Status is the content of the status line.
type Status struct {
	// Message replaces the file name on the left when set.
	Message string
	Level   MessageLevel

	// Prompt turns the status line into an input line showing Prompt
	// followed by Input, with the cursor after Input.
	Prompt string
	Input  string

	// Encoding is shown on the right, e.g. "UTF-8".
	Encoding string
}

// Frame is everything drawn in one Render call.
type Frame struct {
	Tabs   []Tab
	Pane   *editor.Pane
	Status Status
	// Sidebar is drawn on the left when set.
	Sidebar *Sidebar
}

// Renderer draws frames onto a backend.
type Renderer struct {
	backend backend.Backend
	theme   *highlight.Theme
	opts    Options
	width   int
	height  int

	// left is the first column of the tab bar and pane in the current frame.
	left int
}

// New creates a renderer. A nil theme uses highlight.DarkTheme.
func New(b backend.Backend, theme *highlight.Theme, opts Options) *Renderer {
	if theme == nil {
		theme = highlight.DarkTheme()
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	r := &Renderer{backend: b, theme: theme, opts: opts}
	r.width, r.height = b.Size()
	return r
}

// Theme returns the active theme.
func (r *Renderer) Theme() *highlight.Theme {
	return r.theme
}

// SetTheme switches the theme for following frames.
func (r *Renderer) SetTheme(theme *highlight.Theme) {
	if theme != nil {
		r.theme = theme
	}
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Resize records new screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// EditorRows returns the number of text rows between the tab bar and the
// status line.
func (r *Renderer) EditorRows() int {
	return max(r.height-2, 1)
}

// Render draws f and flushes it to the backend.
func (r *Renderer) Render(f Frame) {
	if r.width <= 0 || r.height <= 0 {
		return
	}
	r.backend.HideCursor()

	r.left = r.drawSidebar(f.Sidebar)
	r.drawTabBar(f.Tabs)
	cx, cy, ok := r.drawPane(f.Pane)
	if f.Sidebar != nil && f.Sidebar.Focused {
		ok = false
	}
	if px, prompting := r.drawStatus(f.Pane, f.Status); prompting {
		cx, cy, ok = px, r.height-1, true
	}
	if ok {
		r.backend.ShowCursor(cx, cy)
	}
	r.backend.Show()
}

// baseStyle is plain text on the editor background.
func (r *Renderer) baseStyle() core.Style {
	return core.Style{Foreground: r.theme.Foreground, Background: r.theme.Background}
}

// chromeStyle is used for the tab bar and status line.
func (r *Renderer) chromeStyle() core.Style {
	return core.Style{Foreground: r.theme.GutterForeground, Background: r.theme.GutterBackground}
}

func (r *Renderer) fillRow(y, x int, style core.Style) {
	if x >= r.width {
		return
	}
	r.backend.Fill(core.ScreenRect{Top: y, Left: x, Bottom: y + 1, Right: r.width}, core.NewStyledCell(' ', style))
}
