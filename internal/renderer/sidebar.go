package renderer

import (
	"path/filepath"
	"strings"

	"github.com/dshills/codepad/internal/filetree"
	"github.com/dshills/codepad/internal/renderer/core"
)

// minSidebarWidth is the narrowest sidebar worth drawing.
const minSidebarWidth = 8

// Sidebar is the file tree shown left of the editor.
type Sidebar struct {
	Tree  *filetree.Tree
	Width int
	// Focused shows the selection and hides the text cursor.
	Focused bool
	// Active is the path of the file in the active tab.
	Active string
}

// sidebarWidth returns the columns the sidebar takes, not counting the
// separator. The sidebar never takes more than half the screen.
func (r *Renderer) sidebarWidth(s *Sidebar) int {
	if s == nil || s.Tree == nil {
		return 0
	}
	w := min(s.Width, r.width/2)
	if w < minSidebarWidth {
		return 0
	}
	return w
}

// nodeLabel indents n by depth and marks directories as open or closed.
func nodeLabel(n *filetree.Node) string {
	marker := "  "
	if n.IsDir {
		marker = "▸ "
		if n.Expanded {
			marker = "▾ "
		}
	}
	return " " + strings.Repeat("  ", n.Depth) + marker + n.Name
}

// drawSidebar draws s and returns the first column left for the editor.
func (r *Renderer) drawSidebar(s *Sidebar) int {
	width := r.sidebarWidth(s)
	if width == 0 {
		return 0
	}
	rows := r.EditorRows()
	chrome := r.chromeStyle()
	r.backend.Fill(core.RectFromSize(0, 0, rows+1, width), core.NewStyledCell(' ', chrome))

	t := s.Tree
	header := truncate(" "+filepath.Base(t.Root()), width)
	r.drawString(0, 0, header, chrome.WithForeground(r.theme.Foreground).Bold(), width)

	vis := t.Visible()
	sel := t.Selected()
	for i := 0; i < rows; i++ {
		idx := t.ScrollTop() + i
		if idx >= len(vis) {
			break
		}
		n := vis[idx]
		style := chrome
		if n.IsDir {
			style = style.Bold()
		}
		if !n.IsDir && n.Path == s.Active {
			style = style.WithForeground(r.theme.Foreground).Bold()
		}
		if s.Focused && n == sel {
			style = style.WithBackground(r.theme.Selection)
			r.backend.Fill(core.RectFromSize(1+i, 0, 1, width), core.NewStyledCell(' ', style))
		}
		r.drawString(0, 1+i, truncate(nodeLabel(n), width), style, width)
	}

	sep := core.NewStyledCell('│', chrome)
	for y := 0; y <= rows; y++ {
		r.backend.SetCell(width, y, sep)
	}
	return width + 1
}
