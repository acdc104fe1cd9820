package renderer

import (
	"fmt"
	"strings"

	"github.com/dshills/codepad/internal/editor"
	"github.com/dshills/codepad/internal/renderer/core"
)

// plainTextName labels documents without a rule set.
const plainTextName = "Plain Text"

// statusRight builds the right-hand side of the status line.
func statusRight(p *editor.Pane, encoding string) string {
	doc := p.Document()
	lang := plainTextName
	if rs := doc.RuleSet(); rs != nil {
		lang = rs.Name
	}
	cur := p.Cursor()
	parts := []string{lang, fmt.Sprintf("Ln %d, Col %d", cur.Line+1, cur.Col+1)}
	if encoding != "" {
		parts = append(parts, encoding)
	}
	parts = append(parts, doc.LineEnding().String())
	if p.SearchQuery() != "" {
		parts = append(parts, "find "+p.SearchStatus())
	}
	return strings.Join(parts, " | ")
}

// statusLeft builds the left-hand side: the pane name and its state.
func statusLeft(p *editor.Pane) string {
	name := p.Name()
	if p.IsModified() {
		name += "*"
	}
	if p.IsStale() {
		name += " [changed on disk]"
	}
	return name
}

// drawStatus draws the bottom row. When a prompt is active it returns the
// column the cursor belongs in and true.
func (r *Renderer) drawStatus(p *editor.Pane, st Status) (int, bool) {
	y := r.height - 1
	chrome := r.chromeStyle().WithForeground(r.theme.Foreground)
	r.fillRow(y, 0, chrome)

	if st.Prompt != "" {
		x := r.drawString(0, y, st.Prompt, chrome.Bold(), r.width)
		x = r.drawString(x, y, st.Input, chrome, r.width)
		return min(x, r.width-1), true
	}

	limit := r.width
	if p != nil {
		right := " " + statusRight(p, st.Encoding) + " "
		if w := stringWidth(right); w < r.width {
			limit = r.width - w
			r.drawString(limit, y, right, chrome, r.width)
		}
	}

	left, style := "", chrome
	switch {
	case st.Message != "":
		left = st.Message
		style = messageStyle(chrome, st.Level)
	case p != nil:
		left = statusLeft(p)
	}
	r.drawString(0, y, truncate(" "+left, limit-1), style, limit)
	return 0, false
}

func messageStyle(base core.Style, level MessageLevel) core.Style {
	switch level {
	case MessageError:
		return base.Bold().Reverse()
	case MessageWarning:
		return base.Bold()
	default:
		return base
	}
}
