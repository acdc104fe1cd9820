package renderer

import (
	"fmt"

	"github.com/dshills/codepad/internal/document"
	"github.com/dshills/codepad/internal/editor"
	"github.com/dshills/codepad/internal/renderer/core"
	"github.com/dshills/codepad/internal/renderer/highlight"
)

// matchBlend is how far a search match background moves from the editor
// background toward the selection color.
const matchBlend = 0.5

// visualColumn returns the screen column of rune index col in line, with tabs
// expanded to tabWidth and wide runes counted as two.
func visualColumn(line []rune, col, tabWidth int) int {
	vc := 0
	for i := 0; i < col && i < len(line); i++ {
		vc += cellWidth(line[i], vc, tabWidth)
	}
	return vc
}

func cellWidth(r rune, vc, tabWidth int) int {
	if r == '\t' {
		return tabWidth - vc%tabWidth
	}
	return core.RuneWidth(r)
}

// categories expands spans into one category per rune.
func categories(spans []highlight.Span, n int) []highlight.Category {
	if len(spans) == 0 {
		return nil
	}
	cats := make([]highlight.Category, n)
	for _, s := range spans {
		for i := s.Start; i < s.Start+s.Length && i < n; i++ {
			if i >= 0 {
				cats[i] = s.Category
			}
		}
	}
	return cats
}

// lineView holds what drawLine needs for one document line.
type lineView struct {
	y       int
	line    int
	current bool
	origin  int // Screen column of the gutter
	left    int
	gutter  int
	width   int
}

// drawPane draws the editor area and returns the screen position of the
// cursor when it is visible.
func (r *Renderer) drawPane(p *editor.Pane) (x, y int, ok bool) {
	rows := r.EditorRows()
	base := r.baseStyle()
	if p == nil {
		for i := 0; i < rows; i++ {
			r.fillRow(1+i, r.left, base)
		}
		return 0, 0, false
	}

	doc := p.Document()
	gutter := 0
	if r.opts.LineNumbers {
		gutter = p.GutterWidth()
	}
	textWidth := max(r.width-r.left-gutter, 1)

	cursor := p.Cursor()
	cursorCol := visualColumn(doc.LineRunes(cursor.Line), cursor.Col, r.opts.TabWidth)
	left := 0
	if cursorCol >= textWidth {
		left = cursorCol - textWidth + 1
	}

	top := p.ScrollTop()
	for i := 0; i < rows; i++ {
		ln := top + i
		lv := lineView{
			y:       1 + i,
			line:    ln,
			current: ln == cursor.Line,
			origin:  r.left,
			left:    left,
			gutter:  gutter,
			width:   textWidth,
		}
		if ln >= doc.LineCount() {
			r.drawGutter(lv, false)
			r.fillRow(lv.y, r.left+gutter, base)
			continue
		}
		r.drawGutter(lv, true)
		r.drawLine(p, lv)
	}

	if cursor.Line >= top && cursor.Line < top+rows {
		return r.left + gutter + cursorCol - left, 1 + cursor.Line - top, true
	}
	return 0, 0, false
}

func (r *Renderer) drawGutter(lv lineView, number bool) {
	if lv.gutter == 0 {
		return
	}
	style := r.chromeStyle()
	if lv.current {
		style = style.WithForeground(r.theme.Foreground)
	}
	label := ""
	if number {
		label = fmt.Sprintf("%*d ", lv.gutter-1, lv.line+1)
	}
	r.backend.Fill(core.RectFromSize(lv.y, lv.origin, 1, lv.gutter), core.NewStyledCell(' ', style))
	r.drawString(lv.origin, lv.y, label, style, lv.origin+lv.gutter)
}

// inRange reports whether (line, col) lies in [start, end).
func inRange(line, col int, start, end document.Position) bool {
	p := document.Position{Line: line, Col: col}
	return !p.Before(start) && p.Before(end)
}

func (r *Renderer) drawLine(p *editor.Pane, lv lineView) {
	doc := p.Document()
	rs := doc.RuleSet()
	runes := doc.LineRunes(lv.line)
	cats := categories(doc.Spans(lv.line), len(runes))

	rowStyle := r.baseStyle()
	if lv.current && r.opts.HighlightCurrentLine {
		rowStyle = rowStyle.WithBackground(r.theme.LineHighlight)
	}
	matchBg := r.theme.Background.Blend(r.theme.Selection, matchBlend)
	selStart, selEnd, hasSel := p.Selection()

	var matches []editor.Match
	if p.SearchQuery() != "" {
		for _, m := range p.Matches() {
			if m.Start.Line == lv.line {
				matches = append(matches, m)
			}
		}
	}

	styleAt := func(col int) core.Style {
		style := rowStyle
		if cats != nil && cats[col] != highlight.CategoryNone {
			style = style.Merge(r.theme.StyleFor(cats[col], rs))
		}
		for _, m := range matches {
			if col >= m.Start.Col && col < m.End.Col {
				style = style.WithBackground(matchBg)
				break
			}
		}
		if hasSel && inRange(lv.line, col, selStart, selEnd) {
			style = style.WithBackground(r.theme.Selection)
		}
		return style
	}

	textX := lv.origin + lv.gutter
	right := textX + lv.width
	vc := 0
	for col, ch := range runes {
		w := cellWidth(ch, vc, r.opts.TabWidth)
		start := vc
		vc += w
		if vc <= lv.left {
			continue
		}
		x := textX + start - lv.left
		if x >= right {
			break
		}
		style := styleAt(col)
		switch {
		case ch == '\t' || start < lv.left || x+w > right:
			// Tabs and wide runes cut by either edge become blanks.
			for i := max(x, textX); i < min(x+w, right); i++ {
				r.backend.SetCell(i, lv.y, core.NewStyledCell(' ', style))
			}
		default:
			r.backend.SetCell(x, lv.y, core.Cell{Rune: ch, Width: w, Style: style})
			for i := 1; i < w; i++ {
				r.backend.SetCell(x+i, lv.y, core.Cell{Style: style})
			}
		}
	}

	x := max(textX+vc-lv.left, textX)
	// A selection running past the end of the line marks the line break.
	if hasSel && x < right && inRange(lv.line, len(runes), selStart, selEnd) {
		r.backend.SetCell(x, lv.y, core.NewStyledCell(' ', rowStyle.WithBackground(r.theme.Selection)))
		x++
	}
	r.fillRow(lv.y, x, rowStyle)
}
