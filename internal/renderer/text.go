package renderer

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/codepad/internal/renderer/core"
)

// drawString writes s at (x, y) one grapheme cluster at a time, stopping
// before limit. It returns the column after the last cluster drawn.
func (r *Renderer) drawString(x, y int, s string, style core.Style, limit int) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		runes := g.Runes()
		r.backend.SetCell(x, y, core.Cell{Rune: runes[0], Width: w, Style: style})
		for i := 1; i < w; i++ {
			r.backend.SetCell(x+i, y, core.Cell{Style: style})
		}
		x += w
	}
	return x
}

// stringWidth returns the display width of s in cells.
func stringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// truncate shortens s to at most width cells, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if stringWidth(s) <= width {
		return s
	}
	var out []byte
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width-1 {
			break
		}
		out = append(out, cluster...)
		used += w
	}
	return string(out) + "…"
}
