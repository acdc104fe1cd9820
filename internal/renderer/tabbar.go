package renderer

import "github.com/dshills/codepad/internal/renderer/core"

// maxTabWidth caps a single tab label so one long name cannot fill the bar.
const maxTabWidth = 32

// tabLabel renders a tab title with its padding and stale marker.
func tabLabel(t Tab) string {
	title := truncate(t.Title, maxTabWidth-4)
	if t.Stale {
		return " " + title + "! "
	}
	return " " + title + " "
}

// firstVisibleTab returns the index of the leftmost tab to draw so the
// active tab fits within width.
func firstVisibleTab(widths []int, active, width int) int {
	if active < 0 {
		return 0
	}
	first := 0
	used := 0
	for i := 0; i <= active; i++ {
		used += widths[i]
	}
	for used > width && first < active {
		used -= widths[first]
		first++
	}
	return first
}

func (r *Renderer) drawTabBar(tabs []Tab) {
	chrome := r.chromeStyle()
	r.fillRow(0, r.left, chrome)

	labels := make([]string, len(tabs))
	widths := make([]int, len(tabs))
	active := -1
	for i, t := range tabs {
		labels[i] = tabLabel(t)
		widths[i] = stringWidth(labels[i])
		if t.Active {
			active = i
		}
	}

	activeStyle := core.Style{Foreground: r.theme.Foreground, Background: r.theme.Background}.Bold()
	x := r.left
	for i := firstVisibleTab(widths, active, r.width-r.left); i < len(tabs) && x < r.width; i++ {
		style := chrome
		if tabs[i].Active {
			style = activeStyle
		}
		x = r.drawString(x, 0, labels[i], style, r.width)
	}
}
