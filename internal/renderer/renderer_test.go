package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codepad/internal/document"
	"github.com/dshills/codepad/internal/editor"
	"github.com/dshills/codepad/internal/renderer/backend"
	"github.com/dshills/codepad/internal/renderer/highlight"
)

func newTestRenderer(t *testing.T, width, height int) (*Renderer, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(width, height)
	require.NoError(t, b.Init())
	return New(b, highlight.DarkTheme(), DefaultOptions()), b
}

func newTestPane(text string, rs *highlight.RuleSet) *editor.Pane {
	var opts []document.Option
	if rs != nil {
		opts = append(opts, document.WithRuleSet(rs))
	}
	p := editor.NewPane(document.New(text, opts...), nil)
	p.SetName("notes.txt")
	return p
}

func pos(line, col int) document.Position {
	return document.Position{Line: line, Col: col}
}

func TestEditorRows(t *testing.T) {
	r, _ := newTestRenderer(t, 40, 10)
	assert.Equal(t, 8, r.EditorRows())

	r.Resize(40, 2)
	assert.Equal(t, 1, r.EditorRows())
}

func TestTabBar(t *testing.T) {
	r, b := newTestRenderer(t, 40, 5)
	r.Render(Frame{Tabs: []Tab{
		{Title: "main.go*", Active: true},
		{Title: "notes.txt"},
		{Title: "old.md", Stale: true},
	}})
	assert.Equal(t, " main.go*  notes.txt  old.md!", b.Row(0))

	theme := r.Theme()
	assert.True(t, b.GetCell(1, 0).Style.Background.Equals(theme.Background))
	assert.True(t, b.GetCell(12, 0).Style.Background.Equals(theme.GutterBackground))
}

func TestTabBarKeepsActiveVisible(t *testing.T) {
	r, b := newTestRenderer(t, 12, 4)
	r.Render(Frame{Tabs: []Tab{
		{Title: "aaaa"},
		{Title: "bbbb"},
		{Title: "cccc", Active: true},
	}})
	assert.Equal(t, " bbbb  cccc", b.Row(0))
}

func TestFirstVisibleTab(t *testing.T) {
	widths := []int{6, 6, 6, 6}
	assert.Equal(t, 0, firstVisibleTab(widths, 1, 12))
	assert.Equal(t, 2, firstVisibleTab(widths, 3, 12))
	assert.Equal(t, 3, firstVisibleTab(widths, 3, 4))
	assert.Equal(t, 0, firstVisibleTab(widths, -1, 4))
}

func TestPaneText(t *testing.T) {
	r, b := newTestRenderer(t, 30, 7)
	p := newTestPane("package main\n\nfunc main() {\n}", nil)
	r.Render(Frame{Pane: p})

	assert.Equal(t, " 1 package main", b.Row(1))
	assert.Equal(t, " 2", b.Row(2))
	assert.Equal(t, " 3 func main() {", b.Row(3))
	assert.Equal(t, " 4 }", b.Row(4))
	assert.Equal(t, "", b.Row(5))

	x, y, visible := b.CursorPosition()
	assert.True(t, visible)
	assert.Equal(t, 3, x)
	assert.Equal(t, 1, y)
}

func TestPaneWithoutLineNumbers(t *testing.T) {
	b := backend.NewNullBackend(20, 4)
	require.NoError(t, b.Init())
	opts := DefaultOptions()
	opts.LineNumbers = false
	r := New(b, nil, opts)

	r.Render(Frame{Pane: newTestPane("hello", nil)})
	assert.Equal(t, "hello", b.Row(1))
	assert.Equal(t, "dark", r.Theme().Name)
}

func TestTabsExpand(t *testing.T) {
	r, b := newTestRenderer(t, 20, 4)
	p := newTestPane("\tx\nab\ty", nil)
	p.SetCursor(pos(0, 1))
	r.Render(Frame{Pane: p})

	assert.Equal(t, " 1     x", b.Row(1))
	assert.Equal(t, " 2 ab  y", b.Row(2))
	x, _, _ := b.CursorPosition()
	assert.Equal(t, 7, x)
}

func TestHorizontalScroll(t *testing.T) {
	r, b := newTestRenderer(t, 10, 4)
	p := newTestPane("abcdefghijklmnop", nil)
	p.SetCursor(pos(0, 10))
	r.Render(Frame{Pane: p})

	assert.Equal(t, " 1 efghijk", b.Row(1))
	x, y, visible := b.CursorPosition()
	assert.True(t, visible)
	assert.Equal(t, 9, x)
	assert.Equal(t, 1, y)
}

func TestVerticalScroll(t *testing.T) {
	r, b := newTestRenderer(t, 20, 5)
	p := newTestPane("a\nb\nc\nd\ne\nf", nil)
	p.SetViewHeight(r.EditorRows())
	p.SetCursor(pos(5, 0))
	p.SetViewHeight(r.EditorRows())
	r.Render(Frame{Pane: p})

	assert.Equal(t, " 4 d", b.Row(1))
	assert.Equal(t, " 6 f", b.Row(3))
	_, y, _ := b.CursorPosition()
	assert.Equal(t, 3, y)
}

func TestWideRunes(t *testing.T) {
	r, b := newTestRenderer(t, 20, 4)
	p := newTestPane("日本x", nil)
	p.SetCursor(pos(0, 2))
	r.Render(Frame{Pane: p})

	assert.Equal(t, " 1 日本x", b.Row(1))
	assert.Equal(t, '日', b.GetCell(3, 1).Rune)
	assert.Equal(t, rune(0), b.GetCell(4, 1).Rune)
	x, _, _ := b.CursorPosition()
	assert.Equal(t, 7, x)
}

func TestSyntaxColors(t *testing.T) {
	r, b := newTestRenderer(t, 20, 4)
	rs := highlight.DefaultRegistry().Resolve(".go")
	require.NotNil(t, rs)
	p := newTestPane("x := 1", rs)
	r.Render(Frame{Pane: p})

	theme := r.Theme()
	number := b.GetCell(3+5, 1).Style
	assert.True(t, number.Foreground.Equals(theme.StyleFor(highlight.CategoryNumber, rs).Foreground))
	assert.True(t, number.Background.Equals(theme.LineHighlight))

	plain := b.GetCell(4, 1).Style
	assert.True(t, plain.Foreground.Equals(theme.Foreground))
}

func TestSelectionAndMatches(t *testing.T) {
	r, b := newTestRenderer(t, 20, 5)
	p := newTestPane("abab\nxy", nil)
	theme := r.Theme()

	p.Select(pos(0, 0), pos(0, 2))
	r.Render(Frame{Pane: p})
	assert.True(t, b.GetCell(3, 1).Style.Background.Equals(theme.Selection))
	assert.True(t, b.GetCell(4, 1).Style.Background.Equals(theme.Selection))
	assert.False(t, b.GetCell(5, 1).Style.Background.Equals(theme.Selection))

	p.SetCursor(pos(1, 0))
	require.Equal(t, 2, p.Search("b"))
	r.Render(Frame{Pane: p})
	matchBg := theme.Background.Blend(theme.Selection, matchBlend)
	assert.True(t, b.GetCell(4, 1).Style.Background.Equals(matchBg))
	assert.True(t, b.GetCell(6, 1).Style.Background.Equals(matchBg))
	assert.True(t, b.GetCell(3, 1).Style.Background.Equals(theme.Background))
}

func TestSelectionMarksLineBreak(t *testing.T) {
	r, b := newTestRenderer(t, 20, 5)
	p := newTestPane("ab\ncd", nil)
	p.Select(pos(0, 1), pos(1, 1))
	r.Render(Frame{Pane: p})

	theme := r.Theme()
	assert.True(t, b.GetCell(5, 1).Style.Background.Equals(theme.Selection))
	assert.False(t, b.GetCell(6, 1).Style.Background.Equals(theme.Selection))
}

func TestStatusLine(t *testing.T) {
	r, b := newTestRenderer(t, 80, 5)
	p := newTestPane("hello", nil)
	p.SetCursor(pos(0, 3))
	r.Render(Frame{Pane: p, Status: Status{Encoding: "UTF-8"}})
	assert.Equal(t, " notes.txt"+spaces(31)+" Plain Text | Ln 1, Col 4 | UTF-8 | LF", b.Row(4))

	require.NoError(t, p.InsertText("!"))
	p.SetStale(true)
	p.Search("l")
	r.Render(Frame{Pane: p})
	assert.Contains(t, b.Row(4), " notes.txt* [changed on disk]")
	assert.Contains(t, b.Row(4), "| LF | find 0/2")
}

func TestStatusMessageAndPrompt(t *testing.T) {
	r, b := newTestRenderer(t, 60, 5)
	p := newTestPane("", nil)

	r.Render(Frame{Pane: p, Status: Status{Message: "Saved notes.txt"}})
	assert.Contains(t, b.Row(4), " Saved notes.txt")
	assert.NotContains(t, b.Row(4), " notes.txt |")

	r.Render(Frame{Pane: p, Status: Status{Prompt: "Find: ", Input: "abc"}})
	assert.Equal(t, "Find: abc", b.Row(4))
	x, y, visible := b.CursorPosition()
	assert.True(t, visible)
	assert.Equal(t, 9, x)
	assert.Equal(t, 4, y)
}

func TestNilPane(t *testing.T) {
	r, b := newTestRenderer(t, 20, 4)
	r.Render(Frame{})
	_, _, visible := b.CursorPosition()
	assert.False(t, visible)
	assert.Equal(t, "", b.Row(1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcdef", truncate("abcdef", 6))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
	assert.Equal(t, "日…", truncate("日本語", 4))
	assert.Equal(t, "", truncate("abc", 0))
}

func spaces(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = ' '
	}
	return string(s)
}
