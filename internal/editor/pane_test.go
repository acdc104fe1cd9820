package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codepad/internal/document"
	"github.com/dshills/codepad/internal/input/key"
)

func pos(line, col int) document.Position {
	return document.Position{Line: line, Col: col}
}

func press(t *testing.T, p *Pane, events ...key.Event) {
	t.Helper()
	for _, ev := range events {
		_, err := p.HandleKey(ev)
		require.NoError(t, err, ev.String())
	}
}

func typeText(t *testing.T, p *Pane, s string) {
	t.Helper()
	for _, r := range s {
		press(t, p, key.NewRuneEvent(r, key.ModNone))
	}
}

func special(k key.Key, mods key.Modifier) key.Event {
	return key.NewSpecialEvent(k, mods)
}

func TestNewPane(t *testing.T) {
	a := NewPane(document.New(""), nil)
	b := NewPane(document.New(""), nil)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.IsUntitled())
	assert.Equal(t, -1, a.MatchIndex())

	a.SetName("Untitled-1")
	assert.Equal(t, "Untitled-1", a.Name())
	a.SetPath("/tmp/project/main.go")
	assert.Equal(t, "main.go", a.Name())
	assert.False(t, a.IsUntitled())
}

func TestTypingUsesInputPolicies(t *testing.T) {
	p := NewPane(document.New(""), nil)
	typeText(t, p, "if (x")
	assert.Equal(t, "if (x)", p.Document().Text())
	assert.Equal(t, pos(0, 5), p.Cursor())

	press(t, p, special(key.KeyEnd, key.ModNone), key.NewRuneEvent('{', key.ModNone))
	press(t, p, special(key.KeyEnter, key.ModNone), special(key.KeyTab, key.ModNone))
	typeText(t, p, "y")
	assert.Equal(t, "if (x){\n    y}", p.Document().Text())
	assert.NotContains(t, p.Document().Text(), "\t")
}

func TestBackspaceAndDelete(t *testing.T) {
	p := NewPane(document.New("ab\ncd"), nil)
	p.SetCursor(pos(1, 0))

	press(t, p, special(key.KeyBackspace, key.ModNone))
	assert.Equal(t, "abcd", p.Document().Text())
	assert.Equal(t, pos(0, 2), p.Cursor())

	press(t, p, special(key.KeyDelete, key.ModNone))
	assert.Equal(t, "abd", p.Document().Text())

	p.SetCursor(pos(0, 0))
	press(t, p, special(key.KeyBackspace, key.ModNone))
	assert.Equal(t, "abd", p.Document().Text())

	p.SetCursor(p.Document().End())
	press(t, p, special(key.KeyDelete, key.ModNone))
	assert.Equal(t, "abd", p.Document().Text())
}

func TestShiftExtendsSelection(t *testing.T) {
	p := NewPane(document.New("hello world\nsecond"), nil)
	p.SetCursor(pos(0, 6))

	press(t, p, special(key.KeyRight, key.ModShift), special(key.KeyRight, key.ModShift))
	assert.Equal(t, "wo", p.SelectedText())
	assert.Equal(t, pos(0, 6), p.Anchor())

	typeText(t, p, "W")
	assert.Equal(t, "hello Wrld\nsecond", p.Document().Text())
	assert.False(t, p.HasSelection())

	press(t, p, special(key.KeyDown, key.ModShift))
	assert.Equal(t, "rld\nsecond", p.SelectedText())

	press(t, p, special(key.KeyLeft, key.ModNone))
	assert.False(t, p.HasSelection())
}

func TestVerticalMovementKeepsGoalColumn(t *testing.T) {
	p := NewPane(document.New("long line here\nab\nanother long line"), nil)
	p.SetCursor(pos(0, 10))

	press(t, p, special(key.KeyDown, key.ModNone))
	assert.Equal(t, pos(1, 2), p.Cursor())
	press(t, p, special(key.KeyDown, key.ModNone))
	assert.Equal(t, pos(2, 10), p.Cursor())
	press(t, p, special(key.KeyDown, key.ModNone))
	assert.Equal(t, pos(2, 17), p.Cursor())
	press(t, p, special(key.KeyUp, key.ModNone))
	assert.Equal(t, pos(1, 2), p.Cursor())
	press(t, p, special(key.KeyPageUp, key.ModNone))
	assert.Equal(t, pos(0, 14), p.Cursor())
}

func TestHomeEndAndWords(t *testing.T) {
	p := NewPane(document.New("    foo_bar(baz)\nnext"), nil)
	p.SetCursor(pos(0, 8))

	press(t, p, special(key.KeyHome, key.ModNone))
	assert.Equal(t, pos(0, 4), p.Cursor())
	press(t, p, special(key.KeyHome, key.ModNone))
	assert.Equal(t, pos(0, 0), p.Cursor())
	press(t, p, special(key.KeyEnd, key.ModNone))
	assert.Equal(t, pos(0, 16), p.Cursor())

	p.SetCursor(pos(0, 4))
	press(t, p, special(key.KeyRight, key.ModCtrl))
	assert.Equal(t, pos(0, 12), p.Cursor())
	press(t, p, special(key.KeyLeft, key.ModCtrl))
	assert.Equal(t, pos(0, 4), p.Cursor())

	press(t, p, special(key.KeyEnd, key.ModCtrl))
	assert.Equal(t, pos(1, 4), p.Cursor())
	press(t, p, special(key.KeyHome, key.ModCtrl|key.ModShift))
	assert.Equal(t, "    foo_bar(baz)\nnext", p.SelectedText())
}

func TestUndoRedoSelectAll(t *testing.T) {
	p := NewPane(document.New("abc"), nil)
	p.SetCursor(pos(0, 3))
	typeText(t, p, "d")

	press(t, p, key.NewRuneEvent('z', key.ModCtrl))
	assert.Equal(t, "abc", p.Document().Text())
	assert.Equal(t, pos(0, 3), p.Cursor())
	assert.False(t, p.IsModified())

	// Nothing left to undo is not an error.
	press(t, p, key.NewRuneEvent('z', key.ModCtrl))

	press(t, p, key.NewRuneEvent('y', key.ModCtrl))
	assert.Equal(t, "abcd", p.Document().Text())
	assert.Equal(t, pos(0, 4), p.Cursor())

	press(t, p, key.NewRuneEvent('a', key.ModCtrl))
	assert.Equal(t, "abcd", p.SelectedText())

	consumed, err := p.HandleKey(key.NewRuneEvent('q', key.ModCtrl))
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestInsertTextIsOneUndoStep(t *testing.T) {
	p := NewPane(document.New("x"), nil)
	p.SelectAll()
	require.NoError(t, p.InsertText("one\ntwo"))
	assert.Equal(t, "one\ntwo", p.Document().Text())
	assert.Equal(t, pos(1, 3), p.Cursor())

	require.NoError(t, p.Undo())
	assert.Equal(t, "x", p.Document().Text())
}

func TestCursorFollowsExternalChanges(t *testing.T) {
	d := document.New("a long line\nsecond")
	p := NewPane(d, nil)
	p.Select(pos(0, 2), pos(1, 6))

	d.SetText("short")
	assert.Equal(t, pos(0, 5), p.Cursor())
	assert.Equal(t, pos(0, 2), p.Anchor())
}

func TestGutterWidth(t *testing.T) {
	assert.Equal(t, 3, NewPane(document.New(""), nil).GutterWidth())
	assert.Equal(t, 4, NewPane(document.New("\n\n\n\n\n\n\n\n\n"), nil).GutterWidth())
}

func TestScrolling(t *testing.T) {
	d := document.New("0\n1\n2\n3\n4\n5\n6\n7\n8\n9")
	p := NewPane(d, nil)
	p.SetViewHeight(4)

	press(t, p, special(key.KeyPageDown, key.ModNone))
	assert.Equal(t, 4, p.Cursor().Line)
	assert.Equal(t, 4, p.ScrollTop())

	press(t, p, special(key.KeyEnd, key.ModCtrl))
	assert.Equal(t, 6, p.ScrollTop())

	press(t, p, special(key.KeyHome, key.ModCtrl))
	assert.Equal(t, 0, p.ScrollTop())
}
