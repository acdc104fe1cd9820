package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codepad/internal/document"
	"github.com/dshills/codepad/internal/renderer/highlight"
)

type fakePrompter struct {
	choices  []Choice
	path     string
	asked    []string
	suggests []string
}

func (f *fakePrompter) ConfirmClose(name string) Choice {
	f.asked = append(f.asked, name)
	if len(f.choices) == 0 {
		return ChoiceCancel
	}
	c := f.choices[0]
	f.choices = f.choices[1:]
	return c
}

func (f *fakePrompter) SavePath(suggested string) (string, bool) {
	f.suggests = append(f.suggests, suggested)
	return f.path, f.path != ""
}

func newManager() *Manager {
	return New(highlight.DefaultRegistry())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func edit(t *testing.T, m *Manager, i int, text string) {
	t.Helper()
	require.NoError(t, m.Pane(i).InsertText(text))
}

func TestNewUntitledNumbering(t *testing.T) {
	m := newManager()
	assert.Nil(t, m.Current())
	assert.Equal(t, -1, m.CurrentIndex())

	m.NewUntitled()
	m.NewUntitled()
	m.NewUntitled()
	assert.Equal(t, []string{"Untitled-1", "Untitled-2", "Untitled-3"}, []string{m.Title(0), m.Title(1), m.Title(2)})
	assert.Equal(t, 2, m.CurrentIndex())

	require.NoError(t, m.Close(1, nil))
	p := m.NewUntitled()
	assert.Equal(t, "Untitled-2", p.Name())
	assert.Same(t, p, m.Current())
}

func TestOpenResolvesRulesAndDedupes(t *testing.T) {
	path := writeFile(t, "main.go", "package main\n")
	m := newManager()

	p, err := m.Open(path)
	require.NoError(t, err)
	require.NotNil(t, p.Document().RuleSet())
	assert.Equal(t, "Go", p.Document().RuleSet().Name)
	assert.Equal(t, "main.go", m.Title(0))
	assert.False(t, p.IsModified())

	m.NewUntitled()
	again, err := m.Open(path)
	require.NoError(t, err)
	assert.Same(t, p, again)
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, 0, m.CurrentIndex())
	assert.Equal(t, 0, m.IndexOf(path))
}

func TestOpenFailures(t *testing.T) {
	m := newManager()

	_, err := m.Open(filepath.Join(t.TempDir(), "missing.txt"))
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "open", opErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = m.Open(t.TempDir())
	assert.ErrorIs(t, err, ErrIsDirectory)

	_, err = m.Open(writeFile(t, "blob.bin", "\x00\x01\x02"))
	assert.ErrorIs(t, err, ErrBinaryFile)

	assert.Equal(t, 0, m.Count())
}

func TestUnknownExtensionIsPlainText(t *testing.T) {
	m := newManager()
	p, err := m.Open(writeFile(t, "notes.xyz", "hello"))
	require.NoError(t, err)
	assert.Nil(t, p.Document().RuleSet())
	assert.Nil(t, p.Document().Spans(0))
}

func TestSavePreservesLineEndingsAndEncoding(t *testing.T) {
	path := writeFile(t, "win.txt", "\xEF\xBB\xBFone\r\ntwo\r\n")
	m := newManager()
	_, err := m.Open(path)
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8BOM, m.Encoding(0))

	edit(t, m, 0, "zero ")
	assert.Equal(t, "win.txt*", m.Title(0))

	require.NoError(t, m.Save(0, nil))
	assert.Equal(t, "win.txt", m.Title(0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFzero one\r\ntwo\r\n", string(data))
}

func TestSaveLatin1FallsBackToUTF8(t *testing.T) {
	path := writeFile(t, "legacy.txt", "caf\xe9")
	m := newManager()
	_, err := m.Open(path)
	require.NoError(t, err)
	require.Equal(t, EncodingLatin1, m.Encoding(0))

	edit(t, m, 0, "☃ ")
	require.NoError(t, m.Save(0, nil))
	assert.Equal(t, EncodingUTF8, m.Encoding(0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "☃ café", string(data))
}

func TestSaveUntitled(t *testing.T) {
	m := newManager()
	m.NewUntitled()
	edit(t, m, 0, "print('hi')")

	err := m.Save(0, nil)
	assert.ErrorIs(t, err, ErrNoPath)

	err = m.Save(0, &fakePrompter{})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, m.Pane(0).IsModified())

	target := filepath.Join(t.TempDir(), "hello.py")
	prompter := &fakePrompter{path: target}
	require.NoError(t, m.Save(0, prompter))
	assert.Equal(t, []string{"Untitled-1"}, prompter.suggests)

	p := m.Pane(0)
	assert.Equal(t, target, p.Path())
	assert.Equal(t, "hello.py", m.Title(0))
	require.NotNil(t, p.Document().RuleSet())
	assert.Equal(t, "Python", p.Document().RuleSet().Name)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", string(data))
}

func TestSaveAsSwitchesHighlighting(t *testing.T) {
	m := newManager()
	p, err := m.Open(writeFile(t, "script.txt", "def f(): pass"))
	require.NoError(t, err)
	assert.Nil(t, p.Document().RuleSet())

	var events []string
	m.OnDocumentChanged(func(path string, modified bool) {
		events = append(events, filepath.Base(path))
	})

	require.NoError(t, m.SaveAs(0, filepath.Join(t.TempDir(), "script.py")))
	require.NotNil(t, p.Document().RuleSet())
	assert.Equal(t, "Python", p.Document().RuleSet().Name)
	assert.Equal(t, []string{"script.py"}, events)
}

func TestSaveAsRefusesPathOpenElsewhere(t *testing.T) {
	m := newManager()
	first := writeFile(t, "first.py", "x = 1")
	_, err := m.Open(first)
	require.NoError(t, err)
	second, err := m.Open(writeFile(t, "second.txt", "other"))
	require.NoError(t, err)

	err = m.SaveAs(1, first)
	assert.ErrorIs(t, err, ErrAlreadyOpen)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "save", opErr.Op)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "x = 1", string(data))
	assert.Equal(t, "second.txt", filepath.Base(second.Path()))
	assert.Equal(t, 0, m.IndexOf(first))

	// Saving a pane onto its own path is an ordinary save.
	require.NoError(t, m.SaveAs(0, first))
}

func TestSaveFailureKeepsState(t *testing.T) {
	m := newManager()
	m.NewUntitled()
	edit(t, m, 0, "data")

	err := m.SaveAs(0, filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt"))
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "save", opErr.Op)

	p := m.Pane(0)
	assert.True(t, p.IsUntitled())
	assert.True(t, p.IsModified())
	assert.Equal(t, "data", p.Document().Text())
}

func TestCloseModified(t *testing.T) {
	m := newManager()
	m.NewUntitled()
	edit(t, m, 0, "unsaved")

	assert.ErrorIs(t, m.Close(0, nil), ErrUnsavedChanges)

	cancel := &fakePrompter{choices: []Choice{ChoiceCancel}}
	assert.ErrorIs(t, m.Close(0, cancel), ErrCancelled)
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, []string{"Untitled-1"}, cancel.asked)

	require.NoError(t, m.Close(0, &fakePrompter{choices: []Choice{ChoiceDiscard}}))
	assert.Equal(t, 0, m.Count())
	assert.Equal(t, -1, m.CurrentIndex())
}

func TestCloseSaveChoiceWritesFile(t *testing.T) {
	path := writeFile(t, "a.txt", "a")
	m := newManager()
	_, err := m.Open(path)
	require.NoError(t, err)
	edit(t, m, 0, "b")

	require.NoError(t, m.Close(0, &fakePrompter{choices: []Choice{ChoiceSave}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ba", string(data))
}

func TestCloseAdjustsCurrent(t *testing.T) {
	m := newManager()
	for i := 0; i < 4; i++ {
		m.NewUntitled()
	}
	require.NoError(t, m.SetCurrent(2))

	require.NoError(t, m.Close(0, nil))
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, "Untitled-3", m.Current().Name())

	require.NoError(t, m.Close(1, nil))
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, "Untitled-4", m.Current().Name())

	require.NoError(t, m.Close(1, nil))
	assert.Equal(t, 0, m.CurrentIndex())
	assert.Equal(t, "Untitled-2", m.Current().Name())
}

func TestCloseAll(t *testing.T) {
	m := newManager()
	for i := 0; i < 3; i++ {
		m.NewUntitled()
	}
	edit(t, m, 0, "first")
	edit(t, m, 2, "third")

	// Cancel on the first tab asked about stops everything.
	p := &fakePrompter{choices: []Choice{ChoiceDiscard, ChoiceCancel}}
	assert.ErrorIs(t, m.CloseAll(p), ErrCancelled)
	assert.Equal(t, []string{"Untitled-3", "Untitled-1"}, p.asked)
	assert.Equal(t, 3, m.Count())

	// A failed save also aborts.
	p = &fakePrompter{choices: []Choice{ChoiceSave}}
	assert.ErrorIs(t, m.CloseAll(p), ErrCancelled)
	assert.Equal(t, 3, m.Count())

	p = &fakePrompter{choices: []Choice{ChoiceDiscard, ChoiceDiscard}}
	require.NoError(t, m.CloseAll(p))
	assert.Equal(t, 0, m.Count())
	assert.Nil(t, m.CurrentDocument())
}

func TestNavigationResetsSearch(t *testing.T) {
	m := newManager()
	a := m.NewUntitled()
	m.NewUntitled()

	require.NoError(t, m.SetCurrent(0))
	edit(t, m, 0, "foo foo")
	assert.Equal(t, 2, a.Search("foo"))

	m.Next()
	assert.Equal(t, 1, m.CurrentIndex())
	m.Next()
	assert.Equal(t, 0, m.CurrentIndex())
	assert.Equal(t, "", a.SearchQuery())

	m.Previous()
	assert.Equal(t, 1, m.CurrentIndex())

	assert.ErrorIs(t, m.SetCurrent(7), ErrPaneNotFound)
}

func TestDocumentChangedNotifications(t *testing.T) {
	m := newManager()
	type change struct {
		path     string
		modified bool
	}
	var got []change
	m.OnDocumentChanged(func(path string, modified bool) {
		got = append(got, change{path, modified})
	})

	m.NewUntitled()
	edit(t, m, 0, "a")
	edit(t, m, 0, "b")
	require.NoError(t, m.Pane(0).Undo())
	require.NoError(t, m.Pane(0).Undo())

	assert.Equal(t, []change{{"Untitled-1", true}, {"Untitled-1", false}}, got)
}

func TestHandleFileEvent(t *testing.T) {
	path := writeFile(t, "live.txt", "v1")
	m := newManager()
	p, err := m.Open(path)
	require.NoError(t, err)

	edit(t, m, 0, "local ")
	require.NoError(t, m.Save(0, nil))
	assert.Nil(t, m.HandleFileEvent(FileEvent{Path: path, Op: OpWrite}))
	assert.False(t, p.IsStale())

	require.NoError(t, os.WriteFile(path, []byte("changed elsewhere"), 0o644))
	assert.Same(t, p, m.HandleFileEvent(FileEvent{Path: path, Op: OpWrite}))
	assert.True(t, p.IsStale())
	assert.Nil(t, m.HandleFileEvent(FileEvent{Path: path, Op: OpWrite}))

	require.NoError(t, m.Reload(0))
	assert.False(t, p.IsStale())
	assert.Equal(t, "changed elsewhere", p.Document().Text())
	assert.False(t, p.IsModified())

	assert.Nil(t, m.HandleFileEvent(FileEvent{Path: filepath.Join(filepath.Dir(path), "other"), Op: OpWrite}))
	assert.Same(t, p, m.HandleFileEvent(FileEvent{Path: path, Op: OpRemove}))
}

func TestReloadUntitled(t *testing.T) {
	m := newManager()
	m.NewUntitled()
	assert.ErrorIs(t, m.Reload(0), ErrNoPath)
	assert.ErrorIs(t, m.Reload(3), ErrPaneNotFound)
}

func TestManagerWithWatcher(t *testing.T) {
	w := newTestWatcher(t)
	path := writeFile(t, "w.go", "package w\n")
	m := New(highlight.DefaultRegistry(), WithWatcher(w), WithMaxUndo(10))

	_, err := m.Open(path)
	require.NoError(t, err)
	assert.True(t, w.IsWatching(path))

	require.NoError(t, m.Close(0, nil))
	assert.False(t, w.IsWatching(path))
}

func TestCurrentDocument(t *testing.T) {
	m := newManager()
	assert.Nil(t, m.CurrentDocument())
	p := m.NewUntitled()
	assert.Same(t, p.Document(), m.CurrentDocument())
	assert.Equal(t, document.LineEndingLF, m.CurrentDocument().LineEnding())
}
