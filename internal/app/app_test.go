package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codepad/internal/config"
	"github.com/dshills/codepad/internal/input/key"
	"github.com/dshills/codepad/internal/logging"
	"github.com/dshills/codepad/internal/renderer"
	"github.com/dshills/codepad/internal/renderer/backend"
	"github.com/dshills/codepad/internal/workspace"
)

type testApp struct {
	*Application
	b *backend.NullBackend
}

// newTestApp starts an application with the sidebar hidden, so the editor
// starts at column 0.
func newTestApp(t *testing.T, configText string, files ...string) *testApp {
	t.Helper()
	ta := startTestApp(t, configText, files...)
	ta.sidebarVisible = false
	return ta
}

func startTestApp(t *testing.T, configText string, files ...string) *testApp {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if configText != "" {
		require.NoError(t, os.WriteFile(cfgPath, []byte(configText), 0o644))
	}

	b := backend.NewNullBackend(60, 12)
	a, err := New(Options{
		ConfigPath: cfgPath,
		Files:      files,
		Backend:    b,
		Clipboard:  NewMemoryClipboard(),
		Logger:     logging.Nop(),
	})
	require.NoError(t, err)
	require.NoError(t, a.start())
	t.Cleanup(a.stop)
	return &testApp{Application: a, b: b}
}

// press handles each key chord as if typed.
func (ta *testApp) press(t *testing.T, chords ...string) error {
	t.Helper()
	var err error
	for _, chord := range chords {
		err = ta.HandleEvent(backend.Event{Type: backend.EventKey, Key: key.MustParse(chord)})
	}
	return err
}

// typeText handles each rune of s as a key press.
func (ta *testApp) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		require.NoError(t, ta.HandleEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent(r, key.ModNone)}))
	}
}

// queue posts answers for a prompt that has not started yet.
func (ta *testApp) queue(chords ...string) {
	for _, chord := range chords {
		ta.b.PostEvent(backend.Event{Type: backend.EventKey, Key: key.MustParse(chord)})
	}
}

func (ta *testApp) queueText(s string) {
	for _, r := range s {
		ta.b.PostEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent(r, key.ModNone)})
	}
}

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestNewOpensUntitled(t *testing.T) {
	ta := newTestApp(t, "")
	require.Equal(t, 1, ta.Workspace().Count())
	assert.Equal(t, "Untitled-1", ta.Workspace().Title(0))
	assert.Equal(t, "dark", ta.Theme().Name)
	assert.Empty(t, ta.Status().Message)
}

func TestNewOpensFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.go", "package a\n")
	b := writeFile(t, dir, "b.md", "# b\n")

	ta := newTestApp(t, "", a, b, filepath.Join(dir, "missing.txt"))
	require.Equal(t, 2, ta.Workspace().Count())
	assert.Equal(t, "Go", ta.Workspace().Pane(0).Document().RuleSet().Name)
	assert.Equal(t, "Markdown", ta.Workspace().Pane(1).Document().RuleSet().Name)
	assert.Equal(t, renderer.MessageWarning, ta.Status().Level)
	assert.Contains(t, ta.Status().Message, "missing.txt")
}

func TestNewRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.toml", "[editor]\nindent_width = 0\n")
	_, err := New(Options{ConfigPath: cfgPath, Backend: backend.NewNullBackend(10, 5), Logger: logging.Nop()})
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "config", initErr.Component)
	assert.ErrorIs(t, err, config.ErrValidationFailed)
}

func TestTypingRendersFrame(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "hi")
	ta.render()

	assert.Equal(t, "hi", ta.Workspace().CurrentDocument().Text())
	assert.Equal(t, " Untitled-1*", ta.b.Row(0))
	assert.Equal(t, " 1 hi", ta.b.Row(1))
	assert.Contains(t, ta.b.Row(11), "Plain Text | Ln 1, Col 3 | UTF-8 | LF")
}

func TestNewTabAndNavigation(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.press(t, "Ctrl+N"))
	assert.Equal(t, 2, ta.Workspace().Count())
	assert.Equal(t, 1, ta.Workspace().CurrentIndex())
	assert.Equal(t, "Untitled-2", ta.Workspace().Title(1))

	require.NoError(t, ta.press(t, "Alt+Right"))
	assert.Equal(t, 0, ta.Workspace().CurrentIndex())
	require.NoError(t, ta.press(t, "Ctrl+PageUp"))
	assert.Equal(t, 1, ta.Workspace().CurrentIndex())
}

func TestSaveUntitledPromptsForPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	ta := newTestApp(t, "")
	// The closing paren is auto-inserted with the opener.
	ta.typeText(t, "print(1")

	ta.queue("Ctrl+U")
	ta.queueText("a.py")
	ta.queue("Enter")
	require.NoError(t, ta.press(t, "Ctrl+S"))

	data, err := os.ReadFile(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "print(1)", string(data))
	assert.Equal(t, "a.py", ta.Workspace().Title(0))
	assert.Equal(t, "Python", ta.Workspace().CurrentDocument().RuleSet().Name)
	assert.Equal(t, "Saved a.py", ta.Status().Message)
	assert.Empty(t, ta.Status().Prompt)
}

func TestSaveCancelled(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "x")
	ta.queue("Escape")
	require.NoError(t, ta.press(t, "Ctrl+S"))

	assert.Equal(t, "Cancelled", ta.Status().Message)
	assert.True(t, ta.Workspace().Current().IsModified())
}

func TestSaveAs(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeFile(t, dir, "notes.txt", "body")
	ta := newTestApp(t, "", path)

	ta.queue("Ctrl+U")
	ta.queueText("notes.md")
	ta.queue("Enter")
	require.NoError(t, ta.press(t, "Alt+S"))

	assert.Equal(t, "notes.md", ta.Workspace().Title(0))
	assert.Equal(t, "Markdown", ta.Workspace().CurrentDocument().RuleSet().Name)
	data, err := os.ReadFile(filepath.Join(dir, "notes.md"))
	require.NoError(t, err)
	assert.Equal(t, "body", string(data))
}

func TestQuit(t *testing.T) {
	ta := newTestApp(t, "")
	assert.ErrorIs(t, ta.press(t, "Ctrl+Q"), ErrQuit)
	assert.Equal(t, 0, ta.Workspace().Count())
}

func TestQuitWithUnsavedChanges(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "x")

	ta.queue("c")
	require.NoError(t, ta.press(t, "Ctrl+Q"))
	assert.Equal(t, "Quit cancelled", ta.Status().Message)
	assert.Equal(t, 1, ta.Workspace().Count())

	// Unknown answers beep and keep asking.
	ta.queue("z", "n")
	assert.ErrorIs(t, ta.press(t, "Ctrl+Q"), ErrQuit)
	assert.Equal(t, 0, ta.Workspace().Count())
	assert.Equal(t, 1, ta.b.Beeps())
}

func TestCloseLastTabLeavesEmptyWorkspace(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.press(t, "Ctrl+W"))
	assert.Equal(t, 0, ta.Workspace().Count())

	ta.typeText(t, "ignored")
	require.NoError(t, ta.press(t, "Ctrl+F"))
	assert.Equal(t, ErrNoActivePane.Error(), ta.Status().Message)
	assert.Equal(t, renderer.MessageError, ta.Status().Level)

	ta.render()
	assert.Equal(t, "", ta.b.Row(0))
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "f.txt", "foo bar\nFOO")
	ta := newTestApp(t, "", path)
	p := ta.Workspace().Current()

	ta.queueText("foo")
	ta.queue("Enter")
	require.NoError(t, ta.press(t, "Ctrl+F"))
	assert.Equal(t, "foo", p.SearchQuery())
	assert.Len(t, p.Matches(), 2)
	assert.Equal(t, 0, p.MatchIndex())
	assert.Equal(t, "foo", p.SelectedText())

	require.NoError(t, ta.press(t, "F3"))
	assert.Equal(t, 1, p.MatchIndex())
	assert.Equal(t, "FOO", p.SelectedText())

	require.NoError(t, ta.press(t, "Shift+F3"))
	assert.Equal(t, 0, p.MatchIndex())

	ta.render()
	assert.Contains(t, ta.b.Row(11), "find 1/2")

	// The prompt starts with the previous query.
	ta.queue("Ctrl+U")
	ta.queueText("zzz")
	ta.queue("Enter")
	require.NoError(t, ta.press(t, "Ctrl+F"))
	assert.Equal(t, `No matches for "zzz"`, ta.Status().Message)
}

func TestFindNextWithoutQueryOpensPrompt(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "abc")
	ta.queue("Escape")
	require.NoError(t, ta.press(t, "F3"))
	assert.Equal(t, "", ta.Workspace().Current().SearchQuery())
	assert.Empty(t, ta.Status().Message)
}

func TestClipboard(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "hello")
	doc := ta.Workspace().CurrentDocument()

	require.NoError(t, ta.press(t, "Ctrl+A", "Ctrl+C"))
	text, err := ta.clipboard.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "hello", doc.Text())

	require.NoError(t, ta.press(t, "Ctrl+A", "Ctrl+X"))
	assert.Equal(t, "", doc.Text())

	require.NoError(t, ta.press(t, "Ctrl+V", "Ctrl+V"))
	assert.Equal(t, "hellohello", doc.Text())
}

func TestToggleTheme(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.press(t, "F5"))
	assert.Equal(t, "light", ta.Theme().Name)
	assert.Equal(t, "light", ta.renderer.Theme().Name)
	assert.Equal(t, "Theme: light", ta.Status().Message)

	require.NoError(t, ta.press(t, "F5"))
	assert.Equal(t, "dark", ta.Theme().Name)
}

func TestOpenAction(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, "x.go", "package x")
	ta := newTestApp(t, "")

	ta.queueText("x.go")
	ta.queue("Enter")
	require.NoError(t, ta.press(t, "Ctrl+O"))
	assert.Equal(t, 2, ta.Workspace().Count())
	assert.Equal(t, "Opened x.go", ta.Status().Message)

	ta.queueText("nope.txt")
	ta.queue("Enter")
	require.NoError(t, ta.press(t, "Ctrl+O"))
	assert.Equal(t, 2, ta.Workspace().Count())
	assert.Equal(t, renderer.MessageWarning, ta.Status().Level)
	assert.Contains(t, ta.Status().Message, "nope.txt")
}

func TestExternalChangeAndReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "w.txt", "one")
	ta := newTestApp(t, "", path)
	p := ta.Workspace().Current()

	require.NoError(t, os.WriteFile(path, []byte("two, longer"), 0o644))
	require.NoError(t, ta.HandleEvent(backend.Event{
		Type: backend.EventInterrupt,
		Data: workspace.FileEvent{Path: p.Path(), Op: workspace.OpWrite},
	}))
	assert.True(t, p.IsStale())
	assert.Equal(t, "w.txt changed on disk; reload to see it", ta.Status().Message)

	ta.render()
	assert.Equal(t, " w.txt!", ta.b.Row(0))

	ta.typeText(t, "x")
	ta.queue("y")
	require.NoError(t, ta.press(t, "Ctrl+R"))
	assert.Equal(t, "two, longer", p.Document().Text())
	assert.False(t, p.IsStale())
	assert.Equal(t, "Reloaded w.txt", ta.Status().Message)
}

func TestRemovedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gone.txt", "x")
	ta := newTestApp(t, "", path)

	require.NoError(t, os.Remove(path))
	require.NoError(t, ta.HandleEvent(backend.Event{
		Type: backend.EventInterrupt,
		Data: workspace.FileEvent{Path: ta.Workspace().Current().Path(), Op: workspace.OpRemove},
	}))
	assert.Equal(t, "gone.txt was removed from disk", ta.Status().Message)
}

func TestResize(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.HandleEvent(backend.Event{Type: backend.EventResize, Width: 40, Height: 8}))
	assert.Equal(t, 6, ta.renderer.EditorRows())
}

func TestKeyOverridesFromConfig(t *testing.T) {
	ta := newTestApp(t, "[keys]\n\"file.new\" = \"Ctrl+T\"\n\"app.quit\" = \"Ctrl+Nope\"\n")
	assert.Contains(t, ta.Status().Message, "keys:")

	require.NoError(t, ta.press(t, "Ctrl+T"))
	assert.Equal(t, 2, ta.Workspace().Count())

	require.NoError(t, ta.press(t, "Ctrl+N"))
	assert.Equal(t, 2, ta.Workspace().Count())

	assert.Equal(t, []string{"Ctrl+Q"}, ta.Keymap().KeysFor("app.quit"))
}

func TestEditorSettingsFromConfig(t *testing.T) {
	ta := newTestApp(t, "[editor]\nindent_width = 2\n[ui]\ntheme = \"light\"\nline_numbers = false\n")
	assert.Equal(t, "light", ta.Theme().Name)

	require.NoError(t, ta.press(t, "Tab"))
	assert.Equal(t, "  ", ta.Workspace().CurrentDocument().Text())

	ta.render()
	assert.Equal(t, "  ", ta.Workspace().CurrentDocument().Line(0))
	assert.Equal(t, 2, ta.renderer.Options().TabWidth)
	assert.False(t, ta.renderer.Options().LineNumbers)
}

func TestRun(t *testing.T) {
	b := backend.NewNullBackend(40, 6)
	a, err := New(Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Backend:    b,
		Clipboard:  NewMemoryClipboard(),
		Logger:     logging.Nop(),
	})
	require.NoError(t, err)

	b.PostEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent('a', key.ModNone)})
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: key.MustParse("Ctrl+Q")})
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: key.MustParse("n")})

	require.NoError(t, a.Run())
	assert.Equal(t, 0, a.Workspace().Count())
	assert.Contains(t, b.Row(5), "Save changes to Untitled-1?")
}

func TestRequestQuit(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "unsaved")

	ta.RequestQuit()
	assert.ErrorIs(t, ta.HandleEvent(ta.b.PollEvent()), ErrQuit)
}

func TestRequestQuitDuringPrompt(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "unsaved")

	ta.RequestQuit()
	require.NoError(t, ta.press(t, "Ctrl+S"))
	assert.Equal(t, "Cancelled", ta.Status().Message)
	assert.Empty(t, ta.Status().Prompt)

	assert.ErrorIs(t, ta.HandleEvent(ta.b.PollEvent()), ErrQuit)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
