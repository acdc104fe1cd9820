package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/codepad/internal/document"
	"github.com/dshills/codepad/internal/editor"
	"github.com/dshills/codepad/internal/input"
	"github.com/dshills/codepad/internal/logging"
	"github.com/dshills/codepad/internal/renderer/highlight"
)

// ErrUnsavedChanges is returned by Close when a pane is modified and there
// is no Prompter to ask.
var ErrUnsavedChanges = errors.New("unsaved changes")

const untitledPrefix = "Untitled-"

// paneState is what the workspace remembers about a pane besides the pane
// itself.
type paneState struct {
	encoding Encoding
	modTime  time.Time
	size     int64
	modified bool
}

// Manager owns the open panes and the active one.
type Manager struct {
	panes   []*editor.Pane
	state   map[uuid.UUID]*paneState
	current int

	registry  *highlight.Registry
	handler   *input.Handler
	log       *logging.Logger
	watcher   *Watcher
	maxUndo   int
	listeners []func(path string, modified bool)
}

// Option configures a Manager.
type Option func(*Manager)

// WithHandler sets the input handler shared by every pane.
func WithHandler(h *input.Handler) Option {
	return func(m *Manager) {
		m.handler = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// WithWatcher watches every opened file with w.
func WithWatcher(w *Watcher) Option {
	return func(m *Manager) {
		m.watcher = w
	}
}

// WithMaxUndo limits the undo history of new documents.
func WithMaxUndo(n int) Option {
	return func(m *Manager) {
		m.maxUndo = n
	}
}

// New creates an empty workspace. Rule sets for opened files come from
// registry; a nil registry leaves every file as plain text.
func New(registry *highlight.Registry, opts ...Option) *Manager {
	m := &Manager{
		state:    make(map[uuid.UUID]*paneState),
		current:  -1,
		registry: registry,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.handler == nil {
		m.handler = input.NewHandler(input.DefaultConfig())
	}
	m.log = m.log.WithComponent("workspace")
	return m
}

// Count returns the number of open panes.
func (m *Manager) Count() int {
	return len(m.panes)
}

// Pane returns the pane at index i, or nil.
func (m *Manager) Pane(i int) *editor.Pane {
	if i < 0 || i >= len(m.panes) {
		return nil
	}
	return m.panes[i]
}

// Panes returns the open panes in tab order.
func (m *Manager) Panes() []*editor.Pane {
	out := make([]*editor.Pane, len(m.panes))
	copy(out, m.panes)
	return out
}

// Current returns the active pane, or nil when nothing is open.
func (m *Manager) Current() *editor.Pane {
	return m.Pane(m.current)
}

// CurrentIndex returns the index of the active pane, or -1.
func (m *Manager) CurrentIndex() int {
	return m.current
}

// CurrentDocument returns the active pane's document, or nil.
func (m *Manager) CurrentDocument() *document.Document {
	if p := m.Current(); p != nil {
		return p.Document()
	}
	return nil
}

// SetCurrent activates pane i. Switching panes forgets the search.
func (m *Manager) SetCurrent(i int) error {
	p := m.Pane(i)
	if p == nil {
		return fmt.Errorf("%w: index %d", ErrPaneNotFound, i)
	}
	if i != m.current {
		m.current = i
		p.ResetSearch()
	}
	return nil
}

// Next activates the pane to the right, wrapping around.
func (m *Manager) Next() {
	if n := len(m.panes); n > 0 {
		_ = m.SetCurrent((m.current + 1) % n)
	}
}

// Previous activates the pane to the left, wrapping around.
func (m *Manager) Previous() {
	if n := len(m.panes); n > 0 {
		_ = m.SetCurrent((m.current - 1 + n) % n)
	}
}

// IndexOf returns the index of the pane editing path, or -1.
func (m *Manager) IndexOf(path string) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		return -1
	}
	for i, p := range m.panes {
		if p.Path() == abs {
			return i
		}
	}
	return -1
}

// OnDocumentChanged registers fn to run whenever a pane's modified flag or
// path changes. Untitled panes report their display name as the path.
func (m *Manager) OnDocumentChanged(fn func(path string, modified bool)) {
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(p *editor.Pane) {
	name := p.Path()
	if name == "" {
		name = p.Name()
	}
	for _, fn := range m.listeners {
		fn(name, p.IsModified())
	}
}

// Title returns the tab label of pane i: the file name, with "*" appended
// while it has unsaved changes.
func (m *Manager) Title(i int) string {
	p := m.Pane(i)
	if p == nil {
		return ""
	}
	if p.IsModified() {
		return p.Name() + "*"
	}
	return p.Name()
}

// Encoding returns the on-disk encoding of pane i.
func (m *Manager) Encoding(i int) Encoding {
	if p := m.Pane(i); p != nil {
		return m.state[p.ID()].encoding
	}
	return EncodingUTF8
}

// NewUntitled opens an empty pane named Untitled-N with the lowest N not
// already in use, and activates it.
func (m *Manager) NewUntitled() *editor.Pane {
	used := make(map[int]bool)
	for _, p := range m.panes {
		if !p.IsUntitled() {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(p.Name(), untitledPrefix)); err == nil {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}

	p := m.attach(document.New("", document.WithMaxUndo(m.maxUndo)), &paneState{})
	p.SetName(untitledPrefix + strconv.Itoa(n))
	m.log.Debug("new pane %s", p.Name())
	return p
}

// Open activates the pane already editing path, or reads the file into a
// new pane. Failures are returned as *OperationError and leave the
// workspace unchanged.
func (m *Manager) Open(path string) (*editor.Pane, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	if i := m.IndexOf(abs); i >= 0 {
		_ = m.SetCurrent(i)
		return m.panes[i], nil
	}

	text, st, err := readFile(abs)
	if err != nil {
		m.log.WithError(err).Warn("open %s failed", abs)
		return nil, NewOperationError("open", abs, err)
	}

	doc := document.New(text,
		document.WithRuleSet(m.resolve(abs)),
		document.WithMaxUndo(m.maxUndo),
	)
	p := m.attach(doc, st)
	p.SetPath(abs)
	m.watch(abs)

	lang := "plain text"
	if rs := doc.RuleSet(); rs != nil {
		lang = rs.Name
	}
	m.log.WithField("language", lang).WithField("encoding", st.encoding).Info("opened %s", abs)
	return p, nil
}

func (m *Manager) resolve(path string) *highlight.RuleSet {
	if m.registry == nil {
		return nil
	}
	return m.registry.ResolvePath(path)
}

func (m *Manager) attach(doc *document.Document, st *paneState) *editor.Pane {
	p := editor.NewPane(doc, m.handler)
	m.state[p.ID()] = st
	doc.OnChange(func(d *document.Document) {
		if s := m.state[p.ID()]; s != nil && s.modified != d.IsModified() {
			s.modified = d.IsModified()
			m.notify(p)
		}
	})
	m.panes = append(m.panes, p)
	_ = m.SetCurrent(len(m.panes) - 1)
	return p
}

func readFile(path string) (string, *paneState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, err
	}
	if info.IsDir() {
		return "", nil, ErrIsDirectory
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	text, enc, err := Decode(data)
	if err != nil {
		return "", nil, err
	}
	return text, &paneState{encoding: enc, modTime: info.ModTime(), size: info.Size()}, nil
}

// Save writes pane i to its file. An untitled pane asks prompter for a path;
// a nil prompter makes that an ErrNoPath failure.
func (m *Manager) Save(i int, prompter Prompter) error {
	p := m.Pane(i)
	if p == nil {
		return fmt.Errorf("%w: index %d", ErrPaneNotFound, i)
	}
	if !p.IsUntitled() {
		return m.write(p, p.Path())
	}
	if prompter == nil {
		return NewOperationError("save", p.Name(), ErrNoPath)
	}
	path, ok := prompter.SavePath(p.Name())
	if !ok || path == "" {
		return ErrCancelled
	}
	return m.SaveAs(i, path)
}

// SaveAs writes pane i to path, makes path the pane's file and re-resolves
// its highlighting from the new extension. A path open in another pane is
// refused with ErrAlreadyOpen.
func (m *Manager) SaveAs(i int, path string) error {
	p := m.Pane(i)
	if p == nil {
		return fmt.Errorf("%w: index %d", ErrPaneNotFound, i)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return NewOperationError("save", path, err)
	}
	if j := m.IndexOf(abs); j >= 0 && j != i {
		return NewOperationError("save", abs, ErrAlreadyOpen)
	}
	if err := m.write(p, abs); err != nil {
		return err
	}

	old := p.Path()
	if old == abs {
		return nil
	}
	p.SetPath(abs)
	p.Document().SetRuleSet(m.resolve(abs))
	if old != "" {
		m.unwatch(old)
	}
	m.watch(abs)
	m.notify(p)
	return nil
}

func (m *Manager) write(p *editor.Pane, path string) error {
	st := m.state[p.ID()]
	data, err := Encode(p.Document().Contents(), st.encoding)
	if err != nil && st.encoding == EncodingLatin1 {
		m.log.WithError(err).Warn("%s no longer fits %s, saving as UTF-8", path, st.encoding)
		st.encoding = EncodingUTF8
		data, err = Encode(p.Document().Contents(), st.encoding)
	}
	if err != nil {
		return NewOperationError("save", path, err)
	}

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return NewOperationError("save", path, ErrIsDirectory)
		}
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		m.log.WithError(err).Warn("save %s failed", path)
		return NewOperationError("save", path, err)
	}
	if info, err := os.Stat(path); err == nil {
		st.modTime, st.size = info.ModTime(), info.Size()
	}

	p.Document().MarkSaved()
	p.SetStale(false)
	m.log.Info("saved %s", path)
	return nil
}

// Reload replaces pane i's text with its file's current content. The
// reload cannot be undone.
func (m *Manager) Reload(i int) error {
	p := m.Pane(i)
	if p == nil {
		return fmt.Errorf("%w: index %d", ErrPaneNotFound, i)
	}
	if p.IsUntitled() {
		return NewOperationError("reload", p.Name(), ErrNoPath)
	}
	text, st, err := readFile(p.Path())
	if err != nil {
		return NewOperationError("reload", p.Path(), err)
	}
	m.state[p.ID()] = st
	p.Document().SetText(text)
	p.SetStale(false)
	m.notify(p)
	return nil
}

// Close closes pane i. A modified pane asks prompter first: Save saves and
// closes, Discard closes, Cancel returns ErrCancelled. A failed save keeps
// the pane open and returns the save error.
func (m *Manager) Close(i int, prompter Prompter) error {
	p := m.Pane(i)
	if p == nil {
		return fmt.Errorf("%w: index %d", ErrPaneNotFound, i)
	}
	if p.IsModified() {
		if err := m.confirm(i, prompter); err != nil {
			return err
		}
	}
	m.remove(i)
	return nil
}

// CloseAll closes every pane. Modified panes are confirmed from the last
// tab to the first; Cancel or a failed save stops the whole operation and
// closes nothing, though panes already saved stay saved.
func (m *Manager) CloseAll(prompter Prompter) error {
	for i := len(m.panes) - 1; i >= 0; i-- {
		if !m.panes[i].IsModified() {
			continue
		}
		_ = m.SetCurrent(i)
		if err := m.confirm(i, prompter); err != nil {
			return err
		}
	}
	for len(m.panes) > 0 {
		m.remove(len(m.panes) - 1)
	}
	return nil
}

func (m *Manager) confirm(i int, prompter Prompter) error {
	p := m.panes[i]
	if prompter == nil {
		return NewOperationError("close", p.Name(), ErrUnsavedChanges)
	}
	switch prompter.ConfirmClose(p.Name()) {
	case ChoiceSave:
		return m.Save(i, prompter)
	case ChoiceDiscard:
		return nil
	default:
		return ErrCancelled
	}
}

func (m *Manager) remove(i int) {
	p := m.panes[i]
	delete(m.state, p.ID())
	m.panes = append(m.panes[:i], m.panes[i+1:]...)
	if path := p.Path(); path != "" {
		m.unwatch(path)
	}
	m.log.Debug("closed %s", p.Name())

	switch {
	case len(m.panes) == 0:
		m.current = -1
	case m.current > i || m.current == len(m.panes):
		m.current--
		m.Current().ResetSearch()
	case m.current == i:
		m.Current().ResetSearch()
	}
}

func (m *Manager) watch(path string) {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Add(path); err != nil {
		m.log.WithError(err).Warn("cannot watch %s", path)
	}
}

func (m *Manager) unwatch(path string) {
	if m.watcher != nil {
		m.watcher.Remove(path)
	}
}

// HandleFileEvent marks the pane editing ev.Path as stale when the file
// changed behind its back. Changes matching the workspace's own last save
// are ignored. It returns the affected pane, or nil.
func (m *Manager) HandleFileEvent(ev FileEvent) *editor.Pane {
	i := m.IndexOf(ev.Path)
	if i < 0 {
		return nil
	}
	p := m.panes[i]
	st := m.state[p.ID()]

	if !ev.Op.Has(OpRemove) && !ev.Op.Has(OpRename) {
		info, err := os.Stat(p.Path())
		if err == nil && info.ModTime().Equal(st.modTime) && info.Size() == st.size {
			return nil
		}
	}
	if p.IsStale() {
		return nil
	}
	p.SetStale(true)
	m.log.WithField("op", ev.Op).Info("%s changed on disk", p.Path())
	return p
}

// Shutdown stops watching files. Panes stay open.
func (m *Manager) Shutdown() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}
