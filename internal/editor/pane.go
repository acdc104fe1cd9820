package editor

import (
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/dshills/codepad/internal/document"
	"github.com/dshills/codepad/internal/input"
)

// Pane is one editing surface. It implements input.Target.
type Pane struct {
	id      uuid.UUID
	doc     *document.Document
	handler *input.Handler

	path string
	name string

	cursor    document.Position
	anchor    document.Position
	selecting bool
	// goalCol is the column vertical movement aims for, kept across short lines.
	goalCol int

	scrollTop  int
	viewHeight int

	stale bool
	find  findState
}

// NewPane creates a pane editing doc. A nil handler uses input.DefaultConfig.
func NewPane(doc *document.Document, handler *input.Handler) *Pane {
	if handler == nil {
		handler = input.NewHandler(input.DefaultConfig())
	}
	p := &Pane{
		id:         uuid.New(),
		doc:        doc,
		handler:    handler,
		viewHeight: 1,
		find:       findState{index: -1},
	}
	doc.OnChange(func(d *document.Document) {
		p.cursor = d.Clamp(p.cursor)
		p.anchor = d.Clamp(p.anchor)
	})
	return p
}

// ID returns the pane's stable identifier.
func (p *Pane) ID() uuid.UUID {
	return p.id
}

// Document returns the text being edited.
func (p *Pane) Document() *document.Document {
	return p.doc
}

// Path returns the absolute file path, or "" for an untitled pane.
func (p *Pane) Path() string {
	return p.path
}

// SetPath associates the pane with a file.
func (p *Pane) SetPath(path string) {
	p.path = path
	p.stale = false
}

// Name returns the display name: the file's base name, or the untitled name.
func (p *Pane) Name() string {
	if p.path != "" {
		return filepath.Base(p.path)
	}
	return p.name
}

// SetName sets the name shown while the pane has no path.
func (p *Pane) SetName(name string) {
	p.name = name
}

// IsUntitled reports whether the pane has never been saved to a file.
func (p *Pane) IsUntitled() bool {
	return p.path == ""
}

// IsModified reports whether the document differs from the saved text.
func (p *Pane) IsModified() bool {
	return p.doc.IsModified()
}

// IsStale reports whether the file changed on disk since it was loaded.
func (p *Pane) IsStale() bool {
	return p.stale
}

// SetStale marks the pane as out of date with its file.
func (p *Pane) SetStale(stale bool) {
	p.stale = stale
}

// Cursor returns the insertion point.
func (p *Pane) Cursor() document.Position {
	return p.cursor
}

// Anchor returns the fixed end of the selection. It equals the cursor when
// nothing is selected.
func (p *Pane) Anchor() document.Position {
	if !p.selecting {
		return p.cursor
	}
	return p.anchor
}

// Selection returns the ordered selection bounds.
func (p *Pane) Selection() (start, end document.Position, ok bool) {
	if !p.HasSelection() {
		return p.cursor, p.cursor, false
	}
	start, end = document.Ordered(p.anchor, p.cursor)
	return start, end, true
}

// HasSelection reports whether any text is selected.
func (p *Pane) HasSelection() bool {
	return p.selecting && p.anchor != p.cursor
}

// SetCursor moves the insertion point and clears the selection.
func (p *Pane) SetCursor(pos document.Position) {
	p.cursor = p.doc.Clamp(pos)
	p.selecting = false
	p.goalCol = p.cursor.Col
}

// Select selects from anchor to cursor.
func (p *Pane) Select(anchor, cursor document.Position) {
	p.anchor = p.doc.Clamp(anchor)
	p.cursor = p.doc.Clamp(cursor)
	p.selecting = true
	p.goalCol = p.cursor.Col
}

// SelectAll selects the whole document.
func (p *Pane) SelectAll() {
	p.Select(document.Position{}, p.doc.End())
}

// SelectedText returns the selected text, or "".
func (p *Pane) SelectedText() string {
	start, end, ok := p.Selection()
	if !ok {
		return ""
	}
	return p.doc.TextRange(start, end)
}

// DeleteSelection removes the selected text. It reports whether anything
// was removed.
func (p *Pane) DeleteSelection() (bool, error) {
	start, end, ok := p.Selection()
	if !ok {
		return false, nil
	}
	if err := p.doc.Delete(start, end); err != nil {
		return false, err
	}
	p.SetCursor(start)
	return true, nil
}

// InsertText replaces the selection (or inserts at the cursor) with text as
// one undo step and leaves the cursor after it.
func (p *Pane) InsertText(text string) error {
	start, end, _ := p.Selection()
	p.doc.BeginEdit("Insert")
	defer p.doc.EndEdit()

	pos, err := p.doc.Replace(start, end, text)
	if err != nil {
		return err
	}
	p.SetCursor(pos)
	return nil
}

// Undo reverts the last edit and moves the cursor to it.
func (p *Pane) Undo() error {
	pos, err := p.doc.Undo()
	if err != nil {
		return err
	}
	p.SetCursor(pos)
	return nil
}

// Redo reapplies the last undone edit and moves the cursor to it.
func (p *Pane) Redo() error {
	pos, err := p.doc.Redo()
	if err != nil {
		return err
	}
	p.SetCursor(pos)
	return nil
}

// GutterWidth returns the width of the line-number column in cells: the
// digits of the line count plus one cell of padding on each side.
func (p *Pane) GutterWidth() int {
	return len(strconv.Itoa(p.doc.LineCount())) + 2
}

// ScrollTop returns the first visible line.
func (p *Pane) ScrollTop() int {
	return p.scrollTop
}

// SetViewHeight sets the number of visible lines, used for paging and
// scrolling.
func (p *Pane) SetViewHeight(h int) {
	if h < 1 {
		h = 1
	}
	p.viewHeight = h
	p.ensureVisible()
}

// ViewHeight returns the number of visible lines.
func (p *Pane) ViewHeight() int {
	return p.viewHeight
}

// ensureVisible scrolls so the cursor line is on screen.
func (p *Pane) ensureVisible() {
	line := p.cursor.Line
	if line < p.scrollTop {
		p.scrollTop = line
	}
	if line >= p.scrollTop+p.viewHeight {
		p.scrollTop = line - p.viewHeight + 1
	}
	if last := p.doc.LineCount() - 1; p.scrollTop > last {
		p.scrollTop = last
	}
	if p.scrollTop < 0 {
		p.scrollTop = 0
	}
}

// CenterCursor scrolls so the cursor line is in the middle of the view.
func (p *Pane) CenterCursor() {
	p.scrollTop = p.cursor.Line - p.viewHeight/2
	p.ensureVisible()
}

var _ input.Target = (*Pane)(nil)
