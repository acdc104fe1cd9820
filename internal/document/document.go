// Package document holds the text of one editor pane as a list of lines.
//
// Every line caches its highlight spans together with the carry state it was
// tokenized with and the state it hands to the next line. Edits re-tokenize
// the touched lines and keep going down the document only while the state
// handed to the next line changes, so typing inside a function never rescans
// the whole file while opening a block comment recolors everything below it.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/codepad/internal/engine/history"
	"github.com/dshills/codepad/internal/renderer/highlight"
)

// Errors returned by document operations.
var (
	ErrOutOfRange = errors.New("position out of range")
	ErrMismatch   = errors.New("operation does not match document text")
)

type line struct {
	text  []rune
	spans []highlight.Span
	in    highlight.CarryState
	out   highlight.CarryState
	valid bool
}

// Document is an editable, highlighted text. It is not safe for concurrent use;
// the editor drives it from a single event loop.
type Document struct {
	lines      []*line
	rules      *highlight.RuleSet
	lineEnding LineEnding
	history    *history.History
	maxUndo    int
	revision   uint64
	listeners  []func(*Document)
}

// New creates a document from text. Line endings are detected, remembered for
// Contents and normalized to "\n" internally.
func New(text string, opts ...Option) *Document {
	d := &Document{lineEnding: DetectLineEnding(text)}
	for _, opt := range opts {
		opt(d)
	}
	d.history = history.New(d.maxUndo)
	d.lines = splitLines(normalize(text))
	d.rehighlight(0, len(d.lines)-1)
	return d
}

func normalize(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

func splitLines(text string) []*line {
	parts := strings.Split(text, "\n")
	lines := make([]*line, len(parts))
	for i, p := range parts {
		lines[i] = &line{text: []rune(p)}
	}
	return lines
}

// Text returns the document with "\n" line separators.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, ln := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(ln.text))
	}
	return sb.String()
}

// Contents returns the document as it should be written to disk, using the
// document's line ending.
func (d *Document) Contents() string {
	if d.lineEnding == LineEndingLF {
		return d.Text()
	}
	return strings.ReplaceAll(d.Text(), "\n", d.lineEnding.Sequence())
}

// SetText replaces the whole document and forgets its history. The result is
// considered unmodified.
func (d *Document) SetText(text string) {
	d.lineEnding = DetectLineEnding(text)
	d.lines = splitLines(normalize(text))
	d.history.Clear()
	d.rehighlight(0, len(d.lines)-1)
	d.changed()
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of line i without its terminator.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return string(d.lines[i].text)
}

// LineRunes returns the runes of line i. The slice must not be modified.
func (d *Document) LineRunes(i int) []rune {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return d.lines[i].text
}

// LineLen returns the length of line i in runes.
func (d *Document) LineLen(i int) int {
	if i < 0 || i >= len(d.lines) {
		return 0
	}
	return len(d.lines[i].text)
}

// Spans returns the highlight spans of line i.
func (d *Document) Spans(i int) []highlight.Span {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return d.lines[i].spans
}

// CarryState returns the incoming and outgoing states of line i.
func (d *Document) CarryState(i int) (in, out highlight.CarryState) {
	if i < 0 || i >= len(d.lines) {
		return highlight.StateNormal, highlight.StateNormal
	}
	return d.lines[i].in, d.lines[i].out
}

// RuleSet returns the highlighting rules, or nil for plain text.
func (d *Document) RuleSet() *highlight.RuleSet {
	return d.rules
}

// SetRuleSet switches the highlighting rules and re-tokenizes every line.
func (d *Document) SetRuleSet(rs *highlight.RuleSet) {
	if rs == d.rules {
		return
	}
	d.rules = rs
	for _, ln := range d.lines {
		ln.valid = false
	}
	d.rehighlight(0, len(d.lines)-1)
	d.changed()
}

// LineEnding returns the line ending used by Contents.
func (d *Document) LineEnding() LineEnding {
	return d.lineEnding
}

// SetLineEnding changes the line ending used by Contents.
func (d *Document) SetLineEnding(le LineEnding) {
	d.lineEnding = le
}

// Revision increases with every change to the text or highlighting.
func (d *Document) Revision() uint64 {
	return d.revision
}

// OnChange registers fn to run after every change, including undo, redo and
// saves that flip the modified flag.
func (d *Document) OnChange(fn func(*Document)) {
	d.listeners = append(d.listeners, fn)
}

func (d *Document) changed() {
	d.revision++
	for _, fn := range d.listeners {
		fn(d)
	}
}

// IsModified reports whether the text differs from the last saved state.
func (d *Document) IsModified() bool {
	return !d.history.IsClean()
}

// MarkSaved records the current text as the saved state.
func (d *Document) MarkSaved() {
	was := d.IsModified()
	d.history.MarkClean()
	if was {
		d.changed()
	}
}

// History exposes the undo history, mainly for grouping.
func (d *Document) History() *history.History {
	return d.history
}

// BeginEdit starts an undo group; edits until EndEdit undo together.
func (d *Document) BeginEdit(name string) {
	d.history.BeginGroup(name)
}

// EndEdit closes the group opened by BeginEdit.
func (d *Document) EndEdit() {
	d.history.EndGroup()
}

// Insert inserts text at p and returns the position just past it.
func (d *Document) Insert(p Position, text string) (Position, error) {
	return d.Replace(p, p, text)
}

// Delete removes the text between two positions, in either order.
func (d *Document) Delete(start, end Position) error {
	_, err := d.Replace(start, end, "")
	return err
}

// Replace substitutes the text between start and end with text and returns
// the position just past the inserted text.
func (d *Document) Replace(start, end Position, text string) (Position, error) {
	start, end = Ordered(start, end)
	if err := d.check(start); err != nil {
		return start, err
	}
	if err := d.check(end); err != nil {
		return start, err
	}
	text = normalize(text)
	old := d.TextRange(start, end)
	if old == text {
		return d.PositionAt(d.Offset(start) + len([]rune(text))), nil
	}

	op := history.NewReplaceOperation(d.Offset(start), old, text)
	newEnd := d.apply(start, end, text)
	d.history.Record(op)
	d.changed()
	return newEnd, nil
}

// ApplyOperation replays op without recording it. It implements
// history.Target.
func (d *Document) ApplyOperation(op *history.Operation) error {
	if op.Offset < 0 || op.OldEnd() > d.Len() {
		return fmt.Errorf("%w: offset %d", ErrOutOfRange, op.Offset)
	}
	start := d.PositionAt(op.Offset)
	end := d.PositionAt(op.OldEnd())
	if d.TextRange(start, end) != op.OldText {
		return ErrMismatch
	}
	d.apply(start, end, op.NewText)
	d.changed()
	return nil
}

// Undo reverts the last edit group and returns where the cursor belongs.
func (d *Document) Undo() (Position, error) {
	off, err := d.history.Undo(d)
	if err != nil {
		return Position{}, err
	}
	return d.PositionAt(off), nil
}

// Redo reapplies the last undone edit group and returns where the cursor belongs.
func (d *Document) Redo() (Position, error) {
	off, err := d.history.Redo(d)
	if err != nil {
		return Position{}, err
	}
	return d.PositionAt(off), nil
}

func (d *Document) check(p Position) error {
	if p.Line < 0 || p.Line >= len(d.lines) || p.Col < 0 || p.Col > len(d.lines[p.Line].text) {
		return fmt.Errorf("%w: %s", ErrOutOfRange, p)
	}
	return nil
}

// apply performs the splice and re-tokenizes. start and end are valid and ordered.
func (d *Document) apply(start, end Position, text string) Position {
	parts := strings.Split(text, "\n")
	prefix := d.lines[start.Line].text[:start.Col]
	suffix := d.lines[end.Line].text[end.Col:]

	repl := make([]*line, len(parts))
	var newEnd Position
	for i, p := range parts {
		var r []rune
		if i == 0 {
			r = append(r, prefix...)
		}
		r = append(r, []rune(p)...)
		if i == len(parts)-1 {
			newEnd = Position{Line: start.Line + i, Col: len(r)}
			r = append(r, suffix...)
		}
		repl[i] = &line{text: r}
	}

	tail := d.lines[end.Line+1:]
	lines := make([]*line, 0, start.Line+len(repl)+len(tail))
	lines = append(lines, d.lines[:start.Line]...)
	lines = append(lines, repl...)
	lines = append(lines, tail...)
	d.lines = lines

	d.rehighlight(start.Line, newEnd.Line)
	return newEnd
}

// rehighlight re-tokenizes lines first..last, then continues while the state
// entering a line differs from what it was last tokenized with.
func (d *Document) rehighlight(first, last int) {
	for i := first; i < len(d.lines); i++ {
		in := highlight.StateNormal
		if i > 0 {
			in = d.lines[i-1].out
		}
		ln := d.lines[i]
		if i > last && ln.valid && ln.in == in {
			return
		}
		ln.spans, ln.out = highlight.HighlightLine(string(ln.text), in, d.rules)
		ln.in = in
		ln.valid = true
	}
}
