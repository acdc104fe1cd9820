package input

import (
	"strings"

	"github.com/dshills/codepad/internal/document"
	"github.com/dshills/codepad/internal/input/key"
)

// Target is the editing surface a Handler works on. editor.Pane implements it.
type Target interface {
	// Document returns the text being edited.
	Document() *document.Document

	// Cursor returns the insertion point.
	Cursor() document.Position

	// Selection returns the ordered bounds of the selection. ok is false
	// when nothing is selected.
	Selection() (start, end document.Position, ok bool)

	// SetCursor moves the insertion point and clears the selection.
	SetCursor(p document.Position)

	// Select selects from anchor to cursor.
	Select(anchor, cursor document.Position)
}

// Config configures the input handler.
type Config struct {
	// IndentWidth is the number of spaces Tab inserts and Shift+Tab removes,
	// and the width of a tab character when measuring indentation.
	// Default: 4
	IndentWidth int

	// AutoIndent copies the current line's indentation on Enter.
	AutoIndent bool

	// AutoPair inserts closers for brackets and quotes.
	AutoPair bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IndentWidth: 4,
		AutoIndent:  true,
		AutoPair:    true,
	}
}

// pairOrder lists the auto-closed characters with their closers.
var pairOrder = []struct{ open, closer rune }{
	{'(', ')'},
	{'[', ']'},
	{'{', '}'},
	{'<', '>'},
	{'"', '"'},
	{'\'', '\''},
	{'`', '`'},
}

// Closer returns the character that closes open, if open is auto-closed.
func Closer(open rune) (rune, bool) {
	for _, p := range pairOrder {
		if p.open == open {
			return p.closer, true
		}
	}
	return 0, false
}

// Openers returns the auto-closed characters in a fresh slice.
func Openers() []rune {
	out := make([]rune, len(pairOrder))
	for i, p := range pairOrder {
		out[i] = p.open
	}
	return out
}

// Handler applies indentation and bracket policies to key events.
type Handler struct {
	config Config
}

// NewHandler creates a handler. A non-positive indent width falls back to 4.
func NewHandler(config Config) *Handler {
	if config.IndentWidth <= 0 {
		config.IndentWidth = 4
	}
	return &Handler{config: config}
}

// Config returns the handler's configuration.
func (h *Handler) Config() Config {
	return h.config
}

// Handle applies the policy for ev to t. It reports whether the event was
// consumed; unconsumed events fall through to the default editing behavior.
// An error means the document rejected an edit, which leaves the event
// consumed.
func (h *Handler) Handle(t Target, ev key.Event) (bool, error) {
	switch {
	case ev.IsBacktab():
		if _, _, ok := t.Selection(); !ok {
			return true, nil
		}
		return true, h.unindent(t)

	case ev.IsPlain(key.KeyTab):
		if _, _, ok := t.Selection(); ok {
			return true, h.indent(t)
		}
		return true, h.insertIndent(t)

	case ev.IsPlain(key.KeyEnter) && h.config.AutoIndent:
		return true, h.newline(t)

	case ev.IsPlain(key.KeyBackspace) && h.config.AutoPair:
		return h.deletePair(t)

	case ev.IsChar() && h.config.AutoPair:
		closer, ok := Closer(ev.Rune)
		if !ok {
			return false, nil
		}
		return true, h.insertPair(t, ev.Rune, closer)
	}
	return false, nil
}

func (h *Handler) indentString() string {
	return strings.Repeat(" ", h.config.IndentWidth)
}

func (h *Handler) insertIndent(t Target) error {
	doc := t.Document()
	doc.BeginEdit("Indent")
	defer doc.EndEdit()

	end, err := doc.Insert(t.Cursor(), h.indentString())
	if err != nil {
		return err
	}
	t.SetCursor(end)
	return nil
}

// selectedLines returns the first and last line a selection covers. A
// selection that ends at column 0 of a later line does not cover that line.
func selectedLines(start, end document.Position) (first, last int) {
	last = end.Line
	if end.Col == 0 && end.Line != start.Line {
		last--
	}
	return start.Line, last
}

func (h *Handler) indent(t Target) error {
	doc := t.Document()
	start, end, _ := t.Selection()
	startOff, endOff := doc.Offset(start), doc.Offset(end)
	first, last := selectedLines(start, end)

	doc.BeginEdit("Indent Lines")
	defer doc.EndEdit()

	indent := h.indentString()
	for line := first; line <= last; line++ {
		if _, err := doc.Insert(document.Position{Line: line}, indent); err != nil {
			return err
		}
	}

	inserted := (last - first + 1) * h.config.IndentWidth
	t.Select(doc.PositionAt(startOff), doc.PositionAt(endOff+inserted))
	return nil
}

func (h *Handler) unindent(t Target) error {
	doc := t.Document()
	start, end, _ := t.Selection()
	startOff, endOff := doc.Offset(start), doc.Offset(end)
	first, last := selectedLines(start, end)

	doc.BeginEdit("Unindent Lines")
	defer doc.EndEdit()

	removed := 0
	for line := first; line <= last; line++ {
		n := 0
		for _, r := range doc.LineRunes(line) {
			if r != ' ' || n == h.config.IndentWidth {
				break
			}
			n++
		}
		if n == 0 {
			continue
		}
		if err := doc.Delete(document.Position{Line: line}, document.Position{Line: line, Col: n}); err != nil {
			return err
		}
		removed += n
	}

	t.Select(doc.PositionAt(startOff), doc.PositionAt(endOff-removed))
	return nil
}

func (h *Handler) newline(t Target) error {
	doc := t.Document()
	cursor := t.Cursor()
	width := doc.LeadingWhitespace(cursor.Line, h.config.IndentWidth)

	start, end, ok := t.Selection()
	if !ok {
		start, end = cursor, cursor
	}

	doc.BeginEdit("Newline")
	defer doc.EndEdit()

	pos, err := doc.Replace(start, end, "\n"+strings.Repeat(" ", width))
	if err != nil {
		return err
	}
	t.SetCursor(pos)
	return nil
}

func (h *Handler) insertPair(t Target, open, closer rune) error {
	doc := t.Document()
	start, end, ok := t.Selection()
	if !ok {
		start, end = t.Cursor(), t.Cursor()
	}
	selected := doc.TextRange(start, end)

	doc.BeginEdit("Insert Pair")
	defer doc.EndEdit()

	pos, err := doc.Replace(start, end, string(open)+selected+string(closer))
	if err != nil {
		return err
	}
	// The closer is a single rune on the last line of the inserted text.
	pos.Col--
	t.SetCursor(pos)
	return nil
}

func (h *Handler) deletePair(t Target) (bool, error) {
	if _, _, ok := t.Selection(); ok {
		return false, nil
	}
	doc := t.Document()
	cursor := t.Cursor()
	runes := doc.LineRunes(cursor.Line)
	if cursor.Col == 0 || cursor.Col >= len(runes) {
		return false, nil
	}
	if closer, ok := Closer(runes[cursor.Col-1]); !ok || closer != runes[cursor.Col] {
		return false, nil
	}

	doc.BeginEdit("Delete Pair")
	defer doc.EndEdit()

	start := document.Position{Line: cursor.Line, Col: cursor.Col - 1}
	if err := doc.Delete(start, document.Position{Line: cursor.Line, Col: cursor.Col + 1}); err != nil {
		return true, err
	}
	t.SetCursor(start)
	return true, nil
}
