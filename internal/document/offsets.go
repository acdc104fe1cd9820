package document

import "strings"

// Len returns the document length in runes, counting each line break as one.
func (d *Document) Len() int {
	n := len(d.lines) - 1
	for _, ln := range d.lines {
		n += len(ln.text)
	}
	return n
}

// End returns the position after the last character.
func (d *Document) End() Position {
	last := len(d.lines) - 1
	return Position{Line: last, Col: len(d.lines[last].text)}
}

// Clamp moves p to the nearest valid position.
func (d *Document) Clamp(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(d.lines) {
		return d.End()
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len(d.lines[p.Line].text); p.Col > n {
		p.Col = n
	}
	return p
}

// Offset converts a position to a rune offset. The position is clamped first.
func (d *Document) Offset(p Position) int {
	p = d.Clamp(p)
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(d.lines[i].text) + 1
	}
	return off + p.Col
}

// PositionAt converts a rune offset to a position, clamping to the document.
func (d *Document) PositionAt(offset int) Position {
	if offset <= 0 {
		return Position{}
	}
	for i, ln := range d.lines {
		if offset <= len(ln.text) {
			return Position{Line: i, Col: offset}
		}
		offset -= len(ln.text) + 1
	}
	return d.End()
}

// TextRange returns the text between two positions, in either order.
func (d *Document) TextRange(start, end Position) string {
	start, end = Ordered(d.Clamp(start), d.Clamp(end))
	if start.Line == end.Line {
		return string(d.lines[start.Line].text[start.Col:end.Col])
	}

	var sb strings.Builder
	sb.WriteString(string(d.lines[start.Line].text[start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(d.lines[i].text))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(d.lines[end.Line].text[:end.Col]))
	return sb.String()
}

// LeadingWhitespace returns the indentation width of line i, counting a tab
// as tabWidth columns.
func (d *Document) LeadingWhitespace(i, tabWidth int) int {
	width := 0
	for _, r := range d.LineRunes(i) {
		switch r {
		case ' ':
			width++
		case '\t':
			width += tabWidth
		default:
			return width
		}
	}
	return width
}
