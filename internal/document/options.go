package document

import "github.com/dshills/codepad/internal/renderer/highlight"

// LineEnding specifies the line ending style written on save.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the display name of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingCR:
		return "CR"
	default:
		return "LF"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// DetectLineEnding returns the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
			crlfCount++
			i++
		case text[i] == '\r':
			crCount++
		case text[i] == '\n':
			lfCount++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF
	}
	if crCount > 0 && crCount > lfCount {
		return LineEndingCR
	}
	return LineEndingLF
}

// Option configures a Document.
type Option func(*Document)

// WithRuleSet sets the highlighting rules. A nil set means plain text.
func WithRuleSet(rs *highlight.RuleSet) Option {
	return func(d *Document) {
		d.rules = rs
	}
}

// WithLineEnding overrides the detected line ending.
func WithLineEnding(le LineEnding) Option {
	return func(d *Document) {
		d.lineEnding = le
	}
}

// WithMaxUndo limits the undo history.
func WithMaxUndo(n int) Option {
	return func(d *Document) {
		d.maxUndo = n
	}
}
