package history

import (
	"time"
	"unicode/utf8"
)

// Operation represents a single undoable replacement.
// Offsets are in runes from the start of the document.
type Operation struct {
	Offset  int    // Where the edit starts
	OldText string // Text that was replaced (for undo)
	NewText string // Text that was inserted (for redo)

	// Metadata
	Timestamp time.Time // When the operation occurred
}

// NewReplaceOperation creates an operation replacing oldText at offset with newText.
func NewReplaceOperation(offset int, oldText, newText string) *Operation {
	return &Operation{
		Offset:    offset,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// NewInsertOperation creates an operation for an insertion.
func NewInsertOperation(offset int, text string) *Operation {
	return NewReplaceOperation(offset, "", text)
}

// NewDeleteOperation creates an operation for a deletion.
func NewDeleteOperation(offset int, deleted string) *Operation {
	return NewReplaceOperation(offset, deleted, "")
}

// IsInsert returns true if this operation is a pure insertion.
func (op *Operation) IsInsert() bool {
	return op.OldText == "" && op.NewText != ""
}

// IsDelete returns true if this operation is a pure deletion.
func (op *Operation) IsDelete() bool {
	return op.OldText != "" && op.NewText == ""
}

// IsNoop returns true if this operation makes no changes.
func (op *Operation) IsNoop() bool {
	return op.OldText == op.NewText
}

// OldEnd returns the offset just past the replaced text.
func (op *Operation) OldEnd() int {
	return op.Offset + utf8.RuneCountInString(op.OldText)
}

// NewEnd returns the offset just past the inserted text.
func (op *Operation) NewEnd() int {
	return op.Offset + utf8.RuneCountInString(op.NewText)
}

// Delta returns the change in document length in runes.
func (op *Operation) Delta() int {
	return utf8.RuneCountInString(op.NewText) - utf8.RuneCountInString(op.OldText)
}

// Invert returns an operation that undoes this one.
func (op *Operation) Invert() *Operation {
	return &Operation{
		Offset:    op.Offset,
		OldText:   op.NewText,
		NewText:   op.OldText,
		Timestamp: time.Now(),
	}
}

// OperationInfo provides read-only info about an undo entry.
type OperationInfo struct {
	Description string    // Group name, or "" for a single edit
	Timestamp   time.Time // When the entry was recorded
	Delta       int       // Positive for insertions, negative for deletions
}

// OperationList is a collection of operations applied together.
type OperationList []*Operation

// Invert returns a list of inverse operations in reverse order.
func (ops OperationList) Invert() OperationList {
	result := make(OperationList, len(ops))
	for i, op := range ops {
		result[len(ops)-1-i] = op.Invert()
	}
	return result
}

// TotalDelta returns the total change in document length.
func (ops OperationList) TotalDelta() int {
	total := 0
	for _, op := range ops {
		total += op.Delta()
	}
	return total
}
