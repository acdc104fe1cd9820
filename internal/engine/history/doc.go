// Package history provides undo/redo for documents.
//
// An Operation records a single replacement in rune offsets: the text that was
// removed and the text that was inserted. The History type keeps undo and redo
// stacks of entries, where each entry is one or more operations that undo
// together.
//
//	h := history.New(1000) // Max 1000 undo entries
//
//	h.Record(history.NewReplaceOperation(4, "", "    "))
//	h.Undo(doc)
//	h.Redo(doc)
//
// # Grouping
//
// Operations recorded between BeginGroup and EndGroup form a single entry:
//
//	defer h.GroupScope("Indent").End()
//	// ... multiple edits ...
//
// Groups nest; only the outermost EndGroup closes the entry.
//
// # Clean state
//
// MarkClean remembers the current position in the undo stack. IsClean reports
// whether undo/redo has returned to it, which is how a document knows it
// matches the file on disk.
package history
