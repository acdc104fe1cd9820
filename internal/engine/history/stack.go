package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Target is the text an entry is replayed against. ApplyOperation must
// replace op.OldText at op.Offset with op.NewText without recording it.
type Target interface {
	ApplyOperation(op *Operation) error
}

// undoEntry is one undo unit.
type undoEntry struct {
	name      string
	ops       OperationList
	timestamp time.Time
}

// History manages undo/redo state for a document.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state
	depth     int
	groupName string
	groupOps  OperationList

	// clean is the undo depth that matches the saved file, or -1 when that
	// state can no longer be reached.
	clean int

	// Configuration
	maxEntries int
}

// New creates a history keeping at most maxEntries undo entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000 // Default
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Record adds an already-applied operation. Inside a group it joins the group;
// otherwise it becomes its own entry. Either way the redo stack is cleared.
func (h *History) Record(op *Operation) {
	if op == nil || op.IsNoop() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropRedoLocked()
	if h.depth > 0 {
		h.groupOps = append(h.groupOps, op)
		return
	}
	h.pushLocked(&undoEntry{ops: OperationList{op}, timestamp: op.Timestamp})
}

func (h *History) dropRedoLocked() {
	if len(h.redoStack) == 0 {
		return
	}
	if h.clean > len(h.undoStack) {
		h.clean = -1
	}
	h.redoStack = nil
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(e *undoEntry) {
	h.undoStack = append(h.undoStack, e)

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
		if h.clean >= 0 {
			h.clean -= excess
			if h.clean < 0 {
				h.clean = -1
			}
		}
	}
}

// Undo reverts the last entry and returns the offset the cursor should move
// to: the end of the restored text of the entry's first operation.
func (h *History) Undo(t Target) (int, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return 0, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	inverse := entry.ops.Invert()
	for i, op := range inverse {
		if err := t.ApplyOperation(op); err != nil {
			// Roll back what was applied and restore the entry.
			for j := i - 1; j >= 0; j-- {
				_ = t.ApplyOperation(inverse[j].Invert())
			}
			h.mu.Lock()
			h.undoStack = append(h.undoStack, entry)
			h.mu.Unlock()
			return 0, err
		}
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, entry)
	h.mu.Unlock()
	return inverse[len(inverse)-1].NewEnd(), nil
}

// Redo reapplies the last undone entry and returns the offset just past the
// text inserted by its final operation.
func (h *History) Redo(t Target) (int, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return 0, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	for i, op := range entry.ops {
		if err := t.ApplyOperation(op); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = t.ApplyOperation(entry.ops[j].Invert())
			}
			h.mu.Lock()
			h.redoStack = append(h.redoStack, entry)
			h.mu.Unlock()
			return 0, err
		}
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.mu.Unlock()
	return entry.ops[len(entry.ops)-1].NewEnd(), nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// MarkClean records the current state as matching the saved file.
func (h *History) MarkClean() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clean = len(h.undoStack)
}

// IsClean reports whether the history is at the state last marked clean and
// no group is collecting edits.
func (h *History) IsClean() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clean == len(h.undoStack) && len(h.groupOps) == 0
}

// Clear removes all undo/redo history and marks the current state clean.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.depth = 0
	h.groupOps = nil
	h.clean = 0
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo entry without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

func (e *undoEntry) info() OperationInfo {
	return OperationInfo{
		Description: e.name,
		Timestamp:   e.timestamp,
		Delta:       e.ops.TotalDelta(),
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
