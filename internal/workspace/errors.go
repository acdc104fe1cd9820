package workspace

import (
	"errors"
	"fmt"
)

// Workspace errors.
var (
	// ErrCancelled indicates the user cancelled a prompt.
	ErrCancelled = errors.New("cancelled")

	// ErrNoPath indicates an untitled pane was saved without a path.
	ErrNoPath = errors.New("no file path")

	// ErrPaneNotFound indicates a pane index or path that is not open.
	ErrPaneNotFound = errors.New("pane not found")

	// ErrIsDirectory indicates a directory was given where a file was expected.
	ErrIsDirectory = errors.New("is a directory")

	// ErrBinaryFile indicates a file that does not look like text.
	ErrBinaryFile = errors.New("binary file")

	// ErrAlreadyOpen indicates a save target that another pane is editing.
	ErrAlreadyOpen = errors.New("already open in another tab")
)

// OperationError represents a failed file operation. The frontend shows it
// as a warning; the workspace is left as it was before the operation.
type OperationError struct {
	Op     string // Operation name (e.g., "save", "open")
	Target string // File path or pane name
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for OperationError.
// Matches both the wrapper itself and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
