package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrInvalidLanguage is returned for a language table that cannot be
	// turned into a rule set.
	ErrInvalidLanguage = errors.New("invalid language")
)
