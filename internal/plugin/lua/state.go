package lua

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single script run.
const DefaultExecutionTimeout = 2 * time.Second

// State wraps a sandboxed gopher-lua state. It is not safe for concurrent
// use; languages are loaded once at start-up.
type State struct {
	L *lua.LState

	executionTimeout time.Duration
	sandbox          *Sandbox
	closed           bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout for a script run. Zero disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{executionTimeout: DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.sandbox = NewSandbox(s.L)
	s.sandbox.Install()
	return s
}

// Eval runs src and returns its first return value, or LNil.
func (s *State) Eval(src, chunkName string) (lua.LValue, error) {
	if s.closed {
		return lua.LNil, ErrStateClosed
	}
	fn, err := s.L.Load(strings.NewReader(src), chunkName)
	if err != nil {
		return lua.LNil, err
	}
	return s.call(fn)
}

// EvalFile runs the script at path and returns its first return value.
func (s *State) EvalFile(path string) (lua.LValue, error) {
	if s.closed {
		return lua.LNil, ErrStateClosed
	}
	fn, err := s.L.LoadFile(path)
	if err != nil {
		return lua.LNil, err
	}
	return s.call(fn)
}

func (s *State) call(fn *lua.LFunction) (ret lua.LValue, err error) {
	if s.executionTimeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.executionTimeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
		defer func() {
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				err = fmt.Errorf("%w after %s", ErrExecutionTimeout, s.executionTimeout)
			}
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	top := s.L.GetTop()
	s.L.Push(fn)
	if err := s.L.PCall(0, 1, nil); err != nil {
		s.L.SetTop(top)
		return lua.LNil, err
	}
	ret = s.L.Get(-1)
	s.L.SetTop(top)
	return ret, nil
}

// Close releases the Lua state.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
