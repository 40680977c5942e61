package listener

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultScriptTimeout bounds a single call into the script.
const DefaultScriptTimeout = 100 * time.Millisecond

// ScriptFunc is the global Lua function a script must define.
const ScriptFunc = "output"

var (
	// ErrScriptClosed is returned when reloading a closed script.
	ErrScriptClosed = errors.New("script listener is closed")

	// ErrNoOutputFunc is returned when the script does not define output(line).
	ErrNoOutputFunc = errors.New("script does not define function " + ScriptFunc)
)

// Logger receives script failures.
type Logger interface {
	Warn(msg string, args ...any)
}

// ScriptOption configures a Script.
type ScriptOption func(*Script)

// WithScriptTimeout sets the per-line execution timeout.
func WithScriptTimeout(d time.Duration) ScriptOption {
	return func(s *Script) {
		s.timeout = d
	}
}

// WithScriptLogger sets the logger for runtime errors.
func WithScriptLogger(l Logger) ScriptOption {
	return func(s *Script) {
		s.logger = l
	}
}

// Script votes by calling a Lua function:
//
//	function output(line)
//	  return line:find("^Integer") ~= nil
//	end
//
// The state is sandboxed: only the base, table, string and math libraries
// are opened, and file loading functions are removed. A runtime error in the
// script is logged and counts as a false vote.
//
// gopher-lua states are not goroutine-safe; calls are serialized.
type Script struct {
	mu      sync.Mutex
	path    string
	L       *lua.LState
	timeout time.Duration
	logger  Logger
	failed  int
	closed  bool
}

// NewScript loads the script at path.
func NewScript(path string, opts ...ScriptOption) (*Script, error) {
	s := &Script{
		path:    path,
		timeout: DefaultScriptTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	L, err := loadScript(path)
	if err != nil {
		return nil, err
	}
	s.L = L
	return s, nil
}

// Path returns the script path.
func (s *Script) Path() string { return s.path }

// Output implements terminal.Listener.
func (s *Script) Output(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	vote, err := s.call(trimEOL(text))
	if err != nil {
		s.failed++
		if s.logger != nil {
			s.logger.Warn("script %s: %v", s.path, err)
		}
		return false
	}
	return vote
}

// Errors returns the number of failed calls.
func (s *Script) Errors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Reload re-reads the script from disk. On failure the previous version
// stays active.
func (s *Script) Reload() error {
	L, err := loadScript(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		L.Close()
		return ErrScriptClosed
	}
	old := s.L
	s.L = L
	old.Close()
	return nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// call runs output(line) and returns its truthiness.
func (s *Script) call(line string) (vote bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	fn := s.L.GetGlobal(ScriptFunc)
	if fn.Type() != lua.LTFunction {
		return false, ErrNoOutputFunc
	}

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}

	top := s.L.GetTop()
	defer s.L.SetTop(top)
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(line)); err != nil {
		return false, err
	}
	return lua.LVAsBool(s.L.Get(-1)), nil
}

// loadScript creates a sandboxed state and runs the file in it.
func loadScript(path string) (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	if L.GetGlobal(ScriptFunc).Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, ErrNoOutputFunc)
	}
	return L, nil
}

// openSafeLibraries opens only libraries without file or process access.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}
