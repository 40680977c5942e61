package terminal

import (
	"reflect"
	"runtime/debug"
	"sync"
)

// Logger is the logging surface used by the registry.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for installation and recovery messages.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithRecover isolates listeners from each other. A listener that panics
// counts as a false vote, the panic is reported to onPanic as a *PanicError
// and the remaining listeners still run. onPanic may be nil.
func WithRecover(onPanic func(err *PanicError)) Option {
	return func(r *Registry) {
		r.isolate = true
		r.onPanic = onPanic
	}
}

// Registry holds the ordered listener sequence behind one engine output hook.
type Registry struct {
	mu        sync.RWMutex
	listeners []Listener
	installer Installer
	installed bool
	install   sync.Once

	logger  Logger
	isolate bool
	onPanic func(err *PanicError)
}

// New creates an empty registry. The installer is invoked on the first Add.
// A nil installer is allowed; the registry then only dispatches when Dispatch
// is called directly.
func New(installer Installer, opts ...Option) *Registry {
	r := &Registry{
		listeners: make([]Listener, 0),
		installer: installer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add appends a listener. The same listener may be added more than once and
// is then invoked once per registration. A nil listener is ignored.
//
// The first Add installs the registry's gate into the engine, and every Add
// returns only after installation has finished. Later calls never reinstall
// it. A listener must not call Add from a line the engine emits while the
// hook is being installed.
func (r *Registry) Add(l Listener) {
	if l == nil {
		r.logDebug("ignoring nil terminal listener")
		return
	}

	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	n := len(r.listeners)
	r.mu.Unlock()

	// Installed outside the lock so an engine that echoes a banner line
	// through the gate during installation does not deadlock.
	r.install.Do(r.installHook)
	r.logDebug("terminal listener added (%d registered)", n)
}

func (r *Registry) installHook() {
	if r.installer != nil {
		r.installer.InstallHook(r.Dispatch)
	}
	r.mu.Lock()
	r.installed = true
	r.mu.Unlock()
	r.logDebug("terminal hook installed")
}

// Remove removes the earliest registration of l.
// Returns false if l is not registered. The engine hook stays installed.
func (r *Registry) Remove(l Listener) bool {
	if !isComparable(l) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.listeners {
		if isComparable(existing) && existing == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// Installed reports whether the gate has been installed into the engine.
// It turns true once the Installer has returned.
func (r *Registry) Installed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.installed
}

// Dispatch offers text to every listener in registration order and returns
// the status the engine should act on. It is the gate handed to the
// Installer and is not meant to be called by application code, except in
// tests and engine stand-ins.
func (r *Registry) Dispatch(text string) Status {
	r.mu.RLock()
	listeners := make([]Listener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.RUnlock()

	if len(listeners) == 0 {
		return StatusAllow
	}

	show := false
	for i, l := range listeners {
		if l == nil {
			continue
		}
		if r.isolate {
			show = r.safeOutput(i, l, text) || show
			continue
		}
		show = l.Output(text) || show
	}
	return statusOf(show)
}

// safeOutput calls l.Output and converts a panic into a false vote.
func (r *Registry) safeOutput(index int, l Listener, text string) (vote bool) {
	defer func() {
		if v := recover(); v != nil {
			err := &PanicError{
				Index: index,
				Text:  text,
				Value: v,
				Stack: string(debug.Stack()),
			}
			if r.logger != nil {
				r.logger.Warn("%v", err)
			}
			if r.onPanic != nil {
				r.onPanic(err)
			}
			vote = false
		}
	}()
	return l.Output(text)
}

func (r *Registry) logDebug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

// isComparable reports whether l can be compared with == without panicking.
// Function-typed listeners are registered by value and cannot be matched.
func isComparable(l Listener) bool {
	if l == nil {
		return true
	}
	return reflect.TypeOf(l).Comparable()
}
