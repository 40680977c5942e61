package terminal

import (
	"errors"
	"fmt"
)

// ErrListenerPanic is matched by errors.Is for every PanicError.
var ErrListenerPanic = errors.New("terminal listener panicked")

// PanicError describes a listener that panicked while handling a line.
// It is only produced when the registry was created with WithRecover.
type PanicError struct {
	// Index is the listener's position in the registry at dispatch time.
	Index int

	// Text is the line being dispatched.
	Text string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("terminal listener %d panicked: %v", e.Index, e.Value)
}

// Is allows errors.Is to match PanicError with ErrListenerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrListenerPanic
}
