package app

import (
	"errors"
	"fmt"
)

// ErrClosed indicates the app was used after Close.
var ErrClosed = errors.New("app is closed")

// OperationError represents an error that occurred while setting up or
// tearing down a listener.
type OperationError struct {
	Op     string // Operation name (e.g., "open", "reload", "close")
	Target string // Target of the operation (e.g., listener name, file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}
