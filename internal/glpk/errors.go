package glpk

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when the binary was built without the glpk tag.
	ErrUnavailable = errors.New("glpk: native library not linked (build with -tags glpk)")

	// ErrUnknownFormat is returned for a model format that cannot be inferred.
	ErrUnknownFormat = errors.New("glpk: unknown model format")
)

// SolveError reports a failed solver stage.
type SolveError struct {
	// Stage names the step that failed, such as "read" or "intopt".
	Stage string

	// Path is the model file.
	Path string

	// Code is the GLPK return code. Zero when the failure was a fatal
	// library error caught by the error hook.
	Code int

	// Fatal is set when GLPK raised a fatal error instead of returning.
	Fatal bool
}

// Error implements the error interface.
func (e *SolveError) Error() string {
	if e.Fatal {
		return fmt.Sprintf("glpk: fatal error during %s of %s", e.Stage, e.Path)
	}
	return fmt.Sprintf("glpk: %s of %s failed with code %d", e.Stage, e.Path, e.Code)
}
