//go:build !glpk

package glpk

func installNative() {}

// Version returns ErrUnavailable without the glpk build tag.
func Version() (string, error) {
	return "", ErrUnavailable
}

// SolveFile returns ErrUnavailable without the glpk build tag.
func SolveFile(path string, format Format) (Result, error) {
	return Result{}, ErrUnavailable
}
