//go:build !glpk

package glpk

import (
	"errors"
	"testing"

	"github.com/dshills/solverterm/internal/terminal"
)

// TestTermHookRoutesToRegistry verifies native text reaches the registry.
func TestTermHookRoutesToRegistry(t *testing.T) {
	t.Cleanup(func() { gate.Store(nil) })

	if got := dispatch("before"); got != terminal.StatusAllow {
		t.Errorf("dispatch without hook = %v, want allow", got)
	}

	reg := terminal.New(TermHook{})
	var seen []string
	reg.Add(terminal.ListenerFunc(func(text string) bool {
		seen = append(seen, text)
		return false
	}))

	if got := dispatch("Integer optimization begins...\n"); got != terminal.StatusSuppress {
		t.Errorf("dispatch = %v, want suppress", got)
	}
	if len(seen) != 1 || seen[0] != "Integer optimization begins...\n" {
		t.Errorf("seen = %q", seen)
	}
}

// TestUnavailable verifies the stub reports the missing library.
func TestUnavailable(t *testing.T) {
	if _, err := SolveFile("m.lp", FormatCPLEX); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SolveFile err = %v, want ErrUnavailable", err)
	}
	if _, err := Version(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Version err = %v, want ErrUnavailable", err)
	}
}
