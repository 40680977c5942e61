package glpk

import (
	"sync/atomic"

	"github.com/dshills/solverterm/internal/terminal"
)

// gate is the process-wide target of the native terminal hook.
var gate atomic.Pointer[terminal.Gate]

// TermHook installs a gate into GLPK's terminal hook.
//
// The native slot is global, so installing from a second registry replaces
// the first one's gate.
type TermHook struct{}

// InstallHook implements terminal.Installer.
func (TermHook) InstallHook(g terminal.Gate) {
	gate.Store(&g)
	installNative()
}

// dispatch routes native text to the installed gate.
func dispatch(text string) terminal.Status {
	g := gate.Load()
	if g == nil || *g == nil {
		return terminal.StatusAllow
	}
	return (*g)(text)
}
