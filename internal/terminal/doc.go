// Package terminal bridges the solver's single text-output hook to any
// number of Go listeners.
//
// The native engine exposes one global callback slot for its console output.
// A Registry owns that slot on behalf of the application: the first call to
// Add installs the registry's dispatch gate through an Installer, and from
// then on every line the engine would print is offered to each registered
// listener in registration order.
//
// # Voting
//
// Each listener votes on whether the line should still be printed by the
// engine. Votes are OR-ed: one true vote lets the engine print, and only a
// unanimous false suppresses it. Every listener sees every line; there is no
// short-circuit, so listeners that log or record output never miss a line.
// With no listeners registered the gate always allows output.
//
//	reg := terminal.New(glpk.TermHook{})
//	reg.Add(terminal.Func(func(line string) bool {
//	    log.Print(line)
//	    return false // already handled
//	}))
//
// # Lifecycle
//
// Installation happens once per registry and is never undone. Removing the
// last listener leaves the hook in place and the gate falls back to allowing
// output.
//
// # Thread Safety
//
// Add, Remove and Dispatch may be called from any goroutine. Dispatch works on
// a snapshot of the listener sequence, so a listener may add or remove
// listeners from inside Output; the change applies to the next line.
//
// # Failures
//
// By default a panicking listener is not isolated: the panic unwinds out of
// Dispatch into the engine's calling context. WithRecover turns a panic into
// a logged PanicError and a false vote instead.
package terminal
