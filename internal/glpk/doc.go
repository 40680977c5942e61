// Package glpk connects the GNU Linear Programming Kit's terminal output to a
// terminal.Registry.
//
// GLPK has a single process-wide terminal hook (glp_term_hook). TermHook is
// the terminal.Installer that claims it: once installed, every piece of text
// GLPK would print is routed through the registry's gate, and the returned
// status decides whether GLPK also prints it to stdout.
//
// The cgo binding is only compiled with the glpk build tag:
//
//	go build -tags glpk ./...
//
// Without the tag, TermHook still records the gate but no native hook exists,
// and SolveFile and Version report ErrUnavailable.
//
// Text passed through the hook is forwarded exactly as GLPK produced it,
// usually one line including its trailing newline.
package glpk
