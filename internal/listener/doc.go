// Package listener provides ready-made terminal.Listener implementations.
//
// Listeners differ only in their vote and their side effects:
//
//   - Echo votes a constant and does nothing else.
//   - Capture and Counter record output and vote false.
//   - Writer copies output to an io.Writer and votes false.
//   - Transcript appends output to a per-session log file and votes false.
//   - Pattern votes by matching regular expressions.
//   - Script delegates the vote to a Lua function.
//
// Solver text may carry a trailing newline. Listeners that match or display
// text strip it; listeners that copy text preserve it.
package listener
