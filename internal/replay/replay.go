// Package replay is a pure-Go stand-in for the solver's terminal output.
//
// An Engine behaves like the native library's output path: it owns a single
// hook slot, offers every line to the installed gate, and performs the
// default console output only when the gate allows it. It is used by tests
// and by the command line tool to replay captured solver logs through a
// listener configuration without linking the native library.
package replay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dshills/solverterm/internal/terminal"
)

// Stats summarizes a replay run.
type Stats struct {
	Lines      int
	Shown      int
	Suppressed int
}

// Engine emulates the native engine's output hook.
type Engine struct {
	mu       sync.Mutex
	gate     terminal.Gate
	installs int
}

// NewEngine creates an engine with an empty hook slot.
func NewEngine() *Engine {
	return &Engine{}
}

// InstallHook implements terminal.Installer.
// A later install replaces the previous gate, as the native slot does.
func (e *Engine) InstallHook(gate terminal.Gate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gate = gate
	e.installs++
}

// Installs returns how many times a hook was installed.
func (e *Engine) Installs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.installs
}

// Emit passes one line through the hook and returns the resulting status.
// With no hook installed the line is always allowed.
func (e *Engine) Emit(text string) terminal.Status {
	e.mu.Lock()
	gate := e.gate
	e.mu.Unlock()

	if gate == nil {
		return terminal.StatusAllow
	}
	return gate(text)
}

// Run reads lines from r and emits each one, including its trailing newline,
// the way the native engine hands text to its hook. Text the hook allows is
// written to w unchanged. Run stops at end of input or when ctx is cancelled.
func (e *Engine) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	br := bufio.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		text, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return stats, fmt.Errorf("reading solver log: %w", readErr)
		}
		if text != "" {
			stats.Lines++
			if e.Emit(text) == terminal.StatusSuppress {
				stats.Suppressed++
			} else {
				stats.Shown++
				if _, err := io.WriteString(w, text); err != nil {
					return stats, fmt.Errorf("writing console output: %w", err)
				}
			}
		}
		if readErr == io.EOF {
			return stats, nil
		}
	}
}
