package replay_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/solverterm/internal/replay"
	"github.com/dshills/solverterm/internal/terminal"
)

const solverLog = `GLPK Simplex Optimizer 5.0
*     0: obj =   0.000000000e+00 inf =   0.000e+00 (3)
*     4: obj =   1.536750000e+02 inf =   0.000e+00 (0)
OPTIMAL LP SOLUTION FOUND`

// TestEmitWithoutHook verifies lines are allowed when nothing is installed.
func TestEmitWithoutHook(t *testing.T) {
	e := replay.NewEngine()
	if got := e.Emit("x"); got != terminal.StatusAllow {
		t.Errorf("Emit = %v, want allow", got)
	}
}

// TestRunEmptyRegistry verifies every line is printed when no listener is
// registered, even though the hook is installed.
func TestRunEmptyRegistry(t *testing.T) {
	e := replay.NewEngine()
	reg := terminal.New(e)
	l := terminal.Func(func(string) bool { return false })
	reg.Add(l)
	reg.Remove(l)

	var out bytes.Buffer
	stats, err := e.Run(context.Background(), strings.NewReader(solverLog), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Lines != 4 || stats.Shown != 4 || stats.Suppressed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if out.String() != solverLog {
		t.Errorf("output = %q", out.String())
	}
	if e.Installs() != 1 {
		t.Errorf("Installs = %d, want 1", e.Installs())
	}
}

// TestRunFiltersOutput verifies suppressed lines are not printed.
func TestRunFiltersOutput(t *testing.T) {
	e := replay.NewEngine()
	reg := terminal.New(e)

	var seen []string
	reg.Add(terminal.ListenerFunc(func(line string) bool {
		seen = append(seen, line)
		return !strings.HasPrefix(line, "*")
	}))

	var out bytes.Buffer
	stats, err := e.Run(context.Background(), strings.NewReader(solverLog), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(seen) != 4 {
		t.Errorf("listener saw %d lines, want 4", len(seen))
	}
	if stats.Shown != 2 || stats.Suppressed != 2 {
		t.Errorf("stats = %+v", stats)
	}
	want := "GLPK Simplex Optimizer 5.0\nOPTIMAL LP SOLUTION FOUND"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

// TestRunPassesNewlines verifies the hook sees each line with its newline and
// a final unterminated line as is.
func TestRunPassesNewlines(t *testing.T) {
	e := replay.NewEngine()
	reg := terminal.New(e)
	var seen []string
	reg.Add(terminal.ListenerFunc(func(text string) bool {
		seen = append(seen, text)
		return true
	}))

	var out bytes.Buffer
	if _, err := e.Run(context.Background(), strings.NewReader("a\n\nb"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"a\n", "\n", "b"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %q, want %q", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
	if out.String() != "a\n\nb" {
		t.Errorf("output = %q", out.String())
	}
}

// TestRunCancelled verifies Run stops when the context is cancelled.
func TestRunCancelled(t *testing.T) {
	e := replay.NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	stats, err := e.Run(ctx, strings.NewReader(solverLog), &out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if stats.Lines != 0 || out.Len() != 0 {
		t.Errorf("stats = %+v, output = %q", stats, out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

// TestRunWriteError verifies console write failures are reported.
func TestRunWriteError(t *testing.T) {
	e := replay.NewEngine()
	_, err := e.Run(context.Background(), strings.NewReader("x\n"), failingWriter{})
	if err == nil {
		t.Fatal("expected error")
	}
}
