package listener_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/solverterm/internal/listener"
	"github.com/dshills/solverterm/internal/terminal"
)

// Compile-time interface checks.
var (
	_ terminal.Listener = listener.Echo(true)
	_ terminal.Listener = (*listener.Capture)(nil)
	_ terminal.Listener = (*listener.Counter)(nil)
	_ terminal.Listener = (*listener.Writer)(nil)
	_ terminal.Listener = (*listener.Transcript)(nil)
	_ terminal.Listener = (*listener.Pattern)(nil)
	_ terminal.Listener = (*listener.Script)(nil)
)

// TestEcho verifies the constant vote.
func TestEcho(t *testing.T) {
	if !listener.Echo(true).Output("x") {
		t.Error("Echo(true) voted false")
	}
	if listener.Echo(false).Output("x") {
		t.Error("Echo(false) voted true")
	}
}

// TestCapture verifies lines are recorded without line endings.
func TestCapture(t *testing.T) {
	c := listener.NewCapture()
	if c.Output("first\n") {
		t.Error("Capture voted true")
	}
	c.Output("second")

	lines := c.Lines()
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Errorf("Lines = %q", lines)
	}

	c.Reset()
	if len(c.Lines()) != 0 {
		t.Error("Reset did not clear lines")
	}
}

// TestCounter verifies counting through a registry with duplicates.
func TestCounter(t *testing.T) {
	reg := terminal.New(nil)
	c := &listener.Counter{}
	reg.Add(c)
	reg.Add(c)

	reg.Dispatch("a")
	reg.Dispatch("b")
	if c.Count() != 4 {
		t.Errorf("Count = %d, want 4", c.Count())
	}
}

// TestWriterKeepsFragments verifies text is copied unchanged, so fragments
// of one line are rejoined.
func TestWriterKeepsFragments(t *testing.T) {
	var buf bytes.Buffer
	w := listener.NewWriter(&buf)
	w.Output("one\n")
	w.Output("*     0: obj = ")
	w.Output("1.000000000e+00\n")
	w.Output("tail")

	if want := "one\n*     0: obj = 1.000000000e+00\ntail"; buf.String() != want {
		t.Errorf("written = %q, want %q", buf.String(), want)
	}
	if w.Err() != nil {
		t.Errorf("Err = %v", w.Err())
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

// TestWriterError verifies the first write error is kept.
func TestWriterError(t *testing.T) {
	w := listener.NewWriter(brokenWriter{})
	if w.Output("x") {
		t.Error("Writer voted true")
	}
	if w.Err() == nil || !strings.Contains(w.Err().Error(), "broken pipe") {
		t.Errorf("Err = %v", w.Err())
	}
}

// TestTranscript verifies output lands unchanged in a session-named file,
// with partial lines joined the way the engine prints them.
func TestTranscript(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	tr, err := listener.NewTranscript(dir)
	if err != nil {
		t.Fatalf("NewTranscript: %v", err)
	}
	other, err := listener.NewTranscript(dir)
	if err != nil {
		t.Fatalf("NewTranscript: %v", err)
	}
	defer other.Close()

	if tr.ID() == other.ID() {
		t.Error("two transcripts share a session ID")
	}
	if filepath.Base(tr.Path()) != tr.ID()+".log" {
		t.Errorf("Path = %s", tr.Path())
	}

	tr.Output("GLPK Integer Optimizer\n")
	tr.Output("+     9: mip =   1.536750000e+02")
	tr.Output(" >=     tree is empty\n")
	if tr.Written() == 0 {
		t.Error("Written = 0")
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if tr.Output("after close") {
		t.Error("Transcript voted true")
	}

	data, err := os.ReadFile(tr.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "GLPK Integer Optimizer\n+     9: mip =   1.536750000e+02 >=     tree is empty\n"
	if string(data) != want {
		t.Errorf("transcript = %q, want %q", data, want)
	}
}

// TestPattern verifies highlight beats suppress and the fallback applies.
func TestPattern(t *testing.T) {
	p, err := listener.NewPattern(
		[]string{`^OPTIMAL`, `SOLUTION FOUND`},
		[]string{`^[*+ ]\s*\d+:`, `SOLUTION`},
		true,
	)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}

	tests := []struct {
		line string
		want bool
	}{
		{"OPTIMAL LP SOLUTION FOUND\n", true},
		{"*     4: obj =   1.5e+02 inf =   0.000e+00 (0)", false},
		{"PROBLEM HAS NO PRIMAL FEASIBLE SOLUTION", false},
		{"Reading problem data from 'transport.lp'...", true},
	}
	for _, tt := range tests {
		if got := p.Output(tt.line); got != tt.want {
			t.Errorf("Output(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

// TestPatternInvalid verifies bad expressions are rejected.
func TestPatternInvalid(t *testing.T) {
	if _, err := listener.NewPattern(nil, []string{"("}, false); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
