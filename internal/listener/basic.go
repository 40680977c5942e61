package listener

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// Echo votes a constant. Echo(true) keeps the engine's console output on
// while other listeners observe it.
type Echo bool

// Output implements terminal.Listener.
func (e Echo) Output(string) bool { return bool(e) }

// Capture keeps every line in memory.
type Capture struct {
	mu    sync.Mutex
	lines []string
}

// NewCapture creates an empty capture.
func NewCapture() *Capture {
	return &Capture{}
}

// Output implements terminal.Listener.
func (c *Capture) Output(text string) bool {
	c.mu.Lock()
	c.lines = append(c.lines, trimEOL(text))
	c.mu.Unlock()
	return false
}

// Lines returns a copy of the captured lines.
func (c *Capture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Reset discards captured lines.
func (c *Capture) Reset() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Counter counts lines.
type Counter struct {
	n atomic.Int64
}

// Output implements terminal.Listener.
func (c *Counter) Output(string) bool {
	c.n.Add(1)
	return false
}

// Count returns the number of lines seen.
func (c *Counter) Count() int64 {
	return c.n.Load()
}

// Writer copies output to w unchanged. Write errors are kept and returned by
// Err; output continues to be attempted.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

// NewWriter creates a listener writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Output implements terminal.Listener.
func (w *Writer) Output(text string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.w, text); err != nil && w.err == nil {
		w.err = fmt.Errorf("writing solver output: %w", err)
	}
	return false
}

// Err returns the first write error.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}
