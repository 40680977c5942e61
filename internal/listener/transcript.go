package listener

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Transcript appends solver output to <dir>/<session>.log exactly as the
// engine would have printed it. Each transcript gets a fresh session ID.
type Transcript struct {
	mu      sync.Mutex
	id      string
	path    string
	file    *os.File
	err     error
	written int64
}

// NewTranscript creates the transcript file in dir, creating dir if needed.
func NewTranscript(dir string) (*Transcript, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating transcript dir: %w", err)
	}

	id := uuid.New().String()
	path := filepath.Join(dir, id+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}

	return &Transcript{id: id, path: path, file: f}, nil
}

// ID returns the session ID.
func (t *Transcript) ID() string { return t.id }

// Path returns the transcript file path.
func (t *Transcript) Path() string { return t.path }

// Output implements terminal.Listener.
func (t *Transcript) Output(text string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file == nil || t.err != nil {
		return false
	}
	n, err := t.file.WriteString(text)
	t.written += int64(n)
	if err != nil {
		t.err = fmt.Errorf("writing transcript %s: %w", t.path, err)
	}
	return false
}

// Written returns the number of bytes written.
func (t *Transcript) Written() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written
}

// Close flushes and closes the file. It returns the first write error, if any.
func (t *Transcript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file == nil {
		return t.err
	}
	err := t.file.Close()
	t.file = nil
	if t.err != nil {
		return t.err
	}
	return err
}
