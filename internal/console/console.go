// Package console renders solver output in a full-screen terminal view.
//
// A Console is a terminal.Listener: it keeps a scrollback of recent solver
// lines, joining partial writes until their newline arrives, redraws on every
// write, scrolling once the screen is full, and votes
// false so the engine does not also print to stdout underneath the view.
package console

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// DefaultScrollback is the number of lines kept when none is configured.
const DefaultScrollback = 1000

// Styler picks the style for a line.
type Styler func(line string) tcell.Style

// Option configures a Console.
type Option func(*Console)

// WithScrollback sets how many lines are kept.
func WithScrollback(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.scrollback = n
		}
	}
}

// WithTitle sets the text of the header row.
func WithTitle(title string) Option {
	return func(c *Console) {
		c.title = title
	}
}

// WithStyler sets the per-line style function.
func WithStyler(s Styler) Option {
	return func(c *Console) {
		if s != nil {
			c.styler = s
		}
	}
}

// Console draws solver output onto a tcell screen.
type Console struct {
	mu         sync.Mutex
	screen     tcell.Screen
	lines      []string
	open       bool // last line has not seen its newline yet
	total      int
	scrollback int
	title      string
	styler     Styler
}

// New creates a console on an initialized screen.
func New(screen tcell.Screen, opts ...Option) *Console {
	c := &Console{
		screen:     screen,
		scrollback: DefaultScrollback,
		title:      "solver output",
		styler:     DefaultStyler,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTerminal creates and initializes a screen on the controlling terminal.
func NewTerminal(opts ...Option) (*Console, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	c := New(screen, opts...)
	c.mu.Lock()
	c.draw()
	c.mu.Unlock()
	return c, nil
}

// Output implements terminal.Listener. Text without a trailing newline is
// held as an open line that the next call continues.
func (c *Console) Output(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if text == "" {
		return false
	}
	segments := strings.Split(text, "\n")
	closed := segments[len(segments)-1] == ""
	if closed {
		segments = segments[:len(segments)-1]
	}
	for i, seg := range segments {
		seg = strings.TrimSuffix(seg, "\r")
		if i == 0 && c.open && len(c.lines) > 0 {
			c.lines[len(c.lines)-1] += seg
			continue
		}
		c.lines = append(c.lines, seg)
		c.total++
	}
	c.open = !closed
	if over := len(c.lines) - c.scrollback; over > 0 {
		c.lines = append(c.lines[:0], c.lines[over:]...)
	}

	c.draw()
	return false
}

// Lines returns the retained scrollback.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Close restores the terminal.
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen.Fini()
}

// draw repaints the header and as many trailing lines as fit.
func (c *Console) draw() {
	width, height := c.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	c.screen.Clear()

	header := fmt.Sprintf(" %s  [%d lines]", c.title, c.total)
	headerStyle := tcell.StyleDefault.Reverse(true)
	c.fillRow(0, width, headerStyle)
	c.putString(0, 0, width, header, headerStyle)

	rows := height - 1
	start := 0
	if len(c.lines) > rows {
		start = len(c.lines) - rows
	}
	for i, line := range c.lines[start:] {
		c.putString(0, i+1, width, line, c.styler(line))
	}

	c.screen.Show()
}

func (c *Console) fillRow(y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		c.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (c *Console) putString(x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		if r == '\t' {
			r = ' '
		}
		c.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// DefaultStyler bolds result lines and dims iteration progress.
func DefaultStyler(line string) tcell.Style {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.Contains(trimmed, "SOLUTION") || strings.Contains(trimmed, "OPTIMAL"):
		return tcell.StyleDefault.Bold(true)
	case strings.HasPrefix(line, "*") || strings.HasPrefix(line, "+") || strings.HasPrefix(line, " "):
		return tcell.StyleDefault.Dim(true)
	default:
		return tcell.StyleDefault
	}
}
