package listener

import (
	"fmt"
	"regexp"
)

// Pattern votes by regular expression. A line matching any highlight
// expression votes true; otherwise a line matching any suppress expression
// votes false; anything else gets the fallback vote.
type Pattern struct {
	highlight []*regexp.Regexp
	suppress  []*regexp.Regexp
	fallback  bool
}

// NewPattern compiles the given expressions.
func NewPattern(highlight, suppress []string, fallback bool) (*Pattern, error) {
	h, err := compileAll(highlight)
	if err != nil {
		return nil, err
	}
	s, err := compileAll(suppress)
	if err != nil {
		return nil, err
	}
	return &Pattern{highlight: h, suppress: s, fallback: fallback}, nil
}

// Output implements terminal.Listener.
func (p *Pattern) Output(text string) bool {
	line := trimEOL(text)
	for _, re := range p.highlight {
		if re.MatchString(line) {
			return true
		}
	}
	for _, re := range p.suppress {
		if re.MatchString(line) {
			return false
		}
	}
	return p.fallback
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", expr, err)
		}
		out = append(out, re)
	}
	return out, nil
}
