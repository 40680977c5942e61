package glpk_test

import (
	"errors"
	"testing"

	"github.com/dshills/solverterm/internal/glpk"
)

// TestReasonString verifies reason names follow glpk.h.
func TestReasonString(t *testing.T) {
	tests := []struct {
		reason glpk.Reason
		want   string
	}{
		{glpk.ReasonRowGen, "IROWGEN"},
		{glpk.ReasonBingo, "IBINGO"},
		{glpk.ReasonHeur, "IHEUR"},
		{glpk.ReasonCutGen, "ICUTGEN"},
		{glpk.ReasonBranch, "IBRANCH"},
		{glpk.ReasonSelect, "ISELECT"},
		{glpk.ReasonPrepro, "IPREPRO"},
		{glpk.Reason(42), "Reason(42)"},
	}
	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("Reason(%d).String() = %q, want %q", int(tt.reason), got, tt.want)
		}
	}
}

// TestTreeEvents verifies callback counts are summed and listed in reason order.
func TestTreeEvents(t *testing.T) {
	events := glpk.TreeEvents{
		glpk.ReasonBranch: 3,
		glpk.ReasonRowGen: 5,
		glpk.ReasonBingo:  1,
	}
	if got := events.Total(); got != 9 {
		t.Errorf("Total = %d, want 9", got)
	}
	if got, want := events.String(), "IROWGEN=5 IBINGO=1 IBRANCH=3"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
	if got := (glpk.TreeEvents{}).String(); got != "" {
		t.Errorf("empty String = %q", got)
	}
}

// TestFormatForPath verifies format inference from extensions.
func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    glpk.Format
		wantErr bool
	}{
		{"transport.lp", glpk.FormatCPLEX, false},
		{"models/afiro.MPS", glpk.FormatFreeMPS, false},
		{"diet.mod", glpk.FormatMathProg, false},
		{"model", 0, true},
		{"model.xlsx", 0, true},
	}
	for _, tt := range tests {
		got, err := glpk.FormatForPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, glpk.ErrUnknownFormat) {
				t.Errorf("FormatForPath(%q) err = %v, want ErrUnknownFormat", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("FormatForPath(%q): %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatForPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// TestParseFormat verifies command line format names.
func TestParseFormat(t *testing.T) {
	for _, name := range []string{"fixed-mps", "FixedMPS"} {
		f, err := glpk.ParseFormat(name)
		if err != nil || f != glpk.FormatFixedMPS {
			t.Errorf("ParseFormat(%q) = %v, %v", name, f, err)
		}
	}
	if f, _ := glpk.ParseFormat("gmpl"); f.String() != "mathprog" {
		t.Errorf("gmpl parsed as %v", f)
	}
}

// TestSolveErrorMessage verifies fatal and non-fatal messages.
func TestSolveErrorMessage(t *testing.T) {
	fatal := &glpk.SolveError{Stage: "simplex", Path: "m.lp", Fatal: true}
	if fatal.Error() != "glpk: fatal error during simplex of m.lp" {
		t.Errorf("fatal message = %q", fatal.Error())
	}
	code := &glpk.SolveError{Stage: "read", Path: "m.lp", Code: 3}
	if code.Error() != "glpk: read of m.lp failed with code 3" {
		t.Errorf("code message = %q", code.Error())
	}
}

// TestSolutionStatusString spot-checks status names.
func TestSolutionStatusString(t *testing.T) {
	if glpk.StatusOptimal.String() != "optimal" {
		t.Errorf("StatusOptimal = %q", glpk.StatusOptimal.String())
	}
	if glpk.SolutionStatus(0).String() != "SolutionStatus(0)" {
		t.Errorf("SolutionStatus(0) = %q", glpk.SolutionStatus(0).String())
	}
}
