package main

import (
	"testing"

	"github.com/dshills/solverterm/internal/glpk"
)

func TestModelFormat(t *testing.T) {
	tests := []struct {
		opts    options
		want    glpk.Format
		wantErr bool
	}{
		{options{model: "transport.lp"}, glpk.FormatCPLEX, false},
		{options{model: "diet.mod"}, glpk.FormatMathProg, false},
		{options{model: "deck.txt", format: "fixed-mps"}, glpk.FormatFixedMPS, false},
		{options{model: "model"}, 0, true},
		{options{model: "model.lp", format: "xls"}, 0, true},
	}

	for _, tt := range tests {
		got, err := modelFormat(tt.opts)
		if tt.wantErr {
			if err == nil {
				t.Errorf("modelFormat(%+v) expected error", tt.opts)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("modelFormat(%+v) = %v, %v; want %v", tt.opts, got, err, tt.want)
		}
	}
}

func TestDescribeResult(t *testing.T) {
	lp := glpk.Result{Status: glpk.StatusOptimal, Objective: 153.675}
	if got, want := describeResult(lp), "LP status optimal, objective 153.675"; got != want {
		t.Errorf("describeResult(lp) = %q, want %q", got, want)
	}

	mip := glpk.Result{
		Status:    glpk.StatusOptimal,
		Objective: 42,
		MIP:       true,
		Tree:      glpk.TreeEvents{glpk.ReasonBingo: 2, glpk.ReasonBranch: 7},
	}
	if got, want := describeResult(mip), "MIP status optimal, objective 42, 2 improved solutions"; got != want {
		t.Errorf("describeResult(mip) = %q, want %q", got, want)
	}
}
