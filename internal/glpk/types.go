package glpk

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Reason identifies why GLPK's branch-and-cut callback was invoked
// (glp_ios_reason).
type Reason int

// Callback reasons, matching the GLP_I* constants in glpk.h.
const (
	ReasonRowGen Reason = 0x01
	ReasonBingo  Reason = 0x02
	ReasonHeur   Reason = 0x03
	ReasonCutGen Reason = 0x04
	ReasonBranch Reason = 0x05
	ReasonSelect Reason = 0x06
	ReasonPrepro Reason = 0x07
)

// String returns the glpk.h name of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonRowGen:
		return "IROWGEN"
	case ReasonBingo:
		return "IBINGO"
	case ReasonHeur:
		return "IHEUR"
	case ReasonCutGen:
		return "ICUTGEN"
	case ReasonBranch:
		return "IBRANCH"
	case ReasonSelect:
		return "ISELECT"
	case ReasonPrepro:
		return "IPREPRO"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// TreeEvents counts branch-and-cut callbacks by reason.
type TreeEvents map[Reason]int

// Total returns the number of callbacks.
func (e TreeEvents) Total() int {
	n := 0
	for _, c := range e {
		n += c
	}
	return n
}

// String lists the counts in reason order, e.g. "IROWGEN=4 IBINGO=1".
func (e TreeEvents) String() string {
	reasons := make([]Reason, 0, len(e))
	for r := range e {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })

	parts := make([]string, 0, len(reasons))
	for _, r := range reasons {
		parts = append(parts, fmt.Sprintf("%s=%d", r, e[r]))
	}
	return strings.Join(parts, " ")
}

// SolutionStatus is a GLPK solution status (GLP_UNDEF .. GLP_UNBND).
type SolutionStatus int

// Solution statuses.
const (
	StatusUndefined  SolutionStatus = 1
	StatusFeasible   SolutionStatus = 2
	StatusInfeasible SolutionStatus = 3
	StatusNoFeasible SolutionStatus = 4
	StatusOptimal    SolutionStatus = 5
	StatusUnbounded  SolutionStatus = 6
)

// String returns a readable status name.
func (s SolutionStatus) String() string {
	switch s {
	case StatusUndefined:
		return "undefined"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusNoFeasible:
		return "no feasible"
	case StatusOptimal:
		return "optimal"
	case StatusUnbounded:
		return "unbounded"
	default:
		return fmt.Sprintf("SolutionStatus(%d)", int(s))
	}
}

// Format is a model file format understood by GLPK's readers.
type Format int

// Model formats.
const (
	FormatCPLEX Format = iota
	FormatFreeMPS
	FormatFixedMPS
	FormatMathProg
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatCPLEX:
		return "cplex"
	case FormatFreeMPS:
		return "mps"
	case FormatFixedMPS:
		return "fixed-mps"
	case FormatMathProg:
		return "mathprog"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "cplex", "lp":
		return FormatCPLEX, nil
	case "mps", "freemps":
		return FormatFreeMPS, nil
	case "fixed-mps", "fixedmps":
		return FormatFixedMPS, nil
	case "mathprog", "gmpl", "mod":
		return FormatMathProg, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath infers the model format from the file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Result is the outcome of SolveFile.
type Result struct {
	// Status is the final solution status (MIP status for integer models).
	Status SolutionStatus

	// Objective is the objective value of the final solution.
	Objective float64

	// MIP is set when the model had integer columns and glp_intopt ran.
	MIP bool

	// Tree counts branch-and-cut callbacks when MIP is set.
	Tree TreeEvents
}
