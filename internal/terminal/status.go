package terminal

// Status is the value returned to the native engine for each output line.
type Status int

const (
	// StatusAllow lets the engine perform its default console output.
	StatusAllow Status = 0
	// StatusSuppress tells the engine the line was handled and must not be printed.
	StatusSuppress Status = 1
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusAllow:
		return "allow"
	case StatusSuppress:
		return "suppress"
	default:
		return "unknown"
	}
}

// statusOf maps an aggregated vote to the engine status.
func statusOf(show bool) Status {
	if show {
		return StatusAllow
	}
	return StatusSuppress
}
