package sim

import "blockkit/alloc"

// DefaultSequence is the fixed allocation sequence used by the trace
// harness when no sequence is supplied.
var DefaultSequence = []int{2, 3, 5, 2, 4, 6, 1, 3, 5, 2, 4, 3, 2, 1, 5}

// TraceStep captures the allocator state after one allocation of the trace.
type TraceStep struct {
	Step      int       `json:"step"` // 1-based
	Size      int       `json:"size"`
	Ref       alloc.Ref `json:"ref"`
	OK        bool      `json:"ok"`
	Err       string    `json:"err,omitempty"`
	Occupancy string    `json:"occupancy"`
}

// TraceReport is the full trace of a fixed allocation sequence.
type TraceReport struct {
	Strategy string      `json:"strategy"`
	Sequence []int       `json:"sequence"`
	Steps    []TraceStep `json:"steps"`
}

// Trace resets a and applies sizes in order, recording the occupancy map
// after every allocation. Failures are recorded and the trace continues,
// matching the classic assignment's behavior of pressing on past a full
// store.
func Trace(a alloc.Allocator, sizes []int) TraceReport {
	if len(sizes) == 0 {
		sizes = DefaultSequence
	}
	a.Reset()

	report := TraceReport{
		Strategy: strategyName(a),
		Sequence: sizes,
		Steps:    make([]TraceStep, 0, len(sizes)),
	}
	for i, n := range sizes {
		step := TraceStep{Step: i + 1, Size: n}
		ref, err := a.Alloc(n)
		if err != nil {
			step.Err = err.Error()
		} else {
			step.Ref = ref
			step.OK = true
		}
		step.Occupancy = a.Dump()
		report.Steps = append(report.Steps, step)
	}
	return report
}
