package sim

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// prt formats numbers with English digit grouping ("20,000 operations").
var prt = message.NewPrinter(language.English)

// String renders the speed report as the classic multi-line results block.
func (r SpeedReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Strategy: %s\n", r.Strategy)
	prt.Fprintf(&sb, "Total time: %.6f seconds\n", r.Elapsed.Seconds())
	prt.Fprintf(&sb, "Iterations completed: %d\n", r.Iterations)
	prt.Fprintf(&sb, "Operations per iteration: %d\n", r.OpsPerIter)
	prt.Fprintf(&sb, "Total operations: %d\n", r.TotalOps)
	if r.FailedAllocs > 0 {
		prt.Fprintf(&sb, "Failed allocations: %d\n", r.FailedAllocs)
	}
	prt.Fprintf(&sb, "Operations per second: %.0f ops/sec\n", r.OpsPerSec)
	prt.Fprintf(&sb, "Average time per operation: %.3f microseconds\n", r.AvgMicros)
	return sb.String()
}

// String renders the fragmentation report, ending with the verdict line for
// the large request.
func (r FragReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Strategy: %s\n", r.Strategy)
	fmt.Fprintf(&sb, "Files created: %d, deleted: %d\n", len(r.Files), len(r.Freed))
	fmt.Fprintf(&sb, "Free blocks: %d, largest contiguous run: %d\n",
		r.FreeBlocks, r.LargestFreeRun)
	fmt.Fprintf(&sb, "Occupancy: %s\n", r.Occupancy)
	if r.RequestOK {
		fmt.Fprintf(&sb, "Request for %d blocks: SUCCESS (ref %d)\n", r.Request, r.RequestRef)
	} else {
		fmt.Fprintf(&sb, "Request for %d blocks: FAILED\n", r.Request)
	}
	return sb.String()
}

// String renders the trace as one line per step.
func (r TraceReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Strategy: %s\n", r.Strategy)
	for _, s := range r.Steps {
		status := "ok  "
		if !s.OK {
			status = "FAIL"
		}
		fmt.Fprintf(&sb, "Step %2d (allocate %d) %s: %s\n", s.Step, s.Size, status, s.Occupancy)
	}
	return sb.String()
}
