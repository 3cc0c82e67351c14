package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"blockkit/alloc"
	"blockkit/sim"
)

var (
	traceSequence string
	traceBlocks   int
)

func init() {
	cmd := newTraceCmd()
	cmd.Flags().StringVar(&traceSequence, "sequence", "",
		"Comma-separated allocation sizes (default: classic 15-step sequence)")
	cmd.Flags().IntVar(&traceBlocks, "blocks", alloc.DefaultBlockCount, "Store capacity in blocks")
	rootCmd.AddCommand(cmd)
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print a deterministic allocation trace",
		Long: `The trace command applies a fixed sequence of allocation sizes and
prints the occupancy map after every step.

Example:
  blockctl trace
  blockctl trace --strategy list
  blockctl trace --sequence 8,8,8,8,8,8,8,8,8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace()
		},
	}
	return cmd
}

func runTrace() error {
	strategies, err := selectedStrategies()
	if err != nil {
		return err
	}

	sizes, err := parseSequence(traceSequence)
	if err != nil {
		return err
	}

	reports := make([]sim.TraceReport, 0, len(strategies))
	for _, name := range strategies {
		reports = append(reports, sim.Trace(alloc.New(name, traceBlocks), sizes))
	}

	if jsonOut {
		return printJSON(reports)
	}
	for _, r := range reports {
		if noColor {
			printInfo("%s\n", r)
		} else {
			printInfo("%s\n", renderTrace(r))
		}
	}
	return nil
}

// renderTrace mirrors TraceReport.String with styled occupancy cells so a
// terminal reader can see the store fill up step by step.
func renderTrace(r sim.TraceReport) string {
	var sb strings.Builder
	sb.WriteString(strategyStyle.Render("Strategy: "+r.Strategy) + "\n")
	for _, s := range r.Steps {
		status := okStyle.Render("ok  ")
		if !s.OK {
			status = failStyle.Render("FAIL")
		}
		fmt.Fprintf(&sb, "Step %2d (allocate %d) %s: %s\n",
			s.Step, s.Size, status, renderOccupancy(s.Occupancy))
	}
	return sb.String()
}

// parseSequence turns "2,3,5" into []int{2, 3, 5}. Empty input selects the
// default sequence.
func parseSequence(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad sequence element %q: %w", p, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("sequence sizes must be positive, got %d", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
