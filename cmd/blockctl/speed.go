package main

import (
	"github.com/spf13/cobra"

	"blockkit/alloc"
	"blockkit/sim"
)

var (
	speedIterations int
	speedOps        int
	speedSeed       int64
	speedBlocks     int
)

func init() {
	cmd := newSpeedCmd()
	cmd.Flags().IntVar(&speedIterations, "iterations", 100, "Number of alloc/free cycles")
	cmd.Flags().IntVar(&speedOps, "ops", 100, "Allocations per cycle")
	cmd.Flags().Int64Var(&speedSeed, "seed", 0, "Base random seed")
	cmd.Flags().IntVar(&speedBlocks, "blocks", alloc.DefaultBlockCount, "Store capacity in blocks")
	rootCmd.AddCommand(cmd)
}

func newSpeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speed",
		Short: "Measure allocation throughput",
		Long: `The speed command runs repeated allocate/free cycles against the
selected strategy and reports throughput and mean latency.

Example:
  blockctl speed
  blockctl speed --strategy bitmap --iterations 1000
  blockctl speed --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpeed()
		},
	}
	return cmd
}

func runSpeed() error {
	strategies, err := selectedStrategies()
	if err != nil {
		return err
	}

	cfg := sim.SpeedConfig{
		Iterations: speedIterations,
		Ops:        speedOps,
		Seed:       speedSeed,
	}

	reports := make([]sim.SpeedReport, 0, len(strategies))
	for _, name := range strategies {
		printVerbose("Running speed test: %s, %d iterations x %d ops\n",
			name, cfg.Iterations, cfg.Ops)
		reports = append(reports, sim.Speed(alloc.New(name, speedBlocks), cfg))
	}

	if jsonOut {
		return printJSON(reports)
	}
	for _, r := range reports {
		printInfo("%s\n", r)
	}
	return nil
}
