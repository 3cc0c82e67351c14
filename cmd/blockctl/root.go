package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"blockkit/alloc"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	noColor  bool
	strategy string
)

var rootCmd = &cobra.Command{
	Use:   "blockctl",
	Short: "Simulate and compare block allocation strategies",
	Long: `blockctl runs classic block-allocation workloads against a simulated
fixed-size block store, comparing a bitmap first-fit allocator, a linked
free-list allocator, and best-fit/worst-fit/next-fit placement policies
over a coalescing free-span list. It provides throughput measurement,
fragmentation analysis, and deterministic allocation traces.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&strategy, "strategy", "both",
		"Allocation strategy: bitmap, list, bestfit, worstfit, nextfit, both, or all")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// selectedStrategies resolves the --strategy flag into allocator names.
// "both" keeps the classic bitmap/list pairing; "all" adds the placement
// policies.
func selectedStrategies() ([]string, error) {
	switch strategy {
	case "both":
		return []string{alloc.StrategyBitmap, alloc.StrategyList}, nil
	case "all":
		return slices.Clone(alloc.AllStrategies), nil
	}
	if slices.Contains(alloc.AllStrategies, strategy) {
		return []string{strategy}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want one of %s, both, or all)",
		strategy, strings.Join(alloc.AllStrategies, ", "))
}
