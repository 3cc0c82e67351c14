package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"blockkit/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	debugMode := false
	sequenceArg := ""
	blocks := 0

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--debug" || arg == "-d":
			debugMode = true
		case arg == "--help" || arg == "-h":
			printUsage()
			os.Exit(0)
		case arg == "--version":
			fmt.Printf("blockview %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		case strings.HasPrefix(arg, "--sequence="):
			sequenceArg = strings.TrimPrefix(arg, "--sequence=")
		case strings.HasPrefix(arg, "--blocks="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--blocks="))
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "Error: bad --blocks value %q\n", arg)
				os.Exit(1)
			}
			blocks = n
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown argument %q\n", arg)
			printUsage()
			os.Exit(1)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logging.Init(logging.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	sequence, err := parseSequence(sequenceArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logging.Info("starting blockview", "sequence", sequence, "debug", debugMode)

	p := tea.NewProgram(NewModel(sequence, blocks), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error("program failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseSequence turns "2,3,5" into allocation sizes. Empty input selects
// the default trace sequence.
func parseSequence(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad sequence element %q", p)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func printUsage() {
	fmt.Println(`Usage: blockview [options]

Interactive side-by-side stepper for the bitmap and free-list allocation
strategies.

Options:
  --sequence=2,3,5   Allocation sizes (default: classic 15-step sequence)
  --blocks=64        Store capacity in blocks
  --debug, -d        Log to ~/.blockview/blockview.log
  --version          Print version
  --help, -h         Show this help`)
}
