package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")

	strategyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Occupancy cells
	usedCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor)

	freeCellStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	okStyle = lipgloss.NewStyle().
		Foreground(successColor)

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)
)

// renderOccupancy styles an occupancy dump as colored cells, one block per
// column.
func renderOccupancy(occ string) string {
	var sb strings.Builder
	for i := 0; i < len(occ); i++ {
		if occ[i] == '1' {
			sb.WriteString(usedCellStyle.Render("█"))
		} else {
			sb.WriteString(freeCellStyle.Render("·"))
		}
	}
	return sb.String()
}
