package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blockkit/alloc"
	"blockkit/internal/logging"
	"blockkit/sim"
)

// Model steps both allocation strategies through the same trace sequence
// and renders their occupancy maps side by side. Both allocators are
// deterministic, so the full trace is computed once up front and stepping
// just moves a cursor through the recorded steps.
type Model struct {
	sequence []int
	blocks   int
	step     int // number of allocations applied, 0..len(sequence)

	bitmap sim.TraceReport
	list   sim.TraceReport

	keys     KeyMap
	showHelp bool
	width    int
}

// NewModel builds the stepper for the given sequence and store capacity.
func NewModel(sequence []int, blocks int) Model {
	if len(sequence) == 0 {
		sequence = sim.DefaultSequence
	}
	if blocks <= 0 {
		blocks = alloc.DefaultBlockCount
	}
	return Model{
		sequence: sequence,
		blocks:   blocks,
		bitmap:   sim.Trace(alloc.NewBitmap(blocks), sequence),
		list:     sim.Trace(alloc.NewList(blocks), sequence),
		keys:     DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Step):
			if m.step < len(m.sequence) {
				m.step++
				logging.Debug("step forward", "step", m.step)
			}
		case key.Matches(msg, m.keys.Back):
			if m.step > 0 {
				m.step--
			}
		case key.Matches(msg, m.keys.Reset):
			m.step = 0
		case key.Matches(msg, m.keys.End):
			m.step = len(m.sequence)
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("blockview - allocation trace stepper"))
	sb.WriteString("\n")

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStrategy("bitmap", m.bitmap),
		m.renderStrategy("list", m.list),
	)
	sb.WriteString(paneStyle.Render(body))
	sb.WriteString("\n")

	sb.WriteString(statusStyle.Render(m.statusLine()))
	if m.showHelp {
		sb.WriteString("\n")
		sb.WriteString(statusStyle.Render(
			"n/space: next  b: back  r: reset  e: run to end  ?: help  q: quit"))
	}
	return sb.String()
}

// renderStrategy draws one allocator's occupancy row for the current step.
func (m Model) renderStrategy(name string, r sim.TraceReport) string {
	occ := strings.Repeat("0", m.blocks)
	note := ""
	if m.step > 0 {
		s := r.Steps[m.step-1]
		occ = s.Occupancy
		if s.OK {
			note = okStyle.Render(fmt.Sprintf(" alloc(%d) -> %d", s.Size, s.Ref))
		} else {
			note = failStyle.Render(fmt.Sprintf(" alloc(%d) FAILED", s.Size))
		}
	}

	var cells strings.Builder
	for i := 0; i < len(occ); i++ {
		if occ[i] == '1' {
			cells.WriteString(usedCellStyle.Render("█"))
		} else {
			cells.WriteString(freeCellStyle.Render("·"))
		}
	}
	return strategyLabelStyle.Render(name) + cells.String() + note
}

func (m Model) statusLine() string {
	if m.step == 0 {
		return fmt.Sprintf("Step 0/%d - fresh %d-block store. Press n to begin, ? for help.",
			len(m.sequence), m.blocks)
	}
	return fmt.Sprintf("Step %d/%d - sequence %v", m.step, len(m.sequence), m.sequence)
}
