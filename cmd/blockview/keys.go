package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the trace stepper
type KeyMap struct {
	Step  key.Binding
	Back  key.Binding
	Reset key.Binding
	End   key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the standard key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Step: key.NewBinding(
			key.WithKeys("n", " ", "right"),
			key.WithHelp("n/space", "next step"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b", "previous step"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		End: key.NewBinding(
			key.WithKeys("e", "end"),
			key.WithHelp("e", "run to end"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
