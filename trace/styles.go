package trace

import "github.com/charmbracelet/lipgloss"

type styles struct {
	read    lipgloss.Style
	write   lipgloss.Style
	name    lipgloss.Style
	warning lipgloss.Style
}

// ANSI colours: 1 red, 2 green, 3 yellow, 4 blue, 5 magenta, 6 cyan, 7 white

func newStyles() styles {
	return styles{
		read:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(4)),
		write:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		name:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}
