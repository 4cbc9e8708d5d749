package viz

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Section headers in CLI output
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ccff"))

	// Quantity labels
	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	// Quantity values
	Value = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ff88"))

	// Recoverable-adjustment warnings
	Warn = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	// Curve captions under plots
	Caption = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)
