package ui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha accents, same palette the table view always used.
var (
	ColorCyan    = lipgloss.Color("#89DCEB")
	ColorMauve   = lipgloss.Color("#C0A1F0")
	ColorSubtext = lipgloss.Color("#A6ADC8")
)

var (
	PromptStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorMauve)
	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorCyan)
	HintStyle    = lipgloss.NewStyle().Foreground(ColorSubtext)
)
