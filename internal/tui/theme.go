package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorNavy   = lipgloss.Color("#0B2545")
	ColorTeal   = lipgloss.Color("#13A89E")
	ColorMint   = lipgloss.Color("#8DE4D3")
	ColorWhite  = lipgloss.Color("#F5F7FA")
	ColorGray   = lipgloss.Color("#8A94A6")
	ColorYellow = lipgloss.Color("#F4C95D")
	ColorRed    = lipgloss.Color("#FF6666")
	ColorGreen  = lipgloss.Color("#44DD88")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ColorTeal).
			Bold(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	successStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	selectedStyle = lipgloss.NewStyle().
			Foreground(ColorNavy).
			Background(ColorMint).
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(ColorNavy).
			Background(ColorTeal).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorNavy).
			Padding(0, 1)

	activeSectionStyle = sectionStyle.
				BorderForeground(ColorTeal)
)

// severityColor maps a symptom severity (1-5) to a bar color.
func severityColor(severity int) lipgloss.Color {
	switch {
	case severity <= 1:
		return lipgloss.Color("39")
	case severity == 2:
		return lipgloss.Color("42")
	case severity == 3:
		return lipgloss.Color("220")
	case severity == 4:
		return lipgloss.Color("208")
	default:
		return lipgloss.Color("196")
	}
}
