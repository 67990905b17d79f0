package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

func newLoadingSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorTeal)),
	)
}

// renderLoadingPlaceholder renders the spinner centered in the terminal.
func renderLoadingPlaceholder(s spinner.Model, label string, width, height int) string {
	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	text := s.View() + " " + loadingStyle.Render(label)
	if width <= 0 || height <= 0 {
		return text
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}
