package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/tinytelemetry/smileguide/internal/model"
)

// renderBranding renders "SmileGuide" with a teal to light blue gradient.
func renderBranding() string {
	colors := []string{
		"#14B8A6", "#17B9AE", "#1BBBB6", "#1FBCBE", "#23BEC6",
		"#27BFCE", "#2BC0D6", "#2FC2DE", "#33C3E6", "#38BDF8",
	}
	chars := []string{"S", "m", "i", "l", "e", "G", "u", "i", "d", "e"}

	var b strings.Builder
	for i, char := range chars {
		style := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(colors[i])).Bold(true)
		b.WriteString(style.Render(char))
	}
	return b.String()
}

// renderHeader renders the branding and one tab per page.
func renderHeader(ctx ViewContext, current model.Page) string {
	var tabs []string
	for i, p := range model.Pages() {
		label := fmt.Sprintf("%d %s", i+1, ctx.T("page."+p.String()+".title"))
		if ctx.Width < 100 {
			label = fmt.Sprintf("%d", i+1)
		}
		if p == current {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	brand := lipgloss.NewStyle().Background(ColorNavy).Padding(0, 1).Render(renderBranding())
	row := lipgloss.JoinHorizontal(lipgloss.Top, append([]string{brand, " "}, tabs...)...)
	if ctx.Width > 0 && lipgloss.Width(row) > ctx.Width {
		return brand
	}
	return row
}

// renderStatusLine renders the status/help line at the bottom of the screen.
func renderStatusLine(ctx ViewContext, current model.Page, status string) string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	w := ctx.Width
	leftText := fmt.Sprintf("[%s]", ctx.T("page."+current.String()+".title"))
	centerText := ctx.T("footer.keys")
	if status != "" {
		centerText = status
	}

	var rightParts []string
	if ctx.User != nil {
		rightParts = append(rightParts, ctx.User.Name)
	}
	rightParts = append(rightParts, strings.ToUpper(string(ctx.Language)))
	rightText := strings.Join(rightParts, "  ")

	if w <= 0 {
		return baseStyle.Render(leftText + " " + centerText + " " + rightText)
	}

	leftWidth := lipgloss.Width(leftText) + 2
	rightWidth := lipgloss.Width(rightText) + 2
	if leftWidth+rightWidth >= w {
		return baseStyle.Width(w).Render(leftText)
	}
	centerWidth := w - leftWidth - rightWidth
	if lipgloss.Width(centerText) > centerWidth {
		centerText = truncate.StringWithTail(centerText, uint(max(0, centerWidth-1)), "…")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		baseStyle.Align(lipgloss.Left).Width(leftWidth).Render(leftText),
		baseStyle.Align(lipgloss.Center).Width(centerWidth).Render(centerText),
		baseStyle.Align(lipgloss.Right).Width(rightWidth).Render(rightText),
	)
}
