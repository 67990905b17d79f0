package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/smileguide/internal/model"
)

// renderSeverityChart draws one bar per symptom log, oldest on the left,
// with a legend of summary figures on the right.
func renderSeverityChart(ctx ViewContext, logs []model.SymptomLog, width int) string {
	if len(logs) == 0 {
		return helpStyle.Render(ctx.T("tracker.empty"))
	}

	legendWidth := 18
	chartHeight := 6
	if ctx.Height > 0 && ctx.Height < 20 {
		chartHeight = 4
	}
	chartWidth := width - legendWidth - 2
	if chartWidth < 20 {
		chartWidth = 20
	}

	maxBars := chartWidth / 2
	start := 0
	if len(logs) > maxBars {
		start = len(logs) - maxBars
	}
	visible := logs[start:]

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
		barchart.WithMaxValue(5),
	)
	for _, l := range visible {
		color := severityColor(l.Severity)
		bc.Push(barchart.BarData{
			Values: []barchart.BarValue{{
				Name:  fmt.Sprintf("%d", l.Severity),
				Value: float64(l.Severity),
				Style: lipgloss.NewStyle().Foreground(color).Background(color),
			}},
		})
	}
	bc.Draw()

	sum := 0
	for _, l := range logs {
		sum += l.Severity
	}
	latest := logs[len(logs)-1]
	legendLines := []string{
		fmt.Sprintf("%-9s %d/5", ctx.T("tracker.latest")+":", latest.Severity),
		fmt.Sprintf("%-9s %.1f", ctx.T("tracker.average")+":", float64(sum)/float64(len(logs))),
		fmt.Sprintf("%-9s %d", ctx.T("tracker.entries")+":", len(logs)),
	}
	legend := lipgloss.NewStyle().
		Width(legendWidth).
		Foreground(ColorWhite).
		Render(strings.Join(legendLines, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", legend)
}
