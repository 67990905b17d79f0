package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tinytelemetry/smileguide/internal/model"
)

// HomePage is the landing page: a short introduction and a menu of
// destinations.
type HomePage struct {
	cursor int
}

// NewHomePage creates the home page.
func NewHomePage() *HomePage {
	return &HomePage{}
}

func (p *HomePage) ID() model.Page { return model.PageHome }

func (p *HomePage) Init(_ ViewContext) tea.Cmd { return nil }

// destinations lists every page except home.
func (p *HomePage) destinations() []model.Page {
	all := model.Pages()
	out := make([]model.Page, 0, len(all)-1)
	for _, pg := range all {
		if pg != model.PageHome {
			out = append(out, pg)
		}
	}
	return out
}

func (p *HomePage) ScrollToTop() { p.cursor = 0 }

func (p *HomePage) Update(ctx ViewContext, msg tea.Msg) (tea.Cmd, *PageNav) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	dests := p.destinations()
	switch {
	case key.Matches(km, ctx.Keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, ctx.Keys.Down):
		if p.cursor < len(dests)-1 {
			p.cursor++
		}
	case key.Matches(km, ctx.Keys.Enter):
		return nil, navTo(dests[p.cursor])
	}
	return nil, nil
}

func (p *HomePage) View(ctx ViewContext) string {
	var lines []string
	lines = append(lines,
		titleStyle.Render(ctx.T("app.name")),
		helpStyle.Render(ctx.T("app.tagline")),
		"",
		wrap(ctx, bodyStyle.Render(ctx.T("page.home.body"))),
		"",
	)
	for i, dest := range p.destinations() {
		label := fmt.Sprintf("  %s", ctx.T("page."+dest.String()+".title"))
		if i == p.cursor {
			lines = append(lines, selectedStyle.Render("> "+strings.TrimSpace(label)))
		} else {
			lines = append(lines, label)
		}
	}
	lines = append(lines, "", helpStyle.Render(ctx.T("home.hint")))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

// wrap word-wraps s to the usable content width.
func wrap(ctx ViewContext, s string) string {
	w := ctx.Width - 6
	if w < 20 {
		return s
	}
	return wordwrap.String(s, w)
}
