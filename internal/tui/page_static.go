package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/smileguide/internal/model"
)

// StaticPage renders a localized description in a scrollable viewport.
// It backs the learn, directory, community and chat pages.
type StaticPage struct {
	id       model.Page
	viewport viewport.Model
	extra    func(ctx ViewContext) string
}

// NewStaticPage creates a description page for id.
func NewStaticPage(id model.Page) *StaticPage {
	return &StaticPage{id: id, viewport: viewport.New(80, 20)}
}

// NewChatPage creates the assistant page. It reports whether the avatar
// was prepared at startup; conversations are not implemented.
func NewChatPage() *StaticPage {
	p := NewStaticPage(model.PageChat)
	p.extra = func(ctx ViewContext) string {
		status := errorStyle.Render(ctx.T("chat.avatar_missing"))
		if ctx.AvatarReady {
			status = successStyle.Render(ctx.T("chat.avatar_ready"))
		}
		return status + "\n\n" + helpStyle.Render(ctx.T("chat.coming_soon"))
	}
	return p
}

func (p *StaticPage) ID() model.Page { return p.id }

func (p *StaticPage) Init(_ ViewContext) tea.Cmd { return nil }

func (p *StaticPage) ScrollToTop() { p.viewport.GotoTop() }

// Offset returns the viewport's vertical scroll offset.
func (p *StaticPage) Offset() int { return p.viewport.YOffset }

func (p *StaticPage) content(ctx ViewContext) string {
	parts := []string{wrap(ctx, bodyStyle.Render(ctx.T("page."+p.id.String()+".body")))}
	if p.extra != nil {
		parts = append(parts, "", p.extra(ctx))
	}
	return strings.Join(parts, "\n")
}

func (p *StaticPage) Update(ctx ViewContext, msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.viewport.Width = max(0, ctx.Width-4)
		p.viewport.Height = max(1, ctx.Height-3)
		return nil, nil
	case tea.KeyMsg:
		p.viewport.SetContent(p.content(ctx))
		switch {
		case key.Matches(msg, ctx.Keys.Up):
			p.viewport.ScrollUp(1)
		case key.Matches(msg, ctx.Keys.Down):
			p.viewport.ScrollDown(1)
		case key.Matches(msg, ctx.Keys.PageUp):
			p.viewport.HalfPageUp()
		case key.Matches(msg, ctx.Keys.PageDown):
			p.viewport.HalfPageDown()
		}
	}
	return nil, nil
}

func (p *StaticPage) View(ctx ViewContext) string {
	vp := p.viewport
	vp.SetContent(p.content(ctx))
	title := titleStyle.Render(ctx.T("page." + p.id.String() + ".title"))
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", vp.View()))
}
