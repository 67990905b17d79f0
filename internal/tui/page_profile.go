package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/smileguide/internal/model"
)

// ProfilePage shows the signed-in user and offers sign out.
type ProfilePage struct {
	identity   Identity
	signingOut bool
	err        string
}

// NewProfilePage creates the profile page.
func NewProfilePage(identity Identity) *ProfilePage {
	return &ProfilePage{identity: identity}
}

func (p *ProfilePage) ID() model.Page { return model.PageProfile }

func (p *ProfilePage) Init(_ ViewContext) tea.Cmd {
	p.err = ""
	return nil
}

func (p *ProfilePage) Update(ctx ViewContext, msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case authResultMsg:
		p.signingOut = false
		if msg.err != nil {
			p.err = ctx.T("profile.error_signout")
		}
	case tea.KeyMsg:
		if !ctx.SignedIn() {
			if key.Matches(msg, ctx.Keys.Enter) {
				return nil, navTo(model.PageAuth)
			}
			return nil, nil
		}
		if key.Matches(msg, ctx.Keys.SignOut) && !p.signingOut && p.identity != nil {
			p.signingOut = true
			p.err = ""
			return logoutCmd(p.identity), nil
		}
	}
	return nil, nil
}

func (p *ProfilePage) View(ctx ViewContext) string {
	lines := []string{titleStyle.Render(ctx.T("page.profile.title")), ""}

	if !ctx.SignedIn() {
		lines = append(lines, helpStyle.Render(ctx.T("profile.signin_prompt")))
		return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
	}

	u := ctx.User
	lines = append(lines,
		ctx.T("profile.signed_in_as")+": "+bodyStyle.Bold(true).Render(u.Name),
		ctx.T("auth.email")+": "+u.Email,
	)
	if !u.CreatedAt.IsZero() {
		lines = append(lines, ctx.T("profile.member_since")+": "+u.CreatedAt.Local().Format("2 Jan 2006"))
	}
	lines = append(lines, "")
	if p.signingOut {
		lines = append(lines, helpStyle.Render(ctx.T("auth.working")))
	}
	if p.err != "" {
		lines = append(lines, errorStyle.Render(p.err))
	}
	lines = append(lines, helpStyle.Render(ctx.T("profile.signout")))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}
