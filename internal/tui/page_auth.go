package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/smileguide/internal/auth"
	"github.com/tinytelemetry/smileguide/internal/model"
)

type authField int

const (
	fieldName authField = iota
	fieldEmail
	fieldPassword
)

// AuthPage is the sign-in and registration form. It always owns the
// keyboard; esc returns to the page that was active before it.
type AuthPage struct {
	identity Identity
	inputs   [3]textinput.Model
	register bool
	focus    int
	busy     bool
	err      string
}

// NewAuthPage creates the auth page.
func NewAuthPage(identity Identity) *AuthPage {
	p := &AuthPage{identity: identity}
	for i := range p.inputs {
		in := textinput.New()
		in.CharLimit = 120
		p.inputs[i] = in
	}
	p.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	p.inputs[fieldPassword].EchoCharacter = '•'
	return p
}

func (p *AuthPage) ID() model.Page { return model.PageAuth }

func (p *AuthPage) CapturesInput() bool { return true }

// Registering reports whether the form is in registration mode.
func (p *AuthPage) Registering() bool { return p.register }

func (p *AuthPage) Init(ctx ViewContext) tea.Cmd {
	p.register = false
	p.busy = false
	p.err = ""
	for i := range p.inputs {
		p.inputs[i].Reset()
	}
	p.focus = 0
	p.applyLabels(ctx)
	return p.refocus()
}

// fields returns the visible fields in order.
func (p *AuthPage) fields() []authField {
	if p.register {
		return []authField{fieldName, fieldEmail, fieldPassword}
	}
	return []authField{fieldEmail, fieldPassword}
}

func (p *AuthPage) applyLabels(ctx ViewContext) {
	p.inputs[fieldName].Placeholder = ctx.T("auth.name")
	p.inputs[fieldEmail].Placeholder = ctx.T("auth.email")
	p.inputs[fieldPassword].Placeholder = ctx.T("auth.password")
}

func (p *AuthPage) refocus() tea.Cmd {
	fields := p.fields()
	if p.focus >= len(fields) {
		p.focus = 0
	}
	for i := range p.inputs {
		p.inputs[i].Blur()
	}
	return p.inputs[fields[p.focus]].Focus()
}

func (p *AuthPage) Update(ctx ViewContext, msg tea.Msg) (tea.Cmd, *PageNav) {
	p.applyLabels(ctx)
	switch msg := msg.(type) {
	case authResultMsg:
		p.busy = false
		if msg.err != nil {
			p.err = describeAuthError(ctx, msg.err)
		}
		return nil, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ctx.Keys.Escape):
			return nil, &PageNav{Back: true}
		case key.Matches(msg, ctx.Keys.ToggleRegister):
			p.register = !p.register
			p.focus = 0
			p.err = ""
			return p.refocus(), nil
		case key.Matches(msg, ctx.Keys.Tab):
			n := len(p.fields())
			if msg.String() == "shift+tab" {
				p.focus = (p.focus + n - 1) % n
			} else {
				p.focus = (p.focus + 1) % n
			}
			return p.refocus(), nil
		case key.Matches(msg, ctx.Keys.Enter):
			return p.submit(ctx), nil
		}
	}

	if p.busy {
		return nil, nil
	}
	field := p.fields()[p.focus]
	var cmd tea.Cmd
	p.inputs[field], cmd = p.inputs[field].Update(msg)
	return cmd, nil
}

func (p *AuthPage) submit(ctx ViewContext) tea.Cmd {
	if p.busy || p.identity == nil {
		return nil
	}
	name := strings.TrimSpace(p.inputs[fieldName].Value())
	email := strings.TrimSpace(p.inputs[fieldEmail].Value())
	password := p.inputs[fieldPassword].Value()

	if email == "" || password == "" || (p.register && name == "") {
		p.err = ctx.T("auth.error_input")
		return nil
	}

	p.busy = true
	p.err = ""
	if p.register {
		return registerCmd(p.identity, name, email, password)
	}
	return loginCmd(p.identity, email, password)
}

func describeAuthError(ctx ViewContext, err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return ctx.T("auth.error_credentials")
	case errors.Is(err, auth.ErrEmailTaken):
		return ctx.T("auth.error_taken")
	case errors.Is(err, auth.ErrInvalidInput):
		return ctx.T("auth.error_input")
	default:
		return ctx.T("auth.error_generic")
	}
}

func (p *AuthPage) View(ctx ViewContext) string {
	heading := ctx.T("auth.signin")
	toggle := ctx.T("auth.switch_register")
	if p.register {
		heading = ctx.T("auth.register")
		toggle = ctx.T("auth.switch_signin")
	}

	lines := []string{
		titleStyle.Render(heading),
		wrap(ctx, helpStyle.Render(ctx.T("page.auth.body"))),
		"",
	}
	for i, f := range p.fields() {
		label := ctx.T(fieldKey(f))
		style := sectionStyle
		if i == p.focus {
			style = activeSectionStyle
		}
		lines = append(lines, label, style.Width(min(48, max(20, ctx.Width-8))).Render(p.inputs[f].View()))
	}

	lines = append(lines, "")
	if p.busy {
		lines = append(lines, helpStyle.Render(ctx.T("auth.working")))
	}
	if p.err != "" {
		lines = append(lines, errorStyle.Render(p.err))
	}
	lines = append(lines,
		helpStyle.Render(toggle),
		helpStyle.Render(ctx.T("auth.back")),
	)
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func fieldKey(f authField) string {
	switch f {
	case fieldName:
		return "auth.name"
	case fieldEmail:
		return "auth.email"
	default:
		return "auth.password"
	}
}
