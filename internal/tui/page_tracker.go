package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/tinytelemetry/smileguide/internal/model"
)

const (
	minSeverity     = 1
	maxSeverity     = 5
	defaultSeverity = 3
)

// TrackerPage lists the signed-in user's symptom logs and records new ones.
type TrackerPage struct {
	store model.SymptomStore
	now   func() time.Time

	logs     []model.SymptomLog
	loading  bool
	adding   bool
	input    textinput.Model
	severity int
	err      string
	notice   string
}

// NewTrackerPage creates the tracker page.
func NewTrackerPage(store model.SymptomStore) *TrackerPage {
	in := textinput.New()
	in.CharLimit = 200
	return &TrackerPage{
		store:    store,
		now:      time.Now,
		input:    in,
		severity: defaultSeverity,
	}
}

func (p *TrackerPage) ID() model.Page { return model.PageTracker }

func (p *TrackerPage) CapturesInput() bool { return p.adding }

// Logs returns the loaded symptom history.
func (p *TrackerPage) Logs() []model.SymptomLog { return p.logs }

func (p *TrackerPage) Init(ctx ViewContext) tea.Cmd {
	p.adding = false
	p.input.Blur()
	p.err = ""
	p.notice = ""
	if !ctx.SignedIn() {
		p.logs = nil
		return nil
	}
	return p.reload(ctx)
}

func (p *TrackerPage) reload(ctx ViewContext) tea.Cmd {
	if p.store == nil || !ctx.SignedIn() {
		return nil
	}
	p.loading = true
	return loadSymptomsCmd(p.store, ctx.User.ID)
}

func (p *TrackerPage) Update(ctx ViewContext, msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case symptomLogsMsg:
		// A load started for an earlier session must not land in this one.
		if !ctx.SignedIn() || msg.userID != ctx.User.ID {
			return nil, nil
		}
		p.loading = false
		if msg.err != nil {
			p.err = ctx.T("tracker.error_generic")
			return nil, nil
		}
		p.logs = msg.logs
		return nil, nil

	case symptomSavedMsg:
		if msg.err != nil {
			p.err = ctx.T("tracker.error_generic")
			return nil, nil
		}
		p.notice = ctx.T("tracker.saved")
		return p.reload(ctx), nil

	case tea.KeyMsg:
		if !ctx.SignedIn() {
			if key.Matches(msg, ctx.Keys.Enter) {
				return nil, navTo(model.PageAuth)
			}
			return nil, nil
		}
		if p.adding {
			return p.updateForm(ctx, msg), nil
		}
		if key.Matches(msg, ctx.Keys.AddEntry) {
			p.adding = true
			p.severity = defaultSeverity
			p.err = ""
			p.notice = ""
			p.input.Reset()
			p.input.Placeholder = ctx.T("tracker.symptoms")
			return p.input.Focus(), nil
		}
	}
	return nil, nil
}

func (p *TrackerPage) updateForm(ctx ViewContext, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, ctx.Keys.Escape):
		p.adding = false
		p.input.Blur()
		return nil
	case key.Matches(msg, ctx.Keys.SeverityUp):
		p.severity = min(maxSeverity, p.severity+1)
		return nil
	case key.Matches(msg, ctx.Keys.SeverityDown):
		p.severity = max(minSeverity, p.severity-1)
		return nil
	case key.Matches(msg, ctx.Keys.Enter):
		symptoms := splitSymptoms(p.input.Value())
		if len(symptoms) == 0 {
			p.err = ctx.T("tracker.error_empty")
			return nil
		}
		if p.store == nil {
			return nil
		}
		entry := model.SymptomLog{
			ID:       uuid.NewString(),
			UserID:   ctx.User.ID,
			LoggedAt: p.now().UTC(),
			Symptoms: symptoms,
			Severity: p.severity,
		}
		p.adding = false
		p.input.Blur()
		p.err = ""
		return saveSymptomCmd(p.store, entry)
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// splitSymptoms splits a comma separated list, dropping blanks.
func splitSymptoms(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (p *TrackerPage) View(ctx ViewContext) string {
	lines := []string{titleStyle.Render(ctx.T("page.tracker.title"))}

	if !ctx.SignedIn() {
		lines = append(lines, "", helpStyle.Render(ctx.T("tracker.signin_prompt")))
		return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
	}

	lines = append(lines, wrap(ctx, helpStyle.Render(ctx.T("page.tracker.body"))), "")
	width := max(40, ctx.Width-6)
	lines = append(lines, renderSeverityChart(ctx, p.logs, width), "")

	if p.adding {
		lines = append(lines,
			ctx.T("tracker.symptoms"),
			activeSectionStyle.Width(min(60, width)).Render(p.input.View()),
			fmt.Sprintf("%s: %s", ctx.T("tracker.severity"), severityMeter(p.severity)),
			helpStyle.Render(ctx.T("tracker.form")),
		)
	} else {
		lines = append(lines, p.recent(ctx)...)
		lines = append(lines, "", helpStyle.Render(ctx.T("tracker.add")))
	}

	if p.err != "" {
		lines = append(lines, errorStyle.Render(p.err))
	} else if p.notice != "" {
		lines = append(lines, successStyle.Render(p.notice))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

// recent renders the newest entries first.
func (p *TrackerPage) recent(ctx ViewContext) []string {
	limit := 5
	if ctx.Height > 30 {
		limit = 10
	}
	var out []string
	for i := len(p.logs) - 1; i >= 0 && len(out) < limit; i-- {
		l := p.logs[i]
		sev := lipgloss.NewStyle().Foreground(severityColor(l.Severity)).Render(fmt.Sprintf("%d/5", l.Severity))
		out = append(out, fmt.Sprintf("%s  %s  %s",
			l.LoggedAt.Local().Format("02 Jan 15:04"), sev, strings.Join(l.Symptoms, ", ")))
	}
	return out
}

func severityMeter(n int) string {
	filled := lipgloss.NewStyle().Foreground(severityColor(n)).Render(strings.Repeat("■", n))
	return filled + helpStyle.Render(strings.Repeat("□", maxSeverity-n)) + fmt.Sprintf(" %d", n)
}
