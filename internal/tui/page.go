package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/smileguide/internal/model"
)

// Page represents a top-level screen in the TUI (home, tracker, etc.).
type Page interface {
	ID() model.Page
	// Init is called each time the page becomes active.
	Init(ctx ViewContext) tea.Cmd
	Update(ctx ViewContext, msg tea.Msg) (tea.Cmd, *PageNav)
	View(ctx ViewContext) string
}

// PageNav is returned from Update to request a page switch. Back asks for
// the page that was active before authentication started.
type PageNav struct {
	Page model.Page
	Back bool
}

// InputCapturer is implemented by pages that can own the keyboard. While
// CapturesInput is true the App does not interpret global shortcuts.
type InputCapturer interface {
	CapturesInput() bool
}

// Scroller is implemented by pages with scrollable content.
type Scroller interface {
	ScrollToTop()
}

func navTo(p model.Page) *PageNav { return &PageNav{Page: p} }
