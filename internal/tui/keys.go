package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Language  key.Binding
	Pages     [8]key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Tab      key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Actions
	ToggleRegister key.Binding
	SignOut        key.Binding
	AddEntry       key.Binding
	SeverityUp     key.Binding
	SeverityDown   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Language: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "language"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),

		ToggleRegister: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "sign in / register"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "sign out"),
		),
		AddEntry: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add entry"),
		),
		SeverityUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "severity up"),
		),
		SeverityDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "severity down"),
		),
	}
	for i := range km.Pages {
		digit := string(rune('1' + i))
		km.Pages[i] = key.NewBinding(
			key.WithKeys(digit),
			key.WithHelp(digit, "go to page"),
		)
	}
	return km
}
