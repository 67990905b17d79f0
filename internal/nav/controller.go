package nav

import "github.com/tinytelemetry/smileguide/internal/model"

// ScrollFunc is invoked after every navigation so the host can reset the
// target view to its top.
type ScrollFunc func(target model.Page)

// State is a read-only copy of the controller's navigation state.
type State struct {
	Current  model.Page `json:"current"`
	Previous model.Page `json:"previous"`
	SignedIn bool       `json:"signed_in"`
}

// Controller owns the current and previous page and applies the
// login/logout redirect policy. It is not safe for concurrent use; the
// Bubble Tea event loop is its only caller.
type Controller struct {
	current  model.Page
	previous model.Page
	identity Presence
	scroll   ScrollFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithScroll installs the scroll-reset side effect.
func WithScroll(fn ScrollFunc) Option {
	return func(c *Controller) { c.scroll = fn }
}

// WithIdentity seeds the remembered identity snapshot. It defaults to Absent.
func WithIdentity(u *model.User) Option {
	return func(c *Controller) { c.identity = PresenceOf(u) }
}

// NewController creates a controller on the home page.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		current:  model.PageHome,
		previous: model.PageHome,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the active page.
func (c *Controller) Current() model.Page { return c.current }

// Previous returns the page that was active when auth was last entered.
func (c *Controller) Previous() model.Page { return c.previous }

// Identity returns the remembered identity snapshot.
func (c *Controller) Identity() Presence { return c.identity }

// State returns a copy of the navigation state.
func (c *Controller) State() State {
	return State{Current: c.current, Previous: c.previous, SignedIn: c.identity == Present}
}

// Navigate switches to target. Entering auth records the page being left so
// the auth view can return to it.
func (c *Controller) Navigate(target model.Page) {
	if target == model.PageAuth {
		c.previous = c.current
	}
	c.current = target
	if c.scroll != nil {
		c.scroll(target)
	}
}

// Back navigates to the page recorded when auth was entered.
func (c *Controller) Back() {
	c.Navigate(c.previous)
}

// ObserveIdentity compares u against the remembered snapshot and applies the
// redirect policy for the resulting edge:
//
//	login  while on auth             -> home
//	logout while on a protected page -> home
//
// The snapshot is updated after the edge is evaluated.
func (c *Controller) ObserveIdentity(u *model.User) Edge {
	next := PresenceOf(u)
	edge := Transition(c.identity, next)

	switch edge {
	case EdgeLogin:
		if c.current == model.PageAuth {
			c.Navigate(model.PageHome)
		}
	case EdgeLogout:
		if c.current.Protected() {
			c.Navigate(model.PageHome)
		}
	}

	c.identity = next
	return edge
}
