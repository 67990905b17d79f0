package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/smileguide/internal/i18n"
	"github.com/tinytelemetry/smileguide/internal/model"
	"github.com/tinytelemetry/smileguide/internal/nav"
	"github.com/tinytelemetry/smileguide/internal/startup"
	"go.uber.org/zap"
)

// chromeHeight is the number of lines used by the header and status line.
const chromeHeight = 2

// StatePublisher receives a snapshot after every update.
type StatePublisher interface {
	Publish(ready bool, state nav.State, lang model.Language)
}

// Deps holds the App's collaborators. Identity and Translations are
// required; the rest are optional. StartPage is opened once the readiness
// gate first opens; the zero value stays on home.
type Deps struct {
	Identity     Identity
	Bootstrap    Bootstrapper
	Translations TranslationLoader
	Values       model.ValueStore
	Symptoms     model.SymptomStore
	Publisher    StatePublisher
	Log          *zap.Logger
	Language     model.Language
	StartPage    model.Page
}

// App is the top-level Bubble Tea model. It owns the navigation controller
// and the readiness gate and routes between pages.
type App struct {
	deps Deps
	log  *zap.Logger
	keys KeyMap

	nav   *nav.Controller
	ready nav.Readiness
	pages map[model.Page]Page

	bundle      *i18n.Bundle
	catalog     *i18n.Catalog
	lang        model.Language
	user        *model.User
	avatarReady bool
	entered     bool

	spinner spinner.Model
	width   int
	height  int
	status  string
}

// NewApp creates an App on the home page with every flag of the readiness
// gate raised.
func NewApp(deps Deps) *App {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	lang := deps.Language
	if !lang.Valid() {
		lang = model.DefaultLanguage
	}

	a := &App{
		deps:    deps,
		log:     log,
		keys:    DefaultKeyMap(),
		ready:   nav.NewReadiness(),
		pages:   make(map[model.Page]Page),
		lang:    lang,
		spinner: newLoadingSpinner(),
	}
	a.nav = nav.NewController(nav.WithScroll(a.scrollToTop))

	a.registerPages(
		NewHomePage(),
		NewChatPage(),
		NewStaticPage(model.PageLearn),
		NewStaticPage(model.PageDirectory),
		NewTrackerPage(deps.Symptoms),
		NewStaticPage(model.PageCommunity),
		NewProfilePage(deps.Identity),
		NewAuthPage(deps.Identity),
	)
	return a
}

func (a *App) registerPages(pages ...Page) {
	for _, p := range pages {
		a.pages[p.ID()] = p
	}
}

// Controller exposes the navigation controller.
func (a *App) Controller() *nav.Controller { return a.nav }

// Ready reports whether the readiness gate is open.
func (a *App) Ready() bool { return a.ready.Ready() }

// activePage maps the current page to its view. Unknown values render home.
func (a *App) activePage() Page {
	if p, ok := a.pages[a.nav.Current()]; ok {
		return p
	}
	return a.pages[model.PageHome]
}

func (a *App) scrollToTop(target model.Page) {
	if s, ok := a.pages[target].(Scroller); ok {
		s.ScrollToTop()
	}
}

func (a *App) viewContext() ViewContext {
	h := a.height - chromeHeight
	if h < 0 {
		h = 0
	}
	return ViewContext{
		Width:       a.width,
		Height:      h,
		Catalog:     a.catalog,
		Language:    a.lang,
		User:        a.user,
		AvatarReady: a.avatarReady,
		Keys:        a.keys,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.spinner.Tick,
		bootstrapCmd(a.deps.Bootstrap),
		restoreCmd(a.deps.Identity),
		translationsCmd(a.deps.Translations, a.deps.Values),
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := a.nav.Current()
	cmd := a.update(msg)
	if a.nav.Current() != before {
		cmd = tea.Batch(cmd, a.activePage().Init(a.viewContext()))
	}
	a.publish()
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		ctx := a.viewContext()
		var cmds []tea.Cmd
		for _, p := range a.pages {
			cmd, _ := p.Update(ctx, msg)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)

	case spinner.TickMsg:
		if a.ready.Ready() {
			return nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return cmd

	case avatarMsg:
		a.avatarReady = msg.outcome != startup.OutcomeFailed
		a.ready.AppInitializing = false
		a.log.Debug("tui: startup finished", zap.Stringer("avatar", msg.outcome))
		return a.enterIfReady()

	case identityRestoredMsg:
		if msg.err != nil {
			a.log.Warn("tui: restoring session", zap.Error(msg.err))
			msg.user = nil
		}
		a.setUser(msg.user)
		a.ready.IdentityLoading = false
		return a.enterIfReady()

	case authResultMsg:
		// The requesting page hears the result even if a redirect follows.
		origin := a.activePage()
		if msg.err == nil {
			a.setUser(msg.user)
		} else {
			a.log.Info("tui: identity request failed", zap.Error(msg.err))
		}
		return a.forward(origin, msg)

	case translationsMsg:
		if msg.err != nil {
			a.log.Error("tui: loading translations", zap.Error(msg.err))
			a.status = "translations unavailable"
		}
		a.bundle = msg.bundle
		if msg.lang.Valid() {
			a.lang = msg.lang
		}
		a.applyLanguage()
		a.ready.TranslationsLoading = false
		return a.enterIfReady()

	case languageSavedMsg:
		if msg.err != nil {
			a.log.Warn("tui: saving language preference", zap.Error(msg.err))
		}
		return nil

	case symptomLogsMsg, symptomSavedMsg:
		return a.forward(a.pages[model.PageTracker], msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.forward(a.activePage(), msg)
}

// enterIfReady initializes the current page the moment the gate opens.
func (a *App) enterIfReady() tea.Cmd {
	if !a.ready.Ready() {
		return nil
	}
	if !a.entered {
		a.entered = true
		if start := a.deps.StartPage; start != model.PageHome && start.Valid() {
			a.log.Debug("tui: opening start page", zap.Stringer("page", start))
			// Update runs the new page's Init once it sees the page change.
			a.nav.Navigate(start)
			return nil
		}
	}
	return a.activePage().Init(a.viewContext())
}

func (a *App) setUser(u *model.User) {
	a.user = u
	if edge := a.nav.ObserveIdentity(u); edge != nav.EdgeNone {
		a.log.Debug("tui: identity changed",
			zap.Stringer("edge", edge),
			zap.Stringer("page", a.nav.Current()))
	}
}

func (a *App) applyLanguage() {
	if a.bundle == nil {
		a.catalog = i18n.Empty()
		return
	}
	a.catalog = a.bundle.Catalog(a.lang)
}

func (a *App) cycleLanguage() tea.Cmd {
	a.lang = a.lang.Next()
	a.applyLanguage()
	return saveLanguageCmd(a.deps.Values, a.lang)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.ForceQuit) {
		return tea.Quit
	}
	if !a.ready.Ready() {
		if key.Matches(msg, a.keys.Quit) {
			return tea.Quit
		}
		return nil
	}

	page := a.activePage()
	if c, ok := page.(InputCapturer); !ok || !c.CapturesInput() {
		if key.Matches(msg, a.keys.Quit) {
			return tea.Quit
		}
		if key.Matches(msg, a.keys.Language) {
			return a.cycleLanguage()
		}
		pages := model.Pages()
		for i, b := range a.keys.Pages {
			if key.Matches(msg, b) && i < len(pages) {
				a.nav.Navigate(pages[i])
				return nil
			}
		}
	}
	return a.forward(page, msg)
}

func (a *App) forward(p Page, msg tea.Msg) tea.Cmd {
	if p == nil {
		return nil
	}
	cmd, req := p.Update(a.viewContext(), msg)
	a.applyNav(req)
	return cmd
}

func (a *App) applyNav(req *PageNav) {
	switch {
	case req == nil:
	case req.Back:
		a.nav.Back()
	case req.Page.Valid():
		a.nav.Navigate(req.Page)
	}
}

func (a *App) publish() {
	if a.deps.Publisher != nil {
		a.deps.Publisher.Publish(a.ready.Ready(), a.nav.State(), a.lang)
	}
}

func (a *App) View() string {
	if !a.ready.Ready() {
		label := "Loading..."
		if a.catalog != nil {
			label = a.catalog.T("app.loading")
		}
		return renderLoadingPlaceholder(a.spinner, label, a.width, a.height)
	}

	ctx := a.viewContext()
	current := a.activePage().ID()
	body := a.activePage().View(ctx)
	if ctx.Height > 0 {
		body = lipgloss.NewStyle().Height(ctx.Height).MaxHeight(ctx.Height).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(ctx, current),
		body,
		renderStatusLine(ctx, current, a.status),
	)
}
