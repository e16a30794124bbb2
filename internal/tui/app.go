package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/hinke/navdeck/internal/config"
	"github.com/hinke/navdeck/internal/logging"
	"github.com/hinke/navdeck/internal/panel"
	"github.com/hinke/navdeck/internal/prefs"
	"github.com/hinke/navdeck/internal/tui/components"
	"github.com/hinke/navdeck/internal/tui/panels"
	"github.com/hinke/navdeck/internal/tui/theme"
)

// introInterval is the time between entrance animation frames.
const introInterval = 100 * time.Millisecond

// Deps are the collaborators the App is built from. Zero values are
// replaced with in-memory defaults.
type Deps struct {
	// Provider serves dropdown content synchronously.
	Provider panel.Provider
	// Fetcher, when set, serves dropdown content off the event loop and
	// takes precedence over Provider.
	Fetcher panel.Fetcher
	// Prefs persists the theme flag.
	Prefs prefs.Store
	// Theme is the theme to start with.
	Theme prefs.Theme
	// Context carries the logger and is handed to the fetcher.
	Context context.Context
}

// App is the root bubbletea model: a navbar of triggers, the dropdown of the
// active trigger, and the scrollable page below.
type App struct {
	cfg   *config.Config
	ctx   context.Context
	log   zerolog.Logger
	prefs prefs.Store

	sched    *teaScheduler
	ctrl     *panel.Controller
	dispatch *panel.Dispatcher
	render   *dropdownRenderer
	triggers []panel.Trigger

	width, height int

	theme  prefs.Theme
	styles theme.Styles

	// hovered is the trigger under the pointer or keyboard hover, or the
	// active trigger while the pointer is inside its dropdown.
	hovered  panel.PanelID
	menuOpen bool
	scrolled bool
	hidden   bool
	intro    int

	page  panels.Page
	help  HelpModal
	toast components.Toast
	keys  GlobalKeyMap
}

// NewApp builds the controller for cfg's triggers and wires it to the TUI.
func NewApp(cfg *config.Config, deps Deps) (App, error) {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := deps.Prefs
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	th := deps.Theme
	if th == "" {
		th = prefs.Light
	}

	log := logging.Component(ctx, "tui")
	sched := newTeaScheduler()
	r := newDropdownRenderer(sched, log)

	opts := []panel.Option{
		panel.WithCloseDelay(cfg.CloseDelay()),
		panel.WithRenderer(r),
		panel.WithLogger(logging.Component(ctx, "panel")),
		panel.WithContext(ctx),
	}
	if deps.Provider != nil {
		opts = append(opts, panel.WithProvider(deps.Provider))
	}
	if deps.Fetcher != nil {
		opts = append(opts, panel.WithFetcher(deps.Fetcher))
	}
	ctrl := panel.NewController(sched, opts...)

	for _, t := range cfg.Triggers {
		trig := panel.Trigger{ID: panel.PanelID(t.ID), Label: t.Label, Category: t.Category}
		if err := ctrl.Register(trig); err != nil {
			return App{}, fmt.Errorf("registering trigger %q: %w", t.ID, err)
		}
	}

	d := panel.NewDispatcher(ctrl, log)
	for _, t := range ctrl.Triggers() {
		id := t.ID
		d.Subscribe(id, func(ev panel.Event) {
			log.Trace().Str("panel", string(id)).Stringer("event", ev.Kind).Msg("input")
		})
	}

	return App{
		cfg:      cfg,
		ctx:      ctx,
		log:      log,
		prefs:    store,
		sched:    sched,
		ctrl:     ctrl,
		dispatch: d,
		render:   r,
		triggers: ctrl.Triggers(),
		theme:    th,
		styles:   theme.ForName(string(th)),
		page:     panels.NewPage(),
		help:     NewHelpModal(),
		keys:     DefaultGlobalKeyMap(),
	}, nil
}

// Controller exposes the panel controller driving the navbar.
func (m App) Controller() *panel.Controller { return m.ctrl }

// Theme returns the current theme.
func (m App) Theme() prefs.Theme { return m.theme }

// Init starts the entrance animation.
func (m App) Init() tea.Cmd {
	return introTick()
}

func introTick() tea.Cmd {
	return tea.Tick(introInterval, func(time.Time) tea.Msg { return introTickMsg{} })
}

// Update handles all incoming messages. Work the controller scheduled while
// handling msg is flushed as commands afterwards.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, next.sched.drain())
}

func (m App) update(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Navbar and help bar.
		m.page = m.page.SetHeight(m.height - 2)
		if !m.nav().compact {
			m.menuOpen = false
		}
		return m, nil

	case timerFiredMsg:
		m.sched.fire(msg.token)
		return m, nil

	case workDoneMsg:
		if msg.apply != nil {
			msg.apply()
		}
		return m, nil

	case introTickMsg:
		m.intro++
		m.page = m.page.SetIntro(m.intro)
		if m.page.IntroDone() {
			return m, nil
		}
		return m, introTick()

	case themeSavedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("theme", string(msg.theme)).Msg("saving theme")
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Show("Could not save theme: "+msg.err.Error(), true, components.DefaultToastDuration)
			return m, cmd
		}
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show("Theme: "+string(msg.theme), false, components.DefaultToastDuration)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseMotionMsg:
		return m.handleMotion(msg.Mouse()), nil

	case tea.MouseClickMsg:
		if msg.Mouse().Button != tea.MouseLeft {
			return m, nil
		}
		return m.handleClick(msg.Mouse())

	case tea.MouseWheelMsg:
		return m.scrollPage(msg)
	}

	var cmd tea.Cmd
	m.toast, cmd = m.toast.Update(msg)
	return m, cmd
}

func (m App) handleKey(msg tea.KeyPressMsg) (App, tea.Cmd) {
	if m.help.Active() {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help = m.help.Toggle()
	case key.Matches(msg, m.keys.Dismiss):
		m.menuOpen = false
		m.dispatch.Dispatch(panel.Event{Kind: panel.EventEscape})
	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.Menu):
		if m.nav().compact {
			m.menuOpen = !m.menuOpen
		}
	case key.Matches(msg, m.keys.Next):
		return m.cycle(1), nil
	case key.Matches(msg, m.keys.Previous):
		return m.cycle(-1), nil
	default:
		return m.scrollPage(msg)
	}
	return m, nil
}

// cycle moves the keyboard hover to the next or previous trigger.
func (m App) cycle(delta int) App {
	n := len(m.triggers)
	if n == 0 {
		return m
	}

	focus := m.hovered
	if id, ok := m.ctrl.Active(); ok {
		focus = id
	}
	cur := -1
	for i, t := range m.triggers {
		if t.ID == focus {
			cur = i
		}
	}

	var next int
	switch {
	case cur >= 0:
		next = (cur + delta + n) % n
	case delta < 0:
		next = n - 1
	}
	return m.setHover(m.triggers[next].ID)
}

// setHover moves the hover to id, emitting leave for the old trigger before
// enter for the new one.
func (m App) setHover(id panel.PanelID) App {
	if id == m.hovered {
		return m
	}
	if m.hovered != "" {
		m.dispatch.Dispatch(panel.Event{Kind: panel.EventHoverLeave, Trigger: m.hovered})
	}
	if id != "" {
		m.dispatch.Dispatch(panel.Event{Kind: panel.EventHoverEnter, Trigger: id})
	}
	m.hovered = id
	return m
}

func (m App) handleMotion(mouse tea.Mouse) App {
	h := m.hitTest(m.screen(), mouse.X, mouse.Y)
	switch h.kind {
	case hitTrigger, hitMenu, hitDropdown:
		return m.setHover(h.id)
	}
	return m.setHover("")
}

func (m App) handleClick(mouse tea.Mouse) (App, tea.Cmd) {
	h := m.hitTest(m.screen(), mouse.X, mouse.Y)
	switch h.kind {
	case hitToggle:
		return m.toggleTheme()
	case hitBurger:
		m.menuOpen = !m.menuOpen
		return m, nil
	case hitTrigger:
		m.dispatch.Dispatch(panel.Event{Kind: panel.EventPointerDown, Trigger: h.id})
		m.hovered = h.id
		return m, nil
	case hitMenu:
		m.menuOpen = false
		m.dispatch.Dispatch(panel.Event{Kind: panel.EventPointerDown, Trigger: h.id})
		m.hovered = h.id
		return m, nil
	case hitDropdown:
		if !h.onLink {
			return m, nil
		}
		m.log.Info().Str("panel", string(h.id)).Str("href", h.link.Href).Msg("link selected")
		_ = m.ctrl.Close(h.id)
		m.hovered = ""
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show(h.link.Label+" → "+h.link.Href, false, components.DefaultToastDuration)
		return m, cmd
	}

	m.menuOpen = false
	m.dispatch.Dispatch(panel.Event{Kind: panel.EventPointerDown})
	return m, nil
}

func (m App) scrollPage(msg tea.Msg) (App, tea.Cmd) {
	prev := m.page.ScrollY()
	p, cmd := m.page.Update(msg)
	m.page = p.(panels.Page)
	return m.afterScroll(prev), cmd
}

// afterScroll updates the navbar: it turns solid past the scrolled
// threshold and hides while scrolling down past the hide threshold. Hiding
// closes any open dropdown.
func (m App) afterScroll(prev int) App {
	y := m.page.ScrollY()
	if y == prev {
		return m
	}
	m.scrolled = y > m.cfg.Layout.ScrolledAt
	m.hidden = y > prev && y > m.cfg.Layout.HideAt

	if m.hidden {
		m.menuOpen = false
		m.hovered = ""
		m.ctrl.Dismiss()
	}
	return m
}

// toggleTheme flips the theme and persists it. The write happens on the
// event loop so the stored flag always matches the last toggle; only the
// outcome is reported through a message.
func (m App) toggleTheme() (App, tea.Cmd) {
	m.theme = m.theme.Toggle()
	m.styles = theme.ForName(string(m.theme))

	saved := themeSavedMsg{theme: m.theme, err: prefs.SaveTheme(m.ctx, m.prefs, m.theme)}
	return m, func() tea.Msg { return saved }
}

// navHidden reports whether the navbar row is blank: while hidden by
// scrolling, and on the first entrance frame.
func (m App) navHidden() bool {
	return m.hidden || m.intro < 1
}

func (m App) nav() navLayout {
	return layoutNavbar(m.triggers, m.width, m.cfg.Layout.CompactWidth)
}

// --- Layout and hit-testing ---

// screen is the vertical arrangement of one frame.
type screen struct {
	nav navLayout

	menuTop  int
	menuRows int

	dd    panels.Dropdown
	ddID  panel.PanelID
	ddX   int
	ddY   int
	hasDD bool

	pageTop    int
	pageHeight int
	toastRows  int
}

func (m App) screen() screen {
	s := screen{nav: m.nav(), menuTop: 1}
	if s.nav.compact && m.menuOpen && !m.navHidden() {
		s.menuRows = len(m.triggers)
	}

	s.ddY = s.menuTop + s.menuRows
	s.pageTop = s.ddY

	if id, ok := m.ctrl.Active(); ok {
		if v, ok := m.render.visible(id); ok {
			s.dd = panels.RenderDropdown(v.content, v.reveal, !v.populated, m.width, m.styles)
			s.ddID = id
			s.hasDD = true
			if it, ok := s.nav.item(id); ok && !s.nav.compact {
				s.ddX = max(min(it.span.x0, m.width-s.dd.Width), 0)
			}
			s.pageTop = s.ddY + s.dd.Height
		}
	}

	if m.toast.Active {
		s.toastRows = 1
	}
	s.pageHeight = max(m.height-s.pageTop-s.toastRows-1, 0)
	return s
}

type hitKind int

const (
	hitNone hitKind = iota
	hitTrigger
	hitToggle
	hitBurger
	hitMenu
	hitDropdown
	hitPage
)

type hit struct {
	kind   hitKind
	id     panel.PanelID
	link   panel.Link
	onLink bool
}

func (m App) hitTest(s screen, x, y int) hit {
	if y == 0 {
		if m.navHidden() {
			return hit{}
		}
		if s.nav.toggle.contains(x) {
			return hit{kind: hitToggle}
		}
		if s.nav.compact && s.nav.burger.contains(x) {
			return hit{kind: hitBurger}
		}
		if it, ok := s.nav.itemAt(x); ok {
			return hit{kind: hitTrigger, id: it.id}
		}
		return hit{}
	}

	if y >= s.menuTop && y < s.menuTop+s.menuRows {
		return hit{kind: hitMenu, id: m.triggers[y-s.menuTop].ID}
	}

	if s.hasDD && y >= s.ddY && y < s.ddY+s.dd.Height && x >= s.ddX && x < s.ddX+s.dd.Width {
		h := hit{kind: hitDropdown, id: s.ddID}
		h.link, h.onLink = s.dd.LinkAt(x-s.ddX, y-s.ddY)
		return h
	}

	if y >= s.pageTop && y < s.pageTop+s.pageHeight {
		return hit{kind: hitPage}
	}
	return hit{}
}

// --- View ---

// View renders the navbar, the open dropdown, the page and the help bar.
func (m App) View() tea.View {
	if m.width == 0 || m.height == 0 {
		v := tea.NewView("Loading...")
		v.AltScreen = true
		return v
	}

	v := tea.NewView(m.renderFrame())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

func (m App) renderFrame() string {
	if m.help.Active() {
		return m.help.View(m.width, m.height, m.styles)
	}

	s := m.screen()
	active, _ := m.ctrl.Active()

	parts := []string{renderNavbar(s.nav, navbarState{
		hovered:  m.hovered,
		active:   active,
		scrolled: m.scrolled,
		hidden:   m.navHidden(),
		theme:    m.theme,
	}, m.styles)}

	if s.menuRows > 0 {
		parts = append(parts, renderMenu(m.triggers, m.hovered, m.width, m.styles))
	}
	if s.hasDD {
		parts = append(parts, lipgloss.NewStyle().PaddingLeft(s.ddX).Render(s.dd.View))
	}
	if s.pageHeight > 0 {
		parts = append(parts, m.page.View(m.width, s.pageHeight, m.styles))
	}
	if s.toastRows > 0 {
		parts = append(parts, m.toast.View(m.width, m.styles))
	}
	parts = append(parts, m.renderHelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHelpBar renders the help bar at the bottom.
func (m App) renderHelpBar() string {
	bindings := []panels.HelpBinding{
		{Key: "tab", Desc: "open"},
		{Key: "esc", Desc: "close"},
	}
	bindings = append(bindings, m.page.HelpBindings()...)
	bindings = append(bindings, panels.HelpBinding{Key: "t", Desc: "theme"})
	if m.nav().compact {
		bindings = append(bindings, panels.HelpBinding{Key: "m", Desc: "menu"})
	}
	bindings = append(bindings,
		panels.HelpBinding{Key: "?", Desc: "help"},
		panels.HelpBinding{Key: "q", Desc: "quit"},
	)

	formatted := make([]string, 0, len(bindings))
	for _, b := range bindings {
		formatted = append(formatted, m.styles.HelpKey.Render(b.Key)+m.styles.HelpBar.Render(" "+b.Desc))
	}

	bar := theme.Truncate(strings.Join(formatted, m.styles.HelpBar.Render("  ")), m.width)
	if w := lipgloss.Width(bar); w < m.width {
		bar += m.styles.HelpBar.Render(strings.Repeat(" ", m.width-w))
	}
	return bar
}
