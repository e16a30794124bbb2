package tui

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinke/navdeck/internal/config"
	"github.com/hinke/navdeck/internal/content"
	"github.com/hinke/navdeck/internal/panel"
	"github.com/hinke/navdeck/internal/prefs"
	"github.com/hinke/navdeck/internal/tui/panels"
)

func newTestApp(t *testing.T, width, height int, deps Deps) App {
	t.Helper()
	if deps.Provider == nil && deps.Fetcher == nil {
		deps.Provider = content.Builtin()
	}
	m, err := NewApp(config.Default(), deps)
	require.NoError(t, err)

	m = send(t, m, tea.WindowSizeMsg{Width: width, Height: height})
	for range panels.IntroFrames {
		m = send(t, m, introTickMsg{})
	}
	return m
}

func send(t *testing.T, m App, msg tea.Msg) App {
	t.Helper()
	next, _ := m.Update(msg)
	app, ok := next.(App)
	require.True(t, ok)
	return app
}

// fireAll delivers every live timer, as if all scheduled ticks elapsed.
func fireAll(t *testing.T, m App) App {
	t.Helper()
	for _, tok := range m.sched.pending() {
		m = send(t, m, timerFiredMsg{token: tok})
	}
	return m
}

// run executes cmd and flattens batches. Only use it on commands that do
// not sleep.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func triggerAt(t *testing.T, m App, id panel.PanelID) int {
	t.Helper()
	it, ok := m.nav().item(id)
	require.True(t, ok, "trigger %s not on navbar", id)
	return it.span.x0
}

func active(m App) panel.PanelID {
	id, _ := m.Controller().Active()
	return id
}

func TestNewAppRegistersConfiguredTriggers(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})

	var ids []panel.PanelID
	for _, tr := range m.Controller().Triggers() {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []panel.PanelID{"services", "about", "work"}, ids)
	assert.Equal(t, config.Default().CloseDelay(), m.Controller().CloseDelay())
	assert.Equal(t, prefs.Light, m.Theme())
}

func TestNewAppRejectsDuplicateTriggers(t *testing.T) {
	cfg := config.Default()
	cfg.Triggers = append(cfg.Triggers, config.TriggerConfig{ID: "about", Label: "Again", Category: "about"})

	_, err := NewApp(cfg, Deps{})
	require.Error(t, err)
	var dup *panel.DuplicateTriggerError
	assert.True(t, errors.As(err, &dup))
}

func TestHoverOpensPanel(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})

	m = send(t, m, tea.MouseMotionMsg{X: triggerAt(t, m, "services"), Y: 0})

	assert.Equal(t, panel.PanelID("services"), active(m))
	st, ok := m.Controller().Panel("services")
	require.True(t, ok)
	assert.Equal(t, panel.Loaded, st.Load)
	assert.Len(t, st.Content.Links, 3)
	assert.True(t, m.screen().hasDD)
}

func TestLeaveClosesAfterDelay(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})
	m = send(t, m, tea.MouseMotionMsg{X: triggerAt(t, m, "services"), Y: 0})

	s := m.screen()
	m = send(t, m, tea.MouseMotionMsg{X: 0, Y: s.pageTop})

	st, _ := m.Controller().Panel("services")
	assert.Equal(t, panel.Open, st.Visibility, "close is debounced")
	assert.True(t, st.ClosePending)

	m = fireAll(t, m)
	assert.Empty(t, active(m))
	assert.False(t, m.screen().hasDD)
}

func TestReenterCancelsClose(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})
	x := triggerAt(t, m, "services")
	m = send(t, m, tea.MouseMotionMsg{X: x, Y: 0})
	m = send(t, m, tea.MouseMotionMsg{X: 0, Y: m.screen().pageTop})
	m = send(t, m, tea.MouseMotionMsg{X: x, Y: 0})

	m = fireAll(t, m)
	assert.Equal(t, panel.PanelID("services"), active(m))
}

func TestPointerInsideDropdownKeepsItOpen(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})
	m = send(t, m, tea.MouseMotionMsg{X: triggerAt(t, m, "services"), Y: 0})

	s := m.screen()
	require.True(t, s.hasDD)
	m = send(t, m, tea.MouseMotionMsg{X: s.ddX + 1, Y: s.ddY + 1})

	st, _ := m.Controller().Panel("services")
	assert.False(t, st.ClosePending)
	m = fireAll(t, m)
	assert.Equal(t, panel.PanelID("services"), active(m))
}

func TestSwitchingTriggersClosesPreviousAtOnce(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})
	m = send(t, m, tea.MouseMotionMsg{X: triggerAt(t, m, "services"), Y: 0})
	m = send(t, m, tea.MouseMotionMsg{X: triggerAt(t, m, "about"), Y: 0})

	assert.Equal(t, panel.PanelID("about"), active(m))
	st, _ := m.Controller().Panel("services")
	assert.Equal(t, panel.Closed, st.Visibility)
}

func TestEscapeDismisses(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})
	m = send(t, m, tea.MouseMotionMsg{X: triggerAt(t, m, "about"), Y: 0})
	require.Equal(t, panel.PanelID("about"), active(m))

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Empty(t, active(m))
}

func TestClickOutsideDismisses(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})
	m = send(t, m, tea.MouseMotionMsg{X: triggerAt(t, m, "about"), Y: 0})

	m = send(t, m, tea.MouseClickMsg{X: 0, Y: m.height - 3, Button: tea.MouseLeft})
	assert.Empty(t, active(m))
}

func TestClickTriggerOpens(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})

	m = send(t, m, tea.MouseClickMsg{X: triggerAt(t, m, "work"), Y: 0, Button: tea.MouseLeft})

	assert.Equal(t, panel.PanelID("work"), active(m))
	st, _ := m.Controller().Panel("work")
	assert.True(t, st.Content.Unavailable, "work has no built-in content")
}

func TestLinkClickClosesPanel(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})
	m = send(t, m, tea.MouseMotionMsg{X: triggerAt(t, m, "services"), Y: 0})
	m = fireAll(t, m) // finish the reveal

	s := m.screen()
	link, ok := s.dd.LinkAt(2, 1)
	require.True(t, ok)
	assert.Equal(t, "Design", link.Label)

	m = send(t, m, tea.MouseClickMsg{X: s.ddX + 2, Y: s.ddY + 1, Button: tea.MouseLeft})
	assert.Empty(t, active(m))
	assert.True(t, m.toast.Active)
	assert.Contains(t, m.toast.Message, "#design")
}

func TestTabCyclesTriggers(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, panel.PanelID("services"), active(m))

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, panel.PanelID("about"), active(m))

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, panel.PanelID("services"), active(m))

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, panel.PanelID("about"), active(m), "wraps around")
}

func TestThemeToggleSaves(t *testing.T) {
	store := prefs.NewMemoryStore()
	m := newTestApp(t, 100, 40, Deps{Prefs: store})

	next, cmd := m.Update(tea.MouseClickMsg{X: m.nav().toggle.x0, Y: 0, Button: tea.MouseLeft})
	m = next.(App)
	assert.Equal(t, prefs.Dark, m.Theme())

	th, err := prefs.LoadTheme(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, prefs.Dark, th, "written before the command runs")

	msgs := run(cmd)
	require.Len(t, msgs, 1)
	saved, ok := msgs[0].(themeSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)

	m = send(t, m, saved)
	assert.True(t, m.toast.Active)
	assert.False(t, m.toast.IsError)
}

func TestRapidThemeTogglesPersistLastTheme(t *testing.T) {
	store := prefs.NewMemoryStore()
	m := newTestApp(t, 100, 40, Deps{Prefs: store})

	key := tea.KeyPressMsg{Code: 't', Text: "t"}
	next, first := m.Update(key)
	m = next.(App)
	next, second := m.Update(key)
	m = next.(App)
	require.Equal(t, prefs.Light, m.Theme())

	// Outcomes may be delivered in any order.
	for _, msg := range append(run(second), run(first)...) {
		m = send(t, m, msg)
	}

	th, err := prefs.LoadTheme(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, m.Theme(), th)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestThemeSaveFailureShowsErrorToast(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{Prefs: failingStore{}})

	m, cmd := m.toggleTheme()
	msgs := run(cmd)
	require.Len(t, msgs, 1)

	m = send(t, m, msgs[0])
	assert.Equal(t, prefs.Dark, m.Theme(), "the toggle stands even if it was not saved")
	assert.True(t, m.toast.IsError)
	assert.Contains(t, m.toast.Message, "disk full")
}

func TestCompactMenu(t *testing.T) {
	m := newTestApp(t, 40, 30, Deps{})
	require.True(t, m.nav().compact)

	m = send(t, m, tea.KeyPressMsg{Code: 'm', Text: "m"})
	require.True(t, m.menuOpen)
	assert.Equal(t, 3, m.screen().menuRows)

	m = send(t, m, tea.MouseClickMsg{X: 1, Y: 2, Button: tea.MouseLeft})
	assert.False(t, m.menuOpen)
	assert.Equal(t, panel.PanelID("about"), active(m))
}

func TestBurgerClickTogglesMenu(t *testing.T) {
	m := newTestApp(t, 40, 30, Deps{})
	x := m.nav().burger.x0

	m = send(t, m, tea.MouseClickMsg{X: x, Y: 0, Button: tea.MouseLeft})
	assert.True(t, m.menuOpen)

	m = send(t, m, tea.MouseClickMsg{X: 0, Y: m.height - 2, Button: tea.MouseLeft})
	assert.False(t, m.menuOpen, "clicking outside closes the menu")
}

func TestScrollingHidesNavbar(t *testing.T) {
	m := newTestApp(t, 100, 12, Deps{})
	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	require.Equal(t, panel.PanelID("services"), active(m))

	for range 8 {
		m = send(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	}
	assert.Equal(t, 8, m.page.ScrollY())
	assert.True(t, m.scrolled)
	assert.True(t, m.hidden)
	assert.Empty(t, active(m), "hiding the navbar closes the dropdown")

	m = send(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	assert.True(t, m.scrolled)
	assert.False(t, m.hidden, "scrolling up shows the navbar")

	// Hidden navbar rows are not hit-testable.
	m.hidden = true
	m = send(t, m, tea.MouseMotionMsg{X: triggerAt(t, m, "services"), Y: 0})
	assert.Empty(t, active(m))
}

func TestAsyncFetchRunsThroughScheduler(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{Fetcher: content.Delayed{Provider: content.Builtin()}})

	next, cmd := m.Update(tea.MouseMotionMsg{X: triggerAt(t, m, "about"), Y: 0})
	m = next.(App)

	st, _ := m.Controller().Panel("about")
	assert.True(t, st.Loading)
	assert.Contains(t, m.renderFrame(), "Loading...")

	msgs := run(cmd)
	require.Len(t, msgs, 1)
	require.IsType(t, workDoneMsg{}, msgs[0])

	m = send(t, m, msgs[0])
	st, _ = m.Controller().Panel("about")
	assert.False(t, st.Loading)
	assert.Equal(t, panel.Loaded, st.Load)
	v, ok := m.render.visible("about")
	require.True(t, ok)
	assert.True(t, v.populated)
}

func TestHelpModalCapturesKeys(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})

	m = send(t, m, tea.KeyPressMsg{Code: '?', Text: "?"})
	require.True(t, m.help.Active())
	assert.Contains(t, m.renderFrame(), "Keybindings")

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Empty(t, active(m), "keys go to the modal")

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, m.help.Active())
}

func TestViewShowsNavbarAndHelpBar(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})
	v := m.View()

	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeAllMotion, v.MouseMode)
	out := m.renderFrame()
	assert.Contains(t, out, "navdeck")
	assert.Contains(t, out, "Services")
	assert.Contains(t, out, "quit")
}

func TestQuit(t *testing.T) {
	m := newTestApp(t, 100, 40, Deps{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	msgs := run(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])
}
