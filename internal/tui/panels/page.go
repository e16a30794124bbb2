package panels

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"

	"github.com/hinke/navdeck/internal/tui/theme"
)

// IntroFrames is the number of entrance animation steps. The page body is
// blank for the first two, faint until the last, and the hero block only
// appears from frame three.
const IntroFrames = 6

type lineKind int

const (
	lineBody lineKind = iota
	lineHero
	lineHeading
)

type pageLine struct {
	kind lineKind
	text string
}

// Page is the scrollable marketing body under the navbar.
type Page struct {
	lines   []pageLine
	scrollY int
	height  int // last rendered height, used for clamping
	intro   int

	// Keybindings
	up       key.Binding
	down     key.Binding
	home     key.Binding
	end      key.Binding
	pageUp   key.Binding
	pageDown key.Binding
}

// NewPage creates the page with the stock copy.
func NewPage() Page {
	return Page{
		lines: defaultCopy(),
		up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll up"),
		),
		down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll down"),
		),
		home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		end: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		pageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		pageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

// ScrollY returns the index of the first visible line.
func (p Page) ScrollY() int { return p.scrollY }

// SetHeight records the visible height so scrolling can be clamped.
func (p Page) SetHeight(h int) Page {
	p.height = max(h, 1)
	p.scrollY = p.clamp(p.scrollY)
	return p
}

// SetIntro sets the entrance animation frame.
func (p Page) SetIntro(frame int) Page {
	p.intro = min(frame, IntroFrames)
	return p
}

// IntroDone reports whether the entrance animation has finished.
func (p Page) IntroDone() bool { return p.intro >= IntroFrames }

// Len returns the number of lines of copy.
func (p Page) Len() int { return len(p.lines) }

// ScrollBy moves the viewport by delta lines.
func (p Page) ScrollBy(delta int) Page {
	p.scrollY = p.clamp(p.scrollY + delta)
	return p
}

func (p Page) clamp(y int) int {
	maxY := max(len(p.lines)-max(p.height, 1), 0)
	return min(max(y, 0), maxY)
}

// Update handles scroll keys and the mouse wheel.
func (p Page) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return p.handleKey(msg), nil
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			return p.ScrollBy(-1), nil
		case tea.MouseWheelDown:
			return p.ScrollBy(1), nil
		}
	}
	return p, nil
}

func (p Page) handleKey(msg tea.KeyPressMsg) Page {
	page := max(p.height-1, 1)
	switch {
	case key.Matches(msg, p.down):
		return p.ScrollBy(1)
	case key.Matches(msg, p.up):
		return p.ScrollBy(-1)
	case key.Matches(msg, p.pageDown):
		return p.ScrollBy(page)
	case key.Matches(msg, p.pageUp):
		return p.ScrollBy(-page)
	case key.Matches(msg, p.home):
		p.scrollY = 0
	case key.Matches(msg, p.end):
		p.scrollY = p.clamp(len(p.lines))
	}
	return p
}

// View renders the visible slice of the page.
func (p Page) View(width, height int, st theme.Styles) string {
	if height <= 0 {
		return ""
	}

	out := make([]string, 0, height)
	if p.intro >= 2 {
		for i := p.scrollY; i < len(p.lines) && len(out) < height; i++ {
			out = append(out, p.renderLine(p.lines[i], width, st))
		}
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (p Page) renderLine(l pageLine, width int, st theme.Styles) string {
	text := theme.Truncate(l.text, width)
	if l.kind == lineHero && p.intro < 3 {
		return ""
	}
	if p.intro < IntroFrames {
		return st.Faint.Render(text)
	}
	switch l.kind {
	case lineHero:
		return st.Hero.Render(text)
	case lineHeading:
		return st.Heading.Render(text)
	}
	return st.Body.Render(text)
}

// HelpBindings returns the scroll hints.
func (p Page) HelpBindings() []HelpBinding {
	return []HelpBinding{
		{Key: "j/k", Desc: "scroll"},
	}
}

func defaultCopy() []pageLine {
	hero := func(s string) pageLine { return pageLine{kind: lineHero, text: s} }
	heading := func(s string) pageLine { return pageLine{kind: lineHeading, text: s} }
	body := func(s string) pageLine { return pageLine{kind: lineBody, text: s} }
	blank := pageLine{}

	return []pageLine{
		blank,
		hero("  We build brands that move."),
		hero("  Design, technology and marketing under one roof."),
		blank,
		heading("  Design"),
		body("  Handcrafted interfaces, identities and systems that scale"),
		body("  from a single landing page to a full product suite."),
		blank,
		heading("  Technology"),
		body("  Fast sites, resilient platforms, and tooling your team"),
		body("  will actually enjoy using."),
		blank,
		heading("  Marketing"),
		body("  Creative strategies that put your brand in front of the"),
		body("  people who need it, measured end to end."),
		blank,
		heading("  Our Story"),
		body("  Started as three friends and a whiteboard. Now a studio"),
		body("  of designers, engineers and strategists."),
		blank,
		heading("  Careers"),
		body("  Join our team and help us build the future."),
		blank,
		heading("  Contact"),
		body("  hello@example.com"),
		blank,
	}
}
