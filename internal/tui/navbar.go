package tui

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hinke/navdeck/internal/panel"
	"github.com/hinke/navdeck/internal/prefs"
	"github.com/hinke/navdeck/internal/tui/theme"
)

const (
	brandText  = " ◆ navdeck "
	burgerText = " ☰ "
	itemGap    = 2
)

// span is a half-open column range [x0, x1).
type span struct {
	x0, x1 int
}

func (s span) contains(x int) bool { return x >= s.x0 && x < s.x1 }

// navItem is one trigger label on the navbar.
type navItem struct {
	id    panel.PanelID
	label string
	span  span
}

// navLayout is the geometry of the navbar row for a given width. In compact
// mode the trigger labels are replaced by a hamburger button.
type navLayout struct {
	width   int
	compact bool
	items   []navItem
	toggle  span
	burger  span
}

func itemText(label string) string { return label + " ▾" }

func layoutNavbar(triggers []panel.Trigger, width, compactWidth int) navLayout {
	l := navLayout{width: width}

	x := lipgloss.Width(brandText) + itemGap
	for _, t := range triggers {
		w := lipgloss.Width(itemText(t.Label))
		l.items = append(l.items, navItem{id: t.ID, label: t.Label, span: span{x, x + w}})
		x += w + itemGap
	}

	toggleW := 3
	l.toggle = span{max(width-toggleW, 0), width}

	if width < compactWidth || x+toggleW > width {
		l.compact = true
		l.items = nil
		bw := lipgloss.Width(burgerText)
		l.burger = span{max(l.toggle.x0-bw-1, 0), max(l.toggle.x0-1, 0)}
	}
	return l
}

// itemAt returns the trigger whose label covers column x.
func (l navLayout) itemAt(x int) (navItem, bool) {
	for _, it := range l.items {
		if it.span.contains(x) {
			return it, true
		}
	}
	return navItem{}, false
}

// item returns the layout entry for id.
func (l navLayout) item(id panel.PanelID) (navItem, bool) {
	for _, it := range l.items {
		if it.id == id {
			return it, true
		}
	}
	return navItem{}, false
}

// navbarState is what the navbar needs to know to draw itself.
type navbarState struct {
	hovered  panel.PanelID
	active   panel.PanelID
	scrolled bool
	hidden   bool
	theme    prefs.Theme
}

func renderNavbar(l navLayout, s navbarState, st theme.Styles) string {
	if s.hidden {
		return strings.Repeat(" ", l.width)
	}

	bar := st.Navbar
	if s.scrolled {
		bar = st.NavbarScrolled
	}

	var b strings.Builder
	col := 0
	pad := func(to int) {
		if to > col {
			b.WriteString(bar.Render(strings.Repeat(" ", to-col)))
			col = to
		}
	}

	b.WriteString(st.Brand.Render(brandText))
	col = lipgloss.Width(brandText)

	for _, it := range l.items {
		pad(it.span.x0)
		style := st.NavItem
		text := itemText(it.label)
		switch it.id {
		case s.active:
			style = st.NavItemActive
			text = it.label + " ▴"
		case s.hovered:
			style = st.NavItemHover
		}
		b.WriteString(style.Render(text))
		col = it.span.x1
	}

	if l.compact {
		pad(l.burger.x0)
		b.WriteString(st.Toggle.Render(burgerText))
		col = l.burger.x1
	}

	pad(l.toggle.x0)
	icon := " ☀ "
	if s.theme == prefs.Dark {
		icon = " ☾ "
	}
	b.WriteString(st.Toggle.Render(icon))
	col = l.toggle.x1
	pad(l.width)

	return theme.Truncate(b.String(), l.width)
}

func renderMenu(triggers []panel.Trigger, hovered panel.PanelID, width int, st theme.Styles) string {
	lines := make([]string, 0, len(triggers))
	for _, t := range triggers {
		style := st.MenuItem
		if t.ID == hovered {
			style = style.Underline(true)
		}
		lines = append(lines, style.Width(width).Render(t.Label))
	}
	return strings.Join(lines, "\n")
}
