// Package theme provides the light and dark palettes and the styles built
// from them. Extracting these into a standalone package avoids circular
// imports between the root tui package and its sub-packages.
package theme

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// Palette is the set of colours a theme is built from.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Subtle    color.Color
	Highlight color.Color
	Error     color.Color
	Fg        color.Color
	Muted     color.Color
	Bg        color.Color
	BarBg     color.Color
}

// DarkPalette is loosely inspired by the lazygit theme.
var DarkPalette = Palette{
	Primary:   lipgloss.Color("#7aa2f7"), // blue
	Secondary: lipgloss.Color("#9ece6a"), // green
	Subtle:    lipgloss.Color("#565f89"), // grey
	Highlight: lipgloss.Color("#e0af68"), // amber
	Error:     lipgloss.Color("#f7768e"), // red
	Fg:        lipgloss.Color("#c0caf5"), // light fg
	Muted:     lipgloss.Color("#545c7e"), // muted fg
	Bg:        lipgloss.Color("#1a1b26"), // dark bg
	BarBg:     lipgloss.Color("#24283b"), // slightly lighter than bg
}

// LightPalette mirrors the marketing site's default look.
var LightPalette = Palette{
	Primary:   lipgloss.Color("#1a1a1a"),
	Secondary: lipgloss.Color("#2e7d32"),
	Subtle:    lipgloss.Color("#bdbdbd"),
	Highlight: lipgloss.Color("#b26a00"),
	Error:     lipgloss.Color("#c62828"),
	Fg:        lipgloss.Color("#1a1a1a"),
	Muted:     lipgloss.Color("#757575"),
	Bg:        lipgloss.Color("#ffffff"),
	BarBg:     lipgloss.Color("#f2f2f2"),
}

// Styles holds every style the TUI renders with.
type Styles struct {
	Palette Palette

	// Navbar.
	Navbar         lipgloss.Style
	NavbarScrolled lipgloss.Style
	Brand          lipgloss.Style
	NavItem        lipgloss.Style
	NavItemHover   lipgloss.Style
	NavItemActive  lipgloss.Style
	Toggle         lipgloss.Style

	// Dropdown.
	Dropdown     lipgloss.Style
	DropdownLink lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	CardBody     lipgloss.Style
	Unavailable  lipgloss.Style
	Loading      lipgloss.Style

	// Compact menu.
	MenuItem lipgloss.Style

	// Page body.
	Hero    lipgloss.Style
	Heading lipgloss.Style
	Body    lipgloss.Style
	Faint   lipgloss.Style

	// Help bar.
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	// Toast.
	Toast      lipgloss.Style
	ToastError lipgloss.Style

	// Help modal.
	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
}

// New builds Styles from p.
func New(p Palette) Styles {
	return Styles{
		Palette: p,

		Navbar: lipgloss.NewStyle().
			Foreground(p.Fg),
		NavbarScrolled: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BarBg),
		Brand: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		NavItem: lipgloss.NewStyle().
			Foreground(p.Fg),
		NavItemHover: lipgloss.NewStyle().
			Foreground(p.Fg).
			Underline(true),
		NavItemActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Highlight).
			Underline(true),
		Toggle: lipgloss.NewStyle().
			Foreground(p.Highlight),

		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		DropdownLink: lipgloss.NewStyle().
			Foreground(p.Fg),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Subtle).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		CardBody: lipgloss.NewStyle().
			Foreground(p.Muted),
		Unavailable: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		Loading: lipgloss.NewStyle().
			Foreground(p.Highlight).
			Italic(true),

		MenuItem: lipgloss.NewStyle().
			Foreground(p.Fg).
			Padding(0, 1),

		Hero: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),
		Body: lipgloss.NewStyle().
			Foreground(p.Fg),
		Faint: lipgloss.NewStyle().
			Foreground(p.Subtle),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.BarBg),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Highlight).
			Background(p.BarBg),

		Toast: lipgloss.NewStyle().
			Foreground(p.Bg).
			Background(p.Primary).
			Bold(true).
			Padding(0, 1),
		ToastError: lipgloss.NewStyle().
			Foreground(p.Bg).
			Background(p.Error).
			Bold(true).
			Padding(0, 1),

		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
	}
}

// ForName returns the styles for "dark", and the light styles for anything
// else.
func ForName(name string) Styles {
	if name == "dark" {
		return New(DarkPalette)
	}
	return New(LightPalette)
}

// Truncate shortens a string to fit within the given width, accounting for
// ANSI escape sequences by using lipgloss.Width for measurement.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w <= maxWidth {
		return s
	}
	// Brute-force truncation: trim runes until we fit.
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
