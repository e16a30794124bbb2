package panels

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hinke/navdeck/internal/panel"
	"github.com/hinke/navdeck/internal/tui/theme"
)

const (
	cardWidth     = 24
	linkColumnMin = 14
)

// Reveal counts how many links and cards of a dropdown have animated in.
type Reveal struct {
	Links int
	Cards int
}

// Full returns a reveal that shows everything in p.
func Full(p panel.Payload) Reveal {
	return Reveal{Links: len(p.Links), Cards: len(p.Cards)}
}

// Dropdown is a rendered dropdown and the geometry needed to hit-test it.
type Dropdown struct {
	View   string
	Width  int
	Height int

	linkTop   int // row of the first link, relative to the top border
	linkLeft  int // column of the link column, relative to the left border
	linkWidth int
	links     []panel.Link
}

// LinkAt returns the link under the cell (dx, dy), relative to the
// dropdown's top-left corner.
func (d Dropdown) LinkAt(dx, dy int) (panel.Link, bool) {
	i := dy - d.linkTop
	if i < 0 || i >= len(d.links) {
		return panel.Link{}, false
	}
	if dx < d.linkLeft || dx >= d.linkLeft+d.linkWidth {
		return panel.Link{}, false
	}
	return d.links[i], true
}

// RenderDropdown draws p. Links sit in a left column and feature cards to
// their right, or below when maxWidth is too narrow. loading is shown when
// there is no content yet.
func RenderDropdown(p panel.Payload, r Reveal, loading bool, maxWidth int, st theme.Styles) Dropdown {
	// Border and horizontal padding on each side.
	const frameX = 4

	if loading || p.Unavailable {
		msg := p.Message
		style := st.Unavailable
		if loading {
			msg = "Loading..."
			style = st.Loading
		}
		view := st.Dropdown.Render(style.Render(theme.Truncate(msg, max(maxWidth-frameX, 1))))
		return Dropdown{View: view, Width: lipgloss.Width(view), Height: lipgloss.Height(view)}
	}

	linkWidth := linkColumnMin
	for _, l := range p.Links {
		linkWidth = max(linkWidth, lipgloss.Width(l.Label)+2)
	}

	linkLines := make([]string, len(p.Links))
	for i, l := range p.Links {
		if i < r.Links {
			linkLines[i] = st.DropdownLink.Render(l.Label)
		}
	}
	left := lipgloss.NewStyle().Width(linkWidth).Render(strings.Join(linkLines, "\n"))

	cards := make([]string, 0, len(p.Cards))
	horizontalWidth := linkWidth
	for i, c := range p.Cards {
		card := renderCard(c, st)
		horizontalWidth += lipgloss.Width(card)
		if i >= r.Cards {
			// Keep the slot so the layout does not jump while animating.
			card = lipgloss.NewStyle().
				Width(lipgloss.Width(card)).
				Height(lipgloss.Height(card)).
				Render("")
		}
		cards = append(cards, card)
	}

	var inner string
	switch {
	case len(cards) == 0:
		inner = left
	case horizontalWidth+frameX <= maxWidth:
		inner = lipgloss.JoinHorizontal(lipgloss.Top, append([]string{left}, cards...)...)
	default:
		inner = lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.JoinVertical(lipgloss.Left, cards...))
	}

	view := st.Dropdown.Render(inner)
	return Dropdown{
		View:      view,
		Width:     lipgloss.Width(view),
		Height:    lipgloss.Height(view),
		linkTop:   1,
		linkLeft:  2,
		linkWidth: linkWidth,
		links:     p.Links[:min(r.Links, len(p.Links))],
	}
}

func renderCard(c panel.Card, st theme.Styles) string {
	lines := []string{st.CardTitle.Render(theme.Truncate(c.Title, cardWidth))}
	if c.Body != "" {
		lines = append(lines, st.CardBody.Width(cardWidth).Render(c.Body))
	}
	return st.Card.Width(cardWidth + 2).Render(strings.Join(lines, "\n"))
}
