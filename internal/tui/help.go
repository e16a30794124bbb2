package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hinke/navdeck/internal/tui/theme"
)

// helpSection groups keybindings under a section heading.
type helpSection struct {
	title    string
	bindings []helpEntry
}

// helpEntry is a single key-description pair.
type helpEntry struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Navigation",
		bindings: []helpEntry{
			{"mouse", "hover an item to open its menu"},
			{"tab / l", "next item"},
			{"shift+tab / h", "previous item"},
			{"esc / click", "close the open menu"},
		},
	},
	{
		title: "Page",
		bindings: []helpEntry{
			{"j / k / wheel", "scroll"},
			{"g / G", "top / bottom"},
			{"pgup / pgdn", "page up / down"},
		},
	},
	{
		title: "General",
		bindings: []helpEntry{
			{"t", "toggle light / dark theme"},
			{"m", "toggle compact menu"},
			{"?", "toggle this help"},
			{"q", "quit"},
		},
	},
}

// HelpModal is a full-screen overlay showing all keybindings.
type HelpModal struct {
	active bool
}

// NewHelpModal creates a new (inactive) help modal.
func NewHelpModal() HelpModal {
	return HelpModal{}
}

// Toggle switches the help modal on or off.
func (h HelpModal) Toggle() HelpModal {
	h.active = !h.active
	return h
}

// Active returns whether the help modal is currently visible.
func (h HelpModal) Active() bool {
	return h.active
}

// Update handles key events when the help modal is active.
func (h HelpModal) Update(msg tea.Msg) (HelpModal, tea.Cmd) {
	if !h.active {
		return h, nil
	}
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		if key.Matches(msg, key.NewBinding(key.WithKeys("esc", "?", "q"))) {
			h.active = false
		}
	}
	return h, nil
}

// View renders the modal centred in a width x height area.
func (h HelpModal) View(width, height int, st theme.Styles) string {
	var lines []string
	lines = append(lines, st.ModalTitle.Render("Keybindings"), "")

	for i, sec := range helpSections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, st.Heading.Render(sec.title))
		for _, b := range sec.bindings {
			k := st.HelpKey.UnsetBackground().Width(16).Render(b.key)
			lines = append(lines, k+" "+st.Body.Render(b.desc))
		}
	}

	box := st.ModalBox.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
