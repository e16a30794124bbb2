// Package panels provides the Panel interface and the scrollable surfaces
// of the navdeck layout: the page body and the dropdown renderer.
package panels

import (
	tea "charm.land/bubbletea/v2"

	"github.com/hinke/navdeck/internal/tui/theme"
)

// Panel is the interface scrollable surfaces implement.
type Panel interface {
	// Update handles messages and returns the updated panel plus any command.
	Update(msg tea.Msg) (Panel, tea.Cmd)

	// View renders the panel into a string that fits within the given
	// dimensions.
	View(width, height int, st theme.Styles) string

	// HelpBindings returns the key hints to display in the help bar.
	HelpBindings() []HelpBinding
}

// HelpBinding pairs a key label with a short description for the help bar.
type HelpBinding struct {
	Key  string
	Desc string
}
