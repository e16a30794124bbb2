package tui

import "github.com/hinke/navdeck/internal/prefs"

// introTickMsg advances the entrance animation by one frame.
type introTickMsg struct{}

// themeSavedMsg is sent once the theme flag has been written.
type themeSavedMsg struct {
	theme prefs.Theme
	err   error
}
