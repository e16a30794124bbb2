package components

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hinke/navdeck/internal/tui/theme"
)

// DefaultToastDuration is how long a toast stays up.
const DefaultToastDuration = 3 * time.Second

// toastTimeoutMsg is sent when the toast auto-dismiss timer fires. The id
// keeps an older timer from dismissing a newer toast.
type toastTimeoutMsg struct {
	id int
}

// Toast is a timed notification bar that auto-dismisses after a duration.
type Toast struct {
	Message string
	IsError bool
	Active  bool
	id      int
}

// Show activates the toast with a new message and returns a tick command
// that will dismiss it after d.
func (t Toast) Show(message string, isError bool, d time.Duration) (Toast, tea.Cmd) {
	t.Message = message
	t.IsError = isError
	t.Active = true
	t.id++
	id := t.id
	cmd := tea.Tick(d, func(time.Time) tea.Msg {
		return toastTimeoutMsg{id: id}
	})
	return t, cmd
}

// Update handles the toast timeout message.
func (t Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	if m, ok := msg.(toastTimeoutMsg); ok && m.id == t.id {
		t.Active = false
	}
	return t, nil
}

// View renders the toast notification bar spanning the given width.
// Returns an empty string if the toast is not active.
func (t Toast) View(width int, st theme.Styles) string {
	if !t.Active {
		return ""
	}

	style := st.Toast
	if t.IsError {
		style = st.ToastError
	}

	return style.Width(width).Render(t.Message)
}
