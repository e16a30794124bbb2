package panels

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinke/navdeck/internal/tui/theme"
)

func TestPageScrollClamps(t *testing.T) {
	p := NewPage().SetHeight(10)
	maxY := p.Len() - 10

	p = p.ScrollBy(-5)
	assert.Equal(t, 0, p.ScrollY())

	p = p.ScrollBy(maxY + 20)
	assert.Equal(t, maxY, p.ScrollY())

	// Growing the viewport pulls the offset back in range.
	p = p.SetHeight(p.Len())
	assert.Equal(t, 0, p.ScrollY())
}

func TestPageKeys(t *testing.T) {
	p := Panel(NewPage().SetHeight(5))

	p, _ = p.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	assert.Equal(t, 1, p.(Page).ScrollY())

	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	assert.Equal(t, 5, p.(Page).ScrollY())

	p, _ = p.Update(tea.KeyPressMsg{Code: 'G', Text: "G"})
	assert.Equal(t, p.(Page).Len()-5, p.(Page).ScrollY())

	p, _ = p.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	assert.Equal(t, 0, p.(Page).ScrollY())
}

func TestPageWheel(t *testing.T) {
	p := Panel(NewPage().SetHeight(5))

	p, _ = p.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	p, _ = p.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	assert.Equal(t, 2, p.(Page).ScrollY())

	p, _ = p.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	assert.Equal(t, 1, p.(Page).ScrollY())
}

func TestPageIntro(t *testing.T) {
	st := theme.New(theme.LightPalette)
	p := NewPage().SetHeight(10)

	blank := p.SetIntro(1).View(60, 10, st)
	assert.Empty(t, strings.TrimSpace(blank))

	early := p.SetIntro(2).View(60, 10, st)
	assert.NotContains(t, early, "We build brands", "hero waits for frame three")
	assert.Contains(t, early, "Design")

	done := p.SetIntro(IntroFrames + 3)
	assert.True(t, done.IntroDone())
	assert.Contains(t, done.View(60, 10, st), "We build brands")

	out := done.View(60, 4, st)
	assert.Len(t, strings.Split(out, "\n"), 4)
	assert.Empty(t, done.View(60, 0, st))
}

func TestPageHelpBindings(t *testing.T) {
	b := NewPage().HelpBindings()
	require.NotEmpty(t, b)
	assert.Equal(t, "j/k", b[0].Key)
}
