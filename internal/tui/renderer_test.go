package tui

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinke/navdeck/internal/panel"
	"github.com/hinke/navdeck/internal/panel/paneltest"
	"github.com/hinke/navdeck/internal/tui/panels"
)

func revealPayload() panel.Payload {
	return panel.Payload{
		Category: "services",
		Links:    []panel.Link{{Label: "A"}, {Label: "B"}, {Label: "C"}},
		Cards:    []panel.Card{{Title: "One"}, {Title: "Two"}},
	}
}

func openWith(r *dropdownRenderer, id panel.PanelID, p panel.Payload) {
	r.Populate(id, p)
	r.Transition(panel.Transition{Panel: id, From: panel.Closed, To: panel.Opening})
	r.Transition(panel.Transition{Panel: id, From: panel.Opening, To: panel.Open})
}

func TestRendererStaggersReveal(t *testing.T) {
	sched := paneltest.NewScheduler()
	r := newDropdownRenderer(sched, zerolog.Nop())
	openWith(r, "services", revealPayload())

	v, ok := r.visible("services")
	require.True(t, ok)
	assert.Equal(t, panels.Reveal{}, v.reveal)

	sched.Advance(0)
	assert.Equal(t, panels.Reveal{Links: 1}, v.reveal)

	sched.Advance(linkStagger)
	assert.Equal(t, panels.Reveal{Links: 2}, v.reveal)

	sched.Advance(cardLead - linkStagger)
	assert.Equal(t, panels.Reveal{Links: 2, Cards: 1}, v.reveal)

	sched.Advance(cardStagger)
	assert.Equal(t, panels.Full(revealPayload()), v.reveal)
	assert.Zero(t, sched.Pending())
}

func TestRendererClosingResetsReveal(t *testing.T) {
	sched := paneltest.NewScheduler()
	r := newDropdownRenderer(sched, zerolog.Nop())
	openWith(r, "services", revealPayload())
	sched.Advance(linkStagger)

	r.Transition(panel.Transition{Panel: "services", From: panel.Open, To: panel.Closing})
	assert.Zero(t, sched.Pending(), "closing stops the animation")
	r.Transition(panel.Transition{Panel: "services", From: panel.Closing, To: panel.Closed})

	_, ok := r.visible("services")
	assert.False(t, ok)
	assert.Equal(t, panels.Reveal{}, r.views["services"].reveal)
	assert.True(t, r.views["services"].populated, "content survives a close")
}

func TestRendererPopulateWhileOpenAnimates(t *testing.T) {
	sched := paneltest.NewScheduler()
	r := newDropdownRenderer(sched, zerolog.Nop())

	r.Transition(panel.Transition{Panel: "about", From: panel.Closed, To: panel.Opening})
	r.Transition(panel.Transition{Panel: "about", From: panel.Opening, To: panel.Open})
	assert.Zero(t, sched.Pending(), "nothing to reveal before content")

	r.Populate("about", revealPayload())
	assert.Equal(t, 5, sched.Pending())
}

func TestRendererWithController(t *testing.T) {
	sched := paneltest.NewScheduler()
	r := newDropdownRenderer(sched, zerolog.Nop())
	ctrl := panel.NewController(sched,
		panel.WithRenderer(r),
		panel.WithProvider(panel.ProviderFunc(func(string) panel.Payload { return revealPayload() })),
	)
	require.NoError(t, ctrl.Register(panel.Trigger{ID: "services", Label: "Services", Category: "services"}))

	require.NoError(t, ctrl.HoverEnter("services"))
	sched.Advance(cardLead + cardStagger)

	v, ok := r.visible("services")
	require.True(t, ok)
	assert.Equal(t, panels.Full(revealPayload()), v.reveal)

	require.NoError(t, ctrl.HoverLeave("services"))
	sched.Advance(panel.DefaultCloseDelay)
	_, ok = r.visible("services")
	assert.False(t, ok)
}
