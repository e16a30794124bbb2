package tui

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/hinke/navdeck/internal/panel"
	"github.com/hinke/navdeck/internal/tui/panels"
)

// Stagger timings for the dropdown entrance: links slide in one after
// another, cards follow after a short lead.
const (
	linkStagger = 80 * time.Millisecond
	cardLead    = 150 * time.Millisecond
	cardStagger = 120 * time.Millisecond
)

// dropdownView is the presentation state of one panel.
type dropdownView struct {
	vis       panel.Visibility
	content   panel.Payload
	populated bool
	reveal    panels.Reveal
	tasks     []panel.Task
}

// dropdownRenderer implements panel.Renderer for the TUI. It tracks what
// each panel shows and drives the staggered reveal through the scheduler.
type dropdownRenderer struct {
	sched panel.Scheduler
	views map[panel.PanelID]*dropdownView
	log   zerolog.Logger
}

var _ panel.Renderer = (*dropdownRenderer)(nil)

func newDropdownRenderer(sched panel.Scheduler, log zerolog.Logger) *dropdownRenderer {
	return &dropdownRenderer{
		sched: sched,
		views: make(map[panel.PanelID]*dropdownView),
		log:   log,
	}
}

func (r *dropdownRenderer) view(id panel.PanelID) *dropdownView {
	v, ok := r.views[id]
	if !ok {
		v = &dropdownView{}
		r.views[id] = v
	}
	return v
}

// Transition implements panel.Renderer.
func (r *dropdownRenderer) Transition(t panel.Transition) {
	v := r.view(t.Panel)
	v.vis = t.To
	r.log.Trace().Str("panel", string(t.Panel)).Stringer("from", t.From).Stringer("to", t.To).Msg("transition")

	switch t.To {
	case panel.Open:
		if v.populated {
			r.animate(v)
		}
	case panel.Closing:
		r.stop(v)
		v.reveal = panels.Reveal{}
	}
}

// Populate implements panel.Renderer.
func (r *dropdownRenderer) Populate(id panel.PanelID, p panel.Payload) {
	v := r.view(id)
	v.content = p
	v.populated = true
	if v.vis == panel.Open {
		r.animate(v)
	}
}

func (r *dropdownRenderer) animate(v *dropdownView) {
	r.stop(v)
	v.reveal = panels.Reveal{}

	for i := range v.content.Links {
		n := i + 1
		v.tasks = append(v.tasks, r.sched.After(time.Duration(i)*linkStagger, func() {
			v.reveal.Links = max(v.reveal.Links, n)
		}))
	}
	for i := range v.content.Cards {
		n := i + 1
		v.tasks = append(v.tasks, r.sched.After(cardLead+time.Duration(i)*cardStagger, func() {
			v.reveal.Cards = max(v.reveal.Cards, n)
		}))
	}
}

func (r *dropdownRenderer) stop(v *dropdownView) {
	for _, t := range v.tasks {
		t.Cancel()
	}
	v.tasks = nil
}

// visible returns the view of a panel that is currently showing.
func (r *dropdownRenderer) visible(id panel.PanelID) (*dropdownView, bool) {
	v, ok := r.views[id]
	if !ok || !v.vis.Showing() {
		return nil, false
	}
	return v, true
}
