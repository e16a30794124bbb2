// Package paneltest provides a manual clock scheduler and a recording
// renderer for driving panel.Controller deterministically in tests.
package paneltest

import (
	"sort"
	"time"

	"github.com/hinke/navdeck/internal/panel"
)

// Scheduler is a panel.Scheduler whose clock only moves when Advance is
// called. Off-loop work queued with Go runs when RunWork is called.
type Scheduler struct {
	now    time.Duration
	seq    int
	timers []*timer
	work   []func() func()
}

type timer struct {
	due       time.Duration
	seq       int
	fn        func()
	cancelled bool
	fired     bool
}

func (t *timer) Cancel() { t.cancelled = true }

// NewScheduler returns a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After implements panel.Scheduler.
func (s *Scheduler) After(d time.Duration, fn func()) panel.Task {
	s.seq++
	t := &timer{due: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Go implements panel.Scheduler.
func (s *Scheduler) Go(work func() func()) {
	s.work = append(s.work, work)
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers scheduled by a firing callback are honoured if they fall due within
// the same window.
func (s *Scheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		t := s.nextDue(end)
		if t == nil {
			break
		}
		s.now = t.due
		t.fired = true
		t.fn()
	}
	s.now = end
	s.compact()
}

// Pending returns the number of timers that have neither fired nor been
// cancelled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.cancelled {
			n++
		}
	}
	return n
}

// RunWork runs all queued off-loop work and applies the results in queue
// order. It returns how many items ran.
func (s *Scheduler) RunWork() int {
	n := 0
	for len(s.work) > 0 {
		w := s.work[0]
		s.work = s.work[1:]
		if apply := w(); apply != nil {
			apply()
		}
		n++
	}
	return n
}

// QueuedWork returns the number of Go calls not yet run.
func (s *Scheduler) QueuedWork() int { return len(s.work) }

func (s *Scheduler) nextDue(end time.Duration) *timer {
	var live []*timer
	for _, t := range s.timers {
		if !t.fired && !t.cancelled && t.due <= end {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due != live[j].due {
			return live[i].due < live[j].due
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (s *Scheduler) compact() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.fired && !t.cancelled {
			kept = append(kept, t)
		}
	}
	s.timers = kept
}

// Renderer records everything a panel.Controller tells it.
type Renderer struct {
	Transitions []panel.Transition
	Populated   map[panel.PanelID][]panel.Payload
}

// NewRenderer returns an empty recording renderer.
func NewRenderer() *Renderer {
	return &Renderer{Populated: make(map[panel.PanelID][]panel.Payload)}
}

// Transition implements panel.Renderer.
func (r *Renderer) Transition(t panel.Transition) {
	r.Transitions = append(r.Transitions, t)
}

// Populate implements panel.Renderer.
func (r *Renderer) Populate(id panel.PanelID, p panel.Payload) {
	r.Populated[id] = append(r.Populated[id], p)
}

// StatesFor returns the sequence of visibilities id moved into.
func (r *Renderer) StatesFor(id panel.PanelID) []panel.Visibility {
	var out []panel.Visibility
	for _, t := range r.Transitions {
		if t.Panel == id {
			out = append(out, t.To)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Renderer) Reset() {
	r.Transitions = nil
	r.Populated = make(map[panel.PanelID][]panel.Payload)
}
