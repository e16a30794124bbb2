package tui

import (
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hinke/navdeck/internal/panel"
)

// timerFiredMsg is delivered when a scheduler tick elapses.
type timerFiredMsg struct {
	token uint64
}

// workDoneMsg carries the loop-side half of work started with Go.
type workDoneMsg struct {
	apply func()
}

// teaScheduler implements panel.Scheduler on top of Bubble Tea commands.
// Deferred callbacks and off-loop results come back as messages, so they
// always run inside Update on the program's event loop.
type teaScheduler struct {
	next   uint64
	timers map[uint64]func()
	queue  []tea.Cmd
}

var _ panel.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: make(map[uint64]func())}
}

type teaTask struct {
	s     *teaScheduler
	token uint64
}

// Cancel drops the callback; the tick still arrives but finds nothing.
func (t teaTask) Cancel() {
	delete(t.s.timers, t.token)
}

// After implements panel.Scheduler.
func (s *teaScheduler) After(d time.Duration, fn func()) panel.Task {
	s.next++
	token := s.next
	s.timers[token] = fn
	s.queue = append(s.queue, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{token: token}
	}))
	return teaTask{s: s, token: token}
}

// Go implements panel.Scheduler.
func (s *teaScheduler) Go(work func() func()) {
	s.queue = append(s.queue, func() tea.Msg {
		return workDoneMsg{apply: work()}
	})
}

// fire runs the callback for token unless it was cancelled.
func (s *teaScheduler) fire(token uint64) {
	fn, ok := s.timers[token]
	if !ok {
		return
	}
	delete(s.timers, token)
	fn()
}

// pending returns the live timer tokens in scheduling order.
func (s *teaScheduler) pending() []uint64 {
	out := make([]uint64, 0, len(s.timers))
	for tok := range s.timers {
		out = append(out, tok)
	}
	slices.Sort(out)
	return out
}

// drain returns the commands queued since the last drain.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queue) == 0 {
		return nil
	}
	cmds := s.queue
	s.queue = nil
	return tea.Batch(cmds...)
}
