package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeaSchedulerAfter(t *testing.T) {
	s := newTeaScheduler()
	fired := 0

	s.After(time.Millisecond, func() { fired++ })
	require.Len(t, s.pending(), 1)
	require.NotNil(t, s.drain())
	assert.Nil(t, s.drain(), "drain empties the queue")

	tok := s.pending()[0]
	s.fire(tok)
	assert.Equal(t, 1, fired)

	s.fire(tok)
	assert.Equal(t, 1, fired, "a token fires once")
	assert.Empty(t, s.pending())
}

func TestTeaSchedulerCancel(t *testing.T) {
	s := newTeaScheduler()
	fired := false

	task := s.After(time.Millisecond, func() { fired = true })
	tok := s.pending()[0]
	task.Cancel()

	s.fire(tok)
	assert.False(t, fired)
	assert.Empty(t, s.pending())
}

func TestTeaSchedulerPendingInSchedulingOrder(t *testing.T) {
	s := newTeaScheduler()
	var order []int
	for i := range 20 {
		s.After(time.Millisecond, func() { order = append(order, i) })
	}

	toks := s.pending()
	require.Len(t, toks, 20)
	assert.IsIncreasing(t, toks)
	for _, tok := range toks {
		s.fire(tok)
	}
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestTeaSchedulerTickCarriesToken(t *testing.T) {
	s := newTeaScheduler()
	s.After(0, func() {})
	tok := s.pending()[0]

	msgs := run(s.drain())
	require.Len(t, msgs, 1)
	assert.Equal(t, timerFiredMsg{token: tok}, msgs[0])
}

func TestTeaSchedulerGo(t *testing.T) {
	s := newTeaScheduler()
	applied := ""

	s.Go(func() func() {
		v := "done"
		return func() { applied = v }
	})
	assert.Empty(t, applied, "work does not run until the command does")

	msgs := run(s.drain())
	require.Len(t, msgs, 1)
	done, ok := msgs[0].(workDoneMsg)
	require.True(t, ok)

	done.apply()
	assert.Equal(t, "done", applied)
}
