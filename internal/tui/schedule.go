package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/readpace/internal/pacer"
)

// tickMsg delivers a scheduled engine callback onto the update loop.
type tickMsg struct {
	id uint64
}

// teaScheduler implements pacer.Scheduler with tea.Tick. Callbacks only run
// from Update, so the engine is never touched off the event loop.
type teaScheduler struct {
	next    uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

type teaTask struct {
	s  *teaScheduler
	id uint64
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: map[uint64]func(){}}
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) pacer.Task {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	}))
	return &teaTask{s: s, id: id}
}

func (t *teaTask) Stop() bool {
	_, ok := t.s.pending[t.id]
	delete(t.s.pending, t.id)
	return ok
}

// fire runs the callback for id unless it was stopped.
func (s *teaScheduler) fire(id uint64) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// flush hands the ticks armed since the last call to Bubble Tea.
func (s *teaScheduler) flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
