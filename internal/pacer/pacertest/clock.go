// Package pacertest provides a virtual-time scheduler for pacer tests.
package pacertest

import (
	"sort"
	"time"

	"github.com/verte-zerg/readpace/internal/pacer"
)

// Clock is a manual pacer.Scheduler. Time only moves through Advance.
type Clock struct {
	// IgnoreStop makes Stop a no-op, simulating a callback already in flight.
	IgnoreStop bool

	now    time.Duration
	seq    int
	timers []*timer
	fired  []time.Duration
}

type timer struct {
	clock   *Clock
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	done    bool
}

// New returns a clock at time zero.
func New() *Clock {
	return &Clock{}
}

// AfterFunc implements pacer.Scheduler.
func (c *Clock) AfterFunc(d time.Duration, fn func()) pacer.Task {
	c.seq++
	t := &timer{clock: c, at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *timer) Stop() bool {
	if t.clock.IgnoreStop || t.stopped || t.done {
		return false
	}
	t.stopped = true
	return true
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Fired returns the virtual times at which callbacks ran.
func (c *Clock) Fired() []time.Duration {
	return append([]time.Duration(nil), c.fired...)
}

// Pending returns the number of timers that are still due to fire.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.done {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, running due callbacks in order. Timers
// scheduled by a callback fire in the same call when they fall inside d.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.done = true
		c.fired = append(c.fired, next.at)
		next.fn()
	}
	c.now = target
	c.compact()
}

func (c *Clock) nextDue(target time.Duration) *timer {
	var due []*timer
	for _, t := range c.timers {
		if t.stopped || t.done || t.at > target {
			continue
		}
		due = append(due, t)
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	return due[0]
}

func (c *Clock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.done {
			live = append(live, t)
		}
	}
	c.timers = live
}
