package pacer

import "time"

// Task is a scheduled callback that has not necessarily fired yet.
type Task interface {
	// Stop cancels the task. It reports whether the call prevented the task
	// from firing.
	Stop() bool
}

// Scheduler runs fn once after d on the caller's event loop. Callbacks must
// never run concurrently with other Engine calls.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

const (
	MinRate     = 50
	MaxRate     = 1200
	DefaultRate = 200
)

// ClampRate clamps wpm into [MinRate, MaxRate]. Zero selects DefaultRate.
func ClampRate(wpm int) int {
	switch {
	case wpm == 0:
		return DefaultRate
	case wpm < MinRate:
		return MinRate
	case wpm > MaxRate:
		return MaxRate
	}
	return wpm
}

// Interval converts a rate in words per minute to the delay between ticks.
func Interval(wpm int) time.Duration {
	return time.Minute / time.Duration(ClampRate(wpm))
}
