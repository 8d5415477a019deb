package pacer

import (
	"math"
	"time"
	"unicode/utf8"
)

// State is the playback state of an Engine.
type State int

const (
	Editing State = iota
	Ready
	Playing
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Snapshot is the observable engine state. Words is shared with the engine
// and must not be modified.
type Snapshot struct {
	Words         []string
	Index         int
	State         State
	Mode          Mode
	Rate          int
	RunFontSize   int
	FlashFontSize int
}

// Playing reports whether the cursor is advancing.
func (s Snapshot) Playing() bool {
	return s.State == Playing
}

// FontSize returns the font size of the active mode.
func (s Snapshot) FontSize() int {
	if s.Mode == Flash {
		return s.FlashFontSize
	}
	return s.RunFontSize
}

// WordCount returns the number of words in the sequence.
func (s Snapshot) WordCount() int {
	return len(s.Words)
}

// CharCount returns the number of non-whitespace characters.
func (s Snapshot) CharCount() int {
	total := 0
	for _, w := range s.Words {
		total += utf8.RuneCountInString(w)
	}
	return total
}

// Progress returns Index/len(Words) in [0, 1].
func (s Snapshot) Progress() float64 {
	if len(s.Words) == 0 {
		return 0
	}
	return float64(s.Index) / float64(len(s.Words))
}

// ProgressPercent returns Progress rounded to a whole percentage.
func (s Snapshot) ProgressPercent() int {
	return int(math.Round(s.Progress() * 100))
}

// EstimatedMinutes returns the reading time of the whole text at the current rate.
func (s Snapshot) EstimatedMinutes() int {
	rate := ClampRate(s.Rate)
	return int(math.Ceil(float64(len(s.Words)) / float64(rate)))
}

// Interval returns the tick interval at the current rate.
func (s Snapshot) Interval() time.Duration {
	return Interval(s.Rate)
}

// Frame renders the snapshot with its mode.
func (s Snapshot) Frame() Frame {
	return s.Mode.Render(s.Words, s.Index)
}
