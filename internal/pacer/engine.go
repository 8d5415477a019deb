package pacer

import "math"

// Settings seeds a new Engine. Zero values select defaults.
type Settings struct {
	Mode          Mode
	Rate          int
	RunFontSize   int
	FlashFontSize int
}

// Observer receives a snapshot after every engine change.
type Observer func(Snapshot)

// Engine is the word-pacing state machine. It is not safe for concurrent
// use; all calls and scheduler callbacks must happen on one event loop.
type Engine struct {
	sched Scheduler

	words []string
	index int
	state State
	mode  Mode
	rate  int
	fonts [modeCount]int

	task Task
	// gen identifies the armed task; callbacks carrying an older value are stale.
	gen uint64

	observers []Observer
}

// NewEngine returns an engine in the Editing state with no text.
func NewEngine(sched Scheduler, settings Settings) *Engine {
	e := &Engine{
		sched: sched,
		state: Editing,
		mode:  settings.Mode.normalize(),
		rate:  ClampRate(settings.Rate),
	}
	e.fonts[Run] = Run.ClampFont(settings.RunFontSize)
	e.fonts[Flash] = Flash.ClampFont(settings.FlashFontSize)
	return e
}

// Subscribe registers an observer. Observers are called in registration order.
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Words:         e.words,
		Index:         e.index,
		State:         e.state,
		Mode:          e.mode,
		Rate:          e.rate,
		RunFontSize:   e.fonts[Run],
		FlashFontSize: e.fonts[Flash],
	}
}

// State returns the playback state.
func (e *Engine) State() State { return e.state }

// Index returns the cursor position; len(Words()) means complete.
func (e *Engine) Index() int { return e.index }

// IsPlaying reports whether the cursor is advancing.
func (e *Engine) IsPlaying() bool { return e.state == Playing }

// Words returns the current word sequence. It must not be modified.
func (e *Engine) Words() []string { return e.words }

// SetText replaces the word sequence and enters Editing. Playback is torn down.
func (e *Engine) SetText(raw string) {
	e.cancel()
	e.words = Tokenize(raw)
	e.index = 0
	e.state = Editing
	e.notify()
}

// Edit re-enters Editing without changing the text.
func (e *Engine) Edit() {
	e.cancel()
	e.index = 0
	e.state = Editing
	e.notify()
}

// Commit finalizes the text and moves from Editing to Ready.
func (e *Engine) Commit() {
	if e.state != Editing {
		return
	}
	e.index = 0
	e.state = Ready
	e.notify()
}

// SetMode switches presentation. Playback is reset and the mode's stored
// font size is re-clamped into its own range.
func (e *Engine) SetMode(m Mode) {
	m = m.normalize()
	e.cancel()
	e.mode = m
	e.fonts[m] = m.ClampFont(e.fonts[m])
	e.index = 0
	if e.state != Editing {
		e.state = Ready
	}
	e.notify()
}

// SetRate changes the rate. While playing the pending tick is rescheduled so
// the new interval applies to the very next tick.
func (e *Engine) SetRate(wpm int) {
	e.rate = ClampRate(wpm)
	if e.state == Playing {
		e.cancel()
		e.arm()
	}
	e.notify()
}

// SetFontSize stores a clamped font size for m. Other modes are unaffected.
func (e *Engine) SetFontSize(m Mode, px int) {
	m = m.normalize()
	e.fonts[m] = m.ClampFont(px)
	e.notify()
}

// Play starts advancing. From Editing the text is committed first. At or past
// the last word playback restarts from the first one. An empty sequence is a
// no-op.
func (e *Engine) Play() {
	if e.state == Playing {
		return
	}
	if e.state == Editing {
		if len(e.words) == 0 {
			return
		}
		e.state = Ready
	}
	if len(e.words) == 0 {
		return
	}
	if e.index >= len(e.words)-1 {
		e.index = 0
	}
	e.state = Playing
	e.arm()
	e.notify()
}

// Pause stops advancing and keeps the cursor.
func (e *Engine) Pause() {
	if e.state != Playing {
		return
	}
	e.cancel()
	e.state = Paused
	e.notify()
}

// Toggle pauses when playing and plays otherwise.
func (e *Engine) Toggle() {
	if e.state == Playing {
		e.Pause()
		return
	}
	e.Play()
}

// Reset stops playback and moves the cursor to the first word.
func (e *Engine) Reset() {
	e.cancel()
	e.index = 0
	if e.state != Editing {
		e.state = Ready
	}
	e.notify()
}

// SeekTo moves the cursor to index clamped into [0, len-1] and pauses.
// It is ignored while editing or when there are no words.
func (e *Engine) SeekTo(index int) {
	if e.state == Editing || len(e.words) == 0 {
		return
	}
	e.cancel()
	switch {
	case index < 0:
		index = 0
	case index > len(e.words)-1:
		index = len(e.words) - 1
	}
	e.index = index
	e.state = Paused
	e.notify()
}

// SeekFraction seeks to floor(fraction*len), as a click on a progress bar.
func (e *Engine) SeekFraction(fraction float64) {
	if math.IsNaN(fraction) {
		return
	}
	fraction = math.Max(0, math.Min(1, fraction))
	e.SeekTo(int(math.Floor(fraction * float64(len(e.words)))))
}

// StepForward moves one word forward and pauses.
func (e *Engine) StepForward() {
	e.SeekTo(e.index + 1)
}

// StepBackward moves one word back and pauses.
func (e *Engine) StepBackward() {
	e.SeekTo(e.index - 1)
}

func (e *Engine) arm() {
	e.gen++
	gen := e.gen
	e.task = e.sched.AfterFunc(Interval(e.rate), func() {
		e.tick(gen)
	})
}

// cancel must run before any other mutation in a transition out of Playing.
func (e *Engine) cancel() {
	if e.task != nil {
		e.task.Stop()
		e.task = nil
	}
	e.gen++
}

func (e *Engine) tick(gen uint64) {
	if gen != e.gen || e.state != Playing {
		return
	}
	e.task = nil
	if e.index+1 > len(e.words)-1 {
		e.gen++
		e.index = len(e.words)
		e.state = Completed
		e.notify()
		return
	}
	e.index++
	e.arm()
	e.notify()
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, o := range e.observers {
		o(snap)
	}
}
