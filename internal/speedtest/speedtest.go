// Package speedtest implements the timed reading assessment: the reader is
// timed over a passage and then answers its comprehension questions.
package speedtest

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/verte-zerg/readpace/internal/passage"
)

// Phase is the current step of a test.
type Phase int

const (
	Idle Phase = iota
	Reading
	Questions
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Reading:
		return "reading"
	case Questions:
		return "questions"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

var (
	// ErrNotStarted is returned when finishing a test that is not being read.
	ErrNotStarted = errors.New("test has not been started")
	// ErrNotFinished is returned when answering before reading is finished.
	ErrNotFinished = errors.New("reading has not been finished")
)

// Result is the score of a completed test.
type Result struct {
	PassageID     string
	StartedAt     time.Time
	EndedAt       time.Time
	Words         int
	Duration      time.Duration
	WPM           int
	Correct       int
	Total         int
	Comprehension int
}

// Test walks one passage through Idle → Reading → Questions → Done.
type Test struct {
	passage   passage.Passage
	words     int
	phase     Phase
	startedAt time.Time
	endedAt   time.Time
	answers   map[int]int
	result    Result
}

// New returns an idle test over p.
func New(p passage.Passage) *Test {
	return &Test{passage: p, words: p.Words(), answers: map[int]int{}}
}

// Passage returns the passage under test.
func (t *Test) Passage() passage.Passage { return t.passage }

// Phase returns the current phase.
func (t *Test) Phase() Phase { return t.phase }

// Result returns the score once the test is Done.
func (t *Test) Result() Result { return t.result }

// Start begins timing. Any previous answers and result are discarded.
func (t *Test) Start(now time.Time) {
	t.startedAt = now
	t.endedAt = time.Time{}
	t.answers = map[int]int{}
	t.result = Result{}
	t.phase = Reading
}

// Elapsed returns the reading time so far, or the final reading time.
func (t *Test) Elapsed(now time.Time) time.Duration {
	switch t.phase {
	case Reading:
		return now.Sub(t.startedAt)
	case Questions, Done:
		return t.endedAt.Sub(t.startedAt)
	default:
		return 0
	}
}

// Finish stops timing and moves on to the questions.
func (t *Test) Finish(now time.Time) error {
	if t.phase != Reading {
		return ErrNotStarted
	}
	t.endedAt = now
	t.phase = Questions
	return nil
}

// Answer records option as the answer to question q.
func (t *Test) Answer(q, option int) error {
	if t.phase != Questions {
		return ErrNotFinished
	}
	if q < 0 || q >= len(t.passage.Questions) {
		return fmt.Errorf("question %d out of range", q)
	}
	if option < 0 || option >= len(t.passage.Questions[q].Options) {
		return fmt.Errorf("option %d out of range for question %d", option, q)
	}
	t.answers[q] = option
	return nil
}

// Selected returns the recorded answer to question q.
func (t *Test) Selected(q int) (int, bool) {
	option, ok := t.answers[q]
	return option, ok
}

// Answered returns the number of answered questions.
func (t *Test) Answered() int {
	return len(t.answers)
}

// Submit scores the answers. Unanswered questions count as wrong.
func (t *Test) Submit() (Result, error) {
	if t.phase != Questions {
		return Result{}, ErrNotFinished
	}
	res := Score(t.words, t.endedAt.Sub(t.startedAt), t.passage.Questions, t.answers)
	res.PassageID = t.passage.ID
	res.StartedAt = t.startedAt
	res.EndedAt = t.endedAt
	t.result = res
	t.phase = Done
	return res, nil
}

// Score computes words per minute and the comprehension percentage.
func Score(words int, d time.Duration, questions []passage.Question, answers map[int]int) Result {
	res := Result{Words: words, Duration: d, Total: len(questions)}
	if minutes := d.Minutes(); minutes > 0 {
		res.WPM = int(math.Round(float64(words) / minutes))
	}
	for i, q := range questions {
		if option, ok := answers[i]; ok && option == q.Answer {
			res.Correct++
		}
	}
	if res.Total > 0 {
		res.Comprehension = int(math.Round(float64(res.Correct) / float64(res.Total) * 100))
	}
	return res
}
