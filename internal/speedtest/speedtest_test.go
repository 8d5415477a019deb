package speedtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/readpace/internal/passage"
)

func samplePassage() passage.Passage {
	return passage.Passage{
		ID:    "sample",
		Title: "Sample",
		Text:  "one two three four five six seven eight nine ten",
		Questions: []passage.Question{
			{Prompt: "first?", Options: []string{"a", "b"}, Answer: 0},
			{Prompt: "second?", Options: []string{"a", "b", "c"}, Answer: 2},
			{Prompt: "third?", Options: []string{"a", "b"}, Answer: 1},
		},
	}
}

func TestFullFlow(t *testing.T) {
	test := New(samplePassage())
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	test.Start(start)
	assert.Equal(t, Reading, test.Phase())
	assert.Equal(t, 2*time.Second, test.Elapsed(start.Add(2*time.Second)))

	require.NoError(t, test.Finish(start.Add(3*time.Second)))
	assert.Equal(t, Questions, test.Phase())
	assert.Equal(t, 3*time.Second, test.Elapsed(start.Add(time.Hour)))

	require.NoError(t, test.Answer(0, 0))
	require.NoError(t, test.Answer(1, 1))
	require.NoError(t, test.Answer(1, 2))
	assert.Equal(t, 2, test.Answered())

	res, err := test.Submit()
	require.NoError(t, err)
	assert.Equal(t, Done, test.Phase())
	assert.Equal(t, "sample", res.PassageID)
	assert.Equal(t, 10, res.Words)
	assert.Equal(t, 200, res.WPM)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 67, res.Comprehension)
	assert.Equal(t, res, test.Result())
}

func TestOutOfOrderCalls(t *testing.T) {
	test := New(samplePassage())
	now := time.Now()

	assert.ErrorIs(t, test.Finish(now), ErrNotStarted)
	assert.ErrorIs(t, test.Answer(0, 0), ErrNotFinished)
	_, err := test.Submit()
	assert.ErrorIs(t, err, ErrNotFinished)

	test.Start(now)
	assert.ErrorIs(t, test.Answer(0, 0), ErrNotFinished)
	require.NoError(t, test.Finish(now.Add(time.Minute)))
	assert.Error(t, test.Answer(5, 0))
	assert.Error(t, test.Answer(0, 9))
}

func TestRestartClearsAnswers(t *testing.T) {
	test := New(samplePassage())
	now := time.Now()
	test.Start(now)
	require.NoError(t, test.Finish(now.Add(time.Second)))
	require.NoError(t, test.Answer(0, 1))

	test.Start(now.Add(time.Minute))
	assert.Equal(t, 0, test.Answered())
	_, ok := test.Selected(0)
	assert.False(t, ok)
}

func TestScoreZeroDuration(t *testing.T) {
	res := Score(100, 0, nil, nil)
	assert.Equal(t, 0, res.WPM)
	assert.Equal(t, 0, res.Comprehension)
}
