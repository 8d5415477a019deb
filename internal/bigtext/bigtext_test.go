package bigtext

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesUniformRows(t *testing.T) {
	block, err := Render([]Run{{Text: "read", Weight: Bold}, {Text: "ing", Weight: Regular}}, 24)
	require.NoError(t, err)
	require.NotEmpty(t, block.Rows)

	for _, row := range block.Rows {
		assert.Equal(t, block.Width, utf8.RuneCountInString(row))
	}
	assert.LessOrEqual(t, len(block.Rows), 24)

	ink := strings.ContainsAny(strings.Join(block.Rows, ""), "▀▄█")
	assert.True(t, ink, "expected some glyph pixels")
}

func TestRenderSpansCoverWidth(t *testing.T) {
	block, err := Render([]Run{{Text: "qui", Weight: Bold}, {Text: "ck", Weight: Regular}}, 20)
	require.NoError(t, err)
	require.Len(t, block.Spans, 2)

	assert.Equal(t, 0, block.Spans[0].Start)
	assert.Equal(t, block.Spans[0].End, block.Spans[1].Start)
	assert.Equal(t, block.Width, block.Spans[1].End)
	assert.Equal(t, 1, block.Spans[1].Run)
}

func TestLargerSizeIsTaller(t *testing.T) {
	small, err := Render([]Run{{Text: "word"}}, 16)
	require.NoError(t, err)
	large, err := Render([]Run{{Text: "word"}}, 48)
	require.NoError(t, err)

	assert.Greater(t, len(large.Rows), len(small.Rows))
	assert.Greater(t, large.Width, small.Width)
}

func TestFitShrinksToWidth(t *testing.T) {
	runs := []Run{{Text: "extraordinary", Weight: Bold}}
	full, err := Render(runs, 40)
	require.NoError(t, err)

	fitted, ok := Fit(runs, 40, full.Width/2)
	require.True(t, ok)
	assert.LessOrEqual(t, fitted.Width, full.Width/2)

	_, ok = Fit(runs, 40, 3)
	assert.False(t, ok)
}

func TestRenderRejectsZeroSize(t *testing.T) {
	_, err := Render([]Run{{Text: "a"}}, 0)
	assert.Error(t, err)
}

func TestRenderEmpty(t *testing.T) {
	block, err := Render(nil, 24)
	require.NoError(t, err)
	assert.Empty(t, block.Rows)
}
