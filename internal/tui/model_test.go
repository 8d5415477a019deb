package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/pacer"
	"github.com/verte-zerg/readpace/internal/source"
	"github.com/verte-zerg/readpace/internal/store"
)

var testNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, text string, st *store.Store) *Model {
	t.Helper()
	m, err := NewModel(Options{
		Config:    model.Config{Mode: "run", WPM: 200},
		Text:      text,
		Source:    "test",
		Store:     st,
		Clipboard: func() (string, error) { return "pasted words", nil },
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "readpace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func press(m *Model, keys string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

func tick(m *Model) {
	m.Update(tickMsg{id: m.sched.next})
}

func TestPlayAdvancesOnTicks(t *testing.T) {
	m := newTestModel(t, "one two three four", nil)
	require.Equal(t, pacer.Ready, m.Snapshot().State)

	press(m, " ")
	require.Equal(t, pacer.Playing, m.Snapshot().State)
	tick(m)
	tick(m)
	assert.Equal(t, 2, m.Snapshot().Index)

	stale := m.sched.next
	press(m, " ")
	assert.Equal(t, pacer.Paused, m.Snapshot().State)
	m.Update(tickMsg{id: stale})
	assert.Equal(t, 2, m.Snapshot().Index)
}

func TestKeysAdjustSettings(t *testing.T) {
	m := newTestModel(t, "a b c d e f g h i j", nil)

	press(m, "+")
	assert.Equal(t, 225, m.Snapshot().Rate)
	press(m, "-")
	press(m, "-")
	assert.Equal(t, 175, m.Snapshot().Rate)

	press(m, "]")
	assert.Equal(t, 20, m.Snapshot().RunFontSize)

	press(m, "m")
	assert.Equal(t, pacer.Flash, m.Snapshot().Mode)
	press(m, "[")
	assert.Equal(t, 46, m.Snapshot().FlashFontSize)
	assert.Equal(t, 20, m.Snapshot().RunFontSize)

	press(m, "5")
	assert.Equal(t, 5, m.Snapshot().Index)
	press(m, ".")
	assert.Equal(t, 6, m.Snapshot().Index)
	press(m, ",")
	press(m, ",")
	assert.Equal(t, 4, m.Snapshot().Index)
	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 9, m.Snapshot().Index)
	press(m, "r")
	assert.Equal(t, 0, m.Snapshot().Index)
	assert.Equal(t, pacer.Ready, m.Snapshot().State)
}

func TestMouseClickOnProgressBarSeeks(t *testing.T) {
	m := newTestModel(t, "a b c d e f g h i j", nil)
	row := m.progressRow()
	require.Equal(t, 21, row)

	m.Update(tea.MouseMsg{X: barIndent + m.bar.Width/2, Y: row, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 5, m.Snapshot().Index)
	assert.Equal(t, pacer.Paused, m.Snapshot().State)

	m.Update(tea.MouseMsg{X: barIndent, Y: row - 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 5, m.Snapshot().Index, "clicks off the bar are ignored")
}

func TestEditorFeedsEngine(t *testing.T) {
	m := newTestModel(t, "", nil)
	require.Equal(t, pacer.Editing, m.Snapshot().State)

	press(m, "hello world")
	assert.Equal(t, []string{"hello", "world"}, m.Snapshot().Words)

	press(m, " ")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.Equal(t, []string{"hello", "world", "pasted", "words"}, m.Snapshot().Words)
	assert.Equal(t, pacer.Editing, m.Snapshot().State)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, pacer.Playing, m.Snapshot().State)

	press(m, "e")
	assert.Equal(t, pacer.Editing, m.Snapshot().State)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, pacer.Ready, m.Snapshot().State)
	assert.Len(t, m.Snapshot().Words, 4)
}

func TestStartWithoutTextKeepsEditorFocused(t *testing.T) {
	m := newTestModel(t, "", nil)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, pacer.Editing, m.Snapshot().State)
	assert.True(t, m.editor.Focused())
	assert.Equal(t, "no text to read", m.status)

	press(m, "hello world")
	assert.Equal(t, "hello world", m.editor.Value())
	assert.Equal(t, []string{"hello", "world"}, m.Snapshot().Words)
	assert.Empty(t, m.status)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, pacer.Playing, m.Snapshot().State)
	assert.False(t, m.editor.Focused())
}

func TestClearEntersEditor(t *testing.T) {
	m := newTestModel(t, "some words", nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, pacer.Editing, m.Snapshot().State)
	assert.Empty(t, m.Snapshot().Words)
	assert.Equal(t, "", m.editor.Value())
}

func TestSourceReloadCommits(t *testing.T) {
	m := newTestModel(t, "old text", nil)
	press(m, " ")

	m.Update(sourceMsg(source.Event{Text: "brand new text here"}))
	s := m.Snapshot()
	assert.Equal(t, pacer.Ready, s.State)
	assert.Equal(t, 0, s.Index)
	assert.Len(t, s.Words, 4)

	m.Update(sourceMsg(source.Event{Err: source.ErrEmpty}))
	assert.Len(t, m.Snapshot().Words, 4)
	assert.Equal(t, "source is empty", m.status)
}

func TestCompletedRunIsStored(t *testing.T) {
	st := openStore(t)
	m := newTestModel(t, "a b", st)

	press(m, " ")
	tick(m)
	tick(m)
	require.Equal(t, pacer.Completed, m.Snapshot().State)

	runs, err := st.ListPracticeRuns(context.Background(), model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Completed)
	assert.Equal(t, 2, runs[0].WordsRead)
	assert.Equal(t, "run", runs[0].Mode)
	assert.Equal(t, "test", runs[0].Source)
}

func TestQuitStoresPartialRun(t *testing.T) {
	st := openStore(t)
	m := newTestModel(t, "a b c d", st)

	press(m, " ")
	tick(m)
	press(m, "q")

	runs, err := st.ListPracticeRuns(context.Background(), model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Completed)
	assert.Equal(t, 1, runs[0].WordsRead)
	assert.Equal(t, 4, runs[0].WordsTotal)
}

func TestSaveFailureIsShownInStatus(t *testing.T) {
	st := openStore(t)
	m := newTestModel(t, "a b c d", st)

	press(m, " ")
	tick(m)
	require.NoError(t, st.Close())
	press(m, "r")

	assert.Contains(t, m.status, "failed to save practice run")
}

func TestRunViewKeepsCurrentWordVisible(t *testing.T) {
	m := newTestModel(t, strings.Repeat("word ", 500), nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEnd})

	s := m.Snapshot()
	row := m.lineOf[s.Index] * (m.gap + 1)
	assert.Greater(t, m.view.YOffset, 0)
	assert.GreaterOrEqual(t, row, m.view.YOffset)
	assert.Less(t, row, m.view.YOffset+m.view.Height)
}

func TestFlashCompletionView(t *testing.T) {
	m, err := NewModel(Options{Config: model.Config{Mode: "flash", WPM: 600}, Text: "quick brown"})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	press(m, " ")
	assert.NotEmpty(t, m.View())
	tick(m)
	tick(m)
	require.Equal(t, pacer.Completed, m.Snapshot().State)
	assert.Contains(t, m.View(), "Reading complete")
}

func TestStatusLine(t *testing.T) {
	m := newTestModel(t, "alpha beta gamma delta", nil)
	status := m.renderStatus()
	for _, want := range []string{"4 words", "19 chars", "200 WPM", "~1 min", "0%", "ready"} {
		assert.Contains(t, status, want)
	}
}

func TestUnknownModeRejected(t *testing.T) {
	_, err := NewModel(Options{Config: model.Config{Mode: "scroll"}})
	assert.Error(t, err)
}
