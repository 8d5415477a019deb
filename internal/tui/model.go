// Package tui provides the Bubble Tea practice screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/pacer"
	"github.com/verte-zerg/readpace/internal/source"
	"github.com/verte-zerg/readpace/internal/store"
)

const (
	rateStep = 25
	fontStep = 2
	// rows outside the body: header, progress, status, help
	chromeRows   = 4
	contentRatio = 0.70
	minColumns   = 10
	barIndent    = 2
)

// Options configures a practice screen.
type Options struct {
	Config model.Config
	// Text preloads the sequence and skips the editor.
	Text string
	// Source labels where Text came from in stored runs.
	Source string
	// WatchPath is re-read on change when Config.Watch is set.
	WatchPath string
	Store     *store.Store
	// Clipboard reads text for ctrl+v; nil uses the system clipboard.
	Clipboard func() (string, error)
	// Now stamps stored runs; nil uses time.Now.
	Now func() time.Time
}

type sourceMsg source.Event

type activeRun struct {
	startedAt time.Time
	mode      pacer.Mode
	words     int
}

// Model implements the Bubble Tea practice UI over a pacing engine.
type Model struct {
	config    model.Config
	store     *store.Store
	source    string
	clipboard func() (string, error)
	now       func() time.Time

	engine *pacer.Engine
	sched  *teaScheduler
	snap   pacer.Snapshot

	editor   textarea.Model
	view     viewport.Model
	bar      progress.Model
	help     help.Model
	keys     keyMap
	dirty    bool

	width  int
	height int

	lines  []wordLine
	lineOf []int
	gap    int

	run    *activeRun
	status string

	watch  <-chan source.Event
	cancel context.CancelFunc
}

// NewModel constructs a practice model. With opts.Text the engine starts in
// Ready, otherwise in the editor.
func NewModel(opts Options) (*Model, error) {
	mode := pacer.Run
	if opts.Config.Mode != "" {
		var err error
		if mode, err = pacer.ParseMode(opts.Config.Mode); err != nil {
			return nil, err
		}
	}
	m := &Model{
		config:    opts.Config,
		store:     opts.Store,
		source:    opts.Source,
		clipboard: opts.Clipboard,
		now:       opts.Now,
		sched:     newTeaScheduler(),
		editor:    textarea.New(),
		view:      viewport.New(0, 0),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:      help.New(),
		keys:      defaultKeyMap(),
	}
	if m.clipboard == nil {
		m.clipboard = source.FromClipboard
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.source == "" {
		m.source = "editor"
	}
	m.editor.Placeholder = "Type or paste the text to read..."
	m.editor.ShowLineNumbers = false
	m.editor.CharLimit = 0
	m.editor.MaxHeight = 0

	m.engine = pacer.NewEngine(m.sched, pacer.Settings{
		Mode:          mode,
		Rate:          opts.Config.WPM,
		RunFontSize:   opts.Config.FontRun,
		FlashFontSize: opts.Config.FontFlash,
	})
	m.engine.Subscribe(m.observe)
	m.snap = m.engine.Snapshot()

	if opts.Text != "" {
		m.editor.SetValue(opts.Text)
		m.engine.SetText(opts.Text)
		m.engine.Commit()
	} else {
		m.editor.Focus()
	}
	m.keys.editing = m.snap.State == pacer.Editing

	if opts.Config.Watch && opts.WatchPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		events, err := source.Watch(ctx, opts.WatchPath, source.DefaultDebounce)
		if err != nil {
			cancel()
			return nil, err
		}
		m.watch = events
		m.cancel = cancel
	}
	return m, nil
}

// Close stops the source watcher.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Snapshot returns the last engine state seen by the view.
func (m *Model) Snapshot() pacer.Snapshot {
	return m.snap
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.watch != nil {
		cmds = append(cmds, waitForSource(m.watch))
	}
	return tea.Batch(cmds...)
}

func waitForSource(events <-chan source.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return sourceMsg(ev)
	}
}

// observe runs synchronously inside engine calls.
func (m *Model) observe(s pacer.Snapshot) {
	prev := m.snap
	m.snap = s
	if s.State == pacer.Playing && m.run == nil {
		m.run = &activeRun{startedAt: m.now(), mode: s.Mode, words: len(s.Words)}
	}
	if s.State == pacer.Completed && prev.State != pacer.Completed {
		m.endRun(true)
	}
	m.keys.editing = s.State == pacer.Editing
	m.dirty = true
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tickMsg:
		m.sched.fire(msg.id)
	case sourceMsg:
		m.handleSource(source.Event(msg))
		cmd = waitForSource(m.watch)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		if m.snap.State == pacer.Editing {
			cmd = m.handleEditingKey(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	default:
		if m.snap.State == pacer.Editing {
			m.editor, cmd = m.editor.Update(msg)
		}
	}
	m.refresh()
	return m, tea.Batch(cmd, m.sched.flush())
}

func (m *Model) handleEditingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.DoneEdit):
		m.editor.Blur()
		m.engine.Commit()
		return nil
	case key.Matches(msg, m.keys.Start):
		m.engine.Play()
		if m.engine.State() == pacer.Editing {
			m.status = "no text to read"
			return nil
		}
		m.editor.Blur()
		return nil
	case key.Matches(msg, m.keys.Paste):
		text, err := m.clipboard()
		if err != nil {
			m.status = err.Error()
			return nil
		}
		m.editor.InsertString(text)
		m.engine.SetText(m.editor.Value())
		return nil
	}
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if value := m.editor.Value(); value != before {
		m.status = ""
		m.engine.SetText(value)
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	s := m.snap
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Toggle):
		m.engine.Toggle()
	case key.Matches(msg, m.keys.Back):
		m.engine.StepBackward()
	case key.Matches(msg, m.keys.Forward):
		m.engine.StepForward()
	case key.Matches(msg, m.keys.Reset):
		m.endRun(false)
		m.engine.Reset()
	case key.Matches(msg, m.keys.Mode):
		m.endRun(false)
		m.engine.SetMode(s.Mode.Next())
	case key.Matches(msg, m.keys.Faster):
		m.engine.SetRate(s.Rate + rateStep)
	case key.Matches(msg, m.keys.Slower):
		m.engine.SetRate(s.Rate - rateStep)
	case key.Matches(msg, m.keys.Bigger):
		m.engine.SetFontSize(s.Mode, s.FontSize()+fontStep)
	case key.Matches(msg, m.keys.Smaller):
		m.engine.SetFontSize(s.Mode, s.FontSize()-fontStep)
	case key.Matches(msg, m.keys.Home):
		m.engine.SeekFraction(0)
	case key.Matches(msg, m.keys.End):
		m.engine.SeekFraction(1)
	case key.Matches(msg, m.keys.Seek):
		digit := msg.String()[0] - '0'
		m.engine.SeekFraction(float64(digit) / 10)
	case key.Matches(msg, m.keys.Edit):
		m.endRun(false)
		m.engine.Edit()
		return m.editor.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.endRun(false)
		m.editor.Reset()
		m.engine.SetText("")
		return m.editor.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if msg.Y != m.progressRow() {
		return
	}
	x := msg.X - barIndent
	if x < 0 || x >= m.bar.Width || m.bar.Width <= 0 {
		return
	}
	m.engine.SeekFraction(float64(x) / float64(m.bar.Width))
}

func (m *Model) handleSource(ev source.Event) {
	if ev.Err != nil {
		if errors.Is(ev.Err, source.ErrEmpty) {
			m.status = "source is empty"
			return
		}
		m.status = ev.Err.Error()
		return
	}
	m.endRun(false)
	m.editor.Blur()
	m.editor.SetValue(ev.Text)
	m.engine.SetText(ev.Text)
	m.engine.Commit()
	m.status = "reloaded"
}

func (m *Model) quit() tea.Cmd {
	m.endRun(false)
	m.Close()
	return tea.Quit
}

// endRun stores the active run. Runs that never advanced are dropped.
func (m *Model) endRun(completed bool) {
	run := m.run
	m.run = nil
	if run == nil {
		return
	}
	read := m.snap.Index
	if completed {
		read = run.words
	}
	if read > run.words {
		read = run.words
	}
	if read == 0 || m.store == nil {
		return
	}
	record := model.PracticeRun{
		StartedAt:  run.startedAt,
		EndedAt:    m.now(),
		Mode:       run.mode.String(),
		WPM:        m.snap.Rate,
		WordsTotal: run.words,
		WordsRead:  read,
		Completed:  completed,
		Source:     m.source,
	}
	if _, err := m.store.InsertPracticeRun(context.Background(), record); err != nil {
		m.status = fmt.Sprintf("failed to save practice run: %v", err)
	}
}
