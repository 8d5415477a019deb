// Package testui provides the Bubble Tea timed reading test.
package testui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/passage"
	"github.com/verte-zerg/readpace/internal/speedtest"
	"github.com/verte-zerg/readpace/internal/store"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle     = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
)

type elapsedMsg time.Time

type keyMap struct {
	Start  key.Binding
	Finish key.Binding
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Select key.Binding
	Submit key.Binding
	Retry  key.Binding
	Quit   key.Binding
	phase  speedtest.Phase
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start:  key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "start")),
		Finish: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done reading")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev question")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next question")),
		Select: key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "answer")),
		Submit: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
		Retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	switch k.phase {
	case speedtest.Reading:
		return []key.Binding{k.Finish, k.Up, k.Down}
	case speedtest.Questions:
		return []key.Binding{k.Up, k.Down, k.Select, k.Prev, k.Next, k.Submit}
	case speedtest.Done:
		return []key.Binding{k.Retry, k.Quit}
	default:
		return []key.Binding{k.Start, k.Quit}
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model implements the Bubble Tea reading test UI.
type Model struct {
	test  *speedtest.Test
	store *store.Store
	now   func() time.Time

	view viewport.Model
	help help.Model
	keys keyMap

	question int
	cursor   int
	elapsed  time.Duration
	errMsg   string

	width  int
	height int
}

// NewModel constructs a test model for p. A nil now uses time.Now.
func NewModel(p passage.Passage, st *store.Store, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{
		test:  speedtest.New(p),
		store: st,
		now:   now,
		view:  viewport.New(0, 0),
		help:  help.New(),
		keys:  defaultKeyMap(),
	}
	return m
}

// Result returns the score once the test is done.
func (m *Model) Result() (speedtest.Result, bool) {
	return m.test.Result(), m.test.Phase() == speedtest.Done
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func tickElapsed() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return elapsedMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case elapsedMsg:
		if m.test.Phase() != speedtest.Reading {
			return m, nil
		}
		m.elapsed = m.test.Elapsed(m.now())
		return m, tickElapsed()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		cmd := m.handleKey(msg)
		m.keys.phase = m.test.Phase()
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.test.Phase() {
	case speedtest.Idle:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.test.Start(m.now())
			m.elapsed = 0
			m.view.GotoTop()
			return tickElapsed()
		}
	case speedtest.Reading:
		if key.Matches(msg, m.keys.Finish) {
			if err := m.test.Finish(m.now()); err != nil {
				m.errMsg = err.Error()
				return nil
			}
			m.elapsed = m.test.Elapsed(m.now())
			m.question, m.cursor = 0, 0
			return nil
		}
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return cmd
	case speedtest.Questions:
		return m.handleQuestionKey(msg)
	case speedtest.Done:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Retry):
			m.test = speedtest.New(m.test.Passage())
			m.elapsed = 0
			m.errMsg = ""
		}
	}
	return nil
}

func (m *Model) handleQuestionKey(msg tea.KeyMsg) tea.Cmd {
	questions := m.test.Passage().Questions
	options := questions[m.question].Options
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Prev):
		m.moveQuestion(-1)
	case key.Matches(msg, m.keys.Next):
		m.moveQuestion(1)
	case key.Matches(msg, m.keys.Select):
		if err := m.test.Answer(m.question, m.cursor); err != nil {
			m.errMsg = err.Error()
			return nil
		}
		if m.test.Answered() == len(questions) {
			return m.submit()
		}
		m.moveQuestion(1)
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}
	return nil
}

func (m *Model) moveQuestion(delta int) {
	count := len(m.test.Passage().Questions)
	m.question = (m.question + delta + count) % count
	m.cursor = 0
	if option, ok := m.test.Selected(m.question); ok {
		m.cursor = option
	}
}

func (m *Model) submit() tea.Cmd {
	res, err := m.test.Submit()
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	if m.store == nil {
		return nil
	}
	record := model.TestResult{
		StartedAt:  res.StartedAt,
		EndedAt:    res.EndedAt,
		PassageID:  res.PassageID,
		Words:      res.Words,
		DurationMs: res.Duration.Milliseconds(),
		WPM:        res.WPM,
		Correct:    res.Correct,
		Total:      res.Total,
	}
	if _, err := m.store.InsertTestResult(context.Background(), record); err != nil {
		m.errMsg = fmt.Sprintf("result not saved: %v", err)
	}
	return nil
}

func (m *Model) layout() {
	width := m.width - 4
	if width > 80 {
		width = 80
	}
	if width < 20 {
		width = 20
	}
	height := m.height - 4
	if height < 3 {
		height = 3
	}
	m.view.Width = width
	m.view.Height = height
	m.view.SetContent(textStyle.Width(width).Render(m.test.Passage().Text))
	m.help.Width = m.width
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	var body string
	switch m.test.Phase() {
	case speedtest.Idle:
		body = m.renderIntro()
	case speedtest.Reading:
		body = m.renderReading()
	case speedtest.Questions:
		body = m.renderQuestion()
	default:
		body = m.renderResult()
	}
	lines := []string{body}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, m.help.View(m.keys))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

func (m *Model) renderIntro() string {
	p := m.test.Passage()
	return strings.Join([]string{
		titleStyle.Render("Reading speed test"),
		"",
		textStyle.Render(p.Title),
		mutedStyle.Render(fmt.Sprintf("%d words · %d questions", p.Words(), len(p.Questions))),
		"",
		mutedStyle.Render("Read the passage at your normal pace, then answer the questions."),
		mutedStyle.Render("The timer starts when you press enter."),
	}, "\n")
}

func (m *Model) renderReading() string {
	header := titleStyle.Render(m.test.Passage().Title) + "  " + mutedStyle.Render(formatElapsed(m.elapsed))
	return header + "\n" + m.view.View()
}

func (m *Model) renderQuestion() string {
	questions := m.test.Passage().Questions
	q := questions[m.question]
	lines := []string{
		mutedStyle.Render(fmt.Sprintf("Question %d of %d · %d answered", m.question+1, len(questions), m.test.Answered())),
		"",
		textStyle.Render(q.Prompt),
		"",
	}
	selected, answered := m.test.Selected(m.question)
	for i, option := range q.Options {
		prefix := "  "
		style := textStyle
		if answered && i == selected {
			style = selectedStyle
		}
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		lines = append(lines, prefix+style.Render(option))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderResult() string {
	res := m.test.Result()
	content := strings.Join([]string{
		titleStyle.Render("Results"),
		"",
		fmt.Sprintf("Reading speed: %d WPM", res.WPM),
		fmt.Sprintf("Comprehension: %d%% (%d/%d)", res.Comprehension, res.Correct, res.Total),
		mutedStyle.Render(fmt.Sprintf("%d words in %s", res.Words, formatElapsed(res.Duration))),
	}, "\n")
	return cardStyle.Render(content)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
