package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readpace/internal/bigtext"
	"github.com/verte-zerg/readpace/internal/pacer"
)

// flashPixelScale converts the Flash font size to rasterizer pixels; one
// terminal row is two pixels tall.
const flashPixelScale = 0.4

var (
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A")).Bold(true)
	fadedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	boldStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	plainStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
)

func (m *Model) bodyHeight() int {
	h := m.height - chromeRows
	if m.help.ShowAll {
		h -= len(m.keys.FullHelp()[0]) - 1
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) progressRow() int {
	return 1 + m.bodyHeight()
}

func (m *Model) resize() {
	inner := m.width - 2*barIndent
	if inner < 1 {
		inner = 1
	}
	m.bar.Width = inner
	m.help.Width = m.width
	m.editor.SetWidth(inner)
	m.editor.SetHeight(m.bodyHeight())
	m.view.Width = m.width
	m.view.Height = m.bodyHeight()
	m.dirty = true
}

// refresh re-lays out Run mode text and keeps the current word in view.
func (m *Model) refresh() {
	if !m.dirty || m.width == 0 {
		return
	}
	m.dirty = false
	s := m.snap
	if s.Mode != pacer.Run {
		return
	}
	cols := runColumns(m.width, s.RunFontSize)
	m.lines, m.lineOf = wrapWords(s.Words, cols)
	m.gap = runLineGap(s.RunFontSize)
	content := lipgloss.NewStyle().Width(cols).Render(renderRunLines(s.Frame(), m.lines, m.gap))
	m.view.SetContent(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content))
	if s.Index >= len(s.Words) {
		return
	}
	row := m.lineOf[s.Index] * (m.gap + 1)
	total := len(m.lines)*(m.gap+1) - m.gap
	m.view.SetYOffset(recenterOffset(row, m.view.YOffset, m.view.Height, m.config.CenterThreshold, total))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	body := m.renderBody()
	body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, body)
	indent := strings.Repeat(" ", barIndent)
	rows := []string{
		m.renderHeader(),
		body,
		indent + m.bar.ViewAs(m.snap.Progress()),
		indent + m.renderStatus(),
		indent + m.help.View(m.keys),
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderHeader() string {
	s := m.snap
	title := fmt.Sprintf("readpace · %s · %dpx", s.Mode, s.FontSize())
	if s.State == pacer.Editing {
		title = "readpace · editing"
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(title))
}

func (m *Model) renderBody() string {
	s := m.snap
	switch {
	case s.State == pacer.Editing:
		return m.editor.View()
	case len(s.Words) == 0:
		return fadedStyle.Render("No text. Press e to edit.")
	case s.Mode == pacer.Run:
		return m.view.View()
	case s.State == pacer.Completed:
		return doneStyle.Render("Reading complete") + "\n" + fadedStyle.Render(fmt.Sprintf("%d words", s.WordCount()))
	default:
		return m.renderFlash(s.Frame(), s.FlashFontSize)
	}
}

// renderFlash draws the bionic split as big text, falling back to styled
// terminal text when it does not fit.
func (m *Model) renderFlash(frame pacer.Frame, font int) string {
	if len(frame.Segments) == 0 {
		return ""
	}
	runs := make([]bigtext.Run, len(frame.Segments))
	for i, seg := range frame.Segments {
		runs[i] = bigtext.Run{Text: seg.Text, Weight: bigtext.Regular}
		if seg.Style == pacer.Bold {
			runs[i].Weight = bigtext.Bold
		}
	}
	px := int(float64(font) * flashPixelScale)
	block, ok := bigtext.Fit(runs, px, m.width-2*barIndent)
	if !ok || len(block.Rows) == 0 || len(block.Rows) > m.bodyHeight() {
		return renderSegments(frame.Segments)
	}
	rows := make([]string, len(block.Rows))
	for i, row := range block.Rows {
		rows[i] = colorSpans(row, block.Spans, frame.Segments)
	}
	return strings.Join(rows, "\n")
}

func colorSpans(row string, spans []bigtext.Span, segments []pacer.Segment) string {
	runes := []rune(row)
	var b strings.Builder
	for _, span := range spans {
		end := span.End
		if end > len(runes) {
			end = len(runes)
		}
		if span.Start >= end {
			continue
		}
		b.WriteString(segmentStyle(segments[span.Run].Style).Render(string(runes[span.Start:end])))
	}
	return b.String()
}

func renderSegments(segments []pacer.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(segmentStyle(seg.Style).Render(seg.Text))
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	s := m.snap
	segments := []string{
		fmt.Sprintf("%d words", s.WordCount()),
		fmt.Sprintf("%d chars", s.CharCount()),
		fmt.Sprintf("%d WPM", s.Rate),
		fmt.Sprintf("~%d min", s.EstimatedMinutes()),
		fmt.Sprintf("%d%%", s.ProgressPercent()),
		s.State.String(),
	}
	out := footerStyle.Render(strings.Join(segments, " · "))
	if m.status != "" {
		out += "  " + noticeStyle.Render(m.status)
	}
	return out
}
