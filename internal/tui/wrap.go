package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/readpace/internal/pacer"
)

// wordLine is the half-open word range [start, end) on one wrapped line.
type wordLine struct {
	start int
	end   int
}

// wrapWords breaks words into lines of at most width display columns with a
// single space between words. A word wider than width gets a line of its
// own. lineOf maps every word index to its line.
func wrapWords(words []string, width int) (lines []wordLine, lineOf []int) {
	lineOf = make([]int, len(words))
	if len(words) == 0 {
		return nil, lineOf
	}
	if width < 1 {
		width = 1
	}
	cur := wordLine{}
	lineWidth := 0
	for i, w := range words {
		ww := runewidth.StringWidth(w)
		if i > cur.start && lineWidth+1+ww > width {
			cur.end = i
			lines = append(lines, cur)
			cur = wordLine{start: i}
			lineWidth = 0
		}
		if i > cur.start {
			lineWidth++
		}
		lineWidth += ww
		lineOf[i] = len(lines)
	}
	cur.end = len(words)
	lines = append(lines, cur)
	return lines, lineOf
}

// renderRunLines styles every word by its segment and joins each wrapped
// line, inserting gap blank lines between them.
func renderRunLines(frame pacer.Frame, lines []wordLine, gap int) string {
	var b strings.Builder
	for li, line := range lines {
		if li > 0 {
			b.WriteString(strings.Repeat("\n", gap+1))
		}
		for i := line.start; i < line.end && i < len(frame.Segments); i++ {
			if i > line.start {
				b.WriteByte(' ')
			}
			seg := frame.Segments[i]
			b.WriteString(segmentStyle(seg.Style).Render(seg.Text))
		}
	}
	return b.String()
}

func segmentStyle(style pacer.Style) lipgloss.Style {
	switch style {
	case pacer.Highlight:
		return highlightStyle
	case pacer.Bold:
		return boldStyle
	case pacer.Plain:
		return plainStyle
	default:
		return fadedStyle
	}
}

// runColumns maps the Run font size to a text column width: larger fonts
// get fewer columns, as larger type would fit fewer characters per line.
func runColumns(width, font int) int {
	if font < 1 {
		font = 1
	}
	_, _, base := pacer.Run.FontBounds()
	cols := int(float64(width) * contentRatio * float64(base) / float64(font))
	if limit := width - 4; cols > limit {
		cols = limit
	}
	if cols < minColumns {
		cols = minColumns
	}
	return cols
}

// runLineGap returns the blank lines between wrapped lines.
func runLineGap(font int) int {
	if font >= 24 {
		return 1
	}
	return 0
}
