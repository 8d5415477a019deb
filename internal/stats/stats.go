// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/readpace/internal/model"
)

const sparkChars = " .:-=+*#%@"

// ReadingWPM computes words per minute for a timed read.
func ReadingWPM(words int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	minutes := float64(durationMs) / 60000.0
	return float64(words) / minutes
}

// Comprehension returns the share of correct answers in percent.
func Comprehension(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// Summary aggregates the history shown by the stats command.
type Summary struct {
	Tests            int
	AvgWPM           float64
	BestWPM          float64
	AvgComprehension float64
	Runs             int
	CompletedRuns    int
	WordsRead        int
	AvgRunWPM        float64
}

// Summarize aggregates tests and practice runs.
func Summarize(tests []model.TestResult, runs []model.PracticeRun) Summary {
	s := Summary{Tests: len(tests), Runs: len(runs)}
	if len(tests) > 0 {
		var totalWPM, totalComp float64
		for _, t := range tests {
			wpm := ReadingWPM(t.Words, t.DurationMs)
			totalWPM += wpm
			totalComp += Comprehension(t.Correct, t.Total)
			if wpm > s.BestWPM {
				s.BestWPM = wpm
			}
		}
		s.AvgWPM = totalWPM / float64(len(tests))
		s.AvgComprehension = totalComp / float64(len(tests))
	}
	if len(runs) > 0 {
		var totalRate int
		for _, r := range runs {
			totalRate += r.WPM
			s.WordsRead += r.WordsRead
			if r.Completed {
				s.CompletedRuns++
			}
		}
		s.AvgRunWPM = float64(totalRate) / float64(len(runs))
	}
	return s
}

// RenderSummary prints the summary block.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Tests == 0 && s.Runs == 0 {
		_, err := fmt.Fprintln(w, "No history found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Tests: %d", s.Tests),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", s.BestWPM),
		fmt.Sprintf("Avg Comprehension: %.2f%%", s.AvgComprehension),
		fmt.Sprintf("Practice Runs: %d (%d completed)", s.Runs, s.CompletedRuns),
		fmt.Sprintf("Words Paced: %d", s.WordsRead),
		fmt.Sprintf("Avg Pacing Rate: %.0f WPM", s.AvgRunWPM),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints sparklines of test WPM and comprehension, smoothed
// over window and resampled to fit width columns.
func RenderCurves(w io.Writer, tests []model.TestResult, window, width int) error {
	if len(tests) == 0 {
		return nil
	}
	wpms := make([]float64, len(tests))
	comps := make([]float64, len(tests))
	for i, t := range tests {
		wpms[i] = ReadingWPM(t.Words, t.DurationMs)
		comps[i] = Comprehension(t.Correct, t.Total)
	}
	wpms = MovingAverage(wpms, window)
	comps = MovingAverage(comps, window)

	if width <= 0 {
		width = terminalWidth()
	}
	cols := width - curveLabelWidth
	if cols < minCurveWidth {
		cols = minCurveWidth
	}
	if _, err := fmt.Fprintln(w, "Progress"); err != nil {
		return err
	}
	for _, curve := range []struct {
		name   string
		values []float64
	}{
		{name: "WPM", values: wpms},
		{name: "Comp%", values: comps},
	} {
		lo, hi := minMax(curve.values)
		line := fmt.Sprintf("%-6s %s  %.0f..%.0f", curve.name, Sparkline(resample(curve.values, cols)), lo, hi)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTestTable prints one row per test result.
func RenderTestTable(w io.Writer, tests []model.TestResult) error {
	if len(tests) == 0 {
		_, err := fmt.Fprintln(w, "No tests found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Tests"); err != nil {
		return err
	}
	cols := []column{
		{title: "Date"},
		{title: "Passage"},
		{title: "Words", right: true},
		{title: "Time", right: true},
		{title: "WPM", right: true},
		{title: "Comprehension", right: true},
	}
	rows := make([][]string, 0, len(tests))
	for _, t := range tests {
		rows = append(rows, TestRow(t))
	}
	return writeTable(w, cols, rows)
}

// RenderPracticeTable prints one row per practice run.
func RenderPracticeTable(w io.Writer, runs []model.PracticeRun) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No practice runs found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Practice"); err != nil {
		return err
	}
	cols := []column{
		{title: "Date"},
		{title: "Mode"},
		{title: "Rate", right: true},
		{title: "Read", right: true},
		{title: "Done"},
		{title: "Source"},
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, PracticeRow(r))
	}
	return writeTable(w, cols, rows)
}

// TestRow formats a test result as table cells.
func TestRow(t model.TestResult) []string {
	return []string{
		t.EndedAt.Local().Format("2006-01-02 15:04"),
		t.PassageID,
		fmt.Sprintf("%d", t.Words),
		fmt.Sprintf("%.1fs", float64(t.DurationMs)/1000),
		fmt.Sprintf("%d", t.WPM),
		fmt.Sprintf("%d/%d (%.0f%%)", t.Correct, t.Total, Comprehension(t.Correct, t.Total)),
	}
}

// PracticeRow formats a practice run as table cells.
func PracticeRow(r model.PracticeRun) []string {
	done := "no"
	if r.Completed {
		done = "yes"
	}
	return []string{
		r.EndedAt.Local().Format("2006-01-02 15:04"),
		r.Mode,
		fmt.Sprintf("%d", r.WPM),
		fmt.Sprintf("%d/%d", r.WordsRead, r.WordsTotal),
		done,
		r.Source,
	}
}
