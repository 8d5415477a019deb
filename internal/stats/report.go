package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Tests    []model.TestResult
	Runs     []model.PracticeRun
	Summary  Summary
	Passages []PassageBest
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	tests, err := st.ListTestResults(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list tests: %w", err)
	}
	runs, err := st.ListPracticeRuns(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list practice runs: %w", err)
	}
	tests = lastN(tests, cfg.Last)
	runs = lastN(runs, cfg.Last)

	return Report{
		Tests:    tests,
		Runs:     runs,
		Summary:  Summarize(tests, runs),
		Passages: BestByPassage(tests),
	}, nil
}

// Render prints the full plain-text report.
func (r Report) Render(w io.Writer, window, width int) error {
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	if r.Summary.Tests == 0 && r.Summary.Runs == 0 {
		return nil
	}
	if err := RenderCurves(w, r.Tests, window, width); err != nil {
		return err
	}
	if err := RenderTestTable(w, r.Tests); err != nil {
		return err
	}
	return RenderPracticeTable(w, r.Runs)
}

func lastN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[len(items)-n:]
	}
	return items
}

type column struct {
	title string
	right bool
}

// writeTable prints a title row and the rows padded by display width,
// followed by a blank line. Cells beyond the last column are dropped.
func writeTable(w io.Writer, cols []column, rows [][]string) error {
	widths := make([]int, len(cols))
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := 0; i < len(cols) && i < len(row); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}
	for _, row := range append([][]string{titles}, rows...) {
		if _, err := fmt.Fprintln(w, tableLine(cols, widths, row)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func tableLine(cols []column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if c.right {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(cells, " ")
}
