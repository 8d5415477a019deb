package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "readpace.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		id, err := st.InsertTestResult(ctx, model.TestResult{
			StartedAt:  start,
			EndedAt:    end,
			PassageID:  "comprehension",
			Words:      100 * (i + 1),
			DurationMs: end.Sub(start).Milliseconds(),
			WPM:        200 * (i + 1),
			Correct:    i,
			Total:      3,
		})
		if err != nil {
			t.Fatalf("insert test: %v", err)
		}
		ids = append(ids, id)
	}
	if _, err := st.InsertPracticeRun(ctx, model.PracticeRun{
		StartedAt:  time.Unix(0, 0),
		EndedAt:    time.Unix(60, 0),
		Mode:       "run",
		WPM:        300,
		WordsTotal: 50,
		WordsRead:  50,
		Completed:  true,
		Source:     "editor",
	}); err != nil {
		t.Fatalf("insert run: %v", err)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Tests) != 2 {
		t.Fatalf("expected 2 tests, got %d", len(report.Tests))
	}
	if report.Tests[0].ID != ids[1] || report.Tests[1].ID != ids[2] {
		t.Fatalf("unexpected test ids: %+v", report.Tests)
	}
	if report.Summary.BestWPM != 600 {
		t.Fatalf("expected best WPM 600, got %.2f", report.Summary.BestWPM)
	}
	if report.Summary.CompletedRuns != 1 || report.Summary.WordsRead != 50 {
		t.Fatalf("unexpected run summary: %+v", report.Summary)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, 2, 60); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Progress", "Tests", "Practice", "comprehension", "2/3 (67%)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Summary{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No history found." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestWriteTableAlignsColumns(t *testing.T) {
	cols := []column{{title: "Passage"}, {title: "WPM", right: true}, {title: "Comprehension", right: true}}
	rows := [][]string{
		{"comprehension", "250", "2/3"},
		{"short", "90", "3/3"},
	}
	var buf bytes.Buffer
	if err := writeTable(&buf, cols, rows); err != nil {
		t.Fatalf("writeTable: %v", err)
	}
	want := "Passage       WPM Comprehension\n" +
		"comprehension 250           2/3\n" +
		"short          90           3/3\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteTableWideRunesAndShortRows(t *testing.T) {
	cols := []column{{title: "Src"}, {title: "N", right: true}}
	var buf bytes.Buffer
	if err := writeTable(&buf, cols, [][]string{{"日本", "1"}, {"x"}}); err != nil {
		t.Fatalf("writeTable: %v", err)
	}
	want := "Src  N\n日本 1\nx     \n\n"
	if buf.String() != want {
		t.Fatalf("unexpected table: %q", buf.String())
	}
}
