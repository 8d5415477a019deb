package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/readpace/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "readpace.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestPracticeRunsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		run := model.PracticeRun{
			StartedAt:  start.Add(time.Duration(i) * time.Hour),
			EndedAt:    start.Add(time.Duration(i)*time.Hour + time.Minute),
			Mode:       "flash",
			WPM:        300,
			WordsTotal: 120,
			WordsRead:  60 * (i + 1),
			Completed:  i == 1,
			Source:     "notes.txt",
		}
		if _, err := st.InsertPracticeRun(ctx, run); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}

	runs, err := st.ListPracticeRuns(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Completed || !runs[1].Completed {
		t.Fatalf("unexpected completion flags: %+v", runs)
	}
	if runs[1].WordsRead != 120 || runs[1].Mode != "flash" || runs[1].Source != "notes.txt" {
		t.Fatalf("unexpected run: %+v", runs[1])
	}
	if !runs[0].StartedAt.Equal(start) {
		t.Fatalf("unexpected start time: %v", runs[0].StartedAt)
	}

	since := start.Add(30 * time.Minute)
	filtered, err := st.ListPracticeRuns(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list filtered runs: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 run after since filter, got %d", len(filtered))
	}
}

func TestTestResultsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	result := model.TestResult{
		StartedAt:  start,
		EndedAt:    start.Add(45 * time.Second),
		PassageID:  "comprehension",
		Words:      150,
		DurationMs: 45000,
		WPM:        200,
		Correct:    2,
		Total:      3,
	}
	id, err := st.InsertTestResult(ctx, result)
	if err != nil {
		t.Fatalf("insert result: %v", err)
	}

	results, err := st.ListTestResults(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	got := results[0]
	if got.ID != id || got.PassageID != "comprehension" || got.WPM != 200 || got.Correct != 2 || got.Total != 3 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.DurationMs != 45000 || got.Words != 150 {
		t.Fatalf("unexpected result sizes: %+v", got)
	}
}
