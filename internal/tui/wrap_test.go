package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/readpace/internal/pacer"
)

func TestWrapWordsBreaksOnWidth(t *testing.T) {
	words := []string{"one", "two", "three", "four"}
	lines, lineOf := wrapWords(words, 9)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %+v", len(lines), lines)
	}
	if lines[0] != (wordLine{start: 0, end: 2}) || lines[1] != (wordLine{start: 2, end: 3}) || lines[2] != (wordLine{start: 3, end: 4}) {
		t.Fatalf("unexpected lines: %+v", lines)
	}
	want := []int{0, 0, 1, 2}
	for i := range want {
		if lineOf[i] != want[i] {
			t.Fatalf("word %d: expected line %d, got %d", i, want[i], lineOf[i])
		}
	}
}

func TestWrapWordsLongWordOwnLine(t *testing.T) {
	lines, lineOf := wrapWords([]string{"a", "extraordinary", "b"}, 5)
	if len(lines) != 3 || lineOf[1] != 1 || lineOf[2] != 2 {
		t.Fatalf("unexpected wrap: %+v %v", lines, lineOf)
	}
}

func TestWrapWordsWideRunes(t *testing.T) {
	lines, _ := wrapWords([]string{"日本", "語"}, 7)
	if len(lines) != 1 {
		t.Fatalf("expected one line for width 4+1+2, got %+v", lines)
	}
	lines, _ = wrapWords([]string{"日本", "語"}, 6)
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %+v", lines)
	}
}

func TestWrapWordsEmpty(t *testing.T) {
	lines, lineOf := wrapWords(nil, 10)
	if lines != nil || len(lineOf) != 0 {
		t.Fatalf("expected no lines, got %+v", lines)
	}
}

func TestRenderRunLinesGap(t *testing.T) {
	words := []string{"aa", "bb", "cc"}
	frame := pacer.Run.Render(words, 1)
	lines, _ := wrapWords(words, 5)
	out := renderRunLines(frame, lines, 1)
	rows := strings.Split(out, "\n")
	if len(rows) != 3 || rows[1] != "" {
		t.Fatalf("expected a blank row between lines, got %q", rows)
	}
	if !strings.Contains(rows[0], "aa") || !strings.Contains(rows[0], "bb") || !strings.Contains(rows[2], "cc") {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestRunColumnsScaleWithFont(t *testing.T) {
	if got := runColumns(100, 18); got != 70 {
		t.Fatalf("expected 70 columns at the default font, got %d", got)
	}
	if got := runColumns(100, 36); got != 35 {
		t.Fatalf("expected 35 columns at double font, got %d", got)
	}
	if got := runColumns(100, 12); got != 96 {
		t.Fatalf("expected columns capped at width-4, got %d", got)
	}
	if got := runColumns(8, 32); got != minColumns {
		t.Fatalf("expected minimum columns, got %d", got)
	}
	if runLineGap(18) != 0 || runLineGap(24) != 1 {
		t.Fatalf("unexpected line gaps")
	}
}
