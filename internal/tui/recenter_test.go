package tui

import "testing"

func TestRecenterOffset(t *testing.T) {
	cases := []struct {
		name                                   string
		row, offset, height, threshold, total int
		want                                   int
	}{
		{name: "visible without threshold", row: 8, offset: 0, height: 10, threshold: 0, total: 50, want: 0},
		{name: "below view without threshold", row: 12, offset: 0, height: 10, threshold: 0, total: 50, want: 7},
		{name: "above view", row: 2, offset: 20, height: 10, threshold: 0, total: 50, want: 0},
		{name: "within threshold", row: 7, offset: 0, height: 10, threshold: 2, total: 50, want: 0},
		{name: "past threshold", row: 8, offset: 0, height: 10, threshold: 2, total: 50, want: 3},
		{name: "clamped at end", row: 48, offset: 0, height: 10, threshold: 2, total: 50, want: 40},
		{name: "short content", row: 3, offset: 0, height: 10, threshold: 1, total: 5, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := recenterOffset(tc.row, tc.offset, tc.height, tc.threshold, tc.total)
			if got != tc.want {
				t.Fatalf("expected offset %d, got %d", tc.want, got)
			}
		})
	}
}
