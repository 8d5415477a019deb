// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Mode            string
	WPM             int
	FontRun         int
	FontFlash       int
	CenterThreshold int
	Watch           bool
}

// TestConfig defines reading test settings.
type TestConfig struct {
	PassagesPath string
	PassageID    string
}

// StatsConfig defines filters and options for history output.
type StatsConfig struct {
	Since  *time.Time
	Last   int
	Window int
}

// PracticeRun captures one paced reading run.
type PracticeRun struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	Mode       string
	WPM        int
	WordsTotal int
	WordsRead  int
	Completed  bool
	Source     string
}

// TestResult captures a completed reading speed test.
type TestResult struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	PassageID  string
	Words      int
	DurationMs int64
	WPM        int
	Correct    int
	Total      int
}
