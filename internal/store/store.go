// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/readpace/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for reading history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS practice_runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			words_total INTEGER NOT NULL,
			words_read INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			source TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS test_results (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			passage_id TEXT NOT NULL,
			words INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_practice_runs_ended_at ON practice_runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_test_results_ended_at ON test_results(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertPracticeRun stores a paced reading run.
func (s *Store) InsertPracticeRun(ctx context.Context, run model.PracticeRun) (int64, error) {
	completed := 0
	if run.Completed {
		completed = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO practice_runs (started_at, ended_at, mode, wpm, words_total, words_read, completed, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Mode,
		run.WPM,
		run.WordsTotal,
		run.WordsRead,
		completed,
		run.Source,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertTestResult stores a completed reading test.
func (s *Store) InsertTestResult(ctx context.Context, result model.TestResult) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO test_results (started_at, ended_at, passage_id, words, duration_ms, wpm, correct, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.StartedAt.Format(time.RFC3339Nano),
		result.EndedAt.Format(time.RFC3339Nano),
		result.PassageID,
		result.Words,
		result.DurationMs,
		result.WPM,
		result.Correct,
		result.Total,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func sinceClause(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

// ListPracticeRuns returns practice runs ordered by end time.
func (s *Store) ListPracticeRuns(ctx context.Context, cfg model.StatsConfig) ([]model.PracticeRun, error) {
	where, args := sinceClause(cfg)
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, mode, wpm, words_total, words_read, completed, source
		FROM practice_runs
		WHERE %s
		ORDER BY ended_at ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.PracticeRun
	for rows.Next() {
		var run model.PracticeRun
		var startedAt, endedAt string
		var completed int
		if err := rows.Scan(&run.ID, &startedAt, &endedAt, &run.Mode, &run.WPM, &run.WordsTotal, &run.WordsRead, &completed, &run.Source); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		run.Completed = completed != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListTestResults returns reading test results ordered by end time.
func (s *Store) ListTestResults(ctx context.Context, cfg model.StatsConfig) ([]model.TestResult, error) {
	where, args := sinceClause(cfg)
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, passage_id, words, duration_ms, wpm, correct, total
		FROM test_results
		WHERE %s
		ORDER BY ended_at ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.TestResult
	for rows.Next() {
		var res model.TestResult
		var startedAt, endedAt string
		if err := rows.Scan(&res.ID, &startedAt, &endedAt, &res.PassageID, &res.Words, &res.DurationMs, &res.WPM, &res.Correct, &res.Total); err != nil {
			return nil, err
		}
		if res.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if res.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
