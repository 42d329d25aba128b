package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database and applies the
// schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	for _, stmt := range schema {
		if _, execErr := db.Exec(stmt); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", execErr)
		}
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// StartRun inserts a new run record and returns its ID.
func (s *Store) StartRun(ctx context.Context, dataset string, profileNames []string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (dataset, profiles, started_at) VALUES (?, ?, ?)`,
		dataset, strings.Join(profileNames, ","), timestamp())
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// MarkFilterFallback records that the run sampled the full population
// because class filtering was unusable.
func (s *Store) MarkFilterFallback(ctx context.Context, runID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET filter_fallback = 1 WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("mark filter fallback: %w", err)
	}
	return nil
}

// FinishRun stamps the run's end time and final counters.
func (s *Store) FinishRun(ctx context.Context, runID int64, items, processed, skipped, failed int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, items = ?, processed = ?, skipped = ?, failed = ? WHERE id = ?`,
		timestamp(), items, processed, skipped, failed, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordOutcome appends one (item, profile) outcome for the run.
func (s *Store) RecordOutcome(ctx context.Context, runID int64, item, profile, status, detail string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (run_id, item, profile, status, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, item, profile, status, detail, timestamp())
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// Run is one persisted run record.
type Run struct {
	ID             int64
	Dataset        string
	Profiles       string
	StartedAt      string
	FinishedAt     string
	Items          int
	Processed      int
	Skipped        int
	Failed         int
	FilterFallback bool
}

// RecentRuns returns up to limit runs, most recent first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dataset, profiles, started_at, COALESCE(finished_at, ''),
			items, processed, skipped, failed, filter_fallback
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var fallback int
		if err := rows.Scan(&r.ID, &r.Dataset, &r.Profiles, &r.StartedAt, &r.FinishedAt,
			&r.Items, &r.Processed, &r.Skipped, &r.Failed, &fallback); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.FilterFallback = fallback != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Outcome is one persisted (item, profile) outcome.
type Outcome struct {
	Item    string
	Profile string
	Status  string
	Detail  string
}

// RunOutcomes returns the outcomes recorded for a run.
func (s *Store) RunOutcomes(ctx context.Context, runID int64) ([]Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item, profile, status, detail FROM outcomes WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var o Outcome
		if err := rows.Scan(&o.Item, &o.Profile, &o.Status, &o.Detail); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
