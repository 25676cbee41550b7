// Package store handles SQLite persistence of experiment runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/subcrack/internal/cipher"
	"github.com/verte-zerg/subcrack/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so started_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for run history.
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
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			seed INTEGER NOT NULL,
			key TEXT NOT NULL,
			trials INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_results (
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			length INTEGER NOT NULL,
			success_rate REAL NOT NULL,
			stddev REAL NOT NULL,
			PRIMARY KEY (run_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and its per-length results, assigning an ID when empty.
// Trend runs carry no key; any other key must be a valid 26-letter key.
func (s *Store) InsertRun(ctx context.Context, run model.Run) (id string, err error) {
	if err := checkKey(run.Key); err != nil {
		return "", err
	}
	id = run.ID
	if id == "" {
		id = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, kind, seed, key, trials) VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		run.StartedAt.UTC().Format(timeLayout),
		run.Kind,
		run.Seed,
		run.Key,
		run.Trials,
	); err != nil {
		return "", err
	}

	if len(run.Results) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO run_results (run_id, position, length, success_rate, stddev) VALUES (?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, r := range run.Results {
			if _, err = stmt.ExecContext(ctx, id, i, r.Length, r.SuccessRate, r.StdDev); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns stored runs newest first, filtered by kind and limited to the last N.
func (s *Store) ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.Run, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, cfg.Kind)
	}
	query := fmt.Sprintf(`SELECT id, started_at, kind, seed, key, trials
		FROM runs
		WHERE %s
		ORDER BY started_at DESC`, strings.Join(clauses, " AND "))
	if cfg.Last > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Last)
	}

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

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.Kind, &run.Seed, &run.Key, &run.Trials); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, err
		}
		run.StartedAt = parsed
		if err := checkKey(run.Key); err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		results, err := s.listResults(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Results = results
	}
	return runs, nil
}

func (s *Store) listResults(ctx context.Context, runID string) ([]model.RunResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT length, success_rate, stddev FROM run_results WHERE run_id = ? ORDER BY position ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.RunResult
	for rows.Next() {
		var r model.RunResult
		if err := rows.Scan(&r.Length, &r.SuccessRate, &r.StdDev); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkKey(key string) error {
	if key == "" {
		return nil
	}
	if _, err := cipher.ParseKey(key); err != nil {
		return fmt.Errorf("invalid key %q: %w", key, err)
	}
	return nil
}
