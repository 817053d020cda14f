package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // CGO-free SQLite

	"github.com/hoopsight/clutch/internal/domain/model"
)

// SQLiteStore archives critical events across runs in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the archive database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	// WAL + busy timeout to avoid "database is locked". modernc takes
	// pragmas as _pragma=name(value) pairs, not the mattn-style keys.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS critical_events(
	  id             INTEGER PRIMARY KEY,
	  run_id         TEXT    NOT NULL,
	  game_id        TEXT    NOT NULL,
	  game_date      TEXT    NOT NULL,
	  matchup        TEXT    NOT NULL,
	  period         INTEGER NOT NULL,
	  clock          TEXT    NOT NULL,
	  time_remaining INTEGER NOT NULL CHECK (time_remaining >= 0),
	  home_score     INTEGER,
	  away_score     INTEGER,
	  score_diff     INTEGER NOT NULL,
	  action_number  INTEGER NOT NULL,
	  team_tricode   TEXT,
	  action_type    TEXT,
	  sub_type       TEXT,
	  shot_type      TEXT,
	  shot_result    TEXT,
	  description    TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_critical_game ON critical_events(game_id);
	CREATE INDEX IF NOT EXISTS idx_critical_run  ON critical_events(run_id);
	`)
	if err != nil {
		return fmt.Errorf("create archive tables: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WriteCritical inserts one run's events in a single transaction and
// returns the run id as the destination label.
func (s *SQLiteStore) WriteCritical(ctx context.Context, runID string, events []model.CriticalEvent) (string, error) {
	if len(events) == 0 {
		return "", ErrNothingToPersist
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin archive tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO critical_events(
		run_id, game_id, game_date, matchup, period, clock, time_remaining,
		home_score, away_score, score_diff, action_number, team_tricode,
		action_type, sub_type, shot_type, shot_result, description
	) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("prepare archive insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.ExecContext(ctx,
			runID,
			e.GameID,
			e.GameDate,
			e.Matchup,
			e.PeriodValue(),
			e.ClockValue(),
			e.TimeRemainingSeconds,
			nullableInt(e.HomeScore),
			nullableInt(e.AwayScore),
			e.ScoreDifferential,
			e.ActionNumber,
			e.TeamTricode,
			e.ActionType,
			e.SubType,
			e.ShotType,
			e.ShotResult,
			e.Description,
		); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("insert critical event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit archive tx: %w", err)
	}
	return runID, nil
}

// CountRun returns the number of archived events for a run.
func (s *SQLiteStore) CountRun(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM critical_events WHERE run_id = ?`, runID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count archived events: %w", err)
	}
	return n, nil
}

// nullableInt maps an absent score to SQL NULL.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
