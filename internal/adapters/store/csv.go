package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hoopsight/clutch/internal/domain/model"
)

// Snapshot filename prefixes. Downstream consumers locate their input by
// the most recently modified file matching the critical prefix.
const (
	criticalPrefix = "critical_moments"
	gamesPrefix    = "all_games"
)

const dateLayout = "20060102"

// CSVStore writes dated CSV snapshots into a directory.
type CSVStore struct {
	dir string
	now func() time.Time
}

// CSVOption applies a configuration option to the CSVStore.
type CSVOption func(*CSVStore)

// WithNow overrides the snapshot timestamp source.
func WithNow(now func() time.Time) CSVOption {
	return func(s *CSVStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewCSV creates a snapshot store rooted at dir, creating it if needed.
func NewCSV(dir string, opts ...CSVOption) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	s := &CSVStore{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// WriteCritical writes one critical-events snapshot and returns its path.
func (s *CSVStore) WriteCritical(ctx context.Context, runID string, events []model.CriticalEvent) (string, error) {
	if len(events) == 0 {
		return "", ErrNothingToPersist
	}

	rows := make([][]string, 0, len(events)+1)
	rows = append(rows, criticalColumns)
	for _, e := range events {
		rows = append(rows, criticalRow(e))
	}

	name := fmt.Sprintf("%s_%s_%s.csv", criticalPrefix, s.now().Format(dateLayout), runID)
	return s.write(ctx, name, rows)
}

// WriteGames writes the game-index snapshot and returns its path.
func (s *CSVStore) WriteGames(ctx context.Context, runID string, refs []model.GameRef) (string, error) {
	if len(refs) == 0 {
		return "", ErrNothingToPersist
	}

	rows := make([][]string, 0, len(refs)+1)
	rows = append(rows, []string{"gameId", "gameDate", "matchup"})
	for _, ref := range refs {
		rows = append(rows, []string{ref.GameID, ref.GameDate, ref.Matchup})
	}

	name := fmt.Sprintf("%s_%s_%s.csv", gamesPrefix, s.now().Format(dateLayout), runID)
	return s.write(ctx, name, rows)
}

// Latest returns the most recently modified critical-events snapshot.
func (s *CSVStore) Latest() (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, criticalPrefix+"_*.csv"))
	if err != nil {
		return "", fmt.Errorf("glob snapshots: %w", err)
	}
	if len(matches) == 0 {
		return "", ErrNoSnapshot
	}

	var (
		latest     string
		latestTime time.Time
	)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = path
			latestTime = info.ModTime()
		}
	}
	if latest == "" {
		return "", ErrNoSnapshot
	}
	return latest, nil
}

// write flushes rows into a new file under the snapshot dir.
func (s *CSVStore) write(ctx context.Context, name string, rows [][]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("sync snapshot: %w", err)
	}
	return path, nil
}

// criticalRow flattens one event into the snapshot column order.
func criticalRow(e model.CriticalEvent) []string {
	return []string{
		e.GameID,
		e.GameDate,
		e.Matchup,
		strconv.Itoa(e.PeriodValue()),
		e.ClockValue(),
		strconv.Itoa(e.TimeRemainingSeconds),
		optionalInt(e.HomeScore),
		optionalInt(e.AwayScore),
		strconv.Itoa(e.ScoreDifferential),
		strconv.Itoa(e.ActionNumber),
		e.TeamTricode,
		e.ActionType,
		e.SubType,
		e.ShotType,
		e.ShotResult,
		e.Description,
	}
}

// optionalInt renders an absent score as an empty cell.
func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
