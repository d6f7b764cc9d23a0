// Package storage provides SQLite-based persistence for the leaderboard and
// finished puzzle runs. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultLimit is the number of leaderboard rows returned when none is given.
const DefaultLimit = 100

// ErrDuplicateRun is returned when a run id has already been recorded.
var ErrDuplicateRun = errors.New("storage: run already recorded")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// LeaderboardEntry is one completed breach on the public leaderboard.
type LeaderboardEntry struct {
	ID              int64
	Rank            int // Position in the listing; set by TopEntries
	OperatorName    string
	TimeCompleted   string // Display form, e.g. "2m 15s"
	DurationSeconds int
	CreatedAt       time.Time
}

// Stats summarises the leaderboard.
type Stats struct {
	TotalOperatives int
	FastestBreach   string // TimeCompleted of the fastest entry, empty if none
	FastestSeconds  int
}

// PuzzleRun is a finished local attempt.
type PuzzleRun struct {
	ID             int64
	RunID          string
	LevelID        string
	OperatorName   string
	Moves          int
	ElapsedSeconds float64
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer; SSH sessions and the HTTP server share
	// one store.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			operator_name TEXT NOT NULL,
			time_completed TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_duration ON leaderboard(duration_seconds ASC);

		CREATE TABLE IF NOT EXISTS puzzle_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			operator_name TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			elapsed_seconds REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_puzzle_runs_level ON puzzle_runs(level_id, elapsed_seconds ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SubmitEntry records a leaderboard entry and returns it as stored.
func (s *Store) SubmitEntry(operatorName, timeCompleted string, durationSeconds int) (LeaderboardEntry, error) {
	result, err := s.db.Exec(
		"INSERT INTO leaderboard (operator_name, time_completed, duration_seconds) VALUES (?, ?, ?)",
		operatorName, timeCompleted, durationSeconds,
	)
	if err != nil {
		return LeaderboardEntry{}, fmt.Errorf("storage: cannot save entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return LeaderboardEntry{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return s.entryByID(id)
}

func (s *Store) entryByID(id int64) (LeaderboardEntry, error) {
	var e LeaderboardEntry
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, operator_name, time_completed, duration_seconds, created_at
		 FROM leaderboard WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.OperatorName, &e.TimeCompleted, &e.DurationSeconds, &createdAt)
	if err != nil {
		return LeaderboardEntry{}, fmt.Errorf("storage: cannot read entry %d: %w", id, err)
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// TopEntries returns the fastest entries, ranked from 1.
// Ties keep submission order.
func (s *Store) TopEntries(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.Query(
		`SELECT id, operator_name, time_completed, duration_seconds, created_at
		 FROM leaderboard
		 ORDER BY duration_seconds ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.OperatorName, &e.TimeCompleted, &e.DurationSeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Stats returns the number of distinct operators and the fastest breach.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		"SELECT COUNT(DISTINCT operator_name) FROM leaderboard",
	).Scan(&st.TotalOperatives)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot count operatives: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT time_completed, duration_seconds FROM leaderboard
		 ORDER BY duration_seconds ASC, id ASC LIMIT 1`,
	).Scan(&st.FastestBreach, &st.FastestSeconds)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Stats{}, fmt.Errorf("storage: cannot query fastest breach: %w", err)
	}
	return st, nil
}

// SaveRun records a finished run. A run id can only be saved once;
// repeats return ErrDuplicateRun.
func (s *Store) SaveRun(run PuzzleRun) (int64, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO puzzle_runs
		 (run_id, level_id, operator_name, moves, elapsed_seconds)
		 VALUES (?, ?, ?, ?, ?)`,
		run.RunID, run.LevelID, run.OperatorName, run.Moves, run.ElapsedSeconds,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot check inserted run: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateRun, run.RunID)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, run_id, level_id, operator_name, moves, elapsed_seconds, created_at`

// RecentRuns returns the latest runs, newest first. An empty levelID
// matches every level.
func (s *Store) RecentRuns(levelID string, limit int) ([]PuzzleRun, error) {
	if limit <= 0 {
		limit = 10
	}

	query := "SELECT " + runColumns + " FROM puzzle_runs"
	args := []any{}
	if levelID != "" {
		query += " WHERE level_id = ?"
		args = append(args, levelID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []PuzzleRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestRun returns the fastest run on a level, or nil if there is none.
func (s *Store) BestRun(levelID string) (*PuzzleRun, error) {
	row := s.db.QueryRow(
		"SELECT "+runColumns+` FROM puzzle_runs
		 WHERE level_id = ?
		 ORDER BY elapsed_seconds ASC, moves ASC, id ASC
		 LIMIT 1`,
		levelID,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// RunByID retrieves a run by its run id.
func (s *Store) RunByID(runID string) (*PuzzleRun, error) {
	row := s.db.QueryRow("SELECT "+runColumns+" FROM puzzle_runs WHERE run_id = ?", runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Clear deletes every leaderboard entry and run.
func (s *Store) Clear() error {
	for _, table := range []string{"leaderboard", "puzzle_runs"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (PuzzleRun, error) {
	var run PuzzleRun
	var createdAt any
	err := sc.Scan(&run.ID, &run.RunID, &run.LevelID, &run.OperatorName,
		&run.Moves, &run.ElapsedSeconds, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return PuzzleRun{}, err
	}
	if err != nil {
		return PuzzleRun{}, fmt.Errorf("storage: cannot scan run: %w", err)
	}
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and the string form SQLite returns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
