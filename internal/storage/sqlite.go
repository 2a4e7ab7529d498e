// Package storage provides SQLite-based persistence for course attempts.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when an attempt does not exist.
var ErrNotFound = errors.New("storage: attempt not found")

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for attempt history.
type Store struct {
	db *sql.DB
}

// Attempt is one play of a course, finished or abandoned.
type Attempt struct {
	ID          string // UUID, generated on save when empty
	StageID     string
	Fingerprint uint64 // collider layout hash of the course played
	Player      string
	Difficulty  string
	Strokes     int
	Ticks       uint64
	Complete    bool
	Replay      []byte // encoded trickshot replay, optional
	CreatedAt   time.Time
}

// StageStats contains aggregated statistics for a course.
type StageStats struct {
	StageID     string
	Attempts    int
	Completed   int
	BestStrokes int // 0 when the course was never finished
	AvgStrokes  float64
	LastPlayed  time.Time
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
		CREATE TABLE IF NOT EXISTS attempts (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			stage_id TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT '',
			strokes INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			complete INTEGER NOT NULL DEFAULT 0,
			replay BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_stage_id ON attempts(stage_id);
		CREATE INDEX IF NOT EXISTS idx_attempts_best ON attempts(stage_id, complete, strokes);
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

// SaveAttempt records a play of a course and returns its ID. A random ID is
// assigned when a.ID is empty.
func (s *Store) SaveAttempt(a Attempt) (string, error) {
	if a.StageID == "" {
		return "", errors.New("storage: attempt has no stage id")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	} else if _, err := uuid.Parse(a.ID); err != nil {
		return "", fmt.Errorf("storage: invalid attempt id %q: %w", a.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO attempts
		 (id, stage_id, fingerprint, player, difficulty, strokes, ticks, complete, replay)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.StageID,
		fmt.Sprintf("%016x", a.Fingerprint),
		a.Player,
		a.Difficulty,
		a.Strokes,
		int64(a.Ticks), //nolint:gosec // tick counts stay far below 2^63
		a.Complete,
		a.Replay,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save attempt: %w", err)
	}
	return a.ID, nil
}

const attemptColumns = `id, stage_id, fingerprint, player, difficulty, strokes, ticks, complete, replay, created_at`

// BestAttempts returns the finished attempts on a course with the fewest
// strokes first. Ties go to the faster attempt, then the earlier one.
func (s *Store) BestAttempts(stageID string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+attemptColumns+`
		 FROM attempts
		 WHERE stage_id = ? AND complete = 1
		 ORDER BY strokes ASC, ticks ASC, seq ASC
		 LIMIT ?`,
		stageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	return scanAttempts(rows)
}

// RecentAttempts returns the latest attempts across all courses.
func (s *Store) RecentAttempts(limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+attemptColumns+`
		 FROM attempts
		 ORDER BY seq DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	return scanAttempts(rows)
}

// AttemptByID retrieves one attempt, including its replay.
func (s *Store) AttemptByID(id string) (*Attempt, error) {
	rows, err := s.db.Query(`SELECT `+attemptColumns+` FROM attempts WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempt: %w", err)
	}
	attempts, err := scanAttempts(rows)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &attempts[0], nil
}

// BestStrokes returns the fewest strokes a course was finished in.
// Returns 0 if it was never finished.
func (s *Store) BestStrokes(stageID string) (int, error) {
	var strokes sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(strokes) FROM attempts WHERE stage_id = ? AND complete = 1",
		stageID,
	).Scan(&strokes)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best strokes: %w", err)
	}

	if !strokes.Valid {
		return 0, nil
	}
	return int(strokes.Int64), nil
}

// StageStats retrieves aggregated statistics for a course.
func (s *Store) StageStats(stageID string) (*StageStats, error) {
	stats := &StageStats{StageID: stageID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(complete), 0),
		        COALESCE(MIN(CASE WHEN complete = 1 THEN strokes END), 0),
		        COALESCE(AVG(CASE WHEN complete = 1 THEN strokes END), 0),
		        MAX(created_at)
		 FROM attempts WHERE stage_id = ?`,
		stageID,
	).Scan(&stats.Attempts, &stats.Completed, &stats.BestStrokes, &stats.AvgStrokes, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStageStats retrieves statistics for every course that has been played.
func (s *Store) AllStageStats() (map[string]*StageStats, error) {
	rows, err := s.db.Query(
		`SELECT stage_id,
		        COUNT(*),
		        COALESCE(SUM(complete), 0),
		        COALESCE(MIN(CASE WHEN complete = 1 THEN strokes END), 0),
		        COALESCE(AVG(CASE WHEN complete = 1 THEN strokes END), 0),
		        MAX(created_at)
		 FROM attempts
		 GROUP BY stage_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stage stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*StageStats)
	for rows.Next() {
		var st StageStats
		var lastPlayed any
		if err := rows.Scan(&st.StageID, &st.Attempts, &st.Completed, &st.BestStrokes, &st.AvgStrokes, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.StageID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearStage deletes all attempts on a course.
func (s *Store) ClearStage(stageID string) error {
	_, err := s.db.Exec("DELETE FROM attempts WHERE stage_id = ?", stageID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear attempts: %w", err)
	}
	return nil
}

func scanAttempts(rows *sql.Rows) ([]Attempt, error) {
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var fingerprint string
		var ticks int64
		var createdAt any
		if err := rows.Scan(
			&a.ID,
			&a.StageID,
			&fingerprint,
			&a.Player,
			&a.Difficulty,
			&a.Strokes,
			&ticks,
			&a.Complete,
			&a.Replay,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if _, err := fmt.Sscanf(fingerprint, "%x", &a.Fingerprint); err != nil {
			return nil, fmt.Errorf("storage: bad fingerprint %q: %w", fingerprint, err)
		}
		a.Ticks = uint64(ticks) //nolint:gosec // stored from a uint64
		a.CreatedAt = parseTime(createdAt)
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return attempts, nil
}

// parseTime handles both driver time values and SQLite text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
