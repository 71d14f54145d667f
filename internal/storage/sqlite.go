// Package storage provides SQLite-based history of finished 2048 games.
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

// Outcomes stored in GameResult.Outcome.
const (
	OutcomeWon       = "won"
	OutcomeGameOver  = "game_over"
	OutcomeAbandoned = "abandoned"
)

// ErrInvalidOutcome is returned when saving a result with an unknown outcome.
var ErrInvalidOutcome = errors.New("storage: invalid outcome")

// Store manages the SQLite database connection for game history.
type Store struct {
	db *sql.DB
}

// GameResult is one finished or abandoned game.
type GameResult struct {
	ID        int64
	SessionID string // Random ID of the game, generated on save when empty
	GameID    string
	Rows      int
	Cols      int
	Outcome   string
	MaxTile   int
	Moves     int
	CreatedAt time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			board_rows INTEGER NOT NULL,
			board_cols INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(game_id, max_tile DESC);
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

// SaveResult records a game. A missing SessionID is generated.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r GameResult) (int64, error) {
	switch r.Outcome {
	case OutcomeWon, OutcomeGameOver, OutcomeAbandoned:
	default:
		return 0, fmt.Errorf("%w %q", ErrInvalidOutcome, r.Outcome)
	}
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO results (session_id, game_id, board_rows, board_cols, outcome, max_tile, moves)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.GameID, r.Rows, r.Cols, r.Outcome, r.MaxTile, r.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, session_id, game_id, board_rows, board_cols, outcome, max_tile, moves, created_at`

// RecentResults retrieves the latest results, newest first.
// An empty gameID selects every game.
func (s *Store) RecentResults(gameID string, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// BestResults retrieves the results with the highest tiles for a game.
// Ties go to the game that needed fewer moves.
func (s *Store) BestResults(gameID string, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE game_id = ?
		 ORDER BY max_tile DESC, moves ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// ResultBySession retrieves a result by its session ID.
// Returns nil without error when no such result exists.
func (s *Store) ResultBySession(sessionID string) (*GameResult, error) {
	var r GameResult
	var createdAt any

	err := s.db.QueryRow(
		`SELECT `+resultColumns+` FROM results WHERE session_id = ?`,
		sessionID,
	).Scan(&r.ID, &r.SessionID, &r.GameID, &r.Rows, &r.Cols, &r.Outcome, &r.MaxTile, &r.Moves, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

func scanResults(rows *sql.Rows) ([]GameResult, error) {
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var r GameResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.GameID, &r.Rows, &r.Cols, &r.Outcome, &r.MaxTile, &r.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BestTile returns the highest tile ever reached in the given game.
// Returns 0 if no results exist.
func (s *Store) BestTile(gameID string) (int, error) {
	var tile sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(max_tile) FROM results WHERE game_id = ?",
		gameID,
	).Scan(&tile)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best tile: %w", err)
	}

	if !tile.Valid {
		return 0, nil
	}

	return int(tile.Int64), nil
}

// ClearResults deletes all results for the given game.
func (s *Store) ClearResults(gameID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	Wins       int
	BestTile   int
	AvgMoves   float64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(max_tile), 0),
		        COALESCE(AVG(moves), 0),
		        MAX(created_at)
		 FROM results WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.BestTile, &stats.AvgMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
		        MAX(max_tile), AVG(moves), MAX(created_at)
		 FROM results
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.Wins, &st.BestTile, &st.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
