// Package storage keeps a SQLite log of finished bowling games and online
// matches, through the modernc.org/sqlite driver. Only results are stored;
// an unfinished game is never saved.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

// Store is safe for concurrent use; the SSH server shares one across
// sessions.
type Store struct {
	db *sql.DB
}

// GameRecord is one bowler's finished game.
type GameRecord struct {
	ID        uuid.UUID
	Mode      string // Registry ID of the mode played, e.g. "bowling_cpu"
	Player    string
	Score     int
	Rolls     []int
	MatchID   string // Set for games bowled in a two-player match
	CreatedAt time.Time
}

// Open opens the score database at path, creating it and its directory on
// first use. A leading ~ is the user's home directory.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.upgrade(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand %s: %w", path, err)
	}
	return filepath.Join(home, rest), nil
}

// migrations run in order; PRAGMA user_version counts the ones applied.
var migrations = []string{
	`CREATE TABLE games (
		id         TEXT PRIMARY KEY,
		mode       TEXT NOT NULL,
		player     TEXT NOT NULL,
		score      INTEGER NOT NULL,
		rolls      TEXT NOT NULL,
		match_id   TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX idx_games_top ON games(mode, score DESC);
	CREATE INDEX idx_games_player ON games(player);`,

	`CREATE TABLE matches (
		match_id   TEXT PRIMARY KEY,
		player1    TEXT NOT NULL,
		player2    TEXT NOT NULL,
		score1     INTEGER NOT NULL,
		score2     INTEGER NOT NULL,
		winner     TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
}

func (s *Store) upgrade() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("storage: read schema version: %w", err)
	}
	for i := version; i < len(migrations); i++ {
		// PRAGMA does not take placeholders.
		stmt := migrations[i] + fmt.Sprintf("\nPRAGMA user_version = %d;", i+1)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("storage: migration %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// SaveGame records a finished game and returns its ID.
// A new ID is assigned when rec.ID is the zero UUID.
func (s *Store) SaveGame(rec GameRecord) (uuid.UUID, error) {
	return saveGame(s.db, rec)
}

// SaveGames records the games of one finished session, all or nothing.
func (s *Store) SaveGames(recs []GameRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, rec := range recs {
		if _, err := saveGame(tx, rec); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit games: %w", err)
	}
	return nil
}

func saveGame(db execer, rec GameRecord) (uuid.UUID, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	var matchID any
	if rec.MatchID != "" {
		matchID = rec.MatchID
	}

	_, err := db.Exec(
		"INSERT INTO games (id, mode, player, score, rolls, match_id) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID.String(), rec.Mode, rec.Player, rec.Score, EncodeRolls(rec.Rolls), matchID,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save game: %w", err)
	}
	return rec.ID, nil
}

const gameColumns = "id, mode, player, score, rolls, match_id, created_at"

// TopScores retrieves the best N games for the given mode.
// An empty mode lists every mode. Results are ordered by score descending.
func (s *Store) TopScores(mode string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := "SELECT " + gameColumns + " FROM games"
	args := []any{}
	if mode != "" {
		query += " WHERE mode = ?"
		args = append(args, mode)
	}
	query += " ORDER BY score DESC, created_at ASC LIMIT ?"
	args = append(args, limit)

	return s.queryGames(query, args...)
}

// PlayerGames retrieves a player's most recent games.
func (s *Store) PlayerGames(player string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryGames(
		"SELECT "+gameColumns+" FROM games WHERE player = ? ORDER BY created_at DESC, rowid DESC LIMIT ?",
		player, limit,
	)
}

// GameByID retrieves a single game. Returns ErrNotFound if it does not exist.
func (s *Store) GameByID(id uuid.UUID) (*GameRecord, error) {
	games, err := s.queryGames("SELECT "+gameColumns+" FROM games WHERE id = ?", id.String())
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return &games[0], nil
}

func (s *Store) queryGames(query string, args ...any) ([]GameRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var (
			g         GameRecord
			id, rolls string
			matchID   sql.NullString
			createdAt any
		)
		if err := rows.Scan(&id, &g.Mode, &g.Player, &g.Score, &rolls, &matchID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: scan game: %w", err)
		}

		if g.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("storage: bad game id %q: %w", id, err)
		}
		if g.Rolls, err = DecodeRolls(rolls); err != nil {
			return nil, fmt.Errorf("storage: game %s: %w", id, err)
		}
		g.MatchID = matchID.String
		g.CreatedAt = parseTime(createdAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: read games: %w", err)
	}
	return games, nil
}

// HighScore is the best game bowled in mode, or 0 when there is none.
func (s *Store) HighScore(mode string) (int, error) {
	var best sql.NullInt64
	row := s.db.QueryRow("SELECT MAX(score) FROM games WHERE mode = ?", mode)
	if err := row.Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: high score for %s: %w", mode, err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes all games for the given mode.
func (s *Store) ClearScores(mode string) error {
	if _, err := s.db.Exec("DELETE FROM games WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: clear %s: %w", mode, err)
	}
	return nil
}

// GameStats summarizes every game bowled in one mode.
type GameStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time // zero when no game was bowled
}

func (s *Store) GetGameStats(mode string) (*GameStats, error) {
	st := GameStats{Mode: mode}
	var last any
	row := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		FROM games WHERE mode = ?`, mode)
	if err := row.Scan(&st.GamesCount, &st.HighScore, &st.AvgScore, &last); err != nil {
		return nil, fmt.Errorf("storage: stats for %s: %w", mode, err)
	}
	st.LastPlayed = parseTime(last)
	return &st, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(time.DateTime, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// EncodeRolls stores a roll sequence as "10,7,3,...".
func EncodeRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ",")
}

// DecodeRolls parses a sequence written by EncodeRolls.
func DecodeRolls(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	rolls := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad roll %q: %w", p, err)
		}
		rolls[i] = n
	}
	return rolls, nil
}
