package storage

import (
	"fmt"
	"time"
)

// MatchResult is a finished two-player match. Each bowler's game is also
// stored as a GameRecord linked by MatchID.
type MatchResult struct {
	MatchID   string
	Player1   GameRecord
	Player2   GameRecord
	Winner    string // Empty on a tie
	CreatedAt time.Time
}

// SaveMatch stores both games and the match summary in one transaction.
func (s *Store) SaveMatch(m MatchResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, g := range []GameRecord{m.Player1, m.Player2} {
		g.MatchID = m.MatchID
		if _, err := saveGame(tx, g); err != nil {
			return err
		}
	}

	var winner any
	if m.Winner != "" {
		winner = m.Winner
	}
	_, err = tx.Exec(
		`INSERT INTO matches (match_id, player1, player2, score1, score2, winner)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.Player1.Player, m.Player2.Player, m.Player1.Score, m.Player2.Score, winner,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return nil
}

// MatchSummary is one row of the match history.
type MatchSummary struct {
	MatchID   string
	Player1   string
	Player2   string
	Score1    int
	Score2    int
	Winner    string
	CreatedAt time.Time
}

// RecentMatches lists the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT match_id, player1, player2, score1, score2, COALESCE(winner, ''), created_at
		 FROM matches
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchSummary
	for rows.Next() {
		var m MatchSummary
		var createdAt any
		if err := rows.Scan(&m.MatchID, &m.Player1, &m.Player2, &m.Score1, &m.Score2, &m.Winner, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
