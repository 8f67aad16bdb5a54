// Package multiplayer provides match bookkeeping for two-bowler games:
// Player vs CPU on one terminal and head-to-head matches between two SSH
// sessions, where a single match goroutine owns the shared game.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-bowling/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	PlayerNone = core.PlayerNone
	Player1    = core.Player1
	Player2    = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// NewSessionID returns a fresh session identifier for the given user.
func NewSessionID(user string) SessionID {
	return SessionID(user + "-" + uuid.NewString()[:8])
}

// MatchID uniquely identifies a game match.
type MatchID string

// NewMatchID returns a random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines how a game match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single bowler.
	MatchModeSolo MatchMode = iota

	// MatchModeVsCPU alternates frames between the human and a CPU bowler.
	MatchModeVsCPU

	// MatchModeOnlinePvP alternates frames between two SSH sessions.
	MatchModeOnlinePvP
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeOnlinePvP:
		return "Online"
	default:
		return "Unknown"
	}
}

// Winner returns the player with the higher final score, or PlayerNone on a tie.
func Winner(score1, score2 int) PlayerID {
	switch {
	case score1 > score2:
		return Player1
	case score2 > score1:
		return Player2
	default:
		return PlayerNone
	}
}
