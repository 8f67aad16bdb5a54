package multiplayer

import "github.com/vovakirdan/tui-bowling/internal/core"

// SessionEvent is sent from the coordinator or a match to a session.
type SessionEvent interface {
	sessionEvent()
}

// LobbyCreatedEvent tells the host its join code.
type LobbyCreatedEvent struct {
	Code string
}

// LobbyErrorEvent reports a rejected lobby operation.
type LobbyErrorEvent struct {
	Message string
}

// MatchStartedEvent tells each session which side it bowls for.
type MatchStartedEvent struct {
	MatchID  MatchID
	Side     PlayerID
	Code     string
	Opponent string
}

// MatchEndedEvent is sent to both sessions when the match is over.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID // PlayerNone on a tie or when the lobby closed
	Score1  int
	Score2  int
}

// SnapshotEvent carries the latest game state to a session.
type SnapshotEvent struct {
	MatchID  MatchID
	Tick     uint64
	Snapshot GameSnapshot
}

func (LobbyCreatedEvent) sessionEvent() {}
func (LobbyErrorEvent) sessionEvent()   {}
func (MatchStartedEvent) sessionEvent() {}
func (MatchEndedEvent) sessionEvent()   {}
func (SnapshotEvent) sessionEvent()     {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // every bowler finished ten frames
	MatchEndReasonDisconnect                       // a bowler left; the other wins
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Match completed"
	case MatchEndReasonDisconnect:
		return "Opponent disconnected"
	default:
		return "Unknown"
	}
}

// GameSnapshot is game-specific state broadcast to sessions.
type GameSnapshot interface {
	IsGameSnapshot()
}

// CoordinatorMessage is sent from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateLobbyMsg asks for a new lobby hosted by the session.
type CreateLobbyMsg struct {
	SessionID SessionID
	Name      string
}

// JoinLobbyMsg asks to join the lobby with the given code.
type JoinLobbyMsg struct {
	SessionID SessionID
	Name      string
	Code      string
}

// LeaveLobbyMsg withdraws a session from a lobby it hosts or joined.
type LeaveLobbyMsg struct {
	SessionID SessionID
	Code      string
}

// PlayerInputMsg forwards one tick of keyboard input to a match.
type PlayerInputMsg struct {
	MatchID MatchID
	Player  PlayerID
	Input   core.InputFrame
}

// SessionDisconnectedMsg is sent when a session's connection closes.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (CreateLobbyMsg) coordinatorMessage()         {}
func (JoinLobbyMsg) coordinatorMessage()           {}
func (LeaveLobbyMsg) coordinatorMessage()          {}
func (PlayerInputMsg) coordinatorMessage()         {}
func (SessionDisconnectedMsg) coordinatorMessage() {}
