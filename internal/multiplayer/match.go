package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-bowling/internal/core"
)

// OnlineGame is a game that two sessions can share.
// Only the match goroutine calls these methods.
type OnlineGame interface {
	// StepMulti advances the game by one tick with input from both players.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// Snapshot returns the state to broadcast to both sessions.
	Snapshot() GameSnapshot

	// IsGameOver reports whether both bowlers have finished.
	IsGameOver() bool

	// Score returns a player's current score.
	Score(p PlayerID) int

	// Rolls returns a copy of a player's roll sequence.
	Rolls(p PlayerID) []int
}

// MatchResult is the outcome of a finished match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Score1  int
	Score2  int
	Rolls1  []int
	Rolls2  []int
	Ticks   uint64
}

// OnlineMatch runs one shared game on its own goroutine. The game is never
// touched from any other goroutine; sessions talk to it through channels.
type OnlineMatch struct {
	id   MatchID
	code string
	game OnlineGame

	sessions [2]SessionHandle // index 0 bowls as Player1
	names    [2]string

	inputs  chan PlayerInputMsg
	pending [2]core.InputFrame

	tick     uint64
	tickRate int

	disconnects chan SessionID
	done        chan struct{}
	doneOnce    sync.Once
}

// NewOnlineMatch creates a match between a host (Player1) and a joiner (Player2).
func NewOnlineMatch(id MatchID, code string, game OnlineGame, host, joiner SessionHandle, names [2]string, tickRate int) *OnlineMatch {
	if tickRate <= 0 {
		tickRate = 30
	}
	return &OnlineMatch{
		id:          id,
		code:        code,
		game:        game,
		sessions:    [2]SessionHandle{host, joiner},
		names:       names,
		inputs:      make(chan PlayerInputMsg, 64),
		pending:     [2]core.InputFrame{core.NewInputFrame(), core.NewInputFrame()},
		tickRate:    tickRate,
		disconnects: make(chan SessionID, 2),
		done:        make(chan struct{}),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code the match was created from.
func (m *OnlineMatch) Code() string {
	return m.code
}

// Names returns the bowlers' display names, Player1 first.
func (m *OnlineMatch) Names() [2]string {
	return m.names
}

// Session returns the session bowling as the given player.
func (m *OnlineMatch) Session(p PlayerID) SessionHandle {
	if p == Player2 {
		return m.sessions[1]
	}
	return m.sessions[0]
}

// SendInput queues player input without blocking. Input is dropped when the
// queue is full.
func (m *OnlineMatch) SendInput(msg PlayerInputMsg) {
	select {
	case m.inputs <- msg:
	default:
	}
}

// PlayerDisconnected ends the match in favor of the other session.
func (m *OnlineMatch) PlayerDisconnected(id SessionID) {
	select {
	case m.disconnects <- id:
	default:
	}
}

// Run drives the match until the game is over or a session leaves.
// onComplete is called exactly once from the match goroutine.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	go m.watchSessions()

	for {
		select {
		case <-ticker.C:
			if result, over := m.runTick(); over {
				onComplete(result)
				return
			}
		case id := <-m.disconnects:
			onComplete(m.forfeit(id))
			return
		case <-m.done:
			return
		}
	}
}

// runTick applies queued input, steps the game and broadcasts a snapshot.
func (m *OnlineMatch) runTick() (MatchResult, bool) {
	m.drainInputs()

	input := core.NewMultiInputFrame()
	input.SetPlayer(Player1, m.pending[0])
	input.SetPlayer(Player2, m.pending[1])
	m.game.StepMulti(input)
	m.pending = [2]core.InputFrame{core.NewInputFrame(), core.NewInputFrame()}
	m.tick++

	evt := SnapshotEvent{MatchID: m.id, Tick: m.tick, Snapshot: m.game.Snapshot()}
	for _, s := range m.sessions {
		s.Send(evt)
	}

	if !m.game.IsGameOver() {
		return MatchResult{}, false
	}
	result := m.result(MatchEndReasonCompleted)
	result.Winner = Winner(result.Score1, result.Score2)
	return result, true
}

// drainInputs merges every queued input into this tick's pending frames.
// Of several pin counts entered in one tick, the last wins.
func (m *OnlineMatch) drainInputs() {
	for {
		select {
		case msg := <-m.inputs:
			idx := 0
			if msg.Player == Player2 {
				idx = 1
			}
			m.pending[idx].Merge(msg.Input)
		default:
			return
		}
	}
}

func (m *OnlineMatch) forfeit(id SessionID) MatchResult {
	result := m.result(MatchEndReasonDisconnect)
	result.Winner = Player1
	if id == m.sessions[0].ID() {
		result.Winner = Player2
	}
	return result
}

func (m *OnlineMatch) result(reason MatchEndReason) MatchResult {
	return MatchResult{
		MatchID: m.id,
		Reason:  reason,
		Score1:  m.game.Score(Player1),
		Score2:  m.game.Score(Player2),
		Rolls1:  m.game.Rolls(Player1),
		Rolls2:  m.game.Rolls(Player2),
		Ticks:   m.tick,
	}
}

func (m *OnlineMatch) watchSessions() {
	var id SessionID
	select {
	case <-m.sessions[0].Done():
		id = m.sessions[0].ID()
	case <-m.sessions[1].Done():
		id = m.sessions[1].ID()
	case <-m.done:
		return
	}
	m.PlayerDisconnected(id)
}

// Stop ends the match loop without reporting a result.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
