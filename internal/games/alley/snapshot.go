package alley

import (
	"github.com/vovakirdan/tui-bowling/internal/bowling"
	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
)

// LaneSnapshot is one bowler's lane as seen by a renderer.
type LaneSnapshot struct {
	Name    string
	CPU     bool
	Rolls   []int
	Score   int
	Frame   int
	Ball    int
	Done    bool
	Knocked [bowling.PinCount]bool // Pins down in the current rack
}

// Snapshot is the complete visible state of a game. It owns all of its
// data, so it can be handed to other goroutines.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Turn       int // Index into Lanes of the bowler at the lane
	Lanes      []LaneSnapshot
	Power      float64
	OptimalMin float64
	OptimalMax float64
	LastPins   int // Pins knocked by the latest ball, -1 before the first
	Message    string
	Paused     bool
	GameOver   bool
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (Snapshot) IsGameSnapshot() {}

// Ensure Snapshot implements multiplayer.GameSnapshot
var _ multiplayer.GameSnapshot = Snapshot{}

// Snapshot returns the current game state for rendering and broadcast.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	return g.snapshot()
}

func (g *Game) snapshot() Snapshot {
	lo, hi := g.meter.Optimal()
	snap := Snapshot{
		Tick:       g.tick,
		Mode:       g.ID(),
		Turn:       g.turn,
		Lanes:      make([]LaneSnapshot, 0, len(g.players)),
		Power:      g.meter.Power(),
		OptimalMin: lo,
		OptimalMax: hi,
		LastPins:   -1,
		Message:    g.message,
		Paused:     g.paused,
		GameOver:   g.gameOver,
	}
	if g.last != nil {
		snap.LastPins = g.last.Pins
	}

	for _, p := range g.players {
		tr := p.lane.Tracker()
		rack := p.lane.Pins()
		ls := LaneSnapshot{
			Name:  p.Name,
			CPU:   p.CPU,
			Rolls: tr.Rolls(),
			Frame: tr.Frame(),
			Ball:  tr.Ball(),
			Done:  tr.Done(),
		}
		ls.Score = bowling.CalculateScore(ls.Rolls)
		for i := range ls.Knocked {
			ls.Knocked[i] = rack.Knocked(i)
		}
		snap.Lanes = append(snap.Lanes, ls)
	}

	return snap
}
