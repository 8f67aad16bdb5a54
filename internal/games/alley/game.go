// Package alley implements the playable bowling modes: a solo game, a game
// against a CPU bowler and the shared game of an online match. Each bowler
// owns a lane from the bowling package; pins are entered by count, with the
// strike and spare keys, or thrown with the power meter.
package alley

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-bowling/internal/bowling"
	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
	"github.com/vovakirdan/tui-bowling/internal/registry"
)

// Mode IDs used for the registry and score storage.
const (
	IDSolo   = "bowling"
	IDVsCPU  = "bowling_cpu"
	IDOnline = "bowling_online"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// playerName overrides the configured human bowler name
var playerName string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetPlayerName sets the name shown for the local human bowler.
func SetPlayerName(name string) {
	playerName = name
}

// Player is one bowler at the alley.
type Player struct {
	Name string
	CPU  bool
	lane *bowling.Lane
}

// Game runs one game of bowling for one or two bowlers. Bowlers take turns
// frame by frame; a bowler who has finished is skipped.
type Game struct {
	mode multiplayer.MatchMode

	cfg        config.BowlingConfig
	cfgSet     bool
	difficulty *config.DifficultyManager
	meter      *PowerMeter
	rng        *rand.Rand
	runtime    core.RuntimeConfig

	players  []*Player
	names    [2]string // Names given by an online match
	bowler   string    // Per-game human name, wins over playerName
	turn     int
	cpuWait  int
	tick     uint64
	gameOver bool
	paused   bool
	message  string
	last     *bowling.Delivery
}

// New creates a solo game.
func New() *Game {
	return &Game{mode: multiplayer.MatchModeSolo}
}

// NewVsCPU creates a game against a CPU bowler.
func NewVsCPU() *Game {
	return &Game{mode: multiplayer.MatchModeVsCPU}
}

// NewOnline creates the shared game of an online match.
// names[0] bowls first.
func NewOnline(names [2]string, seed int64) *Game {
	g := &Game{mode: multiplayer.MatchModeOnlinePvP, names: names}
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

func init() {
	registry.Register(IDSolo, multiplayer.MatchModeSolo, func() registry.Game {
		return New()
	})
	registry.Register(IDVsCPU, multiplayer.MatchModeVsCPU, func() registry.Game {
		return NewVsCPU()
	})
	registry.RegisterOnline(IDOnline, "Bowling (Online)", func(names [2]string, seed int64) (multiplayer.OnlineGame, error) {
		return NewOnline(names, seed), nil
	})
}

// SetConfig makes Reset use cfg instead of loading config from disk.
func (g *Game) SetConfig(cfg config.BowlingConfig) {
	g.cfg = cfg
	g.cfgSet = true
}

// SetBowlerName names the human bowler from the next Reset on.
func (g *Game) SetBowlerName(name string) {
	g.bowler = name
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	switch g.mode {
	case multiplayer.MatchModeVsCPU:
		return IDVsCPU
	case multiplayer.MatchModeOnlinePvP:
		return IDOnline
	default:
		return IDSolo
	}
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	switch g.mode {
	case multiplayer.MatchModeVsCPU:
		return "Bowling (vs CPU)"
	case multiplayer.MatchModeOnlinePvP:
		return "Bowling (Online)"
	default:
		return "Bowling"
	}
}

// Reset starts a fresh game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.cfgSet {
		cfg, err := config.LoadBowling(configPath)
		if err != nil {
			cfg = config.DefaultBowlingConfig()
		}
		if difficultyPreset != "" {
			config.ApplyBowlingPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.meter = NewPowerMeter(g.cfg.Meter)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	human := g.cfg.Player.Name
	if playerName != "" {
		human = playerName
	}
	if g.bowler != "" {
		human = g.bowler
	}

	switch g.mode {
	case multiplayer.MatchModeVsCPU:
		g.players = []*Player{newPlayer(human, false), newPlayer(g.cfg.CPU.Name, true)}
	case multiplayer.MatchModeOnlinePvP:
		g.players = []*Player{newPlayer(g.names[0], false), newPlayer(g.names[1], false)}
	default:
		g.players = []*Player{newPlayer(human, false)}
	}

	g.turn = 0
	g.cpuWait = 0
	g.tick = 0
	g.gameOver = false
	g.paused = false
	g.message = ""
	g.last = nil
}

func newPlayer(name string, cpu bool) *Player {
	return &Player{Name: name, CPU: cpu, lane: bowling.NewLane()}
}

// Step advances the game by one tick with input from the local keyboard.
// The input is applied to whichever human is at the lane.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return g.result()
	}
	return g.advance(in)
}

// StepMulti advances an online game by one tick. Only the bowler at the
// lane is listened to; the other player's input is dropped.
func (g *Game) StepMulti(input core.MultiInputFrame) core.StepResult {
	if g.gameOver {
		return g.result()
	}
	return g.advance(input.Player(core.PlayerID(g.turn + 1)))
}

func (g *Game) advance(in core.InputFrame) core.StepResult {
	g.tick++
	g.meter.Advance()

	p := g.players[g.turn]
	if p.CPU {
		g.cpuWait++
		if g.cpuWait >= g.cfg.CPU.ThinkTicks {
			g.cpuWait = 0
			lane := p.lane
			acc := g.difficulty.Skill(lane.Tracker().Frame())
			g.deliver(lane.Knock(Throw(g.rng, lane.Pins(), lane.Tracker().RackStart(), acc)...))
		}
		return g.result()
	}

	g.handleInput(p, in)
	return g.result()
}

// handleInput applies at most one entry per tick, in order of precedence:
// a pin count, strike, spare, then a meter throw.
func (g *Game) handleInput(p *Player, in core.InputFrame) {
	lane := p.lane
	tr := lane.Tracker()
	rack := lane.Pins()

	switch {
	case in.Has(core.ActionPins):
		g.deliver(lane.KnockCount(in.Pins))
	case in.Has(core.ActionStrike):
		if !tr.RackStart() {
			g.message = "A strike needs a full rack"
			return
		}
		g.deliver(lane.KnockCount(rack.CountStanding()))
	case in.Has(core.ActionSpare):
		if tr.RackStart() {
			g.message = "A spare needs a second ball"
			return
		}
		g.deliver(lane.KnockCount(rack.CountStanding()))
	case in.Has(core.ActionBowl):
		acc := g.meter.Accuracy(g.meter.Power())
		g.deliver(lane.Knock(Throw(g.rng, rack, tr.RackStart(), acc)...))
	}
}

// deliver reports a recorded ball and passes the lane on when the bowler's
// frame is over. A rejected ball changes nothing but the status message.
func (g *Game) deliver(d bowling.Delivery, err error) {
	if err != nil {
		g.message = rejectMessage(err)
		return
	}

	p := g.players[g.turn]
	g.last = &d
	g.message = deliveryMessage(p.Name, d)

	if d.Outcome == bowling.GameOver || p.lane.Tracker().Frame() != d.Frame {
		g.nextTurn()
	}
}

// nextTurn hands the lane to the next bowler who still has frames to bowl.
// The current bowler keeps it when they are the only one left.
func (g *Game) nextTurn() {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		idx := (g.turn + i) % n
		if !g.players[idx].lane.Tracker().Done() {
			g.turn = idx
			g.cpuWait = 0
			g.meter.Reset()
			return
		}
	}
	g.gameOver = true
	g.message = g.finalMessage()
}

func rejectMessage(err error) string {
	switch {
	case errors.Is(err, bowling.ErrGameOver):
		return "This game is finished"
	case errors.Is(err, bowling.ErrInvalidRoll):
		return "Not that many pins standing"
	default:
		return err.Error()
	}
}

func deliveryMessage(name string, d bowling.Delivery) string {
	switch {
	case d.Mark == bowling.MarkStrike:
		return fmt.Sprintf("%s: STRIKE!", name)
	case d.Mark == bowling.MarkSpare:
		return fmt.Sprintf("%s: Spare!", name)
	case d.Pins == 0:
		return fmt.Sprintf("%s: gutter ball", name)
	case d.Pins == 1:
		return fmt.Sprintf("%s: 1 pin", name)
	default:
		return fmt.Sprintf("%s: %d pins", name, d.Pins)
	}
}

func (g *Game) finalMessage() string {
	if len(g.players) < 2 {
		return fmt.Sprintf("Final score: %d", g.Score(core.Player1))
	}
	s1, s2 := g.Score(core.Player1), g.Score(core.Player2)
	switch multiplayer.Winner(s1, s2) {
	case core.Player1:
		return fmt.Sprintf("%s wins %d-%d", g.players[0].Name, s1, s2)
	case core.Player2:
		return fmt.Sprintf("%s wins %d-%d", g.players[1].Name, s2, s1)
	default:
		return fmt.Sprintf("Tie game at %d", s1)
	}
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Message: g.message}
}

// State returns the current game state. Score is the first bowler's.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(core.Player1),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// IsGameOver reports whether every bowler has finished.
func (g *Game) IsGameOver() bool {
	return g.gameOver
}

// Turn returns the player at the lane.
func (g *Game) Turn() core.PlayerID {
	return core.PlayerID(g.turn + 1)
}

// Players returns the bowlers in turn order.
func (g *Game) Players() []*Player {
	return g.players
}

// Score returns a bowler's current score. Unknown players score 0.
func (g *Game) Score(p core.PlayerID) int {
	pl := g.player(p)
	if pl == nil {
		return 0
	}
	return bowling.CalculateScore(pl.lane.Tracker().Rolls())
}

// Rolls returns a copy of a bowler's rolls.
func (g *Game) Rolls(p core.PlayerID) []int {
	pl := g.player(p)
	if pl == nil {
		return nil
	}
	return pl.lane.Tracker().Rolls()
}

// Results reports every human bowler's game for the score table.
func (g *Game) Results() []registry.Result {
	out := make([]registry.Result, 0, len(g.players))
	for i, p := range g.players {
		if p.CPU {
			continue
		}
		id := core.PlayerID(i + 1)
		out = append(out, registry.Result{Player: p.Name, Score: g.Score(id), Rolls: g.Rolls(id)})
	}
	return out
}

func (g *Game) player(p core.PlayerID) *Player {
	idx := int(p) - 1
	if idx < 0 || idx >= len(g.players) {
		return nil
	}
	return g.players[idx]
}

var (
	_ registry.Game          = (*Game)(nil)
	_ registry.Recorder      = (*Game)(nil)
	_ registry.Named         = (*Game)(nil)
	_ multiplayer.OnlineGame = (*Game)(nil)
)
