// Package registry is the alley's list of playable modes. Game packages
// register from init, and the CLI, menu and SSH server look modes up by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
)

// Game is a mode played on one terminal. It holds no terminal state: the
// front end feeds it one InputFrame per tick and draws it into a Screen.
type Game interface {
	ID() string // stable key for the CLI and the score table
	Title() string

	// Reset starts over with a new seed and screen size.
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	// Render draws into a cleared screen.
	Render(dst *core.Screen)
	State() core.GameState
}

// Recorder is a Game whose finished games go into the score table.
type Recorder interface {
	// Results has one entry per human bowler.
	Results() []Result
}

// Named is a Game whose human bowler can be renamed before Reset.
type Named interface {
	SetBowlerName(name string)
}

// Result is one human bowler's finished game.
type Result struct {
	Player string
	Score  int
	Rolls  []int
}

type GameInfo struct {
	ID    string
	Title string
	Mode  multiplayer.MatchMode
}

type Factory func() Game

// entry has exactly one of local and online set.
type entry struct {
	info   GameInfo
	local  Factory
	online multiplayer.GameFactory
}

var (
	mu    sync.RWMutex
	modes = map[string]entry{}
)

func add(e entry) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := modes[e.info.ID]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", e.info.ID))
	}
	modes[e.info.ID] = e
}

func lookup(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := modes[id]
	return e, ok
}

// Register adds a local mode. The title comes from a throwaway instance.
// A duplicate ID panics.
func Register(id string, mode multiplayer.MatchMode, f Factory) {
	add(entry{info: GameInfo{ID: id, Title: f().Title(), Mode: mode}, local: f})
}

// RegisterOnline adds the shared game of an online match. Online modes are
// listed but only the coordinator can start them.
func RegisterOnline(id, title string, f multiplayer.GameFactory) {
	add(entry{info: GameInfo{ID: id, Title: title, Mode: multiplayer.MatchModeOnlinePvP}, online: f})
}

// List returns every mode, online ones included, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(modes))
	for _, e := range modes {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create starts a new local game.
func Create(id string) (Game, error) {
	e, ok := lookup(id)
	switch {
	case !ok:
		return nil, fmt.Errorf("registry: unknown game %q", id)
	case e.local == nil:
		return nil, fmt.Errorf("registry: %q is an online mode", id)
	}
	return e.local(), nil
}

func Online(id string) (multiplayer.GameFactory, bool) {
	e, ok := lookup(id)
	return e.online, ok && e.online != nil
}

func Exists(id string) bool {
	_, ok := lookup(id)
	return ok
}

func Info(id string) (GameInfo, bool) {
	e, ok := lookup(id)
	return e.info, ok
}
