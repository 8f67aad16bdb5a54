package core

// RuntimeConfig is what the front end hands a game on Reset.
type RuntimeConfig struct {
	ScreenW, ScreenH int
	TickRate         int   // ticks per second
	Seed             int64 // 0 lets the front end pick one from the clock
}

func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
}

// GameState is the part of a game the front end cares about between ticks.
type GameState struct {
	Score    int // the local bowler's score
	GameOver bool
	Paused   bool
}

// StepResult is what one tick of a game produced.
type StepResult struct {
	State GameState
	// Message is a one-line status for the bowler, e.g. a rejected entry.
	Message string
}
