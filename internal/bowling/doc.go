// Package bowling implements the rules of ten-pin bowling: a turn tracker
// that validates deliveries frame by frame, a pin-state tracker for the rack
// in front of the bowler, and pure scoring functions over a roll sequence.
//
// The package has no external dependencies and performs no I/O. Values are
// not safe for concurrent use; each game is owned by a single goroutine.
package bowling

// Game dimensions.
const (
	Frames   = 10 // Frames in a game
	PinCount = 10 // Pins in a full rack
	MaxPins  = 10 // Most pins a single delivery can knock down
)
