package bowling

import "errors"

// Errors returned by the rules engine. Callers match them with errors.Is;
// the returned errors wrap them with the offending values.
var (
	// ErrInvalidRoll is returned for a pin count outside 0-10 or one that
	// would knock down more pins than are standing in the current rack.
	ErrInvalidRoll = errors.New("bowling: invalid roll")

	// ErrGameOver is returned for any roll recorded after the game ended.
	ErrGameOver = errors.New("bowling: game already over")

	// ErrIndexOutOfRange is returned for a pin index outside 0-9.
	ErrIndexOutOfRange = errors.New("bowling: pin index out of range")
)
