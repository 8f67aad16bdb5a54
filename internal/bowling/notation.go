package bowling

import (
	"fmt"
	"strings"
)

// ParseRolls reads scorecard notation into a validated roll sequence.
// Each token is either a pin count ("10" included) or a run of one-ball
// symbols: digits, "X" for a strike, "/" for a spare and "-" for a gutter
// ball, so "X", "7/" and "9-" all work. The returned error wraps
// ErrInvalidRoll or ErrGameOver.
func ParseRolls(tokens []string) ([]int, error) {
	t, err := ReadRolls(tokens)
	if err != nil {
		return nil, err
	}
	return t.Rolls(), nil
}

// ReadRolls is ParseRolls returning the Tracker the rolls were recorded on,
// for callers that also need the frame and ball reached.
func ReadRolls(tokens []string) (*Tracker, error) {
	t := NewTracker()
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "10" {
			if _, err := t.RecordRoll(MaxPins); err != nil {
				return nil, err
			}
			continue
		}
		for _, r := range tok {
			pins, err := symbolPins(t, r)
			if err != nil {
				return nil, err
			}
			if _, err := t.RecordRoll(pins); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func symbolPins(t *Tracker, r rune) (int, error) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), nil
	case r == 'X' || r == 'x':
		return MaxPins, nil
	case string(r) == MarkGutterSymbol:
		return 0, nil
	case string(r) == MarkSpareSymbol:
		if t.RackStart() {
			return 0, fmt.Errorf("%w: spare on frame %d ball %d needs a first ball", ErrInvalidRoll, t.Frame(), t.Ball())
		}
		return PinCount - t.RackFirstBall(), nil
	default:
		return 0, fmt.Errorf("%w: unknown symbol %q", ErrInvalidRoll, r)
	}
}
