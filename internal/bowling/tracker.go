package bowling

import "fmt"

// Outcome tells the caller what a recorded roll did to the game.
// It replaces event callbacks: the caller handles it before the next roll.
type Outcome int

const (
	// Continued means the same frame continues with the next ball.
	Continued Outcome = iota
	// FrameAdvanced means the pins must be reset for a new rack: either a
	// new frame started or frame 10 earned its bonus ball.
	FrameAdvanced
	// GameOver means no further rolls are legal.
	GameOver
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Continued:
		return "continued"
	case FrameAdvanced:
		return "frame advanced"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// frameState is the per-frame bookkeeping of a Tracker.
// Exactly one of openFrame, tenthFrame or finished is active.
type frameState interface {
	currentBall() int
}

// openFrame tracks frames 1-9: one or two deliveries.
type openFrame struct {
	ball      int // 1 or 2
	firstBall int // Pins knocked by ball 1, valid when ball == 2
}

func (s *openFrame) currentBall() int { return s.ball }

// tenthFrame tracks frame 10: two or three deliveries.
type tenthFrame struct {
	ball  int // 1-3
	ball1 int
	ball2 int
	balls int // Deliveries bowled in frame 10 so far
}

func (s *tenthFrame) currentBall() int { return s.ball }

// rackStart reports whether the next delivery is free of the cap of 10
// against the previous one. Only a strike lifts the cap inside frame 10: the
// bonus ball after a spare still shares 10 pins with ball 2.
func (s *tenthFrame) rackStart() bool {
	switch s.balls {
	case 0:
		return true
	case 1:
		return s.ball1 == MaxPins
	case 2:
		return s.ball2 == MaxPins
	default:
		return false
	}
}

// previous returns the pins knocked by the last delivery of frame 10.
func (s *tenthFrame) previous() int {
	if s.balls == 2 {
		return s.ball2
	}
	return s.ball1
}

// bonusEarned reports whether balls 1 and 2 earned a third delivery.
func (s *tenthFrame) bonusEarned() bool {
	return s.ball1 == MaxPins || s.ball1+s.ball2 == MaxPins
}

// finished is the terminal state. It keeps the last ball number for display.
type finished struct {
	ball int
}

func (s finished) currentBall() int { return s.ball }

// Tracker is the turn-taking state machine for one bowler's game.
// It validates each delivery, advances frame and ball counters and keeps the
// append-only roll sequence that scoring is computed from.
type Tracker struct {
	frame int
	state frameState
	rolls []int
}

// NewTracker creates a tracker positioned at frame 1, ball 1.
func NewTracker() *Tracker {
	return &Tracker{
		frame: 1,
		state: &openFrame{ball: 1},
	}
}

// Frame returns the current frame (1-10).
func (t *Tracker) Frame() int {
	return t.frame
}

// Ball returns the current ball within the frame (1-3, 3 only in frame 10).
func (t *Tracker) Ball() int {
	return t.state.currentBall()
}

// Rolls returns a copy of the recorded roll sequence in chronological order.
func (t *Tracker) Rolls() []int {
	out := make([]int, len(t.rolls))
	copy(out, t.rolls)
	return out
}

// Done returns true once the game is complete.
func (t *Tracker) Done() bool {
	_, ok := t.state.(finished)
	return ok
}

// IsGameOver is an alias for Done.
func (t *Tracker) IsGameOver() bool {
	return t.Done()
}

// RackStart reports whether the next delivery is the first ball at a full rack.
func (t *Tracker) RackStart() bool {
	switch s := t.state.(type) {
	case *openFrame:
		return s.ball == 1
	case *tenthFrame:
		return s.rackStart()
	default:
		return false
	}
}

// RackFirstBall returns the pins knocked by the delivery the next one is
// capped against, or 0 when the next delivery starts a full rack. At most
// MaxPins minus this many pins can fall next. Pass it to PinState.IsSpare to
// classify the next delivery.
func (t *Tracker) RackFirstBall() int {
	switch s := t.state.(type) {
	case *openFrame:
		if s.ball == 2 {
			return s.firstBall
		}
	case *tenthFrame:
		if !s.rackStart() {
			return s.previous()
		}
	}
	return 0
}

// RecordRoll records one delivery that knocked down pins.
// On error the tracker is left unchanged.
func (t *Tracker) RecordRoll(pins int) (Outcome, error) {
	if t.Done() {
		return GameOver, fmt.Errorf("record roll %d: %w", pins, ErrGameOver)
	}
	if pins < 0 || pins > MaxPins {
		return Continued, fmt.Errorf("%w: %d pins (must be 0-%d)", ErrInvalidRoll, pins, MaxPins)
	}

	switch s := t.state.(type) {
	case *openFrame:
		return t.recordOpenFrame(s, pins)
	case *tenthFrame:
		return t.recordTenthFrame(s, pins)
	}
	return Continued, fmt.Errorf("record roll %d: unexpected tracker state %T", pins, t.state)
}

// recordOpenFrame handles frames 1-9.
func (t *Tracker) recordOpenFrame(s *openFrame, pins int) (Outcome, error) {
	if s.ball == 2 && s.firstBall+pins > MaxPins {
		return Continued, fmt.Errorf("%w: frame %d ball 1 (%d) + ball 2 (%d) exceeds %d",
			ErrInvalidRoll, t.frame, s.firstBall, pins, MaxPins)
	}

	t.rolls = append(t.rolls, pins)

	if s.ball == 1 && pins != MaxPins {
		s.firstBall = pins
		s.ball = 2
		return Continued, nil
	}

	// Strike on ball 1, or ball 2 played
	t.frame++
	if t.frame == Frames {
		t.state = &tenthFrame{ball: 1}
	} else {
		t.state = &openFrame{ball: 1}
	}
	return FrameAdvanced, nil
}

// recordTenthFrame handles frame 10 and its bonus ball.
func (t *Tracker) recordTenthFrame(s *tenthFrame, pins int) (Outcome, error) {
	if !s.rackStart() && s.previous()+pins > MaxPins {
		return Continued, fmt.Errorf("%w: frame %d ball %d (%d) + ball %d (%d) exceeds %d",
			ErrInvalidRoll, t.frame, s.balls, s.previous(), s.balls+1, pins, MaxPins)
	}

	t.rolls = append(t.rolls, pins)
	s.balls++

	switch s.balls {
	case 1:
		s.ball1 = pins
		s.ball = 2
		return Continued, nil
	case 2:
		s.ball2 = pins
		if s.bonusEarned() {
			s.ball = 3
			return FrameAdvanced, nil
		}
	}

	t.state = finished{ball: s.ball}
	return GameOver, nil
}
