package bowling

import "fmt"

// Mark classifies a delivery.
type Mark int

const (
	MarkOpen   Mark = iota // Neither strike nor spare
	MarkStrike             // All 10 pins with the first ball at a full rack
	MarkSpare              // Cleared the rack with the second ball
)

// String returns a human-readable name for the mark.
func (m Mark) String() string {
	switch m {
	case MarkStrike:
		return "strike"
	case MarkSpare:
		return "spare"
	default:
		return "open"
	}
}

// Delivery describes one recorded ball.
type Delivery struct {
	Frame   int // Frame the ball was bowled in
	Ball    int // Ball number within that frame
	Pins    int // Pins knocked down by this ball
	Mark    Mark
	Outcome Outcome
}

// Lane pairs a bowler's Tracker with the rack of pins in front of them.
// Pin sources report which pins fell; the lane derives the pin count,
// classifies the ball, records it and resets the rack for the next ball.
type Lane struct {
	tracker *Tracker
	pins    PinState
}

// NewLane creates a lane at frame 1 with a full rack.
func NewLane() *Lane {
	return &Lane{tracker: NewTracker()}
}

// Tracker returns the lane's turn tracker.
func (l *Lane) Tracker() *Tracker {
	return l.tracker
}

// Pins returns a copy of the current rack.
func (l *Lane) Pins() PinState {
	return l.pins
}

// Knock records a delivery that knocked down the pins at the given indices.
// Indices of pins that are already down are ignored. On error neither the
// rack nor the tracker changes.
func (l *Lane) Knock(indices ...int) (Delivery, error) {
	if l.tracker.Done() {
		return Delivery{}, fmt.Errorf("knock pins: %w", ErrGameOver)
	}

	next := l.pins
	before := next.CountKnocked()
	for _, idx := range indices {
		if err := next.MarkKnocked(idx); err != nil {
			return Delivery{}, err
		}
	}

	d := Delivery{
		Frame: l.tracker.Frame(),
		Ball:  l.tracker.Ball(),
		Pins:  next.CountKnocked() - before,
	}

	rackStart := l.tracker.RackStart()
	switch {
	case rackStart && next.IsStrike():
		d.Mark = MarkStrike
	case !rackStart && next.IsSpare(l.tracker.RackFirstBall()):
		d.Mark = MarkSpare
	}

	outcome, err := l.tracker.RecordRoll(d.Pins)
	if err != nil {
		return Delivery{}, err
	}
	d.Outcome = outcome
	l.pins = next

	if outcome != GameOver {
		l.rerack()
	}

	return d, nil
}

// rerack sets up the pins for the next ball. A full rack follows a new frame
// or a frame-10 strike. Otherwise the fallen pins stay down, except after a
// frame-10 spare: the bonus ball may only take what ball 2 left of 10, so the
// rack is rebuilt with that many pins standing at the back.
func (l *Lane) rerack() {
	if l.tracker.RackStart() {
		l.pins.Reset(false)
		return
	}
	down := l.tracker.RackFirstBall()
	if l.pins.CountKnocked() == down {
		l.pins.Reset(true)
		return
	}
	l.pins = PinState{}
	for i := range down {
		l.pins.knocked[i] = true
	}
}

// KnockCount records a delivery that knocked down n of the standing pins,
// taking them in index order. Used by pin sources that only know a count.
func (l *Lane) KnockCount(n int) (Delivery, error) {
	if l.tracker.Done() {
		return Delivery{}, fmt.Errorf("knock %d pins: %w", n, ErrGameOver)
	}

	standing := l.pins.Standing()
	if n < 0 || n > len(standing) {
		return Delivery{}, fmt.Errorf("%w: %d pins with %d standing", ErrInvalidRoll, n, len(standing))
	}
	return l.Knock(standing[:n]...)
}
