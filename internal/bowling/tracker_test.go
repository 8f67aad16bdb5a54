package bowling

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// rollAll records every roll and fails the test on the first error.
// Returns the outcome of each roll.
func rollAll(t *testing.T, tr *Tracker, rolls ...int) []Outcome {
	t.Helper()
	outcomes := make([]Outcome, 0, len(rolls))
	for i, pins := range rolls {
		out, err := tr.RecordRoll(pins)
		if err != nil {
			t.Fatalf("RecordRoll(%d) at index %d failed: %v", pins, i, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// zeros returns n gutter balls.
func zeros(n int) []int {
	return make([]int, n)
}

func TestTrackerInitialState(t *testing.T) {
	tr := NewTracker()

	if tr.Frame() != 1 {
		t.Errorf("Frame() = %d, expected 1", tr.Frame())
	}
	if tr.Ball() != 1 {
		t.Errorf("Ball() = %d, expected 1", tr.Ball())
	}
	if len(tr.Rolls()) != 0 {
		t.Errorf("Rolls() = %v, expected empty", tr.Rolls())
	}
	if tr.Done() || tr.IsGameOver() {
		t.Error("New tracker should not be done")
	}
	if !tr.RackStart() {
		t.Error("New tracker should be at a full rack")
	}
}

func TestTrackerOpenFrames(t *testing.T) {
	tests := []struct {
		name      string
		rolls     []int
		frame     int
		ball      int
		lastOut   Outcome
		rackFirst int
	}{
		{"strike advances frame", []int{10}, 2, 1, FrameAdvanced, 0},
		{"non-strike stays in frame", []int{7}, 1, 2, Continued, 7},
		{"gutter ball stays in frame", []int{0}, 1, 2, Continued, 0},
		{"spare advances frame", []int{7, 3}, 2, 1, FrameAdvanced, 0},
		{"open frame advances frame", []int{4, 5}, 2, 1, FrameAdvanced, 0},
		{"two gutter balls advance frame", []int{0, 0}, 2, 1, FrameAdvanced, 0},
		{"nine strikes reach frame 10", []int{10, 10, 10, 10, 10, 10, 10, 10, 10}, 10, 1, FrameAdvanced, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTracker()
			outcomes := rollAll(t, tr, tc.rolls...)

			if tr.Frame() != tc.frame {
				t.Errorf("Frame() = %d, expected %d", tr.Frame(), tc.frame)
			}
			if tr.Ball() != tc.ball {
				t.Errorf("Ball() = %d, expected %d", tr.Ball(), tc.ball)
			}
			if got := outcomes[len(outcomes)-1]; got != tc.lastOut {
				t.Errorf("last outcome = %v, expected %v", got, tc.lastOut)
			}
			if tr.RackFirstBall() != tc.rackFirst {
				t.Errorf("RackFirstBall() = %d, expected %d", tr.RackFirstBall(), tc.rackFirst)
			}
			if diff := cmp.Diff(tc.rolls, tr.Rolls()); diff != "" {
				t.Errorf("Rolls() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrackerInvalidRolls(t *testing.T) {
	tests := []struct {
		name  string
		setup []int
		pins  int
	}{
		{"above 10", nil, 11},
		{"negative", nil, -1},
		{"frame total exceeds 10", []int{7}, 4},
		{"frame 10 ball 1 + ball 2 exceeds 10", append(zeros(18), 6), 5},
		{"frame 10 ball 2 + ball 3 exceeds 10 after strike", append(zeros(18), 10, 6), 9},
		{"frame 10 strike on the bonus ball after a spare", append(zeros(18), 5, 5), 10},
		{"frame 10 ball 2 + ball 3 exceeds 10 after spare", append(zeros(18), 3, 7), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTracker()
			rollAll(t, tr, tc.setup...)
			frame, ball := tr.Frame(), tr.Ball()

			_, err := tr.RecordRoll(tc.pins)
			if !errors.Is(err, ErrInvalidRoll) {
				t.Fatalf("RecordRoll(%d) error = %v, expected ErrInvalidRoll", tc.pins, err)
			}

			// Failed roll must not change anything
			if tr.Frame() != frame || tr.Ball() != ball {
				t.Errorf("state changed on error: frame %d ball %d, expected frame %d ball %d",
					tr.Frame(), tr.Ball(), frame, ball)
			}
			if len(tr.Rolls()) != len(tc.setup) {
				t.Errorf("Rolls() length = %d, expected %d", len(tr.Rolls()), len(tc.setup))
			}
		})
	}
}

func TestTrackerFrameTenOpen(t *testing.T) {
	tr := NewTracker()
	rollAll(t, tr, zeros(18)...)

	outcomes := rollAll(t, tr, 4, 5)
	if diff := cmp.Diff([]Outcome{Continued, GameOver}, outcomes); diff != "" {
		t.Errorf("frame 10 outcomes mismatch (-want +got):\n%s", diff)
	}
	if !tr.Done() {
		t.Fatal("game should be over after an open frame 10")
	}

	// No third ball permitted
	if _, err := tr.RecordRoll(0); !errors.Is(err, ErrGameOver) {
		t.Errorf("third ball error = %v, expected ErrGameOver", err)
	}
}

func TestTrackerFrameTenStrike(t *testing.T) {
	tr := NewTracker()
	rollAll(t, tr, zeros(18)...)

	outcomes := rollAll(t, tr, 10, 10)
	if diff := cmp.Diff([]Outcome{Continued, FrameAdvanced}, outcomes); diff != "" {
		t.Errorf("outcomes mismatch (-want +got):\n%s", diff)
	}
	if tr.Ball() != 3 {
		t.Errorf("Ball() = %d, expected 3 for the bonus ball", tr.Ball())
	}
	if tr.Done() {
		t.Fatal("game should not be over before the bonus ball")
	}

	out, err := tr.RecordRoll(10)
	if err != nil {
		t.Fatalf("bonus ball failed: %v", err)
	}
	if out != GameOver || !tr.Done() {
		t.Errorf("outcome = %v, done = %v, expected game over", out, tr.Done())
	}
	if len(tr.Rolls()) != 21 {
		t.Errorf("Rolls() length = %d, expected 21", len(tr.Rolls()))
	}
}

func TestTrackerFrameTenSpare(t *testing.T) {
	tr := NewTracker()
	rollAll(t, tr, zeros(18)...)

	outcomes := rollAll(t, tr, 5, 5, 3)
	if diff := cmp.Diff([]Outcome{Continued, FrameAdvanced, GameOver}, outcomes); diff != "" {
		t.Errorf("outcomes mismatch (-want +got):\n%s", diff)
	}
	if !tr.Done() {
		t.Error("game should be over after the bonus ball")
	}
}

func TestTrackerFrameTenSpareCapsBonusBall(t *testing.T) {
	tests := []struct {
		name  string
		tenth []int
		bonus int
	}{
		{"strike after 5, 5", []int{5, 5}, 10},
		{"5 after 3, 7", []int{3, 7}, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTracker()
			rollAll(t, tr, zeros(18)...)
			rollAll(t, tr, tc.tenth...)

			if tr.RackStart() || tr.RackFirstBall() != tc.tenth[1] {
				t.Errorf("after a spare: RackStart() = %v, RackFirstBall() = %d, expected false, %d",
					tr.RackStart(), tr.RackFirstBall(), tc.tenth[1])
			}
			if _, err := tr.RecordRoll(tc.bonus); !errors.Is(err, ErrInvalidRoll) {
				t.Fatalf("RecordRoll(%d) error = %v, expected ErrInvalidRoll", tc.bonus, err)
			}
			if tr.Done() || tr.Ball() != 3 {
				t.Errorf("rejected bonus ball changed state: done = %v, ball = %d", tr.Done(), tr.Ball())
			}

			// The most ball 3 can take is what ball 2 left of 10.
			if out, err := tr.RecordRoll(MaxPins - tc.tenth[1]); err != nil || out != GameOver {
				t.Errorf("largest legal bonus ball: outcome = %v, err = %v", out, err)
			}
		})
	}
}

func TestTrackerFrameTenRackFirstBall(t *testing.T) {
	tr := NewTracker()
	rollAll(t, tr, zeros(18)...)

	rollAll(t, tr, 10)
	if !tr.RackStart() || tr.RackFirstBall() != 0 {
		t.Errorf("after a frame 10 strike: RackStart() = %v, RackFirstBall() = %d", tr.RackStart(), tr.RackFirstBall())
	}

	rollAll(t, tr, 7)
	if tr.RackStart() || tr.RackFirstBall() != 7 {
		t.Errorf("after strike, 7: RackStart() = %v, RackFirstBall() = %d", tr.RackStart(), tr.RackFirstBall())
	}

	if _, err := tr.RecordRoll(3); err != nil {
		t.Errorf("converting the 3 remaining pins failed: %v", err)
	}
}

func TestTrackerGameOverIsPermanent(t *testing.T) {
	tr := NewTracker()
	rollAll(t, tr, zeros(20)...)

	for _, pins := range []int{0, 5, 10, 11, -1} {
		if _, err := tr.RecordRoll(pins); !errors.Is(err, ErrGameOver) {
			t.Errorf("RecordRoll(%d) after game over error = %v, expected ErrGameOver", pins, err)
		}
	}
	if len(tr.Rolls()) != 20 {
		t.Errorf("Rolls() length = %d, expected 20", len(tr.Rolls()))
	}
}

func TestTrackerPerfectGame(t *testing.T) {
	tr := NewTracker()
	outcomes := rollAll(t, tr, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10)

	if outcomes[len(outcomes)-1] != GameOver {
		t.Errorf("last outcome = %v, expected game over", outcomes[len(outcomes)-1])
	}
	if got := CalculateScore(tr.Rolls()); got != 300 {
		t.Errorf("CalculateScore() = %d, expected 300", got)
	}
}

func TestTrackerRollsIsCopy(t *testing.T) {
	tr := NewTracker()
	rollAll(t, tr, 3, 4)

	rolls := tr.Rolls()
	rolls[0] = 9

	if tr.Rolls()[0] != 3 {
		t.Error("mutating Rolls() result should not affect the tracker")
	}
}

// Frames 1-9 never hold more than 10 pins unless the first ball is a strike.
func TestTrackerFramePairInvariant(t *testing.T) {
	sequences := [][]int{
		{10, 7, 3, 9, 0, 10, 0, 8, 8, 2, 0, 6, 10, 10, 10, 8, 1},
		{1, 9, 2, 8, 3, 7, 4, 6, 5, 5, 6, 4, 7, 3, 8, 2, 9, 1, 10, 10, 10},
	}

	for _, rolls := range sequences {
		tr := NewTracker()
		rollAll(t, tr, rolls...)

		i := 0
		for frame := 1; frame < Frames; frame++ {
			if rolls[i] == MaxPins {
				i++
				continue
			}
			if rolls[i]+rolls[i+1] > MaxPins {
				t.Errorf("frame %d holds %d pins", frame, rolls[i]+rolls[i+1])
			}
			i += 2
		}
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		out      Outcome
		expected string
	}{
		{Continued, "continued"},
		{FrameAdvanced, "frame advanced"},
		{GameOver, "game over"},
		{Outcome(42), "unknown"},
	}
	for _, tc := range tests {
		if tc.out.String() != tc.expected {
			t.Errorf("Outcome(%d).String() = %q, expected %q", tc.out, tc.out.String(), tc.expected)
		}
	}
}
