package bowling

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLaneStrike(t *testing.T) {
	lane := NewLane()

	d, err := lane.Knock(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	if err != nil {
		t.Fatalf("Knock() failed: %v", err)
	}
	if d.Pins != 10 || d.Mark != MarkStrike || d.Outcome != FrameAdvanced {
		t.Errorf("Delivery = %+v, expected strike advancing the frame", d)
	}
	if d.Frame != 1 || d.Ball != 1 {
		t.Errorf("Delivery frame/ball = %d/%d, expected 1/1", d.Frame, d.Ball)
	}

	pins := lane.Pins()
	if pins.CountStanding() != 10 {
		t.Errorf("CountStanding() = %d after a strike, expected a fresh rack", pins.CountStanding())
	}
}

func TestLaneSpareKeepsPinsBetweenBalls(t *testing.T) {
	lane := NewLane()

	d, err := lane.Knock(0, 1, 2)
	if err != nil {
		t.Fatalf("Knock() failed: %v", err)
	}
	if d.Pins != 3 || d.Mark != MarkOpen || d.Outcome != Continued {
		t.Errorf("first ball = %+v, expected 3 pins open continued", d)
	}

	pins := lane.Pins()
	if pins.CountStanding() != 7 {
		t.Fatalf("CountStanding() = %d, expected 7 for the second ball", pins.CountStanding())
	}

	// Re-knocking a fallen pin adds nothing
	d, err = lane.Knock(0, 3, 4, 5, 6, 7, 8, 9)
	if err != nil {
		t.Fatalf("Knock() failed: %v", err)
	}
	if d.Pins != 7 || d.Mark != MarkSpare || d.Outcome != FrameAdvanced {
		t.Errorf("second ball = %+v, expected 7 pins spare advancing", d)
	}
	if got := lane.Tracker().Rolls(); len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Errorf("Rolls() = %v, expected [3 7]", got)
	}
}

func TestLaneTenthFrameRacks(t *testing.T) {
	lane := NewLane()
	for range 18 {
		if _, err := lane.KnockCount(0); err != nil {
			t.Fatalf("KnockCount(0) failed: %v", err)
		}
	}

	// Strike on ball 1 of frame 10: fresh rack, no frame advance
	d, err := lane.KnockCount(10)
	if err != nil {
		t.Fatalf("KnockCount(10) failed: %v", err)
	}
	if d.Frame != 10 || d.Mark != MarkStrike || d.Outcome != Continued {
		t.Errorf("frame 10 ball 1 = %+v, expected strike continued", d)
	}
	if pins := lane.Pins(); pins.CountStanding() != 10 {
		t.Fatalf("CountStanding() = %d after frame 10 strike, expected 10", pins.CountStanding())
	}

	// Seven down: bonus earned, three pins stay for the bonus ball
	d, err = lane.KnockCount(7)
	if err != nil {
		t.Fatalf("KnockCount(7) failed: %v", err)
	}
	if d.Outcome != FrameAdvanced {
		t.Errorf("frame 10 ball 2 outcome = %v, expected frame advanced", d.Outcome)
	}
	if pins := lane.Pins(); pins.CountStanding() != 3 {
		t.Fatalf("CountStanding() = %d, expected 3 for the bonus ball", pins.CountStanding())
	}

	if _, err := lane.KnockCount(4); !errors.Is(err, ErrInvalidRoll) {
		t.Errorf("KnockCount(4) with 3 standing error = %v, expected ErrInvalidRoll", err)
	}

	d, err = lane.KnockCount(3)
	if err != nil {
		t.Fatalf("KnockCount(3) failed: %v", err)
	}
	if d.Mark != MarkSpare || d.Outcome != GameOver {
		t.Errorf("bonus ball = %+v, expected spare and game over", d)
	}
	if got := CalculateScore(lane.Tracker().Rolls()); got != 20 {
		t.Errorf("CalculateScore() = %d, expected 20", got)
	}

	if _, err := lane.KnockCount(0); !errors.Is(err, ErrGameOver) {
		t.Errorf("KnockCount after game over error = %v, expected ErrGameOver", err)
	}
}

func TestLaneTenthFrameSpareCapsBonusBall(t *testing.T) {
	lane := NewLane()
	for range 18 {
		if _, err := lane.KnockCount(0); err != nil {
			t.Fatalf("KnockCount(0) failed: %v", err)
		}
	}
	if _, err := lane.KnockCount(3); err != nil {
		t.Fatalf("KnockCount(3) failed: %v", err)
	}

	d, err := lane.KnockCount(7)
	if err != nil {
		t.Fatalf("KnockCount(7) failed: %v", err)
	}
	if d.Mark != MarkSpare || d.Outcome != FrameAdvanced {
		t.Errorf("frame 10 ball 2 = %+v, expected spare earning the bonus ball", d)
	}

	// Ball 3 shares 10 pins with ball 2, so only 3 stand.
	pins := lane.Pins()
	if diff := cmp.Diff([]int{7, 8, 9}, pins.Standing()); diff != "" {
		t.Fatalf("bonus rack standing (-want +got):\n%s", diff)
	}
	if _, err := lane.KnockCount(4); !errors.Is(err, ErrInvalidRoll) {
		t.Errorf("KnockCount(4) with 3 standing error = %v, expected ErrInvalidRoll", err)
	}

	d, err = lane.Knock(8, 9)
	if err != nil {
		t.Fatalf("Knock(8, 9) failed: %v", err)
	}
	if d.Pins != 2 || d.Mark != MarkOpen || d.Outcome != GameOver {
		t.Errorf("bonus ball = %+v, expected 2 pins open and game over", d)
	}
	if got := CalculateScore(lane.Tracker().Rolls()); got != 12 {
		t.Errorf("CalculateScore() = %d, expected 12", got)
	}
}

func TestLaneBadIndexLeavesStateUnchanged(t *testing.T) {
	lane := NewLane()

	if _, err := lane.Knock(1, 12); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Knock(1, 12) error = %v, expected ErrIndexOutOfRange", err)
	}
	if pins := lane.Pins(); pins.CountKnocked() != 0 {
		t.Errorf("CountKnocked() = %d after failed knock, expected 0", pins.CountKnocked())
	}
	if len(lane.Tracker().Rolls()) != 0 {
		t.Error("failed knock should not record a roll")
	}
}

func TestMarkString(t *testing.T) {
	if MarkStrike.String() != "strike" || MarkSpare.String() != "spare" || MarkOpen.String() != "open" {
		t.Error("Mark.String() returned unexpected names")
	}
}
