package bowling

import "fmt"

// PinState tracks which of the 10 pins in the rack are down.
// Pins are indexed 0-9, head pin first, back row last.
// The zero value is a full rack with every pin standing.
type PinState struct {
	knocked [PinCount]bool
}

// MarkKnocked marks the pin at index as down. Marking a pin twice is a no-op.
func (p *PinState) MarkKnocked(index int) error {
	if index < 0 || index >= PinCount {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrIndexOutOfRange, index, PinCount-1)
	}
	p.knocked[index] = true
	return nil
}

// Knocked reports whether the pin at index is down.
// Out-of-range indices report false.
func (p *PinState) Knocked(index int) bool {
	if index < 0 || index >= PinCount {
		return false
	}
	return p.knocked[index]
}

// CountKnocked returns how many pins are down.
func (p *PinState) CountKnocked() int {
	n := 0
	for _, down := range p.knocked {
		if down {
			n++
		}
	}
	return n
}

// CountStanding returns how many pins are still up.
func (p *PinState) CountStanding() int {
	return PinCount - p.CountKnocked()
}

// Standing returns the indices of standing pins in ascending order.
func (p *PinState) Standing() []int {
	out := make([]int, 0, PinCount)
	for i, down := range p.knocked {
		if !down {
			out = append(out, i)
		}
	}
	return out
}

// Reset prepares the rack for the next delivery.
// keepKnocked=false stands all pins up again (new frame or cleared rack);
// keepKnocked=true leaves knocked pins down for the second ball of a frame.
func (p *PinState) Reset(keepKnocked bool) {
	if !keepKnocked {
		p.knocked = [PinCount]bool{}
	}
}

// IsStrike reports whether every pin is down. Only meaningful after the
// first ball at a full rack.
func (p *PinState) IsStrike() bool {
	return p.CountKnocked() == PinCount
}

// IsSpare reports whether every pin is down after a second ball, given the
// pins the first ball knocked down. A first-ball strike is never a spare.
func (p *PinState) IsSpare(ball1Knocked int) bool {
	return ball1Knocked < PinCount && p.CountKnocked() == PinCount
}
