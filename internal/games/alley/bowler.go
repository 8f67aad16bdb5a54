package alley

import (
	"math/rand"

	"github.com/vovakirdan/tui-bowling/internal/bowling"
)

// Throw tuning. Accuracy is 0 (wild) to 1 (perfect).
const (
	// Accuracy under which a ball may find the gutter
	gutterBelow = 0.1
	gutterOdds  = 0.5

	// First ball at a full rack. Strike odds scale with accuracy squared.
	strikeOdds      = 0.6
	rackPinBase     = 0.35
	rackPinPerSkill = 0.5

	// Ball at a partially cleared rack. Clear odds scale with accuracy.
	clearOdds        = 0.7
	leavePinBase     = 0.2
	leavePinPerSkill = 0.5
)

// Throw simulates one ball against the rack and returns the indices of the
// pins it knocks down. Only standing pins are ever returned. The result
// depends only on rng, the rack and accuracy.
func Throw(rng *rand.Rand, rack bowling.PinState, rackStart bool, accuracy float64) []int {
	standing := rack.Standing()
	if len(standing) == 0 {
		return nil
	}

	if accuracy < gutterBelow && rng.Float64() < gutterOdds {
		return nil
	}

	clearChance := accuracy * clearOdds
	pinChance := leavePinBase + leavePinPerSkill*accuracy
	if rackStart {
		clearChance = accuracy * accuracy * strikeOdds
		pinChance = rackPinBase + rackPinPerSkill*accuracy
	}

	if rng.Float64() < clearChance {
		return standing
	}

	knocked := make([]int, 0, len(standing))
	for _, idx := range standing {
		if rng.Float64() < pinChance {
			knocked = append(knocked, idx)
		}
	}
	return knocked
}
