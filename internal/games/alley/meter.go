package alley

import (
	"math"

	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/core"
)

// accuracyFalloff is the distance outside the optimal window at which a
// release becomes a throw with no accuracy at all.
const accuracyFalloff = 0.4

// PowerMeter is the oscillating power gauge a human releases with the bowl key.
// Power rises from 0 to 1 and back once per cycle, following a raised cosine
// so the gauge slows down near both ends.
type PowerMeter struct {
	cycle      int
	tick       int
	optimalMin float64
	optimalMax float64
}

// NewPowerMeter creates a meter from config. Cycles shorter than 2 ticks are raised to 2.
func NewPowerMeter(cfg config.MeterConfig) *PowerMeter {
	lo := core.ClampF(cfg.OptimalMin, 0, 1)
	hi := core.ClampF(cfg.OptimalMax, 0, 1)
	if hi < lo {
		lo, hi = hi, lo
	}
	return &PowerMeter{
		cycle:      max(cfg.CycleTicks, 2),
		optimalMin: lo,
		optimalMax: hi,
	}
}

// Advance moves the gauge forward one tick.
func (m *PowerMeter) Advance() {
	m.tick = (m.tick + 1) % m.cycle
}

// Reset returns the gauge to zero power.
func (m *PowerMeter) Reset() {
	m.tick = 0
}

// Power returns the current power in [0, 1].
func (m *PowerMeter) Power() float64 {
	phase := float64(m.tick) / float64(m.cycle)
	return 0.5 - 0.5*math.Cos(phase*2*math.Pi)
}

// Optimal returns the bounds of the perfect-release window.
func (m *PowerMeter) Optimal() (lo, hi float64) {
	return m.optimalMin, m.optimalMax
}

// Accuracy converts a release power into throw accuracy in [0, 1].
// Anything inside the optimal window is perfect; accuracy then falls off
// linearly with the distance to the window.
func (m *PowerMeter) Accuracy(power float64) float64 {
	var dist float64
	switch {
	case power < m.optimalMin:
		dist = m.optimalMin - power
	case power > m.optimalMax:
		dist = power - m.optimalMax
	default:
		return 1
	}
	return core.ClampF(1-dist/accuracyFalloff, 0, 1)
}
