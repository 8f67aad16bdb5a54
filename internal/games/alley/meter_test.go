package alley

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-bowling/internal/config"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPowerMeterCycle(t *testing.T) {
	m := NewPowerMeter(config.MeterConfig{CycleTicks: 4, OptimalMin: 0.5, OptimalMax: 0.85})

	expected := []float64{0, 0.5, 1, 0.5, 0}
	for i, want := range expected {
		if got := m.Power(); !approx(got, want) {
			t.Errorf("tick %d: Power() = %f, expected %f", i, got, want)
		}
		m.Advance()
	}

	m.Reset()
	if m.Power() != 0 {
		t.Errorf("Power() after Reset = %f, expected 0", m.Power())
	}
}

func TestPowerMeterAccuracy(t *testing.T) {
	m := NewPowerMeter(config.MeterConfig{CycleTicks: 45, OptimalMin: 0.5, OptimalMax: 0.85})

	tests := []struct {
		power    float64
		expected float64
	}{
		{0.5, 1},
		{0.7, 1},
		{0.85, 1},
		{0.3, 0.5},
		{0.95, 0.75},
		{0, 0},
	}
	for _, tc := range tests {
		if got := m.Accuracy(tc.power); !approx(got, tc.expected) {
			t.Errorf("Accuracy(%.2f) = %f, expected %f", tc.power, got, tc.expected)
		}
	}
}

func TestPowerMeterNormalizesConfig(t *testing.T) {
	m := NewPowerMeter(config.MeterConfig{CycleTicks: 0, OptimalMin: 0.9, OptimalMax: 0.2})

	lo, hi := m.Optimal()
	if lo != 0.2 || hi != 0.9 {
		t.Errorf("Optimal() = %f, %f, expected swapped bounds 0.2, 0.9", lo, hi)
	}

	m.Advance()
	if !approx(m.Power(), 1) {
		t.Errorf("two-tick cycle should peak after one tick, got %f", m.Power())
	}
}
