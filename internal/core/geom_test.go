package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Right, Bottom = %d, %d, expected 25, 25", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, want int
	}{
		{-1, 0},
		{0, 0},
		{7, 7},
		{10, 10},
		{11, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.v, 0, 10); got != tc.want {
			t.Errorf("Clamp(%d, 0, 10) = %d, expected %d", tc.v, got, tc.want)
		}
	}

	if got := ClampF(1.25, 0, 1); got != 1 {
		t.Errorf("ClampF(1.25, 0, 1) = %v, expected 1", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %v, expected 0", got)
	}
}
