package bowling

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRolls(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []int
	}{
		{"empty", nil, []int{}},
		{"counts", []string{"7", "2", "10"}, []int{7, 2, 10}},
		{"symbols", []string{"X", "7/", "9-", "--"}, []int{10, 7, 3, 9, 0, 0, 0}},
		{"lowercase strike", []string{"x"}, []int{10}},
		{"one token", []string{"X7/9-"}, []int{10, 7, 3, 9, 0}},
		{
			"perfect game",
			[]string{"X", "X", "X", "X", "X", "X", "X", "X", "X", "XXX"},
			[]int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
		},
		{
			"tenth frame spare after a strike",
			[]string{"--", "--", "--", "--", "--", "--", "--", "--", "--", "X7/"},
			[]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10, 7, 3},
		},
		{
			"tenth frame spare then spare",
			[]string{"--", "--", "--", "--", "--", "--", "--", "--", "--", "3//"},
			[]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 7, 3},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRolls(tc.tokens)
			if err != nil {
				t.Fatalf("ParseRolls(%q) error: %v", tc.tokens, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("rolls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRollsErrors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		err    error
	}{
		{"spare on a first ball", []string{"/"}, ErrInvalidRoll},
		{"unknown symbol", []string{"7", "?"}, ErrInvalidRoll},
		{"too many pins", []string{"7", "5"}, ErrInvalidRoll},
		{"strike on a second ball", []string{"5X"}, ErrInvalidRoll},
		{"roll after the end", []string{"XXXXXXXXXXXX", "1"}, ErrGameOver},
		{"tenth frame strike after a spare", []string{"--", "--", "--", "--", "--", "--", "--", "--", "--", "5/X"}, ErrInvalidRoll},
		{"tenth frame bonus over the cap", []string{"--", "--", "--", "--", "--", "--", "--", "--", "--", "3/5"}, ErrInvalidRoll},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRolls(tc.tokens)
			if !errors.Is(err, tc.err) {
				t.Errorf("ParseRolls(%q) error = %v, expected %v", tc.tokens, err, tc.err)
			}
		})
	}
}

func TestReadRollsKeepsTrackerState(t *testing.T) {
	tr, err := ReadRolls([]string{"X", "7"})
	if err != nil {
		t.Fatalf("ReadRolls() error: %v", err)
	}
	if tr.Frame() != 2 || tr.Ball() != 2 || tr.Done() {
		t.Errorf("frame %d ball %d done %v, expected frame 2 ball 2 in play", tr.Frame(), tr.Ball(), tr.Done())
	}
	if diff := cmp.Diff([]int{10, 7}, tr.Rolls()); diff != "" {
		t.Errorf("rolls mismatch (-want +got):\n%s", diff)
	}
}
