package bowling

import "strconv"

// Scorecard symbols.
const (
	MarkStrikeSymbol = "X"
	MarkSpareSymbol  = "/"
	MarkGutterSymbol = "-"
)

// FrameMarks returns the symbols written in each frame's ball boxes.
// Frames 1-9 have two boxes (a strike is written in the second box, as on a
// paper scorecard); frame 10 has three. Boxes for balls not yet bowled are "".
func FrameMarks(rolls []int) [Frames][]string {
	var marks [Frames][]string
	for f := range Frames - 1 {
		marks[f] = make([]string, 2)
	}
	marks[Frames-1] = make([]string, 3)

	i := 0
	for f := 0; f < Frames-1 && i < len(rolls); f++ {
		first := rolls[i]
		if first == MaxPins {
			marks[f][1] = MarkStrikeSymbol
			i++
			continue
		}
		marks[f][0] = pinSymbol(first)
		if i+1 < len(rolls) {
			marks[f][1] = secondBallSymbol(first, rolls[i+1])
		}
		i += 2
	}

	if i < len(rolls) {
		tenthFrameMarks(marks[Frames-1], rolls[i:])
	}

	return marks
}

// tenthFrameMarks fills the three boxes of frame 10.
func tenthFrameMarks(boxes []string, rolls []int) {
	r1 := rolls[0]
	boxes[0] = strikeOrPins(r1)
	if len(rolls) < 2 {
		return
	}

	r2 := rolls[1]
	if r1 == MaxPins {
		boxes[1] = strikeOrPins(r2)
	} else {
		boxes[1] = secondBallSymbol(r1, r2)
	}
	if len(rolls) < 3 {
		return
	}

	// Only a ball-2 strike gives the bonus ball ten pins of its own.
	if r3 := rolls[2]; r2 == MaxPins {
		boxes[2] = strikeOrPins(r3)
	} else {
		boxes[2] = secondBallSymbol(r2, r3)
	}
}

// RunningTotals returns the cumulative score shown under each frame.
// Frames that cannot be scored yet are left unknown.
func RunningTotals(rolls []int) [Frames]FrameScore {
	totals := FrameScores(rolls)
	sum := 0
	for f := range totals {
		if !totals[f].Known {
			break
		}
		sum += totals[f].Score
		totals[f].Score = sum
	}
	return totals
}

func secondBallSymbol(first, second int) string {
	if first+second == MaxPins {
		return MarkSpareSymbol
	}
	return pinSymbol(second)
}

func strikeOrPins(pins int) string {
	if pins == MaxPins {
		return MarkStrikeSymbol
	}
	return pinSymbol(pins)
}

func pinSymbol(pins int) string {
	if pins == 0 {
		return MarkGutterSymbol
	}
	return strconv.Itoa(pins)
}
