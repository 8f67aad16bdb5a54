package bowling

// FrameScore is the score of a single frame.
// Known is false while the frame, or a bonus it depends on, is incomplete.
type FrameScore struct {
	Score int
	Known bool
}

// CalculateScore returns the total score of a roll sequence.
// Incomplete input never fails: only frames that can be fully scored count,
// so an empty sequence scores 0 and twelve strikes score 300.
func CalculateScore(rolls []int) int {
	total := 0
	for _, f := range FrameScores(rolls) {
		if !f.Known {
			break
		}
		total += f.Score
	}
	return total
}

// FrameScores returns the individual score of each of the 10 frames.
// Scoring stops at the first frame that cannot be resolved yet; that frame
// and every later one are left unknown. The function is pure.
func FrameScores(rolls []int) [Frames]FrameScore {
	var frames [Frames]FrameScore

	i := 0
	for f := range Frames {
		score, width, ok := scoreFrame(rolls, i)
		if !ok {
			break
		}
		frames[f] = FrameScore{Score: score, Known: true}
		i += width
	}

	return frames
}

// scoreFrame scores the frame starting at rolls[i].
// width is the number of rolls the frame consumes (1 for a strike).
func scoreFrame(rolls []int, i int) (score, width int, ok bool) {
	first, ok := rollAt(rolls, i)
	if !ok {
		return 0, 0, false
	}

	// Strike: 10 + next two rolls
	if first == MaxPins {
		next1, ok1 := rollAt(rolls, i+1)
		next2, ok2 := rollAt(rolls, i+2)
		if !ok1 || !ok2 {
			return 0, 1, false
		}
		return MaxPins + next1 + next2, 1, true
	}

	second, ok := rollAt(rolls, i+1)
	if !ok {
		return 0, 2, false
	}

	// Spare: 10 + next roll
	if first+second == MaxPins {
		bonus, ok := rollAt(rolls, i+2)
		if !ok {
			return 0, 2, false
		}
		return MaxPins + bonus, 2, true
	}

	return first + second, 2, true
}

func rollAt(rolls []int, i int) (int, bool) {
	if i < 0 || i >= len(rolls) {
		return 0, false
	}
	return rolls[i], true
}
