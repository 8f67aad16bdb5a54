package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/bowling"
)

var scoreCmd = &cobra.Command{
	Use:   "score <rolls...>",
	Short: "Score a roll sequence",
	Long: `Validate a sequence of rolls and print its scorecard.

Each argument is a pin count or a run of scorecard symbols:
  0-9  - Pins knocked down (10 as its own argument)
  X    - Strike
  /    - Spare
  -    - Gutter ball

Frames that are still waiting for bonus balls are left blank.

Examples:
  bowling score 10 7 3 9 0
  bowling score X 7/ 9- X X X X X X XXX
  bowling score X7/9-X`,
	Args: cobra.MinimumNArgs(1),
	Run:  runScore,
}

func runScore(_ *cobra.Command, args []string) {
	tr, err := bowling.ReadRolls(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printScorecard(os.Stdout, tr.Rolls())
	fmt.Println()
	fmt.Println(scoreLine(tr))
}

func scoreLine(tr *bowling.Tracker) string {
	score := bowling.CalculateScore(tr.Rolls())
	if tr.Done() {
		return fmt.Sprintf("Final score: %d", score)
	}
	return fmt.Sprintf("Score so far: %d (frame %d, ball %d up)", score, tr.Frame(), tr.Ball())
}

// printScorecard writes a three-line scorecard: frame numbers, ball marks
// and running totals.
func printScorecard(w io.Writer, rolls []int) {
	marks := bowling.FrameMarks(rolls)
	totals := bowling.RunningTotals(rolls)

	var header, balls, running strings.Builder
	for f := range bowling.Frames {
		width := 5
		if f == bowling.Frames-1 {
			width = 7
		}

		fmt.Fprintf(&header, "|%*d", width-1, f+1)

		cells := make([]string, len(marks[f]))
		for i, m := range marks[f] {
			if m == "" {
				m = " "
			}
			cells[i] = m
		}
		fmt.Fprintf(&balls, "|%*s", width-1, strings.Join(cells, " "))

		if totals[f].Known {
			fmt.Fprintf(&running, "|%*d", width-1, totals[f].Score)
		} else {
			fmt.Fprintf(&running, "|%*s", width-1, "")
		}
	}

	fmt.Fprintln(w, header.String()+"|")
	fmt.Fprintln(w, balls.String()+"|")
	fmt.Fprintln(w, running.String()+"|")
}
