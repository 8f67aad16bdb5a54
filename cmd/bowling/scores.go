package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/platform/tui"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best games and recent matches",
	Long: `Display the best games with their scorecards, for one mode or all of
them, followed by the most recent online matches.

Examples:
  bowling scores
  bowling scores bowling_cpu
  bowling scores --limit 25`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
}

func runScores(_ *cobra.Command, args []string) {
	var mode string
	title := "All modes"
	if len(args) > 0 {
		mode = args[0]
		info, ok := registry.Info(mode)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
			fmt.Fprintln(os.Stderr, "Run 'bowling list' to see available modes.")
			os.Exit(1)
		}
		title = info.Title
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(mode, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High games: %s\n", title)
	if len(scores) == 0 {
		fmt.Println("No games recorded yet. Run 'bowling play' to bowl the first one!")
		return
	}

	rows := make([][]string, len(scores))
	for i, g := range scores {
		rows[i] = []string{
			strconv.Itoa(i + 1), g.Player, strconv.Itoa(g.Score), g.Mode,
			g.CreatedAt.Format("2006-01-02 15:04"), tui.ScorecardLine(g.Rolls),
		}
	}
	printTable([]string{"#", "Bowler", "Score", "Mode", "Date", "Scorecard"}, rows)

	if mode != "" {
		if stats, err := store.GetGameStats(mode); err == nil && stats.GamesCount > 0 {
			fmt.Printf("%d games, best %d, average %.1f, last bowled %s\n",
				stats.GamesCount, stats.HighScore, stats.AvgScore, stats.LastPlayed.Format("2006-01-02"))
		}
	}

	matches, err := store.RecentMatches(5)
	if err != nil || len(matches) == 0 {
		return
	}

	fmt.Println("\nRecent matches")
	rows = nil
	for _, m := range matches {
		winner := m.Winner
		if winner == "" {
			winner = "tie"
		}
		rows = append(rows, []string{
			m.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%s %d - %d %s", m.Player1, m.Score1, m.Score2, m.Player2),
			winner,
		})
	}
	printTable([]string{"Date", "Match", "Winner"}, rows)
}
