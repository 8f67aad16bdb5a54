// bowling is a ten-pin bowling alley for the terminal.
//
// Usage:
//
//	bowling list              - List available modes
//	bowling play [mode]       - Bowl a game (default: solo)
//	bowling menu              - Pick modes interactively
//	bowling score <rolls...>  - Score a roll sequence, e.g. X 7/ 9- X
//	bowling scores [mode]     - Show the best games and recent matches
//	bowling serve             - Start SSH server for remote and online play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible CPU bowling
//	--db <path>           - Set database path (default: ~/.bowling/scores.db)
//	--config <path>       - Custom bowling config YAML
//	--difficulty <preset> - CPU difficulty: easy, normal, hard, fixed
//	--name <name>         - Bowler name on the scorecard
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/games/alley"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagName       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bowling",
	Short: "TUI Bowling - Ten-pin bowling in your terminal",
	Long: `TUI Bowling keeps score of ten-pin bowling games in the terminal.
Enter pin counts, mark strikes and spares, or throw with the power meter.

Available commands:
  list     - Show all available modes
  play     - Bowl a game directly
  menu     - Interactive mode picker
  score    - Score a roll sequence without playing
  scores   - View the best games and recent matches
  serve    - Start SSH server for remote and online play

Examples:
  bowling list
  bowling play bowling_cpu --difficulty hard
  bowling menu --name Dude
  bowling score X X 7/ 9- X X X X X XXX
  bowling serve --ssh :2222`,
	PersistentPreRunE: configureGames,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bowling/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom bowling config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "CPU difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Bowler name (default from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// configureGames passes the global flags to the bowling modes before any
// game is created.
func configureGames(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	if flagConfig != "" {
		if _, err := config.LoadBowling(flagConfig); err != nil {
			log.Warn("could not load config, using defaults", "error", err)
		}
	}

	alley.SetConfigPath(flagConfig)
	alley.SetDifficultyPreset(flagDifficulty)
	alley.SetPlayerName(flagName)
	return nil
}
