package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/games/alley"
	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
	"github.com/vovakirdan/tui-bowling/internal/platform/tui"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Bowl a game",
	Long: `Start bowling in the specified mode (default: bowling).

Controls:
  0-9, -     - Enter the pins knocked down (- is a gutter ball)
  X          - Strike (first ball at a full rack)
  /          - Spare (knock down every standing pin)
  Space      - Throw with the power meter
  P          - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit
  Ctrl+S     - Save a screenshot

Difficulty options (CPU bowler and power meter):
  easy   - Wide meter window, CPU starts weak
  normal - CPU starts at 30% skill
  hard   - Narrow, fast meter window, CPU starts at 70% skill
  fixed  - No progression, CPU stays at the config's level

Examples:
  bowling play
  bowling play bowling_cpu --difficulty hard
  bowling play --name Walter --seed 42
  bowling play bowling_cpu --config ./my-bowling.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := alley.IDSolo
	if len(args) > 0 {
		gameID = args[0]
	}

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'bowling list' to see available modes.")
		os.Exit(1)
	}
	if info.Mode == multiplayer.MatchModeOnlinePvP {
		fmt.Fprintf(os.Stderr, "Error: %q is an online mode\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'bowling serve' and connect over SSH to bowl online.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database, scores will not be saved", "error", err)
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
