package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/platform/tui"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from a menu, bowl, repeat",
	Long: `Open the alley's front desk. Pick a mode with the arrow keys, j/k or
its number and press Enter. When the game ends you are back at the desk.

Keys:
  ↑/↓ j/k   move
  1-9       pick a mode
  Enter     bowl
  Tab       high games
  q         leave

Examples:
  bowling menu
  bowling menu --name Donny --difficulty hard`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("scores database unavailable, games will not be saved", "path", flagDBPath, "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return
		case res.WantsScoreboard:
			if !showScoreboard(store, cfg) {
				return
			}
		case res.GameID != "":
			bowl(res.GameID, store, cfg)
		default:
			return
		}
	}
}

// showScoreboard reports whether the bowler went back to the menu.
func showScoreboard(store *storage.Store, cfg core.RuntimeConfig) bool {
	back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return back
}

func bowl(id string, store *storage.Store, cfg core.RuntimeConfig) {
	game, err := registry.Create(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := tui.Run(game, store, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
