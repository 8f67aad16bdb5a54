package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
	"github.com/vovakirdan/tui-bowling/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the bowling modes",
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes registered.")
		return
	}

	rows := make([][]string, 0, len(modes))
	online := false
	for _, m := range modes {
		rows = append(rows, []string{m.ID, m.Mode.String(), m.Title})
		online = online || m.Mode == multiplayer.MatchModeOnlinePvP
	}
	printTable([]string{"Mode", "Play", "Title"}, rows)

	fmt.Println("bowling play <mode> starts a game.")
	if online {
		fmt.Println("Online modes need two players on 'bowling serve'.")
	}
}
