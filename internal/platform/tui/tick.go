// Package tui is the terminal front end of the alley: the Bubble Tea models
// for menus, lanes, score tables and online lobbies, plus the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the running game by one step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg; rates outside 1..120 fall back to 30.
func tickCmd(rate int) tea.Cmd {
	if rate < 1 || rate > 120 {
		rate = 30
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
