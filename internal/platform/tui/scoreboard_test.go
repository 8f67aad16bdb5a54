package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bowling/internal/games/alley"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

func TestScorecardLine(t *testing.T) {
	tests := []struct {
		name  string
		rolls []int
		want  string
	}{
		{"empty", nil, "|   |   |   |   |   |   |   |   |   |     |"},
		{"marks", []int{10, 7, 3, 9, 0}, "|  X|7 /|9 -|   |   |   |   |   |   |     |"},
		{
			"perfect",
			[]int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
			"|  X|  X|  X|  X|  X|  X|  X|  X|  X|X X X|",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScorecardLine(tc.rolls); got != tc.want {
				t.Errorf("ScorecardLine(%v) = %q, expected %q", tc.rolls, got, tc.want)
			}
		})
	}
}

func TestScoreboardShowsBestGames(t *testing.T) {
	store := openTestStore(t)
	games := []storage.GameRecord{
		{Mode: alley.IDSolo, Player: "alice", Score: 90, Rolls: []int{9, 0}},
		{Mode: alley.IDSolo, Player: "bob", Score: 200, Rolls: []int{10, 7, 3}},
		{Mode: alley.IDVsCPU, Player: "carol", Score: 250, Rolls: []int{10}},
	}
	for _, g := range games {
		if _, err := store.SaveGame(g); err != nil {
			t.Fatalf("SaveGame() error: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.scores) != 3 || m.scores[0].Player != "carol" {
		t.Fatalf("all-modes page = %+v, expected carol's game first", m.scores)
	}
	if !strings.Contains(m.View(), "HIGH GAMES") {
		t.Error("view should have a title")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.scores) != 2 || m.scores[0].Player != "bob" {
		t.Fatalf("solo page = %+v, expected bob's game first", m.scores)
	}
	want := "|  X|7 /|   |   |   |   |   |   |   |     |\n| 20|   |   |   |   |   |   |   |   |     |"
	if got := m.selectedScorecard(); got != want {
		t.Errorf("selectedScorecard() = %q, expected %q", got, want)
	}
	if m.stats == nil || m.stats.GamesCount != 2 {
		t.Errorf("stats = %+v, expected two solo games", m.stats)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if sb, ok := next.(ScoreboardModel); !ok || !sb.IsGoingBack() {
		t.Error("esc should go back to the menu")
	}
}

func TestScoreboardMatchesPage(t *testing.T) {
	store := openTestStore(t)
	m := NewScoreboardModel(store, 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if !m.tabs[m.tab].matches {
		t.Fatalf("shift+tab from the first page should wrap to matches, got %q", m.tabs[m.tab].title)
	}
	if m.selectedScorecard() != "" {
		t.Error("an empty matches page has no selection")
	}
	if !strings.Contains(m.View(), "No games recorded yet.") {
		t.Errorf("empty page should say so:\n%s", m.View())
	}
}
