package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bowling/internal/bowling"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

const (
	boardGames   = 50
	boardMatches = 20
)

// boardTab is one page of the scoreboard: the best games of a mode (all
// modes when mode is empty) or the recent online matches.
type boardTab struct {
	title   string
	mode    string
	matches bool
}

func boardTabs() []boardTab {
	tabs := []boardTab{{title: "All"}}
	for _, info := range registry.List() {
		tabs = append(tabs, boardTab{title: info.Title, mode: info.ID})
	}
	return append(tabs, boardTab{title: "Matches", matches: true})
}

type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next page")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev page")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel pages through the stored results. The highlighted game's
// scorecard (marks and running totals) is drawn under the table.
type ScoreboardModel struct {
	store   *storage.Store
	tabs    []boardTab
	tab     int
	scores  []storage.GameRecord
	matches []storage.MatchSummary
	stats   *storage.GameStats
	loadErr error

	table table.Model
	help  help.Model
	keys  scoreboardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens the scoreboard on the all-modes page.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		tabs:   boardTabs(),
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

func (m *ScoreboardModel) load() {
	m.scores, m.matches, m.stats, m.loadErr = nil, nil, nil, nil

	tab := m.tabs[m.tab]
	if m.store != nil {
		switch {
		case tab.matches:
			m.matches, m.loadErr = m.store.RecentMatches(boardMatches)
		default:
			m.scores, m.loadErr = m.store.TopScores(tab.mode, boardGames)
			if m.loadErr == nil && tab.mode != "" {
				m.stats, _ = m.store.GetGameStats(tab.mode)
			}
		}
	}
	m.table = m.buildTable()
}

func (m ScoreboardModel) buildTable() table.Model {
	var (
		cols []table.Column
		rows []table.Row
	)
	if m.tabs[m.tab].matches {
		cols = []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Host", Width: 12},
			{Title: "Score", Width: 9},
			{Title: "Guest", Width: 12},
		}
		for _, s := range m.matches {
			rows = append(rows, table.Row{
				s.CreatedAt.Format("Jan 02 15:04"),
				s.Player1,
				fmt.Sprintf("%3d - %-3d", s.Score1, s.Score2),
				s.Player2,
			})
		}
	} else {
		cols = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Bowler", Width: 14},
			{Title: "Score", Width: 5},
			{Title: "Date", Width: 12},
		}
		for i, g := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprint(i + 1),
				g.Player,
				fmt.Sprint(g.Score),
				g.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.buildTable()
		m.table.SetCursor(cursor)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
			m.load()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)

	var b strings.Builder
	b.WriteString(title.Render(centerText("HIGH GAMES", m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			tabs[i] = active.Render(" " + t.title + " ")
		} else {
			tabs[i] = dim.Render(" " + t.title + " ")
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.loadErr != nil:
		body = dim.Render("Scores unavailable: " + m.loadErr.Error())
	case len(m.table.Rows()) == 0:
		body = dim.Italic(true).Render("No games recorded yet.\nBowl a game to set a high score!")
	default:
		body = m.table.View()
	}
	b.WriteString(centerText(panel.Render(body), m.width))
	b.WriteString("\n")

	if card := m.selectedScorecard(); card != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(card, "\n") {
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	}
	if m.stats != nil && m.stats.GamesCount > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(dim.Render(fmt.Sprintf("%d games  best %d  avg %.1f",
			m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

// selectedScorecard returns the highlighted row's scorecard: marks over
// running totals for a game, the final line for a match.
func (m ScoreboardModel) selectedScorecard() string {
	i := m.table.Cursor()
	if m.tabs[m.tab].matches {
		if i < 0 || i >= len(m.matches) {
			return ""
		}
		s := m.matches[i]
		if s.Winner == "" {
			return fmt.Sprintf("%s %d - %d %s  (tie)", s.Player1, s.Score1, s.Score2, s.Player2)
		}
		return fmt.Sprintf("%s %d - %d %s  (%s wins)", s.Player1, s.Score1, s.Score2, s.Player2, s.Winner)
	}
	if i < 0 || i >= len(m.scores) {
		return ""
	}
	return ScorecardLine(m.scores[i].Rolls) + "\n" + totalsLine(m.scores[i].Rolls)
}

// ScorecardLine formats rolls as a one-line scorecard, e.g. "|  X|7 /|9 -|...".
func ScorecardLine(rolls []int) string {
	marks := bowling.FrameMarks(rolls)
	frames := make([]string, 0, bowling.Frames)
	for _, boxes := range marks {
		cells := make([]string, len(boxes))
		for i, m := range boxes {
			if m == "" {
				m = " "
			}
			cells[i] = m
		}
		frames = append(frames, strings.Join(cells, " "))
	}
	return "|" + strings.Join(frames, "|") + "|"
}

// totalsLine lines the running totals up under ScorecardLine.
func totalsLine(rolls []int) string {
	var b strings.Builder
	for f, t := range bowling.RunningTotals(rolls) {
		w := 3
		if f == bowling.Frames-1 {
			w = 5
		}
		if t.Known {
			fmt.Fprintf(&b, "|%*d", w, t.Score)
		} else {
			fmt.Fprintf(&b, "|%*s", w, "")
		}
	}
	return b.String() + "|"
}

func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard until the user leaves it. goBack is
// false when the user asked to quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
