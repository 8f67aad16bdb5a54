package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

// notice is a one-line message drawn on the bottom row of the lane.
type notice struct {
	text  string
	color core.Color
}

// Model runs one local game: it gathers the keys pressed between ticks,
// steps the game and records the finished game once.
type Model struct {
	game      registry.Game
	store     *storage.Store
	config    core.RuntimeConfig
	screen    *core.Screen
	keyMapper *KeyMapper

	input    core.InputFrame
	state    core.GameState
	notice   notice
	recorded bool
	quitting bool
}

func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	return Model{
		game:      game,
		store:     store,
		config:    cfg,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keyMapper: NewKeyMapper(),
	}
}

func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.step()

	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.notice = m.exportScorecard()
			return m, nil
		}
		if m.keyMapper.MapKeyToFrame(msg, &m.input) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m Model) step() (tea.Model, tea.Cmd) {
	in := m.input
	m.input.Clear()

	if in.Has(core.ActionRestart) && m.state.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.recorded = false
		m.notice = notice{}
		return m, tickCmd(m.config.TickRate)
	}

	m.state = m.game.Step(in).State
	if m.state.GameOver && !m.recorded {
		m.recorded = true
		m.notice = m.record()
	}
	return m, tickCmd(m.config.TickRate)
}

// record saves the finished game and tells the bowler how it went.
func (m Model) record() notice {
	rec, ok := m.game.(registry.Recorder)
	if m.store == nil || !ok {
		return notice{}
	}
	results := rec.Results()
	if len(results) == 0 {
		return notice{}
	}

	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		log.Warn("cannot read high score", "mode", m.game.ID(), "error", err)
	}

	games := make([]storage.GameRecord, len(results))
	for i, r := range results {
		games[i] = storage.GameRecord{Mode: m.game.ID(), Player: r.Player, Score: r.Score, Rolls: r.Rolls}
	}
	if err := m.store.SaveGames(games); err != nil {
		log.Error("cannot save game", "mode", m.game.ID(), "error", err)
		return notice{"Score not saved: " + err.Error(), core.ColorRed}
	}

	top := results[0]
	for _, r := range results[1:] {
		if r.Score > top.Score {
			top = r
		}
	}
	if top.Score > best {
		return notice{fmt.Sprintf("New high game: %s %d", top.Player, top.Score), core.ColorGreen}
	}
	return notice{fmt.Sprintf("Saved. High game is %d", best), core.ColorGray}
}

// exportScorecard writes the lane as plain text under ~/.bowling/scorecards.
func (m Model) exportScorecard() notice {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return notice{"No home directory for scorecards", core.ColorRed}
	}
	dir := filepath.Join(home, ".bowling", "scorecards")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("cannot create scorecard directory", "dir", dir, "error", err)
		return notice{"Scorecard not saved", core.ColorRed}
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("cannot write scorecard", "path", path, "error", err)
		return notice{"Scorecard not saved", core.ColorRed}
	}
	return notice{"Scorecard saved to " + path, core.ColorGray}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	if m.notice.text != "" {
		m.screen.DrawTextColor(0, m.screen.Height()-1, m.notice.text, m.notice.color)
	}
	return RenderScreen(m.screen)
}

// Run plays game in the terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewModel(game, store, cfg), tea.WithAltScreen()).Run()
	return err
}
