package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

// MenuItem is one bowling mode on the picker.
type MenuItem struct {
	GameID    string
	Title     string
	Mode      multiplayer.MatchMode
	HighScore int // 0 when the mode has no saved games
}

func (it MenuItem) blurb() string {
	switch it.Mode {
	case multiplayer.MatchModeVsCPU:
		return "Alternate frames with the house bowler"
	case multiplayer.MatchModeOnlinePvP:
		return "Host a lane or join one by code"
	default:
		return "Ten frames on your own"
	}
}

// MenuModel picks the mode to bowl. Online modes are listed only when the
// menu runs inside an SSH session that can reach the lobby.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	houseRecord storage.GameRecord
	config      core.RuntimeConfig
	keyMapper   *KeyMapper

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, withOnline bool) MenuModel {
	m := MenuModel{config: cfg, keyMapper: NewKeyMapper()}

	for _, info := range registry.List() {
		online := info.Mode == multiplayer.MatchModeOnlinePvP
		if online && !withOnline {
			continue
		}
		item := MenuItem{GameID: info.ID, Title: info.Title, Mode: info.Mode}
		if store != nil && !online {
			item.HighScore, _ = store.HighScore(info.ID)
		}
		m.items = append(m.items, item)
	}

	if store != nil {
		if best, err := store.TopScores("", 1); err == nil && len(best) > 0 {
			m.houseRecord = best[0]
		}
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// 1..9 picks a mode directly.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if i := int(s[0] - '1'); i < len(m.items) {
			m.cursor = i
			return m.choose()
		}
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, max(len(m.items)-1, 0))
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, max(len(m.items)-1, 0))
	case MenuActionSelect:
		return m.choose()
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) choose() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	it := m.items[m.cursor]
	m.selected = &it
	return m, tea.Quit
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	var list strings.Builder
	for i, it := range m.items {
		line := fmt.Sprintf("%d  %-16s", i+1, it.Title)
		if it.HighScore > 0 {
			line += fmt.Sprintf("  best %3d", it.HighScore)
		} else {
			line += strings.Repeat(" ", 10)
		}
		if i == m.cursor {
			list.WriteString(menuPickStyle.Render("▶ " + line))
			list.WriteString("\n")
			list.WriteString(menuDimStyle.Render("     " + it.blurb()))
		} else {
			list.WriteString("  " + line)
		}
		if i < len(m.items)-1 {
			list.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("T E N - P I N   B O W L I N G"), w))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuPanelStyle.Render(list.String()), w))
	b.WriteString("\n")
	if m.houseRecord.Score > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(menuDimStyle.Render(
			fmt.Sprintf("House record: %d by %s", m.houseRecord.Score, m.houseRecord.Player)), w))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("↑/↓ move  enter bowl  tab scores  q quit"), w))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config is the runtime config with any resize applied.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers every line of a (possibly styled) block within width.
func centerText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// MenuResult is what the user picked on the menu.
type MenuResult struct {
	GameID          string
	Mode            multiplayer.MatchMode
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the local menu until the user picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg, false), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config(), WantsScoreboard: m.WantsScoreboard()}
	switch {
	case res.WantsScoreboard:
	case m.Selected() != nil:
		res.GameID, res.Mode = m.Selected().GameID, m.Selected().Mode
	default:
		res.Quit = true
	}
	return res, nil
}
