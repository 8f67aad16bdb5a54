package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

// subview is a screen opened from the session menu. done reports whether
// the bowler wants to leave it, and whether that means closing the session.
type subview interface {
	tea.Model
	done() (leave, quit bool)
}

type sessionEventMsg struct {
	evt multiplayer.SessionEvent
}

type sessionClosedMsg struct{}

// pump reads the next coordinator event. SessionModel is the only reader.
func pump(s *multiplayer.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-s.Events():
			return sessionEventMsg{evt: evt}
		case <-s.Done():
			return sessionClosedMsg{}
		}
	}
}

// SessionModel is one SSH bowler's whole visit. It shows the menu until a
// mode or the score table is picked, then hands every message to that
// subview until it is left.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	bowler string

	// both nil when online play is off
	session     *multiplayer.ChannelSession
	coordinator Coordinator

	menu    MenuModel
	current subview // nil while the menu is up
	closed  bool
}

// NewSessionModel builds the model for one connection. Online modes are
// hidden unless both session and coordinator are set.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, bowler string, session *multiplayer.ChannelSession, coordinator Coordinator) SessionModel {
	m := SessionModel{store: store, config: cfg, bowler: bowler}
	if session != nil && coordinator != nil {
		m.session, m.coordinator = session, coordinator
	}
	m.menu = NewMenuModel(store, cfg, m.online())
	return m
}

func (m SessionModel) online() bool { return m.coordinator != nil }

func (m SessionModel) Init() tea.Cmd {
	if !m.online() {
		return m.menu.Init()
	}
	return tea.Batch(m.menu.Init(), pump(m.session))
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case sessionClosedMsg:
		m.closed = true
		return m, tea.Quit
	case sessionEventMsg:
		// Events outside an online match are stale; drop them.
		if om, ok := m.current.(OnlineModel); ok {
			next, _ := om.Update(msg.evt)
			if sv, ok := next.(subview); ok {
				m.current = sv
			}
		}
		return m, pump(m.session)
	}

	if m.current == nil {
		return m.fromMenu(msg)
	}

	next, cmd := m.current.Update(msg)
	sv, ok := next.(subview)
	if !ok {
		return m.home()
	}
	m.current = sv
	switch leave, quit := sv.done(); {
	case quit:
		m.closed = true
		return m, tea.Quit
	case leave:
		return m.home()
	}
	return m, cmd
}

func (m SessionModel) fromMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	// A pick makes the menu return tea.Quit, meant for its standalone
	// program; the session drops that cmd and opens the pick instead.
	pick := m.menu.Selected()
	switch {
	case m.menu.IsQuitting():
		m.closed = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		return m.open(NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH))
	case pick == nil:
		return m, cmd
	case pick.Mode == multiplayer.MatchModeOnlinePvP:
		if !m.online() {
			return m.home()
		}
		return m.open(NewOnlineModel(m.session.ID(), m.bowler, m.coordinator, m.config.ScreenW, m.config.ScreenH))
	}

	game, err := registry.Create(pick.GameID)
	if err != nil {
		return m.home()
	}
	if named, ok := game.(registry.Named); ok {
		named.SetBowlerName(m.bowler)
	}
	return m.open(NewGameModel(game, m.store, m.config))
}

func (m SessionModel) open(sv subview) (tea.Model, tea.Cmd) {
	m.current = sv
	return m, sv.Init()
}

// home rebuilds the menu so best games saved meanwhile show up.
func (m SessionModel) home() (tea.Model, tea.Cmd) {
	m.current = nil
	m.menu = NewMenuModel(m.store, m.config, m.online())
	return m, m.menu.Init()
}

func (m SessionModel) View() string {
	switch {
	case m.closed:
		return ""
	case m.current != nil:
		return m.current.View()
	}
	return m.menu.View()
}

// GameModel is a local game inside a session. B or Esc goes back to the
// menu once the game is over or paused.
type GameModel struct {
	Model
	back bool
}

func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	return GameModel{Model: NewModel(game, store, cfg)}
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && (m.state.GameOver || m.state.Paused) {
		if m.keyMapper.MapKeyToMenuAction(k) == MenuActionBack {
			m.back = true
			return m, nil
		}
	}

	next, cmd := m.Model.Update(msg)
	if model, ok := next.(Model); ok {
		m.Model = model
	}
	return m, cmd
}

func (m GameModel) done() (leave, quit bool) { return m.back, m.quitting }

func (m ScoreboardModel) done() (leave, quit bool) { return m.IsGoingBack(), m.IsQuitting() }

func (m OnlineModel) done() (leave, quit bool) { return m.BackToMenu(), m.IsQuitting() }
