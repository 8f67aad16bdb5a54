package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/games/alley"
	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
)

// OnlinePhase is where a session is on its way to, or through, a match.
type OnlinePhase int

const (
	OnlineLobby     OnlinePhase = iota // host or join?
	OnlineHosting                      // code shown, waiting for an opponent
	OnlineCodeEntry                    // typing the host's code
	OnlineJoining                      // join sent, waiting for the answer
	OnlineBowling                      // the match is on
	OnlineFinished                     // final scorecard and result line
)

const joinCodeLen = 6

// Coordinator is the part of the match coordinator a session talks to.
type Coordinator interface {
	Send(msg multiplayer.CoordinatorMessage)
}

var onlineKeys = struct {
	Host, Join, Done, Back, Quit key.Binding
}{
	Host: key.NewBinding(key.WithKeys("1", "h", "H")),
	Join: key.NewBinding(key.WithKeys("2", "j", "J")),
	Done: key.NewBinding(key.WithKeys("enter")),
	Back: key.NewBinding(key.WithKeys("esc", "b")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// OnlineModel runs one session's side of online play: hosting or joining a
// lobby, then bowling the match. It never reads the session's event channel
// itself; the owner forwards every SessionEvent to Update.
type OnlineModel struct {
	phase         OnlinePhase
	width, height int
	keyMapper     *KeyMapper
	sessionID     multiplayer.SessionID
	name          string
	coordinator   Coordinator

	lobbyCode  string // while hosting
	codeInput  string // while joining
	lobbyError string

	matchID  multiplayer.MatchID
	side     core.PlayerID
	opponent string
	snap     *alley.Snapshot
	screen   *core.Screen
	ended    *multiplayer.MatchEndedEvent

	backToMenu bool
	quitting   bool
}

func NewOnlineModel(sessionID multiplayer.SessionID, name string, coordinator Coordinator, width, height int) OnlineModel {
	return OnlineModel{
		width:       width,
		height:      height,
		keyMapper:   NewKeyMapper(),
		sessionID:   sessionID,
		name:        name,
		coordinator: coordinator,
		screen:      core.NewScreen(width, height),
	}
}

func (m OnlineModel) Init() tea.Cmd { return nil }

// Update handles key presses and coordinator events.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, msg.Height)
	case multiplayer.SessionEvent:
		return m.handleEvent(msg), nil
	}
	return m, nil
}

// handleEvent applies a coordinator or match event. Match events for a
// match this model is not bowling are stale and ignored.
func (m OnlineModel) handleEvent(evt multiplayer.SessionEvent) OnlineModel {
	switch evt := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		if m.phase == OnlineLobby {
			m.phase, m.lobbyCode, m.lobbyError = OnlineHosting, evt.Code, ""
		}
	case multiplayer.LobbyErrorEvent:
		m.lobbyError = evt.Message
		if m.phase == OnlineJoining {
			m.phase = OnlineCodeEntry
		} else if m.phase == OnlineHosting {
			m.phase, m.lobbyCode = OnlineLobby, ""
		}
	case multiplayer.MatchStartedEvent:
		m.phase = OnlineBowling
		m.matchID, m.side, m.opponent = evt.MatchID, evt.Side, evt.Opponent
		m.snap, m.ended = nil, nil
	case multiplayer.SnapshotEvent:
		if snap, ok := evt.Snapshot.(alley.Snapshot); ok && evt.MatchID == m.matchID {
			m.snap = &snap
		}
	case multiplayer.MatchEndedEvent:
		if evt.MatchID == m.matchID {
			m.phase, m.ended = OnlineFinished, &evt
		}
	}
	return m
}

func (m OnlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := onlineKeys
	switch m.phase {
	case OnlineLobby:
		switch {
		case key.Matches(msg, k.Host):
			m.coordinator.Send(multiplayer.CreateLobbyMsg{SessionID: m.sessionID, Name: m.name})
		case key.Matches(msg, k.Join):
			m.phase, m.codeInput, m.lobbyError = OnlineCodeEntry, "", ""
		case key.Matches(msg, k.Back):
			m.backToMenu = true
		case key.Matches(msg, k.Quit):
			return m.quit()
		}

	case OnlineHosting:
		if key.Matches(msg, k.Back, k.Quit) {
			m.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
			m.phase, m.lobbyCode = OnlineLobby, ""
			if key.Matches(msg, k.Quit) {
				return m.quit()
			}
		}

	case OnlineCodeEntry:
		return m.typeCode(msg)

	case OnlineJoining:
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlC {
			m.phase = OnlineCodeEntry
		}

	case OnlineBowling:
		return m.bowl(msg)

	case OnlineFinished:
		if key.Matches(msg, k.Quit) {
			return m.quit()
		}
		m.backToMenu = key.Matches(msg, k.Done, k.Back)
	}
	return m, nil
}

func (m OnlineModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// typeCode edits the join code. Letters that are also shortcuts elsewhere
// are code characters here, so only esc and ctrl+c leave.
func (m OnlineModel) typeCode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.phase, m.lobbyError = OnlineLobby, ""
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEnter:
		if len(m.codeInput) == joinCodeLen {
			m.phase, m.lobbyError = OnlineJoining, ""
			m.coordinator.Send(multiplayer.JoinLobbyMsg{SessionID: m.sessionID, Name: m.name, Code: m.codeInput})
		}
	case tea.KeyBackspace:
		if n := len(m.codeInput); n > 0 {
			m.codeInput = m.codeInput[:n-1]
		}
	case tea.KeyRunes:
		for _, r := range strings.ToUpper(string(msg.Runes)) {
			if len(m.codeInput) < joinCodeLen && (r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				m.codeInput += string(r)
			}
		}
	}
	return m, nil
}

// bowl forwards bowling keys to the match. Leaving forfeits.
func (m OnlineModel) bowl(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var frame core.InputFrame
	quit := m.keyMapper.MapKeyToFrame(msg, &frame)
	if quit || frame.Has(core.ActionBack) {
		m.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: m.sessionID})
		if quit {
			return m.quit()
		}
		m.backToMenu = true
		return m, nil
	}
	if !frame.Empty() {
		m.coordinator.Send(multiplayer.PlayerInputMsg{MatchID: m.matchID, Player: m.side, Input: frame})
	}
	return m, nil
}

func (m OnlineModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case OnlineHosting:
		return m.panel("HOSTING A LANE",
			"Give this code to your opponent:",
			menuPickStyle.Render(spacedCode(m.lobbyCode)),
			menuDimStyle.Render("Waiting for a bowler to join..."),
			m.errorLine(),
			"esc cancel  q quit")
	case OnlineCodeEntry:
		return m.panel("JOIN A LANE",
			"Type the host's code:",
			menuPickStyle.Render(spacedCode(m.codeInput)),
			m.errorLine(),
			"enter join  esc back")
	case OnlineJoining:
		return m.panel("JOINING",
			"Looking for lane "+spacedCode(m.codeInput)+"...")
	case OnlineBowling, OnlineFinished:
		return m.viewMatch()
	default:
		return m.panel("ONLINE BOWLING",
			"Bowling as "+m.name,
			"1  host a lane",
			"2  join a lane",
			m.errorLine(),
			"esc back  q quit")
	}
}

// panel draws a lobby screen: a title over a bordered block of lines.
// Empty lines are skipped.
func (m OnlineModel) panel(title string, lines ...string) string {
	body := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			body = append(body, l)
		}
	}
	return "\n" + centerText(menuTitleStyle.Render(title), m.width) + "\n\n" +
		centerText(menuPanelStyle.Render(strings.Join(body, "\n\n")), m.width) + "\n"
}

func (m OnlineModel) errorLine() string {
	if m.lobbyError == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.lobbyError)
}

// spacedCode shows a join code as six slots, "A B _ _ _ _".
func spacedCode(code string) string {
	slots := make([]string, joinCodeLen)
	for i := range slots {
		slots[i] = "_"
		if i < len(code) {
			slots[i] = code[i : i+1]
		}
	}
	return strings.Join(slots, " ")
}

func (m OnlineModel) viewMatch() string {
	if m.snap == nil {
		return m.panel("MATCH STARTING", fmt.Sprintf("%s vs %s", m.name, m.opponent))
	}

	m.screen.Clear()
	alley.RenderSnapshot(m.screen, *m.snap, m.side)
	if m.ended != nil {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.resultLine(), core.ColorYellow)
	}
	return RenderScreen(m.screen)
}

// resultLine describes the finished match from this session's side.
func (m OnlineModel) resultLine() string {
	e := m.ended
	mine, theirs := e.Score1, e.Score2
	if m.side == core.Player2 {
		mine, theirs = theirs, mine
	}

	var outcome string
	switch e.Winner {
	case m.side:
		outcome = "You win"
	case core.PlayerNone:
		outcome = "Tie game"
	default:
		outcome = "You lose"
	}

	line := fmt.Sprintf("%s %d-%d", outcome, mine, theirs)
	if e.Reason != multiplayer.MatchEndReasonCompleted {
		line = fmt.Sprintf("%s (%s)", line, e.Reason)
	}
	return line + "  |  Enter: Menu"
}

func (m OnlineModel) Phase() OnlinePhase {
	return m.phase
}

// BackToMenu reports that the bowler left online play for the menu.
func (m OnlineModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports that the bowler closed the session.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}

// MatchID is empty until a match starts.
func (m OnlineModel) MatchID() multiplayer.MatchID {
	return m.matchID
}

// Side returns which player this session bowls as.
func (m OnlineModel) Side() core.PlayerID {
	return m.side
}

// LobbyCode is the join code while hosting.
func (m OnlineModel) LobbyCode() string {
	return m.lobbyCode
}
