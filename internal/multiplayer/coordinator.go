package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Lobby is a hosted game waiting for an opponent.
type Lobby struct {
	Code      string
	Host      SessionHandle
	HostName  string
	CreatedAt time.Time
}

func (l *Lobby) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(l.CreatedAt) > ttl
}

type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // unjoined lobbies close after this
	TickRate      int           // match ticks per second
	CleanupPeriod time.Duration // lobby sweep interval
}

func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		TickRate:      30,
		CleanupPeriod: 30 * time.Second,
	}
}

// GameFactory creates the shared game for a new match.
type GameFactory func(names [2]string, seed int64) (OnlineGame, error)

// MatchRecord is a finished match as handed to a ResultSaver.
type MatchRecord struct {
	MatchID MatchID
	Names   [2]string
	Result  MatchResult
}

// ResultSaver persists finished matches. Only matches bowled to the end are
// saved.
type ResultSaver interface {
	SaveMatchResult(rec MatchRecord) error
}

// seat is where a session currently is: hosting a lobby or in a match.
// At most one of the two is set.
type seat struct {
	lobby string
	match MatchID
}

// Coordinator pairs sessions through join codes and owns the running
// matches. Lobby and match changes happen on one goroutine fed by Send.
type Coordinator struct {
	config   CoordinatorConfig
	factory  GameFactory
	sessions *SessionRegistry
	saver    ResultSaver
	onError  func(error)

	mu      sync.RWMutex
	lobbies map[string]*Lobby
	matches map[MatchID]*OnlineMatch
	seats   map[SessionID]seat

	msgs chan CoordinatorMessage
	done chan struct{}
	stop sync.Once
}

// NewCoordinator creates a coordinator. Call Start before sending messages.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry) *Coordinator {
	return &Coordinator{
		config:   cfg,
		factory:  factory,
		sessions: sessions,
		lobbies:  make(map[string]*Lobby),
		matches:  make(map[MatchID]*OnlineMatch),
		seats:    make(map[SessionID]seat),
		msgs:     make(chan CoordinatorMessage, 256),
		done:     make(chan struct{}),
	}
}

// SetResultSaver sets where finished matches go. onError receives save
// failures and may be nil.
func (c *Coordinator) SetResultSaver(saver ResultSaver, onError func(error)) {
	c.saver = saver
	c.onError = onError
}

func (c *Coordinator) Start() {
	go c.run()
}

// Stop ends the coordinator and every running match. It is safe to call
// more than once.
func (c *Coordinator) Stop() {
	c.stop.Do(func() {
		close(c.done)
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, m := range c.matches {
			m.Stop()
		}
	})
}

// Send queues a message. It returns without sending once Stop was called.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgs <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) run() {
	sweep := time.NewTicker(c.config.CleanupPeriod)
	defer sweep.Stop()

	for {
		select {
		case msg := <-c.msgs:
			c.handle(msg)
		case now := <-sweep.C:
			c.expireLobbies(now)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handle(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.host(m)
	case JoinLobbyMsg:
		c.join(m)
	case LeaveLobbyMsg:
		c.mu.Lock()
		if l, ok := c.lobbies[strings.ToUpper(m.Code)]; ok && l.Host.ID() == m.SessionID {
			c.closeLobby(l)
		}
		c.mu.Unlock()
	case PlayerInputMsg:
		c.mu.RLock()
		match := c.matches[m.MatchID]
		c.mu.RUnlock()
		if match != nil {
			match.SendInput(m)
		}
	case SessionDisconnectedMsg:
		c.leave(m.SessionID)
	}
}

// admit looks up the sender and checks it is free to host or join. On
// success c.mu is held and the caller must release it.
func (c *Coordinator) admit(id SessionID) (SessionHandle, bool) {
	session, ok := c.sessions.Get(id)
	if !ok {
		return nil, false
	}
	c.mu.Lock()
	if _, seated := c.seats[id]; seated {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return nil, false
	}
	return session, true
}

func (c *Coordinator) host(msg CreateLobbyMsg) {
	session, ok := c.admit(msg.SessionID)
	if !ok {
		return
	}
	defer c.mu.Unlock()

	code := c.uniqueCode()
	c.lobbies[code] = &Lobby{Code: code, Host: session, HostName: msg.Name, CreatedAt: time.Now()}
	c.seats[msg.SessionID] = seat{lobby: code}
	session.Send(LobbyCreatedEvent{Code: code})
}

func (c *Coordinator) join(msg JoinLobbyMsg) {
	session, ok := c.admit(msg.SessionID)
	if !ok {
		return
	}
	defer c.mu.Unlock()

	lobby := c.lobbies[strings.ToUpper(strings.TrimSpace(msg.Code))]
	switch {
	case lobby == nil:
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
	case lobby.Host.ID() == msg.SessionID:
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
	default:
		c.closeLobby(lobby)
		c.startMatch(lobby, session, msg.Name)
	}
}

// closeLobby must be called with c.mu held.
func (c *Coordinator) closeLobby(l *Lobby) {
	delete(c.lobbies, l.Code)
	delete(c.seats, l.Host.ID())
}

// startMatch must be called with c.mu held.
func (c *Coordinator) startMatch(lobby *Lobby, joiner SessionHandle, joinerName string) {
	names := [2]string{lobby.HostName, joinerName}
	game, err := c.factory(names, time.Now().UnixNano())
	if err != nil {
		evt := LobbyErrorEvent{Message: fmt.Sprintf("Failed to create game: %v", err)}
		lobby.Host.Send(evt)
		joiner.Send(evt)
		return
	}

	id := NewMatchID()
	match := NewOnlineMatch(id, lobby.Code, game, lobby.Host, joiner, names, c.config.TickRate)
	c.matches[id] = match
	c.seats[lobby.Host.ID()] = seat{match: id}
	c.seats[joiner.ID()] = seat{match: id}

	lobby.Host.Send(MatchStartedEvent{MatchID: id, Side: Player1, Code: lobby.Code, Opponent: joinerName})
	joiner.Send(MatchStartedEvent{MatchID: id, Side: Player2, Code: lobby.Code, Opponent: lobby.HostName})

	go match.Run(func(result MatchResult) { c.finish(match, result) })
}

func (c *Coordinator) finish(match *OnlineMatch, result MatchResult) {
	c.mu.Lock()
	delete(c.matches, match.ID())
	delete(c.seats, match.Session(Player1).ID())
	delete(c.seats, match.Session(Player2).ID())
	c.mu.Unlock()

	if c.saver != nil && result.Reason == MatchEndReasonCompleted {
		err := c.saver.SaveMatchResult(MatchRecord{MatchID: match.ID(), Names: match.Names(), Result: result})
		if err != nil && c.onError != nil {
			c.onError(fmt.Errorf("save match %s: %w", match.ID(), err))
		}
	}

	evt := MatchEndedEvent{
		MatchID: match.ID(),
		Reason:  result.Reason,
		Winner:  result.Winner,
		Score1:  result.Score1,
		Score2:  result.Score2,
	}
	for _, p := range []PlayerID{Player1, Player2} {
		match.Session(p).Send(evt)
	}
}

// leave drops a disconnected session's lobby, or forfeits its match.
func (c *Coordinator) leave(id SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.seats[id]
	switch {
	case !ok:
	case s.lobby != "":
		if l := c.lobbies[s.lobby]; l != nil {
			c.closeLobby(l)
		}
	default:
		if match := c.matches[s.match]; match != nil {
			match.PlayerDisconnected(id)
		}
	}
}

func (c *Coordinator) expireLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range c.lobbies {
		if l.expired(now, c.config.LobbyTimeout) {
			l.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			c.closeLobby(l)
		}
	}
}

// uniqueCode must be called with c.mu held.
func (c *Coordinator) uniqueCode() string {
	for {
		if code := joinCode(); c.lobbies[code] == nil {
			return code
		}
	}
}

// joinCode returns six characters of the base32 alphabet, A-Z and 2-7.
func joinCode() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b[:])[:6]
}

func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
