package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

// SSHServerConfig configures the alley's SSH server.
type SSHServerConfig struct {
	Address     string // host:port
	HostKeyPath string // generated under ~/.bowling when empty
	DBPath      string
	IdleTimeout time.Duration
	TickRate    int

	// OnlineGameID is the registered online mode that lobbies play.
	// Empty turns online play off.
	OnlineGameID string
}

func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.bowling/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
	}
}

// SSHServer serves the alley over SSH. Each connection gets its own
// SessionModel; online bowlers meet through one shared Coordinator.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
	logger      *log.Logger
}

func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultSSHServerConfig().TickRate
	}
	srv := &SSHServer{
		config:   cfg,
		sessions: multiplayer.NewSessionRegistry(),
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "bowling-ssh",
		}),
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		srv.logger.Warn("scores database unavailable, games will not be saved", "path", cfg.DBPath, "error", err)
	}
	srv.store = store

	if err := srv.setupOnline(); err != nil {
		srv.closeStore()
		return nil, err
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.logSessions,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return srv, nil
}

func (s *SSHServer) setupOnline() error {
	if s.config.OnlineGameID == "" {
		return nil
	}
	factory, ok := registry.Online(s.config.OnlineGameID)
	if !ok {
		return fmt.Errorf("unknown online mode: %s", s.config.OnlineGameID)
	}

	cfg := multiplayer.DefaultCoordinatorConfig()
	cfg.TickRate = s.config.TickRate
	s.coordinator = multiplayer.NewCoordinator(cfg, factory, s.sessions)
	if s.store != nil {
		s.coordinator.SetResultSaver(storeSaver{store: s.store, mode: s.config.OnlineGameID}, func(err error) {
			s.logger.Error("cannot save match", "error", err)
		})
	}
	return nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".bowling", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// bowlerName turns an SSH user name into a scorecard name: printable runes
// only, at most 12 of them.
func bowlerName(user string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return r
		}
		return -1
	}, user)
	if r := []rune(name); len(r) > 12 {
		name = string(r[:12])
	}
	if name == "" {
		return "guest"
	}
	return name
}

// teaHandler builds the session model; activeterm has already refused
// connections without a PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	name := bowlerName(sess.User())
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	if s.coordinator == nil {
		return NewSessionModel(s.store, cfg, name, nil, nil), []tea.ProgramOption{tea.WithAltScreen()}
	}

	ch := multiplayer.NewChannelSession(multiplayer.NewSessionID(name), 64)
	s.sessions.Register(ch)
	s.logger.Debug("online session registered", "user", name, "online", s.sessions.Count())

	go func() {
		<-sess.Context().Done()
		ch.Close()
		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: ch.ID()})
		s.sessions.Unregister(ch.ID())
		if n := ch.Dropped(); n > 0 {
			s.logger.Warn("session dropped events", "user", name, "dropped", n)
		}
	}()

	return NewSessionModel(s.store, cfg, name, ch, s.coordinator), []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("bowler connected", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("bowler left", "user", sess.User(), "after", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("alley open", "address", s.config.Address, "online", s.coordinator != nil)
	if s.coordinator != nil {
		s.coordinator.Start()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-stop
	s.logger.Info("closing the alley")
	return s.Shutdown()
}

// Shutdown ends running matches, then closes connections and the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.coordinator != nil {
		s.coordinator.Stop()
	}
	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

func (s *SSHServer) Addr() string {
	return s.config.Address
}

// storeSaver writes finished online matches to the score store.
type storeSaver struct {
	store *storage.Store
	mode  string
}

func (s storeSaver) SaveMatchResult(rec multiplayer.MatchRecord) error {
	res := rec.Result

	var winner string
	switch res.Winner {
	case core.Player1:
		winner = rec.Names[0]
	case core.Player2:
		winner = rec.Names[1]
	}

	return s.store.SaveMatch(storage.MatchResult{
		MatchID: string(rec.MatchID),
		Player1: storage.GameRecord{Mode: s.mode, Player: rec.Names[0], Score: res.Score1, Rolls: res.Rolls1},
		Player2: storage.GameRecord{Mode: s.mode, Player: rec.Names[1], Score: res.Score2, Rolls: res.Rolls2},
		Winner:  winner,
	})
}
