package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/multiplayer"
	"github.com/vovakirdan/tui-paddle/internal/registry"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.paddle/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// GameID is the game each session plays.
	GameID string

	// TickRate is the simulation rate for every session.
	TickRate int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Online lets sessions host and join matches against each other.
	Online bool

	// LobbyTimeout is how long a hosted lobby waits for a joiner.
	LobbyTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":23234",
		DBPath:       "~/.paddle/scores.db",
		GameID:       "pong",
		TickRate:     60,
		IdleTimeout:  30 * time.Minute,
		Online:       true,
		LobbyTimeout: multiplayer.DefaultConfig().LobbyTimeout,
	}
}

// SSHServer wraps a Wish SSH server serving one game per session.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	coordinator *multiplayer.Coordinator // nil when online play is off
	logger      *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "paddle-ssh",
		})
	}

	if !registry.Exists(cfg.GameID) {
		return nil, fmt.Errorf("unknown game %q", cfg.GameID)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	if cfg.Online {
		mpCfg := multiplayer.DefaultConfig()
		mpCfg.TickRate = cfg.TickRate
		if cfg.LobbyTimeout > 0 {
			mpCfg.LobbyTimeout = cfg.LobbyTimeout
		}
		srv.coordinator = multiplayer.NewCoordinator(mpCfg, OnlineGameFactory, logger.WithPrefix("online"))
		if store != nil {
			srv.coordinator.SetResultSaver(store)
		}
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".paddle", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:    pty.Window.Width,
		ScreenH:    pty.Window.Height,
		TickRate:   s.config.TickRate,
		Seed:       time.Now().UnixNano(),
		Players:    1,
		Difficulty: string(difficulties[1]),
	}

	logger := s.logger.With("user", sshSession.User())
	model := NewSessionModel(s.config.GameID, s.store, cfg, logger)
	if s.coordinator != nil {
		model = model.WithOnline(sshSession.Context(), s.coordinator, sshSession.User())
	}
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT/SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "game", s.config.GameID, "online", s.config.Online)
	if s.coordinator != nil {
		s.coordinator.Start()
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.coordinator != nil {
		s.coordinator.Stop()
	}
	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
	screenOnline
)

// SessionModel manages one session's flow: menu -> game or scores -> menu.
type SessionModel struct {
	gameID   string
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	game     Model
	scores   ScoreboardModel
	quitting bool

	// Online play; coordinator is nil when it is off
	ctx         context.Context
	coordinator *multiplayer.Coordinator
	user        string
	online      OnlineModel
	session     *multiplayer.Session
}

// NewSessionModel creates a new session model.
func NewSessionModel(gameID string, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	return SessionModel{
		gameID: gameID,
		store:  store,
		logger: logger,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// WithOnline returns a copy of the session offering online matches
// through coordinator. Online sessions end when ctx is done.
func (m SessionModel) WithOnline(ctx context.Context, coordinator *multiplayer.Coordinator, user string) SessionModel {
	m.ctx = ctx
	m.coordinator = coordinator
	m.user = user
	m.menu = m.menu.WithOnline()
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenOnline:
		return m.updateOnline(msg)
	}
	return m.updateMenu(msg)
}

// toMenu returns to a fresh menu keeping the last difficulty.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config)
	if m.coordinator != nil {
		m.menu = m.menu.WithOnline()
	}
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
// The menu quits its own program on a choice, so tea.Quit is only passed
// on when the player chose to leave.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Choice() {
	case ChoiceNone:
		return m, cmd

	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceScores:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case ChoiceOnline:
		return m.startOnline()
	}

	game, err := registry.Create(m.gameID)
	if err != nil {
		m.logger.Error("could not create game", "game", m.gameID, "error", err)
		return m.toMenu()
	}

	cfg := m.menu.Config()
	cfg.Seed = time.Now().UnixNano()
	m.config.Difficulty = cfg.Difficulty
	m.logger.Info("game started", "game", m.gameID, "players", cfg.Players, "difficulty", cfg.Difficulty)

	m.game = NewModel(game, m.store, cfg).WithLogger(m.logger).WithMenuExit()
	m.screen = screenGame
	return m, m.game.Init()
}

// startOnline connects a fresh coordinator session and shows the lobby.
func (m SessionModel) startOnline() (tea.Model, tea.Cmd) {
	if m.coordinator == nil {
		return m.toMenu()
	}
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	id := multiplayer.SessionID(fmt.Sprintf("%s-%d", m.user, time.Now().UnixNano()))
	session, err := m.coordinator.Connect(ctx, id)
	if err != nil {
		m.logger.Error("could not join online play", "error", err)
		return m.toMenu()
	}

	m.session = session
	m.online = NewOnlineModel(m.gameID, m.coordinator, session, m.config.ScreenW, m.config.ScreenH).WithLogger(m.logger)
	m.screen = screenOnline
	return m, m.online.Init()
}

// updateOnline handles updates when in the online flow. Leaving it closes
// the coordinator session.
func (m SessionModel) updateOnline(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.online.Update(msg)
	if online, ok := next.(OnlineModel); ok {
		m.online = online
	}

	switch {
	case m.online.IsQuitting():
		m.session.Close()
		m.quitting = true
		return m, tea.Quit
	case m.online.Done():
		m.session.Close()
		return m.toMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	if m.game.Done() {
		return m.toMenu()
	}
	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenOnline:
		return m.online.View()
	}
	return m.menu.View()
}
