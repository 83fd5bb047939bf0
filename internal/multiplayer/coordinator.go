package multiplayer

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

// codeLength is the number of characters in a join code.
const codeLength = 6

// ErrDuplicateSession is returned by Connect for an ID already in use.
var ErrDuplicateSession = errors.New("multiplayer: session already connected")

// Config holds coordinator settings.
type Config struct {
	LobbyTimeout  time.Duration // How long a lobby waits for a joiner
	CleanupPeriod time.Duration // How often expired lobbies are swept
	TickRate      int           // Match simulation rate (Hz)
	EventBuffer   int           // Events queued per session
}

// DefaultConfig returns the coordinator defaults.
func DefaultConfig() Config {
	return Config{
		LobbyTimeout:  2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
		TickRate:      60,
		EventBuffer:   defaultEventBuffer,
	}
}

// ResultSaver persists finished matches. *storage.Store implements it.
type ResultSaver interface {
	SaveMatch(m storage.MatchResult) (int64, error)
}

type lobby struct {
	code      string
	gameID    string
	host      *Session
	createdAt time.Time
}

type seat struct {
	match *Match
	side  core.PlayerID
}

// disconnected is posted when a session's Done channel closes.
type disconnected struct {
	session SessionID
}

func (disconnected) message() {}

// Coordinator pairs sessions through lobbies and runs their matches.
// Messages are handled one at a time on the coordinator's goroutine;
// matches run on their own goroutines.
type Coordinator struct {
	config  Config
	newGame GameFactory
	saver   ResultSaver
	logger  *log.Logger

	mu       sync.Mutex
	sessions map[SessionID]*Session
	lobbies  map[string]*lobby // code -> lobby
	hosting  map[SessionID]string
	seats    map[SessionID]seat
	matches  map[MatchID]*Match

	inbox    chan Message
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewCoordinator creates a coordinator. A nil logger discards logs.
func NewCoordinator(cfg Config, factory GameFactory, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultConfig().TickRate
	}
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = DefaultConfig().CleanupPeriod
	}
	return &Coordinator{
		config:   cfg,
		newGame:  factory,
		logger:   logger,
		sessions: make(map[SessionID]*Session),
		lobbies:  make(map[string]*lobby),
		hosting:  make(map[SessionID]string),
		seats:    make(map[SessionID]seat),
		matches:  make(map[MatchID]*Match),
		inbox:    make(chan Message, 256),
		done:     make(chan struct{}),
	}
}

// SetResultSaver stores finished matches through s.
func (c *Coordinator) SetResultSaver(s ResultSaver) {
	c.saver = s
}

// Start begins handling messages and sweeping expired lobbies.
func (c *Coordinator) Start() {
	c.wg.Add(2)
	go c.loop()
	go c.sweep()
}

// Stop ends every match, stops the coordinator and waits for its
// goroutines.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		for _, m := range c.matches {
			m.halt()
		}
		c.mu.Unlock()
	})
	c.wg.Wait()
}

// Connect registers a new session. The session is closed when ctx is
// done, and leaves its lobby or match once closed.
func (c *Coordinator) Connect(ctx context.Context, id SessionID) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sessions[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSession, id)
	}
	s := newSession(id, c.config.EventBuffer)
	c.sessions[id] = s

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.Done():
		case <-c.done:
			return
		}
		c.Send(disconnected{session: id})
	}()
	return s, nil
}

// Send queues a message for the coordinator. It drops the message once
// the coordinator has stopped.
func (c *Coordinator) Send(msg Message) {
	select {
	case c.inbox <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) loop() {
	defer c.wg.Done()
	for {
		select {
		case msg := <-c.inbox:
			c.handle(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handle(msg Message) {
	switch m := msg.(type) {
	case HostLobby:
		c.hostLobby(m)
	case JoinLobby:
		c.joinLobby(m)
	case LeaveLobby:
		c.mu.Lock()
		c.closeLobby(m.Session)
		c.mu.Unlock()
	case PlayerInput:
		c.mu.Lock()
		st, ok := c.seats[m.Session]
		c.mu.Unlock()
		if ok {
			st.match.input(st.side, m.Input)
		}
	case LeaveMatch:
		c.leaveMatch(m.Session)
	case disconnected:
		c.mu.Lock()
		c.closeLobby(m.session)
		delete(c.sessions, m.session)
		c.mu.Unlock()
		c.leaveMatch(m.session)
	}
}

// stopped reports whether Stop has been called.
func (c *Coordinator) stopped() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// busy reports whether id already hosts a lobby or plays a match.
// Must be called with c.mu held.
func (c *Coordinator) busy(id SessionID) bool {
	_, hosting := c.hosting[id]
	_, playing := c.seats[id]
	return hosting || playing
}

func (c *Coordinator) hostLobby(m HostLobby) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[m.Session]
	if !ok {
		return
	}
	if c.busy(m.Session) {
		s.send(LobbyError{Message: "already in a lobby or match"})
		return
	}

	code := c.uniqueCode()
	c.lobbies[code] = &lobby{code: code, gameID: m.GameID, host: s, createdAt: time.Now()}
	c.hosting[m.Session] = code
	c.logger.Info("lobby opened", "code", code, "game", m.GameID, "host", m.Session)

	s.send(LobbyCreated{Code: code, GameID: m.GameID})
}

func (c *Coordinator) joinLobby(m JoinLobby) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[m.Session]
	if !ok || c.stopped() {
		return
	}
	if c.busy(m.Session) {
		s.send(LobbyError{Message: "already in a lobby or match"})
		return
	}

	l, exists := c.lobbies[strings.ToUpper(strings.TrimSpace(m.Code))]
	if !exists {
		s.send(LobbyError{Message: "lobby not found"})
		return
	}

	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: c.config.TickRate,
		Seed:     time.Now().UnixNano(),
		Players:  2,
	}
	game, err := c.newGame(l.gameID, cfg)
	if err != nil {
		c.logger.Error("could not create match game", "game", l.gameID, "error", err)
		s.send(LobbyError{Message: "could not create game"})
		return
	}
	game.Reset(cfg)

	delete(c.lobbies, l.code)
	delete(c.hosting, l.host.ID())

	id := MatchID(fmt.Sprintf("match-%s-%d", l.code, time.Now().UnixNano()))
	match := newMatch(id, l.code, l.gameID, game, l.host, s, c.config.TickRate)
	c.matches[id] = match
	c.seats[l.host.ID()] = seat{match: match, side: core.Player1}
	c.seats[s.ID()] = seat{match: match, side: core.Player2}

	c.logger.Info("match started", "match", id, "host", l.host.ID(), "joiner", s.ID())

	l.host.send(MatchStarted{MatchID: id, Code: l.code, Side: core.Player1})
	s.send(MatchStarted{MatchID: id, Code: l.code, Side: core.Player2})

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		match.run(c.finish)
	}()
}

// closeLobby removes the lobby hosted by id, if any.
// Must be called with c.mu held.
func (c *Coordinator) closeLobby(id SessionID) {
	code, ok := c.hosting[id]
	if !ok {
		return
	}
	delete(c.hosting, id)
	delete(c.lobbies, code)
	c.logger.Info("lobby closed", "code", code)
}

func (c *Coordinator) leaveMatch(id SessionID) {
	c.mu.Lock()
	st, ok := c.seats[id]
	c.mu.Unlock()
	if ok {
		st.match.forfeit(st.side)
	}
}

// finish forgets a match once its loop has ended and stores the result.
func (c *Coordinator) finish(m *Match, result MatchEnded, ticks uint64) {
	c.mu.Lock()
	delete(c.matches, m.ID())
	for _, s := range m.players {
		delete(c.seats, s.ID())
	}
	c.mu.Unlock()

	c.logger.Info("match ended",
		"match", m.ID(),
		"reason", result.Reason.String(),
		"score", fmt.Sprintf("%d-%d", result.Score1, result.Score2),
		"winner", int(result.Winner),
	)

	if c.saver == nil || result.Winner == 0 {
		return
	}
	_, err := c.saver.SaveMatch(storage.MatchResult{
		GameID:   m.GameID(),
		Opponent: "online",
		Score1:   result.Score1,
		Score2:   result.Score2,
		Winner:   int(result.Winner),
		Ticks:    int(ticks), //nolint:gosec // matches end long before overflow
	})
	if err != nil {
		c.logger.Warn("could not save online match", "match", m.ID(), "error", err)
	}
}

func (c *Coordinator) sweep() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.expireLobbies(time.Now())
		case <-c.done:
			return
		}
	}
}

// expireLobbies closes lobbies that waited longer than LobbyTimeout.
func (c *Coordinator) expireLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, l := range c.lobbies {
		if now.Sub(l.createdAt) <= c.config.LobbyTimeout {
			continue
		}
		l.host.send(LobbyError{Message: "lobby expired"})
		delete(c.hosting, l.host.ID())
		delete(c.lobbies, code)
		c.logger.Info("lobby expired", "code", code)
	}
}

// uniqueCode returns a join code no open lobby uses.
// Must be called with c.mu held.
func (c *Coordinator) uniqueCode() string {
	for {
		code := joinCode()
		if _, taken := c.lobbies[code]; !taken {
			return code
		}
	}
}

// joinCode returns codeLength random characters from A-Z and 2-7.
func joinCode() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:codeLength]
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.matches)
}
