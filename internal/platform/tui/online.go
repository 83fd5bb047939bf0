package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/games/pong"
	"github.com/vovakirdan/tui-paddle/internal/multiplayer"
	"github.com/vovakirdan/tui-paddle/internal/surface"
)

// onlinePong is a Pong game stepped by the coordinator.
type onlinePong struct {
	*pong.Game
}

func (p onlinePong) Snapshot() multiplayer.GameSnapshot {
	return p.Game.Snapshot()
}

func (p onlinePong) Scores() (int, int) {
	snap := p.Game.Snapshot()
	return snap.Score1, snap.Score2
}

// OnlineGameFactory creates the server-side game for an online match.
// Only Pong can be played online.
func OnlineGameFactory(gameID string, _ core.RuntimeConfig) (multiplayer.OnlineGame, error) {
	if gameID != "pong" {
		return nil, fmt.Errorf("game %q cannot be played online", gameID)
	}
	return onlinePong{Game: pong.New()}, nil
}

// OnlineState is a step of the online flow.
type OnlineState int

const (
	OnlineChooseMode OnlineState = iota // Host or join
	OnlineHostWaiting                   // Hosting, waiting for a joiner
	OnlineEnterCode                     // Typing a join code
	OnlineJoining                       // Join sent, waiting for the match
	OnlineInMatch                       // Playing
	OnlineMatchEnded                    // Showing the result
)

// onlineEventMsg carries one coordinator event into the Bubble Tea loop.
type onlineEventMsg struct {
	session multiplayer.SessionID
	event   multiplayer.Event
}

// OnlineModel hosts or joins an online Pong match and plays it.
// The server owns the game; this model only sends input and draws the
// snapshots it receives through a local viewer game.
type OnlineModel struct {
	state       OnlineState
	gameID      string
	session     *multiplayer.Session
	coordinator *multiplayer.Coordinator
	logger      *log.Logger
	width       int
	height      int

	lobbyCode string
	codeInput string
	lastError string

	matchID multiplayer.MatchID
	side    core.PlayerID
	viewer  *pong.Game
	screen  *core.Screen
	result  multiplayer.MatchEnded

	done     bool
	quitting bool
}

// NewOnlineModel creates an online model for a connected session.
func NewOnlineModel(gameID string, coordinator *multiplayer.Coordinator, session *multiplayer.Session, width, height int) OnlineModel {
	return OnlineModel{
		gameID:      gameID,
		session:     session,
		coordinator: coordinator,
		logger:      log.Default(),
		width:       width,
		height:      height,
	}
}

// WithLogger returns a copy of the model that logs to l.
func (m OnlineModel) WithLogger(l *log.Logger) OnlineModel {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init starts listening for coordinator events.
func (m OnlineModel) Init() tea.Cmd {
	return waitForEvent(m.session)
}

// waitForEvent returns a command that reads the next event for s.
// It yields nil once the session is closed.
func waitForEvent(s *multiplayer.Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-s.Events():
			return onlineEventMsg{session: s.ID(), event: evt}
		case <-s.Done():
			return nil
		}
	}
}

// Update handles messages.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.screen != nil {
			m.screen.Resize(msg.Width, max(msg.Height-footerRows, 1))
			m.closeViewer()
		}
		return m, nil

	case onlineEventMsg:
		if msg.session != m.session.ID() {
			return m, nil
		}
		m = m.handleEvent(msg.event)
		return m, waitForEvent(m.session)
	}

	return m, nil
}

func (m OnlineModel) handleEvent(evt multiplayer.Event) OnlineModel {
	switch evt := evt.(type) {
	case multiplayer.LobbyCreated:
		m.lobbyCode = evt.Code
		m.state = OnlineHostWaiting

	case multiplayer.LobbyError:
		m.lastError = evt.Message
		switch m.state {
		case OnlineJoining:
			m.state = OnlineEnterCode
		case OnlineHostWaiting:
			m.state = OnlineChooseMode
			m.lobbyCode = ""
		}

	case multiplayer.MatchStarted:
		m.matchID = evt.MatchID
		m.lobbyCode = evt.Code
		m.side = evt.Side
		m.lastError = ""
		m.startViewer()
		m.state = OnlineInMatch
		m.logger.Info("online match started", "match", evt.MatchID, "side", int(evt.Side))

	case multiplayer.SnapshotUpdate:
		if evt.MatchID != m.matchID || m.viewer == nil {
			return m
		}
		if snap, ok := evt.Snapshot.(pong.Snapshot); ok {
			m.viewer.ApplySnapshot(snap)
		}

	case multiplayer.MatchEnded:
		if evt.MatchID != m.matchID {
			return m
		}
		m.result = evt
		m.state = OnlineMatchEnded
		m.closeViewer()
		m.logger.Info("online match ended", "match", evt.MatchID, "reason", evt.Reason.String())
	}
	return m
}

// startViewer builds the local game that draws received snapshots.
func (m *OnlineModel) startViewer() {
	m.screen = core.NewScreen(m.width, max(m.height-footerRows, 1))
	m.viewer = pong.New()
	m.viewer.Reset(core.RuntimeConfig{
		ScreenW: m.width,
		ScreenH: m.height,
		Players: 2,
		Seed:    1,
		Surface: surface.NewScreenOpener(m.screen),
	})
}

func (m OnlineModel) closeViewer() {
	if m.viewer == nil {
		return
	}
	if err := m.viewer.Close(); err != nil {
		m.logger.Warn("could not close online view", "error", err)
	}
}

func (m OnlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineChooseMode:
		switch k {
		case "h", "H", "1":
			m.lastError = ""
			m.coordinator.Send(multiplayer.HostLobby{Session: m.session.ID(), GameID: m.gameID})
		case "j", "J", "2":
			m.state = OnlineEnterCode
			m.codeInput = ""
			m.lastError = ""
		case "esc", "b":
			m.done = true
		case "q":
			m.quitting = true
			return m, tea.Quit
		}

	case OnlineHostWaiting:
		switch k {
		case "esc", "b":
			m.leave()
			m.done = true
		case "q":
			m.leave()
			m.quitting = true
			return m, tea.Quit
		}

	case OnlineEnterCode:
		m.handleCodeKey(k)

	case OnlineJoining:
		if k == "esc" {
			m.state = OnlineEnterCode
		}

	case OnlineInMatch:
		m.handleMatchKey(k)

	case OnlineMatchEnded:
		m.done = true
	}

	return m, nil
}

func (m *OnlineModel) handleCodeKey(k string) {
	switch k {
	case "esc":
		m.state = OnlineChooseMode
	case "enter":
		if m.codeInput == "" {
			return
		}
		m.state = OnlineJoining
		m.lastError = ""
		m.coordinator.Send(multiplayer.JoinLobby{Session: m.session.ID(), Code: m.codeInput})
	case "backspace":
		if m.codeInput != "" {
			m.codeInput = m.codeInput[:len(m.codeInput)-1]
		}
	default:
		if len(k) != 1 || len(m.codeInput) >= 6 {
			return
		}
		c := strings.ToUpper(k)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			m.codeInput += string(c)
		}
	}
}

// handleMatchKey sends movement for this session's paddle. Both sides use
// the same keys.
func (m OnlineModel) handleMatchKey(k string) {
	in := core.NewInputFrame()
	switch k {
	case "up", "w", "k":
		in.Set(core.ActionUp)
	case "down", "s", "j":
		in.Set(core.ActionDown)
	case " ", "enter":
		in.Set(core.ActionServe)
	case "q", "esc":
		m.coordinator.Send(multiplayer.LeaveMatch{Session: m.session.ID()})
		return
	default:
		return
	}
	m.coordinator.Send(multiplayer.PlayerInput{Session: m.session.ID(), Input: in})
}

// leave drops a hosted lobby or forfeits a running match.
func (m OnlineModel) leave() {
	switch m.state {
	case OnlineHostWaiting:
		m.coordinator.Send(multiplayer.LeaveLobby{Session: m.session.ID()})
	case OnlineInMatch:
		m.coordinator.Send(multiplayer.LeaveMatch{Session: m.session.ID()})
	}
}

// View renders the current step.
func (m OnlineModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	switch m.state {
	case OnlineHostWaiting:
		return m.viewLines(
			menuTitleStyle.Render("HOSTING GAME"),
			"",
			"Share this code with your opponent:",
			"",
			menuCursorStyle.Render(fmt.Sprintf("[ %s ]", m.lobbyCode)),
			"",
			"Waiting for player to join...",
			"",
			helpStyle.Render("esc cancel · q quit"),
		)
	case OnlineEnterCode:
		code := m.codeInput
		if len(code) < 6 {
			code += "_" + strings.Repeat(" ", 5-len(code))
		}
		lines := []string{
			menuTitleStyle.Render("JOIN GAME"),
			"",
			"Enter the game code:",
			"",
			fmt.Sprintf("[ %s ]", code),
		}
		if m.lastError != "" {
			lines = append(lines, "", "Error: "+m.lastError)
		}
		lines = append(lines, "", helpStyle.Render("enter connect · esc back"))
		return m.viewLines(lines...)
	case OnlineJoining:
		return m.viewLines(
			menuTitleStyle.Render("CONNECTING"),
			"",
			"Joining game: "+m.codeInput,
			"",
			helpStyle.Render("esc cancel"),
		)
	case OnlineInMatch:
		return m.viewMatch()
	case OnlineMatchEnded:
		return m.viewResult()
	}

	lines := []string{
		menuTitleStyle.Render("ONLINE PONG"),
		"",
		"[H] Host a game",
		"[J] Join a game",
	}
	if m.lastError != "" {
		lines = append(lines, "", "Error: "+m.lastError)
	}
	lines = append(lines, "", helpStyle.Render("esc back · q quit"))
	return m.viewLines(lines...)
}

func (m OnlineModel) viewLines(lines ...string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m OnlineModel) viewMatch() string {
	var b strings.Builder
	if err := m.viewer.Render(); err != nil {
		b.WriteString(fmt.Sprintf("render error: %v\n", err))
	}
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Online · %s · you are %s", m.lobbyCode, sideName(m.side))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("w/s or arrows move · space serve · q forfeit"))
	return b.String()
}

func (m OnlineModel) viewResult() string {
	headline := "YOU LOSE"
	switch {
	case m.result.Winner == 0:
		headline = "MATCH STOPPED"
	case m.result.Winner == m.side:
		headline = "YOU WIN"
	}
	return m.viewLines(
		menuTitleStyle.Render(headline),
		"",
		fmt.Sprintf("%d - %d", m.result.Score1, m.result.Score2),
		m.result.Reason.String(),
		"",
		helpStyle.Render("press any key"),
	)
}

func sideName(side core.PlayerID) string {
	if side == core.Player2 {
		return "RIGHT (P2)"
	}
	return "LEFT (P1)"
}

// State returns the current step.
func (m OnlineModel) State() OnlineState {
	return m.state
}

// LobbyCode returns the code of the hosted lobby.
func (m OnlineModel) LobbyCode() string {
	return m.lobbyCode
}

// Side returns which paddle this session controls.
func (m OnlineModel) Side() core.PlayerID {
	return m.side
}

// Result returns the finished match.
func (m OnlineModel) Result() multiplayer.MatchEnded {
	return m.result
}

// Screen returns the buffer the match is drawn into, or nil.
func (m OnlineModel) Screen() *core.Screen {
	return m.screen
}

// Done reports whether the player left the online flow.
func (m OnlineModel) Done() bool {
	return m.done
}

// IsQuitting reports whether the player quit the program.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}
