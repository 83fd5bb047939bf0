package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/games/pong"
	"github.com/vovakirdan/tui-paddle/internal/multiplayer"
)

func newOnlineCoordinator(t *testing.T) *multiplayer.Coordinator {
	t.Helper()
	cfg := multiplayer.DefaultConfig()
	cfg.TickRate = 200
	c := multiplayer.NewCoordinator(cfg, OnlineGameFactory, nil)
	c.Start()
	t.Cleanup(c.Stop)
	return c
}

func newOnlinePlayer(t *testing.T, c *multiplayer.Coordinator, id multiplayer.SessionID) OnlineModel {
	t.Helper()
	s, err := c.Connect(t.Context(), id)
	require.NoError(t, err)
	return NewOnlineModel("pong", c, s, 80, 26).WithLogger(log.New(io.Discard))
}

func onlineUpdate(t *testing.T, m OnlineModel, msg tea.Msg) OnlineModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(OnlineModel)
	require.True(t, ok)
	return model
}

// pumpUntil feeds coordinator events to m until done reports true.
func pumpUntil(t *testing.T, m OnlineModel, done func(OnlineModel) bool) OnlineModel {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for !done(m) {
		msgs := make(chan tea.Msg, 1)
		go func(cmd tea.Cmd) { msgs <- cmd() }(waitForEvent(m.session))

		select {
		case msg := <-msgs:
			require.NotNil(t, msg, "session closed")
			m = onlineUpdate(t, m, msg)
		case <-deadline:
			t.Fatalf("online model stuck in state %d", m.State())
		}
	}
	return m
}

func inState(state OnlineState) func(OnlineModel) bool {
	return func(m OnlineModel) bool { return m.State() == state }
}

func TestOnlineGameFactory(t *testing.T) {
	_, err := OnlineGameFactory("snake", core.RuntimeConfig{})
	require.Error(t, err)

	game, err := OnlineGameFactory("pong", core.RuntimeConfig{})
	require.NoError(t, err)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1, Players: 2})

	p1, p2 := game.Scores()
	assert.Zero(t, p1)
	assert.Zero(t, p2)
	assert.IsType(t, pong.Snapshot{}, game.Snapshot())

	_, over := game.Match()
	assert.False(t, over)
}

func TestOnlineCodeEntry(t *testing.T) {
	c := multiplayer.NewCoordinator(multiplayer.DefaultConfig(), OnlineGameFactory, nil)
	m := newOnlinePlayer(t, c, "typist")

	m = onlineUpdate(t, m, runeKey("j"))
	require.Equal(t, OnlineEnterCode, m.State())

	for _, k := range []string{"a", "b", "-", "c", "d", "e", "f", "g"} {
		m = onlineUpdate(t, m, runeKey(k))
	}
	assert.Equal(t, "ABCDEF", m.codeInput)
	assert.Contains(t, m.View(), "[ ABCDEF ]")

	m = onlineUpdate(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "ABCDE", m.codeInput)

	m = onlineUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, OnlineChooseMode, m.State())
	assert.Contains(t, m.View(), "ONLINE PONG")

	m = onlineUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Done())
	assert.Empty(t, m.View())
}

func TestOnlineJoinUnknownCode(t *testing.T) {
	c := newOnlineCoordinator(t)
	m := newOnlinePlayer(t, c, "joiner")

	m = onlineUpdate(t, m, runeKey("j"))
	for _, k := range "ZZZZZZ" {
		m = onlineUpdate(t, m, runeKey(string(k)))
	}
	m = onlineUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, OnlineJoining, m.State())

	m = pumpUntil(t, m, inState(OnlineEnterCode))
	assert.Contains(t, m.View(), "lobby not found")
}

func TestOnlineMatchFlow(t *testing.T) {
	c := newOnlineCoordinator(t)
	host := newOnlinePlayer(t, c, "host")
	joiner := newOnlinePlayer(t, c, "joiner")

	host = onlineUpdate(t, host, runeKey("h"))
	host = pumpUntil(t, host, inState(OnlineHostWaiting))
	code := host.LobbyCode()
	require.Len(t, code, 6)
	assert.Contains(t, host.View(), code)

	joiner = onlineUpdate(t, joiner, runeKey("j"))
	for _, k := range code {
		joiner = onlineUpdate(t, joiner, runeKey(string(k)))
	}
	joiner = onlineUpdate(t, joiner, tea.KeyMsg{Type: tea.KeyEnter})

	joiner = pumpUntil(t, joiner, inState(OnlineInMatch))
	host = pumpUntil(t, host, inState(OnlineInMatch))
	assert.Equal(t, core.Player2, joiner.Side())
	assert.Equal(t, core.Player1, host.Side())

	view := joiner.View()
	assert.Contains(t, view, "you are RIGHT (P2)")
	assert.Contains(t, view, code)
	require.NotNil(t, joiner.Screen())
	assert.Equal(t, pong.PaddleChar, joiner.Screen().Get(4, 10))
	assert.Equal(t, pong.PaddleChar, joiner.Screen().Get(55, 10))

	joiner = onlineUpdate(t, joiner, runeKey("q"))

	host = pumpUntil(t, host, inState(OnlineMatchEnded))
	assert.Equal(t, multiplayer.EndDisconnect, host.Result().Reason)
	assert.Equal(t, core.Player1, host.Result().Winner)
	assert.Contains(t, host.View(), "YOU WIN")

	joiner = pumpUntil(t, joiner, inState(OnlineMatchEnded))
	assert.Contains(t, joiner.View(), "YOU LOSE")

	joiner = onlineUpdate(t, joiner, runeKey("x"))
	assert.True(t, joiner.Done())
}

func TestOnlineIgnoresStaleSession(t *testing.T) {
	c := multiplayer.NewCoordinator(multiplayer.DefaultConfig(), OnlineGameFactory, nil)
	m := newOnlinePlayer(t, c, "current")

	m = onlineUpdate(t, m, onlineEventMsg{
		session: "previous",
		event:   multiplayer.LobbyCreated{Code: "ABCDEF", GameID: "pong"},
	})
	assert.Equal(t, OnlineChooseMode, m.State())
	assert.Empty(t, m.LobbyCode())
}

func TestSessionOnlineRoundTrip(t *testing.T) {
	c := newOnlineCoordinator(t)
	m := NewSessionModel("pong", nil, testRuntime(1), log.New(io.Discard)).
		WithOnline(t.Context(), c, "alice")
	assert.Contains(t, m.View(), "Play online")

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, screenOnline, m.screen)
	assert.Contains(t, m.View(), "ONLINE PONG")

	session := m.session
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.screen)
	assert.True(t, session.Closed())
	assert.Contains(t, m.View(), "Play online")
}

func TestSessionWithoutOnline(t *testing.T) {
	m := NewSessionModel("pong", nil, testRuntime(1), log.New(io.Discard))
	assert.NotContains(t, m.View(), "Play online")
}
