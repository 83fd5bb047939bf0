package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-paddle/internal/config"
	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/games/pong"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testRuntime(players int) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 26, TickRate: 60, Seed: 7, Players: players}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestKeyMapperSinglePlayer(t *testing.T) {
	km := NewKeyMapper(1)

	tests := []struct {
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
	}{
		{runeKey("w"), core.Player1, core.ActionUp},
		{runeKey("s"), core.Player1, core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyUp}, core.Player1, core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.Player1, core.ActionDown},
		{tea.KeyMsg{Type: tea.KeySpace}, core.Player1, core.ActionServe},
		{runeKey("p"), core.Player1, core.ActionPause},
		{runeKey("r"), core.Player1, core.ActionRestart},
		{runeKey("q"), core.Player1, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.Player1, core.ActionQuit},
		{runeKey("x"), core.Player1, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			player, action := km.MapKey(tc.msg)
			assert.Equal(t, tc.action, action)
			assert.Equal(t, tc.player, player)
		})
	}
}

func TestKeyMapperTwoPlayers(t *testing.T) {
	km := NewKeyMapper(2)
	frame := core.NewMultiInputFrame()

	assert.False(t, km.MapKeyToFrame(runeKey("w"), &frame))
	assert.False(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyDown}, &frame))

	assert.True(t, frame.Player1().Has(core.ActionUp))
	assert.False(t, frame.Player1().Has(core.ActionDown))
	assert.True(t, frame.Player2().Has(core.ActionDown))

	assert.True(t, km.MapKeyToFrame(runeKey("q"), &frame))
}

func TestModelTickAppliesInput(t *testing.T) {
	game := pong.NewWithConfig(config.DefaultPongConfig())
	m := NewModel(game, nil, testRuntime(1))
	m.Init()

	m, _ = update(t, m, runeKey("s"))
	m, cmd := update(t, m, TickMsg(time.Now()))

	assert.NotNil(t, cmd, "tick schedules the next tick")
	assert.Equal(t, 9.0, game.Snapshot().Paddle1Y)

	// Input is cleared after each tick
	update(t, m, TickMsg(time.Now()))
	assert.Equal(t, 9.0, game.Snapshot().Paddle1Y)
}

func TestModelView(t *testing.T) {
	game := pong.NewWithConfig(config.DefaultPongConfig())
	m := NewModel(game, nil, testRuntime(1))
	m.Init()

	view := m.View()
	assert.Contains(t, view, "+----")
	assert.Contains(t, view, "Pong")
	assert.Contains(t, view, "vs CPU")
	assert.Equal(t, 24, m.Screen().Height(), "two rows reserved for the footer")
	assert.Equal(t, pong.PaddleChar, m.Screen().Get(4, 10))
}

func TestModelResizeRedrawsWindows(t *testing.T) {
	game := pong.NewWithConfig(config.DefaultPongConfig())
	m := NewModel(game, nil, testRuntime(1))
	m.Init()
	m.View()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.Screen().Width())
	assert.Equal(t, 28, m.Screen().Height())

	m.View()
	assert.True(t, strings.HasPrefix(m.Screen().Row(1), " +----"), "border redrawn after resize")
}

func TestModelQuit(t *testing.T) {
	game := pong.NewWithConfig(config.DefaultPongConfig())
	m := NewModel(game, nil, testRuntime(1))
	m.Init()

	m, cmd := update(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelMenuExit(t *testing.T) {
	game := pong.NewWithConfig(config.DefaultPongConfig())
	m := NewModel(game, nil, testRuntime(1)).WithMenuExit()
	m.Init()

	m, cmd := update(t, m, runeKey("q"))
	assert.Nil(t, cmd)
	assert.True(t, m.Done())

	_, cmd = update(t, m, TickMsg(time.Now()))
	assert.Nil(t, cmd, "ticking stops once the player leaves")
}

func TestModelSavesMatchOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultPongConfig()
	cfg.Gameplay.WinScore = 1
	game := pong.NewWithConfig(cfg)

	rt := testRuntime(1)
	rt.Difficulty = "hard"
	m := NewModel(game, store, rt)
	m.Init()

	snap := game.Snapshot()
	snap.Serving = false
	snap.ServeDelay = 0
	snap.BallX, snap.BallY = 0.5, 1
	snap.BallVX, snap.BallVY = -100, 0
	game.ApplySnapshot(snap)

	m, _ = update(t, m, TickMsg(time.Now()))
	require.True(t, game.State().GameOver)

	// A second tick after game over must not save again
	update(t, m, TickMsg(time.Now()))

	matches, err := store.RecentMatches("pong", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Winner)
	assert.Equal(t, "cpu", matches[0].Opponent)
	assert.Equal(t, "hard", matches[0].Difficulty)

	scores, err := store.TopScores("pong", 10)
	require.NoError(t, err)
	assert.Empty(t, scores, "a zero score is not a high score")
}

func TestModelRestartAfterGameOver(t *testing.T) {
	cfg := config.DefaultPongConfig()
	cfg.Gameplay.WinScore = 1
	game := pong.NewWithConfig(cfg)
	m := NewModel(game, nil, testRuntime(1))
	m.Init()

	snap := game.Snapshot()
	snap.Serving = false
	snap.BallX, snap.BallY = 0.5, 1
	snap.BallVX = -100
	game.ApplySnapshot(snap)
	m, _ = update(t, m, TickMsg(time.Now()))
	require.True(t, game.State().GameOver)

	m, _ = update(t, m, runeKey("r"))
	update(t, m, TickMsg(time.Now()))

	assert.False(t, game.State().GameOver)
	assert.Equal(t, 0, game.Snapshot().Score2)
}
