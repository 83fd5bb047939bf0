package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-paddle/internal/config"
	_ "github.com/vovakirdan/tui-paddle/internal/games/pong"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	menu, ok := next.(MenuModel)
	require.True(t, ok)
	return menu, cmd
}

func TestMenuDefaults(t *testing.T) {
	m := NewMenuModel(testRuntime(1))
	assert.Equal(t, ChoiceNone, m.Choice())
	assert.Equal(t, config.DifficultyNormal, m.Difficulty())
	assert.Contains(t, m.View(), "Play vs CPU")
	assert.Contains(t, m.View(), "difficulty: normal")

	rt := testRuntime(1)
	rt.Difficulty = "hard"
	assert.Equal(t, config.DifficultyHard, NewMenuModel(rt).Difficulty())
}

func TestMenuSelectTwoPlayers(t *testing.T) {
	m := NewMenuModel(testRuntime(1))

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, cmd := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceTwoPlayers, m.Choice())
	assert.Empty(t, m.View())

	cfg := m.Config()
	assert.Equal(t, 2, cfg.Players)
	assert.Equal(t, "easy", cfg.Difficulty)
}

func TestMenuDifficultyBounds(t *testing.T) {
	m := NewMenuModel(testRuntime(1))
	for range 10 {
		m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, config.DifficultyFixed, m.Difficulty())

	for range 10 {
		m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, config.DifficultyEasy, m.Difficulty())
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(testRuntime(1))
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	for range 10 {
		m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ChoiceQuit, m.Choice())
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	session, ok := next.(SessionModel)
	require.True(t, ok)
	return session, cmd
}

func TestSessionPlayAndReturnToMenu(t *testing.T) {
	m := NewSessionModel("pong", nil, testRuntime(1), log.New(io.Discard))

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "game start schedules a tick")
	assert.Equal(t, screenGame, m.screen)

	m, _ = sessionUpdate(t, m, TickMsg(time.Now()))
	assert.Contains(t, m.View(), "Pong")

	m, cmd = sessionUpdate(t, m, runeKey("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, screenMenu, m.screen)
	assert.Contains(t, m.View(), "Play vs CPU")
}

func TestSessionScoresWithoutStore(t *testing.T) {
	m := NewSessionModel("pong", nil, testRuntime(1), log.New(io.Discard))

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, screenScores, m.screen)
	assert.Contains(t, m.View(), "Nothing recorded yet")

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.screen)

	m, cmd := sessionUpdate(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestSessionKeepsDifficulty(t *testing.T) {
	m := NewSessionModel("pong", nil, testRuntime(1), log.New(io.Discard))

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = sessionUpdate(t, m, runeKey("q"))

	require.Equal(t, screenMenu, m.screen)
	assert.Equal(t, config.DifficultyHard, m.menu.Difficulty())
}
