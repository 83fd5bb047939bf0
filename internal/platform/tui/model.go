package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/platform"
	"github.com/vovakirdan/tui-paddle/internal/registry"
	"github.com/vovakirdan/tui-paddle/internal/storage"
	"github.com/vovakirdan/tui-paddle/internal/surface"
)

// footerRows is the number of terminal rows below the game screen.
const footerRows = 2

// Model is the Bubble Tea model for running a game.
// The game's windows draw into an in-memory screen that View presents.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.MultiInputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model
	quitting   bool
	toMenu     bool // Quit returns to a menu instead of ending the program
	done       bool
	saved      bool // Whether the result has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Players < 1 {
		cfg.Players = 1
	}

	screen := core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerRows, 1))
	cfg.Surface = surface.NewScreenOpener(screen)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     screen,
		store:      store,
		logger:     log.Default(),
		config:     cfg,
		inputFrame: core.NewMultiInputFrame(),
		keys:       NewKeyMapper(cfg.Players),
		help:       h,
	}
}

// WithLogger returns a copy of the model that logs to l.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// WithMenuExit returns a copy of the model whose quit key ends the game
// without quitting the program. The owner polls Done.
func (m Model) WithMenuExit() Model {
	m.toMenu = true
	return m
}

// Done reports whether the player left a game started WithMenuExit.
func (m Model) Done() bool {
	return m.done
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.closeGame()
		if m.toMenu {
			m.done = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize resizes the screen buffer. The game keeps its state; its
// windows are closed so the next frame reopens and redraws them.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerRows, 1))
	m.help.Width = msg.Width
	m.closeGame()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	p1 := m.inputFrame.Player1()
	if p1.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.screen.Clear()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.saved {
		platform.SaveResult(m.store, m.game, m.gameState.Score, m.config.Difficulty, m.logger)
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// closeGame releases the game's surfaces, logging failures.
func (m Model) closeGame() {
	if err := m.game.Close(); err != nil {
		m.logger.Warn("could not close game windows", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if err := m.game.Render(); err != nil {
		m.logger.Warn("could not render screenshot", "error", err)
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not resolve home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".paddle", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.done {
		return ""
	}

	var b strings.Builder
	if err := m.game.Render(); err != nil {
		b.WriteString(fmt.Sprintf("render error: %v\n", err))
	}
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(renderStatus(m.game.Title(), m.gameState, m.config.Players, m.config.ScreenW))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys.Keys)))
	return b.String()
}

// Screen returns the buffer the game windows draw into.
func (m Model) Screen() *core.Screen {
	return m.screen
}

// Run starts the Bubble Tea program with the given model.
func Run(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
