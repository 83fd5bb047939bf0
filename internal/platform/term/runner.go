// Package term runs a game directly on a tcell screen.
//
// Game windows open as regions of the screen, so each window's Draw
// paints straight into the terminal. A status line sits below the game.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/platform"
	"github.com/vovakirdan/tui-paddle/internal/registry"
	"github.com/vovakirdan/tui-paddle/internal/storage"
	"github.com/vovakirdan/tui-paddle/internal/surface"
)

// eventBuffer is how many terminal events may queue between ticks.
const eventBuffer = 100

var (
	gameStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Runner drives one game on a tcell screen.
type Runner struct {
	screen tcell.Screen
	game   registry.Game
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig
	input  core.MultiInputFrame
	state  core.GameState
	saved  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithScreen runs on an existing screen instead of the terminal.
// The screen must not be initialized yet; the runner initializes and
// finalizes it.
func WithScreen(s tcell.Screen) Option {
	return func(r *Runner) {
		r.screen = s
	}
}

// WithLogger sets the runner's logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner initializes the screen and resets the game on it.
// The store may be nil.
func NewRunner(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) (*Runner, error) {
	r := &Runner{
		game:   game,
		store:  store,
		logger: log.Default(),
		input:  core.NewMultiInputFrame(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		r.screen = s
	}
	if err := r.screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	r.screen.SetStyle(tcell.StyleDefault)
	r.screen.HideCursor()
	r.screen.Clear()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Players < 1 {
		cfg.Players = 1
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	cfg.ScreenW, cfg.ScreenH = r.screen.Size()
	cfg.Surface = surface.NewTcellOpener(r.screen, gameStyle)
	r.config = cfg

	r.game.Reset(r.config)
	r.state = r.game.State()
	return r, nil
}

// Screen returns the screen the runner draws on.
func (r *Runner) Screen() tcell.Screen {
	return r.screen
}

// HandleEvent applies one terminal event.
// It returns false when the player quits.
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		player, action := r.mapKey(ev)
		if action == core.ActionQuit {
			return false
		}
		if action != core.ActionNone {
			frame := r.input.Player(player)
			frame.Set(action)
			r.input.SetPlayer(player, frame)
		}

	case *tcell.EventResize:
		r.config.ScreenW, r.config.ScreenH = ev.Size()
		r.screen.Clear()
		r.screen.Sync()
		r.closeGame()
	}
	return true
}

// mapKey converts a key event to a player action.
// W/S always steer the left paddle. The arrows and K/J steer the right
// paddle in a two-player game and the left one otherwise.
func (r *Runner) mapKey(ev *tcell.EventKey) (core.PlayerID, core.Action) {
	second := core.Player1
	if r.config.Players >= 2 {
		second = core.Player2
	}

	switch ev.Key() {
	case tcell.KeyUp:
		return second, core.ActionUp
	case tcell.KeyDown:
		return second, core.ActionDown
	case tcell.KeyEnter:
		return core.Player1, core.ActionServe
	case tcell.KeyEscape:
		return core.Player1, core.ActionPause
	case tcell.KeyCtrlC:
		return core.Player1, core.ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return core.Player1, core.ActionUp
		case 's', 'S':
			return core.Player1, core.ActionDown
		case 'k':
			return second, core.ActionUp
		case 'j':
			return second, core.ActionDown
		case ' ':
			return core.Player1, core.ActionServe
		case 'p', 'P':
			return core.Player1, core.ActionPause
		case 'r', 'R':
			return core.Player1, core.ActionRestart
		case 'q', 'Q':
			return core.Player1, core.ActionQuit
		}
	}
	return core.Player1, core.ActionNone
}

// Frame advances the game one tick and draws it.
func (r *Runner) Frame() error {
	if r.input.Player1().Has(core.ActionRestart) && r.state.GameOver {
		r.config.Seed = time.Now().UnixNano()
		r.screen.Clear()
		r.game.Reset(r.config)
		r.state = r.game.State()
		r.saved = false
		r.input.Clear()
		return r.draw()
	}

	r.state = r.game.Step(r.input).State
	r.input.Clear()

	if r.state.GameOver && !r.saved {
		platform.SaveResult(r.store, r.game, r.state.Score, r.config.Difficulty, r.logger)
		r.saved = true
	}
	return r.draw()
}

// draw renders the game windows, then the status line.
func (r *Runner) draw() error {
	if err := r.game.Render(); err != nil {
		return err
	}
	r.drawStatus()
	r.screen.Show()
	return nil
}

// drawStatus writes the status line on the last screen row.
func (r *Runner) drawStatus() {
	w, h := r.screen.Size()
	if h < 1 {
		return
	}

	mode := "vs CPU"
	if r.config.Players >= 2 {
		mode = "2 players"
	}
	status := fmt.Sprintf(" %s | %s | w/s move | space serve | p pause | q quit", r.game.Title(), mode)
	switch {
	case r.state.GameOver:
		status += " | r restart"
	case r.state.Paused:
		status += " | PAUSED"
	}

	runes := []rune(status)
	for x := range w {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		r.screen.SetContent(x, h-1, ch, nil, statusStyle)
	}
}

// closeGame releases the game's windows, logging failures.
func (r *Runner) closeGame() {
	if err := r.game.Close(); err != nil {
		r.logger.Warn("could not close game windows", "game", r.game.ID(), "error", err)
	}
}

// pollEvents forwards screen events until the screen is finalized or
// done is closed.
func (r *Runner) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run ticks the game until the player quits or ctx is done.
// The screen is finalized on return.
func (r *Runner) Run(ctx context.Context) error {
	defer r.screen.Fini()
	defer r.closeGame()

	ticker := time.NewTicker(time.Second / time.Duration(r.config.TickRate))
	defer ticker.Stop()

	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)
	go r.pollEvents(events, done)

	r.logger.Debug("tcell runner started", "game", r.game.ID(), "tick_rate", r.config.TickRate)

	if err := r.draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !r.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			if err := r.Frame(); err != nil {
				return fmt.Errorf("frame: %w", err)
			}
		}
	}
}
