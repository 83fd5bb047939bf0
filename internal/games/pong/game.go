// Package pong implements Pong on the entity/window substrate.
// Player 1 controls the left paddle; the right paddle is the CPU, or
// Player 2 in two-player mode.
package pong

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-paddle/internal/config"
	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/entity"
	"github.com/vovakirdan/tui-paddle/internal/registry"
	"github.com/vovakirdan/tui-paddle/internal/window"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

// BoardWidth is the number of columns of the score window.
const BoardWidth = 14

var configPath string

// SetConfigPath sets a custom YAML config loaded on Reset.
func SetConfigPath(path string) {
	configPath = path
}

// Paddle is a vertical bar of Height cells whose top cell is the entity.
type Paddle struct {
	entity.Entity
	Height int
}

// Covers reports whether the paddle occupies cell (x, y).
func (p *Paddle) Covers(x, y int) bool {
	for i := range p.Height {
		if p.IsAt(x, y-i) {
			return true
		}
	}
	return false
}

// CoversRow reports whether row y is within the paddle's span.
func (p *Paddle) CoversRow(y int) bool {
	return p.Covers(p.Col(), y)
}

// Ball is the entity bounced between the paddles.
type Ball struct {
	entity.Entity
}

// Game implements the Pong game logic.
type Game struct {
	base   config.PongConfig // As loaded, before the difficulty preset
	cfg    config.PongConfig
	fixed  bool // base came from NewWithConfig; Reset does not reload it
	diff   *config.DifficultyManager
	rng    *rand.Rand
	rt     core.RuntimeConfig
	width  int
	height int

	left  Paddle
	right Paddle
	ball  Ball

	score1 int // Left player
	score2 int // Right player or CPU

	gameOver   bool
	paused     bool
	winner     int // 1 or 2
	serving    bool
	serveDelay int
	cpuSkill   float64
	tickCount  int

	windows window.Stack
	field   *window.Window
	board   *window.Window

	boardLines  []string
	bannerLines []string

	resetErr error // Returned by the next Render
}

// New creates a Pong game that loads its config on Reset.
func New() *Game {
	cfg := config.DefaultPongConfig()
	return &Game{base: cfg, cfg: cfg}
}

// NewWithConfig creates a Pong game with a fixed config.
// The runtime difficulty preset is still applied on each Reset.
func NewWithConfig(cfg config.PongConfig) *Game {
	return &Game{base: cfg, cfg: cfg, fixed: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Reset initializes or restarts the game and rebuilds its windows on
// runtime.Surface. Failures closing the old windows or loading the config
// are returned by the next Render; a broken config falls back to defaults.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	var errs []error
	if err := g.windows.Clear(); err != nil {
		errs = append(errs, fmt.Errorf("close previous windows: %w", err))
	}

	if !g.fixed {
		base, err := config.LoadPong(configPath)
		if err != nil {
			errs = append(errs, fmt.Errorf("pong config, using defaults: %w", err))
			base = config.DefaultPongConfig()
		}
		g.base = base
	}
	g.resetErr = errors.Join(errs...)
	g.cfg = g.base
	if runtime.Difficulty != "" {
		config.ApplyPongPreset(&g.cfg, config.DifficultyPreset(runtime.Difficulty))
	}

	g.rt = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)
	g.width = g.cfg.Field.Width
	g.height = g.cfg.Field.Height

	// Center paddles vertically
	top := float64((g.height - g.cfg.Paddles.Height) / 2)
	g.left = Paddle{Entity: entity.New(float64(g.cfg.Paddles.Offset), top), Height: g.cfg.Paddles.Height}
	g.right = Paddle{Entity: entity.New(float64(g.width-1-g.cfg.Paddles.Offset), top), Height: g.cfg.Paddles.Height}

	g.score1 = 0
	g.score2 = 0
	g.gameOver = false
	g.paused = false
	g.winner = 0
	g.tickCount = 0
	g.cpuSkill = g.diff.Skill(g.cfg.CPU.MinSkill, g.cfg.CPU.MaxSkill, 0, 0)

	g.buildWindows()
	g.startServe(1)
}

// buildWindows lays out the playfield at the terminal origin and the score
// board to its right.
func (g *Game) buildWindows() {
	g.field = window.New(g.rt.Surface, g.width, g.height, 0, 0)
	g.field.Border = g.cfg.Field.Border
	g.field.Tiles = fieldTiles{g}

	boardLeft := g.width + 1
	if g.field.Border {
		boardLeft++
	}
	g.board = window.New(g.rt.Surface, BoardWidth, len(g.scoreLines()), 0, boardLeft)
	g.board.Tiles = boardTiles{g}

	g.windows.Push(g.field)
	g.windows.Push(g.board)
}

// startServe centers the ball and aims it toward the given player.
func (g *Game) startServe(toward int) {
	g.serving = true
	g.serveDelay = g.cfg.Gameplay.ServeDelay

	g.ball = Ball{Entity: entity.New(float64(g.width)/2, float64(g.height)/2)}

	speed := g.diff.Speed(g.cfg.Physics.BallSpeed, g.score1, g.tickCount)
	vx := speed
	if toward == 1 {
		vx = -speed
	}
	angle := (g.rng.Float64() - 0.5) * 0.6 // -0.3 to 0.3
	g.ball.SetVelocity(vx, speed*angle)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	p1, p2 := in.Player1(), in.Player2()

	if p1.Has(core.ActionPause) || p2.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	if g.serving {
		g.serveDelay--
		if p1.Has(core.ActionServe) || p2.Has(core.ActionServe) {
			g.serveDelay = 0
		}
		if g.serveDelay <= 0 {
			g.serving = false
		}
	}

	g.movePaddle(&g.left, p1)
	if g.rt.Players >= 2 {
		g.movePaddle(&g.right, p2)
	} else {
		g.updateCPU()
	}

	if !g.serving {
		g.updateBall()
	}

	g.cpuSkill = g.diff.Skill(g.cfg.CPU.MinSkill, g.cfg.CPU.MaxSkill, g.score1, g.tickCount)

	return core.StepResult{State: g.State()}
}

// movePaddle applies one-row nudges from a human player.
// The entity keeps the top inside its row bounds; the game keeps the
// bottom inside the field.
func (g *Game) movePaddle(p *Paddle, in core.InputFrame) {
	if in.Has(core.ActionUp) {
		p.Up()
	}
	if in.Has(core.ActionDown) && p.Row()+p.Height < g.height {
		p.Down()
	}
}

// updateCPU drifts the right paddle toward the ball while it approaches.
func (g *Game) updateCPU() {
	p := &g.right
	if g.ball.SpeedX <= 0 || g.serving {
		p.Stop()
		return
	}

	target := g.ball.Y - float64(p.Height)/2
	diff := target - p.Y
	speed := g.cfg.Physics.PaddleSpeed * g.cpuSkill

	switch {
	case diff > speed*entity.TickScale:
		p.SpeedY = speed
	case diff < -speed*entity.TickScale:
		p.SpeedY = -speed
	default:
		p.SpeedY = 0
	}
	p.Step()

	maxTop := float64(g.height - p.Height)
	if p.Y < 0 {
		p.Y = 0
		p.Stop()
	}
	if p.Y > maxTop {
		p.Y = maxTop
		p.Stop()
	}
}

// updateBall moves the ball and resolves walls, paddles and scoring.
func (g *Game) updateBall() {
	b := &g.ball
	prevX := b.X
	b.Step()

	// Bounce off top/bottom rows
	maxRow := float64(g.height - 1)
	if b.Y <= 0 && b.SpeedY < 0 {
		b.Y = 0
		b.SpeedY = -b.SpeedY
	}
	if b.Y >= maxRow && b.SpeedY > 0 {
		b.Y = maxRow
		b.SpeedY = -b.SpeedY
	}
	b.Y = core.ClampF(b.Y, 0, maxRow)

	// Left paddle: ball crosses into the paddle column from the right
	lc := float64(g.left.Col() + 1)
	if b.SpeedX < 0 && prevX >= lc && b.X < lc && g.left.CoversRow(b.Row()) {
		b.X = lc
		g.deflect(&g.left)
	}

	// Right paddle: ball crosses into the paddle column from the left
	rc := float64(g.right.Col())
	if b.SpeedX > 0 && prevX < rc && b.X >= rc && g.right.CoversRow(b.Row()) {
		b.X = rc - 1
		g.deflect(&g.right)
	}

	switch {
	case b.X < 0:
		g.point(2)
	case b.X >= float64(g.width):
		g.point(1)
	}
}

// deflect reverses the ball off a paddle, adding spin by hit position and
// a little speed.
func (g *Game) deflect(p *Paddle) {
	b := &g.ball
	hitPos := (b.Y - p.Y) / float64(p.Height) // 0 at top, 1 at bottom
	b.SpeedX = -b.SpeedX * g.cfg.Physics.SpeedUp
	b.SpeedY += (hitPos - 0.5) * 2 * g.cfg.Physics.SpinFactor

	maxSpeed := g.cfg.Physics.MaxBallSpeed
	if math.Abs(b.SpeedX) > maxSpeed {
		b.SpeedX = math.Copysign(maxSpeed, b.SpeedX)
	}
	if math.Abs(b.SpeedY) > maxSpeed/2 {
		b.SpeedY = math.Copysign(maxSpeed/2, b.SpeedY)
	}
}

// point awards a point and either ends the game or serves again toward
// the player who conceded.
func (g *Game) point(scorer int) {
	score := &g.score1
	if scorer == 2 {
		score = &g.score2
	}
	*score++

	if *score >= g.cfg.Gameplay.WinScore {
		g.gameOver = true
		g.winner = scorer
		g.ball.Stop()
		return
	}
	g.startServe(3 - scorer)
}

// ballVisible blinks the ball while waiting to serve.
func (g *Game) ballVisible() bool {
	return !g.serving || (g.serveDelay/10)%2 == 0
}

// Render draws the playfield and score board.
func (g *Game) Render() error {
	g.boardLines = g.scoreLines()
	g.bannerLines = g.banner()
	err := errors.Join(g.resetErr, g.windows.Draw())
	g.resetErr = nil
	return err
}

// Close releases the game's drawing surfaces. The next Render reopens
// them, so platforms also call it when the terminal is resized.
func (g *Game) Close() error {
	return g.windows.Close()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score1, // Report player's score
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Match reports the finished match.
func (g *Game) Match() (registry.Match, bool) {
	if !g.gameOver {
		return registry.Match{}, false
	}
	return registry.Match{
		Opponent: strings.ToLower(g.opponent()),
		Score1:   g.score1,
		Score2:   g.score2,
		Winner:   g.winner,
		Ticks:    g.tickCount,
	}, true
}

var _ registry.MatchReporter = (*Game)(nil)

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}
