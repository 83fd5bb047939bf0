package pong

// Snapshot contains the complete state of a Pong game.
// Positions and velocities are the raw entity values.
type Snapshot struct {
	Tick       int
	BallX      float64
	BallY      float64
	BallVX     float64
	BallVY     float64
	Paddle1Y   float64
	Paddle2Y   float64
	Score1     int
	Score2     int
	GameOver   bool
	Winner     int // 0=none, 1=Player1, 2=Player2
	Serving    bool
	ServeDelay int
	CPUSkill   float64
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:       g.tickCount,
		BallX:      g.ball.X,
		BallY:      g.ball.Y,
		BallVX:     g.ball.SpeedX,
		BallVY:     g.ball.SpeedY,
		Paddle1Y:   g.left.Y,
		Paddle2Y:   g.right.Y,
		Score1:     g.score1,
		Score2:     g.score2,
		GameOver:   g.gameOver,
		Winner:     g.winner,
		Serving:    g.serving,
		ServeDelay: g.serveDelay,
		CPUSkill:   g.cpuSkill,
	}
}

// ApplySnapshot updates the game state from a snapshot.
// Windows and config are left as they are.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tickCount = snap.Tick
	g.ball.X = snap.BallX
	g.ball.Y = snap.BallY
	g.ball.SetVelocity(snap.BallVX, snap.BallVY)
	g.left.Y = snap.Paddle1Y
	g.right.Y = snap.Paddle2Y
	g.score1 = snap.Score1
	g.score2 = snap.Score2
	g.gameOver = snap.GameOver
	g.winner = snap.Winner
	g.serving = snap.Serving
	g.serveDelay = snap.ServeDelay
	g.cpuSkill = snap.CPUSkill
}
