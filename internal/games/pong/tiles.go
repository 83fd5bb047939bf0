package pong

import (
	"fmt"
)

// fieldTiles is the playfield's tile rule.
type fieldTiles struct {
	g *Game
}

// TileAt resolves a playfield cell. Banners sit on top of everything,
// then paddles, the ball and the net; other cells fall back to the
// window's base rule.
func (f fieldTiles) TileAt(x, y int) rune {
	g := f.g

	if r, ok := g.bannerAt(x, y); ok {
		return r
	}
	if g.left.Covers(x, y) || g.right.Covers(x, y) {
		return PaddleChar
	}
	if g.ballVisible() && g.ball.IsAt(x, y) {
		return BallChar
	}
	if x == g.width/2 && y%2 == 0 {
		return NetChar
	}
	return g.field.TileAt(x, y)
}

// boardTiles is the score board's tile rule.
type boardTiles struct {
	g *Game
}

// TileAt returns the rune of the precomputed board text at (x, y).
func (b boardTiles) TileAt(x, y int) rune {
	g := b.g
	if y < 0 || y >= len(g.boardLines) {
		return g.board.TileAt(x, y)
	}
	line := []rune(g.boardLines[y])
	if x < 0 || x >= len(line) {
		return g.board.TileAt(x, y)
	}
	return line[x]
}

// opponent returns the label of the right-hand player.
func (g *Game) opponent() string {
	if g.rt.Players >= 2 {
		return "P2"
	}
	return "CPU"
}

// scoreLines builds the board text, one entry per board row.
func (g *Game) scoreLines() []string {
	status := "PLAYING"
	switch {
	case g.gameOver:
		status = "GAME OVER"
	case g.paused:
		status = "PAUSED"
	case g.serving:
		status = "SERVE"
	}

	lines := []string{
		"P1",
		fmt.Sprintf("%3d", g.score1),
		g.opponent(),
		fmt.Sprintf("%3d", g.score2),
		fmt.Sprintf("TO WIN %d", g.cfg.Gameplay.WinScore),
		status,
	}
	if g.rt.Players < 2 {
		lines = append(lines, fmt.Sprintf("SKILL %.0f%%", g.cpuSkill*100))
	} else {
		lines = append(lines, "")
	}
	return lines
}

// banner returns the centered message lines for pause and game over.
func (g *Game) banner() []string {
	switch {
	case g.gameOver:
		winner := "PLAYER 1 WINS!"
		if g.winner == 2 {
			winner = g.opponent() + " WINS!"
		}
		return []string{
			" GAME OVER ",
			fmt.Sprintf(" %s ", winner),
			fmt.Sprintf(" %d - %d ", g.score1, g.score2),
		}
	case g.paused:
		return []string{" PAUSED "}
	}
	return nil
}

// bannerAt returns the banner rune covering (x, y), if any.
func (g *Game) bannerAt(x, y int) (rune, bool) {
	if len(g.bannerLines) == 0 {
		return 0, false
	}
	row := y - (g.height/2 - len(g.bannerLines)/2)
	if row < 0 || row >= len(g.bannerLines) {
		return 0, false
	}
	line := []rune(g.bannerLines[row])
	col := x - (g.width-len(line))/2
	if col < 0 || col >= len(line) {
		return 0, false
	}
	return line[col], true
}
