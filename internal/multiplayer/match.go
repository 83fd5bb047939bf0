package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-paddle/internal/core"
)

// Match runs one authoritative game between two sessions.
// Player1 is the host and Player2 the joiner.
type Match struct {
	id       MatchID
	code     string
	gameID   string
	game     OnlineGame
	players  [2]*Session
	tickRate int

	mu      sync.Mutex
	pending [2]core.InputFrame // Actions collected since the last tick

	leave    chan core.PlayerID
	stop     chan struct{}
	stopOnce sync.Once
}

func newMatch(id MatchID, code, gameID string, game OnlineGame, host, joiner *Session, tickRate int) *Match {
	return &Match{
		id:       id,
		code:     code,
		gameID:   gameID,
		game:     game,
		players:  [2]*Session{host, joiner},
		tickRate: max(tickRate, 1),
		pending:  [2]core.InputFrame{core.NewInputFrame(), core.NewInputFrame()},
		leave:    make(chan core.PlayerID, 2),
		stop:     make(chan struct{}),
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Code returns the join code the match was created from.
func (m *Match) Code() string {
	return m.code
}

// GameID returns the game being played.
func (m *Match) GameID() string {
	return m.gameID
}

// Player returns the session playing side.
func (m *Match) Player(side core.PlayerID) *Session {
	return m.players[side-1]
}

// input merges a side's actions into the next tick. Actions stay set
// until that tick consumes them, so short key presses are never lost.
func (m *Match) input(side core.PlayerID, in core.InputFrame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range onlineActions {
		if in.Has(a) {
			m.pending[side-1].Set(a)
		}
	}
}

// forfeit ends the match in favor of the other side.
func (m *Match) forfeit(side core.PlayerID) {
	select {
	case m.leave <- side:
	default:
	}
}

// halt ends the match without a winner.
func (m *Match) halt() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

// takeInputs returns the pending actions and clears them.
func (m *Match) takeInputs() core.MultiInputFrame {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame := core.NewMultiInputFrame()
	frame.SetPlayer(core.Player1, m.pending[0].Clone())
	frame.SetPlayer(core.Player2, m.pending[1].Clone())
	m.pending[0].Clear()
	m.pending[1].Clear()
	return frame
}

// run steps the game at the tick rate until it ends, then tells both
// sessions the result and hands it to onEnd.
func (m *Match) run(onEnd func(*Match, MatchEnded, uint64)) {
	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	var ticks uint64
	end := func(reason EndReason, winner core.PlayerID) {
		score1, score2 := m.game.Scores()
		result := MatchEnded{
			MatchID: m.id,
			Reason:  reason,
			Winner:  winner,
			Score1:  score1,
			Score2:  score2,
		}
		for _, s := range m.players {
			s.send(result)
		}
		if onEnd != nil {
			onEnd(m, result, ticks)
		}
	}

	for {
		select {
		case <-ticker.C:
			m.game.Step(m.takeInputs())
			ticks++

			update := SnapshotUpdate{MatchID: m.id, Tick: ticks, Snapshot: m.game.Snapshot()}
			for _, s := range m.players {
				s.send(update)
			}

			if res, over := m.game.Match(); over {
				end(EndCompleted, core.PlayerID(res.Winner))
				return
			}

		case side := <-m.leave:
			winner := core.Player1
			if side == core.Player1 {
				winner = core.Player2
			}
			end(EndDisconnect, winner)
			return

		case <-m.stop:
			end(EndShutdown, 0)
			return
		}
	}
}
