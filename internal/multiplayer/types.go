// Package multiplayer pairs remote sessions into online matches.
//
// A Coordinator owns lobbies and running matches. Sessions talk to it by
// sending Messages and receive Events on their own buffered channel. Each
// match steps one authoritative game on the server and broadcasts its
// snapshot to both sides every tick.
package multiplayer

import (
	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/registry"
)

// SessionID identifies one connected player (e.g. an SSH session).
type SessionID string

// MatchID identifies a running match.
type MatchID string

// GameSnapshot is a game's state as broadcast to the sessions.
type GameSnapshot interface{}

// OnlineGame is a game that can be stepped on the server for two remote
// players. Match reports the result once the game is over.
type OnlineGame interface {
	Reset(cfg core.RuntimeConfig)
	Step(in core.MultiInputFrame) core.StepResult
	Snapshot() GameSnapshot
	Scores() (p1, p2 int)
	registry.MatchReporter
}

// GameFactory creates the authoritative game for a new match.
type GameFactory func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error)

// onlineActions are the actions a remote player may send. Pause and
// restart would stop the clock for both sides, so they are dropped.
var onlineActions = []core.Action{core.ActionUp, core.ActionDown, core.ActionServe}

// EndReason describes why a match ended.
type EndReason int

const (
	EndCompleted  EndReason = iota // A side reached the winning score
	EndDisconnect                  // A player left mid-match
	EndShutdown                    // The server stopped
)

func (r EndReason) String() string {
	switch r {
	case EndCompleted:
		return "completed"
	case EndDisconnect:
		return "opponent disconnected"
	case EndShutdown:
		return "server shutting down"
	default:
		return "unknown"
	}
}
