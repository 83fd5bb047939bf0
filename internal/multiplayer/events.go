package multiplayer

import "github.com/vovakirdan/tui-paddle/internal/core"

// Event is sent from the coordinator to a session.
type Event interface {
	event()
}

// LobbyCreated tells a host its join code.
type LobbyCreated struct {
	Code   string
	GameID string
}

// LobbyError reports a failed lobby operation.
type LobbyError struct {
	Message string
}

// MatchStarted tells a session which side it plays.
type MatchStarted struct {
	MatchID MatchID
	Code    string
	Side    core.PlayerID
}

// SnapshotUpdate carries the game state after one server tick.
type SnapshotUpdate struct {
	MatchID  MatchID
	Tick     uint64
	Snapshot GameSnapshot
}

// MatchEnded reports the final result. Winner is 0 if there is none.
type MatchEnded struct {
	MatchID MatchID
	Reason  EndReason
	Winner  core.PlayerID
	Score1  int
	Score2  int
}

func (LobbyCreated) event()   {}
func (LobbyError) event()     {}
func (MatchStarted) event()   {}
func (SnapshotUpdate) event() {}
func (MatchEnded) event()     {}

// Message is sent from a session to the coordinator.
type Message interface {
	message()
}

// HostLobby opens a lobby for a game.
type HostLobby struct {
	Session SessionID
	GameID  string
}

// JoinLobby joins the lobby with the given code. Codes are case-insensitive.
type JoinLobby struct {
	Session SessionID
	Code    string
}

// LeaveLobby closes a hosted lobby or leaves it before the match starts.
type LeaveLobby struct {
	Session SessionID
}

// PlayerInput carries one session's actions for the next tick.
type PlayerInput struct {
	Session SessionID
	Input   core.InputFrame
}

// LeaveMatch forfeits the session's running match.
type LeaveMatch struct {
	Session SessionID
}

func (HostLobby) message()   {}
func (JoinLobby) message()   {}
func (LeaveLobby) message()  {}
func (PlayerInput) message() {}
func (LeaveMatch) message()  {}
