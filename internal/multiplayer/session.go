package multiplayer

import "sync"

// defaultEventBuffer is how many events a session queues before it starts
// dropping the oldest.
const defaultEventBuffer = 64

// Session is a connected player's mailbox.
// Events are delivered without blocking the sender; when the buffer is
// full the oldest event is dropped, so a slow client only loses snapshots.
type Session struct {
	id     SessionID
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func newSession(id SessionID, buffer int) *Session {
	if buffer < 1 {
		buffer = defaultEventBuffer
	}
	return &Session{
		id:     id,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() SessionID {
	return s.id
}

// Events returns the channel the session reads coordinator events from.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// send queues evt, dropping the oldest queued event if needed.
func (s *Session) send(evt Event) {
	if s.Closed() {
		return
	}
	for range 2 {
		select {
		case s.events <- evt:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}
