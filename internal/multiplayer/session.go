package multiplayer

import (
	"slices"
	"sync"
	"sync/atomic"
)

// SessionHandle is how the coordinator and matches reach a connected
// bowler without knowing about Wish or Bubble Tea.
type SessionHandle interface {
	// ID returns the unique session identifier.
	ID() SessionID
	// Send delivers evt asynchronously and never blocks.
	Send(evt SessionEvent)
	// Done is closed when the session ends.
	Done() <-chan struct{}
}

// ChannelSession queues events for one SSH session. Its single reader is
// the session's Bubble Tea model.
type ChannelSession struct {
	id      SessionID
	events  chan SessionEvent
	done    chan struct{}
	close   sync.Once
	sendMu  sync.Mutex // one Send at a time may reshuffle a full queue
	dropped atomic.Int64
}

// NewChannelSession creates a session whose queue holds buffer events.
// A buffer below 1 gets the default of 64.
func NewChannelSession(id SessionID, buffer int) *ChannelSession {
	if buffer < 1 {
		buffer = 64
	}
	return &ChannelSession{
		id:     id,
		events: make(chan SessionEvent, buffer),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID { return s.id }

// Send queues evt without blocking. When the queue is full the oldest
// SnapshotEvent is dropped to make room, since a later snapshot replaces
// it. Only a queue holding no snapshot at all loses its oldest event.
func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	select {
	case s.events <- evt:
		return
	default:
	}
	s.makeRoom()
	select {
	case s.events <- evt:
	default:
		s.dropped.Add(1)
	}
}

// makeRoom removes one queued event, preferring the oldest snapshot. The
// reader may keep receiving meanwhile; the rest keep their order.
// Must be called with sendMu held.
func (s *ChannelSession) makeRoom() {
	pending := make([]SessionEvent, 0, cap(s.events))
drain:
	for {
		select {
		case e := <-s.events:
			pending = append(pending, e)
		default:
			break drain
		}
	}
	if len(pending) == 0 {
		return
	}

	victim := 0
	for i, e := range pending {
		if _, ok := e.(SnapshotEvent); ok {
			victim = i
			break
		}
	}
	pending = slices.Delete(pending, victim, victim+1)
	s.dropped.Add(1)

	for _, e := range pending {
		s.events <- e
	}
}

// Events returns the queue the session's model drains.
func (s *ChannelSession) Events() <-chan SessionEvent { return s.events }

// Done returns a channel closed when the session ends.
func (s *ChannelSession) Done() <-chan struct{} { return s.done }

// Dropped counts events discarded because the queue was full.
func (s *ChannelSession) Dropped() int64 { return s.dropped.Load() }

// Close ends the session. Safe to call more than once.
func (s *ChannelSession) Close() {
	s.close.Do(func() { close(s.done) })
}

// SessionRegistry is the set of connected sessions, keyed by ID. It is safe
// for concurrent use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[SessionID]SessionHandle)}
}

// Register adds s, replacing any session with the same ID.
func (r *SessionRegistry) Register(s SessionHandle) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
}

// Unregister removes the session with the given ID, if any.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Get looks up a connected session by ID.
func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of connected sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
