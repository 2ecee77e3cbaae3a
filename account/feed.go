package account

import (
	"sync"

	"github.com/google/uuid"
)

// EventType names an auth-state change.
type EventType string

const (
	EventSignedIn    EventType = "SIGNED_IN"
	EventSignedOut   EventType = "SIGNED_OUT"
	EventUserUpdated EventType = "USER_UPDATED"
)

// Event describes a single auth-state change. Origin identifies the client
// that caused it, so a client can skip echoes of its own operations.
type Event struct {
	Type    EventType
	UserID  string
	Session *Session
	Origin  string
}

// Feed is the process-wide fan-out for auth-state changes. Every Client
// subscribes to it; publishing never blocks the caller. A subscriber whose
// buffer is full misses the event rather than stalling sign-in.
type Feed struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[string]chan Event)}
}

// Subscribe registers a new listener and returns its id and receive channel.
func (f *Feed) Subscribe() (string, <-chan Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan Event, 16)
	f.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel. Unknown ids are a no-op.
func (f *Feed) Unsubscribe(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ch, ok := f.subs[id]; ok {
		close(ch)
		delete(f.subs, id)
	}
}

// Publish delivers the event to every subscriber that has buffer room.
func (f *Feed) Publish(ev Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.subs {
		select {
		case ch <- ev:
		default:
			// full buffer: drop rather than block the publisher
		}
	}
}
