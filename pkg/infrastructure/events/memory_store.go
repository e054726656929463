package events

import (
	"sync"
)

// MemoryStore is an in-memory append-only event journal.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryStore creates an empty in-memory event store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make([]Event, 0)}
}

// Verify interface compliance
var _ Store = (*MemoryStore)(nil)

// Append adds an event to the journal.
func (s *MemoryStore) Append(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns all recorded events in append order.
func (s *MemoryStore) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// EventsOfType returns recorded events of one type in append order.
func (s *MemoryStore) EventsOfType(eventType string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
