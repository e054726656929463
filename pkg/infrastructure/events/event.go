package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is one immutable record in the planning journal.
type Event struct {
	ID         uuid.UUID
	Type       string
	OccurredAt time.Time
	Payload    interface{}
}

// NewEvent creates an event stamped with a fresh identifier and the current
// time.
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now(),
		Payload:    payload,
	}
}

// Store is an append-only journal of planning and costing events.
type Store interface {
	Append(event Event)
	Events() []Event
	EventsOfType(eventType string) []Event
}
