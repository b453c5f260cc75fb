// ABOUTME: EventStore interface and data types for scrape-relay persistence
// ABOUTME: Defines the AgentEvent record kept for operator history and auditing

package store

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidEvent is returned when an event is missing its agent or kind
var ErrInvalidEvent = errors.New("invalid event")

// EventKind categorizes an agent lifecycle event
type EventKind string

const (
	EventConnect        EventKind = "connect"
	EventRegister       EventKind = "register"
	EventPathRegister   EventKind = "path_register"
	EventPathUnregister EventKind = "path_unregister"
	EventDisconnect     EventKind = "disconnect"
	EventEvict          EventKind = "evict"
)

// ValidEventKinds lists all valid event kinds.
var ValidEventKinds = []EventKind{
	EventConnect,
	EventRegister,
	EventPathRegister,
	EventPathUnregister,
	EventDisconnect,
	EventEvict,
}

// Valid reports whether k is a known event kind.
func (k EventKind) Valid() bool {
	for _, v := range ValidEventKinds {
		if k == v {
			return true
		}
	}
	return false
}

// AgentEvent is one entry in an agent's connection history.
type AgentEvent struct {
	ID        string    // UUID v4
	AgentID   string    // proxy-assigned agent id
	Kind      EventKind // what happened
	Detail    string    // free-form context, e.g. the path or agent name
	Timestamp time.Time // when it happened
}

// EventStore records agent lifecycle events. It is an audit trail only;
// routing state is never rebuilt from it.
type EventStore interface {
	// RecordEvent appends an event. ID and Timestamp are generated if unset.
	RecordEvent(ctx context.Context, e *AgentEvent) error

	// ListEvents returns the most recent events for an agent, newest first.
	// A non-positive limit means the default of 100; the cap is 1000.
	ListEvents(ctx context.Context, agentID string, limit int) ([]*AgentEvent, error)

	// Close releases resources held by the store.
	Close() error
}

// normalizeLimit applies default (100) and cap (1000) to a list limit.
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return 100
	case limit > 1000:
		return 1000
	default:
		return limit
	}
}

// prepareEvent validates e and fills generated fields.
func prepareEvent(e *AgentEvent, newID func() string) error {
	if e.AgentID == "" || !e.Kind.Valid() {
		return ErrInvalidEvent
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return nil
}
