// ABOUTME: Mock EventStore implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockStore is an in-memory EventStore implementation for testing.
type MockStore struct {
	mu     sync.RWMutex
	events map[string][]*AgentEvent // keyed by agentID, oldest first
	closed bool
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		events: make(map[string][]*AgentEvent),
	}
}

// RecordEvent stores a copy of the event.
func (m *MockStore) RecordEvent(ctx context.Context, e *AgentEvent) error {
	if err := prepareEvent(e, uuid.NewString); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Make a copy to avoid external modification
	c := *e
	m.events[c.AgentID] = append(m.events[c.AgentID], &c)
	return nil
}

// ListEvents returns copies of an agent's events, newest first.
func (m *MockStore) ListEvents(ctx context.Context, agentID string, limit int) ([]*AgentEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.events[agentID]
	limit = normalizeLimit(limit)

	var result []*AgentEvent
	for i := len(all) - 1; i >= 0 && len(result) < limit; i-- {
		c := *all[i]
		result = append(result, &c)
	}
	return result, nil
}

// Kinds returns the kinds recorded for an agent in insertion order.
func (m *MockStore) Kinds(agentID string) []EventKind {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kinds := make([]EventKind, 0, len(m.events[agentID]))
	for _, e := range m.events[agentID] {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// Close marks the store closed.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ EventStore = (*MockStore)(nil)
