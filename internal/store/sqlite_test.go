// ABOUTME: Tests for SQLite event store implementation
// ABOUTME: Covers schema creation, event recording, ordering, limits, and validation

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "events.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created in nested directory")
}

func TestNewSQLiteStore_Memory(t *testing.T) {
	s, err := NewSQLiteStore(MemoryPath)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.RecordEvent(ctx, &AgentEvent{AgentID: "a1", Kind: EventConnect}))

	events, err := s.ListEvents(ctx, "a1", 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRecordEvent_GeneratesIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := &AgentEvent{AgentID: "agent-1", Kind: EventRegister, Detail: "node-exporter"}
	require.NoError(t, s.RecordEvent(ctx, e))

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())

	events, err := s.ListEvents(ctx, "agent-1", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, e.ID, events[0].ID)
	assert.Equal(t, EventRegister, events[0].Kind)
	assert.Equal(t, "node-exporter", events[0].Detail)
	assert.True(t, e.Timestamp.Equal(events[0].Timestamp))
}

func TestRecordEvent_Invalid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.RecordEvent(ctx, &AgentEvent{Kind: EventConnect})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	err = s.RecordEvent(ctx, &AgentEvent{AgentID: "a", Kind: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestListEvents_NewestFirstAndScopedToAgent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	kinds := []EventKind{EventConnect, EventRegister, EventPathRegister, EventDisconnect}
	for i, k := range kinds {
		require.NoError(t, s.RecordEvent(ctx, &AgentEvent{
			AgentID:   "agent-1",
			Kind:      k,
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		}))
	}
	require.NoError(t, s.RecordEvent(ctx, &AgentEvent{AgentID: "agent-2", Kind: EventConnect}))

	events, err := s.ListEvents(ctx, "agent-1", 0)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, EventDisconnect, events[0].Kind)
	assert.Equal(t, EventConnect, events[3].Kind)

	limited, err := s.ListEvents(ctx, "agent-1", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, EventDisconnect, limited[0].Kind)
	assert.Equal(t, EventPathRegister, limited[1].Kind)
}

func TestListEvents_UnknownAgent(t *testing.T) {
	s := newTestStore(t)

	events, err := s.ListEvents(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, 100, normalizeLimit(0))
	assert.Equal(t, 100, normalizeLimit(-5))
	assert.Equal(t, 25, normalizeLimit(25))
	assert.Equal(t, 1000, normalizeLimit(5000))
}
