// ABOUTME: Unit tests for MockStore to ensure behavior matches SQLiteStore
// ABOUTME: Focuses on ordering, copying, and validation in the in-memory implementation

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStore_ListEvents_NewestFirst(t *testing.T) {
	s := NewMockStore()
	ctx := context.Background()

	require.NoError(t, s.RecordEvent(ctx, &AgentEvent{AgentID: "a", Kind: EventConnect}))
	require.NoError(t, s.RecordEvent(ctx, &AgentEvent{AgentID: "a", Kind: EventRegister}))
	require.NoError(t, s.RecordEvent(ctx, &AgentEvent{AgentID: "a", Kind: EventEvict}))

	events, err := s.ListEvents(ctx, "a", 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventEvict, events[0].Kind)
	assert.Equal(t, EventRegister, events[1].Kind)

	assert.Equal(t, []EventKind{EventConnect, EventRegister, EventEvict}, s.Kinds("a"))
}

func TestMockStore_ReturnsCopies(t *testing.T) {
	s := NewMockStore()
	ctx := context.Background()

	e := &AgentEvent{AgentID: "a", Kind: EventConnect, Detail: "original"}
	require.NoError(t, s.RecordEvent(ctx, e))
	e.Detail = "mutated"

	events, err := s.ListEvents(ctx, "a", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "original", events[0].Detail)
}

func TestMockStore_Invalid(t *testing.T) {
	s := NewMockStore()
	err := s.RecordEvent(context.Background(), &AgentEvent{AgentID: "a"})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}
