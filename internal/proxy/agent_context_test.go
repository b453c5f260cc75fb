// ABOUTME: Tests for AgentContext queueing, activity tracking, and teardown.
// ABOUTME: Covers FIFO order, saturation without blocking, and drain on close.

package proxy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentContext_FIFO(t *testing.T) {
	c := newAgentContext("a1", "conn", 4, time.Minute)

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, c.Enqueue(newScrapeRequest(i, "p", c)))
	}
	assert.Equal(t, 3, c.QueueDepth())

	for i := int64(1); i <= 3; i++ {
		req, ok := c.Poll(time.Second)
		require.True(t, ok)
		assert.Equal(t, i, req.ID)
	}
}

func TestAgentContext_EnqueueSaturatedDoesNotBlock(t *testing.T) {
	c := newAgentContext("a1", "conn", 1, time.Minute)
	require.NoError(t, c.Enqueue(newScrapeRequest(1, "p", c)))

	done := make(chan error, 1)
	go func() { done <- c.Enqueue(newScrapeRequest(2, "p", c)) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQueueSaturated)
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestAgentContext_PollTimeout(t *testing.T) {
	c := newAgentContext("a1", "conn", 1, time.Minute)

	start := time.Now()
	req, ok := c.Poll(20 * time.Millisecond)
	assert.False(t, ok)
	assert.Nil(t, req)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestAgentContext_CloseDrainsAndRejects(t *testing.T) {
	c := newAgentContext("a1", "conn", 4, time.Minute)
	require.NoError(t, c.Enqueue(newScrapeRequest(1, "p", c)))
	require.NoError(t, c.Enqueue(newScrapeRequest(2, "p", c)))

	drained := c.close()
	assert.Len(t, drained, 2)
	assert.True(t, c.Closed())
	assert.False(t, c.IsValid())

	assert.ErrorIs(t, c.Enqueue(newScrapeRequest(3, "p", c)), ErrAgentGone)
	assert.Nil(t, c.close(), "second close returns nothing")

	_, ok := c.Poll(time.Second)
	assert.False(t, ok)
}

func TestAgentContext_CloseWakesPoller(t *testing.T) {
	c := newAgentContext("a1", "conn", 1, time.Minute)

	done := make(chan struct{})
	go func() {
		c.Poll(time.Hour)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	c.close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll did not return after close")
	}
}

func TestAgentContext_IsValidTracksInactivity(t *testing.T) {
	c := newAgentContext("a1", "conn", 1, 30*time.Millisecond)
	assert.True(t, c.IsValid())

	time.Sleep(40 * time.Millisecond)
	assert.False(t, c.IsValid())

	c.MarkActivity()
	assert.True(t, c.IsValid())
}

func TestAgentContext_Paths(t *testing.T) {
	c := newAgentContext("a1", "conn", 1, time.Minute)
	c.addPath("b", 1)
	c.addPath("a", 0)

	assert.Equal(t, []string{"a", "b"}, c.Paths())
	assert.True(t, c.HasPath("a"))

	c.removePath("a")
	assert.False(t, c.HasPath("a"))
	assert.Equal(t, []string{"b"}, c.Paths())
}
