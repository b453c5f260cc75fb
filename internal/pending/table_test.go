// ABOUTME: Tests for the pending correlation table.
// ABOUTME: Covers put/remove ownership, expiry callbacks, bulk removal, and concurrency.

package pending

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Put(t *testing.T) {
	tbl := New[int64, string](time.Minute, time.Minute, nil)
	defer tbl.Close()

	assert.True(t, tbl.Put(1, "one"))
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_PutDuplicateRejected(t *testing.T) {
	tbl := New[int64, string](time.Minute, time.Minute, nil)
	defer tbl.Close()

	require.True(t, tbl.Put(1, "first"))
	assert.False(t, tbl.Put(1, "second"))

	v, _ := tbl.Remove(1)
	assert.Equal(t, "first", v)
}

func TestTable_RemoveTransfersOwnershipOnce(t *testing.T) {
	tbl := New[int64, string](time.Minute, time.Minute, nil)
	defer tbl.Close()

	tbl.Put(7, "payload")

	v, ok := tbl.Remove(7)
	require.True(t, ok)
	assert.Equal(t, "payload", v)

	_, ok = tbl.Remove(7)
	assert.False(t, ok)
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_RemoveUnknown(t *testing.T) {
	tbl := New[int64, string](time.Minute, time.Minute, nil)
	defer tbl.Close()

	v, ok := tbl.Remove(42)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestTable_RemoveFunc(t *testing.T) {
	tbl := New[int64, string](time.Minute, time.Minute, nil)
	defer tbl.Close()

	tbl.Put(1, "a")
	tbl.Put(2, "b")
	tbl.Put(3, "a")

	removed := tbl.RemoveFunc(func(_ int64, v string) bool { return v == "a" })
	assert.Equal(t, []string{"a", "a"}, removed)
	assert.Equal(t, 1, tbl.Len())

	_, ok := tbl.Remove(2)
	assert.True(t, ok)
}

func TestTable_ExpiryInvokesCallback(t *testing.T) {
	var mu sync.Mutex
	var expired []int64

	tbl := New[int64, string](10*time.Millisecond, 5*time.Millisecond, func(k int64, _ string) {
		mu.Lock()
		expired = append(expired, k)
		mu.Unlock()
	})
	defer tbl.Close()

	tbl.Put(1, "x")
	tbl.Put(2, "y")

	require.Eventually(t, func() bool { return tbl.Len() == 0 }, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []int64{1, 2}, expired)
}

func TestTable_ExpiredEntryNotReturnedByRemove(t *testing.T) {
	var calls atomic.Int32
	tbl := New[int64, string](10*time.Millisecond, time.Hour, func(int64, string) { calls.Add(1) })
	defer tbl.Close()

	tbl.Put(1, "x")
	time.Sleep(20 * time.Millisecond)
	tbl.runCleanup()

	_, ok := tbl.Remove(1)
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTable_CleanupStopsAtFreshEntry(t *testing.T) {
	tbl := New[int64, string](30*time.Millisecond, time.Hour, nil)
	defer tbl.Close()

	tbl.Put(1, "old")
	time.Sleep(40 * time.Millisecond)
	tbl.Put(2, "new")

	tbl.runCleanup()

	_, oldOK := tbl.Remove(1)
	_, newOK := tbl.Remove(2)
	assert.False(t, oldOK)
	assert.True(t, newOK)
}

func TestTable_Concurrent(t *testing.T) {
	tbl := New[int64, int](time.Minute, time.Minute, nil)
	defer tbl.Close()

	var wg sync.WaitGroup
	var removed atomic.Int64

	for i := range 100 {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			tbl.Put(id, int(id))
		}(int64(i))
	}
	wg.Wait()

	// Two removers race for each id; exactly one wins.
	for i := range 100 {
		for range 2 {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				if _, ok := tbl.Remove(id); ok {
					removed.Add(1)
				}
			}(int64(i))
		}
	}
	wg.Wait()

	assert.Equal(t, int64(100), removed.Load())
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_CloseIdempotent(t *testing.T) {
	tbl := New[int64, string](time.Minute, time.Minute, nil)
	tbl.Close()
	tbl.Close()
}
