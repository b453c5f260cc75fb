// ABOUTME: Tests for the agent-side path table.
// ABOUTME: Paths are stored without their leading slash and listed in sorted order.

package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathTable(t *testing.T) {
	table := NewPathTable()
	table.Put(PathContext{Name: "b", Path: "/b", PathID: 1, URL: "http://b"})
	table.Put(PathContext{Name: "a", Path: "a", PathID: 0, URL: "http://a"})

	assert.Equal(t, 2, table.Len())

	pc, ok := table.Get("/b")
	assert.True(t, ok)
	assert.Equal(t, "b", pc.Path)
	assert.Equal(t, int64(1), pc.PathID)

	list := table.List()
	assert.Equal(t, []string{"a", "b"}, []string{list[0].Path, list[1].Path})

	assert.True(t, table.Remove("/a"))
	assert.False(t, table.Remove("a"))
	_, ok = table.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, table.Len())
}

func TestPathTable_PutReplaces(t *testing.T) {
	table := NewPathTable()
	table.Put(PathContext{Path: "m", PathID: 0, URL: "http://old"})
	table.Put(PathContext{Path: "/m", PathID: 4, URL: "http://new"})

	pc, ok := table.Get("m")
	assert.True(t, ok)
	assert.Equal(t, "http://new", pc.URL)
	assert.Equal(t, int64(4), pc.PathID)
	assert.Equal(t, 1, table.Len())
}
