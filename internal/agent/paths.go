// ABOUTME: Agent-side table of registered paths: proxy path -> path id and target URL.
// ABOUTME: Rebuilt from scratch on every connection cycle.

package agent

import (
	"sort"
	"strings"
	"sync"
)

// PathContext is one path this agent serves for the proxy.
type PathContext struct {
	Name   string
	Path   string
	PathID int64
	URL    string
}

// PathTable maps proxy paths to their targets. Safe for concurrent use.
type PathTable struct {
	mu    sync.RWMutex
	paths map[string]PathContext
}

// NewPathTable creates an empty PathTable.
func NewPathTable() *PathTable {
	return &PathTable{paths: make(map[string]PathContext)}
}

// normalizePath strips the leading slash; the proxy does the same.
func normalizePath(path string) string {
	return strings.TrimPrefix(path, "/")
}

// Put adds or replaces the entry for pc.Path.
func (t *PathTable) Put(pc PathContext) {
	pc.Path = normalizePath(pc.Path)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.paths[pc.Path] = pc
}

// Get returns the entry for path.
func (t *PathTable) Get(path string) (PathContext, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pc, ok := t.paths[normalizePath(path)]
	return pc, ok
}

// Remove deletes the entry for path. Returns false if it was not present.
func (t *PathTable) Remove(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	path = normalizePath(path)
	if _, ok := t.paths[path]; !ok {
		return false
	}
	delete(t.paths, path)
	return true
}

// Len returns the number of entries.
func (t *PathTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.paths)
}

// List returns all entries sorted by path.
func (t *PathTable) List() []PathContext {
	t.mu.RLock()
	list := make([]PathContext, 0, len(t.paths))
	for _, pc := range t.paths {
		list = append(list, pc)
	}
	t.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}
