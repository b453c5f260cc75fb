// ABOUTME: Per-agent state held by the proxy: identity, owned paths, request queue, activity clock.
// ABOUTME: Created on ConnectAgent and closed by the inactivity sweep or transport disconnect.

package proxy

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// AgentContext represents one connected agent as seen by the proxy.
type AgentContext struct {
	ID          string
	ConnectedAt time.Time

	connID        string
	maxInactivity time.Duration

	mu       sync.RWMutex
	name     string
	hostname string
	paths    map[string]int64 // path -> pathId
	closed   bool

	lastActivity atomic.Int64 // unix nanos
	queue        chan *ScrapeRequest
	done         chan struct{}
}

// AgentInfo is a point-in-time view of an AgentContext for the HTTP API.
type AgentInfo struct {
	ID           string    `json:"agent_id"`
	Name         string    `json:"agent_name"`
	Hostname     string    `json:"hostname"`
	Paths        []string  `json:"paths"`
	ConnectedAt  time.Time `json:"connected_at"`
	LastActivity time.Time `json:"last_activity"`
	QueueDepth   int       `json:"queue_depth"`
	Valid        bool      `json:"valid"`
}

func newAgentContext(id, connID string, queueSize int, maxInactivity time.Duration) *AgentContext {
	now := time.Now()
	c := &AgentContext{
		ID:            id,
		ConnectedAt:   now,
		connID:        connID,
		maxInactivity: maxInactivity,
		paths:         make(map[string]int64),
		queue:         make(chan *ScrapeRequest, queueSize),
		done:          make(chan struct{}),
	}
	c.lastActivity.Store(now.UnixNano())
	return c
}

// MarkActivity records that the agent was heard from just now.
func (c *AgentContext) MarkActivity() {
	c.lastActivity.Store(time.Now().UnixNano())
}

// LastActivity returns when the agent was last heard from.
func (c *AgentContext) LastActivity() time.Time {
	return time.Unix(0, c.lastActivity.Load())
}

// InactiveFor returns the time since the agent was last heard from.
func (c *AgentContext) InactiveFor() time.Duration {
	return time.Since(c.LastActivity())
}

// IsValid reports whether the agent is open and was active within the
// inactivity window.
func (c *AgentContext) IsValid() bool {
	return !c.Closed() && c.InactiveFor() < c.maxInactivity
}

// Closed reports whether the context has been torn down.
func (c *AgentContext) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Name returns the agent's self-reported name.
func (c *AgentContext) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Hostname returns the agent's self-reported hostname.
func (c *AgentContext) Hostname() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hostname
}

func (c *AgentContext) setIdentity(name, hostname string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
	c.hostname = hostname
}

// Enqueue adds a scrape to the agent's outbound queue without blocking.
// Returns ErrQueueSaturated when the queue is full and ErrAgentGone when the
// context has been closed.
func (c *AgentContext) Enqueue(req *ScrapeRequest) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrAgentGone
	}

	select {
	case c.queue <- req:
		return nil
	default:
		return ErrQueueSaturated
	}
}

// Poll waits up to timeout for the next queued scrape. Returns false on
// timeout or when the context is closed.
func (c *AgentContext) Poll(timeout time.Duration) (*ScrapeRequest, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case req := <-c.queue:
		return req, true
	case <-c.done:
		return nil, false
	case <-timer.C:
		return nil, false
	}
}

// QueueDepth returns the number of scrapes waiting to be read by the agent.
func (c *AgentContext) QueueDepth() int {
	return len(c.queue)
}

func (c *AgentContext) addPath(path string, pathID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[path] = pathID
}

func (c *AgentContext) removePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.paths, path)
}

// HasPath reports whether the agent currently owns path.
func (c *AgentContext) HasPath(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.paths[path]
	return ok
}

// Paths returns the agent's owned paths, sorted.
func (c *AgentContext) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0, len(c.paths))
	for p := range c.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Info returns a snapshot of the context.
func (c *AgentContext) Info() AgentInfo {
	return AgentInfo{
		ID:           c.ID,
		Name:         c.Name(),
		Hostname:     c.Hostname(),
		Paths:        c.Paths(),
		ConnectedAt:  c.ConnectedAt,
		LastActivity: c.LastActivity(),
		QueueDepth:   c.QueueDepth(),
		Valid:        c.IsValid(),
	}
}

// close marks the context closed, wakes pollers, and returns whatever was
// still queued. Only the first call returns anything.
func (c *AgentContext) close() []*ScrapeRequest {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	// No Enqueue can run past this point, so the drain is complete.
	var drained []*ScrapeRequest
	for {
		select {
		case req := <-c.queue:
			drained = append(drained, req)
		default:
			return drained
		}
	}
}
