// ABOUTME: Global proxy tables: agentId -> AgentContext, path -> AgentContext, and in-flight scrapes.
// ABOUTME: Owns id generation, the inactivity sweep, and the scrape correlation protocol.

package proxy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/2389/scrape-relay/internal/config"
	"github.com/2389/scrape-relay/internal/pending"
	"github.com/2389/scrape-relay/internal/store"
	pb "github.com/2389/scrape-relay/proto/relay"
)

var (
	// ErrAgentNotFound indicates the agent id is not (or no longer) known.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrNoAgentForPath indicates no agent has registered the scraped path.
	ErrNoAgentForPath = errors.New("no agent for path")

	// ErrQueueSaturated indicates the owning agent's request queue is full.
	ErrQueueSaturated = errors.New("agent request queue saturated")

	// ErrAgentGone indicates the owning agent was removed before responding.
	ErrAgentGone = errors.New("agent gone")

	// ErrScrapeTimeout indicates the agent did not respond within the scrape timeout.
	ErrScrapeTimeout = errors.New("scrape timed out")

	// ErrPathNotOwned indicates an unregister for a path the agent does not own.
	ErrPathNotOwned = errors.New("path not owned by agent")

	// ErrProxyStopped indicates the proxy is shutting down.
	ErrProxyStopped = errors.New("proxy stopped")
)

// Eviction reasons recorded on metrics and in the event log.
const (
	reasonInactive   = "inactive"
	reasonDisconnect = "disconnect"
	reasonShutdown   = "shutdown"
)

// Registry coordinates all connected agents, their paths, and in-flight scrapes.
// The agent and path tables are guarded by separate locks; neither is held
// while waiting on a queue or the network.
type Registry struct {
	settings config.ProxySettings

	agentsMu sync.RWMutex
	agents   map[string]*AgentContext

	pathsMu sync.RWMutex
	paths   map[string]*AgentContext

	scrapes   *pending.Table[int64, *ScrapeRequest]
	pathIDs   atomic.Int64
	scrapeIDs atomic.Int64

	events  store.EventStore
	metrics *Metrics
	logger  *slog.Logger

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewRegistry creates an empty Registry. events and metrics may be nil.
func NewRegistry(settings config.ProxySettings, events store.EventStore, metrics *Metrics, logger *slog.Logger) *Registry {
	r := &Registry{
		settings: settings,
		agents:   make(map[string]*AgentContext),
		paths:    make(map[string]*AgentContext),
		events:   events,
		metrics:  metrics,
		logger:   logger,
		stopped:  make(chan struct{}),
	}
	r.scrapes = pending.New(settings.ScrapeRequestTimeout, settings.ScrapeCheckInterval, r.expireScrape)
	return r
}

// normalizePath strips the leading slash so "/metrics" and "metrics" are the same route.
func normalizePath(path string) string {
	return strings.TrimPrefix(path, "/")
}

// ConnectAgent creates a context for a newly connected agent bound to the
// transport connection connID.
func (r *Registry) ConnectAgent(connID string) *AgentContext {
	agent := newAgentContext(uuid.NewString(), connID, r.settings.RequestQueueSize, r.settings.MaxAgentInactivity)

	r.agentsMu.Lock()
	r.agents[agent.ID] = agent
	total := len(r.agents)
	r.agentsMu.Unlock()

	r.metrics.connect()
	r.record(agent.ID, store.EventConnect, connID)
	r.logger.Info("=== AGENT CONNECTED ===",
		"agent_id", agent.ID,
		"conn_id", connID,
		"total_agents", total,
	)
	return agent
}

// Agent returns the context for agentID.
func (r *Registry) Agent(agentID string) (*AgentContext, bool) {
	r.agentsMu.RLock()
	defer r.agentsMu.RUnlock()
	agent, ok := r.agents[agentID]
	return agent, ok
}

// Agents returns all agent contexts ordered by connection time.
func (r *Registry) Agents() []*AgentContext {
	r.agentsMu.RLock()
	agents := make([]*AgentContext, 0, len(r.agents))
	for _, a := range r.agents {
		agents = append(agents, a)
	}
	r.agentsMu.RUnlock()

	sort.Slice(agents, func(i, j int) bool {
		return agents[i].ConnectedAt.Before(agents[j].ConnectedAt)
	})
	return agents
}

// AgentCount returns the number of connected agents.
func (r *Registry) AgentCount() int {
	r.agentsMu.RLock()
	defer r.agentsMu.RUnlock()
	return len(r.agents)
}

// RegisterAgent records the agent's name and hostname on an existing context.
func (r *Registry) RegisterAgent(agentID, name, hostname string) error {
	agent, ok := r.Agent(agentID)
	if !ok {
		return ErrAgentNotFound
	}

	agent.setIdentity(name, hostname)
	agent.MarkActivity()

	r.record(agentID, store.EventRegister, name+"@"+hostname)
	r.logger.Info("agent registered",
		"agent_id", agentID,
		"name", name,
		"hostname", hostname,
	)
	return nil
}

// RegisterPath routes path to the agent, replacing any previous owner, and
// returns the fresh path id and the total number of registered paths.
func (r *Registry) RegisterPath(agentID, path string) (int64, int, error) {
	path = normalizePath(path)

	agent, ok := r.Agent(agentID)
	if !ok {
		return -1, 0, ErrAgentNotFound
	}

	r.pathsMu.Lock()
	// A swept context is closed before its paths are removed, so checking
	// here keeps the path table from pointing at a dead agent.
	if agent.Closed() {
		r.pathsMu.Unlock()
		return -1, 0, ErrAgentNotFound
	}
	pathID := r.pathIDs.Add(1) - 1
	prev := r.paths[path]
	r.paths[path] = agent
	if prev != nil && prev != agent {
		prev.removePath(path)
	}
	agent.addPath(path, pathID)
	count := len(r.paths)
	r.pathsMu.Unlock()

	agent.MarkActivity()

	if prev != nil && prev != agent {
		r.logger.Warn("overwriting path",
			"path", path,
			"previous_agent_id", prev.ID,
			"agent_id", agentID,
		)
	}
	r.record(agentID, store.EventPathRegister, path)
	r.logger.Info("path registered",
		"agent_id", agentID,
		"path", path,
		"path_id", pathID,
		"path_count", count,
	)
	return pathID, count, nil
}

// UnregisterPath removes path if agentID owns it.
func (r *Registry) UnregisterPath(agentID, path string) error {
	path = normalizePath(path)

	agent, ok := r.Agent(agentID)
	if !ok {
		return ErrAgentNotFound
	}

	r.pathsMu.Lock()
	if r.paths[path] != agent {
		r.pathsMu.Unlock()
		return fmt.Errorf("%w: %s", ErrPathNotOwned, path)
	}
	delete(r.paths, path)
	agent.removePath(path)
	r.pathsMu.Unlock()

	agent.MarkActivity()

	r.record(agentID, store.EventPathUnregister, path)
	r.logger.Info("path unregistered", "agent_id", agentID, "path", path)
	return nil
}

// AgentForPath returns the agent currently routed for path.
func (r *Registry) AgentForPath(path string) (*AgentContext, bool) {
	r.pathsMu.RLock()
	defer r.pathsMu.RUnlock()
	agent, ok := r.paths[normalizePath(path)]
	return agent, ok
}

// PathCount returns the number of registered paths across all agents.
func (r *Registry) PathCount() int {
	r.pathsMu.RLock()
	defer r.pathsMu.RUnlock()
	return len(r.paths)
}

// PendingCount returns the number of scrapes awaiting a response.
func (r *Registry) PendingCount() int {
	return r.scrapes.Len()
}

// Heartbeat marks the agent active. Returns ErrAgentNotFound for unknown
// or swept agents.
func (r *Registry) Heartbeat(agentID string) error {
	agent, ok := r.Agent(agentID)
	if !ok {
		return ErrAgentNotFound
	}
	agent.MarkActivity()
	r.metrics.heartbeat()
	return nil
}

// Scrape routes one inbound scrape to the agent owning path and waits for
// its response. No request is created when no agent owns the path.
func (r *Registry) Scrape(ctx context.Context, path string) (*pb.ScrapeResponse, error) {
	select {
	case <-r.stopped:
		return nil, ErrProxyStopped
	default:
	}

	path = normalizePath(path)
	agent, ok := r.AgentForPath(path)
	if !ok {
		r.metrics.scrape(resultNoAgent)
		return nil, fmt.Errorf("%w: %s", ErrNoAgentForPath, path)
	}

	req := newScrapeRequest(r.scrapeIDs.Add(1), path, agent)
	r.scrapes.Put(req.ID, req)

	if err := agent.Enqueue(req); err != nil {
		r.scrapes.Remove(req.ID)
		req.Fail(err)
		r.metrics.scrape(resultFor(err))
		r.logger.Warn("scrape rejected",
			"agent_id", agent.ID,
			"path", path,
			"scrape_id", req.ID,
			"error", err,
		)
		return nil, err
	}

	resp, err := req.Wait(ctx, r.settings.ScrapeRequestTimeout)
	// No-op when the response already claimed the entry.
	r.scrapes.Remove(req.ID)

	if err != nil {
		r.metrics.scrape(resultFor(err))
		return nil, err
	}
	if !resp.GetValid() {
		r.metrics.scrape(resultInvalid)
	} else {
		r.metrics.scrape(resultSuccess)
		r.metrics.observeScrape(req.Age())
	}
	return resp, nil
}

// CompleteScrape resolves the in-flight scrape named by resp. Responses for
// unknown or already-resolved ids are logged and discarded.
func (r *Registry) CompleteScrape(resp *pb.ScrapeResponse) bool {
	req, ok := r.scrapes.Remove(resp.GetScrapeId())
	if !ok {
		if agent, found := r.Agent(resp.GetAgentId()); found {
			agent.MarkActivity()
		}
		r.metrics.unknownScrape()
		r.logger.Warn("missing scrape request for response",
			"scrape_id", resp.GetScrapeId(),
			"agent_id", resp.GetAgentId(),
		)
		return false
	}

	req.Complete(resp)
	req.Agent.MarkActivity()
	return true
}

// AbandonScrape drops an in-flight scrape that could not be delivered to
// its agent and fails the waiting caller with cause.
func (r *Registry) AbandonScrape(req *ScrapeRequest, cause error) {
	r.scrapes.Remove(req.ID)
	if req.Fail(cause) {
		r.logger.Warn("scrape request abandoned",
			"scrape_id", req.ID,
			"agent_id", req.Agent.ID,
			"path", req.Path,
			"error", cause,
		)
	}
}

// expireScrape is the correlation table's expiry callback.
func (r *Registry) expireScrape(id int64, req *ScrapeRequest) {
	if req.Fail(ErrScrapeTimeout) {
		r.logger.Warn("scrape request timed out",
			"scrape_id", id,
			"agent_id", req.Agent.ID,
			"path", req.Path,
			"age", req.Age(),
		)
	}
}

// DisconnectConn removes every agent bound to the transport connection connID.
func (r *Registry) DisconnectConn(connID string) {
	r.agentsMu.RLock()
	var bound []*AgentContext
	for _, a := range r.agents {
		if a.connID == connID {
			bound = append(bound, a)
		}
	}
	r.agentsMu.RUnlock()

	for _, a := range bound {
		r.removeAgent(a, reasonDisconnect, ErrAgentGone)
	}
}

// Sweep removes every agent that has been inactive past the limit. Returns
// the number removed.
func (r *Registry) Sweep() int {
	var stale []*AgentContext
	for _, a := range r.Agents() {
		if !a.IsValid() {
			stale = append(stale, a)
		}
	}

	for _, a := range stale {
		r.logger.Warn("evicting inactive agent",
			"agent_id", a.ID,
			"name", a.Name(),
			"inactive_for", a.InactiveFor().Round(time.Millisecond),
		)
		r.removeAgent(a, reasonInactive, ErrAgentGone)
	}
	return len(stale)
}

// RunSweeper sweeps stale agents on the configured interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(r.settings.StaleAgentCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-ctx.Done():
			return
		case <-r.stopped:
			return
		}
	}
}

// removeAgent tears down an agent: it leaves the agent table, its paths leave
// the path table, and its queued and in-flight scrapes fail with cause.
func (r *Registry) removeAgent(agent *AgentContext, reason string, cause error) {
	r.agentsMu.Lock()
	if r.agents[agent.ID] != agent {
		r.agentsMu.Unlock()
		return
	}
	delete(r.agents, agent.ID)
	total := len(r.agents)
	r.agentsMu.Unlock()

	queued := agent.close()

	r.pathsMu.Lock()
	for _, p := range agent.Paths() {
		if r.paths[p] == agent {
			delete(r.paths, p)
		}
		agent.removePath(p)
	}
	r.pathsMu.Unlock()

	for _, req := range queued {
		req.Fail(cause)
	}
	inflight := r.scrapes.RemoveFunc(func(_ int64, req *ScrapeRequest) bool {
		return req.Agent == agent
	})
	for _, req := range inflight {
		req.Fail(cause)
	}

	r.metrics.evict(reason)
	kind := store.EventDisconnect
	if reason == reasonInactive {
		kind = store.EventEvict
	}
	r.record(agent.ID, kind, reason)
	r.logger.Info("=== AGENT DISCONNECTED ===",
		"agent_id", agent.ID,
		"name", agent.Name(),
		"reason", reason,
		"failed_scrapes", len(inflight),
		"total_agents", total,
	)
}

// Stopped is closed once Close has been called.
func (r *Registry) Stopped() <-chan struct{} {
	return r.stopped
}

// Close removes every agent, failing outstanding scrapes with
// ErrProxyStopped, and stops the correlation table's sweep.
func (r *Registry) Close() {
	r.stopOnce.Do(func() {
		close(r.stopped)
		for _, a := range r.Agents() {
			r.removeAgent(a, reasonShutdown, ErrProxyStopped)
		}
		r.scrapes.Close()
	})
}

// History returns recorded lifecycle events for an agent, newest first.
func (r *Registry) History(ctx context.Context, agentID string, limit int) ([]*store.AgentEvent, error) {
	if r.events == nil {
		return nil, nil
	}
	return r.events.ListEvents(ctx, agentID, limit)
}

// record appends a lifecycle event. Failures are logged, never returned.
func (r *Registry) record(agentID string, kind store.EventKind, detail string) {
	if r.events == nil {
		return
	}
	err := r.events.RecordEvent(context.Background(), &store.AgentEvent{
		AgentID: agentID,
		Kind:    kind,
		Detail:  detail,
	})
	if err != nil {
		r.logger.Warn("failed to record agent event",
			"agent_id", agentID,
			"kind", kind,
			"error", err,
		)
	}
}

// resultFor maps a scrape error to its metrics label.
func resultFor(err error) string {
	switch {
	case errors.Is(err, ErrQueueSaturated):
		return resultSaturated
	case errors.Is(err, ErrScrapeTimeout):
		return resultTimeout
	case errors.Is(err, ErrAgentGone):
		return resultAgentGone
	case errors.Is(err, ErrNoAgentForPath):
		return resultNoAgent
	default:
		return resultError
	}
}
