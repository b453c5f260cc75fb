// ABOUTME: The scrape agent: a paced connection loop that keeps one session to the proxy alive.
// ABOUTME: Exposes connection state and path management on the current session.

package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"github.com/2389/scrape-relay/internal/config"
	pb "github.com/2389/scrape-relay/proto/relay"
)

var (
	// ErrNotConnected indicates there is no registered session with the proxy.
	ErrNotConnected = errors.New("agent not connected")

	// ErrRegistrationRejected indicates the proxy answered a registration with valid=false.
	ErrRegistrationRejected = errors.New("registration rejected by proxy")

	// ErrHeartbeatRejected indicates the proxy no longer knows this agent.
	ErrHeartbeatRejected = errors.New("heartbeat rejected by proxy")

	// ErrInvalidPath indicates a path or target URL was empty.
	ErrInvalidPath = errors.New("invalid path")
)

// State is the agent's position in the connection cycle.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateStreaming
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateStreaming:
		return "STREAMING"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Agent relays scrapes from the proxy to local targets.
type Agent struct {
	cfg        *config.AgentConfig
	fetcher    *Fetcher
	metrics    *Metrics
	metricsReg *prometheus.Registry
	logger     *slog.Logger

	mu      sync.RWMutex
	state   State
	session *session
	desired []config.PathConfig

	conn  *grpc.ClientConn
	ident *identity

	connectedOnce sync.Once
	connected     chan struct{}
}

// New creates an Agent from cfg. Call Run to start connecting.
func New(cfg *config.AgentConfig, logger *slog.Logger) *Agent {
	metricsReg := prometheus.NewRegistry()
	metricsReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(metricsReg)

	logger = logger.With("component", "agent")
	desired := make([]config.PathConfig, len(cfg.Agent.Paths))
	copy(desired, cfg.Agent.Paths)

	return &Agent{
		cfg:        cfg,
		fetcher:    NewFetcher(cfg.Agent.MaxConcurrentFetches, cfg.Agent.FetchTimeout, metrics, logger.With("component", "fetcher")),
		metrics:    metrics,
		metricsReg: metricsReg,
		logger:     logger,
		desired:    desired,
		connected:  make(chan struct{}),
	}
}

// State returns the current connection state.
func (a *Agent) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *Agent) setState(s State) {
	a.mu.Lock()
	prev := a.state
	a.state = s
	a.mu.Unlock()

	if prev != s {
		a.logger.Debug("state change", "from", prev.String(), "to", s.String())
	}
}

// AgentID returns the id assigned by the proxy for the current session, or "".
func (a *Agent) AgentID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return ""
	}
	return a.session.agentID
}

// AwaitInitialConnection blocks until the first session reaches STREAMING
// or ctx is done.
func (a *Agent) AwaitInitialConnection(ctx context.Context) error {
	select {
	case <-a.connected:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run connects to the proxy and keeps reconnecting until ctx is canceled.
// Attempts are paced to one per reconnect pause; the first is immediate.
func (a *Agent) Run(ctx context.Context) error {
	a.logger.Info("starting agent",
		"agent_name", a.cfg.Agent.Name,
		"proxy_addr", a.cfg.Agent.ProxyAddr,
		"paths", len(a.cfg.Agent.Paths),
	)

	stopAdmin, err := a.startAdmin()
	if err != nil {
		return err
	}
	defer stopAdmin()

	limiter := rate.NewLimiter(rate.Every(a.cfg.Agent.ReconnectPause), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		if err := a.runCycle(ctx); err != nil && ctx.Err() == nil {
			a.logger.Warn("connection cycle ended", "error", err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	a.setState(StateDisconnected)
	a.closeConn()
	a.logger.Info("agent stopped")
	return nil
}

// runCycle performs one connect-register-stream cycle.
func (a *Agent) runCycle(ctx context.Context) error {
	a.setState(StateConnecting)
	defer func() {
		a.mu.Lock()
		a.session = nil
		a.mu.Unlock()
		a.setState(StateDisconnected)
	}()

	client, ident, err := a.clientConn()
	if err != nil {
		return err
	}

	s := newSession(a, client, ident)
	if err := s.connect(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	a.session = s
	paths := make([]config.PathConfig, len(a.desired))
	copy(paths, a.desired)
	a.mu.Unlock()

	if err := s.registerPaths(ctx, paths); err != nil {
		return err
	}

	a.setState(StateStreaming)
	a.connectedOnce.Do(func() { close(a.connected) })
	return s.stream(ctx)
}

// clientConn returns the gRPC client for the next cycle. A connection that
// already yielded an agent id is rebuilt so the new cycle gets a fresh identity.
func (a *Agent) clientConn() (pb.ProxyServiceClient, *identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn != nil && a.ident.AgentID() == "" {
		return pb.NewProxyServiceClient(a.conn), a.ident, nil
	}
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}

	ident := &identity{}
	conn, err := dial(a.cfg.Agent.ProxyAddr, ident)
	if err != nil {
		return nil, nil, err
	}
	a.conn = conn
	a.ident = ident
	return pb.NewProxyServiceClient(conn), ident, nil
}

func (a *Agent) closeConn() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}
}

func dial(addr string, ident *identity) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff: backoff.Config{
				BaseDelay:  500 * time.Millisecond,
				Multiplier: 1.6,
				Jitter:     0.2,
				MaxDelay:   10 * time.Second,
			},
			MinConnectTimeout: 5 * time.Second,
		}),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                15 * time.Second,
			Timeout:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.WithChainUnaryInterceptor(ident.UnaryInterceptor()),
		grpc.WithChainStreamInterceptor(ident.StreamInterceptor()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client for %s: %w", addr, err)
	}
	return conn, nil
}

func (a *Agent) currentSession() (*session, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil || a.state < StateConnected {
		return nil, ErrNotConnected
	}
	return a.session, nil
}

// RegisterPath registers path on the current session, served from url. The
// path is re-registered on every later reconnect.
func (a *Agent) RegisterPath(ctx context.Context, path, url string) error {
	path = normalizePath(path)
	if path == "" || url == "" {
		return ErrInvalidPath
	}

	s, err := a.currentSession()
	if err != nil {
		return err
	}
	pc := config.PathConfig{Name: path, Path: path, URL: url}
	if err := s.registerPath(ctx, pc); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for i, p := range a.desired {
		if normalizePath(p.Path) == path {
			a.desired[i].URL = url
			return nil
		}
	}
	a.desired = append(a.desired, pc)
	return nil
}

// UnregisterPath removes path from the current session and from the set
// registered on reconnect.
func (a *Agent) UnregisterPath(ctx context.Context, path string) error {
	path = normalizePath(path)
	if path == "" {
		return ErrInvalidPath
	}

	s, err := a.currentSession()
	if err != nil {
		return err
	}
	if err := s.unregisterPath(ctx, path); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	kept := a.desired[:0]
	for _, p := range a.desired {
		if normalizePath(p.Path) != path {
			kept = append(kept, p)
		}
	}
	a.desired = kept
	return nil
}

// PathMapSize returns the number of paths registered on the proxy across all agents.
func (a *Agent) PathMapSize(ctx context.Context) (int, error) {
	s, err := a.currentSession()
	if err != nil {
		return 0, err
	}
	return s.pathMapSize(ctx)
}

// Paths returns the paths registered on the current session.
func (a *Agent) Paths() []PathContext {
	s, err := a.currentSession()
	if err != nil {
		return nil
	}
	return s.paths.List()
}

// Handler returns the agent's admin routes.
func (a *Agent) Handler() http.Handler {
	mux := http.NewServeMux()
	a.registerRoutes(mux)
	return mux
}
