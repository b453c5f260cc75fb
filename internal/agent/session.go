// ABOUTME: One connection cycle against the proxy: register, then stream requests and responses.
// ABOUTME: All per-cycle state lives here so a reconnect starts from a clean slate.

package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/2389/scrape-relay/internal/config"
	pb "github.com/2389/scrape-relay/proto/relay"
)

type session struct {
	agent   *Agent
	client  pb.ProxyServiceClient
	ident   *identity
	agentID string
	paths   *PathTable
	pipe    *pipeline
	logger  *slog.Logger

	lastSent     atomic.Int64
	disconnected atomic.Bool
}

func newSession(a *Agent, client pb.ProxyServiceClient, ident *identity) *session {
	s := &session{
		agent:  a,
		client: client,
		ident:  ident,
		paths:  NewPathTable(),
		logger: a.logger,
	}
	s.markSent()
	return s
}

func (s *session) markSent() {
	s.lastSent.Store(time.Now().UnixNano())
}

func (s *session) sinceLastSent() time.Duration {
	return time.Since(time.Unix(0, s.lastSent.Load()))
}

// connect performs ConnectAgent and RegisterAgent.
func (s *session) connect(ctx context.Context) error {
	if _, err := s.client.ConnectAgent(ctx, &emptypb.Empty{}); err != nil {
		s.agent.metrics.connect(false)
		return fmt.Errorf("connecting to proxy %s: %w", s.agent.cfg.Agent.ProxyAddr, err)
	}
	s.agent.metrics.connect(true)

	s.agentID = s.ident.AgentID()
	if s.agentID == "" {
		return fmt.Errorf("%w: proxy returned no agent id", ErrRegistrationRejected)
	}
	s.logger = s.agent.logger.With("agent_id", s.agentID)
	s.agent.setState(StateConnected)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	resp, err := s.client.RegisterAgent(ctx, &pb.RegisterAgentRequest{
		AgentId:   s.agentID,
		AgentName: s.agent.cfg.Agent.Name,
		Hostname:  hostname,
	})
	if err != nil {
		return fmt.Errorf("registering agent: %w", err)
	}
	if !resp.GetValid() {
		return ErrRegistrationRejected
	}

	s.logger.Info("connected to proxy", "proxy_addr", s.agent.cfg.Agent.ProxyAddr, "agent_name", s.agent.cfg.Agent.Name)
	return nil
}

// registerPaths registers every path in order; the first failure aborts.
func (s *session) registerPaths(ctx context.Context, paths []config.PathConfig) error {
	for _, p := range paths {
		if err := s.registerPath(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) registerPath(ctx context.Context, p config.PathConfig) error {
	path := normalizePath(p.Path)
	resp, err := s.client.RegisterPath(ctx, &pb.RegisterPathRequest{AgentId: s.agentID, Path: path})
	if err != nil {
		return fmt.Errorf("registering path %s: %w", path, err)
	}
	if !resp.GetValid() {
		return fmt.Errorf("%w: path %s", ErrRegistrationRejected, path)
	}

	s.paths.Put(PathContext{Name: p.Name, Path: path, PathID: resp.GetPathId(), URL: p.URL})
	s.logger.Info("registered path",
		"path", "/"+path,
		"url", p.URL,
		"path_id", resp.GetPathId(),
		"path_count", resp.GetPathCount(),
	)
	return nil
}

func (s *session) unregisterPath(ctx context.Context, path string) error {
	path = normalizePath(path)
	resp, err := s.client.UnregisterPath(ctx, &pb.UnregisterPathRequest{AgentId: s.agentID, Path: path})
	if err != nil {
		return fmt.Errorf("unregistering path %s: %w", path, err)
	}
	if !resp.GetValid() {
		return fmt.Errorf("%w: path %s", ErrRegistrationRejected, path)
	}
	s.paths.Remove(path)
	s.logger.Info("unregistered path", "path", "/"+path)
	return nil
}

func (s *session) pathMapSize(ctx context.Context) (int, error) {
	resp, err := s.client.PathMapSize(ctx, &pb.PathMapSizeRequest{AgentId: s.agentID})
	if err != nil {
		return 0, fmt.Errorf("path map size: %w", err)
	}
	return int(resp.GetPathCount()), nil
}

// stream runs the reader, writer, and heartbeat until one of them ends.
func (s *session) stream(ctx context.Context) error {
	settings := s.agent.cfg.Agent
	s.pipe = newPipeline(s.agent.fetcher, s.paths, s.agentID, settings.ResponseQueueSize)

	cycleCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(cycleCtx)
	g.Go(func() error {
		defer cancel()
		return s.readRequests(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return s.writeResponses(gctx, settings.ResponsePollInterval)
	})
	if !settings.Heartbeat.Disabled {
		g.Go(func() error {
			defer cancel()
			return s.heartbeat(gctx, settings.Heartbeat.CheckInterval, settings.Heartbeat.MaxInactivity)
		})
	}

	err := g.Wait()
	s.pipe.wait()
	return err
}

// readRequests receives scrape requests and dispatches each to a fetch worker.
func (s *session) readRequests(ctx context.Context) error {
	defer s.disconnected.Store(true)

	stream, err := s.client.ReadRequestsFromProxy(ctx, &pb.AgentInfo{AgentId: s.agentID})
	if err != nil {
		return fmt.Errorf("opening request stream: %w", err)
	}

	for {
		req, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil || status.Code(err) == codes.Canceled {
				s.logger.Info("request stream ended")
				return nil
			}
			return fmt.Errorf("reading requests: %w", err)
		}
		s.logger.Debug("received scrape request", "scrape_id", req.GetScrapeId(), "path", req.GetPath())
		s.pipe.dispatch(ctx, req)
	}
}

// writeResponses drains the response queue onto the proxy stream.
func (s *session) writeResponses(ctx context.Context, pollInterval time.Duration) error {
	stream, err := s.client.WriteResponsesToProxy(ctx)
	if err != nil {
		return fmt.Errorf("opening response stream: %w", err)
	}

	for !s.disconnected.Load() && ctx.Err() == nil {
		resp, ok := s.pipe.next(ctx, pollInterval)
		if !ok {
			continue
		}
		if err := stream.Send(resp); err != nil {
			s.disconnected.Store(true)
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("writing response %d: %w", resp.GetScrapeId(), err)
		}
		s.markSent()
	}

	if _, err := stream.CloseAndRecv(); err != nil && ctx.Err() == nil && !errors.Is(err, io.EOF) {
		s.logger.Debug("closing response stream", "error", err)
	}
	return nil
}
