// ABOUTME: ProxyService gRPC implementation: agent connect, registration, heartbeat, and scrape streams.
// ABOUTME: Unary calls report failure as valid=false; the streams use gRPC status codes.

package proxy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	pb "github.com/2389/scrape-relay/proto/relay"
)

// proxyServer implements the ProxyService gRPC service.
type proxyServer struct {
	pb.UnimplementedProxyServiceServer
	registry     *Registry
	pollInterval time.Duration
	logger       *slog.Logger
}

// newProxyServer creates a new ProxyService instance.
func newProxyServer(registry *Registry, pollInterval time.Duration, logger *slog.Logger) *proxyServer {
	return &proxyServer{
		registry:     registry,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// agentIDFrom returns the agent id carried in the request, falling back to
// the agent-id metadata header.
func agentIDFrom(ctx context.Context, fromRequest string) string {
	if fromRequest != "" {
		return fromRequest
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vals := md.Get(pb.AgentIDHeader); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// ConnectAgent creates the agent's context and returns its id in the
// agent-id response header.
func (s *proxyServer) ConnectAgent(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	agent := s.registry.ConnectAgent(connIDFrom(ctx))

	if err := grpc.SetHeader(ctx, metadata.Pairs(pb.AgentIDHeader, agent.ID)); err != nil {
		s.logger.Error("setting agent-id header", "agent_id", agent.ID, "error", err)
		return nil, status.Errorf(codes.Internal, "setting agent-id header: %v", err)
	}
	return &emptypb.Empty{}, nil
}

// RegisterAgent enriches an existing context with the agent's name and hostname.
func (s *proxyServer) RegisterAgent(ctx context.Context, req *pb.RegisterAgentRequest) (*pb.RegisterAgentResponse, error) {
	agentID := agentIDFrom(ctx, req.GetAgentId())
	if err := s.registry.RegisterAgent(agentID, req.GetAgentName(), req.GetHostname()); err != nil {
		s.logger.Warn("agent registration rejected", "agent_id", agentID, "error", err)
		return &pb.RegisterAgentResponse{Valid: false, AgentId: agentID}, nil
	}
	return &pb.RegisterAgentResponse{Valid: true, AgentId: agentID}, nil
}

// RegisterPath routes a path to the calling agent.
func (s *proxyServer) RegisterPath(ctx context.Context, req *pb.RegisterPathRequest) (*pb.RegisterPathResponse, error) {
	agentID := agentIDFrom(ctx, req.GetAgentId())
	pathID, count, err := s.registry.RegisterPath(agentID, req.GetPath())
	if err != nil {
		s.logger.Warn("path registration rejected", "agent_id", agentID, "path", req.GetPath(), "error", err)
		return &pb.RegisterPathResponse{Valid: false, PathId: -1, PathCount: int32(s.registry.PathCount())}, nil
	}
	return &pb.RegisterPathResponse{Valid: true, PathId: pathID, PathCount: int32(count)}, nil
}

// UnregisterPath removes a path the calling agent owns.
func (s *proxyServer) UnregisterPath(ctx context.Context, req *pb.UnregisterPathRequest) (*pb.UnregisterPathResponse, error) {
	agentID := agentIDFrom(ctx, req.GetAgentId())
	if err := s.registry.UnregisterPath(agentID, req.GetPath()); err != nil {
		s.logger.Warn("path unregistration rejected", "agent_id", agentID, "path", req.GetPath(), "error", err)
		return &pb.UnregisterPathResponse{Valid: false}, nil
	}
	return &pb.UnregisterPathResponse{Valid: true}, nil
}

// PathMapSize reports the total number of registered paths.
func (s *proxyServer) PathMapSize(ctx context.Context, req *pb.PathMapSizeRequest) (*pb.PathMapSizeResponse, error) {
	if agent, ok := s.registry.Agent(agentIDFrom(ctx, req.GetAgentId())); ok {
		agent.MarkActivity()
	}
	return &pb.PathMapSizeResponse{PathCount: int32(s.registry.PathCount())}, nil
}

// SendHeartBeat marks the agent active. Unknown agents get valid=false so
// they reconnect.
func (s *proxyServer) SendHeartBeat(ctx context.Context, req *pb.HeartBeatRequest) (*pb.HeartBeatResponse, error) {
	agentID := agentIDFrom(ctx, req.GetAgentId())
	if err := s.registry.Heartbeat(agentID); err != nil {
		s.logger.Info("heartbeat from unknown agent", "agent_id", agentID)
		return &pb.HeartBeatResponse{Valid: false}, nil
	}
	s.logger.Debug("received heartbeat", "agent_id", agentID)
	return &pb.HeartBeatResponse{Valid: true}, nil
}

// ReadRequestsFromProxy streams queued scrapes to the agent until the agent
// is removed, the stream ends, or the proxy stops.
func (s *proxyServer) ReadRequestsFromProxy(info *pb.AgentInfo, stream grpc.ServerStreamingServer[pb.ScrapeRequest]) error {
	ctx := stream.Context()
	agentID := agentIDFrom(ctx, info.GetAgentId())

	agent, ok := s.registry.Agent(agentID)
	if !ok {
		return status.Errorf(codes.NotFound, "agent %s not found", agentID)
	}

	agent.MarkActivity()
	logger := s.logger.With("agent_id", agentID)
	logger.Debug("request stream opened")

	for !agent.Closed() {
		select {
		case <-ctx.Done():
			logger.Debug("request stream cancelled")
			return nil
		case <-s.registry.Stopped():
			return status.Error(codes.Unavailable, ErrProxyStopped.Error())
		default:
		}

		req, ok := agent.Poll(s.pollInterval)
		if !ok {
			continue
		}

		if err := stream.Send(req.message()); err != nil {
			logger.Warn("sending scrape request", "scrape_id", req.ID, "error", err)
			s.registry.AbandonScrape(req, ErrAgentGone)
			return err
		}
	}

	logger.Info("request stream closed, agent removed")
	return nil
}

// WriteResponsesToProxy receives scrape results and resolves the matching
// in-flight requests.
func (s *proxyServer) WriteResponsesToProxy(stream grpc.ClientStreamingServer[pb.ScrapeResponse, emptypb.Empty]) error {
	if agent, ok := s.registry.Agent(agentIDFrom(stream.Context(), "")); ok {
		agent.MarkActivity()
	}

	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return stream.SendAndClose(&emptypb.Empty{})
			}
			if status.Code(err) == codes.Canceled {
				s.logger.Debug("response stream cancelled")
				return nil
			}
			s.logger.Warn("receiving scrape response", "error", err)
			return err
		}

		s.registry.CompleteScrape(resp)
	}
}

