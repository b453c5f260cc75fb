// ABOUTME: Tests for the ProxyService gRPC handlers over a real gRPC connection.
// ABOUTME: Covers identity headers, registration, heartbeats, streams, and disconnect cleanup.

package proxy

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	pb "github.com/2389/scrape-relay/proto/relay"
)

// startTestServer serves the ProxyService on a random local port and
// returns the registry and a dial function for new client connections.
func startTestServer(t *testing.T) (*Registry, func() *grpc.ClientConn) {
	t.Helper()

	registry := newTestRegistry(t, testSettings())
	server := createGRPCServer(newConnTracker(registry, testLogger()))
	pb.RegisterProxyServiceServer(server, newProxyServer(registry, 20*time.Millisecond, testLogger()))

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	dial := func() *grpc.ClientConn {
		conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}
	return registry, dial
}

// connectAgent calls ConnectAgent and returns the id from the response header.
func connectAgent(t *testing.T, client pb.ProxyServiceClient) string {
	t.Helper()
	var header metadata.MD
	_, err := client.ConnectAgent(context.Background(), &emptypb.Empty{}, grpc.Header(&header))
	require.NoError(t, err)
	ids := header.Get(pb.AgentIDHeader)
	require.Len(t, ids, 1)
	return ids[0]
}

func TestService_ConnectAgentSetsHeader(t *testing.T) {
	registry, dial := startTestServer(t)
	client := pb.NewProxyServiceClient(dial())

	agentID := connectAgent(t, client)
	assert.NotEmpty(t, agentID)

	agent, ok := registry.Agent(agentID)
	require.True(t, ok)
	assert.NotEmpty(t, agent.connID)
}

func TestService_RegisterAgentAndPath(t *testing.T) {
	_, dial := startTestServer(t)
	client := pb.NewProxyServiceClient(dial())
	ctx := context.Background()

	agentID := connectAgent(t, client)

	regResp, err := client.RegisterAgent(ctx, &pb.RegisterAgentRequest{AgentId: agentID, AgentName: "n", Hostname: "h"})
	require.NoError(t, err)
	assert.True(t, regResp.GetValid())
	assert.Equal(t, agentID, regResp.GetAgentId())

	pathResp, err := client.RegisterPath(ctx, &pb.RegisterPathRequest{AgentId: agentID, Path: "metrics"})
	require.NoError(t, err)
	assert.True(t, pathResp.GetValid())
	assert.Equal(t, int64(0), pathResp.GetPathId())
	assert.Equal(t, int32(1), pathResp.GetPathCount())

	sizeResp, err := client.PathMapSize(ctx, &pb.PathMapSizeRequest{AgentId: agentID})
	require.NoError(t, err)
	assert.Equal(t, int32(1), sizeResp.GetPathCount())

	unregResp, err := client.UnregisterPath(ctx, &pb.UnregisterPathRequest{AgentId: agentID, Path: "metrics"})
	require.NoError(t, err)
	assert.True(t, unregResp.GetValid())

	unregResp, err = client.UnregisterPath(ctx, &pb.UnregisterPathRequest{AgentId: agentID, Path: "metrics"})
	require.NoError(t, err)
	assert.False(t, unregResp.GetValid())
}

func TestService_UnknownAgentIsRejected(t *testing.T) {
	_, dial := startTestServer(t)
	client := pb.NewProxyServiceClient(dial())
	ctx := context.Background()

	regResp, err := client.RegisterAgent(ctx, &pb.RegisterAgentRequest{AgentId: "missing"})
	require.NoError(t, err)
	assert.False(t, regResp.GetValid())

	pathResp, err := client.RegisterPath(ctx, &pb.RegisterPathRequest{AgentId: "missing", Path: "metrics"})
	require.NoError(t, err)
	assert.False(t, pathResp.GetValid())
	assert.Equal(t, int64(-1), pathResp.GetPathId())

	hbResp, err := client.SendHeartBeat(ctx, &pb.HeartBeatRequest{AgentId: "missing"})
	require.NoError(t, err)
	assert.False(t, hbResp.GetValid())

	stream, err := client.ReadRequestsFromProxy(ctx, &pb.AgentInfo{AgentId: "missing"})
	require.NoError(t, err)
	_, err = stream.Recv()
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestService_AgentIDFromMetadata(t *testing.T) {
	registry, dial := startTestServer(t)
	client := pb.NewProxyServiceClient(dial())

	agentID := connectAgent(t, client)
	ctx := metadata.AppendToOutgoingContext(context.Background(), pb.AgentIDHeader, agentID)

	resp, err := client.RegisterPath(ctx, &pb.RegisterPathRequest{Path: "metrics"})
	require.NoError(t, err)
	assert.True(t, resp.GetValid())

	owner, ok := registry.AgentForPath("metrics")
	require.True(t, ok)
	assert.Equal(t, agentID, owner.ID)
}

func TestService_HeartbeatMarksActivity(t *testing.T) {
	registry, dial := startTestServer(t)
	client := pb.NewProxyServiceClient(dial())

	agentID := connectAgent(t, client)
	agent, _ := registry.Agent(agentID)
	before := agent.LastActivity()
	time.Sleep(5 * time.Millisecond)

	resp, err := client.SendHeartBeat(context.Background(), &pb.HeartBeatRequest{AgentId: agentID})
	require.NoError(t, err)
	assert.True(t, resp.GetValid())
	assert.True(t, agent.LastActivity().After(before))
}

func TestService_ScrapeRoundTripOverStreams(t *testing.T) {
	registry, dial := startTestServer(t)
	client := pb.NewProxyServiceClient(dial())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agentID := connectAgent(t, client)
	_, err := client.RegisterPath(ctx, &pb.RegisterPathRequest{AgentId: agentID, Path: "metrics"})
	require.NoError(t, err)

	reader, err := client.ReadRequestsFromProxy(ctx, &pb.AgentInfo{AgentId: agentID})
	require.NoError(t, err)
	writer, err := client.WriteResponsesToProxy(ctx)
	require.NoError(t, err)

	type result struct {
		resp *pb.ScrapeResponse
		err  error
	}
	results := make(chan result, 1)
	go func() {
		resp, err := registry.Scrape(context.Background(), "/metrics")
		results <- result{resp, err}
	}()

	req, err := reader.Recv()
	require.NoError(t, err)
	assert.Equal(t, agentID, req.GetAgentId())
	assert.Equal(t, "metrics", req.GetPath())

	// A response for an unknown id is dropped without breaking the stream.
	require.NoError(t, writer.Send(&pb.ScrapeResponse{ScrapeId: req.GetScrapeId() + 1000, AgentId: agentID, Valid: true}))
	require.NoError(t, writer.Send(&pb.ScrapeResponse{
		ScrapeId:    req.GetScrapeId(),
		AgentId:     agentID,
		Valid:       true,
		StatusCode:  200,
		Text:        "up 1",
		ContentType: "text/plain",
	}))

	select {
	case res := <-results:
		require.NoError(t, res.err)
		assert.True(t, res.resp.GetValid())
		assert.Equal(t, int32(200), res.resp.GetStatusCode())
		assert.Equal(t, "up 1", res.resp.GetText())
	case <-time.After(2 * time.Second):
		t.Fatal("scrape did not complete")
	}

	_, err = writer.CloseAndRecv()
	assert.NoError(t, err)
}

// failingRequestStream is a request stream whose transport has gone away.
type failingRequestStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *failingRequestStream) Context() context.Context { return s.ctx }

func (s *failingRequestStream) Send(*pb.ScrapeRequest) error {
	return status.Error(codes.Unavailable, "transport is closing")
}

func TestService_FailedSendFailsScrape(t *testing.T) {
	registry := newTestRegistry(t, testSettings())
	srv := newProxyServer(registry, 10*time.Millisecond, testLogger())

	agent := registry.ConnectAgent("conn-1")
	_, _, err := registry.RegisterPath(agent.ID, "metrics")
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() {
		_, err := registry.Scrape(context.Background(), "metrics")
		errc <- err
	}()
	require.Eventually(t, func() bool { return agent.QueueDepth() == 1 }, time.Second, 5*time.Millisecond)

	err = srv.ReadRequestsFromProxy(&pb.AgentInfo{AgentId: agent.ID}, &failingRequestStream{ctx: context.Background()})
	require.Error(t, err)

	// The scrape timeout is 2s; the caller must not wait for it.
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrAgentGone)
	case <-time.After(time.Second):
		t.Fatal("scrape still waiting after the send failed")
	}
	assert.Equal(t, 0, registry.PendingCount())
}

func TestService_OpeningStreamsMarksActivity(t *testing.T) {
	registry, dial := startTestServer(t)
	client := pb.NewProxyServiceClient(dial())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agentID := connectAgent(t, client)
	agent, ok := registry.Agent(agentID)
	require.True(t, ok)

	before := agent.LastActivity()
	time.Sleep(5 * time.Millisecond)
	_, err := client.ReadRequestsFromProxy(ctx, &pb.AgentInfo{AgentId: agentID})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return agent.LastActivity().After(before) }, time.Second, 5*time.Millisecond)

	before = agent.LastActivity()
	time.Sleep(5 * time.Millisecond)
	_, err = client.WriteResponsesToProxy(metadata.AppendToOutgoingContext(ctx, pb.AgentIDHeader, agentID))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return agent.LastActivity().After(before) }, time.Second, 5*time.Millisecond)
}

func TestService_TransportCloseRemovesAgent(t *testing.T) {
	registry, dial := startTestServer(t)
	conn := dial()
	client := pb.NewProxyServiceClient(conn)

	agentID := connectAgent(t, client)
	_, err := client.RegisterPath(context.Background(), &pb.RegisterPathRequest{AgentId: agentID, Path: "metrics"})
	require.NoError(t, err)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		_, ok := registry.Agent(agentID)
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, registry.PathCount())
}
