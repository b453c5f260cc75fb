// ABOUTME: Tests for the Proxy orchestrator and its HTTP endpoints.
// ABOUTME: Drives the scrape endpoint through httptest with an in-process fake agent.

package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/scrape-relay/internal/config"
	pb "github.com/2389/scrape-relay/proto/relay"
)

// freeAddr returns a currently unused local address.
func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

// testConfig creates a minimal config for testing with available ports.
func testConfig(t *testing.T) *config.ProxyConfig {
	t.Helper()
	return &config.ProxyConfig{
		Server: config.ServerConfig{
			GRPCAddr: freeAddr(t),
			HTTPAddr: freeAddr(t),
		},
		Database: config.DatabaseConfig{Path: ":memory:"},
		Proxy:    testSettings(),
		Metrics:  config.MetricsConfig{Enabled: true, Path: config.DefaultProxyMetricsPath},
	}
}

// newTestProxy creates a proxy and an httptest server around its handler.
func newTestProxy(t *testing.T) (*Proxy, *httptest.Server) {
	t.Helper()
	p, err := New(testConfig(t), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { p.Shutdown(context.Background()) })

	srv := httptest.NewServer(p.httpServer.Handler)
	t.Cleanup(srv.Close)
	return p, srv
}

func get(t *testing.T, url string) (int, string, http.Header) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

func TestProxyRunAndShutdown(t *testing.T) {
	p, err := New(testConfig(t), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Run() returned unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("proxy did not shutdown in time")
	}
}

func TestProxyHealthAndReady(t *testing.T) {
	p, srv := newTestProxy(t)

	code, body, _ := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)

	code, _, _ = get(t, srv.URL+"/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	p.Registry().ConnectAgent("conn-1")
	code, body, _ = get(t, srv.URL+"/health/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "1 agents")
}

func TestProxyScrapeUnknownPath(t *testing.T) {
	_, srv := newTestProxy(t)

	code, _, _ := get(t, srv.URL+"/unknown")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProxyScrapeSuccess(t *testing.T) {
	p, srv := newTestProxy(t)
	r := p.Registry()

	agent := r.ConnectAgent("conn-1")
	_, _, err := r.RegisterPath(agent.ID, "node/metrics")
	require.NoError(t, err)
	serveAgent(r, agent, okResponse("up 1"))

	code, body, header := get(t, srv.URL+"/node/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "up 1", body)
	assert.Equal(t, "text/plain", header.Get("Content-Type"))
}

func TestProxyScrapeInvalidResultUsesAgentStatus(t *testing.T) {
	p, srv := newTestProxy(t)
	r := p.Registry()

	agent := r.ConnectAgent("conn-1")
	_, _, err := r.RegisterPath(agent.ID, "metrics")
	require.NoError(t, err)
	serveAgent(r, agent, func(req *ScrapeRequest) *pb.ScrapeResponse {
		return &pb.ScrapeResponse{ScrapeId: req.ID, Valid: false, StatusCode: 404, Text: "invalid path"}
	})

	code, body, _ := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "invalid path")
}

func TestProxyScrapeInvalidResultWithoutStatus(t *testing.T) {
	p, srv := newTestProxy(t)
	r := p.Registry()

	agent := r.ConnectAgent("conn-1")
	_, _, err := r.RegisterPath(agent.ID, "metrics")
	require.NoError(t, err)
	serveAgent(r, agent, func(req *ScrapeRequest) *pb.ScrapeResponse {
		return &pb.ScrapeResponse{ScrapeId: req.ID, Valid: false, Text: "connection refused"}
	})

	code, _, _ := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusBadGateway, code)
}

func TestScrapeErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, scrapeErrorStatus(ErrNoAgentForPath))
	assert.Equal(t, http.StatusServiceUnavailable, scrapeErrorStatus(ErrQueueSaturated))
	assert.Equal(t, http.StatusServiceUnavailable, scrapeErrorStatus(ErrAgentGone))
	assert.Equal(t, http.StatusGatewayTimeout, scrapeErrorStatus(ErrScrapeTimeout))
	assert.Equal(t, http.StatusBadGateway, scrapeErrorStatus(errors.New("boom")))
}

func TestProxyListAgentsAndHistory(t *testing.T) {
	p, srv := newTestProxy(t)
	r := p.Registry()

	agent := r.ConnectAgent("conn-1")
	require.NoError(t, r.RegisterAgent(agent.ID, "dc1", "host-a"))
	_, _, err := r.RegisterPath(agent.ID, "metrics")
	require.NoError(t, err)

	code, body, _ := get(t, srv.URL+"/api/agents")
	require.Equal(t, http.StatusOK, code)

	var agents []AgentInfo
	require.NoError(t, json.Unmarshal([]byte(body), &agents))
	require.Len(t, agents, 1)
	assert.Equal(t, agent.ID, agents[0].ID)
	assert.Equal(t, "dc1", agents[0].Name)
	assert.Equal(t, []string{"metrics"}, agents[0].Paths)

	r.DisconnectConn("conn-1")

	code, body, _ = get(t, srv.URL+"/api/agents/"+agent.ID+"/history?limit=10")
	require.Equal(t, http.StatusOK, code)

	var history []AgentHistoryEvent
	require.NoError(t, json.Unmarshal([]byte(body), &history))
	require.Len(t, history, 4)
	assert.Equal(t, "disconnect", history[0].Kind)
	assert.Equal(t, "connect", history[3].Kind)

	code, _, _ = get(t, srv.URL+"/api/agents/"+agent.ID+"/history?limit=abc")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestProxyMetricsEndpoint(t *testing.T) {
	p, srv := newTestProxy(t)
	r := p.Registry()

	agent := r.ConnectAgent("conn-1")
	_, _, err := r.RegisterPath(agent.ID, "metrics")
	require.NoError(t, err)
	serveAgent(r, agent, okResponse("up 1"))

	// /metrics is a relayed path, not the proxy's own metrics.
	code, body, _ := get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "up 1", body)

	code, body, _ = get(t, srv.URL+config.DefaultProxyMetricsPath)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "scrape_relay_proxy_agents 1")
	assert.Contains(t, body, "scrape_relay_proxy_paths 1")
	assert.True(t, strings.Contains(body, `scrape_relay_proxy_scrape_requests_total{result="success"} 1`))
}
