// ABOUTME: End-to-end tests for the agent against an in-process proxy.
// ABOUTME: Covers registration, scrape relay, idle heartbeats, reconnects, and path management.

package agent

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/scrape-relay/internal/config"
)

func metricsTarget(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		_, _ = io.WriteString(w, "up 1")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "DISCONNECTED", StateDisconnected.String())
	assert.Equal(t, "CONNECTING", StateConnecting.String())
	assert.Equal(t, "CONNECTED", StateConnected.String())
	assert.Equal(t, "STREAMING", StateStreaming.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestAgent_NotConnected(t *testing.T) {
	a := New(testAgentConfig("127.0.0.1:1"), testLogger())
	ctx := context.Background()

	assert.Equal(t, StateDisconnected, a.State())
	assert.Empty(t, a.AgentID())
	assert.ErrorIs(t, a.RegisterPath(ctx, "/x", "http://localhost/x"), ErrNotConnected)
	assert.ErrorIs(t, a.UnregisterPath(ctx, "/x"), ErrNotConnected)
	_, err := a.PathMapSize(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.AwaitInitialConnection(waitCtx), context.DeadlineExceeded)
}

func TestAgent_RegisterPathValidation(t *testing.T) {
	a := New(testAgentConfig("127.0.0.1:1"), testLogger())
	assert.ErrorIs(t, a.RegisterPath(context.Background(), "/", "http://localhost"), ErrInvalidPath)
	assert.ErrorIs(t, a.RegisterPath(context.Background(), "/x", ""), ErrInvalidPath)
	assert.ErrorIs(t, a.UnregisterPath(context.Background(), ""), ErrInvalidPath)
}

func TestAgent_RelaysMetricsScrape(t *testing.T) {
	p := startProxy(t, testProxySettings())
	target := metricsTarget(t)

	a := New(testAgentConfig(p.GRPCAddr, config.PathConfig{Name: "metrics", Path: "/metrics", URL: target.URL}), testLogger())
	startAgent(t, a)

	assert.Equal(t, StateStreaming, a.State())
	require.NotEmpty(t, a.AgentID())

	paths := a.Paths()
	require.Len(t, paths, 1)
	assert.Equal(t, "metrics", paths[0].Path)
	assert.Equal(t, int64(0), paths[0].PathID)

	size, err := a.PathMapSize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	resp, err := p.Registry().Scrape(context.Background(), "/metrics")
	require.NoError(t, err)
	assert.True(t, resp.GetValid())
	assert.Equal(t, int32(200), resp.GetStatusCode())
	assert.Equal(t, "up 1", resp.GetText())

	code, body := httpGet(t, p.HTTPURL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "up 1", body)
}

func TestAgent_UnknownTargetPathReturnsFailure(t *testing.T) {
	p := startProxy(t, testProxySettings())

	a := New(testAgentConfig(p.GRPCAddr, config.PathConfig{Name: "down", Path: "/down", URL: "http://127.0.0.1:1/metrics"}), testLogger())
	startAgent(t, a)

	resp, err := p.Registry().Scrape(context.Background(), "/down")
	require.NoError(t, err)
	assert.False(t, resp.GetValid())
	assert.Equal(t, int32(http.StatusNotFound), resp.GetStatusCode())

	code, _ := httpGet(t, p.HTTPURL+"/unknown")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAgent_IdleHeartbeatPreventsEviction(t *testing.T) {
	settings := testProxySettings()
	settings.MaxAgentInactivity = 600 * time.Millisecond
	settings.StaleAgentCheckInterval = 100 * time.Millisecond
	p := startProxy(t, settings)

	a := New(testAgentConfig(p.GRPCAddr), testLogger())
	startAgent(t, a)
	agentID := a.AgentID()

	time.Sleep(1500 * time.Millisecond)

	_, ok := p.Registry().Agent(agentID)
	assert.True(t, ok, "agent should survive past the inactivity window")
	assert.Equal(t, agentID, a.AgentID())
	assert.Equal(t, StateStreaming, a.State())
}

func TestAgent_ReconnectsAfterEviction(t *testing.T) {
	settings := testProxySettings()
	settings.MaxAgentInactivity = 300 * time.Millisecond
	settings.StaleAgentCheckInterval = 50 * time.Millisecond
	p := startProxy(t, settings)
	target := metricsTarget(t)

	cfg := testAgentConfig(p.GRPCAddr, config.PathConfig{Name: "metrics", Path: "/metrics", URL: target.URL})
	cfg.Agent.Heartbeat.Disabled = true
	a := New(cfg, testLogger())
	startAgent(t, a)
	first := a.AgentID()

	require.Eventually(t, func() bool {
		id := a.AgentID()
		return id != "" && id != first && a.State() == StateStreaming
	}, 5*time.Second, 20*time.Millisecond)

	_, ok := p.Registry().Agent(first)
	assert.False(t, ok)
	owner, ok := p.Registry().AgentForPath("/metrics")
	require.True(t, ok)
	assert.Equal(t, a.AgentID(), owner.ID)
}

func TestAgent_DynamicPathsSurviveReconnect(t *testing.T) {
	settings := testProxySettings()
	settings.MaxAgentInactivity = 300 * time.Millisecond
	settings.StaleAgentCheckInterval = 50 * time.Millisecond
	p := startProxy(t, settings)
	target := metricsTarget(t)

	cfg := testAgentConfig(p.GRPCAddr)
	cfg.Agent.Heartbeat.Disabled = true
	a := New(cfg, testLogger())
	startAgent(t, a)

	var err error
	require.Eventually(t, func() bool {
		err = a.RegisterPath(context.Background(), "/dynamic", target.URL)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	first := a.AgentID()

	require.Eventually(t, func() bool {
		id := a.AgentID()
		if id == "" || id == first || a.State() != StateStreaming {
			return false
		}
		owner, ok := p.Registry().AgentForPath("dynamic")
		return ok && owner.ID == id
	}, 5*time.Second, 20*time.Millisecond)
}

func TestAgent_UnregisterPath(t *testing.T) {
	p := startProxy(t, testProxySettings())
	target := metricsTarget(t)

	a := New(testAgentConfig(p.GRPCAddr, config.PathConfig{Name: "metrics", Path: "/metrics", URL: target.URL}), testLogger())
	startAgent(t, a)

	require.NoError(t, a.UnregisterPath(context.Background(), "/metrics"))
	assert.Empty(t, a.Paths())

	_, ok := p.Registry().AgentForPath("/metrics")
	assert.False(t, ok)

	assert.ErrorIs(t, a.UnregisterPath(context.Background(), "/metrics"), ErrRegistrationRejected)
}

func TestAgent_HealthEndpoint(t *testing.T) {
	p := startProxy(t, testProxySettings())
	a := New(testAgentConfig(p.GRPCAddr), testLogger())

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	code, body := httpGet(t, srv.URL+"/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, "DISCONNECTED")

	startAgent(t, a)

	code, body = httpGet(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "STREAMING")
	assert.Contains(t, body, a.AgentID())

	code, body = httpGet(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `scrape_relay_agent_connects_total{result="success"} 1`)
}
