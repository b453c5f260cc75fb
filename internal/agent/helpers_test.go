// ABOUTME: Shared fixtures for agent tests: config, silent logger, and an in-process proxy.
// ABOUTME: The proxy runs on real local listeners so the agent exercises the full gRPC path.

package agent

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/2389/scrape-relay/internal/config"
	"github.com/2389/scrape-relay/internal/proxy"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func testAgentConfig(proxyAddr string, paths ...config.PathConfig) *config.AgentConfig {
	cfg := &config.AgentConfig{
		Agent: config.AgentSettings{
			Name:                 "test-agent",
			ProxyAddr:            proxyAddr,
			ResponseQueueSize:    16,
			MaxConcurrentFetches: 4,
			Paths:                paths,
			ReconnectPause:       50 * time.Millisecond,
			ResponsePollInterval: 20 * time.Millisecond,
			FetchTimeout:         2 * time.Second,
			Heartbeat: config.HeartbeatConfig{
				CheckInterval: 50 * time.Millisecond,
				MaxInactivity: 200 * time.Millisecond,
			},
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	return cfg
}

func testProxySettings() config.ProxySettings {
	return config.ProxySettings{
		MaxAgentInactivity:      time.Minute,
		StaleAgentCheckInterval: time.Second,
		ScrapeRequestTimeout:    3 * time.Second,
		ScrapeCheckInterval:     50 * time.Millisecond,
		RequestQueueSize:        16,
		RequestPollInterval:     20 * time.Millisecond,
	}
}

type testProxy struct {
	*proxy.Proxy
	GRPCAddr string
	HTTPURL  string
}

// startProxy runs a proxy on free local ports until the test ends.
func startProxy(t *testing.T, settings config.ProxySettings) *testProxy {
	t.Helper()

	cfg := &config.ProxyConfig{
		Server: config.ServerConfig{
			GRPCAddr: freeAddr(t),
			HTTPAddr: freeAddr(t),
		},
		Database: config.DatabaseConfig{Path: ":memory:"},
		Proxy:    settings,
		Metrics:  config.MetricsConfig{Enabled: true, Path: config.DefaultProxyMetricsPath},
	}

	p, err := proxy.New(cfg, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return &testProxy{Proxy: p, GRPCAddr: cfg.Server.GRPCAddr, HTTPURL: "http://" + cfg.Server.HTTPAddr}
}

// startAgent runs the agent until the test ends and waits for its first session.
func startAgent(t *testing.T, a *Agent) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = a.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, a.AwaitInitialConnection(waitCtx))
}
