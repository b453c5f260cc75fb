// ABOUTME: Shared fixtures for proxy tests: settings, silent logger, and a polling fake agent.
// ABOUTME: The fake agent answers queued scrapes directly through the registry.

package proxy

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/2389/scrape-relay/internal/config"
	pb "github.com/2389/scrape-relay/proto/relay"
)

// testLogger creates a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSettings() config.ProxySettings {
	return config.ProxySettings{
		MaxAgentInactivity:      time.Minute,
		StaleAgentCheckInterval: time.Second,
		ScrapeRequestTimeout:    2 * time.Second,
		ScrapeCheckInterval:     50 * time.Millisecond,
		RequestQueueSize:        8,
		RequestPollInterval:     20 * time.Millisecond,
	}
}

func newTestRegistry(t *testing.T, settings config.ProxySettings) *Registry {
	t.Helper()
	r := NewRegistry(settings, nil, nil, testLogger())
	t.Cleanup(r.Close)
	return r
}

// serveAgent answers every scrape queued on agent with respond until the
// agent is closed.
func serveAgent(r *Registry, agent *AgentContext, respond func(*ScrapeRequest) *pb.ScrapeResponse) {
	go func() {
		for !agent.Closed() {
			req, ok := agent.Poll(10 * time.Millisecond)
			if !ok {
				continue
			}
			r.CompleteScrape(respond(req))
		}
	}()
}

func okResponse(text string) func(*ScrapeRequest) *pb.ScrapeResponse {
	return func(req *ScrapeRequest) *pb.ScrapeResponse {
		return &pb.ScrapeResponse{
			ScrapeId:    req.ID,
			AgentId:     req.Agent.ID,
			Valid:       true,
			StatusCode:  200,
			Text:        text,
			ContentType: "text/plain",
		}
	}
}
