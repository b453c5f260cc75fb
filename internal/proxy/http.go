// ABOUTME: HTTP handlers for the proxy: the scrape entry point, health, and the agent API.
// ABOUTME: Scrape errors map to 404/502/503/504 so scrapers see why a target is down.

package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// AgentHistoryEvent is one entry in GET /api/agents/{id}/history.
type AgentHistoryEvent struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Detail    string `json:"detail"`
	Timestamp string `json:"timestamp"`
}

// registerRoutes installs all proxy HTTP routes on mux.
func (p *Proxy) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", p.handleHealth)
	mux.HandleFunc("GET /health/ready", p.handleReady)
	mux.HandleFunc("GET /api/agents", p.handleListAgents)
	mux.HandleFunc("GET /api/agents/{id}/history", p.handleAgentHistory)
	if p.config.Metrics.Enabled {
		mux.Handle("GET "+p.config.Metrics.Path, p.metricsHandler())
	}
	mux.HandleFunc("GET /{path...}", p.handleScrape)
}

// handleHealth returns 200 OK if the server is alive.
func (p *Proxy) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 OK if at least one agent is connected.
func (p *Proxy) handleReady(w http.ResponseWriter, r *http.Request) {
	n := p.registry.AgentCount()
	if n == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no agents connected"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "ready (%d agents, %d paths)", n, p.registry.PathCount())
}

// handleListAgents returns a JSON snapshot of every connected agent.
func (p *Proxy) handleListAgents(w http.ResponseWriter, r *http.Request) {
	agents := p.registry.Agents()
	response := make([]AgentInfo, 0, len(agents))
	for _, a := range agents {
		response = append(response, a.Info())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleAgentHistory returns recorded lifecycle events for an agent. History
// outlives the agent, so swept agents can still be inspected.
func (p *Proxy) handleAgentHistory(w http.ResponseWriter, r *http.Request) {
	agentID := r.PathValue("id")
	if agentID == "" {
		p.sendJSONError(w, http.StatusBadRequest, "agent_id is required")
		return
	}

	// Parse optional limit parameter (default 20, max 100)
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			p.sendJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, 100)
	}

	events, err := p.registry.History(r.Context(), agentID, limit)
	if err != nil {
		p.logger.Error("failed to list agent events", "agent_id", agentID, "error", err)
		p.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]AgentHistoryEvent, len(events))
	for i, evt := range events {
		response[i] = AgentHistoryEvent{
			ID:        evt.ID,
			Kind:      string(evt.Kind),
			Detail:    evt.Detail,
			Timestamp: evt.Timestamp.Format(time.RFC3339Nano),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleScrape relays GET /{path} to the agent that registered path.
func (p *Proxy) handleScrape(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
	if path == "" {
		http.Error(w, "no path specified", http.StatusNotFound)
		return
	}

	resp, err := p.registry.Scrape(r.Context(), path)
	if err != nil {
		code := scrapeErrorStatus(err)
		p.logger.Debug("scrape failed", "path", path, "status", code, "error", err)
		http.Error(w, err.Error(), code)
		return
	}

	code := int(resp.GetStatusCode())
	if !resp.GetValid() {
		if code < 400 {
			code = http.StatusBadGateway
		}
		http.Error(w, resp.GetText(), code)
		return
	}

	if code == 0 {
		code = http.StatusOK
	}
	if ct := resp.GetContentType(); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(code)
	_, _ = w.Write([]byte(resp.GetText()))
}

// scrapeErrorStatus maps a Registry.Scrape error to an HTTP status.
func scrapeErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoAgentForPath):
		return http.StatusNotFound
	case errors.Is(err, ErrQueueSaturated), errors.Is(err, ErrAgentGone), errors.Is(err, ErrProxyStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrScrapeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (p *Proxy) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
