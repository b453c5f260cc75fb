// ABOUTME: Optional local HTTP listener for the agent's health and metrics.
// ABOUTME: /health reports 200 only while the agent is streaming with the proxy.

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type healthResponse struct {
	Status  string `json:"status"`
	State   string `json:"state"`
	AgentID string `json:"agent_id,omitempty"`
	Paths   int    `json:"paths"`
}

func (a *Agent) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", a.handleHealth)
	if a.cfg.Metrics.Enabled {
		path := a.cfg.Metrics.Path
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		mux.Handle("GET "+path, promhttp.HandlerFor(a.metricsReg, promhttp.HandlerOpts{}))
	}
}

func (a *Agent) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := a.State()
	resp := healthResponse{
		Status:  "ok",
		State:   state.String(),
		AgentID: a.AgentID(),
		Paths:   len(a.Paths()),
	}
	code := http.StatusOK
	if state != StateStreaming {
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// startAdmin serves the admin routes when an address is configured. The
// returned func shuts the listener down.
func (a *Agent) startAdmin() (func(), error) {
	addr := a.cfg.Admin.HTTPAddr
	if addr == "" {
		return func() {}, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen admin %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("admin server error", "error", err)
		}
	}()
	a.logger.Info("admin server listening", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			a.logger.Warn("admin server shutdown", "error", err)
		}
	}, nil
}
