// ABOUTME: gRPC stats.Handler that tags each transport connection with an id.
// ABOUTME: When a connection ends, every agent bound to it is removed from the registry.

package proxy

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/stats"
)

type connIDKey struct{}

// connIDFrom returns the transport connection id tagged by connTracker.
func connIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(connIDKey{}).(string)
	return id
}

// connTracker disconnects agents when their transport goes away, without
// waiting for the inactivity sweep.
type connTracker struct {
	registry *Registry
	logger   *slog.Logger
}

func newConnTracker(registry *Registry, logger *slog.Logger) *connTracker {
	return &connTracker{registry: registry, logger: logger}
}

func (t *connTracker) TagConn(ctx context.Context, info *stats.ConnTagInfo) context.Context {
	id := uuid.NewString()
	t.logger.Debug("transport connected", "conn_id", id, "remote_addr", info.RemoteAddr)
	return context.WithValue(ctx, connIDKey{}, id)
}

func (t *connTracker) HandleConn(ctx context.Context, s stats.ConnStats) {
	if _, ok := s.(*stats.ConnEnd); !ok {
		return
	}
	id := connIDFrom(ctx)
	if id == "" {
		return
	}
	t.logger.Debug("transport disconnected", "conn_id", id)
	t.registry.DisconnectConn(id)
}

func (t *connTracker) TagRPC(ctx context.Context, _ *stats.RPCTagInfo) context.Context {
	return ctx
}

func (t *connTracker) HandleRPC(context.Context, stats.RPCStats) {}

var _ stats.Handler = (*connTracker)(nil)
