// ABOUTME: Client interceptors that carry the proxy-assigned agent id on every call.
// ABOUTME: The id is captured from the ConnectAgent response header and echoed as metadata afterwards.

package agent

import (
	"context"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	pb "github.com/2389/scrape-relay/proto/relay"
)

// identity holds the agent id for one client connection.
type identity struct {
	mu      sync.RWMutex
	agentID string
}

// AgentID returns the captured id, or "" before ConnectAgent succeeds.
func (i *identity) AgentID() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.agentID
}

func (i *identity) set(id string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.agentID = id
}

// outgoing attaches the agent id to ctx when one is known.
func (i *identity) outgoing(ctx context.Context) context.Context {
	if id := i.AgentID(); id != "" {
		return metadata.AppendToOutgoingContext(ctx, pb.AgentIDHeader, id)
	}
	return ctx
}

// UnaryInterceptor captures the agent-id header from ConnectAgent and
// attaches it to every other unary call.
func (i *identity) UnaryInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if method != pb.ProxyService_ConnectAgent_FullMethodName {
			return invoker(i.outgoing(ctx), method, req, reply, cc, opts...)
		}

		var header metadata.MD
		if err := invoker(ctx, method, req, reply, cc, append(opts, grpc.Header(&header))...); err != nil {
			return err
		}
		if ids := header.Get(pb.AgentIDHeader); len(ids) > 0 {
			i.set(ids[0])
		}
		return nil
	}
}

// StreamInterceptor attaches the agent id to every stream.
func (i *identity) StreamInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(i.outgoing(ctx), desc, cc, method, opts...)
	}
}
