// ABOUTME: Idle heartbeat that keeps the agent alive on the proxy while no responses flow.
// ABOUTME: Runs only while streaming; a rejected heartbeat ends the connection cycle.

package agent

import (
	"context"
	"fmt"
	"time"

	pb "github.com/2389/scrape-relay/proto/relay"
)

// heartbeat sends a heartbeat on each tick where nothing has been sent for
// longer than maxInactivity.
func (s *session) heartbeat(ctx context.Context, checkInterval, maxInactivity time.Duration) error {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if s.disconnected.Load() {
			return nil
		}
		if s.sinceLastSent() <= maxInactivity {
			continue
		}

		resp, err := s.client.SendHeartBeat(ctx, &pb.HeartBeatRequest{AgentId: s.agentID})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.disconnected.Store(true)
			return fmt.Errorf("sending heartbeat: %w", err)
		}
		s.agent.metrics.heartbeat()
		s.markSent()

		if !resp.GetValid() {
			s.logger.Warn("heartbeat rejected by proxy, reconnecting")
			s.disconnected.Store(true)
			return ErrHeartbeatRejected
		}
		s.logger.Debug("heartbeat sent")
	}
}
