// ABOUTME: ScrapeRequest bridges one inbound HTTP scrape to its streamed agent response.
// ABOUTME: A write-once completion cell: the first Complete or Fail wins, later ones are no-ops.

package proxy

import (
	"context"
	"sync"
	"time"

	pb "github.com/2389/scrape-relay/proto/relay"
)

// ScrapeRequest is one in-flight scrape owned by an agent.
type ScrapeRequest struct {
	ID        int64
	Path      string
	CreatedAt time.Time
	Agent     *AgentContext

	once sync.Once
	done chan struct{}
	resp *pb.ScrapeResponse
	err  error
}

func newScrapeRequest(id int64, path string, agent *AgentContext) *ScrapeRequest {
	return &ScrapeRequest{
		ID:        id,
		Path:      path,
		CreatedAt: time.Now(),
		Agent:     agent,
		done:      make(chan struct{}),
	}
}

// Complete stores the agent's response and wakes the waiter. Returns false
// if the request was already resolved.
func (r *ScrapeRequest) Complete(resp *pb.ScrapeResponse) bool {
	return r.resolve(resp, nil)
}

// Fail resolves the request with err. Returns false if the request was
// already resolved.
func (r *ScrapeRequest) Fail(err error) bool {
	return r.resolve(nil, err)
}

func (r *ScrapeRequest) resolve(resp *pb.ScrapeResponse, err error) bool {
	resolved := false
	r.once.Do(func() {
		r.resp = resp
		r.err = err
		close(r.done)
		resolved = true
	})
	return resolved
}

// Done is closed once the request is resolved.
func (r *ScrapeRequest) Done() <-chan struct{} {
	return r.done
}

// Result returns the outcome. Only meaningful after Done is closed.
func (r *ScrapeRequest) Result() (*pb.ScrapeResponse, error) {
	<-r.done
	return r.resp, r.err
}

// Wait blocks until the request resolves, timeout elapses, or ctx is done.
// A timeout resolves the request with ErrScrapeTimeout.
func (r *ScrapeRequest) Wait(ctx context.Context, timeout time.Duration) (*pb.ScrapeResponse, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-r.done:
	case <-timer.C:
		r.Fail(ErrScrapeTimeout)
	case <-ctx.Done():
		r.Fail(ctx.Err())
	}
	return r.Result()
}

// Age returns how long ago the request was created.
func (r *ScrapeRequest) Age() time.Duration {
	return time.Since(r.CreatedAt)
}

func (r *ScrapeRequest) message() *pb.ScrapeRequest {
	return &pb.ScrapeRequest{
		AgentId:  r.Agent.ID,
		ScrapeId: r.ID,
		Path:     r.Path,
	}
}
