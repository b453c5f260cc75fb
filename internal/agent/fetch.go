// ABOUTME: Fetches scrape targets over HTTP and queues the results for the response writer.
// ABOUTME: A weighted semaphore caps concurrent fetches; a full response queue blocks workers.

package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	pb "github.com/2389/scrape-relay/proto/relay"
)

// invalidPathStatus is reported when a request names an unknown path or the
// target could not be reached.
const invalidPathStatus = http.StatusNotFound

// Fetcher performs target fetches with a concurrency cap and per-fetch timeout.
type Fetcher struct {
	client  *http.Client
	sem     *semaphore.Weighted
	timeout time.Duration
	metrics *Metrics
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher allowing at most maxConcurrent fetches at once.
func NewFetcher(maxConcurrent int, timeout time.Duration, metrics *Metrics, logger *slog.Logger) *Fetcher {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Fetcher{
		client:  &http.Client{},
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch answers req using the target registered for its path. It always
// returns a response tagged with the request's scrape id.
func (f *Fetcher) Fetch(ctx context.Context, agentID string, req *pb.ScrapeRequest, paths *PathTable) *pb.ScrapeResponse {
	resp := &pb.ScrapeResponse{
		ScrapeId: req.GetScrapeId(),
		AgentId:  agentID,
	}

	pc, ok := paths.Get(req.GetPath())
	if !ok {
		f.logger.Warn("scrape request for unknown path", "path", req.GetPath(), "scrape_id", req.GetScrapeId())
		f.metrics.scrape(resultInvalidPath)
		resp.StatusCode = invalidPathStatus
		resp.Text = fmt.Sprintf("invalid path: %s", req.GetPath())
		return resp
	}

	if err := f.sem.Acquire(ctx, 1); err != nil {
		resp.StatusCode = invalidPathStatus
		resp.Text = err.Error()
		return resp
	}
	defer f.sem.Release(1)

	start := time.Now()
	status, body, contentType, err := f.get(ctx, pc.URL)
	f.metrics.observeFetch(time.Since(start))

	switch {
	case err != nil:
		f.logger.Warn("fetching target", "url", pc.URL, "scrape_id", req.GetScrapeId(), "error", err)
		f.metrics.scrape(resultUnsuccessful)
		if status == 0 {
			status = invalidPathStatus
		}
		resp.StatusCode = int32(status)
		resp.Text = err.Error()
	case status < 200 || status >= 300:
		f.metrics.scrape(resultUnsuccessful)
		resp.StatusCode = int32(status)
	default:
		f.metrics.scrape(resultSuccess)
		resp.Valid = true
		resp.StatusCode = int32(status)
		resp.Text = body
		resp.ContentType = contentType
	}
	return resp
}

func (f *Fetcher) get(ctx context.Context, url string) (status int, body, contentType string, err error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", "", fmt.Errorf("building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", "", fmt.Errorf("reading body: %w", err)
	}
	return resp.StatusCode, string(data), resp.Header.Get("Content-Type"), nil
}

// pipeline dispatches requests to fetch workers and hands finished responses
// to the writer through a bounded queue.
type pipeline struct {
	fetcher   *Fetcher
	paths     *PathTable
	agentID   string
	responses chan *pb.ScrapeResponse
	wg        sync.WaitGroup
}

func newPipeline(fetcher *Fetcher, paths *PathTable, agentID string, queueSize int) *pipeline {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &pipeline{
		fetcher:   fetcher,
		paths:     paths,
		agentID:   agentID,
		responses: make(chan *pb.ScrapeResponse, queueSize),
	}
}

// dispatch fetches req on its own goroutine. The worker blocks while the
// response queue is full and gives up when ctx is done.
func (p *pipeline) dispatch(ctx context.Context, req *pb.ScrapeRequest) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		resp := p.fetcher.Fetch(ctx, p.agentID, req, p.paths)
		select {
		case p.responses <- resp:
		case <-ctx.Done():
		}
	}()
}

// next returns the next queued response, or false if none arrived within
// timeout.
func (p *pipeline) next(ctx context.Context, timeout time.Duration) (*pb.ScrapeResponse, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case resp := <-p.responses:
		return resp, true
	case <-timer.C:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// wait blocks until every dispatched worker has returned.
func (p *pipeline) wait() {
	p.wg.Wait()
}
