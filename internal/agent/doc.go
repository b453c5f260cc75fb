// ABOUTME: Package documentation for the scrape agent.
// ABOUTME: Covers the connection cycle, the fetch pipeline, and identity propagation.

// Package agent implements the scrape agent that runs inside a private
// network and answers scrapes forwarded by the proxy.
//
// # Connection cycle
//
// Run loops through DISCONNECTED, CONNECTING, CONNECTED and STREAMING until
// its context is canceled. Each cycle:
//
//  1. ConnectAgent. The proxy returns the agent id in the "agent-id"
//     response header; the client interceptors capture it and attach it to
//     every later call.
//  2. RegisterAgent with the configured name and the local hostname.
//  3. RegisterPath for every configured path. The first failure aborts the
//     cycle.
//  4. Stream: a reader receives scrape requests, fetch workers query the
//     targets, and a writer sends results back. An idle heartbeat keeps the
//     proxy from evicting the agent while no responses flow.
//
// The cycle ends when the reader or writer stops. Reconnects are paced by a
// token bucket holding one attempt per reconnect pause, so the first attempt
// is immediate. A gRPC connection that already produced an agent id is
// replaced before the next attempt.
//
// # Fetch pipeline
//
// Each request is fetched on its own goroutine, gated by a weighted
// semaphore of max_concurrent_fetches. Results go to a bounded queue that
// the single writer drains; when it is full the workers block.
//
// Unknown paths and unreachable targets are answered with valid=false and
// status 404. Non-2xx target responses are answered with valid=false and the
// target's status.
package agent
