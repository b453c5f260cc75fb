// Package proxy implements the scrape-relay proxy: the side that scrapers
// talk to over HTTP and agents dial into over gRPC.
//
// # Architecture
//
// The proxy consists of:
//
//   - Registry: agentId -> AgentContext and path -> AgentContext tables,
//     id generators, the inactivity sweep, and the in-flight scrape table
//   - AgentContext: one connected agent's paths, request queue, and activity clock
//   - ScrapeRequest: write-once cell bridging an HTTP scrape to the agent's response
//   - proxyServer: the ProxyService gRPC handlers
//   - connTracker: a gRPC stats.Handler that removes agents when their transport ends
//   - Proxy: orchestrates the gRPC and HTTP servers and their lifecycle
//
// # Scrape Flow
//
//  1. GET /{path} arrives; the registry looks up the owning agent
//  2. A ScrapeRequest with a fresh scrape id enters the in-flight table and
//     the agent's queue (a full queue fails immediately)
//  3. The agent's ReadRequestsFromProxy stream delivers it
//  4. The agent fetches the target and writes the result on WriteResponsesToProxy
//  5. The response's scrape id is removed from the in-flight table, which
//     hands ownership to exactly one resolver; the HTTP handler unblocks
//
// Responses for ids no longer in the table (timed out, agent swept) are
// logged and dropped.
//
// # Liveness
//
// Every RPC from an agent marks its context active, including opening either
// stream and responses whose scrape id is no longer in flight. The sweep
// removes agents idle past proxy.max_agent_inactivity together with their
// paths, failing their queued and in-flight scrapes. A transport disconnect
// does the same immediately.
//
// # HTTP Endpoints
//
//	GET /health                     - liveness
//	GET /health/ready               - 503 until an agent is connected
//	GET /api/agents                 - connected agents
//	GET /api/agents/{id}/history    - recorded lifecycle events
//	GET /proxy/metrics              - Prometheus metrics (when enabled)
//	GET /{path...}                  - relayed scrape
package proxy
