// Package config handles configuration loading for scrape-proxy and scrape-agent.
//
// # Overview
//
// Configuration is loaded from YAML files (or TOML, when the file name ends
// in .toml) with environment variable expansion. Zero-valued settings are
// filled by ApplyDefaults before Validate runs.
//
// # Environment Variable Expansion
//
//	tailscale:
//	  auth_key: "${TS_AUTHKEY}"
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax ("500ms", "5s", "1m").
//
// # Proxy
//
//	server:
//	  grpc_addr: "0.0.0.0:50051"  # Agent connections
//	  http_addr: "0.0.0.0:8080"   # Scrape endpoint, health, metrics
//
//	database:
//	  path: ":memory:"            # Agent event log
//
//	proxy:
//	  max_agent_inactivity: "15s"
//	  stale_agent_check_interval: "5s"
//	  scrape_request_timeout: "5s"
//	  scrape_check_interval: "1s"
//	  request_queue_size: 128
//	  request_poll_interval: "500ms"
//
//	metrics:
//	  enabled: true
//	  path: "/proxy/metrics"      # Kept off /metrics, which agents usually register
//
// # Agent
//
//	agent:
//	  name: "dc1-agent"
//	  proxy_addr: "proxy.example.com:50051"
//	  reconnect_pause: "3s"
//	  response_queue_size: 128
//	  response_poll_interval: "200ms"
//	  max_concurrent_fetches: 16
//	  fetch_timeout: "10s"
//	  heartbeat:
//	    check_interval: "500ms"
//	    max_inactivity: "5s"
//	  paths:
//	    - name: "node"
//	      path: "node_metrics"
//	      url: "http://localhost:9100/metrics"
//
//	admin:
//	  http_addr: "127.0.0.1:8093"
//
// # Logging
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
