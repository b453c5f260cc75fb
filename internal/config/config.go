// ABOUTME: Configuration loading and parsing for scrape-proxy and scrape-agent
// ABOUTME: Supports YAML or TOML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultProxyPort is appended to agent proxy addresses that omit a port.
const DefaultProxyPort = "50051"

// DefaultProxyMetricsPath is where the proxy serves its own metrics.
const DefaultProxyMetricsPath = "/proxy/metrics"

// ProxyConfig represents the complete scrape-proxy configuration
type ProxyConfig struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale" toml:"tailscale"`
	Database  DatabaseConfig  `yaml:"database" toml:"database"`
	Proxy     ProxySettings   `yaml:"proxy" toml:"proxy"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics"`
}

// AgentConfig represents the complete scrape-agent configuration
type AgentConfig struct {
	Agent   AgentSettings `yaml:"agent" toml:"agent"`
	Admin   AdminConfig   `yaml:"admin" toml:"admin"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	GRPCAddr string `yaml:"grpc_addr" toml:"grpc_addr"`
	HTTPAddr string `yaml:"http_addr" toml:"http_addr"`
}

// TailscaleConfig holds Tailscale tsnet configuration
type TailscaleConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`
	Hostname  string `yaml:"hostname" toml:"hostname"`
	AuthKey   string `yaml:"auth_key" toml:"auth_key"`
	StateDir  string `yaml:"state_dir" toml:"state_dir"`
	Ephemeral bool   `yaml:"ephemeral" toml:"ephemeral"`
	HTTPS     bool   `yaml:"https" toml:"https"`   // Serve scrapes over TLS with tailnet certs
	Funnel    bool   `yaml:"funnel" toml:"funnel"` // Enable public Funnel (implies HTTPS)
}

// DatabaseConfig holds the agent event log location
type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// ProxySettings holds routing, queueing, and liveness tuning for the proxy
type ProxySettings struct {
	MaxAgentInactivity      time.Duration `yaml:"-" toml:"-"`
	StaleAgentCheckInterval time.Duration `yaml:"-" toml:"-"`
	ScrapeRequestTimeout    time.Duration `yaml:"-" toml:"-"`
	ScrapeCheckInterval     time.Duration `yaml:"-" toml:"-"`
	RequestPollInterval     time.Duration `yaml:"-" toml:"-"`

	RequestQueueSize int `yaml:"request_queue_size" toml:"request_queue_size"`

	// Raw string values for unmarshaling
	MaxAgentInactivityRaw      string `yaml:"max_agent_inactivity" toml:"max_agent_inactivity"`
	StaleAgentCheckIntervalRaw string `yaml:"stale_agent_check_interval" toml:"stale_agent_check_interval"`
	ScrapeRequestTimeoutRaw    string `yaml:"scrape_request_timeout" toml:"scrape_request_timeout"`
	ScrapeCheckIntervalRaw     string `yaml:"scrape_check_interval" toml:"scrape_check_interval"`
	RequestPollIntervalRaw     string `yaml:"request_poll_interval" toml:"request_poll_interval"`
}

// AgentSettings holds the agent's identity, proxy location, and pipeline tuning
type AgentSettings struct {
	Name                 string          `yaml:"name" toml:"name"`
	ProxyAddr            string          `yaml:"proxy_addr" toml:"proxy_addr"`
	ResponseQueueSize    int             `yaml:"response_queue_size" toml:"response_queue_size"`
	MaxConcurrentFetches int             `yaml:"max_concurrent_fetches" toml:"max_concurrent_fetches"`
	Heartbeat            HeartbeatConfig `yaml:"heartbeat" toml:"heartbeat"`
	Paths                []PathConfig    `yaml:"paths" toml:"paths"`

	ReconnectPause       time.Duration `yaml:"-" toml:"-"`
	ResponsePollInterval time.Duration `yaml:"-" toml:"-"`
	FetchTimeout         time.Duration `yaml:"-" toml:"-"`

	ReconnectPauseRaw       string `yaml:"reconnect_pause" toml:"reconnect_pause"`
	ResponsePollIntervalRaw string `yaml:"response_poll_interval" toml:"response_poll_interval"`
	FetchTimeoutRaw         string `yaml:"fetch_timeout" toml:"fetch_timeout"`
}

// HeartbeatConfig controls the agent's idle heartbeat
type HeartbeatConfig struct {
	Disabled      bool          `yaml:"disabled" toml:"disabled"`
	CheckInterval time.Duration `yaml:"-" toml:"-"`
	MaxInactivity time.Duration `yaml:"-" toml:"-"`

	CheckIntervalRaw string `yaml:"check_interval" toml:"check_interval"`
	MaxInactivityRaw string `yaml:"max_inactivity" toml:"max_inactivity"`
}

// PathConfig maps a proxy path to a target URL reachable from the agent
type PathConfig struct {
	Name string `yaml:"name" toml:"name"`
	Path string `yaml:"path" toml:"path"`
	URL  string `yaml:"url" toml:"url"`
}

// AdminConfig holds the agent's local health/metrics listener
type AdminConfig struct {
	HTTPAddr string `yaml:"http_addr" toml:"http_addr"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// MetricsConfig holds metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

// LoadProxy reads a proxy configuration file from the given path.
// Environment variables in the format ${VAR_NAME} are expanded.
func LoadProxy(path string) (*ProxyConfig, error) {
	var cfg ProxyConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.parseDurations(); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// LoadAgent reads an agent configuration file from the given path.
// Environment variables in the format ${VAR_NAME} are expanded.
func LoadAgent(path string) (*AgentConfig, error) {
	var cfg AgentConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.parseDurations(); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// decodeFile reads, expands, and decodes a YAML or TOML file into out.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, out); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
		return nil
	}

	if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// envVarPattern matches ${VAR_NAME}.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// parseDuration parses raw into *dst when raw is non-empty.
func parseDuration(name, raw string, dst *time.Duration) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing %s %q: %w", name, raw, err)
	}
	*dst = d
	return nil
}

func (c *ProxyConfig) parseDurations() error {
	p := &c.Proxy
	if err := parseDuration("max_agent_inactivity", p.MaxAgentInactivityRaw, &p.MaxAgentInactivity); err != nil {
		return err
	}
	if err := parseDuration("stale_agent_check_interval", p.StaleAgentCheckIntervalRaw, &p.StaleAgentCheckInterval); err != nil {
		return err
	}
	if err := parseDuration("scrape_request_timeout", p.ScrapeRequestTimeoutRaw, &p.ScrapeRequestTimeout); err != nil {
		return err
	}
	if err := parseDuration("scrape_check_interval", p.ScrapeCheckIntervalRaw, &p.ScrapeCheckInterval); err != nil {
		return err
	}
	return parseDuration("request_poll_interval", p.RequestPollIntervalRaw, &p.RequestPollInterval)
}

func (c *AgentConfig) parseDurations() error {
	a := &c.Agent
	if err := parseDuration("reconnect_pause", a.ReconnectPauseRaw, &a.ReconnectPause); err != nil {
		return err
	}
	if err := parseDuration("response_poll_interval", a.ResponsePollIntervalRaw, &a.ResponsePollInterval); err != nil {
		return err
	}
	if err := parseDuration("fetch_timeout", a.FetchTimeoutRaw, &a.FetchTimeout); err != nil {
		return err
	}
	if err := parseDuration("heartbeat.check_interval", a.Heartbeat.CheckIntervalRaw, &a.Heartbeat.CheckInterval); err != nil {
		return err
	}
	return parseDuration("heartbeat.max_inactivity", a.Heartbeat.MaxInactivityRaw, &a.Heartbeat.MaxInactivity)
}

// ApplyDefaults fills zero-valued settings.
func (c *ProxyConfig) ApplyDefaults() {
	p := &c.Proxy
	if p.MaxAgentInactivity == 0 {
		p.MaxAgentInactivity = 15 * time.Second
	}
	if p.StaleAgentCheckInterval == 0 {
		p.StaleAgentCheckInterval = 5 * time.Second
	}
	if p.ScrapeRequestTimeout == 0 {
		p.ScrapeRequestTimeout = 5 * time.Second
	}
	if p.ScrapeCheckInterval == 0 {
		p.ScrapeCheckInterval = time.Second
	}
	if p.RequestPollInterval == 0 {
		p.RequestPollInterval = 500 * time.Millisecond
	}
	if p.RequestQueueSize == 0 {
		p.RequestQueueSize = 128
	}
	if c.Database.Path == "" {
		c.Database.Path = ":memory:"
	}
	// "/metrics" is the most common scrape path, so the proxy's own metrics live elsewhere.
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultProxyMetricsPath
	}
}

// ApplyDefaults fills zero-valued settings.
func (c *AgentConfig) ApplyDefaults() {
	a := &c.Agent
	if a.Name == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "unknown"
		}
		a.Name = "Unnamed-" + host
	}
	if a.ProxyAddr == "" {
		a.ProxyAddr = "localhost:" + DefaultProxyPort
	} else if !strings.Contains(a.ProxyAddr, ":") {
		a.ProxyAddr = a.ProxyAddr + ":" + DefaultProxyPort
	}
	if a.ReconnectPause == 0 {
		a.ReconnectPause = 3 * time.Second
	}
	if a.ResponseQueueSize == 0 {
		a.ResponseQueueSize = 128
	}
	if a.ResponsePollInterval == 0 {
		a.ResponsePollInterval = 200 * time.Millisecond
	}
	if a.MaxConcurrentFetches == 0 {
		a.MaxConcurrentFetches = 16
	}
	if a.FetchTimeout == 0 {
		a.FetchTimeout = 10 * time.Second
	}
	if a.Heartbeat.CheckInterval == 0 {
		a.Heartbeat.CheckInterval = 500 * time.Millisecond
	}
	if a.Heartbeat.MaxInactivity == 0 {
		a.Heartbeat.MaxInactivity = 5 * time.Second
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *ProxyConfig) Validate() error {
	// Server addresses are required unless Tailscale is enabled
	if !c.Tailscale.Enabled {
		if c.Server.GRPCAddr == "" {
			return fmt.Errorf("server.grpc_addr is required (or enable tailscale)")
		}
		if c.Server.HTTPAddr == "" {
			return fmt.Errorf("server.http_addr is required (or enable tailscale)")
		}
	}

	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}

	if c.Proxy.RequestQueueSize < 0 {
		return fmt.Errorf("proxy.request_queue_size must be positive")
	}

	// Stale routes may otherwise outlive the inactivity window by a full interval.
	if c.Proxy.StaleAgentCheckInterval > c.Proxy.MaxAgentInactivity {
		return fmt.Errorf("proxy.stale_agent_check_interval (%s) exceeds proxy.max_agent_inactivity (%s)",
			c.Proxy.StaleAgentCheckInterval, c.Proxy.MaxAgentInactivity)
	}

	return nil
}

// Validate checks that all required configuration fields are present and valid.
func (c *AgentConfig) Validate() error {
	if c.Agent.ResponseQueueSize < 0 {
		return fmt.Errorf("agent.response_queue_size must be positive")
	}
	if c.Agent.MaxConcurrentFetches < 0 {
		return fmt.Errorf("agent.max_concurrent_fetches must be positive")
	}

	seen := make(map[string]bool, len(c.Agent.Paths))
	for i, p := range c.Agent.Paths {
		path := strings.TrimPrefix(p.Path, "/")
		if path == "" {
			return fmt.Errorf("agent.paths[%d].path is required", i)
		}
		if p.URL == "" {
			return fmt.Errorf("agent.paths[%d].url is required", i)
		}
		if seen[path] {
			return fmt.Errorf("agent.paths[%d]: duplicate path %q", i, path)
		}
		seen[path] = true
	}

	return nil
}
