// ABOUTME: Proxy orchestrator that coordinates the agent-facing gRPC server and the scrape HTTP server
// ABOUTME: Manages the registry, inactivity sweep, event store, and optional tailnet listeners

package proxy

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"tailscale.com/ipn/ipnstate"
	"tailscale.com/tsnet"

	"github.com/2389/scrape-relay/internal/config"
	"github.com/2389/scrape-relay/internal/store"
	pb "github.com/2389/scrape-relay/proto/relay"
)

// Proxy accepts agent connections over gRPC and relays HTTP scrapes to them.
type Proxy struct {
	config      *config.ProxyConfig
	registry    *Registry
	events      store.EventStore
	metricsReg  *prometheus.Registry
	grpcServer  *grpc.Server
	httpServer  *http.Server
	tsnetServer *tsnet.Server
	logger      *slog.Logger
}

// initStore opens the agent event log, honoring SCRAPE_RELAY_DB_PATH.
func initStore(cfg *config.ProxyConfig) (store.EventStore, error) {
	dbPath := cfg.Database.Path
	if envPath := os.Getenv("SCRAPE_RELAY_DB_PATH"); envPath != "" {
		dbPath = envPath
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}
	return s, nil
}

// createGRPCServer creates the agent-facing gRPC server.
func createGRPCServer(tracker *connTracker) *grpc.Server {
	return grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    15 * time.Second,
			Timeout: 5 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.StatsHandler(tracker),
	)
}

// New creates a new Proxy instance with the given configuration.
func New(cfg *config.ProxyConfig, logger *slog.Logger) (*Proxy, error) {
	events, err := initStore(cfg)
	if err != nil {
		return nil, err
	}

	metricsReg := prometheus.NewRegistry()
	metricsReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(metricsReg)

	registry := NewRegistry(cfg.Proxy, events, metrics, logger.With("component", "registry"))
	metrics.RegisterGauges(metricsReg, registry)

	tracker := newConnTracker(registry, logger.With("component", "conn-tracker"))
	grpcServer := createGRPCServer(tracker)

	p := &Proxy{
		config:     cfg,
		registry:   registry,
		events:     events,
		metricsReg: metricsReg,
		grpcServer: grpcServer,
		logger:     logger.With("component", "proxy"),
	}

	pb.RegisterProxyServiceServer(grpcServer, newProxyServer(registry, cfg.Proxy.RequestPollInterval, logger.With("component", "grpc")))

	mux := http.NewServeMux()
	p.registerRoutes(mux)

	p.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return p, nil
}

// Registry returns the proxy's routing tables.
func (p *Proxy) Registry() *Registry {
	return p.registry
}

func (p *Proxy) metricsHandler() http.Handler {
	return promhttp.HandlerFor(p.metricsReg, promhttp.HandlerOpts{})
}

// setupTCPListeners creates standard TCP listeners for gRPC and HTTP.
func (p *Proxy) setupTCPListeners() (grpcLn, httpLn net.Listener, err error) {
	p.logger.Info("starting proxy",
		"grpc_addr", p.config.Server.GRPCAddr,
		"http_addr", p.config.Server.HTTPAddr,
	)

	grpcLn, err = net.Listen("tcp", p.config.Server.GRPCAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("listening on gRPC address: %w", err)
	}

	httpLn, err = net.Listen("tcp", p.config.Server.HTTPAddr)
	if err != nil {
		_ = grpcLn.Close()
		return nil, nil, fmt.Errorf("listening on HTTP address: %w", err)
	}

	return grpcLn, httpLn, nil
}

// warnIgnoredAddresses logs a warning if server addresses are configured but Tailscale is enabled.
func (p *Proxy) warnIgnoredAddresses() {
	if p.config.Server.GRPCAddr != "" || p.config.Server.HTTPAddr != "" {
		p.logger.Warn("server.grpc_addr and server.http_addr are ignored when tailscale is enabled",
			"grpc_addr", p.config.Server.GRPCAddr,
			"http_addr", p.config.Server.HTTPAddr,
		)
	}
}

// setupListeners creates listeners based on configuration (Tailscale or TCP).
func (p *Proxy) setupListeners(ctx context.Context) (grpcLn, httpLn net.Listener, err error) {
	if p.config.Tailscale.Enabled {
		p.warnIgnoredAddresses()
		return p.setupTailscaleListeners(ctx)
	}
	return p.setupTCPListeners()
}

// startServers starts gRPC and HTTP servers in goroutines, returning error channel.
func (p *Proxy) startServers(grpcLn, httpLn net.Listener) chan error {
	errCh := make(chan error, 2)

	go func() {
		p.logger.Info("gRPC server listening", "addr", grpcLn.Addr().String())
		if err := p.grpcServer.Serve(grpcLn); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	go func() {
		p.logger.Info("HTTP server listening", "addr", httpLn.Addr().String())
		if err := p.httpServer.Serve(httpLn); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	return errCh
}

// waitForShutdownSignal waits for context cancellation or server error.
func (p *Proxy) waitForShutdownSignal(ctx context.Context, errCh chan error) error {
	select {
	case <-ctx.Done():
		p.logger.Info("context canceled, initiating shutdown")
		return nil
	case err := <-errCh:
		p.logger.Error("server error", "error", err)
		p.drainErrors(errCh)
		return err
	}
}

// drainErrors drains any remaining errors from the channel.
func (p *Proxy) drainErrors(errCh chan error) {
	select {
	case additionalErr := <-errCh:
		p.logger.Error("additional server error", "error", additionalErr)
	default:
	}
}

// Run starts the proxy servers and the inactivity sweep, and blocks until
// the context is canceled. Returns nil on graceful shutdown, or an error if
// a server fails.
func (p *Proxy) Run(ctx context.Context) error {
	grpcListener, httpListener, err := p.setupListeners(ctx)
	if err != nil {
		return err
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go p.registry.RunSweeper(sweepCtx)

	errCh := p.startServers(grpcListener, httpListener)
	serverErr := p.waitForShutdownSignal(ctx, errCh)

	shutdownErr := p.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (p *Proxy) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.Shutdown(ctx)
}

// resolveTailscaleStateDir returns the state directory, using default if not configured.
func resolveTailscaleStateDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory for tailscale state (set tailscale.state_dir explicitly): %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "scrape-relay", "tailscale"), nil
}

// resolveTailscaleAuthKey returns the auth key from config or environment.
func resolveTailscaleAuthKey(configured string) (string, error) {
	authKey := configured
	if authKey == "" {
		authKey = os.Getenv("TS_AUTHKEY")
	}
	if authKey == "" {
		return "", errors.New("tailscale auth key required: set auth_key in config or TS_AUTHKEY environment variable")
	}
	return authKey, nil
}

// setupTailscaleListeners creates a tsnet server and returns listeners for gRPC and HTTP.
func (p *Proxy) setupTailscaleListeners(ctx context.Context) (grpcLn, httpLn net.Listener, err error) {
	tsCfg := p.config.Tailscale

	stateDir, err := resolveTailscaleStateDir(tsCfg.StateDir)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("creating tailscale state dir: %w", err)
	}

	authKey, err := resolveTailscaleAuthKey(tsCfg.AuthKey)
	if err != nil {
		return nil, nil, err
	}

	p.tsnetServer = &tsnet.Server{
		Hostname:  tsCfg.Hostname,
		Dir:       stateDir,
		Ephemeral: tsCfg.Ephemeral,
		AuthKey:   authKey,
	}

	p.logger.Info("starting tailscale node", "hostname", tsCfg.Hostname, "state_dir", stateDir, "ephemeral", tsCfg.Ephemeral)
	status, err := p.tsnetServer.Up(ctx)
	if err != nil {
		_ = p.tsnetServer.Close()
		return nil, nil, fmt.Errorf("starting tailscale: %w", err)
	}

	p.logTailscaleStatus(tsCfg.Hostname, status)

	grpcLn, err = p.tsnetServer.Listen("tcp", ":"+config.DefaultProxyPort)
	if err != nil {
		_ = p.tsnetServer.Close()
		return nil, nil, fmt.Errorf("listening on tailscale gRPC port: %w", err)
	}

	httpLn, err = p.createTailscaleHTTPListener(tsCfg, grpcLn)
	if err != nil {
		return nil, nil, err
	}
	return grpcLn, httpLn, nil
}

// logTailscaleStatus logs info about the tailscale node status.
func (p *Proxy) logTailscaleStatus(hostname string, status *ipnstate.Status) {
	var tsAddr, dnsName string
	if len(status.TailscaleIPs) > 0 {
		tsAddr = status.TailscaleIPs[0].String()
	} else {
		p.logger.Warn("tailscale node has no IP addresses assigned")
	}
	if status.Self != nil {
		dnsName = status.Self.DNSName
	}
	p.logger.Info("tailscale node ready", "hostname", hostname, "tailscale_ip", tsAddr, "dns_name", dnsName)
}

// createTailscaleHTTPListener creates the appropriate HTTP listener based on config.
func (p *Proxy) createTailscaleHTTPListener(tsCfg config.TailscaleConfig, grpcLn net.Listener) (net.Listener, error) {
	switch {
	case tsCfg.Funnel:
		p.logger.Info("enabling tailscale funnel (public HTTPS) on :443")
		ln, err := p.tsnetServer.ListenFunnel("tcp", ":443")
		if err != nil {
			_ = grpcLn.Close()
			_ = p.tsnetServer.Close()
			return nil, fmt.Errorf("listening on tailscale HTTP port: %w", err)
		}
		return ln, nil
	case tsCfg.HTTPS:
		return p.createTailscaleTLSListener(grpcLn)
	default:
		ln, err := p.tsnetServer.Listen("tcp", ":80")
		if err != nil {
			_ = grpcLn.Close()
			_ = p.tsnetServer.Close()
			return nil, fmt.Errorf("listening on tailscale HTTP port: %w", err)
		}
		return ln, nil
	}
}

// createTailscaleTLSListener creates a TLS listener using Tailscale's auto-provisioned certs.
func (p *Proxy) createTailscaleTLSListener(grpcLn net.Listener) (net.Listener, error) {
	p.logger.Info("enabling HTTPS with Tailscale certs on :443")
	ln, err := p.tsnetServer.Listen("tcp", ":443")
	if err != nil {
		_ = grpcLn.Close()
		_ = p.tsnetServer.Close()
		return nil, fmt.Errorf("listening on tailscale HTTPS port: %w", err)
	}
	lc, err := p.tsnetServer.LocalClient()
	if err != nil {
		_ = ln.Close()
		_ = grpcLn.Close()
		_ = p.tsnetServer.Close()
		return nil, fmt.Errorf("getting tailscale local client: %w", err)
	}
	return tls.NewListener(ln, &tls.Config{
		GetCertificate: lc.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}), nil
}

// shutdownGRPCServer gracefully stops the gRPC server or force-stops on context cancel.
func (p *Proxy) shutdownGRPCServer(ctx context.Context) {
	stopped := make(chan struct{})
	go func() {
		p.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		p.grpcServer.Stop()
	}
}

// appendCloseError appends an error with label if err is non-nil.
func appendCloseError(errs []error, label string, err error) []error {
	if err != nil {
		return append(errs, fmt.Errorf("%s: %w", label, err))
	}
	return errs
}

// Shutdown gracefully stops all proxy servers and releases resources.
// Agents are removed first so their request streams end and in-flight
// scrapes fail with ErrProxyStopped.
func (p *Proxy) Shutdown(ctx context.Context) error {
	p.logger.Info("shutting down proxy")

	p.registry.Close()

	var errs []error
	errs = appendCloseError(errs, "HTTP shutdown", p.httpServer.Shutdown(ctx))

	p.shutdownGRPCServer(ctx)

	if p.tsnetServer != nil {
		errs = appendCloseError(errs, "tailscale shutdown", p.tsnetServer.Close())
	}
	errs = appendCloseError(errs, "store close", p.events.Close())

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}
