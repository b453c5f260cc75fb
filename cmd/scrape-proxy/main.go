// ABOUTME: Entry point for scrape-proxy, the public side of the scrape relay
// ABOUTME: Accepts agent connections over gRPC and serves scrapes over HTTP

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/scrape-relay/internal/config"
	"github.com/2389/scrape-relay/internal/logging"
	"github.com/2389/scrape-relay/internal/proxy"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  ___  ___ _ __ __ _ _ __   ___       _ __  _ __ _____  ___   _ 
 / __|/ __| '__/ _' | '_ \ / _ \_____| '_ \| '__/ _ \ \/ / | | |
 \__ \ (__| | | (_| | |_) |  __/_____| |_) | | | (_) >  <| |_| |
 |___/\___|_|  \__,_| .__/ \___|     | .__/|_|  \___/_/\_\\__, |
                    |_|              |_|                  |___/
`

// getConfigPath returns the path to the proxy config file.
// Priority: -config flag > SCRAPE_RELAY_CONFIG env var > XDG_CONFIG_HOME/scrape-relay/proxy.yaml > ~/.config/scrape-relay/proxy.yaml
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envPath := os.Getenv("SCRAPE_RELAY_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "proxy.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "scrape-relay", "proxy.yaml")
}

func usage() {
	fmt.Println("Usage: scrape-proxy [-config path] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve    Start the proxy")
	fmt.Println("  health   Check proxy health")
	fmt.Println("  agents   List connected agents")
}

func main() {
	configFlag := flag.String("config", "", "path to proxy config file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	configPath := getConfigPath(*configFlag)

	var err error
	switch flag.Arg(0) {
	case "serve":
		err = runServe(ctx, configPath)
	case "health":
		err = runGet(ctx, configPath, "/health")
	case "agents":
		err = runGet(ctx, configPath, "/api/agents")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", flag.Arg(0))
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, configPath string) error {
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.LoadProxy(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Logging)

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("gRPC:      %s\n", cfg.Server.GRPCAddr)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	if cfg.Metrics.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Metrics:   %s\n", cfg.Metrics.Path)
	}

	if cfg.Tailscale.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Tailscale: ")
		cyan.Print(cfg.Tailscale.Hostname)
		if cfg.Tailscale.Funnel {
			yellow.Print(" [funnel]")
		}
		if cfg.Tailscale.Ephemeral {
			gray.Print(" (ephemeral)")
		}
		fmt.Println()
	}

	fmt.Println()

	logger.Info("starting scrape-proxy",
		"config", configPath,
		"grpc_addr", cfg.Server.GRPCAddr,
		"http_addr", cfg.Server.HTTPAddr,
	)

	p, err := proxy.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating proxy: %w", err)
	}

	return p.Run(ctx)
}

// runGet queries a proxy HTTP endpoint and prints the body.
func runGet(ctx context.Context, configPath, path string) error {
	cfg, err := config.LoadProxy(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s%s", cfg.Server.HTTPAddr, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d: %s", resp.StatusCode, body)
	}

	fmt.Println(string(body))
	return nil
}
