// ABOUTME: Entry point for scrape-agent, the private side of the scrape relay
// ABOUTME: Connects out to scrape-proxy and fetches registered targets on its behalf

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/scrape-relay/internal/agent"
	"github.com/2389/scrape-relay/internal/config"
	"github.com/2389/scrape-relay/internal/logging"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  ___  ___ _ __ __ _ _ __   ___        __ _  __ _  ___ _ __ | |_
 / __|/ __| '__/ _' | '_ \ / _ \_____ / _' |/ _' |/ _ \ '_ \| __|
 \__ \ (__| | | (_| | |_) |  __/_____| (_| | (_| |  __/ | | | |_
 |___/\___|_|  \__,_| .__/ \___|      \__,_|\__, |\___|_| |_|\__|
                    |_|                     |___/
`

// getConfigPath returns the path to the agent config file.
// Priority: -config flag > SCRAPE_RELAY_AGENT_CONFIG env var > XDG_CONFIG_HOME/scrape-relay/agent.yaml > ~/.config/scrape-relay/agent.yaml
func getConfigPath(flagValue string) (path string, explicit bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if envPath := os.Getenv("SCRAPE_RELAY_AGENT_CONFIG"); envPath != "" {
		return envPath, true
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "agent.yaml", false // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "scrape-relay", "agent.yaml"), false
}

func main() {
	configFlag := flag.String("config", "", "path to agent config file")
	proxyFlag := flag.String("proxy", "", "proxy gRPC address (host[:port]), overrides config")
	nameFlag := flag.String("name", "", "agent name, overrides config")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configFlag, *proxyFlag, *nameFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the agent config. A missing default config is not an
// error; the agent then runs from flags and defaults alone.
func loadConfig(path string, explicit bool) (*config.AgentConfig, error) {
	cfg, err := config.LoadAgent(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		cfg = &config.AgentConfig{}
		cfg.ApplyDefaults()
		return cfg, nil
	}
	return nil, fmt.Errorf("loading config: %w", err)
}

func run(ctx context.Context, configFlag, proxyAddr, name string) error {
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	configPath, explicit := getConfigPath(configFlag)
	cfg, err := loadConfig(configPath, explicit)
	if err != nil {
		return err
	}

	if proxyAddr != "" {
		cfg.Agent.ProxyAddr = proxyAddr
	}
	if name != "" {
		cfg.Agent.Name = name
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	logger := logging.New(cfg.Logging)

	green := color.New(color.FgGreen)

	green.Print("    ▶ ")
	fmt.Printf("Config:  %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Name:    %s\n", cfg.Agent.Name)
	green.Print("    ▶ ")
	fmt.Printf("Proxy:   %s\n", cfg.Agent.ProxyAddr)
	for _, p := range cfg.Agent.Paths {
		green.Print("    ▶ ")
		fmt.Printf("Path:    /%s ", strings.TrimLeft(p.Path, "/"))
		gray.Printf("-> %s\n", p.URL)
	}
	if cfg.Admin.HTTPAddr != "" {
		green.Print("    ▶ ")
		fmt.Printf("Admin:   %s\n", cfg.Admin.HTTPAddr)
	}
	fmt.Println()

	return agent.New(cfg, logger).Run(ctx)
}
