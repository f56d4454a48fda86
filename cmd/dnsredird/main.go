package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bilgehannal/dnsredir/internal/config"
	"github.com/bilgehannal/dnsredir/internal/dns"
	"github.com/bilgehannal/dnsredir/internal/env"
	"github.com/bilgehannal/dnsredir/internal/storage"
	"github.com/bilgehannal/dnsredir/internal/utils"
	"github.com/bilgehannal/dnsredir/internal/watcher"
	"github.com/bilgehannal/dnsredir/pkg/dnsredir"
)

const configPath = config.DefaultConfigPath

func main() {
	// Load initial configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("=== Starting dnsredird ===")
	logger.Info("Loaded config from: %s", configPath)

	// Log configuration details
	config.LogConfigInfo(cfg, logger)

	// Open the storage root holding the hosts files
	st, err := storage.NewDir(cfg.StorageRoot)
	if err != nil {
		logger.Error("Failed to open storage root: %v", err)
		os.Exit(1)
	}

	// Build the resolver and load the redirection table. A corrupt or
	// oversized hosts file refuses startup rather than half-applying.
	resolver := dnsredir.New(st, env.NewEmummc(cfg.Emummc.Active, cfg.Emummc.ID))
	if err := resolver.Initialize(cfg.AddDefaults); err != nil {
		logger.Error("Failed to initialize redirections: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d redirection(s)", len(resolver.Entries()))

	// Create and start the DNS server
	server := dns.NewServer(resolver, cfg.Bind, logger)
	if err := server.Start(); err != nil {
		logger.Error("Failed to start DNS server: %v", err)
		os.Exit(1)
	}

	logger.Info("DNS server started successfully on %s", cfg.Bind)

	// Watch the hosts directory and rebuild the table on changes. A failed
	// reload keeps the previous table live.
	hostsDir := filepath.Join(st.Root(), "hosts")
	w, err := watcher.NewWatcher(hostsDir, logger, func() error {
		return resolver.Initialize(cfg.AddDefaults)
	})
	if err != nil {
		logger.Error("Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Close()

	// Start watching
	w.Start()
	logger.Info("Started watching hosts files for changes")

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Wait for termination signal
	sig := <-sigChan
	logger.Info("Received signal: %v", sig)
	logger.Info("Shutting down gracefully...")

	// Shutdown server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error during shutdown: %v", err)
	}

	logger.Info("=== dnsredird stopped ===")
}
