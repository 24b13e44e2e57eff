package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"harmonia/src/features/browsing"
	"harmonia/src/features/config"
	"harmonia/src/features/hosting"
	"harmonia/src/features/logging"
	"harmonia/src/features/metrics"
	"harmonia/src/features/registry"
	"harmonia/src/features/resolving"
	"harmonia/src/infra/database"
	"harmonia/src/infra/providers/demo"
	"harmonia/src/infra/watcher"
)

const configPath = "config.yaml"

func main() {
	// Load configuration
	cfgManager, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	// Provider settings persistence
	settings, err := database.NewSqliteSettings(cfgManager.Get().Database.Path)
	if err != nil {
		log.Fatalf("failed to open settings database: %v", err)
	}
	defer settings.Close()

	// The provider registry is constructed here and injected everywhere;
	// there is no ambient global instance.
	registryService := registry.NewService(settings)

	if cfgManager.Get().Demo {
		for _, p := range []*registry.Provider{demo.NewCatalogProvider(), demo.NewStreamProvider()} {
			if err := registryService.Register(p); err != nil {
				slog.Error("Failed to register demo provider", "provider", p.ID(), "error", err)
			}
		}
		slog.Info("Loaded built-in demo providers (demo mode)")
	}

	// Apply enable flags and priority overrides the config names.
	// SetEnabled/SetPriority are no-ops for unregistered IDs.
	for id, providerCfg := range cfgManager.Get().Providers {
		registryService.SetEnabled(id, providerCfg.Enabled)
		if providerCfg.Priority != nil {
			registryService.SetPriority(id, *providerCfg.Priority)
		}
	}

	// Prometheus registry with process/go collectors
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	orchestrationMetrics := metrics.New(promRegistry)

	// Tuning values are read once here; a config reload while running does
	// not reach into already-constructed services.
	callTimeout := time.Duration(cfgManager.Get().Resolver.CallTimeoutSeconds) * time.Second
	searchLimit := cfgManager.Get().Search.Limit

	// Orchestration services
	browsingService := browsing.NewService(registryService, orchestrationMetrics, callTimeout, searchLimit)
	resolvingService := resolving.NewService(registryService, orchestrationMetrics, callTimeout)

	// Watch the config file for edits
	configWatcher, err := watcher.NewWatcher(configPath, func() {
		if err := config.Reload(cfgManager, configPath); err != nil {
			slog.Error("Config reload failed, keeping previous configuration", "error", err)
		}
	})
	if err != nil {
		slog.Error("Failed to create config watcher", "error", err)
	} else if err := configWatcher.Start(); err != nil {
		slog.Error("Failed to start config watcher", "error", err)
	} else {
		defer configWatcher.Stop()
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, configPath, registryService, browsingService, resolvingService, promRegistry)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfgManager.Get().Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
