package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// setProviderSecret sets the secret for a provider from an environment variable
func setProviderSecret(cfg *Config, providerName, envVar string) {
	if key := os.Getenv(envVar); key != "" {
		if cfg.Providers == nil {
			cfg.Providers = make(map[string]Provider)
		}
		if provider, exists := cfg.Providers[providerName]; exists {
			provider.Secret = &key
			cfg.Providers[providerName] = provider
		} else {
			cfg.Providers[providerName] = Provider{Enabled: false, Secret: &key}
		}
	}
}

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		cfg := defaultConfig

		manager := NewManager(&cfg)
		if err := manager.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		slog.Info("Default configuration created successfully", "path", path)
		return manager, nil
	}

	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return NewManager(cfg), nil
}

// parseFile decodes, validates and env-overrides a config file.
func parseFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultConfig.Database.Path
	}
	if cfg.Resolver.CallTimeoutSeconds == 0 {
		cfg.Resolver.CallTimeoutSeconds = defaultConfig.Resolver.CallTimeoutSeconds
	}
	if cfg.Search.Limit == 0 {
		cfg.Search.Limit = defaultConfig.Search.Limit
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	setProviderSecret(&cfg, "tidewave", "TIDEWAVE_API_KEY")
	setProviderSecret(&cfg, "songbird", "SONGBIRD_CLIENT_KEY")

	return &cfg, nil
}

// Reload re-reads the config file into an existing manager. Used by the
// file watcher; a broken file keeps the previous configuration.
func Reload(manager *Manager, path string) error {
	cfg, err := parseFile(path)
	if err != nil {
		return err
	}
	manager.Update(cfg)
	return nil
}
