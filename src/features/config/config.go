package config

// Config holds the application configuration.
type Config struct {
	Demo      bool                `yaml:"demo"`
	Logger    Logger              `yaml:"logger"`
	Server    Server              `yaml:"server"`
	Database  Database            `yaml:"database"`
	Resolver  Resolver            `yaml:"resolver"`
	Search    Search              `yaml:"search"`
	Providers map[string]Provider `yaml:"providers"`
}

// Server holds the configuration for the Fiber server
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Database holds the configuration for the provider-settings database
type Database struct {
	Path string `yaml:"path" validate:"required"`
}

// Resolver holds tuning for stream resolution. Applied at startup only;
// changing it requires a restart, a config reload does not pick it up.
type Resolver struct {
	CallTimeoutSeconds int `yaml:"call_timeout_seconds" validate:"gte=0,lte=300"`
}

// Search holds tuning for unified search. Applied at startup only, like
// Resolver.
type Search struct {
	Limit int `yaml:"limit" validate:"gte=0,lte=100"`
}

// Provider holds configuration for an individual content provider
type Provider struct {
	Enabled  bool    `yaml:"enabled"`
	Priority *int    `yaml:"priority,omitempty"`
	Secret   *string `yaml:"secret,omitempty"`
}
