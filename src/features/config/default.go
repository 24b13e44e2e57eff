package config

var defaultConfig = Config{
	Demo: true,
	Logger: Logger{
		Enabled: true,
		Level:   "info",
		Format:  "text",
	},
	Server: Server{
		PrintRoutes: false,
		Port:        3636,
	},
	Database: Database{
		Path: "./providers.db",
	},
	Resolver: Resolver{
		CallTimeoutSeconds: 10,
	},
	Search: Search{
		Limit: 25,
	},
	Providers: map[string]Provider{
		"demo-catalog": {
			Enabled: true,
		},
		"demo-stream": {
			Enabled: true,
		},
	},
}
