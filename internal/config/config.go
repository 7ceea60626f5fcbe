package config

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	Kluby        KlubyConfig
	Cache        CacheConfig
	WatchesFile  string
	Timezone     string
	AdminToken   string
	Logging      LoggingConfig
	Metrics      MetricsConfig
}

// LoggingConfig selects the slog handler and level.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		Kluby:        loadKluby(),
		Cache:        loadCache(),
		WatchesFile:  envOrDefault(envWatchesFile, ""),
		Timezone:     envOrDefault(envTimezone, defaultTimezone),
		AdminToken:   envOrDefault(envAdminToken, ""),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(),
	}
}
