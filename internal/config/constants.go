package config

import "time"

const (
	envPort          = "PORT"
	envPollInterval  = "POLL_INTERVAL"
	envProvider      = "PROVIDER"
	envKlubyBaseURL  = "KLUBY_BASE_URL"
	envKlubyClub     = "KLUBY_CLUB"
	envKlubyTimeout  = "KLUBY_TIMEOUT"
	envKlubyRate     = "KLUBY_RATE_INTERVAL"
	envCacheTTL      = "CACHE_TTL"
	envWatchesFile   = "WATCHES_FILE"
	envTimezone      = "TIMEZONE"
	envAdminToken    = "ADMIN_TOKEN"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort         = "4000"
	defaultPollInterval = Duration(time.Minute)
	defaultProvider     = "fixture"
	defaultKlubyBaseURL = "https://kluby.org"
	defaultKlubyClub    = "wkt-mera"
	defaultKlubyTimeout = 10 * Duration(time.Second)
	// One upstream request per second at most; cache misses are the only traffic.
	defaultKlubyRate   = Duration(time.Second)
	defaultCacheTTL    = 10 * Duration(time.Minute)
	defaultTimezone    = "Europe/Warsaw"
	defaultLogLevel    = "info"
	defaultLogFormat   = "json"
	defaultMetricsPort = "9090"
)
