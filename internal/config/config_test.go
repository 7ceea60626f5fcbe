package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval %s, got %s", defaultPollInterval, cfg.PollInterval)
	}
	if cfg.Provider != defaultProvider {
		t.Fatalf("expected default provider %s, got %s", defaultProvider, cfg.Provider)
	}
	if cfg.Kluby.BaseURL != defaultKlubyBaseURL || cfg.Kluby.Club != defaultKlubyClub {
		t.Fatalf("unexpected kluby defaults %+v", cfg.Kluby)
	}
	if cfg.Kluby.Timeout != defaultKlubyTimeout || cfg.Kluby.RateInterval != defaultKlubyRate {
		t.Fatalf("unexpected kluby timing defaults %+v", cfg.Kluby)
	}
	if cfg.Cache.TTL != defaultCacheTTL {
		t.Fatalf("expected default cache ttl %s, got %s", defaultCacheTTL, cfg.Cache.TTL)
	}
	if cfg.Timezone != defaultTimezone || cfg.WatchesFile != "" || cfg.AdminToken != "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.ServiceName != "court-availability-service" {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envPollInterval, "45s")
	t.Setenv(envProvider, "kluby")
	t.Setenv(envKlubyBaseURL, "http://example.com")
	t.Setenv(envKlubyClub, "other-club")
	t.Setenv(envKlubyTimeout, "3s")
	t.Setenv(envKlubyRate, "250ms")
	t.Setenv(envCacheTTL, "0s")
	t.Setenv(envWatchesFile, "/etc/watches.yaml")
	t.Setenv(envTimezone, "UTC")
	t.Setenv(envAdminToken, "secret")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "text")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.PollInterval != 45*time.Second {
		t.Fatalf("expected poll interval 45s, got %s", cfg.PollInterval)
	}
	if cfg.Provider != "kluby" {
		t.Fatalf("expected provider kluby, got %s", cfg.Provider)
	}
	want := KlubyConfig{BaseURL: "http://example.com", Club: "other-club", Timeout: 3 * time.Second, RateInterval: 250 * time.Millisecond}
	if cfg.Kluby != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.Kluby)
	}
	if cfg.Cache.TTL != 0 {
		t.Fatalf("expected zero ttl to be accepted, got %s", cfg.Cache.TTL)
	}
	if cfg.WatchesFile != "/etc/watches.yaml" || cfg.Timezone != "UTC" || cfg.AdminToken != "secret" {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging overrides %+v", cfg.Logging)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envPollInterval, "not-a-duration")
	t.Setenv(envCacheTTL, "-1m")

	cfg := Load()

	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval on invalid value, got %s", cfg.PollInterval)
	}
	if cfg.Cache.TTL != defaultCacheTTL {
		t.Fatalf("expected default ttl on negative value, got %s", cfg.Cache.TTL)
	}
}

func TestLoadNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv(envPollInterval, "0s")
	t.Setenv(envKlubyTimeout, "0s")

	cfg := Load()

	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval on non-positive value, got %s", cfg.PollInterval)
	}
	if cfg.Kluby.Timeout != defaultKlubyTimeout {
		t.Fatalf("expected default timeout on non-positive value, got %s", cfg.Kluby.Timeout)
	}
}
