package server

import (
	"log/slog"

	"github.com/preston-bernstein/court-availability-service/internal/config"
	"github.com/preston-bernstein/court-availability-service/internal/providers"
	"github.com/preston-bernstein/court-availability-service/internal/providers/fixture"
	"github.com/preston-bernstein/court-availability-service/internal/providers/kluby"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.ScheduleFetcher {
	switch normalizeProviderName(cfg.Provider, nil) {
	case fixture.ProviderName, "provider":
		return fixture.New()
	case kluby.ProviderName:
		return kluby.NewClient(kluby.Config{
			BaseURL: cfg.Kluby.BaseURL,
			Club:    cfg.Kluby.Club,
			Timeout: cfg.Kluby.Timeout,
			Logger:  logger,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
