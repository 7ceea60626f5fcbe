package server

import (
	"log/slog"

	"github.com/preston-bernstein/court-availability-service/internal/config"
	"github.com/preston-bernstein/court-availability-service/internal/metrics"
	"github.com/preston-bernstein/court-availability-service/internal/providers"
	"github.com/preston-bernstein/court-availability-service/internal/providers/kluby"
)

// providerFactory assembles the fetcher stack: source, rate limit, instrumentation, cache.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config, cache providers.ScheduleCache) providers.ScheduleFetcher {
	base := selectProvider(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider, base)
	// Only the live venue is throttled; the fixture answers from memory.
	if _, ok := base.(*kluby.Client); ok {
		base = providers.NewRateLimitedFetcher(base, name, cfg.Kluby.RateInterval, f.logger, f.metrics)
	}
	return f.wrap(base, name, cache)
}

// wrap adds instrumentation and the schedule cache around an already chosen source.
func (f providerFactory) wrap(base providers.ScheduleFetcher, name string, cache providers.ScheduleCache) providers.ScheduleFetcher {
	instrumented := providers.NewInstrumentedFetcher(base, name, f.logger, f.metrics)
	return providers.NewCachingFetcher(instrumented, cache, f.logger, f.metrics)
}
