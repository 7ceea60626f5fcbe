package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/metrics"
)

const defaultRateInterval = time.Second

// rateLimitedFetcher spaces outbound fetches so the venue is not hammered by cache misses.
type rateLimitedFetcher struct {
	next     ScheduleFetcher
	name     string
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewRateLimitedFetcher returns a fetcher that allows one call per interval.
// Calls block until a token is available or ctx is done.
func NewRateLimitedFetcher(next ScheduleFetcher, name string, interval time.Duration, logger *slog.Logger, recorder *metrics.Recorder) ScheduleFetcher {
	if interval <= 0 {
		interval = defaultRateInterval
	}
	return &rateLimitedFetcher{
		next:     next,
		name:     name,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
		metrics:  recorder,
	}
}

func (p *rateLimitedFetcher) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	if p == nil || p.next == nil {
		logWithProvider(ctx, p.loggerOrNil(), slog.LevelWarn, "rate-limited", "provider unavailable")
		return domain.CourtSchedule{}, ErrProviderUnavailable
	}

	start := time.Now()
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "rate-limited fetch canceled", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.CourtSchedule{}, ctxErr
		}
		return domain.CourtSchedule{}, err
	}
	wait := time.Since(start)
	if p.metrics != nil {
		p.metrics.RecordRateLimitWait(p.name, wait)
	}

	return p.next.FetchSchedule(ctx, date, page)
}

func (p *rateLimitedFetcher) loggerOrNil() *slog.Logger {
	if p == nil {
		return nil
	}
	return p.logger
}
