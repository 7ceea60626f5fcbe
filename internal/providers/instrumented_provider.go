package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/logging"
	"github.com/preston-bernstein/court-availability-service/internal/metrics"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

// instrumentedFetcher records every upstream attempt and logs failures with the provider name.
// Errors are passed through untouched; there is no retry at this layer.
type instrumentedFetcher struct {
	inner   ScheduleFetcher
	name    string
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewInstrumentedFetcher wraps inner with metrics and structured logging.
func NewInstrumentedFetcher(inner ScheduleFetcher, name string, logger *slog.Logger, recorder *metrics.Recorder) ScheduleFetcher {
	return &instrumentedFetcher{inner: inner, name: name, logger: logger, metrics: recorder}
}

func (f *instrumentedFetcher) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	if f.inner == nil {
		return domain.CourtSchedule{}, ErrProviderUnavailable
	}

	start := time.Now()
	schedule, err := f.inner.FetchSchedule(ctx, date, page)
	elapsed := time.Since(start)
	if f.metrics != nil {
		f.metrics.RecordProviderAttempt(f.name, elapsed, err)
	}

	logger := logging.FromContext(ctx, f.logger)
	attrs := []any{
		slog.String(logging.FieldDate, timeutil.FormatDate(date)),
		slog.Int(logging.FieldPage, page),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	}
	if err != nil {
		logWithProvider(ctx, logger, slog.LevelWarn, f.name, "schedule fetch failed", append(attrs, "error", err)...)
		return domain.CourtSchedule{}, err
	}
	if len(schedule.Warnings) > 0 {
		logWithProvider(ctx, logger, slog.LevelWarn, f.name, "schedule parsed with warnings",
			append(attrs, slog.Int(logging.FieldCount, len(schedule.Warnings)))...)
	}
	logWithProvider(ctx, logger, slog.LevelDebug, f.name, "schedule fetched", attrs...)
	return schedule, nil
}
