package providers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/logging"
	"github.com/preston-bernstein/court-availability-service/internal/metrics"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

// ScheduleCache is the storage the caching fetcher reads through.
type ScheduleCache interface {
	Get(date time.Time, page int) (domain.CourtSchedule, bool)
	Set(date time.Time, page int, schedule domain.CourtSchedule)
}

// cachingFetcher serves repeated (date, page) lookups from cache and collapses concurrent misses.
type cachingFetcher struct {
	inner   ScheduleFetcher
	cache   ScheduleCache
	group   singleflight.Group
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewCachingFetcher wraps inner so each (date, page) is fetched upstream at most once while cached.
// Only successful fetches are stored.
func NewCachingFetcher(inner ScheduleFetcher, cache ScheduleCache, logger *slog.Logger, recorder *metrics.Recorder) ScheduleFetcher {
	return &cachingFetcher{inner: inner, cache: cache, logger: logger, metrics: recorder}
}

func (f *cachingFetcher) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	if f.inner == nil {
		return domain.CourtSchedule{}, ErrProviderUnavailable
	}
	if f.cache == nil {
		return f.inner.FetchSchedule(ctx, date, page)
	}

	logger := logging.FromContext(ctx, f.logger)
	if schedule, ok := f.cache.Get(date, page); ok {
		f.record(true)
		if logger != nil {
			logger.DebugContext(ctx, "schedule cache hit",
				slog.String(logging.FieldDate, timeutil.FormatDate(date)),
				slog.Int(logging.FieldPage, page),
				slog.Bool(logging.FieldCacheHit, true),
			)
		}
		return schedule, nil
	}
	f.record(false)

	key := fmt.Sprintf("%s|%d", timeutil.FormatDate(date), page)
	// The flight outlives any one caller; the inner fetcher bounds it with its own timeout.
	flightCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key, func() (any, error) {
		// A flight that finished between our lookup and DoChan has already filled the entry.
		if schedule, ok := f.cache.Get(date, page); ok {
			return schedule, nil
		}
		schedule, err := f.inner.FetchSchedule(flightCtx, date, page)
		if err != nil {
			return domain.CourtSchedule{}, err
		}
		f.cache.Set(date, page, schedule)
		return schedule, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return domain.CourtSchedule{}, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return domain.CourtSchedule{}, res.Err
	}
	if logger != nil {
		logger.DebugContext(ctx, "schedule cache fill",
			slog.String(logging.FieldDate, timeutil.FormatDate(date)),
			slog.Int(logging.FieldPage, page),
			slog.Bool(logging.FieldCacheHit, false),
			slog.Bool("shared", res.Shared),
		)
	}
	return res.Val.(domain.CourtSchedule), nil
}

func (f *cachingFetcher) record(hit bool) {
	if f.metrics != nil {
		f.metrics.RecordCacheLookup(hit)
	}
}
