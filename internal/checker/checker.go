package checker

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/logging"
	"github.com/preston-bernstein/court-availability-service/internal/metrics"
	"github.com/preston-bernstein/court-availability-service/internal/providers"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

// Match is the first court of a watch that has a qualifying free run.
type Match struct {
	CourtID   int                `json:"courtId"`
	Intervals []domain.DateRange `json:"intervals"`
}

// Checker answers "when is this court free for long enough" against a schedule fetcher.
type Checker struct {
	fetcher providers.ScheduleFetcher
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New constructs a Checker. logger and recorder may be nil.
func New(fetcher providers.ScheduleFetcher, logger *slog.Logger, recorder *metrics.Recorder) *Checker {
	return &Checker{fetcher: fetcher, logger: logger, metrics: recorder}
}

type sample struct {
	at   time.Time
	free bool
}

type pageKey struct {
	date string
	page int
}

// Check returns the start-ordered runs of at least req.RequiredInterval during which
// the court is free, sampled every req.DateRange.Step. No availability is an empty result.
func (c *Checker) Check(ctx context.Context, req domain.CourtRequest) ([]domain.DateRange, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if c == nil || c.fetcher == nil {
		return nil, providers.ErrProviderUnavailable
	}

	start := time.Now()
	intervals, err := c.check(ctx, req)
	elapsed := time.Since(start)
	c.metrics.RecordCheck(elapsed, len(intervals), err)

	logger := logging.FromContext(ctx, c.logger)
	if err != nil {
		logging.Warn(logger, "availability check failed",
			slog.Int(logging.FieldCourt, req.Court.ID),
			slog.String("window", req.DateRange.String()),
			"error", err,
		)
		return nil, err
	}
	logging.Debug(logger, "availability checked",
		slog.Int(logging.FieldCourt, req.Court.ID),
		slog.String("window", req.DateRange.String()),
		slog.Int(logging.FieldCount, len(intervals)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return intervals, nil
}

func (c *Checker) check(ctx context.Context, req domain.CourtRequest) ([]domain.DateRange, error) {
	samples, err := c.sample(ctx, req)
	if err != nil {
		return nil, err
	}
	intervals := findIntervals(samples, req.DateRange.Step, req.RequiredSteps())
	if req.NonOverlapping {
		intervals = selectNonOverlapping(intervals)
	}
	return intervals, nil
}

// sample tests court membership at every instant of the window except its end.
// Each (day, page) is fetched once per check.
func (c *Checker) sample(ctx context.Context, req domain.CourtRequest) ([]sample, error) {
	page := req.Court.Page()
	schedules := make(map[pageKey]domain.CourtSchedule)

	var samples []sample
	for at := range req.DateRange.Instants() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if at.Equal(req.DateRange.End) {
			continue
		}
		key := pageKey{date: timeutil.FormatDate(at), page: page}
		schedule, ok := schedules[key]
		if !ok {
			var err error
			schedule, err = c.fetcher.FetchSchedule(ctx, timeutil.StartOfDay(at), page)
			if err != nil {
				return nil, fmt.Errorf("fetch %s page %d: %w", key.date, page, err)
			}
			schedules[key] = schedule
		}
		samples = append(samples, sample{at: at, free: req.Court.IsAvailable(schedule, at)})
	}
	return samples, nil
}

// findIntervals slides a window of steps samples and keeps windows that are contiguous and all free.
// Each kept window becomes [first, last+step].
func findIntervals(samples []sample, step time.Duration, steps int) []domain.DateRange {
	if steps < 1 || len(samples) < steps {
		return nil
	}
	var out []domain.DateRange
	for i := 0; i+steps <= len(samples); i++ {
		window := samples[i : i+steps]
		if !contiguousFree(window, step) {
			continue
		}
		out = append(out, domain.NewDateRange(window[0].at, window[steps-1].at.Add(step)).WithStep(step))
	}
	return out
}

func contiguousFree(window []sample, step time.Duration) bool {
	for i, s := range window {
		if !s.free {
			return false
		}
		if i > 0 && s.at.Sub(window[i-1].at) != step {
			return false
		}
	}
	return true
}

// selectNonOverlapping greedily keeps, in start order, intervals that begin at or after the last kept end.
func selectNonOverlapping(intervals []domain.DateRange) []domain.DateRange {
	sorted := slices.Clone(intervals)
	domain.SortRanges(sorted)

	var selected []domain.DateRange
	var lastEnd time.Time
	for i, r := range sorted {
		if i == 0 || !r.Start.Before(lastEnd) {
			selected = append(selected, r)
			lastEnd = r.End
		}
	}
	return selected
}

// CheckAny runs the requests in order and returns the first court with a qualifying run.
// A nil match with a nil error means no court was free.
func (c *Checker) CheckAny(ctx context.Context, reqs []domain.CourtRequest) (*Match, error) {
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		intervals, err := c.Check(ctx, req)
		if err != nil {
			return nil, err
		}
		if len(intervals) > 0 {
			return &Match{CourtID: req.Court.ID, Intervals: intervals}, nil
		}
	}
	return nil, nil
}
