package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/checker"
	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/logging"
	"github.com/preston-bernstein/court-availability-service/internal/metrics"
	"github.com/preston-bernstein/court-availability-service/internal/store"
	"github.com/preston-bernstein/court-availability-service/internal/watch"
)

const defaultInterval = time.Minute

// AvailabilityChecker finds the first court of a watch with a qualifying run.
type AvailabilityChecker interface {
	CheckAny(ctx context.Context, reqs []domain.CourtRequest) (*checker.Match, error)
}

// ResultStore keeps the latest result per watch.
type ResultStore interface {
	Put(r store.WatchResult) (store.WatchResult, bool)
	Retain(ids []string)
}

// Config holds the poll interval, the watch list, and the zone watch dates are read in.
type Config struct {
	Interval time.Duration
	Watches  []watch.Entry
	Location *time.Location
}

// Poller re-checks every watch on an interval and records the outcome.
type Poller struct {
	checker  AvailabilityChecker
	results  ResultStore
	watches  []watch.Entry
	loc      *time.Location
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(check AvailabilityChecker, results ResultStore, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Poller{
		checker:  check,
		results:  results,
		watches:  cfg.Watches,
		loc:      loc,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started",
			slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()),
			slog.Int(logging.FieldCount, len(p.watches)),
		)
		p.pollOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.pollOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// pollOnce checks every live watch in order. A failing watch is logged and recorded
// but never stops the others; the cycle counts as failed if any watch failed.
// A cycle that runs to completion drops results of watches that were not checked.
func (p *Poller) pollOnce(ctx context.Context) {
	start := p.now()
	began := time.Now()
	p.recordAttempt(start)

	var errs []error
	live := make([]string, 0, len(p.watches))
	for _, w := range p.watches {
		if ctx.Err() != nil {
			break
		}
		ran, err := p.checkWatch(ctx, w)
		if ran {
			live = append(live, w.ID())
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("watch %s: %w", w.ID(), err))
		}
	}
	if ctx.Err() == nil && p.results != nil {
		p.results.Retain(live)
	}
	err := errors.Join(errs...)

	elapsed := time.Since(began)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		p.logError("poller cycle had failures", err,
			slog.Int(logging.FieldCount, len(errs)),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		p.recordFailure(err, start)
		return
	}
	p.recordSuccess(start)
	p.logInfo("poller checked watches",
		slog.Int(logging.FieldCount, len(live)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
}

// checkWatch runs one watch; ran is false for watches whose window has passed.
func (p *Poller) checkWatch(ctx context.Context, w watch.Entry) (ran bool, err error) {
	id := w.ID()
	reqs, err := w.Requests(p.loc)
	if err != nil {
		p.put(store.WatchResult{WatchID: id, Courts: w.CourtIDs(), CheckedAt: p.now(), Error: err.Error()})
		return true, err
	}
	window := reqs[0].DateRange
	if !window.End.After(p.now()) {
		if p.logger != nil {
			p.logger.Debug("watch window passed", slog.String(logging.FieldWatchID, id))
		}
		return false, nil
	}

	result := store.WatchResult{WatchID: id, Window: window, Courts: w.CourtIDs()}
	match, err := p.checker.CheckAny(ctx, reqs)
	result.CheckedAt = p.now()
	if err != nil {
		result.Error = err.Error()
		p.put(result)
		return true, err
	}
	if match != nil {
		result.Available = true
		result.CourtID = match.CourtID
		result.Intervals = match.Intervals
	}

	prev, seen := p.put(result)
	if result.Available && (!seen || !prev.Available) {
		p.alert(w, result)
	}
	return true, nil
}

func (p *Poller) alert(w watch.Entry, r store.WatchResult) {
	if p.logger == nil {
		return
	}
	p.logger.Info("court available",
		slog.String(logging.FieldWatchID, r.WatchID),
		slog.String("watch", w.String()),
		slog.Int(logging.FieldCourt, r.CourtID),
		slog.Int(logging.FieldCount, len(r.Intervals)),
		slog.String("first", r.Intervals[0].String()),
	)
}

func (p *Poller) put(r store.WatchResult) (store.WatchResult, bool) {
	if p.results == nil {
		return store.WatchResult{}, false
	}
	return p.results.Put(r)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Watches returns the configured watch list.
func (p *Poller) Watches() []watch.Entry {
	return p.watches
}
