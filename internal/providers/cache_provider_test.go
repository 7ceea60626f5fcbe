package providers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/metrics"
	"github.com/preston-bernstein/court-availability-service/internal/store"
	"github.com/preston-bernstein/court-availability-service/internal/teststubs"
)

func stubSchedule() domain.CourtSchedule {
	return domain.CourtSchedule{
		Date: testDate,
		CourtAvailabilities: []domain.CourtAvailability{
			{CourtID: 2, Availability: []domain.DateRange{
				domain.NewDateRange(testDate.Add(8*time.Hour), testDate.Add(10*time.Hour)),
			}},
		},
	}
}

func TestCachingFetcherServesRepeatsFromCache(t *testing.T) {
	inner := &teststubs.StubFetcher{Schedule: stubSchedule()}
	rec := metrics.NewRecorder()
	f := NewCachingFetcher(inner, store.NewScheduleCache(0), nil, rec)

	first, err := f.FetchSchedule(context.Background(), testDate, 0)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := f.FetchSchedule(context.Background(), testDate.Add(9*time.Hour), 0)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if inner.Calls.Load() != 1 {
		t.Fatalf("expected a single upstream call, got %d", inner.Calls.Load())
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("cached schedule differs (-first +second):\n%s", diff)
	}
	if rec.CacheHits() != 1 || rec.CacheMisses() != 1 {
		t.Fatalf("expected 1 hit / 1 miss, got %d / %d", rec.CacheHits(), rec.CacheMisses())
	}
}

func TestCachingFetcherKeysByPage(t *testing.T) {
	inner := &teststubs.StubFetcher{Schedule: stubSchedule()}
	f := NewCachingFetcher(inner, store.NewScheduleCache(0), nil, nil)

	_, _ = f.FetchSchedule(context.Background(), testDate, 0)
	_, _ = f.FetchSchedule(context.Background(), testDate, 1)

	if inner.Calls.Load() != 2 {
		t.Fatalf("expected one upstream call per page, got %d", inner.Calls.Load())
	}
}

func TestCachingFetcherDoesNotStoreFailures(t *testing.T) {
	boom := errors.New("boom")
	inner := &teststubs.StubFetcher{Err: boom}
	cache := store.NewScheduleCache(0)
	f := NewCachingFetcher(inner, cache, nil, nil)

	if _, err := f.FetchSchedule(context.Background(), testDate, 0); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected failure not cached, len=%d", cache.Len())
	}

	inner.Err = nil
	inner.Schedule = stubSchedule()
	if _, err := f.FetchSchedule(context.Background(), testDate, 0); err != nil {
		t.Fatalf("expected retry after failure to succeed, got %v", err)
	}
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected failed key to be refetched, got %d calls", inner.Calls.Load())
	}
}

func TestCachingFetcherCollapsesConcurrentMisses(t *testing.T) {
	inner := &teststubs.StubFetcher{Schedule: stubSchedule(), Delay: 50 * time.Millisecond}
	f := NewCachingFetcher(inner, store.NewScheduleCache(0), nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.FetchSchedule(context.Background(), testDate, 0); err != nil {
				t.Errorf("fetch: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := inner.Calls.Load(); got != 1 {
		t.Fatalf("expected concurrent misses to share one upstream call, got %d", got)
	}
}

func TestCachingFetcherCanceledCallerDoesNotFailSharedFlight(t *testing.T) {
	inner := &teststubs.StubFetcher{Schedule: stubSchedule(), Delay: 200 * time.Millisecond, Notify: make(chan struct{})}
	f := NewCachingFetcher(inner, store.NewScheduleCache(0), nil, nil)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	defer cancelLeader()
	leaderErr := make(chan error, 1)
	go func() {
		_, err := f.FetchSchedule(leaderCtx, testDate, 0)
		leaderErr <- err
	}()
	<-inner.Notify

	type result struct {
		schedule domain.CourtSchedule
		err      error
	}
	waiter := make(chan result, 1)
	go func() {
		s, err := f.FetchSchedule(context.Background(), testDate, 0)
		waiter <- result{s, err}
	}()
	time.Sleep(20 * time.Millisecond)
	cancelLeader()

	if err := <-leaderErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected leader to see its own cancellation, got %v", err)
	}
	got := <-waiter
	if got.err != nil {
		t.Fatalf("expected waiter with live context to succeed, got %v", got.err)
	}
	if diff := cmp.Diff(stubSchedule(), got.schedule); diff != "" {
		t.Fatalf("schedule mismatch (-want +got):\n%s", diff)
	}
	if calls := inner.Calls.Load(); calls != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
	if _, err := f.FetchSchedule(context.Background(), testDate, 0); err != nil || inner.Calls.Load() != 1 {
		t.Fatalf("expected flight result cached, err=%v calls=%d", err, inner.Calls.Load())
	}
}

func TestCachingFetcherWithoutCachePassesThrough(t *testing.T) {
	inner := &teststubs.StubFetcher{Schedule: stubSchedule()}
	f := NewCachingFetcher(inner, nil, nil, nil)

	_, _ = f.FetchSchedule(context.Background(), testDate, 0)
	_, _ = f.FetchSchedule(context.Background(), testDate, 0)
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected pass-through calls, got %d", inner.Calls.Load())
	}
}

func TestCachingFetcherNilInner(t *testing.T) {
	f := NewCachingFetcher(nil, store.NewScheduleCache(0), nil, nil)
	if _, err := f.FetchSchedule(context.Background(), testDate, 0); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
