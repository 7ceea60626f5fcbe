package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/metrics"
	"github.com/preston-bernstein/court-availability-service/internal/teststubs"
)

var testDate = time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)

func TestRateLimitedFetcherSpacesCalls(t *testing.T) {
	inner := &teststubs.StubFetcher{}
	rec := metrics.NewRecorder()
	rl := NewRateLimitedFetcher(inner, "stub", 20*time.Millisecond, nil, rec)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := rl.FetchSchedule(context.Background(), testDate, 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected second call to wait for a token, elapsed %s", elapsed)
	}
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected inner fetcher called twice, got %d", inner.Calls.Load())
	}
	if got := rec.Snapshot("stub").RateLimitWaits; got != 2 {
		t.Fatalf("expected 2 recorded waits, got %d", got)
	}
}

func TestRateLimitedFetcherRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubFetcher{}
	rl := NewRateLimitedFetcher(inner, "stub", time.Minute, nil, nil)

	// Drain the initial burst token.
	if _, err := rl.FetchSchedule(context.Background(), testDate, 0); err != nil {
		t.Fatalf("expected first call to pass, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchSchedule(ctx, testDate, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected inner fetcher not called on canceled context, got %d calls", inner.Calls.Load())
	}
}

func TestRateLimitedFetcherHandlesNilInner(t *testing.T) {
	rl := NewRateLimitedFetcher(nil, "stub", time.Millisecond, nil, nil)

	_, err := rl.FetchSchedule(context.Background(), testDate, 0)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedFetcherDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedFetcher(&teststubs.StubFetcher{}, "stub", 0, nil, nil).(*rateLimitedFetcher)
	if rl.interval != defaultRateInterval {
		t.Fatalf("expected default interval %s, got %s", defaultRateInterval, rl.interval)
	}
}
