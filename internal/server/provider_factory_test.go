package server

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/config"
	"github.com/preston-bernstein/court-availability-service/internal/metrics"
	"github.com/preston-bernstein/court-availability-service/internal/store"
	"github.com/preston-bernstein/court-availability-service/internal/testutil"
	"github.com/preston-bernstein/court-availability-service/internal/teststubs"
)

func TestProviderFactoryBuildsFixtureStack(t *testing.T) {
	rec := metrics.NewRecorder()
	cache := store.NewScheduleCache(0)
	fetcher := newProviderFactory(nil, rec).build(config.Config{Provider: "fixture"}, cache)
	if fetcher == nil {
		t.Fatalf("expected fetcher")
	}

	if _, err := fetcher.FetchSchedule(context.Background(), testutil.SampleDay, 0); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected schedule cached, got %d entries", cache.Len())
	}
	if rec.ProviderCalls("fixture") != 1 {
		t.Fatalf("expected instrumented fixture call, got %d", rec.ProviderCalls("fixture"))
	}
}

func TestProviderFactoryWrapCachesInjectedSource(t *testing.T) {
	stub := &teststubs.StubFetcher{}
	cache := store.NewScheduleCache(time.Minute)
	fetcher := newProviderFactory(nil, nil).wrap(stub, "stub", cache)

	for range 3 {
		if _, err := fetcher.FetchSchedule(context.Background(), testutil.SampleDay, 1); err != nil {
			t.Fatalf("fetch: %v", err)
		}
	}
	if got := stub.Calls.Load(); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName(" Kluby ", nil); got != "kluby" {
		t.Fatalf("expected lower-cased name, got %q", got)
	}
	if got := normalizeProviderName("", testutil.EmptyFetcher{}); got != "testutil.emptyfetcher" {
		t.Fatalf("expected type-derived name, got %q", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected generic name, got %q", got)
	}
}
