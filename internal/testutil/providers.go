package testutil

import (
	"context"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/providers"
)

// GoodFetcher returns the same schedule for every page, stamped with the requested day.
type GoodFetcher struct {
	Schedule domain.CourtSchedule
}

func (f GoodFetcher) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	_ = ctx
	_ = page
	s := f.Schedule
	if s.Date.IsZero() {
		s.Date = date
	}
	return s, nil
}

// ErrFetcher always returns the provided error.
type ErrFetcher struct {
	Err error
}

func (f ErrFetcher) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	return domain.CourtSchedule{}, f.Err
}

// EmptyFetcher returns an empty schedule, no error.
type EmptyFetcher struct{}

func (EmptyFetcher) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	return domain.CourtSchedule{Date: date}, nil
}

// UnavailableFetcher returns ErrProviderUnavailable.
type UnavailableFetcher struct{}

func (UnavailableFetcher) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	return domain.CourtSchedule{}, providers.ErrProviderUnavailable
}
