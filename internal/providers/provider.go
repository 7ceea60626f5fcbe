package providers

import (
	"context"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
)

// ScheduleFetcher retrieves one page of one day's booking grid.
// The date's calendar day (in its own location) selects the grid; page is zero-based.
type ScheduleFetcher interface {
	FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error)
}

// FetcherFunc adapts a function to ScheduleFetcher.
type FetcherFunc func(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error)

func (f FetcherFunc) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	return f(ctx, date, page)
}
