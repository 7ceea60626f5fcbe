package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

// ProviderName labels the fixture in logs and metrics.
const ProviderName = "fixture"

// Pages is how many grid pages the fixture venue has.
const Pages = 2

const (
	slotEvery  = 3 * time.Hour
	slotLength = 90 * time.Minute
)

// Provider returns a deterministic venue useful for local runs and tests.
// Courts 1-12 are spread over pages 0 and 1; every other page is empty.
// Court c is free for 90 minutes starting at hour c%3, then every three hours until midnight.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// FetchSchedule builds the fixture schedule for date's calendar day.
func (p *Provider) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	if err := ctx.Err(); err != nil {
		return domain.CourtSchedule{}, err
	}

	day := timeutil.StartOfDay(date)
	schedule := domain.CourtSchedule{Date: day}
	if page < 0 || page >= Pages {
		return schedule, nil
	}

	for _, id := range domain.PageCourtIDs(page) {
		var free []domain.DateRange
		for start := time.Duration(id%3) * time.Hour; start < 24*time.Hour; start += slotEvery {
			from := day.Add(start)
			free = append(free, domain.NewDateRange(from, from.Add(slotLength)))
		}
		schedule.CourtAvailabilities = append(schedule.CourtAvailabilities, domain.CourtAvailability{
			CourtID:      id,
			Availability: free,
		})
	}
	return schedule, nil
}
