package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
)

// StubFetcher is a test double for providers.ScheduleFetcher.
// Schedules keyed by page take precedence over Schedule.
type StubFetcher struct {
	Schedule  domain.CourtSchedule
	Schedules map[int]domain.CourtSchedule
	Err       error
	Delay     time.Duration
	Calls     atomic.Int32
	Notify    chan struct{}

	mu    sync.Mutex
	pages []int
}

// FetchSchedule returns the configured schedule and error while tracking calls.
func (s *StubFetcher) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	s.mu.Lock()
	s.pages = append(s.pages, page)
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return domain.CourtSchedule{}, ctx.Err()
		}
	}
	if s.Err != nil {
		return domain.CourtSchedule{}, s.Err
	}
	if sched, ok := s.Schedules[page]; ok {
		return sched, nil
	}
	sched := s.Schedule
	if sched.Date.IsZero() {
		sched.Date = date
	}
	return sched, nil
}

// Pages returns the pages requested so far, in call order.
func (s *StubFetcher) Pages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.pages...)
}
