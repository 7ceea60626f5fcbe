package fixture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
)

var day = time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)

func hour(h int) time.Time {
	return day.Add(time.Duration(h) * time.Hour)
}

func TestFetchScheduleCoversPageCourts(t *testing.T) {
	p := New()

	first, err := p.FetchSchedule(context.Background(), day.Add(15*time.Hour), 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6}, first.CourtIDs()); diff != "" {
		t.Fatalf("page 0 courts mismatch (-want +got):\n%s", diff)
	}
	if !first.Date.Equal(day) {
		t.Fatalf("expected schedule date truncated to day, got %s", first.Date)
	}

	second, _ := p.FetchSchedule(context.Background(), day, 1)
	if diff := cmp.Diff([]int{7, 8, 9, 10, 11, 12}, second.CourtIDs()); diff != "" {
		t.Fatalf("page 1 courts mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchScheduleOutOfRangePageIsEmpty(t *testing.T) {
	for _, page := range []int{-1, 2, 9} {
		s, err := New().FetchSchedule(context.Background(), day, page)
		if err != nil {
			t.Fatalf("page %d: unexpected error %v", page, err)
		}
		if len(s.CourtAvailabilities) != 0 {
			t.Fatalf("page %d: expected no courts, got %v", page, s.CourtIDs())
		}
	}
}

func TestFetchScheduleCourtPattern(t *testing.T) {
	s, _ := New().FetchSchedule(context.Background(), day, 0)

	var raw []domain.DateRange
	for _, ca := range s.CourtAvailabilities {
		if ca.CourtID == 5 {
			raw = ca.Availability
		}
	}
	// 5 % 3 == 2, so runs start at 2, 5, 8, ... 23.
	if len(raw) != 8 {
		t.Fatalf("expected 8 runs for court 5, got %d", len(raw))
	}
	if !raw[0].Start.Equal(hour(2)) || !raw[0].End.Equal(hour(2).Add(90*time.Minute)) {
		t.Fatalf("unexpected first run %s", raw[0])
	}
	if last := raw[len(raw)-1]; !last.Start.Equal(hour(23)) {
		t.Fatalf("unexpected last run %s", last)
	}

	// Court 3 starts at midnight.
	if got := s.IntervalsFor(3); !got[0].Start.Equal(day) {
		t.Fatalf("expected court 3 to open at midnight, got %s", got[0])
	}
}

func TestFetchScheduleIsDeterministic(t *testing.T) {
	a, _ := New().FetchSchedule(context.Background(), day, 1)
	b, _ := New().FetchSchedule(context.Background(), day.Add(23*time.Hour), 1)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("expected identical schedules (-a +b):\n%s", diff)
	}
}

func TestFetchScheduleHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().FetchSchedule(ctx, day, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
