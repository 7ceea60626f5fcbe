package testutil

import (
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
)

// SampleDay is the calendar day most fixtures are anchored to.
var SampleDay = time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)

// At returns hh:mm on SampleDay.
func At(hh, mm int) time.Time {
	return time.Date(2025, 3, 28, hh, mm, 0, 0, time.UTC)
}

// SampleSchedule builds a schedule where every court on page is free for the given ranges.
func SampleSchedule(page int, free ...domain.DateRange) domain.CourtSchedule {
	ids := domain.PageCourtIDs(page)
	courts := make([]domain.CourtAvailability, 0, len(ids))
	for _, id := range ids {
		courts = append(courts, domain.CourtAvailability{CourtID: id, Availability: free})
	}
	return domain.CourtSchedule{Date: SampleDay, CourtAvailabilities: courts}
}

// CourtOnly builds a schedule where only courtID has free ranges.
func CourtOnly(courtID int, free ...domain.DateRange) domain.CourtSchedule {
	return domain.CourtSchedule{
		Date:                SampleDay,
		CourtAvailabilities: []domain.CourtAvailability{{CourtID: courtID, Availability: free}},
	}
}
