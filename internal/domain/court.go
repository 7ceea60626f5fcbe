package domain

import (
	"errors"
	"fmt"
	"time"
)

// CourtsPerPage is how many courts the venue shows on one grid page.
const CourtsPerPage = 6

// ErrInvalidCourt is returned for non-positive court ids.
var ErrInvalidCourt = errors.New("invalid court")

// Court identifies a single court at the venue.
type Court struct {
	ID int `json:"id"`
}

// Page is the zero-based grid page that lists this court.
func (c Court) Page() int {
	return (c.ID - 1) / CourtsPerPage
}

// Validate rejects ids below 1.
func (c Court) Validate() error {
	if c.ID < 1 {
		return fmt.Errorf("%w: id %d", ErrInvalidCourt, c.ID)
	}
	return nil
}

// IsAvailable reports whether t falls inside one of the court's merged free intervals.
func (c Court) IsAvailable(schedule CourtSchedule, t time.Time) bool {
	for _, interval := range schedule.IntervalsFor(c.ID) {
		if interval.Contains(t) {
			return true
		}
	}
	return false
}

// PageCourtIDs lists the court ids covered by a page, in column order.
func PageCourtIDs(page int) []int {
	ids := make([]int, CourtsPerPage)
	for i := range ids {
		ids[i] = 1 + page*CourtsPerPage + i
	}
	return ids
}
