package domain

import (
	"slices"
	"time"
)

// Parse warning kinds attached to a schedule.
const (
	WarningUnparsableTime = "unparsable_time"
	WarningMissingCells   = "missing_cells"
)

// CourtAvailability holds the raw free intervals of one court on one fetched page.
type CourtAvailability struct {
	CourtID      int         `json:"courtId"`
	Availability []DateRange `json:"availability"`
}

// ParseWarning describes grid data that was defaulted or dropped while parsing.
type ParseWarning struct {
	Row    int    `json:"row"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// CourtSchedule is the parsed result of one fetch of one page for one day.
type CourtSchedule struct {
	Date                time.Time           `json:"date"`
	CourtAvailabilities []CourtAvailability `json:"courts"`
	Warnings            []ParseWarning      `json:"warnings,omitempty"`
}

// IntervalsFor returns the merged, start-ordered free intervals of a court.
func (s CourtSchedule) IntervalsFor(courtID int) []DateRange {
	var intervals []DateRange
	for _, ca := range s.CourtAvailabilities {
		if ca.CourtID == courtID {
			intervals = append(intervals, ca.Availability...)
		}
	}
	return MergeIntervals(intervals)
}

// CourtIDs lists the courts present in the schedule.
func (s CourtSchedule) CourtIDs() []int {
	ids := make([]int, 0, len(s.CourtAvailabilities))
	for _, ca := range s.CourtAvailabilities {
		ids = append(ids, ca.CourtID)
	}
	return ids
}

// MergeIntervals sorts a copy of the input and joins touching or overlapping intervals.
func MergeIntervals(intervals []DateRange) []DateRange {
	if len(intervals) == 0 {
		return nil
	}
	sorted := slices.Clone(intervals)
	SortRanges(sorted)

	merged := make([]DateRange, 0, len(sorted))
	start, end := sorted[0].Start, sorted[0].End
	for _, r := range sorted[1:] {
		if !r.Start.After(end) {
			if r.End.After(end) {
				end = r.End
			}
			continue
		}
		merged = append(merged, NewDateRange(start, end))
		start, end = r.Start, r.End
	}
	return append(merged, NewDateRange(start, end))
}
