package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// WatchDateLayout is the day-month-year format watch entries are stored in (e.g. 28-3-2025).
const WatchDateLayout = "2-1-2006"

// ClockLayout is the HH:MM time-of-day format used by the venue grid and watch entries.
const ClockLayout = "15:04"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseDateIn parses a YYYY-MM-DD date string as midnight in loc.
func ParseDateIn(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, resolveLoc(loc))
}

// ParseWatchDate parses a d-M-yyyy date string as midnight in loc.
func ParseWatchDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(WatchDateLayout, strings.TrimSpace(value), resolveLoc(loc))
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock formats the time-of-day part as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// ParseClock parses "H:MM" or "HH:MM" and returns that time of day on date's calendar day.
func ParseClock(value string, date time.Time) (time.Time, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return time.Time{}, fmt.Errorf("parse clock %q: missing colon", value)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return time.Time{}, fmt.Errorf("parse clock %q: bad hour", value)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("parse clock %q: bad minute", value)
	}
	return AtClock(date, h, m), nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return AtClock(t, 0, 0)
}

// AtClock returns hh:mm on t's calendar day in t's location.
func AtClock(t time.Time, hh, mm int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hh, mm, 0, 0, t.Location())
}

// LoadLocation resolves a timezone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func resolveLoc(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
