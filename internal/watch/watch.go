package watch

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

// ErrInvalidEntry wraps every validation failure of a watch entry.
var ErrInvalidEntry = errors.New("invalid watch entry")

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://kluby.org/watch"))

// Entry is one stored reservation watch: a day, a same-day time window, and the courts to try in order.
type Entry struct {
	Date             string `mapstructure:"date" json:"date"`
	StartTime        string `mapstructure:"startTime" json:"startTime"`
	EndTime          string `mapstructure:"endTime" json:"endTime"`
	Courts           []int  `mapstructure:"courts" json:"courts"`
	NonOverlapping   *bool  `mapstructure:"nonOverlapping" json:"nonOverlapping,omitempty"`
	RequiredInterval string `mapstructure:"requiredInterval" json:"requiredInterval,omitempty"`
}

// Window resolves the entry's date and times to a range in loc.
func (e Entry) Window(loc *time.Location) (domain.DateRange, error) {
	day, err := timeutil.ParseWatchDate(e.Date, loc)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: date %q: %w", ErrInvalidEntry, e.Date, err)
	}
	start, err := timeutil.ParseClock(e.StartTime, day)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: start time: %w", ErrInvalidEntry, err)
	}
	end, err := timeutil.ParseClock(e.EndTime, day)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: end time: %w", ErrInvalidEntry, err)
	}
	window := domain.NewDateRange(start, end)
	if err := window.Validate(); err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return window, nil
}

// Required returns the minimum run length, defaulting to one hour.
func (e Entry) Required() (time.Duration, error) {
	if strings.TrimSpace(e.RequiredInterval) == "" {
		return domain.DefaultRequiredInterval, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(e.RequiredInterval))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: required interval %q", ErrInvalidEntry, e.RequiredInterval)
	}
	return d, nil
}

// Requests expands the entry into one request per court, in the entry's court order.
// Non-overlapping selection is on unless the entry turns it off.
func (e Entry) Requests(loc *time.Location) ([]domain.CourtRequest, error) {
	if len(e.Courts) == 0 {
		return nil, fmt.Errorf("%w: no courts", ErrInvalidEntry)
	}
	window, err := e.Window(loc)
	if err != nil {
		return nil, err
	}
	required, err := e.Required()
	if err != nil {
		return nil, err
	}
	nonOverlapping := true
	if e.NonOverlapping != nil {
		nonOverlapping = *e.NonOverlapping
	}

	reqs := make([]domain.CourtRequest, 0, len(e.Courts))
	for _, id := range e.Courts {
		req := domain.NewCourtRequest(window, domain.Court{ID: id})
		req.RequiredInterval = required
		req.NonOverlapping = nonOverlapping
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("%w: court %d: %w", ErrInvalidEntry, id, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Validate checks the entry resolves to valid requests.
func (e Entry) Validate() error {
	_, err := e.Requests(time.UTC)
	return err
}

// ID is a stable identifier derived from the entry's fields.
func (e Entry) ID() string {
	return uuid.NewSHA1(idNamespace, []byte(e.canonical())).String()
}

func (e Entry) canonical() string {
	courts := make([]string, len(e.Courts))
	for i, c := range e.Courts {
		courts[i] = strconv.Itoa(c)
	}
	overlap := "default"
	if e.NonOverlapping != nil {
		overlap = strconv.FormatBool(*e.NonOverlapping)
	}
	return strings.Join([]string{
		strings.TrimSpace(e.Date),
		strings.TrimSpace(e.StartTime),
		strings.TrimSpace(e.EndTime),
		strings.Join(courts, ","),
		overlap,
		strings.TrimSpace(e.RequiredInterval),
	}, "|")
}

// String is a short human label, e.g. "28-3-2025 22:00-23:00 courts 5,6".
func (e Entry) String() string {
	courts := make([]string, len(e.Courts))
	for i, c := range e.Courts {
		courts[i] = strconv.Itoa(c)
	}
	return fmt.Sprintf("%s %s-%s courts %s", e.Date, e.StartTime, e.EndTime, strings.Join(courts, ","))
}

// CourtIDs returns a copy of the entry's court ids.
func (e Entry) CourtIDs() []int {
	return slices.Clone(e.Courts)
}
