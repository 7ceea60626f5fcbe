package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

// ScheduleKey identifies one fetched grid page for one day.
type ScheduleKey struct {
	Date string
	Page int
}

// KeyFor builds the cache key for date's calendar day (in date's location) and page.
func KeyFor(date time.Time, page int) ScheduleKey {
	return ScheduleKey{Date: timeutil.FormatDate(date), Page: page}
}

func (k ScheduleKey) String() string {
	return fmt.Sprintf("%s/%d", k.Date, k.Page)
}

type cachedSchedule struct {
	schedule domain.CourtSchedule
	storedAt time.Time
}

// ScheduleCache keeps parsed schedules keyed by (date, page).
// A zero TTL keeps entries until Purge; a positive TTL expires them lazily on read.
type ScheduleCache struct {
	mu      sync.RWMutex
	entries map[ScheduleKey]cachedSchedule
	ttl     time.Duration
	now     func() time.Time
}

// NewScheduleCache constructs an empty cache with the given TTL.
func NewScheduleCache(ttl time.Duration) *ScheduleCache {
	if ttl < 0 {
		ttl = 0
	}
	return &ScheduleCache{
		entries: make(map[ScheduleKey]cachedSchedule),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a live entry for (date, page).
func (c *ScheduleCache) Get(date time.Time, page int) (domain.CourtSchedule, bool) {
	key := KeyFor(date, page)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return domain.CourtSchedule{}, false
	}
	if c.expired(entry) {
		c.mu.Lock()
		if current, still := c.entries[key]; still && c.expired(current) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return domain.CourtSchedule{}, false
	}
	return entry.schedule, true
}

// Set stores schedule for (date, page), replacing any previous entry.
func (c *ScheduleCache) Set(date time.Time, page int, schedule domain.CourtSchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[KeyFor(date, page)] = cachedSchedule{schedule: schedule, storedAt: c.now()}
}

// Purge drops every entry and reports how many were removed.
func (c *ScheduleCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[ScheduleKey]cachedSchedule)
	return n
}

// Len reports the number of stored entries, including ones that have expired but not been read.
func (c *ScheduleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured expiry.
func (c *ScheduleCache) TTL() time.Duration {
	return c.ttl
}

func (c *ScheduleCache) expired(entry cachedSchedule) bool {
	return c.ttl > 0 && c.now().Sub(entry.storedAt) >= c.ttl
}
