package store

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
)

// WatchResult is the latest outcome of polling one watch.
type WatchResult struct {
	WatchID   string             `json:"watchId"`
	Window    domain.DateRange   `json:"window"`
	Courts    []int              `json:"courts"`
	Available bool               `json:"available"`
	CourtID   int                `json:"courtId,omitempty"`
	Intervals []domain.DateRange `json:"intervals,omitempty"`
	CheckedAt time.Time          `json:"checkedAt"`
	Error     string             `json:"error,omitempty"`
}

// MemoryStore keeps a thread-safe set of watch results in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]WatchResult
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results: make(map[string]WatchResult),
	}
}

// List returns a copy of the current results ordered by watch id.
func (s *MemoryStore) List() []WatchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]WatchResult, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b WatchResult) int {
		return strings.Compare(a.WatchID, b.WatchID)
	})
	return out
}

// Get retrieves the latest result of a watch.
func (s *MemoryStore) Get(id string) (WatchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[id]
	return r, ok
}

// Put stores r and returns the result it replaced, if any.
func (s *MemoryStore) Put(r WatchResult) (WatchResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.results[r.WatchID]
	s.results[r.WatchID] = r
	return prev, ok
}

// Retain drops results whose watch id is not in ids.
func (s *MemoryStore) Retain(ids []string) {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.results {
		if _, ok := keep[id]; !ok {
			delete(s.results, id)
		}
	}
}
