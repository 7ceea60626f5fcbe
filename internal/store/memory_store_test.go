package store

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryStorePutAndGet(t *testing.T) {
	s := NewMemoryStore()

	if _, replaced := s.Put(WatchResult{WatchID: "b", Courts: []int{5}}); replaced {
		t.Fatal("expected first put to replace nothing")
	}
	s.Put(WatchResult{WatchID: "a", Courts: []int{1, 2}})

	got, ok := s.Get("b")
	if !ok || got.Courts[0] != 5 {
		t.Fatalf("unexpected result %+v ok=%v", got, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Fatal("expected miss for unknown id")
	}

	prev, replaced := s.Put(WatchResult{WatchID: "b", Available: true, CourtID: 5, CheckedAt: day})
	if !replaced || prev.Available {
		t.Fatalf("expected previous unavailable result, got %+v replaced=%v", prev, replaced)
	}
}

func TestMemoryStoreListSortedByID(t *testing.T) {
	s := NewMemoryStore()
	for _, id := range []string{"c", "a", "b"} {
		s.Put(WatchResult{WatchID: id})
	}

	list := s.List()
	if len(list) != 3 || list[0].WatchID != "a" || list[1].WatchID != "b" || list[2].WatchID != "c" {
		t.Fatalf("unexpected order %+v", list)
	}
}

func TestMemoryStoreRetain(t *testing.T) {
	s := NewMemoryStore()
	s.Put(WatchResult{WatchID: "keep"})
	s.Put(WatchResult{WatchID: "drop"})

	s.Retain([]string{"keep", "absent"})

	if _, ok := s.Get("drop"); ok {
		t.Fatal("expected dropped result to be gone")
	}
	if len(s.List()) != 1 {
		t.Fatalf("expected one result left, got %d", len(s.List()))
	}
}

func TestMemoryStoreConcurrentPuts(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Put(WatchResult{WatchID: string(rune('a' + n%5)), CheckedAt: day.Add(time.Duration(n) * time.Minute)})
			_ = s.List()
		}(i)
	}
	wg.Wait()
	if len(s.List()) != 5 {
		t.Fatalf("expected 5 results, got %d", len(s.List()))
	}
}
