package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
)

var warsaw = time.FixedZone("CET", 3600)

func sampleEntry() Entry {
	return Entry{Date: "28-3-2025", StartTime: "22:00", EndTime: "23:00", Courts: []int{5, 6}}
}

func TestRequestsOnePerCourtInOrder(t *testing.T) {
	reqs, err := sampleEntry().Requests(warsaw)
	if err != nil {
		t.Fatalf("requests: %v", err)
	}
	if len(reqs) != 2 || reqs[0].Court.ID != 5 || reqs[1].Court.ID != 6 {
		t.Fatalf("unexpected requests %+v", reqs)
	}

	want := domain.NewDateRange(
		time.Date(2025, 3, 28, 22, 0, 0, 0, warsaw),
		time.Date(2025, 3, 28, 23, 0, 0, 0, warsaw),
	)
	if diff := cmp.Diff(want, reqs[0].DateRange); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	if !reqs[0].NonOverlapping {
		t.Fatal("expected non-overlapping by default")
	}
	if reqs[0].RequiredInterval != time.Hour {
		t.Fatalf("expected default 1h, got %s", reqs[0].RequiredInterval)
	}
}

func TestRequestsHonorOverrides(t *testing.T) {
	off := false
	e := sampleEntry()
	e.NonOverlapping = &off
	e.RequiredInterval = "30m"

	reqs, err := e.Requests(time.UTC)
	if err != nil {
		t.Fatalf("requests: %v", err)
	}
	if reqs[0].NonOverlapping || reqs[0].RequiredInterval != 30*time.Minute {
		t.Fatalf("expected overrides applied, got %+v", reqs[0])
	}
}

func TestRequestsRejectInvalidEntries(t *testing.T) {
	cases := map[string]func(*Entry){
		"bad date":        func(e *Entry) { e.Date = "2025-03-28" },
		"bad start":       func(e *Entry) { e.StartTime = "25:00" },
		"bad end":         func(e *Entry) { e.EndTime = "" },
		"inverted window": func(e *Entry) { e.StartTime, e.EndTime = "23:00", "22:00" },
		"no courts":       func(e *Entry) { e.Courts = nil },
		"zero court":      func(e *Entry) { e.Courts = []int{0} },
		"bad duration":    func(e *Entry) { e.RequiredInterval = "soon" },
		"short duration":  func(e *Entry) { e.RequiredInterval = "10m" },
	}
	for name, mutate := range cases {
		e := sampleEntry()
		mutate(&e)
		if _, err := e.Requests(time.UTC); !errors.Is(err, ErrInvalidEntry) {
			t.Fatalf("%s: expected ErrInvalidEntry, got %v", name, err)
		}
	}
}

func TestIDIsStableAndDistinct(t *testing.T) {
	a := sampleEntry()
	b := sampleEntry()
	if a.ID() != b.ID() {
		t.Fatalf("expected equal entries to share an id")
	}
	if _, err := uuid.Parse(a.ID()); err != nil {
		t.Fatalf("expected uuid id, got %q", a.ID())
	}

	b.Courts = []int{6, 5}
	if a.ID() == b.ID() {
		t.Fatalf("expected court order to change the id")
	}
}

func TestStringLabel(t *testing.T) {
	if got := sampleEntry().String(); got != "28-3-2025 22:00-23:00 courts 5,6" {
		t.Fatalf("unexpected label %q", got)
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "watches.yaml", `
watches:
  - date: 28-3-2025
    startTime: "22:00"
    endTime: "23:00"
    courts: [5, 6]
  - date: 29-3-2025
    startTime: "08:00"
    endTime: "12:00"
    courts: [1]
    nonOverlapping: false
    requiredInterval: 90m
  - date: 28-3-2025
    startTime: "22:00"
    endTime: "23:00"
    courts: [5, 6]
`)
	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected duplicate collapsed to 2 entries, got %d", len(entries))
	}
	if diff := cmp.Diff(sampleEntry(), entries[0]); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
	second := entries[1]
	if second.NonOverlapping == nil || *second.NonOverlapping || second.RequiredInterval != "90m" {
		t.Fatalf("unexpected second entry %+v", second)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "watches.json", `{"watches":[{"date":"1-4-2025","startTime":"7:00","endTime":"9:00","courts":[12]}]}`)
	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].Courts[0] != 12 {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestLoadFileRejectsInvalidEntry(t *testing.T) {
	path := writeFile(t, "watches.yaml", "watches:\n  - date: nope\n    startTime: \"22:00\"\n    endTime: \"23:00\"\n    courts: [5]\n")
	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileWithoutWatchesKey(t *testing.T) {
	path := writeFile(t, "empty.yaml", "other: true\n")
	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}
