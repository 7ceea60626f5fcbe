package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestParseWatchDate(t *testing.T) {
	loc := time.FixedZone("cet", 3600)
	parsed, err := ParseWatchDate("28-3-2025", loc)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	want := time.Date(2025, 3, 28, 0, 0, 0, 0, loc)
	if !parsed.Equal(want) {
		t.Fatalf("expected %s, got %s", want, parsed)
	}
	if _, err := ParseWatchDate("2025-03-28", loc); err == nil {
		t.Fatal("expected ISO date to be rejected")
	}
}

func TestParseClock(t *testing.T) {
	day := time.Date(2025, 3, 28, 13, 45, 0, 0, time.UTC)

	cases := []struct {
		in     string
		hh, mm int
		ok     bool
	}{
		{"07:30", 7, 30, true},
		{"7:30", 7, 30, true},
		{" 22:00 ", 22, 0, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"Godz.", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in, day)
		if tc.ok != (err == nil) {
			t.Fatalf("%q: expected ok=%v, got err=%v", tc.in, tc.ok, err)
		}
		if !tc.ok {
			continue
		}
		want := time.Date(2025, 3, 28, tc.hh, tc.mm, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("%q: expected %s, got %s", tc.in, want, got)
		}
	}
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	if got := LoadLocation("Not/AZone"); got != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", got)
	}
	if got := LoadLocation(""); got != time.UTC {
		t.Fatalf("expected UTC for empty name, got %v", got)
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 28, 22, 15, 9, 0, time.UTC)
	if got := StartOfDay(in); !got.Equal(time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start of day %s", got)
	}
}
