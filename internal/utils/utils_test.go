package utils

import (
	"testing"
	"time"
)

func TestFormatRupees(t *testing.T) {
	cases := map[int64]string{
		0:        "₹0",
		999:      "₹999",
		1000:     "₹1,000",
		125000:   "₹1,25,000",
		12345678: "₹1,23,45,678",
		-4500:    "-₹4,500",
	}
	for in, want := range cases {
		if got := FormatRupees(in); got != want {
			t.Fatalf("FormatRupees(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseRupees(t *testing.T) {
	for in, want := range map[string]int64{"₹1,25,000": 125000, "Rs 900": 900, "1000": 1000} {
		got, err := ParseRupees(in)
		if err != nil || got != want {
			t.Fatalf("ParseRupees(%q) = %d, %v", in, got, err)
		}
	}
	if _, err := ParseRupees("₹"); err == nil {
		t.Fatalf("expected error for empty amount")
	}
}

func TestJourneyInstant(t *testing.T) {
	loc := time.UTC
	got, err := JourneyInstant("2026-03-01", "21:30", loc)
	if err != nil {
		t.Fatalf("JourneyInstant error: %v", err)
	}
	if want := time.Date(2026, 3, 1, 21, 30, 0, 0, loc); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	midnight, err := JourneyInstant("2026-03-01", "", loc)
	if err != nil || midnight.Hour() != 0 {
		t.Fatalf("date-only instant = %v, %v", midnight, err)
	}
	if _, err := JourneyInstant("soon", "", loc); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestClockHelpers(t *testing.T) {
	if got := FormatClock12("14:05"); got != "2:05 PM" {
		t.Fatalf("FormatClock12 = %q", got)
	}
	if got := FormatClock12("00:15"); got != "12:15 AM" {
		t.Fatalf("FormatClock12 midnight = %q", got)
	}
	if got := Duration("22:30", "06:15"); got != "7h 45m" {
		t.Fatalf("Duration overnight = %q", got)
	}
	if h, err := ParseHour("07:40"); err != nil || h != 7 {
		t.Fatalf("ParseHour = %d, %v", h, err)
	}
}

func TestNormalizeCity(t *testing.T) {
	if got := NormalizeCity(" New  Delhi "); got != "newdelhi" {
		t.Fatalf("NormalizeCity = %q", got)
	}
}

func TestNormalizeSpaceAndContainsFold(t *testing.T) {
	if got := NormalizeSpace("  New \t Delhi "); got != "New Delhi" {
		t.Fatalf("NormalizeSpace = %q", got)
	}
	if !ContainsFold("VRL Travels", "vrl") || ContainsFold("VRL", "srs") {
		t.Fatalf("ContainsFold mismatch")
	}
}
