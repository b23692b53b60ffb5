package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutClock    = "15:04"
	layoutDateTime = "2006-01-02 15:04"
)

// ParseDate parses YYYY-MM-DD in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), location(loc))
}

// CanonicalDate parses YYYY-MM-DD and returns it re-formatted, so stored
// dates compare equal regardless of surrounding whitespace.
func CanonicalDate(s string, loc *time.Location) (string, error) {
	t, err := ParseDate(s, loc)
	if err != nil {
		return "", err
	}
	return t.Format(layoutDate), nil
}

// JourneyInstant combines a YYYY-MM-DD date with an optional HH:MM departure.
// A missing clock means midnight.
func JourneyInstant(date, clock string, loc *time.Location) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return ParseDate(date, loc)
	}
	return time.ParseInLocation(layoutDateTime, strings.TrimSpace(date)+" "+clock, location(loc))
}

// ParseHour returns the hour of an HH:MM clock.
func ParseHour(clock string) (int, error) {
	t, err := time.Parse(layoutClock, strings.TrimSpace(clock))
	if err != nil {
		return 0, err
	}
	return t.Hour(), nil
}

// FormatClock12 renders "14:05" as "2:05 PM".
func FormatClock12(clock string) string {
	t, err := time.Parse(layoutClock, strings.TrimSpace(clock))
	if err != nil {
		return clock
	}
	return t.Format("3:04 PM")
}

// Duration renders the travel time between two clocks, rolling past midnight.
func Duration(departure, arrival string) string {
	dep, err1 := time.Parse(layoutClock, strings.TrimSpace(departure))
	arr, err2 := time.Parse(layoutClock, strings.TrimSpace(arrival))
	if err1 != nil || err2 != nil {
		return ""
	}
	mins := int(arr.Sub(dep).Minutes())
	if mins < 0 {
		mins += 24 * 60
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

// ParseDurationOr parses s as a Go duration, falling back to def.
func ParseDurationOr(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
