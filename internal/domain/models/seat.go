package models

import (
	"encoding/json"
	"strings"
)

// SeatState is the per-seat value stored in a bus layout.
type SeatState string

const (
	SeatAvailable   SeatState = "available"
	SeatBooked      SeatState = "booked"
	SeatSelected    SeatState = "selected"
	SeatUnavailable SeatState = "unavailable"
	SeatWomen       SeatState = "women"
)

// ParseSeatState maps unknown or empty values to available.
func ParseSeatState(s string) SeatState {
	switch SeatState(strings.ToLower(strings.TrimSpace(s))) {
	case SeatBooked:
		return SeatBooked
	case SeatSelected:
		return SeatSelected
	case SeatUnavailable:
		return SeatUnavailable
	case SeatWomen:
		return SeatWomen
	default:
		return SeatAvailable
	}
}

// Locked reports states that can never be selected.
func (s SeatState) Locked() bool {
	return s == SeatBooked || s == SeatUnavailable
}

func (s *SeatState) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		*s = SeatAvailable
		return nil
	}
	*s = ParseSeatState(raw)
	return nil
}

func (s *SeatState) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*s = ParseSeatState(raw)
	return nil
}

// SeatID is a row letter followed by a 1-based column, e.g. "C2".
type SeatID string

// SeatLayout describes one bus's seating configuration.
type SeatLayout struct {
	Rows        int         `json:"rows" yaml:"rows"`
	SeatsPerRow int         `json:"seatsPerRow" yaml:"seatsPerRow"`
	Layout      []SeatState `json:"layout" yaml:"layout"`
}

// Clone returns a layout whose state slice can be modified independently.
func (l SeatLayout) Clone() SeatLayout {
	out := l
	out.Layout = append([]SeatState(nil), l.Layout...)
	return out
}
