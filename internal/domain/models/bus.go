package models

import "busyatra/internal/domain"

// Bus is a read-only catalog entry.
type Bus struct {
	ID             string       `json:"id" yaml:"id"`
	Operator       string       `json:"operator" yaml:"operator"`
	Name           string       `json:"name" yaml:"name"`
	Type           string       `json:"type" yaml:"type"`
	Route          domain.Route `json:"route" yaml:"route"`
	DepartureTime  string       `json:"departureTime" yaml:"departureTime"`
	ArrivalTime    string       `json:"arrivalTime" yaml:"arrivalTime"`
	Price          int64        `json:"price" yaml:"price"`
	AvailableSeats int          `json:"availableSeats" yaml:"availableSeats"`
	TotalSeats     int          `json:"totalSeats" yaml:"totalSeats"`
	Rating         float64      `json:"rating" yaml:"rating"`
	Amenities      []string     `json:"amenities" yaml:"amenities"`
	SeatLayout     SeatLayout   `json:"seatLayout" yaml:"seatLayout"`
}
