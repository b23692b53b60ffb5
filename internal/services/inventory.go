package services

import (
	"context"

	"busyatra/internal/domain/models"
	"busyatra/internal/repositories"
	"busyatra/internal/seating"
)

// BusSource is the read side of the catalog.
type BusSource interface {
	Get(id string) (models.Bus, bool)
}

// heldSeats lists seats taken by confirmed or completed bookings for one
// bus on one journey date.
func heldSeats(ctx context.Context, bookings repositories.BookingRepo, busID, date string) []models.SeatID {
	var out []models.SeatID
	for _, b := range bookings.List(ctx) {
		if b.BusID != busID || b.JourneyDate != date || b.Status == models.StatusCancelled {
			continue
		}
		out = append(out, b.Seats...)
	}
	return out
}

// layoutFor is the catalog layout with held seats overlaid as booked.
func layoutFor(ctx context.Context, bookings repositories.BookingRepo, bus models.Bus, date string) models.SeatLayout {
	return seating.ApplyBooked(bus.SeatLayout, heldSeats(ctx, bookings, bus.ID, date))
}

// withAvailability returns bus with its layout and seat count for date.
func withAvailability(ctx context.Context, bookings repositories.BookingRepo, bus models.Bus, date string) models.Bus {
	if date == "" {
		return bus
	}
	bus.SeatLayout = layoutFor(ctx, bookings, bus, date)
	bus.AvailableSeats = seating.Available(bus.SeatLayout.Layout)
	return bus
}
