package services

import (
	"context"
	"fmt"
	"sync"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/repositories"
	"busyatra/internal/utils"
)

type CheckoutRequest struct {
	SelectionID   string                 `json:"selectionId"`
	Passengers    []models.PassengerInfo `json:"passengers"`
	Payment       PaymentDetails         `json:"payment"`
	AcceptedTerms bool                   `json:"acceptedTerms"`
}

// CheckoutService turns a complete seat selection plus the booking form
// into a confirmed booking.
type CheckoutService struct {
	Selections *SelectionService
	Buses      BusSource
	Bookings   BookingService
	Drafts     repositories.PassengerDraftRepo

	mu sync.Mutex
}

func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (models.UserBooking, error) {
	sel, err := s.Selections.Get(req.SelectionID)
	if err != nil {
		return models.UserBooking{}, err
	}
	if !sel.Complete {
		return models.UserBooking{}, domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("select exactly %d seats", sel.Passengers)}
	}
	if err := ValidatePassengers(req.Passengers, len(sel.Selected)); err != nil {
		return models.UserBooking{}, err
	}
	method, err := ValidatePayment(req.Payment)
	if err != nil {
		return models.UserBooking{}, err
	}
	if !req.AcceptedTerms {
		return models.UserBooking{}, domain.ValidationError{Field: "acceptedTerms", Msg: "terms and conditions must be accepted"}
	}
	bus, ok := s.Buses.Get(sel.BusID)
	if !ok {
		return models.UserBooking{}, domain.NotFoundError{Resource: "bus", ID: sel.BusID}
	}

	// Seats may have been booked by another session since this one opened.
	s.mu.Lock()
	defer s.mu.Unlock()
	held := map[models.SeatID]bool{}
	for _, id := range heldSeats(ctx, s.Bookings.Bookings, bus.ID, sel.Date) {
		held[id] = true
	}
	for _, id := range sel.Selected {
		if held[id] {
			return models.UserBooking{}, domain.ConflictError{Resource: "seat", Msg: string(id) + " was booked by someone else"}
		}
	}

	b, err := s.Bookings.Create(ctx, models.BookingPayload{
		BusID:         bus.ID,
		Operator:      bus.Operator,
		BusName:       bus.Name,
		Route:         bus.Route,
		JourneyDate:   sel.Date,
		DepartureTime: bus.DepartureTime,
		ArrivalTime:   bus.ArrivalTime,
		Seats:         sel.Selected,
		Passengers:    req.Passengers,
		PaymentMethod: method,
		TotalAmount:   sel.TotalFare,
	})
	if err != nil {
		return models.UserBooking{}, err
	}
	s.Selections.Close(sel.ID)
	if err := s.Drafts.Save(ctx, req.Passengers); err != nil {
		utils.LogEvent(s.Bookings.RequestID, "checkout", "save_draft", err.Error())
	}
	return b, nil
}
