package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/metrics"
	"busyatra/internal/repositories"
	"busyatra/internal/store"
	"busyatra/internal/utils"
)

const noTripsLabel = "No trips yet"

// BookingService owns the booking lifecycle:
// confirmed -> cancelled, confirmed -> completed. Nothing leaves cancelled
// or completed, and setting a booking to its current status is a no-op.
type BookingService struct {
	Bookings  repositories.BookingRepo
	Now       func() time.Time
	Location  *time.Location
	RequestID string
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create stores a new confirmed booking built from the complete payload.
func (s BookingService) Create(ctx context.Context, p models.BookingPayload) (models.UserBooking, error) {
	if len(p.Seats) == 0 {
		return models.UserBooking{}, domain.ValidationError{Field: "seats", Msg: "at least one seat required"}
	}
	if strings.TrimSpace(p.Route.From) == "" || strings.TrimSpace(p.Route.To) == "" {
		return models.UserBooking{}, domain.ValidationError{Field: "route", Msg: "from and to required"}
	}
	date, err := utils.CanonicalDate(p.JourneyDate, s.Location)
	if err != nil {
		return models.UserBooking{}, domain.ValidationError{Field: "journeyDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if p.TotalAmount < 0 {
		return models.UserBooking{}, domain.ValidationError{Field: "totalAmount", Msg: "must not be negative"}
	}

	now := s.now()
	b := models.UserBooking{
		ID:               NewBookingID(now),
		BookingReference: NewBookingReference(now),
		BusID:            p.BusID,
		Operator:         p.Operator,
		BusName:          p.BusName,
		Route:            p.Route,
		JourneyDate:      date,
		DepartureTime:    p.DepartureTime,
		ArrivalTime:      p.ArrivalTime,
		Seats:            append([]models.SeatID(nil), p.Seats...),
		Passengers:       append([]models.PassengerInfo(nil), p.Passengers...),
		PaymentMethod:    p.PaymentMethod,
		TotalAmount:      p.TotalAmount,
		Status:           models.StatusConfirmed,
		Rating:           0,
		BookedAt:         now.UTC().Format(time.RFC3339),
	}
	if err := s.Bookings.Append(ctx, b); err != nil {
		s.logWriteFailure("create", err)
		return models.UserBooking{}, err
	}
	metrics.BookingsCreated.Inc()
	utils.LogEventf(s.RequestID, "booking", "create", "id=%s ref=%s seats=%d amount=%d", b.ID, b.BookingReference, len(b.Seats), b.TotalAmount)
	return b, nil
}

// List returns all bookings in the order they were made.
func (s BookingService) List(ctx context.Context) []models.UserBooking {
	return s.Bookings.List(ctx)
}

func (s BookingService) Find(ctx context.Context, id string) (models.UserBooking, error) {
	b, ok := s.Bookings.Find(ctx, strings.TrimSpace(id))
	if !ok {
		return models.UserBooking{}, domain.NotFoundError{Resource: "booking", ID: id}
	}
	return b, nil
}

// Query filters by free text (route, operator, reference), status, and sorts.
func (s BookingService) Query(ctx context.Context, f models.BookingFilter) ([]models.UserBooking, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.ValidationError{Field: "status", Msg: "unknown status " + string(f.Status)}
	}
	q := strings.TrimSpace(f.Query)
	out := []models.UserBooking{}
	for _, b := range s.Bookings.List(ctx) {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if q != "" && !utils.ContainsFold(b.Route.From, q) && !utils.ContainsFold(b.Route.To, q) &&
			!utils.ContainsFold(b.Operator, q) && !utils.ContainsFold(b.BookingReference, q) {
			continue
		}
		out = append(out, b)
	}

	switch f.Sort {
	case "", "none":
	case "date-desc":
		sort.SliceStable(out, func(i, j int) bool { return journeyKey(out[i]) > journeyKey(out[j]) })
	case "date-asc":
		sort.SliceStable(out, func(i, j int) bool { return journeyKey(out[i]) < journeyKey(out[j]) })
	case "amount-desc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalAmount > out[j].TotalAmount })
	case "amount-asc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalAmount < out[j].TotalAmount })
	default:
		return nil, domain.ValidationError{Field: "sort", Msg: "unknown sort " + f.Sort}
	}
	return out, nil
}

// YYYY-MM-DD HH:MM sorts lexically in time order.
func journeyKey(b models.UserBooking) string {
	return b.JourneyDate + " " + b.DepartureTime
}

// UpdateStatus moves a booking to status. Unknown ids are NotFoundError,
// illegal transitions ConflictError.
func (s BookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	if !status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "unknown status " + string(status)}
	}
	_, err := s.transition(ctx, id, status, nil)
	return err
}

// CancelBooking is UpdateStatus(id, cancelled).
func (s BookingService) CancelBooking(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, models.StatusCancelled)
}

// CancelWithRefund cancels inside the cancellation window and records the
// refund quoted at that moment. Repeating it on a cancelled booking returns
// the stored record unchanged.
func (s BookingService) CancelWithRefund(ctx context.Context, id, reason string) (models.UserBooking, CancellationQuote, error) {
	current, err := s.Find(ctx, id)
	if err != nil {
		return models.UserBooking{}, CancellationQuote{}, err
	}
	now := s.now()
	quote := QuoteCancellation(current, now, s.Location)
	if quote.Settled {
		return current, quote, nil
	}
	if !quote.Cancellable {
		return models.UserBooking{}, quote, domain.ConflictError{Resource: "booking", Msg: "cancellation window has closed"}
	}

	updated, err := s.transition(ctx, id, models.StatusCancelled, func(b *models.UserBooking) {
		b.CancelledAt = now.UTC().Format(time.RFC3339)
		b.CancellationReason = strings.TrimSpace(reason)
		b.RefundAmount = quote.RefundAmount
		b.RefundPercent = quote.RefundPercent
	})
	if err != nil {
		return models.UserBooking{}, quote, err
	}
	metrics.RefundsIssued.Add(float64(quote.RefundAmount))
	return updated, QuoteCancellation(updated, now, s.Location), nil
}

func (s BookingService) transition(ctx context.Context, id string, to models.BookingStatus, apply func(*models.UserBooking)) (models.UserBooking, error) {
	var updated models.UserBooking
	var changed bool
	found, err := s.Bookings.Update(ctx, strings.TrimSpace(id), func(b *models.UserBooking) error {
		if b.Status == to {
			updated = *b
			return nil
		}
		if !canTransition(b.Status, to) {
			return domain.ConflictError{Resource: "booking", Msg: string(b.Status) + " booking cannot become " + string(to)}
		}
		b.Status = to
		if apply != nil {
			apply(b)
		}
		updated = *b
		changed = true
		return nil
	})
	if err != nil {
		s.logWriteFailure("update_status", err)
		return models.UserBooking{}, err
	}
	if !found {
		return models.UserBooking{}, domain.NotFoundError{Resource: "booking", ID: id}
	}
	if changed {
		switch to {
		case models.StatusCancelled:
			metrics.BookingsCancelled.Inc()
		case models.StatusCompleted:
			metrics.BookingsCompleted.Inc()
		}
		utils.LogEventf(s.RequestID, "booking", "update_status", "id=%s status=%s", id, to)
	}
	return updated, nil
}

func canTransition(from, to models.BookingStatus) bool {
	return from == models.StatusConfirmed && (to == models.StatusCancelled || to == models.StatusCompleted)
}

// CompleteDeparted marks confirmed bookings whose arrival time has passed
// as completed. It returns how many changed.
func (s BookingService) CompleteDeparted(ctx context.Context) (int, error) {
	now := s.now()
	n, err := s.Bookings.UpdateWhere(ctx,
		func(b models.UserBooking) bool {
			if b.Status != models.StatusConfirmed {
				return false
			}
			arr, err := arrivalInstant(b, s.Location)
			return err == nil && !arr.After(now)
		},
		func(b *models.UserBooking) { b.Status = models.StatusCompleted })
	if err != nil {
		s.logWriteFailure("complete", err)
		return 0, err
	}
	if n > 0 {
		metrics.BookingsCompleted.Add(float64(n))
		utils.LogEventf(s.RequestID, "booking", "complete", "completed=%d", n)
	}
	return n, nil
}

// arrivalInstant rolls the arrival clock to the next day when it is earlier
// than departure. Without an arrival time the trip ends at departure.
func arrivalInstant(b models.UserBooking, loc *time.Location) (time.Time, error) {
	dep, err := utils.JourneyInstant(b.JourneyDate, b.DepartureTime, loc)
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(b.ArrivalTime) == "" {
		return dep, nil
	}
	arr, err := utils.JourneyInstant(b.JourneyDate, b.ArrivalTime, loc)
	if err != nil {
		return dep, nil
	}
	if arr.Before(dep) {
		arr = arr.Add(24 * time.Hour)
	}
	return arr, nil
}

// Stats aggregates the whole collection. Upcoming trips are confirmed ones
// departing strictly after now. Route ties go to the first route seen.
func (s BookingService) Stats(ctx context.Context) models.BookingStats {
	list := s.Bookings.List(ctx)
	now := s.now()
	st := models.BookingStats{TotalBookings: len(list), FavoriteRoute: noTripsLabel}

	counts := map[string]int{}
	var order []string
	for _, b := range list {
		st.TotalSpent += b.TotalAmount
		switch b.Status {
		case models.StatusConfirmed:
			if dep, err := utils.JourneyInstant(b.JourneyDate, b.DepartureTime, s.Location); err == nil && dep.After(now) {
				st.UpcomingTrips++
			}
		case models.StatusCompleted:
			st.CompletedTrips++
		case models.StatusCancelled:
			st.CancelledTrips++
		}
		label := b.Route.Label()
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	best := 0
	for _, label := range order {
		if counts[label] > best {
			best = counts[label]
			st.FavoriteRoute = label
		}
	}
	if len(list) > 0 {
		st.AverageAmount = int64(math.Round(float64(st.TotalSpent) / float64(len(list))))
	}
	return st
}

// ClearAll removes every persisted collection.
func ClearAll(ctx context.Context, bookings repositories.BookingRepo, history repositories.SearchHistoryRepo,
	prefs repositories.PreferencesRepo, drafts repositories.PassengerDraftRepo) error {
	for _, fn := range []func(context.Context) error{bookings.Clear, history.Clear, prefs.Clear, drafts.Clear} {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s BookingService) logWriteFailure(action string, err error) {
	if errors.Is(err, store.ErrVersionConflict) {
		metrics.StoreConflicts.Inc()
	}
	utils.LogEvent(s.RequestID, "booking", action, "write failed: "+err.Error())
}
