package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/metrics"
	"busyatra/internal/repositories"
	"busyatra/internal/seating"
	"busyatra/internal/utils"

	"github.com/google/uuid"
)

const (
	MaxPassengers       = 6
	DefaultSelectionTTL = 15 * time.Minute
)

// Selection is one in-progress seat pick for a bus, date and party size.
// Sessions are private to whoever holds the id; they do not lock seats
// against other sessions.
type Selection struct {
	ID           string            `json:"id"`
	BusID        string            `json:"busId"`
	Date         string            `json:"date"`
	Passengers   int               `json:"passengers"`
	PricePerSeat int64             `json:"pricePerSeat"`
	Layout       models.SeatLayout `json:"seatLayout"`
	Selected     []models.SeatID   `json:"selectedSeats"`
	TotalFare    int64             `json:"totalFare"`
	Rows         []seating.Row     `json:"rows"`
	Complete     bool              `json:"complete"`
	ExpiresAt    time.Time         `json:"expiresAt"`
}

type SelectionService struct {
	buses    BusSource
	bookings repositories.BookingRepo
	ttl      time.Duration
	loc      *time.Location
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Selection
}

func NewSelectionService(buses BusSource, bookings repositories.BookingRepo, ttl time.Duration, loc *time.Location) *SelectionService {
	if ttl <= 0 {
		ttl = DefaultSelectionTTL
	}
	return &SelectionService{
		buses:    buses,
		bookings: bookings,
		ttl:      ttl,
		loc:      loc,
		now:      time.Now,
		sessions: make(map[string]*Selection),
	}
}

// Open starts a session whose layout reflects seats already held on date.
func (s *SelectionService) Open(ctx context.Context, busID, date string, passengers int) (Selection, error) {
	bus, ok := s.buses.Get(strings.TrimSpace(busID))
	if !ok {
		return Selection{}, domain.NotFoundError{Resource: "bus", ID: busID}
	}
	date, err := utils.CanonicalDate(date, s.loc)
	if err != nil {
		return Selection{}, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if passengers < 1 || passengers > MaxPassengers {
		return Selection{}, domain.ValidationError{Field: "passengers", Msg: "must be between 1 and 6"}
	}

	sel := &Selection{
		ID:           uuid.NewString(),
		BusID:        bus.ID,
		Date:         date,
		Passengers:   passengers,
		PricePerSeat: bus.Price,
		Layout:       layoutFor(ctx, s.bookings, bus, date),
		Selected:     []models.SeatID{},
	}

	s.mu.Lock()
	sel.ExpiresAt = s.now().Add(s.ttl)
	s.sessions[sel.ID] = sel
	s.mu.Unlock()

	metrics.SelectionsOpened.Inc()
	utils.LogEventf("", "selection", "open", "id=%s bus=%s date=%s passengers=%d", sel.ID, bus.ID, date, passengers)
	return sel.view(), nil
}

func (s *SelectionService) Get(id string) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, err := s.lookup(id)
	if err != nil {
		return Selection{}, err
	}
	return sel.view(), nil
}

// Toggle flips the seat at index. Guarded toggles (locked seat, full quota,
// bad index) leave the session unchanged and are not errors.
func (s *SelectionService) Toggle(id string, index int) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, err := s.lookup(id)
	if err != nil {
		return Selection{}, err
	}
	sel.Layout, sel.Selected = seating.Toggle(sel.Layout, index, sel.Selected, sel.Passengers)
	sel.ExpiresAt = s.now().Add(s.ttl)
	return sel.view(), nil
}

func (s *SelectionService) Close(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep drops expired sessions and returns how many were removed.
func (s *SelectionService) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sel := range s.sessions {
		if now.After(sel.ExpiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// lookup requires s.mu.
func (s *SelectionService) lookup(id string) (*Selection, error) {
	sel, ok := s.sessions[id]
	if !ok || s.now().After(sel.ExpiresAt) {
		delete(s.sessions, id)
		return nil, domain.NotFoundError{Resource: "selection", ID: id}
	}
	return sel, nil
}

func (sel *Selection) view() Selection {
	out := *sel
	out.Layout = sel.Layout.Clone()
	out.Selected = append([]models.SeatID{}, sel.Selected...)
	out.TotalFare = seating.TotalFare(sel.PricePerSeat, sel.Selected)
	out.Rows = seating.Grid(out.Layout)
	out.Complete = len(sel.Selected) == sel.Passengers
	return out
}
