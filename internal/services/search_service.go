package services

import (
	"context"
	"time"

	"busyatra/internal/catalog"
	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/metrics"
	"busyatra/internal/repositories"
	"busyatra/internal/utils"
)

type SearchService struct {
	Catalog  *catalog.Catalog
	Bookings repositories.BookingRepo
	History  repositories.SearchHistoryRepo
	Now      func() time.Time
	Location *time.Location
}

// Search runs a catalog search and remembers it when from, to and date are
// all given. A failed history write does not fail the search.
func (s SearchService) Search(ctx context.Context, c models.SearchCriteria, sortBy string) ([]models.Bus, error) {
	if !blank(c.Date) {
		date, err := utils.CanonicalDate(c.Date, s.Location)
		if err != nil {
			metrics.Searches.WithLabelValues("invalid").Inc()
			return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
		}
		c.Date = date
	}
	buses, err := s.Catalog.Search(c)
	if err != nil {
		metrics.Searches.WithLabelValues("invalid").Inc()
		return nil, err
	}
	for i := range buses {
		buses[i] = withAvailability(ctx, s.Bookings, buses[i], c.Date)
	}
	catalog.SortBuses(buses, sortBy)

	if len(buses) == 0 {
		metrics.Searches.WithLabelValues("empty").Inc()
	} else {
		metrics.Searches.WithLabelValues("found").Inc()
	}

	if !blank(c.From) && !blank(c.To) && !blank(c.Date) {
		passengers := c.Passengers
		if passengers <= 0 {
			passengers = 1
		}
		entry := models.SearchHistoryEntry{
			From:       utils.NormalizeSpace(c.From),
			To:         utils.NormalizeSpace(c.To),
			Date:       c.Date,
			Passengers: passengers,
			Timestamp:  s.now().UnixMilli(),
		}
		if err := s.History.Save(ctx, entry); err != nil {
			utils.LogEvent("", "search", "save_history", err.Error())
		}
	}
	return buses, nil
}

// Bus returns one catalog entry, with seat availability for date when given.
func (s SearchService) Bus(ctx context.Context, id, date string) (models.Bus, error) {
	bus, ok := s.Catalog.Get(id)
	if !ok {
		return models.Bus{}, domain.NotFoundError{Resource: "bus", ID: id}
	}
	if !blank(date) {
		canonical, err := utils.CanonicalDate(date, s.Location)
		if err != nil {
			return models.Bus{}, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
		}
		date = canonical
	} else {
		date = ""
	}
	return withAvailability(ctx, s.Bookings, bus, date), nil
}

func (s SearchService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
