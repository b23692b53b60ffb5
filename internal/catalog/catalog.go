// Package catalog holds the read-only bus dataset and route search.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/seating"
	"busyatra/internal/utils"

	"gopkg.in/yaml.v3"
)

//go:embed buses.yaml
var defaultData []byte

type busEntry struct {
	models.Bus  `yaml:",inline"`
	Booked      []models.SeatID `yaml:"booked"`
	Unavailable []models.SeatID `yaml:"unavailable"`
	Women       []models.SeatID `yaml:"women"`
}

// Catalog is immutable after Load; callers get copies of seat layouts.
type Catalog struct {
	buses []models.Bus
	byID  map[string]int
}

// Default loads the embedded dataset.
func Default() (*Catalog, error) {
	return Load(defaultData)
}

// Load parses a YAML list of buses. A missing layout is generated as
// rows x seatsPerRow available seats.
func Load(data []byte) (*Catalog, error) {
	var entries []busEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{byID: make(map[string]int, len(entries))}
	for _, e := range entries {
		bus := e.Bus
		if bus.ID == "" {
			return nil, fmt.Errorf("catalog: bus without id")
		}
		if _, dup := c.byID[bus.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate bus id %s", bus.ID)
		}
		if bus.SeatLayout.SeatsPerRow <= 0 {
			return nil, fmt.Errorf("catalog: bus %s has no seatsPerRow", bus.ID)
		}
		bus.SeatLayout = buildLayout(bus.SeatLayout, e)
		bus.TotalSeats = len(bus.SeatLayout.Layout)
		bus.AvailableSeats = seating.Available(bus.SeatLayout.Layout)
		c.byID[bus.ID] = len(c.buses)
		c.buses = append(c.buses, bus)
	}
	return c, nil
}

func buildLayout(l models.SeatLayout, e busEntry) models.SeatLayout {
	if len(l.Layout) == 0 {
		l.Layout = make([]models.SeatState, l.Rows*l.SeatsPerRow)
		for i := range l.Layout {
			l.Layout[i] = models.SeatAvailable
		}
	}
	if l.Rows == 0 {
		l.Rows = (len(l.Layout) + l.SeatsPerRow - 1) / l.SeatsPerRow
	}
	// selected only exists inside a selection session
	for i, st := range l.Layout {
		if st == models.SeatSelected {
			l.Layout[i] = models.SeatAvailable
		}
	}
	mark := func(ids []models.SeatID, state models.SeatState) {
		for _, id := range ids {
			if i, ok := seating.IndexOf(id, l.SeatsPerRow, len(l.Layout)); ok {
				l.Layout[i] = state
			}
		}
	}
	mark(e.Women, models.SeatWomen)
	mark(e.Unavailable, models.SeatUnavailable)
	mark(e.Booked, models.SeatBooked)
	return l
}

func (c *Catalog) All() []models.Bus {
	out := make([]models.Bus, len(c.buses))
	for i, b := range c.buses {
		out[i] = copyBus(b)
	}
	return out
}

func (c *Catalog) Get(id string) (models.Bus, bool) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return models.Bus{}, false
	}
	return copyBus(c.buses[i]), true
}

// Search matches the route then applies list filters, preserving catalog order.
func (c *Catalog) Search(criteria models.SearchCriteria) ([]models.Bus, error) {
	f, err := parseFilters(criteria)
	if err != nil {
		return nil, err
	}
	out := []models.Bus{}
	for _, b := range c.buses {
		if !MatchesRoute(b.Route, criteria.From, criteria.To) {
			continue
		}
		if !f.match(b) {
			continue
		}
		out = append(out, copyBus(b))
	}
	return out, nil
}

// SortBuses orders results by "price", "rating" or "departure"; anything
// else keeps catalog order.
func SortBuses(buses []models.Bus, by string) {
	switch by {
	case "price":
		sort.SliceStable(buses, func(i, j int) bool { return buses[i].Price < buses[j].Price })
	case "rating":
		sort.SliceStable(buses, func(i, j int) bool { return buses[i].Rating > buses[j].Rating })
	case "departure":
		sort.SliceStable(buses, func(i, j int) bool { return buses[i].DepartureTime < buses[j].DepartureTime })
	}
}

// MatchesRoute compares normalized search cities against the bus route;
// either side containing the other counts as a match. Empty search matches.
func MatchesRoute(r domain.Route, from, to string) bool {
	return cityMatch(r.From, from) && cityMatch(r.To, to)
}

func cityMatch(busCity, search string) bool {
	s := utils.NormalizeCity(search)
	if s == "" {
		return true
	}
	b := utils.NormalizeCity(busCity)
	return strings.Contains(b, s) || strings.Contains(s, b)
}

type filters struct {
	busType            string
	hourFrom, hourTo   int
	hasHours           bool
	priceMin, priceMax int64
	hasPrice           bool
	minRating          float64
	hasRating          bool
}

func isAll(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "" || s == "all"
}

func parseFilters(c models.SearchCriteria) (filters, error) {
	var f filters
	if !isAll(c.BusType) {
		f.busType = strings.ToLower(strings.TrimSpace(c.BusType))
	}
	if !isAll(c.DepartureTime) {
		lo, hi, err := parseRange(c.DepartureTime)
		if err != nil {
			return f, domain.ValidationError{Field: "departureTime", Msg: "expected start-end hours", Err: err}
		}
		f.hourFrom, f.hourTo, f.hasHours = int(lo), int(hi), true
	}
	if !isAll(c.PriceRange) {
		lo, hi, err := parseRange(c.PriceRange)
		if err != nil {
			return f, domain.ValidationError{Field: "priceRange", Msg: "expected min-max", Err: err}
		}
		f.priceMin, f.priceMax, f.hasPrice = lo, hi, true
	}
	if !isAll(c.MinRating) {
		r, err := strconv.ParseFloat(strings.TrimSpace(c.MinRating), 64)
		if err != nil {
			return f, domain.ValidationError{Field: "rating", Msg: "expected a number", Err: err}
		}
		f.minRating, f.hasRating = r, true
	}
	return f, nil
}

func parseRange(s string) (int64, int64, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, fmt.Errorf("missing '-' in %q", s)
	}
	a, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (f filters) match(b models.Bus) bool {
	if f.busType != "" && !strings.Contains(strings.ToLower(b.Type), f.busType) {
		return false
	}
	if f.hasHours {
		h, err := utils.ParseHour(b.DepartureTime)
		if err != nil || h < f.hourFrom || h >= f.hourTo {
			return false
		}
	}
	if f.hasPrice && (b.Price < f.priceMin || b.Price > f.priceMax) {
		return false
	}
	if f.hasRating && b.Rating < f.minRating {
		return false
	}
	return true
}

func copyBus(b models.Bus) models.Bus {
	b.SeatLayout = b.SeatLayout.Clone()
	b.Amenities = append([]string(nil), b.Amenities...)
	return b
}
