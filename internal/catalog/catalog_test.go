package catalog

import (
	"testing"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatalf("Default catalog: %v", err)
	}
	return c
}

func TestDefaultCatalogLayouts(t *testing.T) {
	c := mustDefault(t)
	bus, ok := c.Get("1")
	if !ok {
		t.Fatalf("bus 1 missing")
	}
	if bus.TotalSeats != 40 || len(bus.SeatLayout.Layout) != 40 {
		t.Fatalf("bus 1 seats = %d", bus.TotalSeats)
	}
	if bus.SeatLayout.Layout[0] != models.SeatBooked || bus.SeatLayout.Layout[24] != models.SeatWomen {
		t.Fatalf("overrides not applied: %v", bus.SeatLayout.Layout[:4])
	}
	if bus.AvailableSeats != 33 {
		t.Fatalf("available = %d, want 33", bus.AvailableSeats)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	c := mustDefault(t)
	bus, _ := c.Get("2")
	bus.SeatLayout.Layout[0] = models.SeatSelected
	again, _ := c.Get("2")
	if again.SeatLayout.Layout[0] == models.SeatSelected {
		t.Fatalf("catalog layout mutated through a copy")
	}
}

func TestSearchRouteNormalization(t *testing.T) {
	c := mustDefault(t)
	got, err := c.Search(models.SearchCriteria{From: "  bangalore", To: "MUMBAI"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %d buses", len(got))
	}

	// "Delhi" is contained in "New Delhi", so both Delhi buses match
	got, _ = c.Search(models.SearchCriteria{From: "Delhi"})
	if len(got) != 2 {
		t.Fatalf("Delhi search = %d buses, want 2", len(got))
	}

	got, _ = c.Search(models.SearchCriteria{From: "New Delhi", To: "Manali"})
	if len(got) != 1 || got[0].ID != "5" {
		t.Fatalf("New Delhi search = %+v", got)
	}
}

func TestSearchFilters(t *testing.T) {
	c := mustDefault(t)
	cases := []struct {
		name string
		crit models.SearchCriteria
		want []string
	}{
		{"sleeper", models.SearchCriteria{BusType: "sleeper"}, []string{"1", "3", "5", "7", "8"}},
		{"seater", models.SearchCriteria{BusType: "Seater"}, []string{"2", "4", "6"}},
		{"night", models.SearchCriteria{DepartureTime: "18-24"}, []string{"1", "3", "5", "7", "8"}},
		{"morning", models.SearchCriteria{DepartureTime: "6-12"}, []string{"2", "4"}},
		{"price", models.SearchCriteria{PriceRange: "500-1000"}, []string{"2", "6", "7"}},
		{"rating", models.SearchCriteria{MinRating: "4.5"}, []string{"1", "3", "8"}},
		{"all", models.SearchCriteria{BusType: "all", PriceRange: "all"}, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
	}
	for _, tc := range cases {
		got, err := c.Search(tc.crit)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %d buses, want %v", tc.name, len(got), tc.want)
		}
		for i, b := range got {
			if b.ID != tc.want[i] {
				t.Fatalf("%s: result %d = %s, want %s", tc.name, i, b.ID, tc.want[i])
			}
		}
	}
}

func TestSearchRejectsMalformedFilters(t *testing.T) {
	c := mustDefault(t)
	for _, crit := range []models.SearchCriteria{
		{PriceRange: "cheap"},
		{DepartureTime: "6"},
		{MinRating: "four"},
	} {
		if _, err := c.Search(crit); !domain.IsValidation(err) {
			t.Fatalf("criteria %+v: want validation error, got %v", crit, err)
		}
	}
}

func TestLoadRejectsBadData(t *testing.T) {
	if _, err := Load([]byte("- id: a\n  seatLayout: {rows: 2}\n")); err == nil {
		t.Fatalf("expected error for missing seatsPerRow")
	}
	if _, err := Load([]byte("- id: a\n  seatLayout: {rows: 1, seatsPerRow: 2}\n- id: a\n  seatLayout: {rows: 1, seatsPerRow: 2}\n")); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoadClearsSelectedSeats(t *testing.T) {
	c, err := Load([]byte("- id: a\n  seatLayout: {seatsPerRow: 2, layout: [available, selected, booked, selected]}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	bus, _ := c.Get("a")
	for i, st := range bus.SeatLayout.Layout {
		if st == models.SeatSelected {
			t.Fatalf("seat %d loaded as selected", i)
		}
	}
	if bus.SeatLayout.Layout[1] != models.SeatAvailable || bus.SeatLayout.Layout[2] != models.SeatBooked {
		t.Fatalf("layout = %v", bus.SeatLayout.Layout)
	}
	if bus.AvailableSeats != 3 || bus.TotalSeats != 4 || bus.SeatLayout.Rows != 2 {
		t.Fatalf("bus = %+v", bus)
	}
}

func TestSortBuses(t *testing.T) {
	c := mustDefault(t)
	buses := c.All()
	SortBuses(buses, "price")
	if buses[0].ID != "4" {
		t.Fatalf("cheapest = %s, want 4", buses[0].ID)
	}
	SortBuses(buses, "rating")
	if buses[0].ID != "3" {
		t.Fatalf("top rated = %s, want 3", buses[0].ID)
	}
}
