package seating

import (
	"testing"

	"busyatra/internal/domain/models"
)

func layoutOf(n int, states ...models.SeatState) models.SeatLayout {
	return models.SeatLayout{Rows: (len(states) + n - 1) / n, SeatsPerRow: n, Layout: states}
}

func repeat(s models.SeatState, n int) []models.SeatState {
	out := make([]models.SeatState, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestDeriveSeatID(t *testing.T) {
	cases := []struct {
		index, width int
		want         models.SeatID
	}{
		{0, 4, "A1"},
		{3, 4, "A4"},
		{4, 4, "B1"},
		{10, 4, "C3"},
		{0, 1, "A1"},
		{26, 1, "AA1"},
	}
	for _, tc := range cases {
		if got := DeriveSeatID(tc.index, tc.width); got != tc.want {
			t.Fatalf("DeriveSeatID(%d,%d) = %q, want %q", tc.index, tc.width, got, tc.want)
		}
	}
}

func TestDeriveSeatIDInjective(t *testing.T) {
	for _, width := range []int{1, 3, 4, 5} {
		seen := map[models.SeatID]int{}
		for i := 0; i < 200; i++ {
			id := DeriveSeatID(i, width)
			if prev, ok := seen[id]; ok {
				t.Fatalf("width %d: indices %d and %d share id %s", width, prev, i, id)
			}
			seen[id] = i
			if back, ok := IndexOf(id, width, 200); !ok || back != i {
				t.Fatalf("IndexOf(%s) = %d,%v want %d", id, back, ok, i)
			}
		}
	}
}

func TestStateAtDefaultsToAvailable(t *testing.T) {
	layout := []models.SeatState{"booked", "", "bogus"}
	if got := StateAt(layout, 0); got != models.SeatBooked {
		t.Fatalf("got %s", got)
	}
	if got := StateAt(layout, 1); got != models.SeatAvailable {
		t.Fatalf("empty state should read available, got %s", got)
	}
	if got := StateAt(layout, 2); got != models.SeatAvailable {
		t.Fatalf("unknown state should read available, got %s", got)
	}
	if got := StateAt(layout, 9); got != models.SeatAvailable {
		t.Fatalf("out of range should read available, got %s", got)
	}
}

func TestToggleScenario(t *testing.T) {
	states := append([]models.SeatState{models.SeatAvailable, models.SeatBooked, models.SeatAvailable, models.SeatAvailable},
		repeat(models.SeatAvailable, 4)...)
	layout := layoutOf(4, states...)

	layout, selected := Toggle(layout, 0, nil, 2)
	layout, selected = Toggle(layout, 2, selected, 2)
	if len(selected) != 2 || selected[0] != "A1" || selected[1] != "A3" {
		t.Fatalf("selected = %v, want [A1 A3]", selected)
	}
	if fare := TotalFare(500, selected); fare != 1000 {
		t.Fatalf("fare = %d, want 1000", fare)
	}

	afterBooked, sel := Toggle(layout, 1, selected, 2)
	if len(sel) != 2 || afterBooked.Layout[1] != models.SeatBooked {
		t.Fatalf("booked seat should be a no-op, got %v %v", sel, afterBooked.Layout)
	}

	afterQuota, sel := Toggle(layout, 3, selected, 2)
	if len(sel) != 2 || afterQuota.Layout[3] != models.SeatAvailable {
		t.Fatalf("seat beyond quota should be a no-op, got %v", sel)
	}
}

func TestToggleUnavailableIgnored(t *testing.T) {
	layout := layoutOf(2, models.SeatUnavailable, models.SeatWomen)
	_, sel := Toggle(layout, 0, nil, 2)
	if len(sel) != 0 {
		t.Fatalf("unavailable seat selected: %v", sel)
	}
	next, sel := Toggle(layout, 1, nil, 2)
	if len(sel) != 1 || next.Layout[1] != models.SeatSelected {
		t.Fatalf("women seat should be selectable, got %v %v", sel, next.Layout)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	layout := layoutOf(4, repeat(models.SeatAvailable, 8)...)
	start := []models.SeatID{"B2"}
	layout.Layout[5] = models.SeatSelected

	once, sel := Toggle(layout, 2, start, 3)
	twice, sel := Toggle(once, 2, sel, 3)
	if twice.Layout[2] != models.SeatAvailable {
		t.Fatalf("slot not restored: %s", twice.Layout[2])
	}
	if len(sel) != 1 || sel[0] != "B2" {
		t.Fatalf("selection changed: %v", sel)
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	layout := layoutOf(2, models.SeatAvailable, models.SeatAvailable)
	selected := []models.SeatID{}
	_, _ = Toggle(layout, 0, selected, 1)
	if layout.Layout[0] != models.SeatAvailable {
		t.Fatalf("input layout mutated")
	}
}

func TestToggleInvariantHolds(t *testing.T) {
	states := repeat(models.SeatAvailable, 20)
	states[3] = models.SeatBooked
	states[7] = models.SeatUnavailable
	layout := layoutOf(4, states...)
	var selected []models.SeatID
	const quota = 3

	for step, idx := range []int{0, 3, 5, 7, 9, 11, 0, 13, 5, 19, 2, 2, 40, -1} {
		layout, selected = Toggle(layout, idx, selected, quota)
		if len(selected) > quota {
			t.Fatalf("step %d: %d seats selected over quota", step, len(selected))
		}
		marked := 0
		for i, s := range layout.Layout {
			if s == models.SeatSelected {
				marked++
				if position(selected, DeriveSeatID(i, 4)) < 0 {
					t.Fatalf("step %d: slot %d selected but missing from list", step, i)
				}
			}
		}
		if marked != len(selected) {
			t.Fatalf("step %d: %d selected slots, %d identifiers", step, marked, len(selected))
		}
	}
}

func TestTotalFareLinear(t *testing.T) {
	seats := []models.SeatID{"A1", "A2"}
	if TotalFare(750, append(seats, "A3")) != TotalFare(750, seats)+750 {
		t.Fatalf("fare not linear in seat count")
	}
	if TotalFare(750, nil) != 0 {
		t.Fatalf("empty selection should cost 0")
	}
}

func TestApplyBookedAndAvailable(t *testing.T) {
	layout := layoutOf(4, repeat(models.SeatAvailable, 8)...)
	next := ApplyBooked(layout, []models.SeatID{"A2", "B4", "Z9"})
	if next.Layout[1] != models.SeatBooked || next.Layout[7] != models.SeatBooked {
		t.Fatalf("booked overlay missing: %v", next.Layout)
	}
	if layout.Layout[1] != models.SeatAvailable {
		t.Fatalf("ApplyBooked mutated input")
	}
	if got := Available(next.Layout); got != 6 {
		t.Fatalf("available = %d, want 6", got)
	}
}

func TestGridSplitsAroundAisle(t *testing.T) {
	layout := layoutOf(4, repeat(models.SeatAvailable, 10)...)
	rows := Grid(layout)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if len(rows[0].Left) != 2 || len(rows[0].Right) != 2 {
		t.Fatalf("row A split = %d/%d", len(rows[0].Left), len(rows[0].Right))
	}
	last := rows[2]
	if last.Label != "C" || len(last.Left) != 2 || len(last.Right) != 0 {
		t.Fatalf("trailing row = %+v", last)
	}
	if rows[1].Right[1].ID != "B4" {
		t.Fatalf("unexpected id %s", rows[1].Right[1].ID)
	}
}
