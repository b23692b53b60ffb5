// Package seating mediates seat selection over a flat per-seat state layout.
//
// Operations never fail: guarded or out-of-range attempts return the inputs
// unchanged. Inputs are never mutated; a changed layout is always a copy.
package seating

import (
	"strconv"

	"busyatra/internal/domain/models"
)

// DeriveSeatID maps index i in a layout n seats wide to its row letter and
// 1-based column. Identifiers are only meaningful within one layout.
func DeriveSeatID(index, seatsPerRow int) models.SeatID {
	if seatsPerRow <= 0 || index < 0 {
		return ""
	}
	row := index / seatsPerRow
	col := index%seatsPerRow + 1
	return models.SeatID(rowLabel(row) + strconv.Itoa(col))
}

// rowLabel gives A..Z, then AA, AB... for layouts deeper than 26 rows.
func rowLabel(row int) string {
	label := ""
	for {
		label = string(rune('A'+row%26)) + label
		row = row/26 - 1
		if row < 0 {
			return label
		}
	}
}

// IndexOf is the inverse of DeriveSeatID within a layout of the given size.
func IndexOf(id models.SeatID, seatsPerRow, total int) (int, bool) {
	for i := 0; i < total; i++ {
		if DeriveSeatID(i, seatsPerRow) == id {
			return i, true
		}
	}
	return -1, false
}

// StateAt returns the stored state, or available when absent.
func StateAt(layout []models.SeatState, index int) models.SeatState {
	if index < 0 || index >= len(layout) {
		return models.SeatAvailable
	}
	return models.ParseSeatState(string(layout[index]))
}

// Toggle selects or deselects the seat at index.
//
// Booked and unavailable seats are ignored. A seat already in selected is
// removed and its slot reset to available. Otherwise the seat is added and
// marked selected while len(selected) < quota.
func Toggle(layout models.SeatLayout, index int, selected []models.SeatID, quota int) (models.SeatLayout, []models.SeatID) {
	if index < 0 || index >= len(layout.Layout) || layout.SeatsPerRow <= 0 {
		return layout, selected
	}
	state := StateAt(layout.Layout, index)
	if state.Locked() {
		return layout, selected
	}

	id := DeriveSeatID(index, layout.SeatsPerRow)
	if pos := position(selected, id); pos >= 0 {
		next := layout.Clone()
		next.Layout[index] = models.SeatAvailable
		out := make([]models.SeatID, 0, len(selected)-1)
		out = append(out, selected[:pos]...)
		out = append(out, selected[pos+1:]...)
		return next, out
	}

	if len(selected) >= quota {
		return layout, selected
	}
	next := layout.Clone()
	next.Layout[index] = models.SeatSelected
	out := make([]models.SeatID, 0, len(selected)+1)
	out = append(out, selected...)
	out = append(out, id)
	return next, out
}

// TotalFare is pricePerSeat times the number of selected seats. No fees.
func TotalFare(pricePerSeat int64, selected []models.SeatID) int64 {
	return pricePerSeat * int64(len(selected))
}

// ApplyBooked marks every seat whose identifier is in ids as booked.
// Unknown identifiers are ignored.
func ApplyBooked(layout models.SeatLayout, ids []models.SeatID) models.SeatLayout {
	if len(ids) == 0 || layout.SeatsPerRow <= 0 {
		return layout
	}
	want := make(map[models.SeatID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	next := layout.Clone()
	for i := range next.Layout {
		if _, ok := want[DeriveSeatID(i, layout.SeatsPerRow)]; ok {
			next.Layout[i] = models.SeatBooked
		}
	}
	return next
}

// Available counts seats that could still be selected.
func Available(layout []models.SeatState) int {
	n := 0
	for i := range layout {
		if s := StateAt(layout, i); s == models.SeatAvailable || s == models.SeatWomen {
			n++
		}
	}
	return n
}

func position(ids []models.SeatID, id models.SeatID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
