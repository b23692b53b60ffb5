package seating

import "busyatra/internal/domain/models"

type Seat struct {
	ID    models.SeatID    `json:"id"`
	Index int              `json:"index"`
	State models.SeatState `json:"state"`
}

// Row is one layout row split around the aisle.
type Row struct {
	Label string `json:"label"`
	Left  []Seat `json:"left"`
	Right []Seat `json:"right"`
}

// Grid groups the layout into rows with floor(n/2) seats left of the aisle.
// A trailing partial row keeps only the seats that exist.
func Grid(layout models.SeatLayout) []Row {
	n := layout.SeatsPerRow
	if n <= 0 {
		return nil
	}
	total := len(layout.Layout)
	left := n / 2
	rows := make([]Row, 0, (total+n-1)/n)
	for start := 0; start < total; start += n {
		row := Row{Label: rowLabel(start / n)}
		for j := 0; j < n && start+j < total; j++ {
			i := start + j
			seat := Seat{ID: DeriveSeatID(i, n), Index: i, State: StateAt(layout.Layout, i)}
			if j < left {
				row.Left = append(row.Left, seat)
			} else {
				row.Right = append(row.Right, seat)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
