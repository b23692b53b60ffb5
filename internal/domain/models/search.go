package models

// SearchHistoryEntry is one remembered search; Timestamp is unix millis.
type SearchHistoryEntry struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Date       string `json:"date"`
	Passengers int    `json:"passengers"`
	Timestamp  int64  `json:"timestamp"`
}

// SearchCriteria drives a catalog search and its list filters.
// Filter values of "" or "all" are ignored.
type SearchCriteria struct {
	From          string
	To            string
	Date          string
	Passengers    int
	BusType       string
	DepartureTime string // "start-end" in hours, start inclusive
	PriceRange    string // "min-max" inclusive
	MinRating     string
}
