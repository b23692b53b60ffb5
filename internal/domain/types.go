package domain

// Route is an origin/destination pair as typed by the user or the catalog.
type Route struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Label renders the route the way booking history and stats display it.
func (r Route) Label() string {
	return r.From + " → " + r.To
}
