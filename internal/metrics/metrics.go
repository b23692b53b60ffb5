// Package metrics registers the service's prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyatra_bookings_created_total",
		Help: "Bookings confirmed.",
	})
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyatra_bookings_cancelled_total",
		Help: "Bookings moved to cancelled.",
	})
	BookingsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyatra_bookings_completed_total",
		Help: "Bookings moved to completed by the sweeper.",
	})
	RefundsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyatra_refund_amount_total",
		Help: "Sum of refund amounts quoted on cancellation, in rupees.",
	})
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "busyatra_searches_total",
		Help: "Catalog searches by outcome.",
	}, []string{"outcome"})
	SelectionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyatra_selections_opened_total",
		Help: "Seat selection sessions opened.",
	})
	StoreConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyatra_store_conflicts_total",
		Help: "Writes rejected because the collection changed underneath.",
	})
)
