package services

import (
	"math"
	"time"

	"busyatra/internal/domain/models"
	"busyatra/internal/utils"
)

// Refund tiers by hours before departure. The first tier whose bound is met
// applies; the 24h bound is inclusive, the others strict.
var refundTiers = []struct {
	hours     float64
	inclusive bool
	percent   int
}{
	{24, true, 90},
	{12, false, 75},
	{2, false, 50},
}

// minCancelHours is the latest a confirmed booking may still be cancelled.
const minCancelHours = 2

type CancellationQuote struct {
	BookingID        string  `json:"bookingId"`
	HoursToDeparture float64 `json:"hoursToDeparture"`
	RefundPercent    int     `json:"refundPercent"`
	RefundAmount     int64   `json:"refundAmount"`
	CancellationFee  int64   `json:"cancellationFee"`
	Cancellable      bool    `json:"cancellable"`
	// Settled quotes repeat what was recorded when the booking was cancelled.
	Settled          bool    `json:"settled"`
}

// RefundFor splits amount into refund and fee for a departure hours away.
func RefundFor(amount int64, hours float64) (refund, fee int64, percent int) {
	for _, t := range refundTiers {
		if hours > t.hours || (t.inclusive && hours == t.hours) {
			percent = t.percent
			break
		}
	}
	refund = utils.Percent(amount, float64(percent)/100)
	return refund, amount - refund, percent
}

// QuoteCancellation prices cancelling b at now. An unparseable journey date
// is treated as already departed: no refund, not cancellable. A cancelled
// booking gets its recorded refund back instead of a fresh price.
func QuoteCancellation(b models.UserBooking, now time.Time, loc *time.Location) CancellationQuote {
	q := CancellationQuote{BookingID: b.ID}
	dep, err := utils.JourneyInstant(b.JourneyDate, b.DepartureTime, loc)
	if err == nil {
		q.HoursToDeparture = dep.Sub(now).Hours()
	}
	if b.Status == models.StatusCancelled {
		return settledQuote(q, b)
	}
	q.RefundAmount, q.CancellationFee, q.RefundPercent = RefundFor(b.TotalAmount, q.HoursToDeparture)
	q.Cancellable = err == nil && b.Status == models.StatusConfirmed && q.HoursToDeparture > minCancelHours
	return q
}

func settledQuote(q CancellationQuote, b models.UserBooking) CancellationQuote {
	q.Settled = true
	q.RefundAmount = b.RefundAmount
	q.CancellationFee = b.TotalAmount - b.RefundAmount
	q.RefundPercent = b.RefundPercent
	if q.RefundPercent == 0 && b.RefundAmount > 0 && b.TotalAmount > 0 {
		// records written before the percent was stored
		q.RefundPercent = int(math.Round(float64(b.RefundAmount) * 100 / float64(b.TotalAmount)))
	}
	return q
}
