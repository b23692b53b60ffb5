package services

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randBase36(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(base36[rand.Intn(len(base36))])
	}
	return b.String()
}

// NewBookingID is the internal lookup key: booking-<unix ms>-<9 base36>.
func NewBookingID(now time.Time) string {
	return "booking-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + randBase36(9)
}

// NewBookingReference is the PNR-style code shown to travellers:
// "BY", the last six digits of unix ms, four upper-case base36 characters.
func NewBookingReference(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "BY" + ms + strings.ToUpper(randBase36(4))
}
