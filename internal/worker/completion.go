// Package worker runs the background housekeeping loop.
package worker

import (
	"context"
	"time"

	"busyatra/internal/utils"
)

// Completer moves arrived trips to completed.
type Completer interface {
	CompleteDeparted(ctx context.Context) (int, error)
}

// Sweeper drops abandoned seat selections.
type Sweeper interface {
	Sweep() int
}

type Housekeeper struct {
	bookings   Completer
	selections Sweeper
	interval   time.Duration
}

func NewHousekeeper(bookings Completer, selections Sweeper, interval time.Duration) *Housekeeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Housekeeper{bookings: bookings, selections: selections, interval: interval}
}

// Run ticks until ctx is cancelled. One pass also runs at start.
func (h *Housekeeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	utils.LogEventf("", "worker", "start", "interval=%s", h.interval)
	h.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			utils.LogEvent("", "worker", "stop", ctx.Err().Error())
			return nil
		case <-ticker.C:
			h.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single pass and reports what it changed.
func (h *Housekeeper) RunOnce(ctx context.Context) (completed, expired int) {
	if h.bookings != nil {
		n, err := h.bookings.CompleteDeparted(ctx)
		if err != nil {
			utils.LogEvent("", "worker", "complete", "failed: "+err.Error())
		}
		completed = n
	}
	if h.selections != nil {
		expired = h.selections.Sweep()
		if expired > 0 {
			utils.LogEventf("", "worker", "sweep", "expired_selections=%d", expired)
		}
	}
	return completed, expired
}
