package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeCompleter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCompleter) CompleteDeparted(context.Context) (int, error) {
	f.calls.Add(1)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

type fakeSweeper struct{ calls atomic.Int32 }

func (f *fakeSweeper) Sweep() int {
	f.calls.Add(1)
	return 1
}

func TestRunOnce(t *testing.T) {
	c, s := &fakeCompleter{}, &fakeSweeper{}
	completed, expired := NewHousekeeper(c, s, time.Second).RunOnce(context.Background())
	if completed != 2 || expired != 1 {
		t.Fatalf("RunOnce = %d, %d", completed, expired)
	}

	c.err = errors.New("store down")
	completed, expired = NewHousekeeper(c, s, time.Second).RunOnce(context.Background())
	if completed != 0 || expired != 1 {
		t.Fatalf("RunOnce with failing store = %d, %d", completed, expired)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c, s := &fakeCompleter{}, &fakeSweeper{}
	h := NewHousekeeper(c, s, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for c.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d passes before deadline", c.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
	if s.calls.Load() < 3 {
		t.Fatalf("sweeper ran %d times", s.calls.Load())
	}
}
