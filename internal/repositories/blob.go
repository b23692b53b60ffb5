package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"busyatra/internal/domain"
	"busyatra/internal/store"
	"busyatra/internal/utils"
)

// Collection keys, one encoded blob each.
const (
	KeyBookings      = "busyatra_bookings"
	KeySearchHistory = "busyatra_search_history"
	KeyPreferences   = "busyatra_preferences"
	KeyPassengerData = "busyatra_passenger_data"
)

var AllKeys = []string{KeyBookings, KeySearchHistory, KeyPreferences, KeyPassengerData}

// blob reads and rewrites one JSON value under one key. Decode failures are
// logged and read as absent. mu serializes read-modify-write in-process; the
// store version catches writers in other processes.
type blob[T any] struct {
	store store.Store
	key   string
	mu    *sync.Mutex
}

func newBlob[T any](s store.Store, key string) blob[T] {
	return blob[T]{store: s, key: key, mu: &sync.Mutex{}}
}

// load returns ok=false when the value is missing, unreadable or the store is
// not configured. version is still returned so a corrupt blob can be replaced.
func (b blob[T]) load(ctx context.Context) (value T, version int64, ok bool) {
	if b.store == nil {
		return value, 0, false
	}
	rec, err := b.store.Get(ctx, b.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			utils.LogEventf("", "store", "read", "key=%s err=%v", b.key, err)
		}
		return value, 0, false
	}
	if err := json.Unmarshal(rec.Data, &value); err != nil {
		utils.LogEventf("", "store", "decode", "key=%s err=%v", b.key, err)
		var zero T
		return zero, rec.Version, false
	}
	return value, rec.Version, true
}

func (b blob[T]) write(ctx context.Context, value T, version int64) error {
	if b.store == nil {
		return domain.InternalError{Msg: "storage unavailable", Err: store.ErrUnavailable}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return domain.InternalError{Msg: "encode " + b.key, Err: err}
	}
	if _, err := b.store.Put(ctx, b.key, data, version); err != nil {
		utils.LogEventf("", "store", "write", "key=%s err=%v", b.key, err)
		if errors.Is(err, store.ErrVersionConflict) {
			return domain.ConflictError{Resource: b.key, Msg: "modified concurrently, reload and retry", Err: err}
		}
		return domain.InternalError{Msg: "write " + b.key, Err: err}
	}
	return nil
}

// mutate applies fn to the current value and writes the result. fn sees the
// zero value and ok=false when nothing readable is stored. Returning
// errSkipWrite from fn leaves the store untouched.
func (b blob[T]) mutate(ctx context.Context, fn func(current T, ok bool) (T, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, version, ok := b.load(ctx)
	next, err := fn(current, ok)
	if errors.Is(err, errSkipWrite) {
		return nil
	}
	if err != nil {
		return err
	}
	return b.write(ctx, next, version)
}

func (b blob[T]) clear(ctx context.Context) error {
	if b.store == nil {
		return domain.InternalError{Msg: "storage unavailable", Err: store.ErrUnavailable}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Delete(ctx, b.key)
}

var errSkipWrite = errors.New("skip write")
