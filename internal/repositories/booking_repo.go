package repositories

import (
	"context"

	"busyatra/internal/domain/models"
	"busyatra/internal/store"
)

// BookingRepo keeps every booking in one list, in append order.
type BookingRepo struct {
	blob blob[[]models.UserBooking]
}

func NewBookingRepo(s store.Store) BookingRepo {
	return BookingRepo{blob: newBlob[[]models.UserBooking](s, KeyBookings)}
}

// List returns an empty slice when nothing readable is stored.
func (r BookingRepo) List(ctx context.Context) []models.UserBooking {
	list, _, ok := r.blob.load(ctx)
	if !ok || list == nil {
		return []models.UserBooking{}
	}
	return list
}

func (r BookingRepo) Find(ctx context.Context, id string) (models.UserBooking, bool) {
	for _, b := range r.List(ctx) {
		if b.ID == id {
			return b, true
		}
	}
	return models.UserBooking{}, false
}

func (r BookingRepo) Append(ctx context.Context, b models.UserBooking) error {
	return r.blob.mutate(ctx, func(list []models.UserBooking, _ bool) ([]models.UserBooking, error) {
		return append(list, b), nil
	})
}

// Update applies fn to the booking with the given id and rewrites the list.
// found is false when no booking matched; nothing is written then.
func (r BookingRepo) Update(ctx context.Context, id string, fn func(*models.UserBooking) error) (found bool, err error) {
	err = r.blob.mutate(ctx, func(list []models.UserBooking, _ bool) ([]models.UserBooking, error) {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			found = true
			if err := fn(&list[i]); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, errSkipWrite
	})
	return found, err
}

// UpdateWhere applies fn to every booking matching pred in a single write.
func (r BookingRepo) UpdateWhere(ctx context.Context, pred func(models.UserBooking) bool, fn func(*models.UserBooking)) (int, error) {
	n := 0
	err := r.blob.mutate(ctx, func(list []models.UserBooking, _ bool) ([]models.UserBooking, error) {
		for i := range list {
			if pred(list[i]) {
				fn(&list[i])
				n++
			}
		}
		if n == 0 {
			return nil, errSkipWrite
		}
		return list, nil
	})
	return n, err
}

func (r BookingRepo) Clear(ctx context.Context) error {
	return r.blob.clear(ctx)
}
