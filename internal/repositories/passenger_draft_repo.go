package repositories

import (
	"context"

	"busyatra/internal/domain/models"
	"busyatra/internal/store"
)

// PassengerDraftRepo remembers the last passenger form so it can be prefilled.
type PassengerDraftRepo struct {
	blob blob[[]models.PassengerInfo]
}

func NewPassengerDraftRepo(s store.Store) PassengerDraftRepo {
	return PassengerDraftRepo{blob: newBlob[[]models.PassengerInfo](s, KeyPassengerData)}
}

func (r PassengerDraftRepo) Get(ctx context.Context) []models.PassengerInfo {
	list, _, ok := r.blob.load(ctx)
	if !ok || list == nil {
		return []models.PassengerInfo{}
	}
	return list
}

// Save replaces the whole draft.
func (r PassengerDraftRepo) Save(ctx context.Context, passengers []models.PassengerInfo) error {
	return r.blob.mutate(ctx, func(_ []models.PassengerInfo, _ bool) ([]models.PassengerInfo, error) {
		return append([]models.PassengerInfo{}, passengers...), nil
	})
}

func (r PassengerDraftRepo) Clear(ctx context.Context) error {
	return r.blob.clear(ctx)
}
