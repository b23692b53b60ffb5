package repositories

import (
	"context"

	"busyatra/internal/domain/models"
	"busyatra/internal/store"
)

type PreferencesRepo struct {
	blob blob[models.UserPreferences]
}

func NewPreferencesRepo(s store.Store) PreferencesRepo {
	return PreferencesRepo{blob: newBlob[models.UserPreferences](s, KeyPreferences)}
}

// Get falls back to DefaultPreferences when nothing readable is stored.
func (r PreferencesRepo) Get(ctx context.Context) models.UserPreferences {
	p, _, ok := r.blob.load(ctx)
	if !ok {
		return models.DefaultPreferences()
	}
	return p
}

// Save merges upd over the stored (or default) preferences.
func (r PreferencesRepo) Save(ctx context.Context, upd models.PreferencesUpdate) (models.UserPreferences, error) {
	var saved models.UserPreferences
	err := r.blob.mutate(ctx, func(current models.UserPreferences, ok bool) (models.UserPreferences, error) {
		if !ok {
			current = models.DefaultPreferences()
		}
		saved = upd.Apply(current)
		return saved, nil
	})
	return saved, err
}

func (r PreferencesRepo) Clear(ctx context.Context) error {
	return r.blob.clear(ctx)
}
