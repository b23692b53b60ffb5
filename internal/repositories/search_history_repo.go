package repositories

import (
	"context"

	"busyatra/internal/domain/models"
	"busyatra/internal/store"
)

const maxSearchHistory = 10

type SearchHistoryRepo struct {
	blob blob[[]models.SearchHistoryEntry]
}

func NewSearchHistoryRepo(s store.Store) SearchHistoryRepo {
	return SearchHistoryRepo{blob: newBlob[[]models.SearchHistoryEntry](s, KeySearchHistory)}
}

// List returns entries most recent first.
func (r SearchHistoryRepo) List(ctx context.Context) []models.SearchHistoryEntry {
	list, _, ok := r.blob.load(ctx)
	if !ok || list == nil {
		return []models.SearchHistoryEntry{}
	}
	return list
}

// Save puts entry first, dropping any earlier entry for the same from/to
// pair and trimming to the ten most recent.
func (r SearchHistoryRepo) Save(ctx context.Context, entry models.SearchHistoryEntry) error {
	return r.blob.mutate(ctx, func(list []models.SearchHistoryEntry, _ bool) ([]models.SearchHistoryEntry, error) {
		out := make([]models.SearchHistoryEntry, 0, maxSearchHistory)
		out = append(out, entry)
		for _, e := range list {
			if e.From == entry.From && e.To == entry.To {
				continue
			}
			if len(out) == maxSearchHistory {
				break
			}
			out = append(out, e)
		}
		return out, nil
	})
}

func (r SearchHistoryRepo) Clear(ctx context.Context) error {
	return r.blob.clear(ctx)
}
