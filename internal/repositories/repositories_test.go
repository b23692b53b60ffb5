package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/store"
)

type racingStore struct{ *store.Memory }

func (racingStore) Put(context.Context, string, []byte, int64) (int64, error) {
	return 0, store.ErrVersionConflict
}

func TestBookingRepoAppendFindUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(store.NewMemory())

	if got := repo.List(ctx); len(got) != 0 {
		t.Fatalf("empty store listed %d bookings", len(got))
	}
	for i := 1; i <= 3; i++ {
		if err := repo.Append(ctx, models.UserBooking{ID: fmt.Sprintf("b%d", i), Status: models.StatusConfirmed}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	list := repo.List(ctx)
	if len(list) != 3 || list[0].ID != "b1" || list[2].ID != "b3" {
		t.Fatalf("List order = %+v", list)
	}

	found, err := repo.Update(ctx, "b2", func(b *models.UserBooking) error {
		b.Status = models.StatusCancelled
		return nil
	})
	if err != nil || !found {
		t.Fatalf("Update b2 = %v, %v", found, err)
	}
	if b, ok := repo.Find(ctx, "b2"); !ok || b.Status != models.StatusCancelled {
		t.Fatalf("Find b2 = %+v, %v", b, ok)
	}

	found, err = repo.Update(ctx, "nope", func(*models.UserBooking) error { return nil })
	if err != nil || found {
		t.Fatalf("Update unknown id = %v, %v", found, err)
	}
}

func TestBookingRepoUpdateWhere(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(store.NewMemory())
	_ = repo.Append(ctx, models.UserBooking{ID: "a", Status: models.StatusConfirmed})
	_ = repo.Append(ctx, models.UserBooking{ID: "b", Status: models.StatusCancelled})
	_ = repo.Append(ctx, models.UserBooking{ID: "c", Status: models.StatusConfirmed})

	n, err := repo.UpdateWhere(ctx,
		func(b models.UserBooking) bool { return b.Status == models.StatusConfirmed },
		func(b *models.UserBooking) { b.Status = models.StatusCompleted })
	if err != nil || n != 2 {
		t.Fatalf("UpdateWhere = %d, %v", n, err)
	}
	if b, _ := repo.Find(ctx, "b"); b.Status != models.StatusCancelled {
		t.Fatalf("non-matching booking changed: %s", b.Status)
	}
}

func TestBookingRepoCorruptBlobReadsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if _, err := mem.Put(ctx, KeyBookings, []byte(`{not json`), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo := NewBookingRepo(mem)
	if got := repo.List(ctx); len(got) != 0 {
		t.Fatalf("corrupt blob listed %d bookings", len(got))
	}
	// the corrupt blob is replaced rather than wedging writes
	if err := repo.Append(ctx, models.UserBooking{ID: "x"}); err != nil {
		t.Fatalf("Append over corrupt blob: %v", err)
	}
	if got := repo.List(ctx); len(got) != 1 {
		t.Fatalf("after append listed %d bookings", len(got))
	}
}

func TestReposWithoutStore(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(nil)
	if got := repo.List(ctx); len(got) != 0 {
		t.Fatalf("nil store listed %d", len(got))
	}
	err := repo.Append(ctx, models.UserBooking{ID: "x"})
	if !domain.IsInternal(err) || !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("Append without store = %v", err)
	}
	if p := NewPreferencesRepo(nil).Get(ctx); p.Theme != models.ThemeLight || !p.Notifications {
		t.Fatalf("nil store preferences = %+v", p)
	}
}

func TestVersionConflictSurfacesAsConflict(t *testing.T) {
	repo := NewBookingRepo(racingStore{store.NewMemory()})
	err := repo.Append(context.Background(), models.UserBooking{ID: "x"})
	if !domain.IsConflict(err) {
		t.Fatalf("want ConflictError, got %v", err)
	}
}

func TestSearchHistoryDedupAndLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewSearchHistoryRepo(store.NewMemory())

	for i := 0; i < 12; i++ {
		e := models.SearchHistoryEntry{From: "Delhi", To: fmt.Sprintf("City%d", i), Timestamp: int64(i)}
		if err := repo.Save(ctx, e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	list := repo.List(ctx)
	if len(list) != 10 {
		t.Fatalf("history length = %d, want 10", len(list))
	}
	if list[0].To != "City11" || list[9].To != "City2" {
		t.Fatalf("history order = %s..%s", list[0].To, list[9].To)
	}

	if err := repo.Save(ctx, models.SearchHistoryEntry{From: "Delhi", To: "City5", Passengers: 3, Timestamp: 99}); err != nil {
		t.Fatalf("Save repeat: %v", err)
	}
	list = repo.List(ctx)
	if len(list) != 10 || list[0].To != "City5" || list[0].Passengers != 3 {
		t.Fatalf("repeat pair not moved to front: %+v", list[0])
	}
	seen := 0
	for _, e := range list {
		if e.To == "City5" {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("pair Delhi/City5 appears %d times", seen)
	}
}

func TestPreferencesMerge(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferencesRepo(store.NewMemory())

	dark := models.ThemeDark
	if _, err := repo.Save(ctx, models.PreferencesUpdate{Theme: &dark}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cities := []string{"Mumbai", "Pune"}
	got, err := repo.Save(ctx, models.PreferencesUpdate{PreferredCities: &cities})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got.Theme != models.ThemeDark || len(got.PreferredCities) != 2 || !got.Notifications {
		t.Fatalf("merged prefs = %+v", got)
	}
	if stored := repo.Get(ctx); stored.Theme != models.ThemeDark || stored.PreferredCities[1] != "Pune" {
		t.Fatalf("stored prefs = %+v", stored)
	}
}

func TestPassengerDraftRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewPassengerDraftRepo(store.NewMemory())
	in := []models.PassengerInfo{{Name: "Asha", Age: 31, Gender: "female"}, {Name: "Ravi", Age: 33, Gender: "male", Phone: "98200"}}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := repo.Get(ctx)
	if len(got) != 2 || got[1].Phone != "98200" {
		t.Fatalf("draft = %+v", got)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := repo.Get(ctx); len(got) != 0 {
		t.Fatalf("draft after clear = %+v", got)
	}
}
