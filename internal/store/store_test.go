package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	intdb "busyatra/internal/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// exerciseStore runs the same contract against every backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing: want ErrNotFound, got %v", err)
	}

	v1, err := s.Put(ctx, "bookings", []byte(`[1]`), 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v1 != 1 {
		t.Fatalf("first version = %d, want 1", v1)
	}
	if _, err := s.Put(ctx, "bookings", []byte(`[x]`), 0); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("second create: want conflict, got %v", err)
	}

	v2, err := s.Put(ctx, "bookings", []byte(`[1,2]`), v1)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := s.Put(ctx, "bookings", []byte(`[stale]`), v1); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("stale update: want conflict, got %v", err)
	}

	rec, err := s.Get(ctx, "bookings")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(rec.Data) != `[1,2]` || rec.Version != v2 {
		t.Fatalf("Get = %q@%d, want [1,2]@%d", rec.Data, rec.Version, v2)
	}

	if err := s.Delete(ctx, "bookings"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "bookings"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: want ErrNotFound, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()

	s, err := NewSQL(context.Background(), db, intdb.SQLite)
	if err != nil {
		t.Fatalf("NewSQL: %v", err)
	}
	exerciseStore(t, s)

	// a second constructor must find the existing table
	if _, err := NewSQL(context.Background(), db, intdb.SQLite); err != nil {
		t.Fatalf("NewSQL on existing table: %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedis(client, "busyatra:")
	defer s.Close()

	exerciseStore(t, s)

	if _, err := s.Put(context.Background(), "prefs", []byte(`{}`), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !mr.Exists("busyatra:prefs") {
		t.Fatalf("expected prefixed key in redis")
	}
}

func TestMySQLStoreSkipsDDLWhenTableExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("kv_store").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("kv_store"))

	s, err := NewSQL(context.Background(), db, intdb.MySQL)
	if err != nil {
		t.Fatalf("NewSQL: %v", err)
	}

	mock.ExpectQuery("SELECT v, version FROM kv_store").WithArgs("busyatra_bookings").
		WillReturnRows(sqlmock.NewRows([]string{"v", "version"}).AddRow(`[]`, 4))
	rec, err := s.Get(context.Background(), "busyatra_bookings")
	if err != nil || rec.Version != 4 || string(rec.Data) != "[]" {
		t.Fatalf("Get = %+v, %v", rec, err)
	}

	mock.ExpectExec("UPDATE kv_store SET").
		WithArgs(`[1]`, int64(5), sqlmock.AnyArg(), "busyatra_bookings", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if _, err := s.Put(context.Background(), "busyatra_bookings", []byte(`[1]`), 4); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("Put with no affected rows: want conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLStoreCreatesTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("kv_store").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := NewSQL(context.Background(), db, intdb.MySQL); err != nil {
		t.Fatalf("NewSQL: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
