package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intdb "busyatra/internal/db"
)

const kvTable = "kv_store"

// SQL keeps collections in one kv_store table. The statements are portable
// between MySQL and SQLite; only the schema probe differs per dialect.
type SQL struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

// NewSQL creates the kv_store table when it is missing.
func NewSQL(ctx context.Context, db *sql.DB, dialect intdb.Dialect) (*SQL, error) {
	if db == nil {
		return nil, ErrUnavailable
	}
	s := &SQL{DB: db, Dialect: dialect}
	if err := s.ensureTable(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQL) ensureTable(ctx context.Context) error {
	if intdb.HasTable(ctx, s.DB, s.Dialect, kvTable) {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
	k VARCHAR(191) NOT NULL PRIMARY KEY,
	v LONGTEXT NOT NULL,
	version BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
)`
	if _, err := s.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w", kvTable, err)
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) (Record, error) {
	var rec Record
	var v string
	err := s.DB.QueryRowContext(ctx, `SELECT v, version FROM `+kvTable+` WHERE k=? LIMIT 1`, key).Scan(&v, &rec.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	rec.Data = []byte(v)
	return rec, nil
}

func (s *SQL) Put(ctx context.Context, key string, data []byte, version int64) (int64, error) {
	now := time.Now().UnixMilli()
	next := version + 1
	if version == 0 {
		_, err := s.DB.ExecContext(ctx,
			`INSERT INTO `+kvTable+` (k, v, version, updated_at) VALUES (?,?,?,?)`,
			key, string(data), next, now)
		if err == nil {
			return next, nil
		}
		// insert fails on a duplicate key; anything else is a real error
		if _, getErr := s.Get(ctx, key); getErr == nil {
			return 0, ErrVersionConflict
		}
		return 0, err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE `+kvTable+` SET v=?, version=?, updated_at=? WHERE k=? AND version=?`,
		string(data), next, now, key, version)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrVersionConflict
	}
	return next, nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM `+kvTable+` WHERE k=?`, key)
	return err
}

func (s *SQL) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
