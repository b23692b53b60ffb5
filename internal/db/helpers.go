package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
)

// Dialect picks the schema probe; statements elsewhere stay portable.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func HasTable(ctx context.Context, q QueryRower, dialect Dialect, table string) bool {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`
	if dialect == SQLite {
		query = `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ? LIMIT 1`
	}

	var name sql.NullString
	if err := q.QueryRowContext(ctx, query, table).Scan(&name); err != nil {
		// no rows and bad connections both read as "missing"; the caller
		// will surface the real error on its next statement
		if errors.Is(err, driver.ErrBadConn) {
			LogBadConn("HasTable", err)
		}
		return false
	}
	return name.Valid && name.String != ""
}

func LogBadConn(tag string, err error) {
	if errors.Is(err, driver.ErrBadConn) {
		log.Println(tag, "driver.ErrBadConn")
	}
}
