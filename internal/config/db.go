package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intdb "busyatra/internal/db"
	"busyatra/internal/store"
	"busyatra/internal/utils"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

const (
	pingTimeout  = 3 * time.Second
	redisPrefix  = "busyatra:"
	defaultMySQL = "root:@tcp(127.0.0.1:3306)/busyatra?parseTime=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
)

// OpenStore connects the backend named by env.StoreDriver. The caller owns
// the returned store and must Close it.
func OpenStore(ctx context.Context, env Env) (store.Store, error) {
	switch env.StoreDriver {
	case DriverMemory, "":
		utils.LogEvent("", "config", "open_store", "driver=memory, data is lost on restart")
		return store.NewMemory(), nil
	case DriverSQLite:
		db, err := openSQL(ctx, "sqlite", env.SQLitePath, 1)
		if err != nil {
			return nil, err
		}
		return newSQLStore(ctx, db, intdb.SQLite, env.SQLitePath)
	case DriverMySQL:
		dsn := env.MySQLDSN
		if dsn == "" {
			dsn = defaultMySQL
		}
		db, err := openSQL(ctx, "mysql", dsn, 25)
		if err != nil {
			return nil, err
		}
		return newSQLStore(ctx, db, intdb.MySQL, "mysql")
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     env.RedisAddr,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis %s: %w", env.RedisAddr, err)
		}
		utils.LogEventf("", "config", "open_store", "driver=redis addr=%s db=%d", env.RedisAddr, env.RedisDB)
		return store.NewRedis(client, redisPrefix), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", env.StoreDriver)
	}
}

func openSQL(ctx context.Context, driver, dsn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		intdb.LogBadConn("config.open_store", err)
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

func newSQLStore(ctx context.Context, db *sql.DB, dialect intdb.Dialect, label string) (store.Store, error) {
	s, err := store.NewSQL(ctx, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	utils.LogEventf("", "config", "open_store", "driver=%s target=%s", dialect, label)
	return s, nil
}
