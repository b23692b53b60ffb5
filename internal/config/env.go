package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"busyatra/internal/utils"

	"github.com/joho/godotenv"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
)

type Env struct {
	AppAddr string
	GinMode string

	StoreDriver   string
	SQLitePath    string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAllowedOrigins []string
	Location           *time.Location
	SelectionTTL       time.Duration
	CompletionInterval time.Duration
}

// LoadEnv reads the process environment, after merging a .env file from the
// working directory when one exists. Variables already set win over .env.
func LoadEnv() Env {
	if err := godotenv.Load(); err == nil {
		utils.LogEvent("", "config", "load_env", "loaded .env")
	}

	env := Env{
		AppAddr:            getenv("APP_ADDR", ":8080"),
		GinMode:            getenv("GIN_MODE", ""),
		StoreDriver:        strings.ToLower(getenv("STORE_DRIVER", DriverMemory)),
		SQLitePath:         getenv("SQLITE_PATH", "busyatra.db"),
		MySQLDSN:           getenv("MYSQL_DSN", ""),
		RedisAddr:          getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		SelectionTTL:       utils.ParseDurationOr(os.Getenv("SELECTION_TTL"), 15*time.Minute),
		CompletionInterval: utils.ParseDurationOr(os.Getenv("COMPLETION_INTERVAL"), time.Minute),
		Location:           time.Local,
	}
	if n, err := strconv.Atoi(getenv("REDIS_DB", "0")); err == nil {
		env.RedisDB = n
	}
	if tz := getenv("APP_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			utils.LogEventf("", "config", "load_env", "bad APP_TIMEZONE %q, using local: %v", tz, err)
		} else {
			env.Location = loc
		}
	}
	return env
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
