// Package config resolves service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	devCacheTTL  = 5 * time.Minute
	prodCacheTTL = time.Hour
)

type Config struct {
	Addr        string
	Environment string // "development" or "production"

	CacheTTL     time.Duration
	CacheEntries int

	// UpstreamTimeout bounds a single model call; the pipeline never
	// retries.
	UpstreamTimeout time.Duration

	// SQLitePath switches the store to the SQLite backend when set; empty
	// keeps the in-memory store.
	SQLitePath string
}

func Load() Config {
	cfg := Config{
		Addr:            envOr("GUIDEGEN_ADDR", ":8080"),
		Environment:     envOr("GUIDEGEN_ENV", "development"),
		CacheEntries:    intEnv("GUIDEGEN_CACHE_ENTRIES", 512),
		UpstreamTimeout: durationEnv("GUIDEGEN_UPSTREAM_TIMEOUT", 60*time.Second),
		SQLitePath:      strings.TrimSpace(os.Getenv("GUIDEGEN_DB")),
	}
	ttl := devCacheTTL
	if cfg.Production() {
		ttl = prodCacheTTL
	}
	cfg.CacheTTL = durationEnv("GUIDEGEN_CACHE_TTL", ttl)
	return cfg
}

func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
