// Package config centralizes environment-derived configuration so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string

	DBFPath string

	DatabaseURL  string
	RedisAddr    string
	KafkaBrokers []string

	SearchCacheTTL    time.Duration
	SearchResultLimit int
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("RODEO_VALIDATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dbfPath := os.Getenv("RODEO_PERSONNEL_DBF")
	if dbfPath == "" {
		dbfPath = "./personnel.dbf"
	}

	ttl := SearchCacheTTL
	if raw := os.Getenv("RODEO_SEARCH_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	limit := 50
	if raw := os.Getenv("RODEO_SEARCH_RESULT_LIMIT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return Server{
		Addr:              addr,
		DBFPath:           dbfPath,
		DatabaseURL:       os.Getenv("RODEO_DATABASE_URL"),
		RedisAddr:         envOr("RODEO_REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:      splitNonEmpty(os.Getenv("RODEO_KAFKA_BROKERS"), ","),
		SearchCacheTTL:    ttl,
		SearchResultLimit: limit,
	}
}

// SearchCacheTTL is how long a free-text search result set is cached
// before it is considered stale relative to Database reloads.
var SearchCacheTTL = 5 * time.Minute

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || string(s[i]) == sep {
			if part := s[start:i]; part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}
