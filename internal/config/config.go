// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the web client needs to run. The oracle base
// URL is carried here so it can be injected into the API client instead
// of living in a package-level variable.
type Config struct {
	ListenAddr      string
	OracleBaseURL   string
	CORSOrigins     []string
	UpstreamTimeout time.Duration
	MaxUploadBytes  int64
	SessionTTL      time.Duration
	LogLevel        string
	GinMode         string
}

const (
	defaultListenAddr    = ":3000"
	defaultOracleBaseURL = "http://localhost:5001"
	defaultCORSOrigins   = "http://localhost:3000"
	defaultMaxUpload     = 10 * 1024 * 1024
)

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present; missing values fall
// back to defaults suitable for local development.
func Load() (*Config, error) {
	// Ignore a missing .env; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:      envOr("LISTEN_ADDR", defaultListenAddr),
		OracleBaseURL:   strings.TrimRight(envOr("ORACLE_BASE_URL", defaultOracleBaseURL), "/"),
		CORSOrigins:     splitOrigins(envOr("CORS_ORIGINS", defaultCORSOrigins)),
		UpstreamTimeout: 30 * time.Second,
		MaxUploadBytes:  defaultMaxUpload,
		SessionTTL:      30 * time.Minute,
		LogLevel:        envOr("LOG_LEVEL", "normal"),
		GinMode:         envOr("GIN_MODE", "debug"),
	}

	if v := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT_SECONDS %q", v)
		}
		cfg.UpstreamTimeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", v)
		}
		cfg.MaxUploadBytes = n
	}

	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		mins, err := strconv.Atoi(v)
		if err != nil || mins <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES %q", v)
		}
		cfg.SessionTTL = time.Duration(mins) * time.Minute
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
