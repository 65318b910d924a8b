package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment
// variables: ordinary process configuration (listen port, timeouts,
// upload cap) alongside the default values for the core's own raw/debug
// configuration surface, which callers may still override per-request
// (internal/service.DiffRequest).
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxUploadSizeMB int64

	// DefaultRaw and DefaultDebug seed the raw/debug flags when a request
	// does not specify them explicitly.
	DefaultRaw   bool
	DefaultDebug bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:            envInt("PORT", 8080),
		ReadTimeout:     envDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    envDuration("WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxUploadSizeMB: int64(envInt("MAX_UPLOAD_SIZE_MB", 20)),
		DefaultRaw:      envBool("XMLDIFF_RAW", false),
		DefaultDebug:    envBool("XMLDIFF_DEBUG", false),
	}
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
