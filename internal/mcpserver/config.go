package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Validator cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Validate tool defaults.
	CoerceDefault bool
	StripDefault  bool

	// MaxInlineSize caps inline schema and data content, in bytes.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SCHEMAGUARD_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("SCHEMAGUARD_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SCHEMAGUARD_CACHE_MAX_SIZE", 32),
		CacheTTL:           envDuration("SCHEMAGUARD_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SCHEMAGUARD_CACHE_SWEEP_INTERVAL", 60*time.Second),
		CoerceDefault:      envBool("SCHEMAGUARD_COERCE_DEFAULT", false),
		StripDefault:       envBool("SCHEMAGUARD_STRIP_DEFAULT", false),
		MaxInlineSize:      int64(envInt("SCHEMAGUARD_MAX_INLINE_SIZE", 4*1024*1024)),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
