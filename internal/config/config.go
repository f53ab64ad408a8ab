package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with NITRON_STORE.
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Store      string         // "redis" | "sqlite" | "memory"
	SQLitePath string         // database file for the sqlite backend
	Location   *time.Location // zone used to label history days

	BookmarkImportFile string        // Homepage bookmarks.yaml to import (optional, empty = import disabled)
	ImportInterval     time.Duration // interval to re-import bookmarks (default: 24h)
	HistoryRetention   time.Duration // drop history older than this (0 = keep forever)
	PruneInterval      time.Duration // interval to prune history (default: 24h)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateLimitBurst  int // write requests allowed in a burst per client
	RateLimitPerMin int // sustained write requests per minute per client
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NITRON_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NITRON_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("NITRON_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NITRON_PRETTY_LOG", true),

		// Storage
		Store:      mustStore("NITRON_STORE", StoreRedis),
		SQLitePath: getenv("NITRON_SQLITE_PATH", "nitron.db"),
		Location:   mustLocation("NITRON_TIMEZONE", "Local"),

		// Background jobs
		BookmarkImportFile: getenv("NITRON_BOOKMARK_IMPORT_FILE", ""),
		ImportInterval:     mustDuration("NITRON_IMPORT_INTERVAL", 24*time.Hour),
		HistoryRetention:   mustDuration("NITRON_HISTORY_RETENTION", 0),
		PruneInterval:      mustDuration("NITRON_PRUNE_INTERVAL", 24*time.Hour),

		// Redis settings
		RedisAddr:             getenv("NITRON_REDIS_ADDR", "localhost:6379"),
		RedisUser:             getenv("NITRON_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("NITRON_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("NITRON_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("NITRON_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("NITRON_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("NITRON_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("NITRON_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("NITRON_RATE_LIMIT_BURST", 30),
		RateLimitPerMin: getenvInt("NITRON_RATE_LIMIT_PER_MIN", 120),
	}

	// Validate Redis password configuration
	if cfg.Store == StoreRedis && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: NITRON_REDIS_PASSWORD is required when NITRON_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// mustStore panics on an unknown backend; a typo must not silently fall back
// to another store.
func mustStore(key, def string) string {
	v := strings.ToLower(getenv(key, def))
	switch v {
	case StoreRedis, StoreSQLite, StoreMemory:
		return v
	default:
		panic(fmt.Sprintf("❌ FATAL: Invalid value for %s: %q (want redis, sqlite or memory)", key, v))
	}
}

func mustLocation(key, def string) *time.Location {
	v := getenv(key, def)
	loc, err := time.LoadLocation(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid time zone for %s: %s", key, v))
	}
	return loc
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
