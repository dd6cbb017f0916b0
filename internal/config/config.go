package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CatalogSource  string        // path or URL of the generated catalog.json
	LabelsFile     string        // path to the UI labels yaml (optional, empty = no chrome labels)
	OrgName        string        // GitHub organization the catalog belongs to
	ReloadInterval time.Duration // interval to refetch the catalog (default: 1h)

	AuthBaseURL      string // OAuth edge handler base URL (optional, empty = private view disabled)
	TranslateBaseURL string // translation backend base URL (optional, empty = runtime translation disabled)

	DefaultLang    string   // language that needs no translation (default: "en")
	SupportedLangs []string // UI languages offered to clients

	// Redis (optional: empty addr = in-memory translation cache only)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedOrigins []string // CORS allowlist (empty = permissive, no credentials involved)
	TrustProxy     bool     // true when running behind a trusted reverse proxy/tunnel
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ORGCAT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ORGCAT_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("ORGCAT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ORGCAT_PRETTY_LOG", true),

		// Catalog
		CatalogSource:  requireEnv("ORGCAT_CATALOG_SOURCE"),
		LabelsFile:     getenv("ORGCAT_LABELS_FILE", ""),
		OrgName:        getenv("ORGCAT_ORG_NAME", ""),
		ReloadInterval: mustDuration("ORGCAT_RELOAD_INTERVAL", time.Hour),

		// Collaborators (absence disables the feature, never a hard failure)
		AuthBaseURL:      strings.TrimRight(getenv("ORGCAT_AUTH_BASE_URL", ""), "/"),
		TranslateBaseURL: strings.TrimRight(getenv("ORGCAT_TRANSLATE_BASE_URL", ""), "/"),

		// Languages
		DefaultLang:    getenv("ORGCAT_DEFAULT_LANG", "en"),
		SupportedLangs: splitAndTrim(getenv("ORGCAT_SUPPORTED_LANGS", "en,es,pt,fr")),

		// Redis settings
		RedisAddr:           getenv("ORGCAT_REDIS_ADDR", ""),
		RedisUser:           getenv("ORGCAT_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("ORGCAT_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("ORGCAT_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("ORGCAT_ALLOWED_ORIGINS", "")),
		TrustProxy:     mustBool("ORGCAT_TRUST_PROXY", false),
	}

	if cfg.DefaultLang == "" {
		cfg.DefaultLang = "en"
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

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
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
