package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
	TransportBoth  = "both"
)

type Config struct {
	APIAddr string // base address of the Karakeep API (ex: https://keep.example.com)
	APIKey  string // bearer token for the Karakeep API

	Transport       string        // "stdio" | "http" | "both"
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	HTTPTimeout     time.Duration // timeout for upstream API calls
	UserAgent       string        // User-Agent sent upstream
	SearchLimit     int           // default page size on the MCP surface (1-100)
	HTTPSearchLimit int           // legacy default page size on the HTTP surface (1-100)

	// Redis (optional; enables the redis-backed HTTP rate limiter when set)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // Redis dial timeout
	RedisRT             time.Duration // Redis read timeout
	RedisWT             time.Duration // Redis write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // Total time to retry connecting
	RedisRetryInterval  time.Duration // Initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts

	// HTTP rate limiting
	RateBurst  int
	RatePerMin int
}

func Load() *Config {
	// Best effort; a missing .env file is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		APIAddr: requireEnv("KARAKEEP_API_ADDR"),
		APIKey:  requireEnv("KARAKEEP_API_KEY"),

		Transport:       getenv("KARAKEEP_TRANSPORT", TransportStdio),
		ListenPort:      getenv("KARAKEEP_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("KARAKEEP_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("KARAKEEP_LOG_LEVEL", "info"),
		PrettyLog: mustBool("KARAKEEP_PRETTY_LOG", false),

		HTTPTimeout:     mustDuration("KARAKEEP_HTTP_TIMEOUT", 30*time.Second),
		UserAgent:       getenv("KARAKEEP_USER_AGENT", "karakeep-mcp"),
		SearchLimit:     getenvInt("KARAKEEP_SEARCH_LIMIT", 100),
		HTTPSearchLimit: getenvInt("KARAKEEP_HTTP_SEARCH_LIMIT", 10),

		RedisAddr:           getenv("KARAKEEP_REDIS_ADDR", ""),
		RedisUser:           getenv("KARAKEEP_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("KARAKEEP_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("KARAKEEP_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		RateBurst:  getenvInt("KARAKEEP_RATE_BURST", 30),
		RatePerMin: getenvInt("KARAKEEP_RATE_PER_MIN", 60),
	}

	if file := getenv("KARAKEEP_CONFIG_FILE", ""); file != "" {
		if err := cfg.applyFile(file); err != nil {
			panic(fmt.Sprintf("❌ FATAL: failed to load config file %s: %v", file, err))
		}
	}

	cfg.APIAddr = strings.TrimRight(strings.TrimSpace(cfg.APIAddr), "/")
	if cfg.APIAddr == "" {
		panic("❌ FATAL: KARAKEEP_API_ADDR must not be empty")
	}

	switch cfg.Transport {
	case TransportStdio, TransportHTTP, TransportBoth:
	default:
		panic(fmt.Sprintf("❌ FATAL: KARAKEEP_TRANSPORT must be stdio, http or both (got %q)", cfg.Transport))
	}

	cfg.SearchLimit = clampLimit(cfg.SearchLimit, 100)
	cfg.HTTPSearchLimit = clampLimit(cfg.HTTPSearchLimit, 10)

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.APIKey = "***REDACTED***"
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// fileConfig mirrors the YAML config file. Pointer fields so that absent
// keys leave the env-derived values untouched.
type fileConfig struct {
	APIAddr         *string `yaml:"api_addr"`
	APIKey          *string `yaml:"api_key"`
	Transport       *string `yaml:"transport"`
	ListenPort      *string `yaml:"listen_port"`
	LogLevel        *string `yaml:"log_level"`
	PrettyLog       *bool   `yaml:"pretty_log"`
	HTTPTimeout     *string `yaml:"http_timeout"`
	SearchLimit     *int    `yaml:"search_limit"`
	HTTPSearchLimit *int    `yaml:"http_search_limit"`
	RedisAddr       *string `yaml:"redis_addr"`
	RedisPassword   *string `yaml:"redis_password"`
	RedisDB         *int    `yaml:"redis_db"`
	RateBurst       *int    `yaml:"rate_burst"`
	RatePerMin      *int    `yaml:"rate_per_min"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	setString(&c.APIAddr, fc.APIAddr)
	setString(&c.APIKey, fc.APIKey)
	setString(&c.Transport, fc.Transport)
	setString(&c.ListenPort, fc.ListenPort)
	setString(&c.LogLevel, fc.LogLevel)
	if fc.PrettyLog != nil {
		c.PrettyLog = *fc.PrettyLog
	}
	if fc.HTTPTimeout != nil {
		d, err := time.ParseDuration(*fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("http_timeout: %w", err)
		}
		c.HTTPTimeout = d
	}
	setInt(&c.SearchLimit, fc.SearchLimit)
	setInt(&c.HTTPSearchLimit, fc.HTTPSearchLimit)
	setString(&c.RedisAddr, fc.RedisAddr)
	setString(&c.RedisPassword, fc.RedisPassword)
	setInt(&c.RedisDB, fc.RedisDB)
	setInt(&c.RateBurst, fc.RateBurst)
	setInt(&c.RatePerMin, fc.RatePerMin)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func clampLimit(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	if v > 100 {
		return 100
	}
	return v
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		panic(fmt.Sprintf("❌ FATAL: required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: %s must be an integer (got %q)", key, v))
	}
	return n
}

func mustBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: %s must be a boolean (got %q)", key, v))
	}
	return b
}

func mustDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: %s must be a duration like 5s or 1m (got %q)", key, v))
	}
	return d
}
