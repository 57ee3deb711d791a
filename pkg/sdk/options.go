package storefront

import (
	"io/fs"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	fsys    fs.FS
	dataDir string

	language string
	fallback string

	driver     string // "valkey" or "redis", empty disables the cache
	addrs      []string
	password   string
	standalone bool
	cacheTTL   time.Duration
	keyPrefix  string

	sessionTTL  time.Duration
	maxSessions int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		language:    "en",
		fallback:    "en",
		cacheTTL:    5 * time.Minute,
		sessionTTL:  10 * time.Minute,
		maxSessions: 10000,
	}
}

// WithDataDir reads catalog files from dir instead of the embedded catalog.
// The layout is <lang>/<entity>/<category>.json.
func WithDataDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dataDir = dir
		c.fsys = nil
	})
}

// WithFS reads catalog files from fsys instead of the embedded catalog.
func WithFS(fsys fs.FS) Option {
	return optionFunc(func(c *clientConfig) {
		c.fsys = fsys
		c.dataDir = ""
	})
}

// WithLanguage sets the language used when a call names none. Defaults to "en".
func WithLanguage(code string) Option {
	return optionFunc(func(c *clientConfig) {
		c.language = code
	})
}

// WithFallbackLanguage sets the language complete ("all") collections are read in.
// Defaults to "en".
func WithFallbackLanguage(code string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fallback = code
	})
}

// WithValkey caches catalog files in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis caches catalog files in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery for the cache.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithCacheTTL sets how long cached catalog files live. Default: 5m.
// Zero keeps them until evicted by the server.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithCacheKeyPrefix sets the cache key prefix. Default: "storefront:catalog:".
func WithCacheKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithSessionLimits bounds the sessions tracked for generation checks.
// Sessions idle for longer than ttl are forgotten, and at most max are kept.
func WithSessionLimits(ttl time.Duration, maxSessions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.sessionTTL = ttl
		c.maxSessions = maxSessions
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts, durations and cache
// hits) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
