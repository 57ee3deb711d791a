package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/db"
	"github.com/kailas-cloud/storefront/internal/domain/catalog"
)

// DefaultKeyPrefix namespaces cached catalog files in the key-value store.
const DefaultKeyPrefix = "storefront:catalog:"

// Loader reads raw catalog files.
type Loader interface {
	Load(ctx context.Context, key catalog.Key) ([]byte, error)
	Ping(ctx context.Context) error
}

// kvStore is the consumer interface for the cache (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedStore is a read-through cache in front of a Loader.
// Cache failures never fail a load; they are logged and the inner loader answers.
type CachedStore struct {
	inner      Loader
	store      kvStore
	ttl        time.Duration
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// NewCachedStore creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func NewCachedStore(
	inner Loader,
	s kvStore,
	ttl time.Duration,
	prefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		prefix:     prefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Load returns the cached file or reads it from the inner loader.
// Missing files are not cached.
func (c *CachedStore) Load(ctx context.Context, key catalog.Key) ([]byte, error) {
	ck := c.prefix + key.Path()

	if data, ok := c.getFromCache(ctx, ck); ok {
		c.incCache("hit")
		return data, nil
	}
	c.incCache("miss")

	data, err := c.inner.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := c.store.SetWithTTL(ctx, ck, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache catalog file", zap.String("key", ck), zap.Error(err))
	}
	return data, nil
}

// Ping checks the inner loader. Cache health is reported separately.
func (c *CachedStore) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

func (c *CachedStore) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedStore) getFromCache(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached catalog file", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}
