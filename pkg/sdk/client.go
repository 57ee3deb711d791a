package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/storefront/internal/db"
	dbRedis "github.com/kailas-cloud/storefront/internal/db/redis"
	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
	"github.com/kailas-cloud/storefront/internal/domain/item"
	"github.com/kailas-cloud/storefront/internal/domain/lang"
	"github.com/kailas-cloud/storefront/internal/domain/search/filter"
	"github.com/kailas-cloud/storefront/internal/domain/search/result"
	"github.com/kailas-cloud/storefront/internal/domain/supplier"
	"github.com/kailas-cloud/storefront/internal/generation"
	catalogrepo "github.com/kailas-cloud/storefront/internal/repository/catalog"
	actionuc "github.com/kailas-cloud/storefront/internal/usecase/action"
	cataloguc "github.com/kailas-cloud/storefront/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/storefront/internal/usecase/health"
	searchuc "github.com/kailas-cloud/storefront/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced in tests.
type catalogUseCase interface {
	Resolve(ctx context.Context, entity domcat.Entity, opts cataloguc.Options) (domcat.Collection, error)
	Item(ctx context.Context, id string) (item.Item, error)
	Supplier(ctx context.Context, id string) (supplier.Supplier, error)
}

type searchUseCase interface {
	FindAlternatives(ctx context.Context, text, itemID string, l lang.Lang) ([]result.Scored, error)
	Search(ctx context.Context, text string, entity domcat.Entity, f filter.Filter) (domcat.Collection, error)
}

type actionUseCase interface {
	Perform(ctx context.Context, name string) (actionuc.Ack, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the storefront SDK entry point. It is safe for concurrent use.
type Client struct {
	cache      db.Store
	catalogSvc catalogUseCase
	searchSvc  searchUseCase
	actionSvc  actionUseCase
	healthSvc  healthUseCase
	tracker    *generation.Tracker
	lang       lang.Lang
	obs        *observer
}

// New creates a storefront Client. The embedded catalog is used unless
// WithDataDir or WithFS is given. When a cache is configured the provided
// context bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	defLang, ok := lang.Parse(cfg.language)
	if !ok {
		return nil, fmt.Errorf("storefront: unsupported language %q", cfg.language)
	}
	fallback, ok := lang.Parse(cfg.fallback)
	if !ok {
		return nil, fmt.Errorf("storefront: unsupported fallback language %q", cfg.fallback)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	files, err := openFiles(cfg)
	if err != nil {
		return nil, err
	}
	if err := files.Ping(ctx); err != nil {
		return nil, fmt.Errorf("storefront: catalog not readable: %w", err)
	}

	var store db.Store
	if cfg.driver != "" {
		if store, err = createStore(cfg); err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("storefront: cache not ready: %w", err)
		}
	}

	return wireClient(files, store, fallback, defLang, cfg, obs), nil
}

func openFiles(cfg *clientConfig) (*catalogrepo.FileStore, error) {
	switch {
	case cfg.dataDir != "":
		fs, err := catalogrepo.NewDirStore(cfg.dataDir)
		if err != nil {
			return nil, fmt.Errorf("storefront: open catalog directory: %w", err)
		}
		return fs, nil
	case cfg.fsys != nil:
		return catalogrepo.NewFileStore(cfg.fsys), nil
	default:
		return catalogrepo.NewFileStore(catalogrepo.Embedded()), nil
	}
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("storefront: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storefront: unknown driver %q", cfg.driver)
	}
}

func wireClient(
	files *catalogrepo.FileStore, store db.Store, fallback, defLang lang.Lang, cfg *clientConfig, obs *observer,
) *Client {
	var (
		loader cataloguc.Store = files
		cache  healthuc.CachePinger
	)
	if store != nil {
		loader = catalogrepo.NewCachedStore(files, store, cfg.cacheTTL, cfg.keyPrefix, obs.cacheCounter(), obs.zapLogger())
		cache = store
	}

	catalogSvc := cataloguc.New(loader, fallback, nil)
	return &Client{
		cache:      store,
		catalogSvc: catalogSvc,
		searchSvc:  searchuc.New(catalogSvc, searchuc.Metrics{}),
		actionSvc:  actionuc.New(),
		healthSvc:  healthuc.New(files, cache),
		tracker:    generation.NewTracker(cfg.sessionTTL, cfg.maxSessions),
		lang:       defLang,
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// Health checks the catalog files and, when configured, the cache.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// Catalog returns a collection of entity. A collection without a file for the
// requested category and language is empty, not an error.
func (c *Client) Catalog(ctx context.Context, entity Entity, opts CatalogOptions) (Collection, error) {
	return call(ctx, c, "catalog", nil, func(ctx context.Context) (Collection, error) {
		return c.catalog(ctx, entity, opts)
	})
}

// Search filters a collection by a case-insensitive substring of the item name or
// supplier business name. Empty text matches everything.
func (c *Client) Search(ctx context.Context, text string, entity Entity, opts SearchOptions) (Collection, error) {
	return call(ctx, c, "search", nil, func(ctx context.Context) (Collection, error) {
		return c.search(ctx, text, entity, opts)
	})
}

// Alternatives ranks products and services against q. At most ten are returned.
func (c *Client) Alternatives(ctx context.Context, q AlternativesQuery) ([]Alternative, error) {
	return call(ctx, c, "alternatives", nil, func(ctx context.Context) ([]Alternative, error) {
		return c.alternatives(ctx, q)
	})
}

// Item looks up a product or service by id.
func (c *Client) Item(ctx context.Context, id string) (Item, error) {
	return call(ctx, c, "item", nil, func(ctx context.Context) (Item, error) {
		it, err := c.catalogSvc.Item(ctx, id)
		if err != nil {
			return Item{}, fmt.Errorf("item %q: %w", id, err)
		}
		return itemFromDomain(&it), nil
	})
}

// Supplier looks up a supplier by id.
func (c *Client) Supplier(ctx context.Context, id string) (Supplier, error) {
	return call(ctx, c, "supplier", nil, func(ctx context.Context) (Supplier, error) {
		s, err := c.catalogSvc.Supplier(ctx, id)
		if err != nil {
			return Supplier{}, fmt.Errorf("supplier %q: %w", id, err)
		}
		return supplierFromDomain(&s), nil
	})
}

// Action acknowledges a demo storefront action. Nothing is applied.
func (c *Client) Action(ctx context.Context, name string) (Ack, error) {
	return call(ctx, c, "action", nil, func(ctx context.Context) (Ack, error) {
		ack, err := c.actionSvc.Perform(ctx, name)
		if err != nil {
			return Ack{}, err
		}
		return ackFromDomain(ack), nil
	})
}

// Actions lists the supported action names.
func Actions() []string {
	names := actionuc.Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

func (c *Client) catalog(ctx context.Context, entity Entity, opts CatalogOptions) (Collection, error) {
	e, err := domcat.ParseEntity(string(entity))
	if err != nil {
		return Collection{}, err
	}
	col, err := c.catalogSvc.Resolve(ctx, e, cataloguc.Options{
		CategoryID: opts.Category,
		Lang:       c.language(opts.Lang),
		All:        opts.Category == "",
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Collection{}, err
	}
	return collectionFromDomain(col), nil
}

func (c *Client) search(ctx context.Context, text string, entity Entity, opts SearchOptions) (Collection, error) {
	e, err := domcat.ParseEntity(string(entity))
	if err != nil {
		return Collection{}, err
	}
	f, err := filter.New(opts.Category, c.language(opts.Lang), opts.MinPrice, opts.MaxPrice)
	if err != nil {
		return Collection{}, err
	}
	col, err := c.searchSvc.Search(ctx, text, e, f)
	if err != nil {
		return Collection{}, err
	}
	return collectionFromDomain(col), nil
}

func (c *Client) alternatives(ctx context.Context, q AlternativesQuery) ([]Alternative, error) {
	rs, err := c.searchSvc.FindAlternatives(ctx, q.Text, q.ItemID, c.language(q.Lang))
	if err != nil {
		return nil, err
	}
	return alternativesFromDomain(rs), nil
}

// language resolves a caller-supplied code; empty means the client language.
func (c *Client) language(code string) lang.Lang {
	if code == "" {
		return c.lang
	}
	return lang.Match(code)
}

// call runs fn under observation. With a ticket, a result completed after a newer
// call of the same session began is replaced by ErrStaleRequest.
func call[T any](
	ctx context.Context, c *Client, op string, tk *generation.Ticket, fn func(context.Context) (T, error),
) (out T, err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	out, err = fn(ctx)
	if tk != nil && !tk.Current() {
		var zero T
		return zero, fmt.Errorf("%w: %s generation %d superseded", ErrStaleRequest, op, tk.Generation())
	}
	return out, err
}

// Session groups the calls of one consumer, such as a single search box.
// Only the most recently started call of a session delivers its result.
type Session struct {
	id string
	c  *Client
}

// NewSession starts a session with a random id.
func (c *Client) NewSession() *Session {
	return &Session{id: uuid.NewString(), c: c}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Catalog is Client.Catalog with generation checking.
func (s *Session) Catalog(ctx context.Context, entity Entity, opts CatalogOptions) (Collection, error) {
	tk := s.c.tracker.Next(s.id)
	return call(ctx, s.c, "catalog", &tk, func(ctx context.Context) (Collection, error) {
		return s.c.catalog(ctx, entity, opts)
	})
}

// Search is Client.Search with generation checking.
func (s *Session) Search(ctx context.Context, text string, entity Entity, opts SearchOptions) (Collection, error) {
	tk := s.c.tracker.Next(s.id)
	return call(ctx, s.c, "search", &tk, func(ctx context.Context) (Collection, error) {
		return s.c.search(ctx, text, entity, opts)
	})
}

// Alternatives is Client.Alternatives with generation checking.
func (s *Session) Alternatives(ctx context.Context, q AlternativesQuery) ([]Alternative, error) {
	tk := s.c.tracker.Next(s.id)
	return call(ctx, s.c, "alternatives", &tk, func(ctx context.Context) ([]Alternative, error) {
		return s.c.alternatives(ctx, q)
	})
}
