// Package catalog resolves static catalog collections by entity, category and language.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/domain"
	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
	"github.com/kailas-cloud/storefront/internal/domain/item"
	"github.com/kailas-cloud/storefront/internal/domain/lang"
	"github.com/kailas-cloud/storefront/internal/domain/supplier"
	"github.com/kailas-cloud/storefront/internal/logger"
)

// Options select which collection of an entity to resolve.
type Options struct {
	CategoryID string
	Lang       lang.Lang
	All        bool
}

// Service resolves catalog collections.
type Service struct {
	store    Store
	fallback lang.Lang
	loads    *prometheus.CounterVec
}

// New creates a resolver.
// fallback is the language every "all" collection is read in; translations of the
// complete collections are incomplete, so all languages share it.
// loads is a counter vec with labels "entity" and "status", may be nil.
func New(store Store, fallback lang.Lang, loads *prometheus.CounterVec) *Service {
	if !fallback.IsValid() {
		fallback = lang.Default()
	}
	return &Service{store: store, fallback: fallback, loads: loads}
}

// Resolve returns the collection of entity selected by opts.
// A missing file yields an empty collection together with an error wrapping
// domain.ErrNotFound; callers treat it as an empty result.
func (s *Service) Resolve(ctx context.Context, entity domcat.Entity, opts Options) (domcat.Collection, error) {
	if _, err := domcat.ParseEntity(string(entity)); err != nil {
		return domcat.Empty(entity), err
	}

	key := domcat.Key{Entity: entity, Category: domcat.AllCategory, Lang: s.fallback}
	if !opts.All {
		if opts.CategoryID == "" {
			return domcat.Empty(entity), fmt.Errorf("%w: category is required unless all is set", domain.ErrInvalidFilter)
		}
		key.Category = opts.CategoryID
		key.Lang = s.lang(opts.Lang)
	}

	col, err := s.load(ctx, key)
	s.observe(ctx, key, err)
	return col, err
}

// Item finds a product or service by id in the complete collections.
func (s *Service) Item(ctx context.Context, id string) (item.Item, error) {
	for _, e := range []domcat.Entity{domcat.Products, domcat.Services} {
		col, err := s.Resolve(ctx, e, Options{All: true})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return item.Item{}, err
		}
		for _, it := range col.Items() {
			if it.ID() == id {
				return it, nil
			}
		}
	}
	return item.Item{}, fmt.Errorf("%w: %q", domain.ErrItemNotFound, id)
}

// Supplier finds a supplier by id in the complete collection.
func (s *Service) Supplier(ctx context.Context, id string) (supplier.Supplier, error) {
	col, err := s.Resolve(ctx, domcat.Suppliers, Options{All: true})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return supplier.Supplier{}, err
	}
	for _, sp := range col.Suppliers() {
		if sp.ID() == id {
			return sp, nil
		}
	}
	return supplier.Supplier{}, fmt.Errorf("%w: %q", domain.ErrSupplierNotFound, id)
}

func (s *Service) lang(l lang.Lang) lang.Lang {
	if l.IsValid() {
		return l
	}
	return s.fallback
}

func (s *Service) load(ctx context.Context, key domcat.Key) (domcat.Collection, error) {
	data, err := s.store.Load(ctx, key)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return domcat.Empty(key.Entity), fmt.Errorf("resolve %s: %w", key, err)
		case errors.Is(err, domain.ErrInvalidFilter):
			return domcat.Empty(key.Entity), err
		default:
			return domcat.Empty(key.Entity), domain.NewResolutionError(key.String(), err)
		}
	}

	if kind, ok := key.Entity.ItemKind(); ok {
		items, err := item.DecodeList(data, kind)
		if err != nil {
			return domcat.Empty(key.Entity), domain.NewResolutionError(key.String(), err)
		}
		return domcat.NewItems(key.Entity, items), nil
	}

	suppliers, err := supplier.DecodeList(data)
	if err != nil {
		return domcat.Empty(key.Entity), domain.NewResolutionError(key.String(), err)
	}
	return domcat.NewSuppliers(suppliers), nil
}

func (s *Service) observe(ctx context.Context, key domcat.Key, err error) {
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		status = "not_found"
	default:
		status = "error"
		logger.FromContext(ctx).Warn("Catalog resolution failed",
			zap.String("key", key.String()), zap.Error(err))
	}
	if s.loads != nil {
		s.loads.WithLabelValues(string(key.Entity), status).Inc()
	}
}
