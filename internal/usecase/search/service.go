// Package search answers plain catalog searches and "find alternatives" requests.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/storefront/internal/domain"
	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
	"github.com/kailas-cloud/storefront/internal/domain/item"
	"github.com/kailas-cloud/storefront/internal/domain/lang"
	"github.com/kailas-cloud/storefront/internal/domain/search/filter"
	"github.com/kailas-cloud/storefront/internal/domain/search/query"
	"github.com/kailas-cloud/storefront/internal/domain/search/result"
	"github.com/kailas-cloud/storefront/internal/domain/supplier"
	"github.com/kailas-cloud/storefront/internal/logger"
	ucatalog "github.com/kailas-cloud/storefront/internal/usecase/catalog"
)

// Phase is a step of a find-alternatives run.
type Phase string

// Find-alternatives phases, in order.
const (
	PhaseIdle               Phase = "idle"
	PhaseValidating         Phase = "validating"
	PhaseResolvingReference Phase = "resolving_reference"
	PhaseScoring            Phase = "scoring"
	PhaseDone               Phase = "done"
	PhaseErrored            Phase = "errored"
)

// Metrics holds the optional collectors of the service.
type Metrics struct {
	Runs       *prometheus.CounterVec // label "outcome"
	ResultSize prometheus.Observer
}

// Service handles catalog search and alternatives.
type Service struct {
	catalog Resolver
	metrics Metrics
}

// New creates a search service.
func New(catalog Resolver, m Metrics) *Service {
	return &Service{catalog: catalog, metrics: m}
}

// run tracks one find-alternatives call.
type run struct {
	phase    Phase
	failedIn Phase
	start    time.Time
}

func (r *run) advance(p Phase) { r.phase = p }

func (r *run) fail(err error) error {
	r.failedIn = r.phase
	r.phase = PhaseErrored
	return err
}

// FindAlternatives ranks products and services against a free-text reference or
// against the name and description of an existing item.
// Exactly one of text and itemID must be set. The referenced item is never part of
// the result. On error no partial results are returned.
func (s *Service) FindAlternatives(
	ctx context.Context, text, itemID string, l lang.Lang,
) (results []result.Scored, err error) {
	r := &run{phase: PhaseIdle, start: time.Now()}
	defer func() { s.finish(ctx, r, len(results), err) }()

	r.advance(PhaseValidating)
	q, err := query.New(text, itemID)
	if err != nil {
		return nil, r.fail(err)
	}

	r.advance(PhaseResolvingReference)
	reference, excludeID := q.Text(), ""
	var pool []item.Item
	if q.ByItem() {
		if pool, err = s.pools(ctx, l); err != nil {
			return nil, r.fail(err)
		}
		ref, ok := find(pool, q.ItemID())
		if !ok {
			return nil, r.fail(fmt.Errorf("%w: %q", domain.ErrItemNotFound, q.ItemID()))
		}
		reference, excludeID = ref.Haystack(), ref.ID()
	}

	r.advance(PhaseScoring)
	if !q.ByItem() {
		if pool, err = s.pools(ctx, l); err != nil {
			return nil, r.fail(err)
		}
	}
	results = Score(reference, pool, excludeID)

	r.advance(PhaseDone)
	return results, nil
}

// pools fetches the complete products and services collections concurrently and
// merges them, products first. A missing collection counts as empty; any other
// failure cancels the sibling fetch and fails the call.
func (s *Service) pools(ctx context.Context, l lang.Lang) ([]item.Item, error) {
	var products, services []item.Item

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.allItems(gctx, domcat.Products, l)
		return err
	})
	g.Go(func() (err error) {
		services, err = s.allItems(gctx, domcat.Services, l)
		return err
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, domain.ErrResolutionFailed) {
			err = domain.NewResolutionError("pools", err)
		}
		return nil, err
	}

	pool := make([]item.Item, 0, len(products)+len(services))
	pool = append(pool, products...)
	return append(pool, services...), nil
}

func (s *Service) allItems(ctx context.Context, e domcat.Entity, l lang.Lang) ([]item.Item, error) {
	col, err := s.catalog.Resolve(ctx, e, ucatalog.Options{Lang: l, All: true})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve %s: %w", e, err)
	}
	return col.Items(), nil
}

func find(pool []item.Item, id string) (item.Item, bool) {
	for i := range pool {
		if pool[i].ID() == id {
			return pool[i], true
		}
	}
	return item.Item{}, false
}

func (s *Service) finish(ctx context.Context, r *run, n int, err error) {
	outcome := outcomeOf(err)
	fields := []zap.Field{
		zap.String("phase", string(r.phase)),
		zap.String("outcome", outcome),
		zap.Duration("latency", time.Since(r.start)),
	}
	if err != nil {
		fields = append(fields, zap.String("failed_in", string(r.failedIn)), zap.Error(err))
	} else {
		fields = append(fields, zap.Int("results", n))
	}
	logger.FromContext(ctx).Debug("find_alternatives", fields...)

	if s.metrics.Runs != nil {
		s.metrics.Runs.WithLabelValues(outcome).Inc()
	}
	if err == nil && s.metrics.ResultSize != nil {
		s.metrics.ResultSize.Observe(float64(n))
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidQuery):
		return "invalid_query"
	case errors.Is(err, domain.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "resolution_failed"
	}
}

// Search filters the collection of entity by a case-insensitive substring of the
// item name or supplier business name. Empty text matches everything. Price bounds
// apply to products only; a product without a price fails any bound.
// Result order is pool order. A missing collection yields an empty result.
func (s *Service) Search(
	ctx context.Context, text string, entity domcat.Entity, f filter.Filter,
) (domcat.Collection, error) {
	opts := ucatalog.Options{Lang: f.Lang(), All: true}
	if f.CategoryID() != "" {
		opts = ucatalog.Options{CategoryID: f.CategoryID(), Lang: f.Lang()}
	}

	col, err := s.catalog.Resolve(ctx, entity, opts)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domcat.Empty(entity), nil
		}
		return domcat.Empty(entity), fmt.Errorf("search %s: %w", entity, err)
	}

	needle := strings.ToLower(strings.TrimSpace(text))

	if entity == domcat.Suppliers {
		out := make([]supplier.Supplier, 0, col.Len())
		for _, sp := range col.Suppliers() {
			if strings.Contains(strings.ToLower(sp.BusinessName()), needle) {
				out = append(out, sp)
			}
		}
		return domcat.NewSuppliers(out), nil
	}

	priced := entity == domcat.Products && f.HasPriceBounds()
	out := make([]item.Item, 0, col.Len())
	for _, it := range col.Items() {
		if !strings.Contains(strings.ToLower(it.Name()), needle) {
			continue
		}
		if priced {
			price, ok := it.Price()
			if !ok || !f.PriceInBounds(price) {
				continue
			}
		}
		out = append(out, it)
	}
	return domcat.NewItems(entity, out), nil
}
