package search

import (
	"context"
	"sync"
	"testing"

	"github.com/kailas-cloud/storefront/internal/domain"
	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
	"github.com/kailas-cloud/storefront/internal/domain/item"
	"github.com/kailas-cloud/storefront/internal/domain/supplier"
	ucatalog "github.com/kailas-cloud/storefront/internal/usecase/catalog"
)

// mockResolver serves fixed complete collections per entity.
type mockResolver struct {
	mu    sync.Mutex
	cols  map[domcat.Entity]domcat.Collection
	errs  map[domcat.Entity]error
	block map[domcat.Entity]bool // wait for ctx cancellation before returning
	calls []ucatalog.Options
}

func (m *mockResolver) Resolve(ctx context.Context, e domcat.Entity, opts ucatalog.Options) (domcat.Collection, error) {
	m.mu.Lock()
	m.calls = append(m.calls, opts)
	m.mu.Unlock()

	if m.block[e] {
		<-ctx.Done()
		return domcat.Empty(e), ctx.Err()
	}
	if err, ok := m.errs[e]; ok {
		return domcat.Empty(e), err
	}
	if !opts.All {
		// Category collections are not served by this fake.
		return domcat.Empty(e), domain.ErrNotFound
	}
	if col, ok := m.cols[e]; ok {
		return col, nil
	}
	return domcat.Empty(e), domain.ErrNotFound
}

func product(t *testing.T, id, name, desc string, price *float64) item.Item {
	t.Helper()
	it, err := item.NewProduct(item.Common{ID: id, Name: name, Description: desc}, price, nil)
	if err != nil {
		t.Fatalf("product %s: %v", id, err)
	}
	return it
}

func service(t *testing.T, id, name, desc string) item.Item {
	t.Helper()
	it, err := item.NewService(item.Common{ID: id, Name: name, Description: desc})
	if err != nil {
		t.Fatalf("service %s: %v", id, err)
	}
	return it
}

func price(v float64) *float64 { return &v }

func supplierOf(t *testing.T, id, name string) supplier.Supplier {
	t.Helper()
	s, err := supplier.FromRecord(supplier.Record{SupplierID: id, BusinessName: name})
	if err != nil {
		t.Fatalf("supplier %s: %v", id, err)
	}
	return s
}

func newTestResolver(t *testing.T) *mockResolver {
	t.Helper()
	return &mockResolver{
		cols: map[domcat.Entity]domcat.Collection{
			domcat.Products: domcat.NewItems(domcat.Products, []item.Item{
				product(t, "p1", "Red Cup", "ceramic", price(5)),
				product(t, "p2", "Blue Mug", "enamel", price(15)),
				product(t, "p3", "Green Plate", "porcelain", price(25)),
				product(t, "p4", "Oak Cupboard", "wall cupboard", nil),
			}),
			domcat.Services: domcat.NewItems(domcat.Services, []item.Item{
				service(t, "v1", "Cup Repair", "fixes red handles"),
			}),
			domcat.Suppliers: domcat.NewSuppliers([]supplier.Supplier{
				supplierOf(t, "s1", "Clay and Kiln"),
				supplierOf(t, "s2", "Brew Electric"),
			}),
		},
		errs:  map[domcat.Entity]error{},
		block: map[domcat.Entity]bool{},
	}
}
