package storefront

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
	"github.com/kailas-cloud/storefront/internal/domain/lang"
	"github.com/kailas-cloud/storefront/internal/domain/search/filter"
	"github.com/kailas-cloud/storefront/internal/domain/search/result"
	"github.com/kailas-cloud/storefront/internal/generation"
)

// blockingSearch holds its first call until release is closed.
type blockingSearch struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newBlockingSearch() *blockingSearch {
	return &blockingSearch{started: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingSearch) wait() {
	if b.calls.Add(1) == 1 {
		close(b.started)
		<-b.release
	}
}

func (b *blockingSearch) FindAlternatives(_ context.Context, _, _ string, _ lang.Lang) ([]result.Scored, error) {
	b.wait()
	return []result.Scored{}, nil
}

func (b *blockingSearch) Search(_ context.Context, _ string, e domcat.Entity, _ filter.Filter) (domcat.Collection, error) {
	b.wait()
	return domcat.Empty(e), nil
}

func newSessionClient(search searchUseCase) *Client {
	return &Client{
		searchSvc: search,
		tracker:   generation.NewTracker(time.Minute, 16),
		lang:      lang.English,
	}
}

func TestSession_SupersededCallIsStale(t *testing.T) {
	fake := newBlockingSearch()
	s := newSessionClient(fake).NewSession()
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Alternatives(ctx, AlternativesQuery{Text: "kettle"})
		firstErr <- err
	}()
	<-fake.started

	if _, err := s.Alternatives(ctx, AlternativesQuery{Text: "espresso"}); err != nil {
		t.Fatalf("latest call: %v", err)
	}
	close(fake.release)

	if err := <-firstErr; !errors.Is(err, ErrStaleRequest) {
		t.Fatalf("superseded call err = %v, want ErrStaleRequest", err)
	}
}

func TestSession_IndependentSessionsDoNotInterfere(t *testing.T) {
	fake := newBlockingSearch()
	c := newSessionClient(fake)
	a, b := c.NewSession(), c.NewSession()
	if a.ID() == b.ID() {
		t.Fatal("sessions share an id")
	}
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() {
		_, err := a.Search(ctx, "cup", Products, SearchOptions{})
		firstErr <- err
	}()
	<-fake.started

	if _, err := b.Search(ctx, "mug", Products, SearchOptions{}); err != nil {
		t.Fatalf("other session: %v", err)
	}
	close(fake.release)

	if err := <-firstErr; err != nil {
		t.Fatalf("first session err = %v, want nil", err)
	}
}

func TestSession_SequentialCallsDeliver(t *testing.T) {
	c := newEmbeddedClient(t)
	s := c.NewSession()
	ctx := context.Background()

	for _, q := range []string{"c", "cu", "cup"} {
		if _, err := s.Search(ctx, q, Products, SearchOptions{}); err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
	}
	col, err := s.Catalog(ctx, Services, CatalogOptions{Category: "repairs"})
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if col.Len() != 2 {
		t.Errorf("len = %d, want 2", col.Len())
	}
}

func TestSession_StaleAfterEvictionBySessionLimit(t *testing.T) {
	fake := newBlockingSearch()
	c := &Client{
		searchSvc: fake,
		tracker:   generation.NewTracker(time.Hour, 1),
		lang:      lang.English,
	}
	a, b := c.NewSession(), c.NewSession()
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() {
		_, err := a.Alternatives(ctx, AlternativesQuery{Text: "kettle"})
		firstErr <- err
	}()
	<-fake.started

	// b takes the only slot and evicts a while a's first call is in flight.
	if _, err := b.Alternatives(ctx, AlternativesQuery{Text: "mug"}); err != nil {
		t.Fatalf("session b: %v", err)
	}
	if _, err := a.Alternatives(ctx, AlternativesQuery{Text: "espresso"}); err != nil {
		t.Fatalf("latest call of a: %v", err)
	}
	close(fake.release)

	if err := <-firstErr; !errors.Is(err, ErrStaleRequest) {
		t.Fatalf("superseded call err = %v, want ErrStaleRequest", err)
	}
}
