package search

import (
	"context"

	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
	ucatalog "github.com/kailas-cloud/storefront/internal/usecase/catalog"
)

// Resolver loads catalog collections.
type Resolver interface {
	Resolve(ctx context.Context, entity domcat.Entity, opts ucatalog.Options) (domcat.Collection, error)
}
