package catalog

import (
	"context"

	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
)

// Store reads raw catalog files.
type Store interface {
	Load(ctx context.Context, key domcat.Key) ([]byte, error)
}
