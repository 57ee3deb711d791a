package health

import "context"

// CatalogPinger checks that the static catalog is readable.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks the key-value cache.
type CachePinger interface {
	Ping(ctx context.Context) error
}
