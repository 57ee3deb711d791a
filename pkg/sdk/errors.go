package storefront

import "github.com/kailas-cloud/storefront/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidQuery     = domain.ErrInvalidQuery
	ErrItemNotFound     = domain.ErrItemNotFound
	ErrSupplierNotFound = domain.ErrSupplierNotFound
	ErrResolutionFailed = domain.ErrResolutionFailed
	ErrInvalidFilter    = domain.ErrInvalidFilter
	ErrUnknownEntity    = domain.ErrUnknownEntity
	ErrUnknownAction    = domain.ErrUnknownAction
	ErrStaleRequest     = domain.ErrStaleRequest
)
