package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that no static catalog file matches the requested key.
	// Callers resolving collections treat it as an empty result.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals that both or neither of text and item id were given.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrItemNotFound signals an item id that resolves in neither the products nor the services pool.
	ErrItemNotFound = errors.New("item not found")
	// ErrSupplierNotFound signals a missing supplier.
	ErrSupplierNotFound = errors.New("supplier not found")
	// ErrResolutionFailed signals that an underlying catalog fetch failed.
	ErrResolutionFailed = errors.New("resolution failed")
	// ErrInvalidFilter signals malformed search filters.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrUnknownEntity signals an entity type other than products, services or suppliers.
	ErrUnknownEntity = errors.New("unknown entity type")
	// ErrUnknownAction signals a demo action name that the storefront does not offer.
	ErrUnknownAction = errors.New("unknown action")
	// ErrStaleRequest signals a completion superseded by a newer request generation.
	ErrStaleRequest = errors.New("stale request")
)

// ResolutionError wraps ErrResolutionFailed with the catalog key that failed to load.
type ResolutionError struct {
	Key string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrResolutionFailed.Error(), e.Key, e.Err)
}

func (e *ResolutionError) Unwrap() []error { return []error{ErrResolutionFailed, e.Err} }

// NewResolutionError creates a resolution error for the given catalog key.
func NewResolutionError(key string, err error) error {
	return &ResolutionError{Key: key, Err: err}
}
