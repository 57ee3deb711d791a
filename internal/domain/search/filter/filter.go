// Package filter holds plain catalog search filters.
package filter

import (
	"fmt"

	"github.com/kailas-cloud/storefront/internal/domain"
	"github.com/kailas-cloud/storefront/internal/domain/lang"
)

// Filter narrows a plain-text catalog search.
type Filter struct {
	categoryID string
	lang       lang.Lang
	minPrice   *float64
	maxPrice   *float64
}

// New validates and creates a Filter. An empty language means the default one.
// Price bounds are inclusive and only applied to products.
func New(categoryID string, l lang.Lang, minPrice, maxPrice *float64) (Filter, error) {
	if l == "" {
		l = lang.Default()
	}
	if !l.IsValid() {
		return Filter{}, fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidFilter, l)
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return Filter{}, fmt.Errorf("%w: min price %g exceeds max price %g", domain.ErrInvalidFilter, *minPrice, *maxPrice)
	}
	return Filter{
		categoryID: categoryID,
		lang:       l,
		minPrice:   minPrice,
		maxPrice:   maxPrice,
	}, nil
}

// CategoryID returns the category to search, empty for the complete collection.
func (f Filter) CategoryID() string { return f.categoryID }

// Lang returns the requested language.
func (f Filter) Lang() lang.Lang {
	if f.lang == "" {
		return lang.Default()
	}
	return f.lang
}

// MinPrice returns the inclusive lower price bound.
func (f Filter) MinPrice() *float64 { return f.minPrice }

// MaxPrice returns the inclusive upper price bound.
func (f Filter) MaxPrice() *float64 { return f.maxPrice }

// HasPriceBounds reports whether any price bound is set.
func (f Filter) HasPriceBounds() bool { return f.minPrice != nil || f.maxPrice != nil }

// PriceInBounds reports whether price satisfies both bounds.
func (f Filter) PriceInBounds(price float64) bool {
	if f.minPrice != nil && price < *f.minPrice {
		return false
	}
	if f.maxPrice != nil && price > *f.maxPrice {
		return false
	}
	return true
}
