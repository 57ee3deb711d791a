// Package query holds the validated "find alternatives" query.
package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/storefront/internal/domain"
)

// MaxTextLength is the maximum allowed free-text length.
const MaxTextLength = 4096

// Query is either a free-text reference or an item id, never both.
type Query struct {
	text   string
	itemID string
}

// New validates that exactly one of text and itemID is present.
// Whitespace-only values count as absent.
func New(text, itemID string) (Query, error) {
	text = strings.TrimSpace(text)
	itemID = strings.TrimSpace(itemID)

	switch {
	case text != "" && itemID != "":
		return Query{}, fmt.Errorf("%w: text and item id are mutually exclusive", domain.ErrInvalidQuery)
	case text == "" && itemID == "":
		return Query{}, fmt.Errorf("%w: one of text or item id is required", domain.ErrInvalidQuery)
	}
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("%w: text too long (max %d chars)", domain.ErrInvalidQuery, MaxTextLength)
	}
	return Query{text: text, itemID: itemID}, nil
}

// Text returns the free-text reference, empty for item queries.
func (q Query) Text() string { return q.text }

// ItemID returns the referenced item id, empty for text queries.
func (q Query) ItemID() string { return q.itemID }

// ByItem reports whether the reference text must be resolved from an item.
func (q Query) ByItem() bool { return q.itemID != "" }
