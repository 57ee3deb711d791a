package storefront

import (
	"context"
	"fmt"
)

// QueryBuilder is a fluent builder for catalog searches.
type QueryBuilder struct {
	client  *Client
	session *Session
	entity  Entity

	text  string
	opts  SearchOptions
	limit int
}

// Query starts a search over entity.
func (c *Client) Query(entity Entity) *QueryBuilder {
	return &QueryBuilder{client: c, entity: entity}
}

// Query starts a generation-checked search over entity.
func (s *Session) Query(entity Entity) *QueryBuilder {
	return &QueryBuilder{client: s.c, session: s, entity: entity}
}

// Text sets the name substring to match.
func (b *QueryBuilder) Text(q string) *QueryBuilder {
	b.text = q
	return b
}

// Category restricts the search to one category.
func (b *QueryBuilder) Category(id string) *QueryBuilder {
	b.opts.Category = id
	return b
}

// Lang sets the display language.
func (b *QueryBuilder) Lang(code string) *QueryBuilder {
	b.opts.Lang = code
	return b
}

// MinPrice sets the lower product price bound, inclusive.
func (b *QueryBuilder) MinPrice(p float64) *QueryBuilder {
	b.opts.MinPrice = &p
	return b
}

// MaxPrice sets the upper product price bound, inclusive.
func (b *QueryBuilder) MaxPrice(p float64) *QueryBuilder {
	b.opts.MaxPrice = &p
	return b
}

// Limit caps the number of returned entries. Zero means no limit.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.limit = n
	return b
}

// Do executes the search.
func (b *QueryBuilder) Do(ctx context.Context) (Collection, error) {
	if b.limit < 0 {
		return Collection{}, fmt.Errorf("%w: negative limit %d", ErrInvalidFilter, b.limit)
	}

	var (
		col Collection
		err error
	)
	if b.session != nil {
		col, err = b.session.Search(ctx, b.text, b.entity, b.opts)
	} else {
		col, err = b.client.Search(ctx, b.text, b.entity, b.opts)
	}
	if err != nil {
		return Collection{}, err
	}

	if b.limit > 0 {
		if len(col.Items) > b.limit {
			col.Items = col.Items[:b.limit]
		}
		if len(col.Suppliers) > b.limit {
			col.Suppliers = col.Suppliers[:b.limit]
		}
	}
	return col, nil
}
