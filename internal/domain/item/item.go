// Package item holds the catalog item aggregate: a product or a service.
package item

import "fmt"

// Kind discriminates the item variant.
type Kind string

// Item kinds.
const (
	KindProduct Kind = "product"
	KindService Kind = "service"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k == KindProduct || k == KindService
}

// Item is a read-only catalog entry. Product-only fields are reachable only
// through Price and Stock, which switch on the kind.
type Item struct {
	kind         Kind
	id           string
	name         string
	description  string
	avgRating    float64
	ratingsCount int
	supplierID   string
	categoryID   string
	imageURLs    []string

	product productFields
}

type productFields struct {
	price *float64
	stock *int
}

// Common holds fields shared by both variants.
type Common struct {
	ID           string
	Name         string
	Description  string
	AvgRating    float64
	RatingsCount int
	SupplierID   string
	CategoryID   string
	ImageURLs    []string
}

// NewProduct validates and creates a product. price and stock are optional.
func NewProduct(c Common, price *float64, stock *int) (Item, error) {
	if err := validateCommon(c); err != nil {
		return Item{}, fmt.Errorf("product: %w", err)
	}
	if price != nil && *price < 0 {
		return Item{}, fmt.Errorf("product %q: price must not be negative", c.ID)
	}
	if stock != nil && *stock < 0 {
		return Item{}, fmt.Errorf("product %q: stock must not be negative", c.ID)
	}
	it := fromCommon(KindProduct, c)
	it.product = productFields{price: clonePtr(price), stock: clonePtr(stock)}
	return it, nil
}

// NewService validates and creates a service.
func NewService(c Common) (Item, error) {
	if err := validateCommon(c); err != nil {
		return Item{}, fmt.Errorf("service: %w", err)
	}
	return fromCommon(KindService, c), nil
}

func validateCommon(c Common) error {
	if c.ID == "" {
		return fmt.Errorf("id is required")
	}
	if c.RatingsCount < 0 {
		return fmt.Errorf("item %q: ratings count must not be negative", c.ID)
	}
	return nil
}

func fromCommon(k Kind, c Common) Item {
	urls := make([]string, len(c.ImageURLs))
	copy(urls, c.ImageURLs)
	return Item{
		kind:         k,
		id:           c.ID,
		name:         c.Name,
		description:  c.Description,
		avgRating:    c.AvgRating,
		ratingsCount: c.RatingsCount,
		supplierID:   c.SupplierID,
		categoryID:   c.CategoryID,
		imageURLs:    urls,
	}
}

// Kind returns the variant discriminant.
func (i *Item) Kind() Kind { return i.kind }

// ID returns the product or service id.
func (i *Item) ID() string { return i.id }

// Name returns the display name.
func (i *Item) Name() string { return i.name }

// Description returns the optional description.
func (i *Item) Description() string { return i.description }

// AvgRating returns the average buyer rating.
func (i *Item) AvgRating() float64 { return i.avgRating }

// RatingsCount returns the number of ratings.
func (i *Item) RatingsCount() int { return i.ratingsCount }

// SupplierID returns the owning supplier.
func (i *Item) SupplierID() string { return i.supplierID }

// CategoryID returns the catalog category, if known.
func (i *Item) CategoryID() string { return i.categoryID }

// ImageURLs returns the image file urls.
func (i *Item) ImageURLs() []string { return i.imageURLs }

// Price returns the product price. Services carry no price.
func (i *Item) Price() (float64, bool) {
	switch i.kind {
	case KindProduct:
		if i.product.price == nil {
			return 0, false
		}
		return *i.product.price, true
	case KindService:
		return 0, false
	default:
		panic(fmt.Sprintf("item: unknown kind %q", i.kind))
	}
}

// Stock returns the product stock. Services carry no stock.
func (i *Item) Stock() (int, bool) {
	switch i.kind {
	case KindProduct:
		if i.product.stock == nil {
			return 0, false
		}
		return *i.product.stock, true
	case KindService:
		return 0, false
	default:
		panic(fmt.Sprintf("item: unknown kind %q", i.kind))
	}
}

// Haystack returns name and description joined by a space.
func (i *Item) Haystack() string {
	return i.name + " " + i.description
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
