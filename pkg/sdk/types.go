package storefront

import (
	"time"

	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
	"github.com/kailas-cloud/storefront/internal/domain/item"
	"github.com/kailas-cloud/storefront/internal/domain/search/result"
	"github.com/kailas-cloud/storefront/internal/domain/supplier"
	actionuc "github.com/kailas-cloud/storefront/internal/usecase/action"
)

// Entity selects a catalog collection family.
type Entity string

// Entity constants.
const (
	Products  Entity = "products"
	Services  Entity = "services"
	Suppliers Entity = "suppliers"
)

// ItemType distinguishes products from services.
type ItemType string

// Item type constants.
const (
	ItemProduct ItemType = "product"
	ItemService ItemType = "service"
)

// Item is a product or a service. Price and Stock are nil for services and for
// products that carry none.
type Item struct {
	ID           string   `json:"id"`
	Type         ItemType `json:"type"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Stock        *int     `json:"stock,omitempty"`
	AvgRating    float64  `json:"avgRating"`
	RatingsCount int      `json:"ratingsCount"`
	SupplierID   string   `json:"supplierId"`
	CategoryID   string   `json:"categoryId,omitempty"`
	ImageURLs    []string `json:"imagesFilesUrls"`
}

// Supplier is a supplier profile.
type Supplier struct {
	ID           string  `json:"supplierId"`
	BusinessName string  `json:"businessName"`
	City         string  `json:"city"`
	AvgRating    float64 `json:"avgRating"`
	RatingsCount int     `json:"ratingsCount"`
	StoreBio     string  `json:"storeBio"`
}

// Collection is a resolved or searched catalog collection.
// Items is set for products and services, Suppliers for suppliers.
type Collection struct {
	Entity    Entity     `json:"entity"`
	Items     []Item     `json:"items,omitempty"`
	Suppliers []Supplier `json:"suppliers,omitempty"`
}

// Len returns the number of entries.
func (c Collection) Len() int { return len(c.Items) + len(c.Suppliers) }

// CatalogOptions select a collection. With no Category the complete collection
// is returned. Lang defaults to the client language.
type CatalogOptions struct {
	Category string
	Lang     string
}

// SearchOptions narrow a search. Price bounds apply to products only.
type SearchOptions struct {
	Category string
	Lang     string
	MinPrice *float64
	MaxPrice *float64
}

// AlternativesQuery names the reference to rank against.
// Exactly one of Text and ItemID must be set.
type AlternativesQuery struct {
	Text   string
	ItemID string
	Lang   string
}

// Alternative is one ranked alternative. Rank starts at 1.
type Alternative struct {
	Item  Item `json:"item"`
	Rank  int  `json:"rank"`
	Score int  `json:"score"`
}

// Ack acknowledges a demo action. Applied is always false.
type Ack struct {
	Reference  string    `json:"reference"`
	Action     string    `json:"action"`
	Applied    bool      `json:"applied"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component → "ok"/"error"
}

func itemFromDomain(it *item.Item) Item {
	out := Item{
		ID:           it.ID(),
		Type:         ItemType(it.Kind()),
		Name:         it.Name(),
		Description:  it.Description(),
		AvgRating:    it.AvgRating(),
		RatingsCount: it.RatingsCount(),
		SupplierID:   it.SupplierID(),
		CategoryID:   it.CategoryID(),
		ImageURLs:    append([]string(nil), it.ImageURLs()...),
	}
	if p, ok := it.Price(); ok {
		out.Price = &p
	}
	if s, ok := it.Stock(); ok {
		out.Stock = &s
	}
	return out
}

func supplierFromDomain(s *supplier.Supplier) Supplier {
	return Supplier{
		ID:           s.ID(),
		BusinessName: s.BusinessName(),
		City:         s.City(),
		AvgRating:    s.AvgRating(),
		RatingsCount: s.RatingsCount(),
		StoreBio:     s.StoreBio(),
	}
}

func collectionFromDomain(c domcat.Collection) Collection {
	out := Collection{Entity: Entity(c.Entity())}
	if c.Entity() == domcat.Suppliers {
		out.Suppliers = make([]Supplier, 0, len(c.Suppliers()))
		for i := range c.Suppliers() {
			out.Suppliers = append(out.Suppliers, supplierFromDomain(&c.Suppliers()[i]))
		}
		return out
	}
	out.Items = make([]Item, 0, len(c.Items()))
	for i := range c.Items() {
		out.Items = append(out.Items, itemFromDomain(&c.Items()[i]))
	}
	return out
}

func alternativesFromDomain(rs []result.Scored) []Alternative {
	out := make([]Alternative, 0, len(rs))
	for i := range rs {
		out = append(out, Alternative{
			Item:  itemFromDomain(rs[i].Item()),
			Rank:  rs[i].Rank(),
			Score: rs[i].Score(),
		})
	}
	return out
}

func ackFromDomain(a actionuc.Ack) Ack {
	return Ack{
		Reference:  a.Reference,
		Action:     string(a.Action),
		Applied:    a.Applied,
		ReceivedAt: a.ReceivedAt,
	}
}
