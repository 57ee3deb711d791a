// Package catalog describes how static catalog collections are addressed and returned.
package catalog

import (
	"fmt"

	"github.com/kailas-cloud/storefront/internal/domain"
	"github.com/kailas-cloud/storefront/internal/domain/item"
	"github.com/kailas-cloud/storefront/internal/domain/lang"
	"github.com/kailas-cloud/storefront/internal/domain/supplier"
)

// Entity is the type of records a collection holds.
type Entity string

// Catalog entities.
const (
	Products  Entity = "products"
	Services  Entity = "services"
	Suppliers Entity = "suppliers"
)

// AllCategory is the category id of the complete collection.
const AllCategory = "all"

// ParseEntity validates an entity name.
func ParseEntity(s string) (Entity, error) {
	switch e := Entity(s); e {
	case Products, Services, Suppliers:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownEntity, s)
	}
}

// ItemKind returns the item kind stored in the entity's files.
// Suppliers are not items.
func (e Entity) ItemKind() (item.Kind, bool) {
	switch e {
	case Products:
		return item.KindProduct, true
	case Services:
		return item.KindService, true
	default:
		return "", false
	}
}

// Key addresses one static file.
type Key struct {
	Entity   Entity
	Category string
	Lang     lang.Lang
}

// Path returns the file path of the key relative to the catalog root.
func (k Key) Path() string {
	return fmt.Sprintf("%s/%s/%s.json", k.Lang, k.Entity, k.Category)
}

// String implements fmt.Stringer.
func (k Key) String() string { return k.Path() }

// Collection is a resolved, read-only snapshot of one entity's records.
type Collection struct {
	entity    Entity
	items     []item.Item
	suppliers []supplier.Supplier
}

// NewItems wraps products or services.
func NewItems(e Entity, items []item.Item) Collection {
	return Collection{entity: e, items: items}
}

// NewSuppliers wraps suppliers.
func NewSuppliers(s []supplier.Supplier) Collection {
	return Collection{entity: Suppliers, suppliers: s}
}

// Empty returns an empty collection for e.
func Empty(e Entity) Collection {
	return Collection{entity: e}
}

// Entity returns the entity of the collection.
func (c Collection) Entity() Entity { return c.entity }

// Items returns the products or services. Nil for suppliers.
func (c Collection) Items() []item.Item { return c.items }

// Suppliers returns the suppliers. Nil for item collections.
func (c Collection) Suppliers() []supplier.Supplier { return c.suppliers }

// Len returns the number of records.
func (c Collection) Len() int {
	if c.entity == Suppliers {
		return len(c.suppliers)
	}
	return len(c.items)
}
