package item

import (
	"encoding/json"
	"fmt"
)

// Record is the static-file JSON shape shared by products and services.
// Exactly one of ProductID and ServiceID is set.
type Record struct {
	ProductID       string   `json:"productId,omitempty"`
	ServiceID       string   `json:"serviceId,omitempty"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Stock           *int     `json:"stock,omitempty"`
	AvgRating       float64  `json:"avgRating"`
	RatingsCount    int      `json:"ratingsCount"`
	SupplierID      string   `json:"supplierId"`
	CategoryID      string   `json:"categoryId,omitempty"`
	ImagesFilesURLs []string `json:"imagesFilesUrls"`
}

// FromRecord converts a record into an Item, deriving the kind from whichever id is set.
func FromRecord(r Record) (Item, error) {
	c := Common{
		Name:         r.Name,
		Description:  r.Description,
		AvgRating:    r.AvgRating,
		RatingsCount: r.RatingsCount,
		SupplierID:   r.SupplierID,
		CategoryID:   r.CategoryID,
		ImageURLs:    r.ImagesFilesURLs,
	}
	switch {
	case r.ProductID != "" && r.ServiceID != "":
		return Item{}, fmt.Errorf("record has both productId %q and serviceId %q", r.ProductID, r.ServiceID)
	case r.ProductID != "":
		c.ID = r.ProductID
		return NewProduct(c, r.Price, r.Stock)
	case r.ServiceID != "":
		c.ID = r.ServiceID
		return NewService(c)
	default:
		return Item{}, fmt.Errorf("record %q has neither productId nor serviceId", r.Name)
	}
}

// ToRecord converts an Item back to its static-file shape.
func ToRecord(i *Item) Record {
	r := Record{
		Name:            i.name,
		Description:     i.description,
		AvgRating:       i.avgRating,
		RatingsCount:    i.ratingsCount,
		SupplierID:      i.supplierID,
		CategoryID:      i.categoryID,
		ImagesFilesURLs: i.imageURLs,
	}
	switch i.kind {
	case KindProduct:
		r.ProductID = i.id
		r.Price = clonePtr(i.product.price)
		r.Stock = clonePtr(i.product.stock)
	case KindService:
		r.ServiceID = i.id
	}
	return r
}

// DecodeList parses a JSON array of records. Every record must be of the wanted kind.
func DecodeList(data []byte, want Kind) ([]Item, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	items := make([]Item, 0, len(records))
	for idx, r := range records {
		it, err := FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx, err)
		}
		if it.Kind() != want {
			return nil, fmt.Errorf("record %d: got %s %q in %s list", idx, it.Kind(), it.ID(), want)
		}
		items = append(items, it)
	}
	return items, nil
}
