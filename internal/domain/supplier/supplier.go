// Package supplier holds the storefront supplier value object.
package supplier

import (
	"encoding/json"
	"fmt"
)

// Supplier is a read-only supplier profile.
type Supplier struct {
	id           string
	businessName string
	city         string
	avgRating    float64
	ratingsCount int
	storeBio     string
}

// Record is the static-file JSON shape of a supplier.
type Record struct {
	SupplierID   string  `json:"supplierId"`
	BusinessName string  `json:"businessName"`
	City         string  `json:"city"`
	AvgRating    float64 `json:"avgRating"`
	RatingsCount int     `json:"ratingsCount"`
	StoreBio     string  `json:"storeBio"`
}

// FromRecord validates and converts a record.
func FromRecord(r Record) (Supplier, error) {
	if r.SupplierID == "" {
		return Supplier{}, fmt.Errorf("supplierId is required")
	}
	return Supplier{
		id:           r.SupplierID,
		businessName: r.BusinessName,
		city:         r.City,
		avgRating:    r.AvgRating,
		ratingsCount: r.RatingsCount,
		storeBio:     r.StoreBio,
	}, nil
}

// DecodeList parses a JSON array of supplier records.
func DecodeList(data []byte) ([]Supplier, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode suppliers: %w", err)
	}
	out := make([]Supplier, 0, len(records))
	for idx, r := range records {
		s, err := FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("supplier %d: %w", idx, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ID returns the supplier id.
func (s *Supplier) ID() string { return s.id }

// BusinessName returns the store name.
func (s *Supplier) BusinessName() string { return s.businessName }

// City returns the supplier city.
func (s *Supplier) City() string { return s.city }

// AvgRating returns the average rating.
func (s *Supplier) AvgRating() float64 { return s.avgRating }

// RatingsCount returns the number of ratings.
func (s *Supplier) RatingsCount() int { return s.ratingsCount }

// StoreBio returns the store description.
func (s *Supplier) StoreBio() string { return s.storeBio }
