package chi

import (
	"time"

	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
	"github.com/kailas-cloud/storefront/internal/domain/item"
	"github.com/kailas-cloud/storefront/internal/domain/search/result"
	"github.com/kailas-cloud/storefront/internal/domain/supplier"
	actionuc "github.com/kailas-cloud/storefront/internal/usecase/action"
)

// ErrorCode is a machine-readable error classification.
type ErrorCode string

// Error codes.
const (
	ErrorCodeInvalidQuery     ErrorCode = "invalid_query"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeItemNotFound     ErrorCode = "item_not_found"
	ErrorCodeSupplierNotFound ErrorCode = "supplier_not_found"
	ErrorCodeUnknownAction    ErrorCode = "unknown_action"
	ErrorCodeStaleRequest     ErrorCode = "stale_request"
	ErrorCodeResolutionFailed ErrorCode = "resolution_failed"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ItemResponse is a product or service.
type ItemResponse struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
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

// SupplierResponse is a supplier profile.
type SupplierResponse struct {
	ID           string  `json:"supplierId"`
	BusinessName string  `json:"businessName"`
	City         string  `json:"city"`
	AvgRating    float64 `json:"avgRating"`
	RatingsCount int     `json:"ratingsCount"`
	StoreBio     string  `json:"storeBio"`
}

// CollectionResponse is a resolved or searched collection.
// Exactly one of Items and Suppliers is set, depending on Entity.
type CollectionResponse struct {
	Entity    string              `json:"entity"`
	Lang      string              `json:"lang"`
	Total     int                 `json:"total"`
	Items     *[]ItemResponse     `json:"items,omitempty"`
	Suppliers *[]SupplierResponse `json:"suppliers,omitempty"`
}

// AlternativeResponse is one ranked alternative.
type AlternativeResponse struct {
	Rank  int          `json:"rank"`
	Score int          `json:"score"`
	Item  ItemResponse `json:"item"`
}

// AlternativesResponse is the ranked answer of a find-alternatives request.
type AlternativesResponse struct {
	Results []AlternativeResponse `json:"results"`
}

// ActionResponse acknowledges a demo action.
type ActionResponse struct {
	Reference  string    `json:"reference"`
	Action     string    `json:"action"`
	Applied    bool      `json:"applied"`
	ReceivedAt time.Time `json:"receivedAt"`
	Message    string    `json:"message"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func itemToDTO(it *item.Item) ItemResponse {
	rec := item.ToRecord(it)
	urls := rec.ImagesFilesURLs
	if urls == nil {
		urls = []string{}
	}
	return ItemResponse{
		ID:              it.ID(),
		Type:            string(it.Kind()),
		Name:            rec.Name,
		Description:     rec.Description,
		Price:           rec.Price,
		Stock:           rec.Stock,
		AvgRating:       rec.AvgRating,
		RatingsCount:    rec.RatingsCount,
		SupplierID:      rec.SupplierID,
		CategoryID:      rec.CategoryID,
		ImagesFilesURLs: urls,
	}
}

func supplierToDTO(s *supplier.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           s.ID(),
		BusinessName: s.BusinessName(),
		City:         s.City(),
		AvgRating:    s.AvgRating(),
		RatingsCount: s.RatingsCount(),
		StoreBio:     s.StoreBio(),
	}
}

func collectionToDTO(c domcat.Collection, lang string) CollectionResponse {
	resp := CollectionResponse{Entity: string(c.Entity()), Lang: lang, Total: c.Len()}
	if c.Entity() == domcat.Suppliers {
		suppliers := make([]SupplierResponse, 0, c.Len())
		for _, s := range c.Suppliers() {
			suppliers = append(suppliers, supplierToDTO(&s))
		}
		resp.Suppliers = &suppliers
		return resp
	}
	items := make([]ItemResponse, 0, c.Len())
	for _, it := range c.Items() {
		items = append(items, itemToDTO(&it))
	}
	resp.Items = &items
	return resp
}

func alternativesToDTO(rs []result.Scored) AlternativesResponse {
	out := make([]AlternativeResponse, 0, len(rs))
	for i := range rs {
		out = append(out, AlternativeResponse{Rank: rs[i].Rank(), Score: rs[i].Score(), Item: itemToDTO(rs[i].Item())})
	}
	return AlternativesResponse{Results: out}
}

func ackToDTO(a actionuc.Ack) ActionResponse {
	return ActionResponse{
		Reference:  a.Reference,
		Action:     string(a.Action),
		Applied:    a.Applied,
		ReceivedAt: a.ReceivedAt,
		Message:    "This is a demo storefront: the action was received but not applied.",
	}
}
