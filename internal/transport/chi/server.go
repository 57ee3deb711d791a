package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/domain"
	domcat "github.com/kailas-cloud/storefront/internal/domain/catalog"
	"github.com/kailas-cloud/storefront/internal/domain/item"
	"github.com/kailas-cloud/storefront/internal/domain/lang"
	"github.com/kailas-cloud/storefront/internal/domain/search/filter"
	"github.com/kailas-cloud/storefront/internal/domain/search/result"
	"github.com/kailas-cloud/storefront/internal/domain/supplier"
	"github.com/kailas-cloud/storefront/internal/generation"
	logpkg "github.com/kailas-cloud/storefront/internal/logger"
	actionuc "github.com/kailas-cloud/storefront/internal/usecase/action"
	cataloguc "github.com/kailas-cloud/storefront/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/storefront/internal/usecase/health"
)

// CatalogService resolves collections and single records.
type CatalogService interface {
	Resolve(ctx context.Context, entity domcat.Entity, opts cataloguc.Options) (domcat.Collection, error)
	Item(ctx context.Context, id string) (item.Item, error)
	Supplier(ctx context.Context, id string) (supplier.Supplier, error)
}

// SearchService answers searches and find-alternatives requests.
type SearchService interface {
	Search(ctx context.Context, text string, entity domcat.Entity, f filter.Filter) (domcat.Collection, error)
	FindAlternatives(ctx context.Context, text, itemID string, l lang.Lang) ([]result.Scored, error)
}

// ActionService acknowledges demo actions.
type ActionService interface {
	Perform(ctx context.Context, name string) (actionuc.Ack, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the storefront HTTP API.
type Server struct {
	catalog       CatalogService
	search        SearchService
	actions       ActionService
	health        HealthService
	generations   *generation.Tracker
	defaultLang   lang.Lang
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. generations may be nil to disable stale-request detection.
func NewServer(
	catalog CatalogService,
	search SearchService,
	actions ActionService,
	health HealthService,
	generations *generation.Tracker,
	defaultLang lang.Lang,
	logger *zap.Logger,
) *Server {
	if !defaultLang.IsValid() {
		defaultLang = lang.Default()
	}
	s := &Server{
		catalog:     catalog,
		search:      search,
		actions:     actions,
		health:      health,
		generations: generations,
		defaultLang: defaultLang,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		paramErrorHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeInvalidQuery),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrUnknownEntity, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, ErrorCodeItemNotFound),
		sentinelHandler(domain.ErrSupplierNotFound, http.StatusNotFound, ErrorCodeSupplierNotFound),
		sentinelHandler(domain.ErrUnknownAction, http.StatusNotFound, ErrorCodeUnknownAction),
		sentinelHandler(domain.ErrStaleRequest, http.StatusConflict, ErrorCodeStaleRequest),
		sentinelHandler(domain.ErrResolutionFailed, http.StatusBadGateway, ErrorCodeResolutionFailed),
	}
	return s
}

// Register mounts the API routes on r: /health and /metrics at the root,
// everything else under /api/v1.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/{entity}", s.GetCatalog)
		r.Get("/search", s.SearchCatalog)
		r.Get("/alternatives", s.FindAlternatives)
		r.Get("/items/{id}", s.GetItem)
		r.Get("/suppliers/{id}", s.GetSupplier)
		r.Post("/actions/{action}", s.PerformAction)
	})
}

// GetCatalog handles GET /api/v1/catalog/{entity}.
// Without a category the complete collection is returned.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	var entityName string
	if err := bindPath(r, "entity", &entityName); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	params, err := bindCatalogParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	entity, err := domcat.ParseEntity(entityName)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	tk, err := s.begin(w, r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	opts := catalogOptions(params, requestLang(r, params.Lang, s.defaultLang))
	col, err := s.catalog.Resolve(r.Context(), entity, opts)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.handleDomainError(w, r, err)
		return
	}
	s.deliver(w, r, tk, http.StatusOK, collectionToDTO(col, string(opts.Lang)))
}

func catalogOptions(p CatalogParams, l lang.Lang) cataloguc.Options {
	all := deref(p.Category) == ""
	if p.All != nil {
		all = *p.All
	}
	return cataloguc.Options{CategoryID: deref(p.Category), Lang: l, All: all}
}

// SearchCatalog handles GET /api/v1/search.
func (s *Server) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	entity := domcat.Products
	if params.Type != nil && *params.Type != "" {
		if entity, err = domcat.ParseEntity(*params.Type); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
	}

	l := requestLang(r, params.Lang, s.defaultLang)
	f, err := filter.New(deref(params.Category), l, params.MinPrice, params.MaxPrice)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	tk, err := s.begin(w, r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	col, err := s.search.Search(r.Context(), deref(params.Q), entity, f)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.deliver(w, r, tk, http.StatusOK, collectionToDTO(col, string(l)))
}

// FindAlternatives handles GET /api/v1/alternatives.
func (s *Server) FindAlternatives(w http.ResponseWriter, r *http.Request) {
	params, err := bindAlternativesParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	tk, err := s.begin(w, r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	l := requestLang(r, params.Lang, s.defaultLang)
	results, err := s.search.FindAlternatives(r.Context(), deref(params.Text), deref(params.ItemID), l)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.deliver(w, r, tk, http.StatusOK, alternativesToDTO(results))
}

// GetItem handles GET /api/v1/items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	it, err := s.catalog.Item(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToDTO(&it))
}

// GetSupplier handles GET /api/v1/suppliers/{id}.
func (s *Server) GetSupplier(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	sp, err := s.catalog.Supplier(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, supplierToDTO(&sp))
}

// PerformAction handles POST /api/v1/actions/{action}.
func (s *Server) PerformAction(w http.ResponseWriter, r *http.Request) {
	var name string
	if err := bindPath(r, "action", &name); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	ack, err := s.actions.Perform(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackToDTO(ack))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// begin takes a generation ticket for requests that carry a client id.
func (s *Server) begin(w http.ResponseWriter, r *http.Request) (generation.Ticket, error) {
	if s.generations == nil {
		return generation.Ticket{}, nil
	}
	client, gen, ok, err := requestGeneration(r)
	if err != nil || !ok {
		return generation.Ticket{}, err
	}

	var tk generation.Ticket
	if gen == 0 {
		tk = s.generations.Next(client)
	} else {
		tk = s.generations.Begin(client, gen)
	}
	w.Header().Set(HeaderGeneration, strconv.FormatUint(tk.Generation(), 10))
	return tk, nil
}

// deliver writes v unless a newer request of the same client has begun meanwhile.
func (s *Server) deliver(w http.ResponseWriter, r *http.Request, tk generation.Ticket, status int, v any) {
	if !tk.Current() {
		s.handleDomainError(w, r, domain.ErrStaleRequest)
		return
	}
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidFilter,
		domain.ErrUnknownEntity,
		domain.ErrItemNotFound,
		domain.ErrSupplierNotFound,
		domain.ErrUnknownAction,
		domain.ErrStaleRequest,
		domain.ErrResolutionFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// paramErrorHandler answers malformed parameters with the binder's message.
func paramErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var pe *invalidParamError
	if !errors.As(err, &pe) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, pe.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

// requestLogger prefers the per-request logger placed by the wide-event middleware.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}
