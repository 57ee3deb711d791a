package chi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/storefront/internal/domain/lang"
)

// Request headers of the generation protocol.
const (
	HeaderClientID   = "X-Client-ID"
	HeaderGeneration = "X-Request-Generation"
)

// CatalogParams are the query parameters of GET /catalog/{entity}.
type CatalogParams struct {
	Category *string
	Lang     *string
	All      *bool
}

// SearchParams are the query parameters of GET /search.
type SearchParams struct {
	Q        *string
	Type     *string
	Category *string
	Lang     *string
	MinPrice *float64
	MaxPrice *float64
}

// AlternativesParams are the query parameters of GET /alternatives.
type AlternativesParams struct {
	Text   *string
	ItemID *string
	Lang   *string
}

// invalidParamError is a malformed request parameter.
type invalidParamError struct {
	name string
	err  error
}

func (e *invalidParamError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %v", e.name, e.err)
}

func (e *invalidParamError) Unwrap() error { return e.err }

func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &invalidParamError{name: name, err: err}
	}
	return nil
}

func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return &invalidParamError{name: name, err: err}
	}
	return nil
}

func bindCatalogParams(r *http.Request) (CatalogParams, error) {
	var p CatalogParams
	for name, dest := range map[string]any{"category": &p.Category, "lang": &p.Lang, "all": &p.All} {
		if err := bindQuery(r, name, dest); err != nil {
			return CatalogParams{}, err
		}
	}
	return p, nil
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var p SearchParams
	binds := []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"type", &p.Type},
		{"category", &p.Category},
		{"lang", &p.Lang},
		{"min_price", &p.MinPrice},
		{"max_price", &p.MaxPrice},
	}
	for _, b := range binds {
		if err := bindQuery(r, b.name, b.dest); err != nil {
			return SearchParams{}, err
		}
	}
	return p, nil
}

func bindAlternativesParams(r *http.Request) (AlternativesParams, error) {
	var p AlternativesParams
	for name, dest := range map[string]any{"text": &p.Text, "item_id": &p.ItemID, "lang": &p.Lang} {
		if err := bindQuery(r, name, dest); err != nil {
			return AlternativesParams{}, err
		}
	}
	return p, nil
}

// requestLang picks the language from the lang parameter, then Accept-Language,
// then the configured default.
func requestLang(r *http.Request, param *string, def lang.Lang) lang.Lang {
	if param != nil && *param != "" {
		return lang.Match(*param)
	}
	if h := r.Header.Get("Accept-Language"); h != "" {
		return lang.Match(h)
	}
	return def
}

// requestGeneration reads the generation headers. ok is false when the client did
// not opt in by sending a client id.
func requestGeneration(r *http.Request) (client string, gen uint64, ok bool, err error) {
	client = r.Header.Get(HeaderClientID)
	if client == "" {
		return "", 0, false, nil
	}
	raw := r.Header.Get(HeaderGeneration)
	if raw == "" {
		return client, 0, true, nil
	}
	gen, err = strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return "", 0, false, &invalidParamError{name: HeaderGeneration, err: err}
	}
	return client, gen, true, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
