// Package article provides HTTP handlers for article endpoints.
// Articles can also be published through POST /authors/{id}/articles.
package article

import (
	"net/http"

	"magazine-catalog/internal/common/pagination"
	"magazine-catalog/internal/usecase/catalog"
)

// Register registers all article-related HTTP handlers with the given mux.
// guard wraps mutating routes; nil means no guard.
func Register(mux *http.ServeMux, svc *catalog.Service, guard func(http.Handler) http.Handler) {
	if guard == nil {
		guard = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("GET    /articles", ListHandler{Svc: svc, Paging: pagination.LoadFromEnv()})
	mux.Handle("GET    /articles/{id}", GetHandler{svc})
	mux.Handle("POST   /articles", guard(CreateHandler{svc}))
}
