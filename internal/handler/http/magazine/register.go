// Package magazine provides HTTP handlers for magazine endpoints: listing and
// creating magazines, and the magazine-side relationship queries.
package magazine

import (
	"net/http"

	"magazine-catalog/internal/common/pagination"
	"magazine-catalog/internal/usecase/catalog"
)

// Register registers all magazine-related HTTP handlers with the given mux.
// guard wraps mutating routes; nil means no guard.
func Register(mux *http.ServeMux, svc *catalog.Service, guard func(http.Handler) http.Handler) {
	if guard == nil {
		guard = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("GET    /magazines", ListHandler{Svc: svc, Paging: pagination.LoadFromEnv()})
	mux.Handle("GET    /magazines/{id}", GetHandler{svc})
	mux.Handle("GET    /magazines/{id}/articles", ArticlesHandler{svc})
	mux.Handle("GET    /magazines/{id}/contributors", ContributorsHandler{svc})
	mux.Handle("GET    /magazines/{id}/article-titles", ArticleTitlesHandler{svc})
	mux.Handle("GET    /magazines/{id}/contributing-authors", ContributingAuthorsHandler{svc})

	mux.Handle("POST   /magazines", guard(CreateHandler{svc}))
	mux.Handle("PATCH  /magazines/{id}", guard(UpdateHandler{svc}))
}
