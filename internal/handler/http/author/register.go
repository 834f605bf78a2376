// Package author provides HTTP handlers for author endpoints: listing and
// creating authors, and the author-side relationship queries.
package author

import (
	"net/http"

	"magazine-catalog/internal/common/pagination"
	"magazine-catalog/internal/usecase/catalog"
)

// Register registers all author-related HTTP handlers with the given mux.
// guard wraps mutating routes (typically auth plus write rate limiting); nil means no guard.
func Register(mux *http.ServeMux, svc *catalog.Service, guard func(http.Handler) http.Handler) {
	if guard == nil {
		guard = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("GET    /authors", ListHandler{Svc: svc, Paging: pagination.LoadFromEnv()})
	mux.Handle("GET    /authors/{id}", GetHandler{svc})
	mux.Handle("GET    /authors/{id}/articles", ArticlesHandler{svc})
	mux.Handle("GET    /authors/{id}/magazines", MagazinesHandler{svc})
	mux.Handle("GET    /authors/{id}/topic-areas", TopicAreasHandler{svc})

	mux.Handle("POST   /authors", guard(CreateHandler{svc}))
	mux.Handle("POST   /authors/{id}/articles", guard(AddArticleHandler{svc}))
	mux.Handle("PATCH  /authors/{id}", guard(UpdateHandler{svc}))
}
