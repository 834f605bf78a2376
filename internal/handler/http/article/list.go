package article

import (
	"net/http"

	"magazine-catalog/internal/common/pagination"
	"magazine-catalog/internal/handler/http/dto"
	"magazine-catalog/internal/handler/http/respond"
	"magazine-catalog/internal/usecase/catalog"
)

type ListHandler struct {
	Svc    *catalog.Service
	Paging pagination.Config
}

// ServeHTTP 記事一覧（公開順）
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.Paging)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	articles, err := h.Svc.ListArticles(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Page(dto.Articles(articles), params))
}
