package article

import (
	"net/http"

	"magazine-catalog/internal/handler/http/dto"
	"magazine-catalog/internal/handler/http/pathutil"
	"magazine-catalog/internal/handler/http/respond"
	"magazine-catalog/internal/usecase/catalog"
)

type GetHandler struct{ Svc *catalog.Service }

// ServeHTTP 記事詳細取得
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	article, err := h.Svc.GetArticle(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, catalog.ErrArticleNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromArticle(article))
}
