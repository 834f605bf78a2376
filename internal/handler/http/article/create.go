package article

import (
	"fmt"
	"net/http"

	"magazine-catalog/internal/handler/http/dto"
	"magazine-catalog/internal/handler/http/pathutil"
	"magazine-catalog/internal/handler/http/respond"
	"magazine-catalog/internal/usecase/catalog"
)

type CreateHandler struct{ Svc *catalog.Service }

// ServeHTTP publishes an article from {"author_id", "magazine_id", "title"}.
// Unknown authors or magazines yield 404; malformed input yields 400.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := respond.DecodeStrings(r, "author_id", "magazine_id", "title")
	if err != nil {
		respond.FromError(w, err)
		return
	}
	authorID, err := pathutil.ParseID(req["author_id"])
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("author_id: %w", err))
		return
	}
	magazineID, err := pathutil.ParseID(req["magazine_id"])
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("magazine_id: %w", err))
		return
	}

	article, err := h.Svc.Publish(r.Context(), catalog.PublishInput{
		AuthorID:   authorID,
		MagazineID: magazineID,
		Title:      req["title"],
	})
	if err != nil {
		respond.FromError(w, err, catalog.ErrAuthorNotFound, catalog.ErrMagazineNotFound)
		return
	}
	w.Header().Set("Location", "/articles/"+article.ID().String())
	respond.JSON(w, http.StatusCreated, dto.FromArticle(article))
}
