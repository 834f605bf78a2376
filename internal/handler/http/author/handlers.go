package author

import (
	"fmt"
	"net/http"

	"magazine-catalog/internal/common/pagination"
	"magazine-catalog/internal/handler/http/dto"
	"magazine-catalog/internal/handler/http/pathutil"
	"magazine-catalog/internal/handler/http/respond"
	"magazine-catalog/internal/usecase/catalog"

	"github.com/google/uuid"
)

var notFound = []error{catalog.ErrAuthorNotFound, catalog.ErrMagazineNotFound}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

type ListHandler struct {
	Svc    *catalog.Service
	Paging pagination.Config
}

// ServeHTTP 著者一覧
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.Paging)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	authors, err := h.Svc.ListAuthors(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Page(dto.Authors(authors), params))
}

type GetHandler struct{ Svc *catalog.Service }

// ServeHTTP 著者詳細
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	author, err := h.Svc.GetAuthor(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, notFound...)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromAuthor(author))
}

type CreateHandler struct{ Svc *catalog.Service }

// ServeHTTP creates an author from {"name": "..."} and returns 201 with the new author.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := respond.DecodeStrings(r, "name")
	if err != nil {
		respond.FromError(w, err)
		return
	}

	author, err := h.Svc.CreateAuthor(r.Context(), catalog.CreateAuthorInput{Name: req["name"]})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	w.Header().Set("Location", "/authors/"+author.ID().String())
	respond.JSON(w, http.StatusCreated, dto.FromAuthor(author))
}

type UpdateHandler struct{ Svc *catalog.Service }

// ServeHTTP rejects renames with 409 Conflict: author names are immutable.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.Svc.RenameAuthor(r.Context(), id, req.Name); err != nil {
		respond.FromError(w, err, notFound...)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type AddArticleHandler struct{ Svc *catalog.Service }

// ServeHTTP publishes an article by the author in the path:
// {"magazine_id": "...", "title": "..."}.
func (h AddArticleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, err := respond.DecodeStrings(r, "magazine_id", "title")
	if err != nil {
		respond.FromError(w, err)
		return
	}
	magazineID, err := pathutil.ParseID(req["magazine_id"])
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("magazine_id: %w", err))
		return
	}

	article, err := h.Svc.Publish(r.Context(), catalog.PublishInput{
		AuthorID:   id,
		MagazineID: magazineID,
		Title:      req["title"],
	})
	if err != nil {
		respond.FromError(w, err, notFound...)
		return
	}
	w.Header().Set("Location", "/articles/"+article.ID().String())
	respond.JSON(w, http.StatusCreated, dto.FromArticle(article))
}

type ArticlesHandler struct{ Svc *catalog.Service }

func (h ArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	articles, err := h.Svc.AuthorArticles(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, notFound...)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Articles(articles))
}

type MagazinesHandler struct{ Svc *catalog.Service }

func (h MagazinesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	magazines, err := h.Svc.AuthorMagazines(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, notFound...)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Magazines(magazines))
}

type TopicAreasHandler struct{ Svc *catalog.Service }

// ServeHTTP returns {"items": null} when the author has no articles.
func (h TopicAreasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	areas, err := h.Svc.AuthorTopicAreas(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, notFound...)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Strings{Items: areas})
}
