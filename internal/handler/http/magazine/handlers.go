package magazine

import (
	"net/http"

	"magazine-catalog/internal/common/pagination"
	"magazine-catalog/internal/handler/http/dto"
	"magazine-catalog/internal/handler/http/pathutil"
	"magazine-catalog/internal/handler/http/respond"
	"magazine-catalog/internal/usecase/catalog"

	"github.com/google/uuid"
)

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

// ServeHTTP 雑誌一覧。?category= で絞り込み
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.Paging)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	magazines, err := h.Svc.ListMagazines(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Page(dto.Magazines(magazines), params))
}

type GetHandler struct{ Svc *catalog.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	magazine, err := h.Svc.GetMagazine(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, catalog.ErrMagazineNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromMagazine(magazine))
}

type CreateHandler struct{ Svc *catalog.Service }

// ServeHTTP creates a magazine from {"name": "...", "category": "..."}.
// Names must be 2 to 16 characters and the category non-empty, else 400.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := respond.DecodeStrings(r, "name", "category")
	if err != nil {
		respond.FromError(w, err)
		return
	}

	magazine, err := h.Svc.CreateMagazine(r.Context(), catalog.CreateMagazineInput{
		Name:     req["name"],
		Category: req["category"],
	})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	w.Header().Set("Location", "/magazines/"+magazine.ID().String())
	respond.JSON(w, http.StatusCreated, dto.FromMagazine(magazine))
}

type UpdateHandler struct{ Svc *catalog.Service }

// ServeHTTP rejects name or category changes with 409 Conflict.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.Svc.UpdateMagazine(r.Context(), id, req.Name, req.Category); err != nil {
		respond.FromError(w, err, catalog.ErrMagazineNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ArticlesHandler struct{ Svc *catalog.Service }

func (h ArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	articles, err := h.Svc.MagazineArticles(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, catalog.ErrMagazineNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Articles(articles))
}

type ContributorsHandler struct{ Svc *catalog.Service }

func (h ContributorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	authors, err := h.Svc.MagazineContributors(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, catalog.ErrMagazineNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Authors(authors))
}

type ArticleTitlesHandler struct{ Svc *catalog.Service }

// ServeHTTP returns {"items": null} when the magazine has no articles.
func (h ArticleTitlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	titles, err := h.Svc.MagazineArticleTitles(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, catalog.ErrMagazineNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Strings{Items: titles})
}

type ContributingAuthorsHandler struct{ Svc *catalog.Service }

// ServeHTTP lists authors with more than two articles in the magazine.
func (h ContributingAuthorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	authors, err := h.Svc.MagazineContributingAuthors(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, catalog.ErrMagazineNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.Authors(authors))
}
