// Package dto defines the JSON shapes returned by the catalog HTTP API.
package dto

import (
	"magazine-catalog/internal/common/pagination"
	"magazine-catalog/internal/domain/entity"

	"github.com/google/uuid"
)

// Author represents the JSON structure for author data transfer.
type Author struct {
	ID   uuid.UUID `json:"id" example:"3f1c2a9e-8b7d-4c6e-9a1b-2d3e4f5a6b7c"`
	Name string    `json:"name" example:"Carry Bradshaw"`
}

// Magazine represents the JSON structure for magazine data transfer.
type Magazine struct {
	ID       uuid.UUID `json:"id" example:"7d2e1f0a-1b2c-4d3e-8f9a-0b1c2d3e4f5a"`
	Name     string    `json:"name" example:"Vogue"`
	Category string    `json:"category" example:"Fashion"`
}

// Article represents the JSON structure for article data transfer.
// Author and magazine names are denormalized for convenience.
type Article struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title" example:"How to wear a tutu with style"`
	AuthorID     uuid.UUID `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	MagazineID   uuid.UUID `json:"magazine_id"`
	MagazineName string    `json:"magazine_name"`
	Category     string    `json:"category"`
}

// Items wraps a collection response. Pagination is set on the top-level
// list endpoints only.
type Items[T any] struct {
	Items      []T                  `json:"items"`
	Pagination *pagination.Metadata `json:"pagination,omitempty"`
}

// Page cuts a list response down to the requested page.
func Page[T any](in Items[T], params pagination.Params) Items[T] {
	items, meta := pagination.Window(in.Items, params)
	return Items[T]{Items: items, Pagination: &meta}
}

// Strings wraps a string-valued query result. Items is null when the
// underlying query has no data.
type Strings struct {
	Items []string `json:"items"`
}

func FromAuthor(a *entity.Author) Author {
	return Author{ID: a.ID(), Name: a.Name()}
}

func FromMagazine(m *entity.Magazine) Magazine {
	return Magazine{ID: m.ID(), Name: m.Name(), Category: m.Category()}
}

func FromArticle(a *entity.Article) Article {
	return Article{
		ID:           a.ID(),
		Title:        a.Title(),
		AuthorID:     a.Author().ID(),
		AuthorName:   a.Author().Name(),
		MagazineID:   a.Magazine().ID(),
		MagazineName: a.Magazine().Name(),
		Category:     a.Magazine().Category(),
	}
}

// Authors converts a slice, always returning a non-nil result.
func Authors(in []*entity.Author) Items[Author] {
	out := make([]Author, 0, len(in))
	for _, a := range in {
		out = append(out, FromAuthor(a))
	}
	return Items[Author]{Items: out}
}

// Magazines converts a slice, always returning a non-nil result.
func Magazines(in []*entity.Magazine) Items[Magazine] {
	out := make([]Magazine, 0, len(in))
	for _, m := range in {
		out = append(out, FromMagazine(m))
	}
	return Items[Magazine]{Items: out}
}

// Articles converts a slice, always returning a non-nil result.
func Articles(in []*entity.Article) Items[Article] {
	out := make([]Article, 0, len(in))
	for _, a := range in {
		out = append(out, FromArticle(a))
	}
	return Items[Article]{Items: out}
}
