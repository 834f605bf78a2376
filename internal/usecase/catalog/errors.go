// Package catalog provides use cases for the author/magazine/article catalog.
// It creates entities, links authors to magazines through articles, and answers
// relationship queries, serializing access to the shared entity graph.
package catalog

import (
	"errors"

	"magazine-catalog/internal/domain/entity"
)

// Sentinel errors for catalog use case operations.
var (
	// ErrAuthorNotFound indicates that the requested author was not found.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrMagazineNotFound indicates that the requested magazine was not found.
	ErrMagazineNotFound = errors.New("magazine not found")

	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidID indicates that the nil UUID was passed as an entity ID.
	// It is a ValueKind validation error, so errors.Is(err, entity.ErrValue) holds.
	ErrInvalidID error = &entity.ValidationError{
		Kind:    entity.ValueKind,
		Field:   "id",
		Message: "must not be the nil UUID",
	}
)
