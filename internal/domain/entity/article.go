// Package entity defines the core domain entities and validation logic for the application.
// It contains the Author, Magazine and Article types, the many-to-many relation
// between authors and magazines that articles form, and the domain-specific errors.
//
// The entity graph is not safe for concurrent use. Callers that share it between
// goroutines must serialize access themselves.
package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Article represents a piece written by one Author for one Magazine.
// It is the join record of the author/magazine relation and is immutable once created.
type Article struct {
	id       uuid.UUID
	author   *Author
	magazine *Magazine
	title    string
}

// NewArticle creates an article and registers it with both its author and its magazine.
// A nil author or magazine is reported as a TypeKind ValidationError and nothing is registered.
func NewArticle(author *Author, magazine *Magazine, title string) (*Article, error) {
	if author == nil {
		return nil, &ValidationError{Kind: TypeKind, Field: "author", Message: "must be an Author"}
	}
	if magazine == nil {
		return nil, &ValidationError{Kind: TypeKind, Field: "magazine", Message: "must be a Magazine"}
	}

	a := &Article{
		id:       uuid.New(),
		author:   author,
		magazine: magazine,
		title:    title,
	}

	author.addArticle(a)
	magazine.addArticle(a)
	return a, nil
}

// ID returns the article's identity handle.
func (a *Article) ID() uuid.UUID { return a.id }

// Author returns the author who wrote the article.
func (a *Article) Author() *Author { return a.author }

// Magazine returns the magazine the article was published in.
func (a *Article) Magazine() *Magazine { return a.magazine }

// Title returns the article title.
func (a *Article) Title() string { return a.title }

// Detach removes the article from its author's and magazine's lists, undoing
// the registration done by NewArticle. Detaching twice is a no-op.
func (a *Article) Detach() {
	a.author.articles = removeArticle(a.author.articles, a.id)
	a.magazine.articles = removeArticle(a.magazine.articles, a.id)
}

// appendArticle appends a to list unless an article with the same ID is already present.
func appendArticle(list []*Article, a *Article) []*Article {
	for _, existing := range list {
		if existing.id == a.id {
			return list
		}
	}
	return append(list, a)
}

func removeArticle(list []*Article, id uuid.UUID) []*Article {
	return slices.DeleteFunc(list, func(existing *Article) bool { return existing.id == id })
}
