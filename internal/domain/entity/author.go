package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Author represents a writer who contributes articles to magazines.
// The name is fixed at construction; articles are only removed by Article.Detach.
type Author struct {
	id       uuid.UUID
	name     string
	articles []*Article
}

// NewAuthor creates an author with no articles.
func NewAuthor(name string) *Author {
	return &Author{
		id:   uuid.New(),
		name: name,
	}
}

// ID returns the author's identity handle.
func (a *Author) ID() uuid.UUID { return a.id }

// Name returns the author's name.
func (a *Author) Name() string { return a.name }

// SetName always fails: an author's name cannot change after construction.
func (a *Author) SetName(string) error {
	return &ImmutableAttributeError{Entity: "Author", Field: "name"}
}

// Articles returns the author's articles in registration order.
func (a *Author) Articles() []*Article {
	return slices.Clone(a.articles)
}

// Magazines returns the distinct magazines the author has written for,
// in the order they first appear in the author's articles.
func (a *Author) Magazines() []*Magazine {
	seen := make(map[uuid.UUID]struct{}, len(a.articles))
	var out []*Magazine
	for _, art := range a.articles {
		m := art.magazine
		if _, ok := seen[m.id]; ok {
			continue
		}
		seen[m.id] = struct{}{}
		out = append(out, m)
	}
	return out
}

// AddArticle writes a new article for magazine. It is shorthand for
// NewArticle(a, magazine, title).
func (a *Author) AddArticle(magazine *Magazine, title string) (*Article, error) {
	return NewArticle(a, magazine, title)
}

// TopicAreas returns the distinct categories of the magazines the author has
// written for, in first-seen order. It returns nil when the author has no articles.
func (a *Author) TopicAreas() []string {
	if len(a.articles) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, art := range a.articles {
		c := art.magazine.category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func (a *Author) addArticle(art *Article) {
	a.articles = appendArticle(a.articles, art)
}
