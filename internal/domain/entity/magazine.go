package entity

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// contributingThreshold is the number of articles an author must exceed
// to count as a contributing author of a magazine.
const contributingThreshold = 2

// Magazine represents a publication in a single category.
// Name and category are fixed at construction; articles are only removed by Article.Detach.
type Magazine struct {
	id       uuid.UUID
	name     string
	category string
	articles []*Article
}

// NewMagazine creates a magazine after validating its name and category.
// Returns a ValueKind ValidationError when either rule is violated.
func NewMagazine(name, category string) (*Magazine, error) {
	if err := ValidateMagazineName(name); err != nil {
		return nil, fmt.Errorf("new magazine: %w", err)
	}
	if err := ValidateCategory(category); err != nil {
		return nil, fmt.Errorf("new magazine: %w", err)
	}
	return &Magazine{
		id:       uuid.New(),
		name:     name,
		category: category,
	}, nil
}

// ID returns the magazine's identity handle.
func (m *Magazine) ID() uuid.UUID { return m.id }

// Name returns the magazine name.
func (m *Magazine) Name() string { return m.name }

// Category returns the magazine category.
func (m *Magazine) Category() string { return m.category }

// SetName always fails: a magazine's name cannot change after construction.
func (m *Magazine) SetName(string) error {
	return &ImmutableAttributeError{Entity: "Magazine", Field: "name"}
}

// SetCategory always fails: a magazine's category cannot change after construction.
func (m *Magazine) SetCategory(string) error {
	return &ImmutableAttributeError{Entity: "Magazine", Field: "category"}
}

// Articles returns the magazine's articles in registration order.
func (m *Magazine) Articles() []*Article {
	return slices.Clone(m.articles)
}

// Contributors returns the distinct authors who have written for the magazine,
// in the order they first appear.
func (m *Magazine) Contributors() []*Author {
	seen := make(map[uuid.UUID]struct{}, len(m.articles))
	var out []*Author
	for _, art := range m.articles {
		a := art.author
		if _, ok := seen[a.id]; ok {
			continue
		}
		seen[a.id] = struct{}{}
		out = append(out, a)
	}
	return out
}

// ArticleTitles returns the titles of the magazine's articles in registration order,
// or nil when the magazine has no articles.
func (m *Magazine) ArticleTitles() []string {
	if len(m.articles) == 0 {
		return nil
	}
	titles := make([]string, 0, len(m.articles))
	for _, art := range m.articles {
		titles = append(titles, art.title)
	}
	return titles
}

// ContributingAuthors returns the authors with more than two articles in the magazine,
// in the order they first appear.
func (m *Magazine) ContributingAuthors() []*Author {
	counts := make(map[uuid.UUID]int)
	var order []*Author
	for _, art := range m.articles {
		a := art.author
		if counts[a.id] == 0 {
			order = append(order, a)
		}
		counts[a.id]++
	}

	var out []*Author
	for _, a := range order {
		if counts[a.id] > contributingThreshold {
			out = append(out, a)
		}
	}
	return out
}

func (m *Magazine) addArticle(art *Article) {
	m.articles = appendArticle(m.articles, art)
}
