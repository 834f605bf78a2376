// Package seed loads an initial catalog from a YAML document and applies it
// through the catalog use case.
//
// Document shape:
//
//	authors:
//	  - {key: carry, name: Carry Bradshaw}
//	magazines:
//	  - {key: vogue, name: Vogue, category: Fashion}
//	articles:
//	  - {author: carry, magazine: vogue, title: How to wear a tutu with style}
//
// Every value must be a YAML string; numbers, booleans and nulls are rejected
// with a TypeKind validation error.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"magazine-catalog/internal/domain/entity"
	"magazine-catalog/internal/usecase/catalog"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// AuthorSpec describes one author in the seed document.
type AuthorSpec struct {
	Key  string
	Name string
}

// MagazineSpec describes one magazine in the seed document.
type MagazineSpec struct {
	Key      string
	Name     string
	Category string
}

// ArticleSpec references an author and a magazine by key.
type ArticleSpec struct {
	Author   string
	Magazine string
	Title    string
}

// Catalog is a parsed and key-checked seed document.
type Catalog struct {
	Authors   []AuthorSpec
	Magazines []MagazineSpec
	Articles  []ArticleSpec
}

type document struct {
	Authors   []map[string]any `yaml:"authors"`
	Magazines []map[string]any `yaml:"magazines"`
	Articles  []map[string]any `yaml:"articles"`
}

// Load reads and parses the seed file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a seed document. Unknown top-level keys are rejected.
// Keys must be unique per section and every article must reference known keys.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	c := &Catalog{}
	authorKeys := make(map[string]bool)
	for i, node := range doc.Authors {
		f, err := fields(fmt.Sprintf("authors[%d]", i), node, "key", "name")
		if err != nil {
			return nil, err
		}
		if err := claimKey(authorKeys, fmt.Sprintf("authors[%d].key", i), f["key"]); err != nil {
			return nil, err
		}
		c.Authors = append(c.Authors, AuthorSpec{Key: f["key"], Name: f["name"]})
	}

	magazineKeys := make(map[string]bool)
	for i, node := range doc.Magazines {
		f, err := fields(fmt.Sprintf("magazines[%d]", i), node, "key", "name", "category")
		if err != nil {
			return nil, err
		}
		if err := claimKey(magazineKeys, fmt.Sprintf("magazines[%d].key", i), f["key"]); err != nil {
			return nil, err
		}
		c.Magazines = append(c.Magazines, MagazineSpec{Key: f["key"], Name: f["name"], Category: f["category"]})
	}

	for i, node := range doc.Articles {
		prefix := fmt.Sprintf("articles[%d]", i)
		f, err := fields(prefix, node, "author", "magazine", "title")
		if err != nil {
			return nil, err
		}
		if !authorKeys[f["author"]] {
			return nil, unknownKey(prefix+".author", f["author"])
		}
		if !magazineKeys[f["magazine"]] {
			return nil, unknownKey(prefix+".magazine", f["magazine"])
		}
		c.Articles = append(c.Articles, ArticleSpec{Author: f["author"], Magazine: f["magazine"], Title: f["title"]})
	}
	return c, nil
}

func fields(prefix string, node map[string]any, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, n := range names {
		s, err := entity.StringField(prefix+"."+n, node[n])
		if err != nil {
			return nil, err
		}
		out[n] = s
	}
	return out, nil
}

func claimKey(seen map[string]bool, field, key string) error {
	if key == "" {
		return &entity.ValidationError{Kind: entity.ValueKind, Field: field, Message: "must not be empty"}
	}
	if seen[key] {
		return &entity.ValidationError{Kind: entity.ValueKind, Field: field, Message: fmt.Sprintf("duplicate key %q", key)}
	}
	seen[key] = true
	return nil
}

func unknownKey(field, key string) error {
	return &entity.ValidationError{Kind: entity.ValueKind, Field: field, Message: fmt.Sprintf("unknown key %q", key)}
}

// Service is the subset of *catalog.Service that Apply needs.
type Service interface {
	CreateAuthor(ctx context.Context, in catalog.CreateAuthorInput) (*entity.Author, error)
	CreateMagazine(ctx context.Context, in catalog.CreateMagazineInput) (*entity.Magazine, error)
	Publish(ctx context.Context, in catalog.PublishInput) (*entity.Article, error)
}

// Result maps seed keys to the created entities.
type Result struct {
	Authors   map[string]*entity.Author
	Magazines map[string]*entity.Magazine
	Articles  []*entity.Article
}

// Apply creates the seed catalog through svc. Authors and magazines are created
// concurrently, each section in document order; articles follow in document order.
// On error, entities created before the failure remain in the catalog.
func Apply(ctx context.Context, svc Service, c *Catalog) (*Result, error) {
	res := &Result{
		Authors:   make(map[string]*entity.Author, len(c.Authors)),
		Magazines: make(map[string]*entity.Magazine, len(c.Magazines)),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		for _, a := range c.Authors {
			author, err := svc.CreateAuthor(egCtx, catalog.CreateAuthorInput{Name: a.Name})
			if err != nil {
				return fmt.Errorf("seed author %q: %w", a.Key, err)
			}
			res.Authors[a.Key] = author
		}
		return nil
	})
	eg.Go(func() error {
		for _, m := range c.Magazines {
			magazine, err := svc.CreateMagazine(egCtx, catalog.CreateMagazineInput{Name: m.Name, Category: m.Category})
			if err != nil {
				return fmt.Errorf("seed magazine %q: %w", m.Key, err)
			}
			res.Magazines[m.Key] = magazine
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return res, err
	}

	for i, a := range c.Articles {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		article, err := svc.Publish(ctx, catalog.PublishInput{
			AuthorID:   res.Authors[a.Author].ID(),
			MagazineID: res.Magazines[a.Magazine].ID(),
			Title:      a.Title,
		})
		if err != nil {
			return res, fmt.Errorf("seed article %d: %w", i, err)
		}
		res.Articles = append(res.Articles, article)
	}
	return res, nil
}
