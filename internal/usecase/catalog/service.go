package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"magazine-catalog/internal/domain/entity"
	"magazine-catalog/internal/observability/logging"
	"magazine-catalog/internal/observability/metrics"
	"magazine-catalog/internal/observability/tracing"
	"magazine-catalog/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// CreateAuthorInput represents the input parameters for creating a new author.
type CreateAuthorInput struct {
	Name string
}

// CreateMagazineInput represents the input parameters for creating a new magazine.
type CreateMagazineInput struct {
	Name     string
	Category string
}

// PublishInput represents the input parameters for publishing an article.
type PublishInput struct {
	AuthorID   uuid.UUID
	MagazineID uuid.UUID
	Title      string
}

// Stats holds the catalog size.
type Stats struct {
	Authors   int64 `json:"authors"`
	Magazines int64 `json:"magazines"`
	Articles  int64 `json:"articles"`
}

// Service provides catalog use cases.
// The entity graph is not safe for concurrent use, so every operation that
// touches article lists runs under mu; repositories guard their own indexes.
type Service struct {
	Authors   repository.AuthorRepository
	Magazines repository.MagazineRepository
	Articles  repository.ArticleRepository
	Logger    *slog.Logger

	mu sync.RWMutex
}

// NewService creates a catalog Service. A nil logger falls back to slog.Default().
func NewService(
	authors repository.AuthorRepository,
	magazines repository.MagazineRepository,
	articles repository.ArticleRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		Authors:   authors,
		Magazines: magazines,
		Articles:  articles,
		Logger:    logger,
	}
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	l := s.Logger
	if l == nil {
		l = logging.FromContext(ctx)
	}
	return logging.WithRequestID(ctx, l)
}

// CreateAuthor registers a new author.
func (s *Service) CreateAuthor(ctx context.Context, in CreateAuthorInput) (*entity.Author, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.CreateAuthor")
	defer span.End()

	author := entity.NewAuthor(in.Name)

	s.mu.Lock()
	err := s.Authors.Create(ctx, author)
	s.mu.Unlock()
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("create author: %w", err)
	}

	metrics.RecordEntityCreated("author")
	s.logger(ctx).Info("author created",
		slog.String("author_id", author.ID().String()),
		slog.String("name", author.Name()))
	return author, nil
}

// CreateMagazine validates and registers a new magazine.
// Returns a ValueKind ValidationError when the name or category is out of range.
func (s *Service) CreateMagazine(ctx context.Context, in CreateMagazineInput) (*entity.Magazine, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.CreateMagazine")
	defer span.End()

	magazine, err := entity.NewMagazine(in.Name, in.Category)
	if err != nil {
		s.recordRejected(ctx, "magazine", err)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("create magazine: %w", err)
	}

	s.mu.Lock()
	err = s.Magazines.Create(ctx, magazine)
	s.mu.Unlock()
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("create magazine: %w", err)
	}

	metrics.RecordEntityCreated("magazine")
	s.logger(ctx).Info("magazine created",
		slog.String("magazine_id", magazine.ID().String()),
		slog.String("name", magazine.Name()),
		slog.String("category", magazine.Category()))
	return magazine, nil
}

// Publish creates an article by the given author in the given magazine.
// The article is registered with both parents and then stored; if the store
// rejects it the registration is undone, so the graph never holds an unstored article.
func (s *Service) Publish(ctx context.Context, in PublishInput) (*entity.Article, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Publish",
		attribute.String("author.id", in.AuthorID.String()),
		attribute.String("magazine.id", in.MagazineID.String()))
	defer span.End()

	author, err := s.GetAuthor(ctx, in.AuthorID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("publish: %w", err)
	}
	magazine, err := s.GetMagazine(ctx, in.MagazineID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("publish: %w", err)
	}

	s.mu.Lock()
	article, err := author.AddArticle(magazine, in.Title)
	if err == nil {
		if err = s.Articles.Create(ctx, article); err != nil {
			article.Detach()
		}
	}
	s.mu.Unlock()
	if err != nil {
		s.recordRejected(ctx, "article", err)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("publish: %w", err)
	}

	metrics.RecordArticlePublished(magazine.Category())
	span.SetAttributes(attribute.String("magazine.category", magazine.Category()))
	s.logger(ctx).Info("article published",
		slog.String("article_id", article.ID().String()),
		slog.String("author_id", author.ID().String()),
		slog.String("magazine_id", magazine.ID().String()))
	return article, nil
}

// RenameAuthor attempts to change an author's name.
// Author names are immutable, so for an existing author this always returns
// an *entity.ImmutableAttributeError and the name is left unchanged.
func (s *Service) RenameAuthor(ctx context.Context, id uuid.UUID, name string) error {
	author, err := s.GetAuthor(ctx, id)
	if err != nil {
		return fmt.Errorf("rename author: %w", err)
	}
	if err := author.SetName(name); err != nil {
		s.recordRejected(ctx, "author", err)
		return fmt.Errorf("rename author: %w", err)
	}
	return nil
}

// UpdateMagazine attempts to change a magazine's name and/or category.
// Empty fields are ignored. Both fields are immutable, so any non-empty change
// of an existing magazine returns an *entity.ImmutableAttributeError.
func (s *Service) UpdateMagazine(ctx context.Context, id uuid.UUID, name, category string) error {
	magazine, err := s.GetMagazine(ctx, id)
	if err != nil {
		return fmt.Errorf("update magazine: %w", err)
	}
	if name != "" {
		if err := magazine.SetName(name); err != nil {
			s.recordRejected(ctx, "magazine", err)
			return fmt.Errorf("update magazine: %w", err)
		}
	}
	if category != "" {
		if err := magazine.SetCategory(category); err != nil {
			s.recordRejected(ctx, "magazine", err)
			return fmt.Errorf("update magazine: %w", err)
		}
	}
	return nil
}

// GetAuthor returns the author with the given ID or ErrAuthorNotFound.
func (s *Service) GetAuthor(ctx context.Context, id uuid.UUID) (*entity.Author, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}
	author, err := s.Authors.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	return author, nil
}

// GetMagazine returns the magazine with the given ID or ErrMagazineNotFound.
func (s *Service) GetMagazine(ctx context.Context, id uuid.UUID) (*entity.Magazine, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}
	magazine, err := s.Magazines.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get magazine: %w", err)
	}
	if magazine == nil {
		return nil, ErrMagazineNotFound
	}
	return magazine, nil
}

// GetArticle returns the article with the given ID or ErrArticleNotFound.
func (s *Service) GetArticle(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}
	article, err := s.Articles.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// ListAuthors returns all authors in creation order.
func (s *Service) ListAuthors(ctx context.Context) ([]*entity.Author, error) {
	authors, err := s.Authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

// ListMagazines returns all magazines in creation order.
// A non-empty category restricts the result to that category.
func (s *Service) ListMagazines(ctx context.Context, category string) ([]*entity.Magazine, error) {
	var (
		magazines []*entity.Magazine
		err       error
	)
	if category != "" {
		magazines, err = s.Magazines.ListByCategory(ctx, category)
	} else {
		magazines, err = s.Magazines.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list magazines: %w", err)
	}
	return magazines, nil
}

// ListArticles returns all articles in publication order.
func (s *Service) ListArticles(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// AuthorArticles returns the author's articles in registration order.
func (s *Service) AuthorArticles(ctx context.Context, id uuid.UUID) ([]*entity.Article, error) {
	var out []*entity.Article
	err := s.readAuthor(ctx, id, func(a *entity.Author) { out = a.Articles() })
	return out, err
}

// AuthorMagazines returns the distinct magazines the author has written for.
func (s *Service) AuthorMagazines(ctx context.Context, id uuid.UUID) ([]*entity.Magazine, error) {
	var out []*entity.Magazine
	err := s.readAuthor(ctx, id, func(a *entity.Author) { out = a.Magazines() })
	return out, err
}

// AuthorTopicAreas returns the author's distinct categories, or nil when the
// author has no articles.
func (s *Service) AuthorTopicAreas(ctx context.Context, id uuid.UUID) ([]string, error) {
	var out []string
	err := s.readAuthor(ctx, id, func(a *entity.Author) { out = a.TopicAreas() })
	return out, err
}

// MagazineArticles returns the magazine's articles in registration order.
func (s *Service) MagazineArticles(ctx context.Context, id uuid.UUID) ([]*entity.Article, error) {
	var out []*entity.Article
	err := s.readMagazine(ctx, id, func(m *entity.Magazine) { out = m.Articles() })
	return out, err
}

// MagazineContributors returns the distinct authors who wrote for the magazine.
func (s *Service) MagazineContributors(ctx context.Context, id uuid.UUID) ([]*entity.Author, error) {
	var out []*entity.Author
	err := s.readMagazine(ctx, id, func(m *entity.Magazine) { out = m.Contributors() })
	return out, err
}

// MagazineArticleTitles returns the magazine's titles in order, or nil when it has no articles.
func (s *Service) MagazineArticleTitles(ctx context.Context, id uuid.UUID) ([]string, error) {
	var out []string
	err := s.readMagazine(ctx, id, func(m *entity.Magazine) { out = m.ArticleTitles() })
	return out, err
}

// MagazineContributingAuthors returns the authors with more than two articles in the magazine.
func (s *Service) MagazineContributingAuthors(ctx context.Context, id uuid.UUID) ([]*entity.Author, error) {
	var out []*entity.Author
	err := s.readMagazine(ctx, id, func(m *entity.Magazine) { out = m.ContributingAuthors() })
	return out, err
}

// Stats returns the number of authors, magazines and articles.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.Authors, err = s.Authors.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count authors: %w", err)
	}
	if st.Magazines, err = s.Magazines.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count magazines: %w", err)
	}
	if st.Articles, err = s.Articles.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count articles: %w", err)
	}
	return st, nil
}

// RefreshMetrics publishes the current Stats to the catalog gauges.
func (s *Service) RefreshMetrics(ctx context.Context) error {
	st, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	metrics.UpdateCatalogTotals(st.Authors, st.Magazines, st.Articles)
	return nil
}

func (s *Service) readAuthor(ctx context.Context, id uuid.UUID, fn func(*entity.Author)) error {
	author, err := s.GetAuthor(ctx, id)
	if err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(author)
	return nil
}

func (s *Service) readMagazine(ctx context.Context, id uuid.UUID, fn func(*entity.Magazine)) error {
	magazine, err := s.GetMagazine(ctx, id)
	if err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(magazine)
	return nil
}

// recordRejected counts and logs a domain rejection.
func (s *Service) recordRejected(ctx context.Context, entityName string, err error) {
	kind := "other"
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		kind = vErr.Kind.String()
	case errors.Is(err, entity.ErrImmutableAttribute):
		kind = "immutable"
	}
	metrics.RecordValidationError(entityName, kind)
	s.logger(ctx).Warn("catalog operation rejected",
		slog.String("entity", entityName),
		slog.String("kind", kind),
		slog.Any("error", err))
}
