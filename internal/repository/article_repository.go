// Package repository declares the storage ports used by the use-case layer.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"magazine-catalog/internal/domain/entity"

	"github.com/google/uuid"
)

// ArticleRepository stores articles in publication order.
type ArticleRepository interface {
	// Get returns (nil, nil) if the article is not found.
	Get(ctx context.Context, id uuid.UUID) (*entity.Article, error)
	// List returns all articles ordered by creation.
	List(ctx context.Context) ([]*entity.Article, error)
	Create(ctx context.Context, article *entity.Article) error
	Count(ctx context.Context) (int64, error)
}
