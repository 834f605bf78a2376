package repository

import (
	"context"

	"magazine-catalog/internal/domain/entity"

	"github.com/google/uuid"
)

type AuthorRepository interface {
	// Get returns (nil, nil) if the author is not found.
	Get(ctx context.Context, id uuid.UUID) (*entity.Author, error)
	List(ctx context.Context) ([]*entity.Author, error)
	Create(ctx context.Context, author *entity.Author) error
	Count(ctx context.Context) (int64, error)
}
