package repository

import (
	"context"

	"magazine-catalog/internal/domain/entity"

	"github.com/google/uuid"
)

type MagazineRepository interface {
	// Get returns (nil, nil) if the magazine is not found.
	Get(ctx context.Context, id uuid.UUID) (*entity.Magazine, error)
	List(ctx context.Context) ([]*entity.Magazine, error)
	// ListByCategory returns magazines whose category equals category exactly.
	ListByCategory(ctx context.Context, category string) ([]*entity.Magazine, error)
	Create(ctx context.Context, magazine *entity.Magazine) error
	Count(ctx context.Context) (int64, error)
}
