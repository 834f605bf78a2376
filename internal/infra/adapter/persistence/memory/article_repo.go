package memory

import (
	"context"
	"fmt"

	"magazine-catalog/internal/domain/entity"
	"magazine-catalog/internal/repository"

	"github.com/google/uuid"
)

type ArticleRepo struct{ s *store[*entity.Article] }

func NewArticleRepo() repository.ArticleRepository {
	return &ArticleRepo{s: newStore[*entity.Article]()}
}

func (repo *ArticleRepo) Get(_ context.Context, id uuid.UUID) (*entity.Article, error) {
	a, ok := repo.s.get(id)
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (repo *ArticleRepo) List(_ context.Context) ([]*entity.Article, error) {
	return repo.s.list(), nil
}

func (repo *ArticleRepo) Create(_ context.Context, article *entity.Article) error {
	if err := repo.s.create(article); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Count(_ context.Context) (int64, error) {
	return repo.s.count(), nil
}
