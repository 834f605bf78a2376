package memory

import (
	"context"
	"fmt"

	"magazine-catalog/internal/domain/entity"
	"magazine-catalog/internal/repository"

	"github.com/google/uuid"
)

type AuthorRepo struct{ s *store[*entity.Author] }

func NewAuthorRepo() repository.AuthorRepository {
	return &AuthorRepo{s: newStore[*entity.Author]()}
}

func (repo *AuthorRepo) Get(_ context.Context, id uuid.UUID) (*entity.Author, error) {
	a, ok := repo.s.get(id)
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (repo *AuthorRepo) List(_ context.Context) ([]*entity.Author, error) {
	return repo.s.list(), nil
}

func (repo *AuthorRepo) Create(_ context.Context, author *entity.Author) error {
	if err := repo.s.create(author); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *AuthorRepo) Count(_ context.Context) (int64, error) {
	return repo.s.count(), nil
}
