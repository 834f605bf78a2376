package memory

import (
	"context"
	"fmt"

	"magazine-catalog/internal/domain/entity"
	"magazine-catalog/internal/repository"

	"github.com/google/uuid"
)

type MagazineRepo struct{ s *store[*entity.Magazine] }

func NewMagazineRepo() repository.MagazineRepository {
	return &MagazineRepo{s: newStore[*entity.Magazine]()}
}

func (repo *MagazineRepo) Get(_ context.Context, id uuid.UUID) (*entity.Magazine, error) {
	m, ok := repo.s.get(id)
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (repo *MagazineRepo) List(_ context.Context) ([]*entity.Magazine, error) {
	return repo.s.list(), nil
}

func (repo *MagazineRepo) ListByCategory(_ context.Context, category string) ([]*entity.Magazine, error) {
	return repo.s.filter(func(m *entity.Magazine) bool {
		return m.Category() == category
	}), nil
}

func (repo *MagazineRepo) Create(_ context.Context, magazine *entity.Magazine) error {
	if err := repo.s.create(magazine); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *MagazineRepo) Count(_ context.Context) (int64, error) {
	return repo.s.count(), nil
}
