// Package memory provides in-process implementations of the repository ports.
// Entities are kept in insertion order and indexed by their identity handle.
package memory

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ErrDuplicate is returned by Create when an entity with the same ID is already stored.
var ErrDuplicate = errors.New("entity already exists")

type identifiable interface {
	comparable
	ID() uuid.UUID
}

// store is the shared backing structure of the repositories in this package.
type store[T identifiable] struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]T
	order []T
}

func newStore[T identifiable]() *store[T] {
	return &store[T]{byID: make(map[uuid.UUID]T)}
}

func (s *store[T]) get(id uuid.UUID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byID[id]
	return v, ok
}

func (s *store[T]) list() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

func (s *store[T]) filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, v := range s.order {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (s *store[T]) create(v T) error {
	var zero T
	if v == zero {
		return errors.New("nil entity")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := v.ID()
	if _, ok := s.byID[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, id)
	}
	s.byID[id] = v
	s.order = append(s.order, v)
	return nil
}

func (s *store[T]) count() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.order))
}
