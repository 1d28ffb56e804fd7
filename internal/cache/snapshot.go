package cache

import (
	"context"
	"sort"
	"sync"

	"preowned/catalog/internal/domain"
)

// SnapshotStore holds the cached "all cars" snapshot that backs the model and
// location dropdown options. Mutations happen only after the backend has
// confirmed the corresponding write; update and removal match by registration
// number.
type SnapshotStore interface {
	ReplaceAll(ctx context.Context, cars []domain.Car) error
	All(ctx context.Context) ([]domain.Car, error)
	Add(ctx context.Context, car domain.Car) error
	Update(ctx context.Context, car domain.Car) error
	Remove(ctx context.Context, regNo string) error
	Models(ctx context.Context) ([]string, error)
	Locations(ctx context.Context) ([]string, error)
}

type memoryStore struct {
	mu   sync.RWMutex
	cars []domain.Car
}

func NewMemoryStore() SnapshotStore {
	return &memoryStore{}
}

func (s *memoryStore) ReplaceAll(ctx context.Context, cars []domain.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars = append([]domain.Car(nil), cars...)
	return nil
}

func (s *memoryStore) All(ctx context.Context) ([]domain.Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Car(nil), s.cars...), nil
}

func (s *memoryStore) Add(ctx context.Context, car domain.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars = append(s.cars, car)
	return nil
}

func (s *memoryStore) Update(ctx context.Context, car domain.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cars {
		if s.cars[i].RegistrationNo == car.RegistrationNo {
			s.cars[i] = car
			return nil
		}
	}
	return domain.ErrCarNotFound
}

func (s *memoryStore) Remove(ctx context.Context, regNo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cars[:0]
	for _, c := range s.cars {
		if c.RegistrationNo != regNo {
			kept = append(kept, c)
		}
	}
	s.cars = kept
	return nil
}

func (s *memoryStore) Models(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.cars, func(c domain.Car) string { return c.Name }), nil
}

func (s *memoryStore) Locations(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.cars, func(c domain.Car) string { return c.Location }), nil
}

func distinct(cars []domain.Car, key func(domain.Car) string) []string {
	seen := make(map[string]struct{}, len(cars))
	values := make([]string, 0, len(cars))
	for _, c := range cars {
		k := key(c)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}
