package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"preowned/catalog/internal/domain"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "catalog:snapshot:cars"

// redisStore keeps the snapshot in a Redis hash keyed by registration number,
// so several processes share one warmed snapshot.
type redisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) SnapshotStore {
	return &redisStore{redisClient: redisClient}
}

func (s *redisStore) ReplaceAll(ctx context.Context, cars []domain.Car) error {
	pipe := s.redisClient.TxPipeline()
	pipe.Del(ctx, snapshotKey)
	for _, car := range cars {
		data, err := json.Marshal(car)
		if err != nil {
			return fmt.Errorf("failed to encode car %s: %w", car.RegistrationNo, err)
		}
		pipe.HSet(ctx, snapshotKey, car.RegistrationNo, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *redisStore) All(ctx context.Context) ([]domain.Car, error) {
	entries, err := s.redisClient.HGetAll(ctx, snapshotKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	cars := make([]domain.Car, 0, len(entries))
	for regNo, raw := range entries {
		var car domain.Car
		if err := json.Unmarshal([]byte(raw), &car); err != nil {
			return nil, fmt.Errorf("failed to decode cached car %s: %w", regNo, err)
		}
		cars = append(cars, car)
	}
	// Hash iteration order is arbitrary; keep callers deterministic.
	sort.Slice(cars, func(i, j int) bool { return cars[i].RegistrationNo < cars[j].RegistrationNo })
	return cars, nil
}

func (s *redisStore) Add(ctx context.Context, car domain.Car) error {
	return s.set(ctx, car)
}

func (s *redisStore) Update(ctx context.Context, car domain.Car) error {
	exists, err := s.redisClient.HExists(ctx, snapshotKey, car.RegistrationNo).Result()
	if err != nil {
		return fmt.Errorf("failed to check cached car %s: %w", car.RegistrationNo, err)
	}
	if !exists {
		return domain.ErrCarNotFound
	}
	return s.set(ctx, car)
}

func (s *redisStore) Remove(ctx context.Context, regNo string) error {
	if err := s.redisClient.HDel(ctx, snapshotKey, regNo).Err(); err != nil {
		return fmt.Errorf("failed to remove cached car %s: %w", regNo, err)
	}
	return nil
}

func (s *redisStore) Models(ctx context.Context) ([]string, error) {
	cars, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(cars, func(c domain.Car) string { return c.Name }), nil
}

func (s *redisStore) Locations(ctx context.Context) ([]string, error) {
	cars, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(cars, func(c domain.Car) string { return c.Location }), nil
}

func (s *redisStore) set(ctx context.Context, car domain.Car) error {
	data, err := json.Marshal(car)
	if err != nil {
		return fmt.Errorf("failed to encode car %s: %w", car.RegistrationNo, err)
	}
	if err := s.redisClient.HSet(ctx, snapshotKey, car.RegistrationNo, data).Err(); err != nil {
		return fmt.Errorf("failed to cache car %s: %w", car.RegistrationNo, err)
	}
	return nil
}
