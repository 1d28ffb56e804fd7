package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued admin session tokens. Tokens expire on their own;
// logout revokes them early.
type SessionStore interface {
	Create(ctx context.Context, ttl time.Duration) (string, error)
	Valid(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}

type redisSessionStore struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisSessionStore(redisClient *redis.Client) SessionStore {
	return &redisSessionStore{
		redisClient: redisClient,
		keyPrefix:   "catalog:session:",
	}
}

func (s *redisSessionStore) Create(ctx context.Context, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := s.redisClient.Set(ctx, s.keyPrefix+token, "1", ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *redisSessionStore) Valid(ctx context.Context, token string) (bool, error) {
	_, err := s.redisClient.Get(ctx, s.keyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return true, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.redisClient.Del(ctx, s.keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]time.Time)}
}

func (s *memorySessionStore) Create(ctx context.Context, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[token] = time.Now().Add(ttl)
	s.mu.Unlock()
	return token, nil
}

func (s *memorySessionStore) Valid(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(expires) {
		delete(s.sessions, token)
		return false, nil
	}
	return true, nil
}

func (s *memorySessionStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
