package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisSessionStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	token, err := s.Create(ctx, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ok, err := s.Valid(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Valid(ctx, "bogus-token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Revoke(ctx, token))
	ok, err = s.Valid(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSessionExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisSessionStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	token, err := s.Create(ctx, time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	ok, err := s.Valid(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}
