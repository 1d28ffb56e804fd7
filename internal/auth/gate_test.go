package auth

import (
	"context"
	"testing"
	"time"

	"preowned/catalog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGate(t *testing.T) *Gate {
	t.Helper()
	salt, err := GenerateSaltHex()
	require.NoError(t, err)
	hash, err := HashPassword("s3cret", salt)
	require.NoError(t, err)

	return NewGate(config.AdminConfig{
		Username:     "owner",
		PasswordSalt: salt,
		PasswordHash: hash,
		SessionTTL:   60,
	}, NewMemorySessionStore())
}

func TestGateLoginAndRequire(t *testing.T) {
	g := testGate(t)
	ctx := context.Background()

	token, err := g.Login(ctx, "owner", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, g.Require(ctx, token))
}

func TestGateRejectsBadCredentials(t *testing.T) {
	g := testGate(t)
	ctx := context.Background()

	_, err := g.Login(ctx, "owner", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = g.Login(ctx, "intruder", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGateRejectsUnconfiguredAdmin(t *testing.T) {
	g := NewGate(config.AdminConfig{}, NewMemorySessionStore())
	_, err := g.Login(context.Background(), "anyone", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGateLogout(t *testing.T) {
	g := testGate(t)
	ctx := context.Background()

	token, err := g.Login(ctx, "owner", "s3cret")
	require.NoError(t, err)
	require.NoError(t, g.Logout(ctx, token))
	assert.ErrorIs(t, g.Require(ctx, token), ErrNoSession)
}

func TestMemorySessionExpiry(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	token, err := s.Create(ctx, time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	ok, err := s.Valid(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}
