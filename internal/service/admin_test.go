package service

import (
	"context"
	"testing"

	"preowned/catalog/internal/auth"
	"preowned/catalog/internal/cache"
	"preowned/catalog/internal/config"
	"preowned/catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminFixture(t *testing.T) (*Admin, *auth.Gate, cache.SnapshotStore, string) {
	t.Helper()

	salt, err := auth.GenerateSaltHex()
	require.NoError(t, err)
	hash, err := auth.HashPassword("s3cret", salt)
	require.NoError(t, err)

	gate := auth.NewGate(config.AdminConfig{
		Username:     "owner",
		PasswordSalt: salt,
		PasswordHash: hash,
		SessionTTL:   60,
	}, auth.NewMemorySessionStore())

	store := cache.NewMemoryStore()
	admin := NewAdmin(&fakeCatalog{}, store, gate)

	token, err := gate.Login(context.Background(), "owner", "s3cret")
	require.NoError(t, err)

	return admin, gate, store, token
}

func TestAdminWritesRequireSession(t *testing.T) {
	admin, _, store, _ := adminFixture(t)

	rec := car("VJM9001")
	_, err := admin.CreateCar(context.Background(), "bogus-token", &rec)
	assert.ErrorIs(t, err, auth.ErrNoSession)

	cached, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cached, "rejected write must not touch the cache")
}

func TestAdminCreateUpdatesCacheAfterConfirmation(t *testing.T) {
	admin, _, store, token := adminFixture(t)

	rec := car("VJM9001")
	created, err := admin.CreateCar(context.Background(), token, &rec)
	require.NoError(t, err)
	assert.Equal(t, "VJM9001", created.RegistrationNo)

	cached, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestAdminDeleteRemovesFromCache(t *testing.T) {
	admin, _, store, token := adminFixture(t)

	rec := car("VJM9001")
	_, err := admin.CreateCar(context.Background(), token, &rec)
	require.NoError(t, err)

	require.NoError(t, admin.DeleteCar(context.Background(), token, "VJM9001"))

	cached, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestAdminLogoutRevokesAccess(t *testing.T) {
	admin, gate, _, token := adminFixture(t)

	require.NoError(t, gate.Logout(context.Background(), token))

	rec := car("VJM9001")
	_, err := admin.CreateCar(context.Background(), token, &rec)
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestAdminUpdateMatchesByRegistration(t *testing.T) {
	admin, _, store, token := adminFixture(t)

	original := car("VJM9001")
	_, err := admin.CreateCar(context.Background(), token, &original)
	require.NoError(t, err)

	changed := original
	changed.Status = domain.StatusSold
	_, err = admin.UpdateCar(context.Background(), token, &changed)
	require.NoError(t, err)

	cached, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, domain.StatusSold, cached[0].Status)
}
