package service

import (
	"context"

	"preowned/catalog/internal/auth"
	"preowned/catalog/internal/cache"
	"preowned/catalog/internal/client"
	"preowned/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Admin exposes the catalog write path behind the authentication gate. Every
// write goes to the backend first; the local snapshot is touched only after a
// confirmed success, so the cache never shows a change the backend rejected.
type Admin struct {
	catalog client.CatalogClient
	store   cache.SnapshotStore
	gate    *auth.Gate
}

func NewAdmin(catalog client.CatalogClient, store cache.SnapshotStore, gate *auth.Gate) *Admin {
	return &Admin{
		catalog: catalog,
		store:   store,
		gate:    gate,
	}
}

func (a *Admin) CreateCar(ctx context.Context, token string, car *domain.Car) (*domain.Car, error) {
	if err := a.gate.Require(ctx, token); err != nil {
		return nil, err
	}
	created, err := a.catalog.CreateCar(ctx, car)
	if err != nil {
		return nil, err
	}
	if err := a.store.Add(ctx, *created); err != nil {
		log.Warnf("Created car %s but failed to cache it: %v", created.RegistrationNo, err)
	}
	return created, nil
}

func (a *Admin) UpdateCar(ctx context.Context, token string, car *domain.Car) (*domain.Car, error) {
	if err := a.gate.Require(ctx, token); err != nil {
		return nil, err
	}
	updated, err := a.catalog.UpdateCar(ctx, car)
	if err != nil {
		return nil, err
	}
	if err := a.store.Update(ctx, *updated); err != nil {
		log.Warnf("Updated car %s but failed to cache it: %v", updated.RegistrationNo, err)
	}
	return updated, nil
}

func (a *Admin) DeleteCar(ctx context.Context, token string, regNo string) error {
	if err := a.gate.Require(ctx, token); err != nil {
		return err
	}
	if err := a.catalog.DeleteCar(ctx, regNo); err != nil {
		return err
	}
	if err := a.store.Remove(ctx, regNo); err != nil {
		log.Warnf("Deleted car %s but failed to drop it from cache: %v", regNo, err)
	}
	return nil
}
