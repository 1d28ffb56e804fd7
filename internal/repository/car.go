package repository

import (
	"context"
	"fmt"

	"preowned/catalog/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CarRepository archives fetched catalog records for offline reporting. The
// backend stays authoritative; this is a write-behind copy keyed by the
// business key.
type CarRepository interface {
	SaveCar(ctx context.Context, car *domain.Car) error
}

type carRepository struct {
	db *pgxpool.Pool
}

func NewCarRepository(db *pgxpool.Pool) CarRepository {
	return &carRepository{
		db: db,
	}
}

func (r *carRepository) SaveCar(ctx context.Context, car *domain.Car) error {
	query := `
	INSERT INTO cars (registration_no, status, data)
	VALUES ($1, $2, $3)
	ON CONFLICT (registration_no)
	DO UPDATE SET status = $2, data = $3`
	_, err := r.db.Exec(ctx, query, car.RegistrationNo, car.Status.String(), car)
	if err != nil {
		return fmt.Errorf("failed to save car %s: %w", car.RegistrationNo, err)
	}

	return nil
}
