package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ecodrive/ecodrive-api/internal/models"
)

// Direct table access for the cars and services tables. Each operation is an
// opaque create/update/delete keyed by row id; no cascade logic lives here.

var (
	// ErrCarNotFound is returned when a car id matches no row
	ErrCarNotFound = fmt.Errorf("car not found")
	// ErrServiceNotFound is returned when a service id matches no row
	ErrServiceNotFound = fmt.Errorf("service not found")
)

// ListCars returns the full car inventory in server order
func (g *Gateway) ListCars(ctx context.Context) ([]models.Car, error) {
	rows, err := g.db.Query(ctx, `SELECT id, name, type, emission_rate, location, COALESCE(available, false) AS available, COALESCE(image_url, '') AS image_url, latitude, longitude FROM cars`)
	if err != nil {
		return nil, wrapErr("cars", err)
	}
	cars, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Car])
	if err != nil {
		return nil, wrapErr("cars", err)
	}
	return cars, nil
}

// GetCar returns one car by id
func (g *Gateway) GetCar(ctx context.Context, id string) (*models.Car, error) {
	rows, err := g.db.Query(ctx, `SELECT id, name, type, emission_rate, location, COALESCE(available, false) AS available, COALESCE(image_url, '') AS image_url, latitude, longitude FROM cars WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("cars", err)
	}
	car, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Car])
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCarNotFound
		}
		return nil, wrapErr("cars", err)
	}
	return &car, nil
}

// InsertCar adds a car, generating an id when the caller does not supply one
func (g *Gateway) InsertCar(ctx context.Context, car models.Car) (*models.Car, error) {
	if car.ID == "" {
		car.ID = uuid.NewString()
	}
	_, err := g.db.Exec(ctx,
		`INSERT INTO cars (id, name, type, emission_rate, location, available, image_url, latitude, longitude) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		car.ID, car.Name, car.Type, car.EmissionRate, car.Location, car.Available, car.ImageURL, car.Latitude, car.Longitude)
	if err != nil {
		return nil, wrapErr("cars", err)
	}
	return &car, nil
}

// UpdateCar replaces a car row by id
func (g *Gateway) UpdateCar(ctx context.Context, id string, car models.Car) error {
	tag, err := g.db.Exec(ctx,
		`UPDATE cars SET name = $2, type = $3, emission_rate = $4, location = $5, available = $6, image_url = $7, latitude = $8, longitude = $9, updated_at = now() WHERE id = $1`,
		id, car.Name, car.Type, car.EmissionRate, car.Location, car.Available, car.ImageURL, car.Latitude, car.Longitude)
	if err != nil {
		return wrapErr("cars", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCarNotFound
	}
	return nil
}

// DeleteCar removes a car row by id
func (g *Gateway) DeleteCar(ctx context.Context, id string) error {
	tag, err := g.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return wrapErr("cars", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCarNotFound
	}
	return nil
}

// ListServices returns the most recently scheduled services first
func (g *Gateway) ListServices(ctx context.Context, limit int) ([]models.Service, error) {
	rows, err := g.db.Query(ctx,
		`SELECT id, car_id, type, scheduled_date, COALESCE(status, 'scheduled') AS status, COALESCE(discount_applied, false) AS discount_applied FROM services ORDER BY scheduled_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, wrapErr("services", err)
	}
	services, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Service])
	if err != nil {
		return nil, wrapErr("services", err)
	}
	return services, nil
}

// GetService returns one service by id
func (g *Gateway) GetService(ctx context.Context, id string) (*models.Service, error) {
	rows, err := g.db.Query(ctx,
		`SELECT id, car_id, type, scheduled_date, COALESCE(status, 'scheduled') AS status, COALESCE(discount_applied, false) AS discount_applied FROM services WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("services", err)
	}
	service, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Service])
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrServiceNotFound
		}
		return nil, wrapErr("services", err)
	}
	return &service, nil
}

// InsertService schedules a service, generating an id when absent
func (g *Gateway) InsertService(ctx context.Context, service models.Service) (*models.Service, error) {
	if service.ID == "" {
		service.ID = uuid.NewString()
	}
	_, err := g.db.Exec(ctx,
		`INSERT INTO services (id, car_id, type, scheduled_date, status, discount_applied) VALUES ($1, $2, $3, $4, $5, $6)`,
		service.ID, service.CarID, service.Type, service.ScheduledDate, service.Status, service.DiscountApplied)
	if err != nil {
		return nil, wrapErr("services", err)
	}
	return &service, nil
}

// UpdateService replaces a service row by id
func (g *Gateway) UpdateService(ctx context.Context, id string, service models.Service) error {
	tag, err := g.db.Exec(ctx,
		`UPDATE services SET type = $2, scheduled_date = $3, status = $4, discount_applied = $5, updated_at = now() WHERE id = $1`,
		id, service.Type, service.ScheduledDate, service.Status, service.DiscountApplied)
	if err != nil {
		return wrapErr("services", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// DeleteService removes a service row by id
func (g *Gateway) DeleteService(ctx context.Context, id string) error {
	tag, err := g.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return wrapErr("services", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}
