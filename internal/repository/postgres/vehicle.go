package postgres

import (
	"context"
	"database/sql"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, name, category, daily_rate_cents, status, is_available, owner_admin_id
	          FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Category, &v.DailyRateCents, &v.Status, &v.IsAvailable, &v.OwnerAdminID)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("vehicle")
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
