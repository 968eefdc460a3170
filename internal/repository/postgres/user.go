package postgres

import (
	"context"
	"database/sql"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, COALESCE(phone, ''), role, is_active, referred_by, COALESCE(device_token, '')
	          FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.IsActive, &u.ReferredBy, &u.DeviceToken)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("user")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
