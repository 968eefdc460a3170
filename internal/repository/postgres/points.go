package postgres

import (
	"context"
	"database/sql"
	"time"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type pointsRepository struct {
	db *sql.DB
}

func NewPointsRepository(db *sql.DB) repository.PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error {
	tx.CreatedOn = time.Now()
	query := `INSERT INTO points_transactions (user_id, points, type, related_booking_id, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		tx.UserID, tx.Points, tx.Type, tx.RelatedBookingID, tx.Description, tx.CreatedOn).Scan(&tx.ID)
}

func (r *pointsRepository) HasRewardForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM points_transactions WHERE related_booking_id = $1 AND type = $2)`,
		bookingID, domain.PointsTypeReferralReward).Scan(&exists)
	return exists, err
}

func (r *pointsRepository) HasReversalForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM points_transactions WHERE related_booking_id = $1 AND type = $2)`,
		bookingID, domain.PointsTypeGuarantorReversal).Scan(&exists)
	return exists, err
}

func (r *pointsRepository) ListCreditsForBooking(ctx context.Context, bookingID int64) ([]domain.PointsTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, points, type, related_booking_id, COALESCE(description, ''), created_on
		 FROM points_transactions WHERE related_booking_id = $1 AND type = $2`,
		bookingID, domain.PointsTypeGuarantorCredit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.PointsTransaction
	for rows.Next() {
		var t domain.PointsTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Points, &t.Type, &t.RelatedBookingID, &t.Description, &t.CreatedOn); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *pointsRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(points) FROM points_transactions WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		return 0, err
	}
	return balance.Int64, nil
}
