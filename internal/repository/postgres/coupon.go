package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	query := `SELECT id, code, kind, percent_off, flat_off_cents, max_discount_cents,
	                 min_subtotal_cents, vehicle_categories, per_user_cap, usage_count,
	                 active, expires_on, created_on
	          FROM coupons WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, domain.NormalizeCouponCode(code)).Scan(
		&c.ID, &c.Code, &c.Kind, &c.PercentOff, &c.FlatOffCents, &c.MaxDiscountCents,
		&c.MinSubtotalCents, pq.Array(&c.VehicleCategories), &c.PerUserCap, &c.UsageCount,
		&c.Active, &c.ExpiresOn, &c.CreatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, domain.NewCouponInvalidError()
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) CountRedemptionsByUser(ctx context.Context, couponID, userID int64) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM coupon_redemptions WHERE coupon_id = $1 AND user_id = $2`,
		couponID, userID).Scan(&count)
	return count, err
}

func (r *couponRepository) IncrementUsage(ctx context.Context, couponID, userID, bookingID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE coupons SET usage_count = usage_count + 1 WHERE id = $1`, couponID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO coupon_redemptions (coupon_id, user_id, booking_id, redeemed_on) VALUES ($1, $2, $3, $4)`,
		couponID, userID, bookingID, time.Now()); err != nil {
		return err
	}
	return tx.Commit()
}
