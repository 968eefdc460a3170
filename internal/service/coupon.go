package service

import (
	"context"
	"time"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) Validate(ctx context.Context, code string, subtotalCents int64, userID int64, vehicleCategory string) (*domain.Coupon, int64, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, domain.NormalizeCouponCode(code))
	if err != nil {
		return nil, 0, err
	}

	redemptions, err := s.couponRepo.CountRedemptionsByUser(ctx, coupon.ID, userID)
	if err != nil {
		return nil, 0, err
	}

	if reason, ok := coupon.EligibleFor(subtotalCents, vehicleCategory, redemptions, time.Now().UTC()); !ok {
		return nil, 0, domain.NewCouponNotApplicableError(reason)
	}
	return coupon, coupon.DiscountFor(subtotalCents), nil
}

func (s *couponService) Redeem(ctx context.Context, couponID, userID, bookingID int64) error {
	return s.couponRepo.IncrementUsage(ctx, couponID, userID, bookingID)
}
