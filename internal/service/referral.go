package service

import (
	"context"
	"fmt"
	"strconv"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type referralService struct {
	pointsRepo      repository.PointsRepository
	bookingRepo     repository.BookingRepository
	userRepo        repository.UserRepository
	notificationSvc NotificationService
}

func NewReferralService(
	pointsRepo repository.PointsRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	notificationSvc NotificationService,
) ReferralService {
	return &referralService{
		pointsRepo:      pointsRepo,
		bookingRepo:     bookingRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

// AwardOnCompletion pays the referrer once, for the renter's first completed
// trip only. The reward check makes outbox redelivery a no-op.
func (s *referralService) AwardOnCompletion(ctx context.Context, booking *domain.Booking) error {
	rewarded, err := s.pointsRepo.HasRewardForBooking(ctx, booking.ID)
	if err != nil {
		return err
	}
	if rewarded {
		return nil
	}

	renter, err := s.userRepo.GetByID(ctx, booking.RenterID)
	if err != nil {
		return err
	}
	if renter.ReferredBy == nil {
		return nil
	}

	completed, err := s.bookingRepo.CountCompletedByRenter(ctx, booking.RenterID)
	if err != nil {
		return err
	}
	if completed != 1 {
		return nil
	}

	bookingID := booking.ID
	tx := &domain.PointsTransaction{
		UserID:           *renter.ReferredBy,
		Points:           domain.ReferralRewardPoints,
		Type:             domain.PointsTypeReferralReward,
		RelatedBookingID: &bookingID,
		Description:      fmt.Sprintf("Referral reward for %s's first completed trip", renter.Name),
	}
	if err := s.pointsRepo.CreateTransaction(ctx, tx); err != nil {
		return err
	}

	s.notificationSvc.Notify(ctx, *renter.ReferredBy,
		"You earned referral points",
		fmt.Sprintf("%s completed their first trip. %d points were added to your balance.", renter.Name, domain.ReferralRewardPoints),
		map[string]string{
			"type":       "referral_reward",
			"booking_id": strconv.FormatInt(booking.ID, 10),
		})
	return nil
}
