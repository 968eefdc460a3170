package service

import (
	"context"
	"fmt"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type pointsService struct {
	pointsRepo repository.PointsRepository
}

func NewPointsService(pointsRepo repository.PointsRepository) PointsService {
	return &pointsService{pointsRepo: pointsRepo}
}

// ReverseForBooking writes one negating transaction per guarantor credit tied
// to the booking. The reversal check makes outbox redelivery a no-op.
func (s *pointsService) ReverseForBooking(ctx context.Context, bookingID int64, reason string) error {
	reversed, err := s.pointsRepo.HasReversalForBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if reversed {
		return nil
	}

	credits, err := s.pointsRepo.ListCreditsForBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	for _, credit := range credits {
		relatedID := bookingID
		tx := &domain.PointsTransaction{
			UserID:           credit.UserID,
			Points:           -credit.Points,
			Type:             domain.PointsTypeGuarantorReversal,
			RelatedBookingID: &relatedID,
			Description:      fmt.Sprintf("Reversal of guarantor credit: %s", reason),
		}
		if err := s.pointsRepo.CreateTransaction(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

func (s *pointsService) Balance(ctx context.Context, userID int64) (int64, error) {
	return s.pointsRepo.GetBalance(ctx, userID)
}
