package service

import (
	"context"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type priceSheetService struct {
	sheetRepo repository.PriceSheetRepository
}

func NewPriceSheetService(sheetRepo repository.PriceSheetRepository) PriceSheetService {
	return &priceSheetService{sheetRepo: sheetRepo}
}

func (s *priceSheetService) Get(ctx context.Context) (*domain.PriceSheet, error) {
	return s.sheetRepo.Get(ctx)
}

func (s *priceSheetService) Update(ctx context.Context, upd domain.PriceSheetUpdate) (*domain.PriceSheet, error) {
	if upd.IsZero() {
		return nil, domain.NewValidationError("at least one price must be provided")
	}
	for field, v := range map[string]*int64{
		"driver_cents":    upd.DriverCents,
		"bodyguard_cents": upd.BodyguardCents,
		"escort_cents":    upd.EscortCents,
		"bouncer_cents":   upd.BouncerCents,
	} {
		if v != nil && *v < 0 {
			return nil, domain.NewValidationError("prices cannot be negative", field)
		}
	}
	return s.sheetRepo.Update(ctx, upd)
}
