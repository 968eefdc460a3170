package service

import (
	"context"

	"motorent-backend/internal/cache"
	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type locationService struct {
	locationRepo repository.LocationRepository
	positions    *cache.PositionCache
}

// NewLocationService builds the tracking ledger service. positions may be
// nil when Redis is not configured.
func NewLocationService(locationRepo repository.LocationRepository, positions *cache.PositionCache) LocationService {
	return &locationService{locationRepo: locationRepo, positions: positions}
}

func (s *locationService) Record(ctx context.Context, sample *domain.LocationSample) (*domain.LocationSample, error) {
	var fields []string
	if sample.SubjectID <= 0 {
		fields = append(fields, "subject_id")
	}
	switch sample.SubjectKind {
	case domain.SubjectKindRenter, domain.SubjectKindGuarantor:
	default:
		fields = append(fields, "subject_kind")
	}
	if sample.Latitude < -90 || sample.Latitude > 90 {
		fields = append(fields, "latitude")
	}
	if sample.Longitude < -180 || sample.Longitude > 180 {
		fields = append(fields, "longitude")
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid location sample", fields...)
	}

	if err := s.locationRepo.Append(ctx, sample); err != nil {
		return nil, err
	}
	s.positions.Put(ctx, sample)
	return sample, nil
}

func (s *locationService) Latest(ctx context.Context, kind domain.SubjectKind) ([]domain.LocationSample, error) {
	if kind != "" && kind != domain.SubjectKindRenter && kind != domain.SubjectKindGuarantor {
		return nil, domain.NewValidationError("unknown subject kind", "kind")
	}
	return s.locationRepo.Latest(ctx, kind)
}

func (s *locationService) LatestForSubject(ctx context.Context, subjectID int64, kind domain.SubjectKind) (*domain.LocationSample, error) {
	if subjectID <= 0 {
		return nil, domain.NewValidationError("invalid subject id", "subject_id")
	}
	if kind != domain.SubjectKindRenter && kind != domain.SubjectKindGuarantor {
		return nil, domain.NewValidationError("unknown subject kind", "kind")
	}
	if cached := s.positions.Get(ctx, subjectID, kind); cached != nil {
		return cached, nil
	}
	sample, err := s.locationRepo.LatestForSubject(ctx, subjectID, kind)
	if err != nil {
		return nil, err
	}
	s.positions.Put(ctx, sample)
	return sample, nil
}
