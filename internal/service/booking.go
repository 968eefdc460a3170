package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/logger"
	"motorent-backend/internal/pricing"
	"motorent-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	sheetRepo   repository.PriceSheetRepository
	couponSvc   CouponService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	sheetRepo repository.PriceSheetRepository,
	couponSvc CouponService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		sheetRepo:   sheetRepo,
		couponSvc:   couponSvc,
	}
}

// newBookingCode builds the human-readable code customers quote on the phone.
func newBookingCode() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

func validateAdmitRequest(req *AdmitRequest) error {
	var fields []string
	if req.VehicleID <= 0 {
		fields = append(fields, "vehicle_id")
	}
	if req.Start.Location == "" {
		fields = append(fields, "start.location")
	}
	if req.End.Location == "" {
		fields = append(fields, "end.location")
	}
	if req.Start.At.IsZero() {
		fields = append(fields, "start.at")
	}
	if req.End.At.IsZero() {
		fields = append(fields, "end.at")
	}
	switch req.PaymentOption {
	case domain.PaymentOptionFull, domain.PaymentOptionAdvance:
	case "":
		req.PaymentOption = domain.PaymentOptionFull
	default:
		fields = append(fields, "payment_option")
	}
	if len(fields) > 0 {
		return domain.NewValidationError("missing or invalid trip fields", fields...)
	}
	if !req.End.At.After(req.Start.At) {
		return domain.NewValidationError("trip end must be after trip start", "end.at")
	}
	return nil
}

func (s *bookingService) Admit(ctx context.Context, req AdmitRequest) (*domain.Booking, error) {
	if err := validateAdmitRequest(&req); err != nil {
		return nil, err
	}

	renter, err := s.userRepo.GetByID(ctx, req.RenterID)
	if err != nil {
		return nil, err
	}
	if !renter.IsActive {
		return nil, domain.NewForbiddenError("account is not active")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusActive || !vehicle.IsAvailable {
		return nil, domain.NewConflictError("vehicle is not available for booking")
	}

	// Early overlap check for a fast rejection; the authoritative check runs
	// again inside the admission transaction.
	overlap, err := s.bookingRepo.HasOverlap(ctx, req.VehicleID, req.Start.At, req.End.At)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, domain.NewConflictError("vehicle is already reserved for the requested dates")
	}

	sheet, err := s.sheetRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	quote := pricing.Compute(vehicle.DailyRateCents, req.Start.At, req.End.At, req.AddOns, sheet)

	var coupon *domain.Coupon
	if req.CouponCode != "" {
		var discount int64
		coupon, discount, err = s.couponSvc.Validate(ctx, req.CouponCode, quote.SubtotalCents, req.RenterID, vehicle.Category)
		if err != nil {
			return nil, err
		}
		quote.ApplyDiscount(discount)
	}

	b := &domain.Booking{
		Code:                  newBookingCode(),
		RenterID:              req.RenterID,
		VehicleID:             req.VehicleID,
		Start:                 req.Start,
		End:                   req.End,
		TotalDays:             quote.TotalDays,
		BaseCents:             quote.BaseCents,
		WeekendSurchargeCents: quote.WeekendSurchargeCents,
		AddOnTotalCents:       quote.AddOnTotalCents,
		AddOns:                req.AddOns,
		DiscountCents:         quote.DiscountCents,
		TotalCents:            quote.TotalCents,
		PaymentOption:         req.PaymentOption,
		PaymentStatus:         domain.PaymentStatusPending,
		PaidCents:             0,
		RemainingCents:        quote.TotalCents,
		Status:                domain.BookingStatusPending,
	}
	if coupon != nil {
		b.CouponCode = coupon.Code
	}
	if req.PaymentOption == domain.PaymentOptionAdvance {
		b.AdvanceCents = quote.AdvanceCents
	}

	event := newBookingEvent(domain.EventBookingAdmitted, b, "", Actor{UserID: req.RenterID})
	if err := s.bookingRepo.CreateAdmitted(ctx, b, event); err != nil {
		return nil, err
	}

	// Usage counters move only after the booking is durable, so rejected or
	// conflicted admissions never consume a redemption.
	if coupon != nil {
		if err := s.couponSvc.Redeem(ctx, coupon.ID, req.RenterID, b.ID); err != nil {
			logger.SideEffectFailure("coupon_redeem", err, "booking_id", b.ID, "coupon", coupon.Code)
		}
	}

	return b, nil
}

func (s *bookingService) Get(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && b.RenterID != actor.UserID {
		return nil, domain.NewForbiddenError("booking belongs to another account")
	}
	return b, nil
}

// List pages bookings. Renters always see their own; administrators may pass
// another renter's id, or zero to list across the fleet.
func (s *bookingService) List(ctx context.Context, actor Actor, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if !actor.Admin {
		if renterID != 0 && renterID != actor.UserID {
			return nil, 0, domain.NewForbiddenError("cannot list another renter's bookings")
		}
		renterID = actor.UserID
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookingRepo.List(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) RecordPayment(ctx context.Context, bookingID int64, paidCents int64, status domain.PaymentStatus) (*domain.Booking, error) {
	if paidCents < 0 {
		return nil, domain.NewValidationError("paid amount cannot be negative", "paid_cents")
	}
	switch status {
	case domain.PaymentStatusPending, domain.PaymentStatusPartial, domain.PaymentStatusPaid:
	default:
		return nil, domain.NewValidationError("unknown payment status", "payment_status")
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if paidCents > b.TotalCents {
		return nil, domain.NewValidationError("paid amount exceeds booking total", "paid_cents")
	}
	if err := s.bookingRepo.UpdatePayment(ctx, bookingID, paidCents, status); err != nil {
		return nil, err
	}
	return s.bookingRepo.GetByID(ctx, bookingID)
}

// eventPayload is the wire body of an outbox row.
type eventPayload struct {
	BookingID   int64  `json:"booking_id"`
	BookingCode string `json:"booking_code"`
	RenterID    int64  `json:"renter_id"`
	VehicleID   int64  `json:"vehicle_id"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	ActorID     int64  `json:"actor_id"`
	At          string `json:"at"`
}

func newBookingEvent(t domain.EventType, b *domain.Booking, reason string, actor Actor) *domain.BookingEvent {
	payload, _ := json.Marshal(eventPayload{
		BookingID:   b.ID,
		BookingCode: b.Code,
		RenterID:    b.RenterID,
		VehicleID:   b.VehicleID,
		Status:      string(b.Status),
		Reason:      reason,
		ActorID:     actor.UserID,
		At:          time.Now().UTC().Format(time.RFC3339),
	})
	return &domain.BookingEvent{
		BookingID: b.ID,
		Type:      t,
		Payload:   payload,
	}
}
