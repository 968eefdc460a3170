package service

import (
	"context"

	"motorent-backend/internal/domain"
)

// Actor identifies the authenticated caller for authorization checks.
type Actor struct {
	UserID int64
	Admin  bool
}

// AdmitRequest is a validated booking-admission request.
type AdmitRequest struct {
	RenterID      int64
	VehicleID     int64
	Start         domain.TripPoint
	End           domain.TripPoint
	AddOns        domain.AddOnCounts
	CouponCode    string
	PaymentOption domain.PaymentOption
}

// TransitionEvent drives the booking state machine.
type TransitionEvent string

const (
	EventConfirm   TransitionEvent = "confirm"
	EventStartTrip TransitionEvent = "start_trip"
	EventEndTrip   TransitionEvent = "end_trip"
	EventCancel    TransitionEvent = "cancel"
	// EventComplete closes a booking directly from any non-terminal state
	// with the same side effects as ending the trip.
	EventComplete TransitionEvent = "complete"
)

type BookingService interface {
	Admit(ctx context.Context, req AdmitRequest) (*domain.Booking, error)
	Get(ctx context.Context, actor Actor, id int64) (*domain.Booking, error)
	// List pages bookings for the actor; administrators may target another
	// renter via renterID, or pass zero to list every renter's bookings.
	List(ctx context.Context, actor Actor, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	Transition(ctx context.Context, actor Actor, bookingID int64, event TransitionEvent, reason string) (*domain.Booking, error)
	// RecordPayment is the callback surface for the external payment
	// collaborator; the engine never charges anything itself.
	RecordPayment(ctx context.Context, bookingID int64, paidCents int64, status domain.PaymentStatus) (*domain.Booking, error)
}

type CouponService interface {
	// Validate resolves a code and returns the coupon and the discount for
	// the subtotal, or a COUPON_INVALID / COUPON_NOT_APPLICABLE error.
	Validate(ctx context.Context, code string, subtotalCents int64, userID int64, vehicleCategory string) (*domain.Coupon, int64, error)
	// Redeem increments usage after the admitted booking is durable.
	Redeem(ctx context.Context, couponID, userID, bookingID int64) error
}

type PriceSheetService interface {
	Get(ctx context.Context) (*domain.PriceSheet, error)
	Update(ctx context.Context, upd domain.PriceSheetUpdate) (*domain.PriceSheet, error)
}

type LocationService interface {
	Record(ctx context.Context, sample *domain.LocationSample) (*domain.LocationSample, error)
	Latest(ctx context.Context, kind domain.SubjectKind) ([]domain.LocationSample, error)
	// LatestForSubject serves one subject's latest position from the cache,
	// falling back to the ledger on a miss.
	LatestForSubject(ctx context.Context, subjectID int64, kind domain.SubjectKind) (*domain.LocationSample, error)
}

type NotificationService interface {
	// Notify persists and fans out a notification. It never returns an
	// error; delivery failures are logged and swallowed.
	Notify(ctx context.Context, userID int64, title, message string, attrs map[string]string)
	List(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}

type ReferralService interface {
	// AwardOnCompletion credits the referrer when the renter's first trip
	// completes. Safe to call more than once per booking.
	AwardOnCompletion(ctx context.Context, booking *domain.Booking) error
}

type PointsService interface {
	// ReverseForBooking negates guarantor credits tied to a cancelled
	// booking. Safe to call more than once per booking.
	ReverseForBooking(ctx context.Context, bookingID int64, reason string) error
	Balance(ctx context.Context, userID int64) (int64, error)
}
