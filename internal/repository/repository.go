package repository

import (
	"context"
	"time"

	"motorent-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type BookingRepository interface {
	// CreateAdmitted inserts the booking together with its admission event in
	// one transaction, re-checking vehicle overlap under a per-vehicle
	// advisory lock. Returns a CONFLICT domain error when the final check
	// finds an overlapping reservation.
	CreateAdmitted(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	// UpdateStatus persists a status transition and, when event is non-nil,
	// writes the outbox row in the same transaction. The write only lands when
	// the stored status still equals expected; otherwise a CONFLICT domain
	// error is returned and nothing changes.
	UpdateStatus(ctx context.Context, b *domain.Booking, expected domain.BookingStatus, event *domain.BookingEvent) error
	UpdatePayment(ctx context.Context, id int64, paidCents int64, status domain.PaymentStatus) error
	HasOverlap(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error)
	// List pages bookings for one renter, or for every renter when renterID
	// is zero.
	List(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	CountCompletedByRenter(ctx context.Context, renterID int64) (int32, error)
	// ListStalePending returns PENDING bookings created before the cutoff.
	ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	// ListActivePastEnd returns ACTIVE bookings whose trip window has elapsed.
	ListActivePastEnd(ctx context.Context, now time.Time) ([]domain.Booking, error)
}

type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	CountRedemptionsByUser(ctx context.Context, couponID, userID int64) (int32, error)
	// IncrementUsage bumps the counter and records the redemption. Called only
	// after the admitted booking is durable.
	IncrementUsage(ctx context.Context, couponID, userID, bookingID int64) error
}

type PriceSheetRepository interface {
	// Get returns the current sheet, creating the default row on first access.
	Get(ctx context.Context) (*domain.PriceSheet, error)
	// Update applies a partial change as a versioned write.
	Update(ctx context.Context, upd domain.PriceSheetUpdate) (*domain.PriceSheet, error)
}

type LocationRepository interface {
	// Append demotes the subject's previous latest sample and inserts the new
	// one atomically.
	Append(ctx context.Context, s *domain.LocationSample) error
	Latest(ctx context.Context, kind domain.SubjectKind) ([]domain.LocationSample, error)
	LatestForSubject(ctx context.Context, subjectID int64, kind domain.SubjectKind) (*domain.LocationSample, error)
}

type PointsRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error
	// HasRewardForBooking reports whether a referral reward was already issued
	// for the booking; the dispatcher relies on this for retry idempotence.
	HasRewardForBooking(ctx context.Context, bookingID int64) (bool, error)
	// ListCreditsForBooking returns guarantor credits tied to a booking so a
	// cancellation can reverse them.
	ListCreditsForBooking(ctx context.Context, bookingID int64) ([]domain.PointsTransaction, error)
	HasReversalForBooking(ctx context.Context, bookingID int64) (bool, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}

type OutboxRepository interface {
	ListPending(ctx context.Context, limit int32) ([]domain.BookingEvent, error)
	MarkDispatched(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64) error
	// RequeueFailed flips FAILED events under the attempt cap back to PENDING.
	RequeueFailed(ctx context.Context, maxAttempts int32) (int64, error)
}
