package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, code, renter_id, vehicle_id,
	start_location, start_lat, start_lng, start_at,
	end_location, end_lat, end_lng, end_at, total_days,
	base_cents, weekend_surcharge_cents, addon_total_cents,
	addon_driver, addon_bodyguard, addon_escort, addon_bouncer,
	COALESCE(coupon_code, ''), discount_cents, total_cents,
	payment_option, payment_status, advance_cents, paid_cents, remaining_cents,
	status, tracking_enabled,
	confirmed_on, trip_started_on, trip_ended_on, completed_on, cancelled_on,
	COALESCE(cancel_reason, ''), COALESCE(cancelled_by, ''),
	created_on, updated_on`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var cancelledBy string
	err := row.Scan(
		&b.ID, &b.Code, &b.RenterID, &b.VehicleID,
		&b.Start.Location, &b.Start.Latitude, &b.Start.Longitude, &b.Start.At,
		&b.End.Location, &b.End.Latitude, &b.End.Longitude, &b.End.At, &b.TotalDays,
		&b.BaseCents, &b.WeekendSurchargeCents, &b.AddOnTotalCents,
		&b.AddOns.Driver, &b.AddOns.Bodyguard, &b.AddOns.Escort, &b.AddOns.Bouncer,
		&b.CouponCode, &b.DiscountCents, &b.TotalCents,
		&b.PaymentOption, &b.PaymentStatus, &b.AdvanceCents, &b.PaidCents, &b.RemainingCents,
		&b.Status, &b.TrackingEnabled,
		&b.ConfirmedOn, &b.TripStartedOn, &b.TripEndedOn, &b.CompletedOn, &b.CancelledOn,
		&b.CancelReason, &cancelledBy,
		&b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	b.CancelledBy = domain.CancelActor(cancelledBy)
	return b, nil
}

// Overlap is evaluated half-open: [start, end). Back-to-back bookings that
// meet at a boundary instant do not conflict.
const overlapQuery = `SELECT EXISTS (
	SELECT 1 FROM bookings
	WHERE vehicle_id = $1
	  AND status IN ('PENDING', 'CONFIRMED', 'ACTIVE')
	  AND start_at < $3 AND end_at > $2
)`

func (r *bookingRepository) HasOverlap(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, overlapQuery, vehicleID, start, end).Scan(&exists)
	return exists, err
}

func (r *bookingRepository) CreateAdmitted(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serialize concurrent admissions for the same vehicle; the lock is held
	// until commit so the overlap re-check and the insert are one unit.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lockClassBooking, b.VehicleID); err != nil {
		return err
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, overlapQuery, b.VehicleID, b.Start.At, b.End.At).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.NewConflictError("vehicle is already reserved for the requested dates")
	}

	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	query := `INSERT INTO bookings (
		code, renter_id, vehicle_id,
		start_location, start_lat, start_lng, start_at,
		end_location, end_lat, end_lng, end_at, total_days,
		base_cents, weekend_surcharge_cents, addon_total_cents,
		addon_driver, addon_bodyguard, addon_escort, addon_bouncer,
		coupon_code, discount_cents, total_cents,
		payment_option, payment_status, advance_cents, paid_cents, remaining_cents,
		status, tracking_enabled, created_on, updated_on
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
	          $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
	RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		b.Code, b.RenterID, b.VehicleID,
		b.Start.Location, b.Start.Latitude, b.Start.Longitude, b.Start.At,
		b.End.Location, b.End.Latitude, b.End.Longitude, b.End.At, b.TotalDays,
		b.BaseCents, b.WeekendSurchargeCents, b.AddOnTotalCents,
		b.AddOns.Driver, b.AddOns.Bodyguard, b.AddOns.Escort, b.AddOns.Bouncer,
		b.CouponCode, b.DiscountCents, b.TotalCents,
		b.PaymentOption, b.PaymentStatus, b.AdvanceCents, b.PaidCents, b.RemainingCents,
		b.Status, b.TrackingEnabled, b.CreatedOn, b.UpdatedOn,
	).Scan(&b.ID)
	if err != nil {
		return err
	}

	if event != nil {
		event.StampBookingID(b.ID)
		if err := insertEvent(ctx, tx, event); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("booking")
	}
	return b, err
}

func (r *bookingRepository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE code = $1`, code)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("booking")
	}
	return b, err
}

// UpdateStatus writes a transition with an optimistic guard on the status the
// caller read. Zero rows means another transition won the race.
func (r *bookingRepository) UpdateStatus(ctx context.Context, b *domain.Booking, expected domain.BookingStatus, event *domain.BookingEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	b.UpdatedOn = time.Now()
	query := `UPDATE bookings SET
		status = $1, tracking_enabled = $2,
		confirmed_on = $3, trip_started_on = $4, trip_ended_on = $5,
		completed_on = $6, cancelled_on = $7, cancel_reason = $8, cancelled_by = $9,
		updated_on = $10
	WHERE id = $11 AND status = $12`
	res, err := tx.ExecContext(ctx, query,
		b.Status, b.TrackingEnabled,
		b.ConfirmedOn, b.TripStartedOn, b.TripEndedOn,
		b.CompletedOn, b.CancelledOn, b.CancelReason, string(b.CancelledBy),
		b.UpdatedOn, b.ID, expected,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewConflictError("booking was changed by a concurrent transition")
	}

	if event != nil {
		event.BookingID = b.ID
		if err := insertEvent(ctx, tx, event); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *bookingRepository) UpdatePayment(ctx context.Context, id int64, paidCents int64, status domain.PaymentStatus) error {
	query := `UPDATE bookings SET
		paid_cents = $1,
		remaining_cents = total_cents - $1,
		payment_status = $2,
		updated_on = $3
	WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, paidCents, status, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("booking")
	}
	return nil
}

// List pages bookings newest first. A zero renterID skips the renter filter
// so administrators can list across the whole fleet.
func (r *bookingRepository) List(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	var conditions []string
	var args []interface{}
	if renterID != 0 {
		args = append(args, renterID)
		conditions = append(conditions, fmt.Sprintf("renter_id = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) CountCompletedByRenter(ctx context.Context, renterID int64) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE renter_id = $1 AND status = 'COMPLETED'`, renterID).Scan(&count)
	return count, err
}

func (r *bookingRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	return r.listWhere(ctx, `status = 'PENDING' AND created_on < $1`, cutoff)
}

func (r *bookingRepository) ListActivePastEnd(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	return r.listWhere(ctx, `status = 'ACTIVE' AND end_at < $1`, now)
}

func (r *bookingRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE `+where+` ORDER BY created_on`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
