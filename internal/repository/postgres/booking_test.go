package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository/postgres"
)

func TestBookingRepository_HasOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("Overlap found", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(2), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		overlap, err := repo.HasOverlap(ctx, 2, start, end)
		assert.NoError(t, err)
		assert.True(t, overlap)
	})

	t.Run("No overlap", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(2), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		overlap, err := repo.HasOverlap(ctx, 2, start, end)
		assert.NoError(t, err)
		assert.False(t, overlap)
	})
}

func TestBookingRepository_CreateAdmitted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	booking := &domain.Booking{
		Code:           "BK-ABCD1234",
		RenterID:       1,
		VehicleID:      2,
		Start:          domain.TripPoint{Location: "Lagos Island", At: time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)},
		End:            domain.TripPoint{Location: "Ikeja", At: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)},
		TotalDays:      3,
		BaseCents:      600000,
		TotalCents:     600000,
		RemainingCents: 600000,
		PaymentOption:  domain.PaymentOptionFull,
		PaymentStatus:  domain.PaymentStatusPending,
		Status:         domain.BookingStatusPending,
	}

	t.Run("Locks, rechecks and inserts with outbox event", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").
			WithArgs(sqlmock.AnyArg(), booking.VehicleID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(booking.VehicleID, booking.Start.At, booking.End.At).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))
		mock.ExpectQuery("INSERT INTO booking_events").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
		mock.ExpectCommit()

		event := &domain.BookingEvent{Type: domain.EventBookingAdmitted, Payload: []byte(`{"booking_id":0,"booking_code":"BK-ABCD1234"}`)}
		err := repo.CreateAdmitted(ctx, booking, event)
		assert.NoError(t, err)
		assert.Equal(t, int64(77), booking.ID)
		assert.Equal(t, int64(77), event.BookingID)
		assert.Equal(t, int64(101), event.ID)

		// The payload was marshalled before the insert assigned an id; the
		// generated id must still reach broker consumers.
		var payload struct {
			BookingID int64 `json:"booking_id"`
		}
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, int64(77), payload.BookingID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflict on recheck rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").
			WithArgs(sqlmock.AnyArg(), booking.VehicleID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(booking.VehicleID, booking.Start.At, booking.End.At).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.CreateAdmitted(ctx, booking, nil)
		assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	booking := &domain.Booking{
		ID:       5,
		Code:     "BK-ABCD1234",
		RenterID: 1,
		Status:   domain.BookingStatusCompleted,
	}

	t.Run("Writes when the stored status matches", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateStatus(ctx, booking, domain.BookingStatusActive, nil)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Stale status read maps to conflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdateStatus(ctx, booking, domain.BookingStatusActive, nil)
		assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_UpdatePayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(int64(210000), domain.PaymentStatusPartial, sqlmock.AnyArg(), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePayment(ctx, 5, 210000, domain.PaymentStatusPartial)
		assert.NoError(t, err)
	})

	t.Run("Unknown booking", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(int64(210000), domain.PaymentStatusPartial, sqlmock.AnyArg(), int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePayment(ctx, 999, 210000, domain.PaymentStatusPartial)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})
}
