package postgres

import (
	"context"
	"database/sql"
	"time"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

// Advisory-lock classes keep booking locks from colliding with any other
// advisory users of the same database.
const lockClassBooking int32 = 1729

type outboxRepository struct {
	db *sql.DB
}

func NewOutboxRepository(db *sql.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}

// insertEvent writes an outbox row inside the caller's transaction so the
// event is durable iff the booking change it describes is.
func insertEvent(ctx context.Context, tx *sql.Tx, e *domain.BookingEvent) error {
	e.Status = domain.EventStatusPending
	e.CreatedOn = time.Now()
	query := `INSERT INTO booking_events (booking_id, type, payload, status, attempts, created_on)
	          VALUES ($1, $2, $3, $4, 0, $5) RETURNING id`
	return tx.QueryRowContext(ctx, query, e.BookingID, e.Type, e.Payload, e.Status, e.CreatedOn).Scan(&e.ID)
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int32) ([]domain.BookingEvent, error) {
	query := `SELECT id, booking_id, type, payload, status, attempts, created_on, dispatched_on
	          FROM booking_events WHERE status = 'PENDING' ORDER BY created_on LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.BookingEvent
	for rows.Next() {
		var e domain.BookingEvent
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Type, &e.Payload, &e.Status, &e.Attempts, &e.CreatedOn, &e.DispatchedOn); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepository) MarkDispatched(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE booking_events SET status = 'DISPATCHED', attempts = attempts + 1, dispatched_on = $1 WHERE id = $2`,
		time.Now(), id)
	return err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE booking_events SET status = 'FAILED', attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

func (r *outboxRepository) RequeueFailed(ctx context.Context, maxAttempts int32) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE booking_events SET status = 'PENDING' WHERE status = 'FAILED' AND attempts < $1`, maxAttempts)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
