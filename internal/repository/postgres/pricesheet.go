package postgres

import (
	"context"
	"database/sql"
	"time"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type priceSheetRepository struct {
	db *sql.DB
}

func NewPriceSheetRepository(db *sql.DB) repository.PriceSheetRepository {
	return &priceSheetRepository{db: db}
}

const sheetQuery = `SELECT version, driver_cents, bodyguard_cents, escort_cents, bouncer_cents, updated_on
                    FROM addon_price_sheet WHERE singleton = TRUE`

func (r *priceSheetRepository) Get(ctx context.Context) (*domain.PriceSheet, error) {
	s := &domain.PriceSheet{}
	err := r.db.QueryRowContext(ctx, sheetQuery).Scan(
		&s.Version, &s.DriverCents, &s.BodyguardCents, &s.EscortCents, &s.BouncerCents, &s.UpdatedOn)
	if err == sql.ErrNoRows {
		return r.createDefault(ctx)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// createDefault lazily seeds the singleton row. A concurrent first access is
// absorbed by the unique constraint; we re-read on conflict.
func (r *priceSheetRepository) createDefault(ctx context.Context) (*domain.PriceSheet, error) {
	s := domain.DefaultPriceSheet()
	s.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO addon_price_sheet (singleton, version, driver_cents, bodyguard_cents, escort_cents, bouncer_cents, updated_on)
		 VALUES (TRUE, $1, $2, $3, $4, $5, $6)
		 ON CONFLICT (singleton) DO NOTHING`,
		s.Version, s.DriverCents, s.BodyguardCents, s.EscortCents, s.BouncerCents, s.UpdatedOn)
	if err != nil {
		return nil, err
	}
	err = r.db.QueryRowContext(ctx, sheetQuery).Scan(
		&s.Version, &s.DriverCents, &s.BodyguardCents, &s.EscortCents, &s.BouncerCents, &s.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *priceSheetRepository) Update(ctx context.Context, upd domain.PriceSheetUpdate) (*domain.PriceSheet, error) {
	cur, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if upd.DriverCents != nil {
		cur.DriverCents = *upd.DriverCents
	}
	if upd.BodyguardCents != nil {
		cur.BodyguardCents = *upd.BodyguardCents
	}
	if upd.EscortCents != nil {
		cur.EscortCents = *upd.EscortCents
	}
	if upd.BouncerCents != nil {
		cur.BouncerCents = *upd.BouncerCents
	}

	// Versioned write: the update only lands on the version it read, so two
	// concurrent admin edits cannot silently overwrite each other.
	res, err := r.db.ExecContext(ctx,
		`UPDATE addon_price_sheet
		 SET version = version + 1, driver_cents = $1, bodyguard_cents = $2,
		     escort_cents = $3, bouncer_cents = $4, updated_on = $5
		 WHERE singleton = TRUE AND version = $6`,
		cur.DriverCents, cur.BodyguardCents, cur.EscortCents, cur.BouncerCents, time.Now(), cur.Version)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.NewConflictError("price sheet was modified concurrently, retry the update")
	}
	return r.Get(ctx)
}
