package postgres

import (
	"context"
	"database/sql"
	"time"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository"
)

type locationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

const sampleColumns = `id, subject_id, subject_kind, latitude, longitude, accuracy_m, speed_kph, heading, is_latest, recorded_on`

// Append demotes the previous latest row for the (subject, kind) pair and
// inserts the new sample in one transaction, preserving the at-most-one-latest
// invariant under concurrent pings.
func (r *locationRepository) Append(ctx context.Context, s *domain.LocationSample) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE location_samples SET is_latest = FALSE
		 WHERE subject_id = $1 AND subject_kind = $2 AND is_latest = TRUE`,
		s.SubjectID, s.SubjectKind); err != nil {
		return err
	}

	s.IsLatest = true
	if s.RecordedOn.IsZero() {
		s.RecordedOn = time.Now()
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO location_samples (subject_id, subject_kind, latitude, longitude, accuracy_m, speed_kph, heading, is_latest, recorded_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8) RETURNING id`,
		s.SubjectID, s.SubjectKind, s.Latitude, s.Longitude, s.AccuracyM, s.SpeedKPH, s.Heading, s.RecordedOn,
	).Scan(&s.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *locationRepository) Latest(ctx context.Context, kind domain.SubjectKind) ([]domain.LocationSample, error) {
	query := `SELECT ` + sampleColumns + ` FROM location_samples WHERE is_latest = TRUE`
	args := []interface{}{}
	if kind != "" {
		query += ` AND subject_kind = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY recorded_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []domain.LocationSample
	for rows.Next() {
		var s domain.LocationSample
		if err := rows.Scan(&s.ID, &s.SubjectID, &s.SubjectKind, &s.Latitude, &s.Longitude,
			&s.AccuracyM, &s.SpeedKPH, &s.Heading, &s.IsLatest, &s.RecordedOn); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

func (r *locationRepository) LatestForSubject(ctx context.Context, subjectID int64, kind domain.SubjectKind) (*domain.LocationSample, error) {
	s := &domain.LocationSample{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+sampleColumns+` FROM location_samples
		 WHERE subject_id = $1 AND subject_kind = $2 AND is_latest = TRUE`,
		subjectID, kind,
	).Scan(&s.ID, &s.SubjectID, &s.SubjectKind, &s.Latitude, &s.Longitude,
		&s.AccuracyM, &s.SpeedKPH, &s.Heading, &s.IsLatest, &s.RecordedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("location sample")
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
