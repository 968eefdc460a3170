package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/repository/postgres"
)

func TestLocationRepository_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLocationRepository(db)
	ctx := context.Background()

	t.Run("Demotes previous latest then inserts", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE location_samples SET is_latest = FALSE").
			WithArgs(int64(1), domain.SubjectKindRenter).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO location_samples").
			WithArgs(int64(1), domain.SubjectKindRenter, 6.4281, 3.4219, nil, nil, nil, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
		mock.ExpectCommit()

		sample := &domain.LocationSample{
			SubjectID:   1,
			SubjectKind: domain.SubjectKindRenter,
			Latitude:    6.4281,
			Longitude:   3.4219,
		}
		err := repo.Append(ctx, sample)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), sample.ID)
		assert.True(t, sample.IsLatest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back when insert fails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE location_samples SET is_latest = FALSE").
			WithArgs(int64(1), domain.SubjectKindGuarantor).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO location_samples").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.Append(ctx, &domain.LocationSample{SubjectID: 1, SubjectKind: domain.SubjectKindGuarantor})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLocationRepository_Latest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLocationRepository(db)
	ctx := context.Background()

	cols := []string{"id", "subject_id", "subject_kind", "latitude", "longitude", "accuracy_m", "speed_kph", "heading", "is_latest", "recorded_on"}

	t.Run("Filters by kind", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM location_samples WHERE is_latest = TRUE AND subject_kind").
			WithArgs(domain.SubjectKindRenter).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(10, 1, "RENTER", 6.4281, 3.4219, nil, nil, nil, true, time.Now()))

		samples, err := repo.Latest(ctx, domain.SubjectKindRenter)
		assert.NoError(t, err)
		assert.Len(t, samples, 1)
		assert.Equal(t, int64(1), samples[0].SubjectID)
	})
}
