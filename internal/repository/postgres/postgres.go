package postgres

import (
	"database/sql"

	"motorent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.BookingRepository
	repository.CouponRepository
	repository.PriceSheetRepository
	repository.LocationRepository
	repository.PointsRepository
	repository.NotificationRepository
	repository.OutboxRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		BookingRepository:      NewBookingRepository(db),
		CouponRepository:       NewCouponRepository(db),
		PriceSheetRepository:   NewPriceSheetRepository(db),
		LocationRepository:     NewLocationRepository(db),
		PointsRepository:       NewPointsRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		OutboxRepository:       NewOutboxRepository(db),
	}
}
