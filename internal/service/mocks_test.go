package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"motorent-backend/internal/domain"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateAdmitted(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error {
	args := m.Called(ctx, b, event)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, b *domain.Booking, expected domain.BookingStatus, event *domain.BookingEvent) error {
	args := m.Called(ctx, b, expected, event)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdatePayment(ctx context.Context, id int64, paidCents int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, paidCents, status)
	return args.Error(0)
}
func (m *MockBookingRepo) HasOverlap(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, vehicleID, start, end)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) List(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) CountCompletedByRenter(ctx context.Context, renterID int64) (int32, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListActivePastEnd(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

// MockCouponRepo
type MockCouponRepo struct {
	mock.Mock
}

func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
func (m *MockCouponRepo) CountRedemptionsByUser(ctx context.Context, couponID, userID int64) (int32, error) {
	args := m.Called(ctx, couponID, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockCouponRepo) IncrementUsage(ctx context.Context, couponID, userID, bookingID int64) error {
	args := m.Called(ctx, couponID, userID, bookingID)
	return args.Error(0)
}

// MockPriceSheetRepo
type MockPriceSheetRepo struct {
	mock.Mock
}

func (m *MockPriceSheetRepo) Get(ctx context.Context) (*domain.PriceSheet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceSheet), args.Error(1)
}
func (m *MockPriceSheetRepo) Update(ctx context.Context, upd domain.PriceSheetUpdate) (*domain.PriceSheet, error) {
	args := m.Called(ctx, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceSheet), args.Error(1)
}

// MockPointsRepo
type MockPointsRepo struct {
	mock.Mock
}

func (m *MockPointsRepo) CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockPointsRepo) HasRewardForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPointsRepo) ListCreditsForBooking(ctx context.Context, bookingID int64) ([]domain.PointsTransaction, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.PointsTransaction), args.Error(1)
}
func (m *MockPointsRepo) HasReversalForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPointsRepo) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockLocationRepo
type MockLocationRepo struct {
	mock.Mock
}

func (m *MockLocationRepo) Append(ctx context.Context, s *domain.LocationSample) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockLocationRepo) Latest(ctx context.Context, kind domain.SubjectKind) ([]domain.LocationSample, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).([]domain.LocationSample), args.Error(1)
}
func (m *MockLocationRepo) LatestForSubject(ctx context.Context, subjectID int64, kind domain.SubjectKind) (*domain.LocationSample, error) {
	args := m.Called(ctx, subjectID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationSample), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID int64, title, message string, attrs map[string]string) {
	m.Called(ctx, userID, title, message, attrs)
}
func (m *MockNotificationService) List(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}
