package outbox_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"motorent-backend/internal/config"
	"motorent-backend/internal/domain"
	"motorent-backend/internal/outbox"
	"motorent-backend/internal/queue"
)

type mockOutboxRepo struct{ mock.Mock }

func (m *mockOutboxRepo) ListPending(ctx context.Context, limit int32) ([]domain.BookingEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.BookingEvent), args.Error(1)
}
func (m *mockOutboxRepo) MarkDispatched(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *mockOutboxRepo) RequeueFailed(ctx context.Context, maxAttempts int32) (int64, error) {
	args := m.Called(ctx, maxAttempts)
	return args.Get(0).(int64), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) CreateAdmitted(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error {
	args := m.Called(ctx, b, event)
	return args.Error(0)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingRepo) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, b *domain.Booking, expected domain.BookingStatus, event *domain.BookingEvent) error {
	args := m.Called(ctx, b, expected, event)
	return args.Error(0)
}
func (m *mockBookingRepo) UpdatePayment(ctx context.Context, id int64, paidCents int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, paidCents, status)
	return args.Error(0)
}
func (m *mockBookingRepo) HasOverlap(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, vehicleID, start, end)
	return args.Bool(0), args.Error(1)
}
func (m *mockBookingRepo) List(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *mockBookingRepo) CountCompletedByRenter(ctx context.Context, renterID int64) (int32, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *mockBookingRepo) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *mockBookingRepo) ListActivePastEnd(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type mockNotificationSvc struct{ mock.Mock }

func (m *mockNotificationSvc) Notify(ctx context.Context, userID int64, title, message string, attrs map[string]string) {
	m.Called(ctx, userID, title, message, attrs)
}
func (m *mockNotificationSvc) List(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *mockNotificationSvc) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

type mockReferralSvc struct{ mock.Mock }

func (m *mockReferralSvc) AwardOnCompletion(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type mockPointsSvc struct{ mock.Mock }

func (m *mockPointsSvc) ReverseForBooking(ctx context.Context, bookingID int64, reason string) error {
	args := m.Called(ctx, bookingID, reason)
	return args.Error(0)
}
func (m *mockPointsSvc) Balance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newDispatcherFixture() (*mockOutboxRepo, *mockBookingRepo, *mockNotificationSvc, *mockReferralSvc, *mockPointsSvc, *outbox.Dispatcher) {
	outboxRepo := new(mockOutboxRepo)
	bookingRepo := new(mockBookingRepo)
	noteSvc := new(mockNotificationSvc)
	referralSvc := new(mockReferralSvc)
	pointsSvc := new(mockPointsSvc)
	d := outbox.NewDispatcher(outboxRepo, bookingRepo, noteSvc, referralSvc, pointsSvc,
		queue.NewPublisher(config.RabbitMQConfig{}),
		config.OutboxConfig{PollIntervalSeconds: 1, BatchSize: 10, MaxAttempts: 5})
	return outboxRepo, bookingRepo, noteSvc, referralSvc, pointsSvc, d
}

func TestDispatcher_DrainOnce(t *testing.T) {
	ctx := context.Background()
	booking := &domain.Booking{ID: 5, Code: "BK-TEST1234", RenterID: 1, Status: domain.BookingStatusCompleted}

	t.Run("Completed event triggers notification and referral", func(t *testing.T) {
		outboxRepo, bookingRepo, noteSvc, referralSvc, _, d := newDispatcherFixture()
		events := []domain.BookingEvent{{ID: 101, BookingID: 5, Type: domain.EventBookingCompleted, Payload: []byte(`{}`)}}

		outboxRepo.On("ListPending", ctx, int32(10)).Return(events, nil)
		bookingRepo.On("GetByID", ctx, int64(5)).Return(booking, nil)
		noteSvc.On("Notify", ctx, int64(1), mock.Anything, mock.Anything, mock.Anything).Return()
		referralSvc.On("AwardOnCompletion", ctx, booking).Return(nil)
		outboxRepo.On("MarkDispatched", ctx, int64(101)).Return(nil)

		d.DrainOnce(ctx)

		outboxRepo.AssertCalled(t, "MarkDispatched", ctx, int64(101))
		outboxRepo.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything)
	})

	t.Run("Cancelled event reverses guarantor points", func(t *testing.T) {
		outboxRepo, bookingRepo, noteSvc, _, pointsSvc, d := newDispatcherFixture()
		cancelled := &domain.Booking{ID: 5, Code: "BK-TEST1234", RenterID: 1, Status: domain.BookingStatusCancelled, CancelReason: "plans changed"}
		events := []domain.BookingEvent{{ID: 102, BookingID: 5, Type: domain.EventBookingCancelled, Payload: []byte(`{"reason":"plans changed"}`)}}

		outboxRepo.On("ListPending", ctx, int32(10)).Return(events, nil)
		bookingRepo.On("GetByID", ctx, int64(5)).Return(cancelled, nil)
		noteSvc.On("Notify", ctx, int64(1), mock.Anything, mock.Anything, mock.Anything).Return()
		pointsSvc.On("ReverseForBooking", ctx, int64(5), "plans changed").Return(nil)
		outboxRepo.On("MarkDispatched", ctx, int64(102)).Return(nil)

		d.DrainOnce(ctx)

		pointsSvc.AssertCalled(t, "ReverseForBooking", ctx, int64(5), "plans changed")
	})

	t.Run("Handler failure marks the event failed", func(t *testing.T) {
		outboxRepo, bookingRepo, noteSvc, referralSvc, _, d := newDispatcherFixture()
		events := []domain.BookingEvent{{ID: 103, BookingID: 5, Type: domain.EventBookingCompleted, Payload: []byte(`{}`)}}

		outboxRepo.On("ListPending", ctx, int32(10)).Return(events, nil)
		bookingRepo.On("GetByID", ctx, int64(5)).Return(booking, nil)
		noteSvc.On("Notify", ctx, int64(1), mock.Anything, mock.Anything, mock.Anything).Return()
		referralSvc.On("AwardOnCompletion", ctx, booking).Return(assert.AnError)
		outboxRepo.On("MarkFailed", ctx, int64(103)).Return(nil)

		d.DrainOnce(ctx)

		outboxRepo.AssertCalled(t, "MarkFailed", ctx, int64(103))
		outboxRepo.AssertNotCalled(t, "MarkDispatched", mock.Anything, mock.Anything)
	})
}
