// Package outbox drains booking_events rows written by the repositories in
// the same transaction as the booking change. Draining decouples durable
// state changes from notification, reward, and broker side effects, and makes
// those side effects retryable.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"motorent-backend/internal/config"
	"motorent-backend/internal/domain"
	"motorent-backend/internal/logger"
	"motorent-backend/internal/queue"
	"motorent-backend/internal/repository"
	"motorent-backend/internal/service"
)

// Dispatcher polls pending events and runs their side effects. Handlers must
// be idempotent; a FAILED event is requeued and delivered again.
type Dispatcher struct {
	outboxRepo      repository.OutboxRepository
	bookingRepo     repository.BookingRepository
	notificationSvc service.NotificationService
	referralSvc     service.ReferralService
	pointsSvc       service.PointsService
	publisher       *queue.Publisher

	pollInterval time.Duration
	batchSize    int32
}

func NewDispatcher(
	outboxRepo repository.OutboxRepository,
	bookingRepo repository.BookingRepository,
	notificationSvc service.NotificationService,
	referralSvc service.ReferralService,
	pointsSvc service.PointsService,
	publisher *queue.Publisher,
	cfg config.OutboxConfig,
) *Dispatcher {
	return &Dispatcher{
		outboxRepo:      outboxRepo,
		bookingRepo:     bookingRepo,
		notificationSvc: notificationSvc,
		referralSvc:     referralSvc,
		pointsSvc:       pointsSvc,
		publisher:       publisher,
		pollInterval:    time.Duration(cfg.PollIntervalSeconds) * time.Second,
		batchSize:       cfg.BatchSize,
	}
}

// Run polls until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	logger.Info("Outbox dispatcher started", "poll_interval", d.pollInterval.String())
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Outbox dispatcher stopped")
			return
		case <-ticker.C:
			d.DrainOnce(ctx)
		}
	}
}

// DrainOnce processes one batch of pending events.
func (d *Dispatcher) DrainOnce(ctx context.Context) {
	events, err := d.outboxRepo.ListPending(ctx, d.batchSize)
	if err != nil {
		logger.Error("Failed to list pending events", "error", err)
		return
	}
	for i := range events {
		event := &events[i]
		if err := d.dispatch(ctx, event); err != nil {
			logger.Error("Event dispatch failed", "event_id", event.ID, "type", event.Type, "error", err)
			if err := d.outboxRepo.MarkFailed(ctx, event.ID); err != nil {
				logger.Error("Failed to mark event failed", "event_id", event.ID, "error", err)
			}
			continue
		}
		if err := d.outboxRepo.MarkDispatched(ctx, event.ID); err != nil {
			logger.Error("Failed to mark event dispatched", "event_id", event.ID, "error", err)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, event *domain.BookingEvent) error {
	booking, err := d.bookingRepo.GetByID(ctx, event.BookingID)
	if err != nil {
		return fmt.Errorf("load booking %d: %w", event.BookingID, err)
	}

	switch event.Type {
	case domain.EventBookingAdmitted:
		d.notify(ctx, booking, "Booking received",
			fmt.Sprintf("Booking %s was received and is awaiting confirmation. Total: %s.", booking.Code, formatCents(booking.TotalCents)))

	case domain.EventBookingConfirmed:
		d.notify(ctx, booking, "Booking confirmed",
			fmt.Sprintf("Booking %s is confirmed. Amount due before pickup: %s.", booking.Code, formatCents(dueCents(booking))))

	case domain.EventTripStarted:
		d.notify(ctx, booking, "Trip started",
			fmt.Sprintf("Your trip for booking %s has started. Location tracking is now on.", booking.Code))

	case domain.EventBookingCompleted:
		d.notify(ctx, booking, "Trip completed",
			fmt.Sprintf("Booking %s is complete. Thanks for riding with us.", booking.Code))
		if err := d.referralSvc.AwardOnCompletion(ctx, booking); err != nil {
			return fmt.Errorf("referral award: %w", err)
		}

	case domain.EventBookingCancelled:
		reason := cancelReason(event, booking)
		d.notify(ctx, booking, "Booking cancelled",
			fmt.Sprintf("Booking %s was cancelled: %s", booking.Code, reason))
		if err := d.pointsSvc.ReverseForBooking(ctx, booking.ID, reason); err != nil {
			return fmt.Errorf("points reversal: %w", err)
		}

	default:
		logger.Warn("Unknown event type, dispatching without side effects", "event_id", event.ID, "type", event.Type)
	}

	// Broker fan-out is best effort and never fails the event.
	if err := d.publisher.Publish(ctx, event); err != nil {
		logger.SideEffectFailure("event_publish", err, "event_id", event.ID, "type", event.Type)
	}
	return nil
}

func (d *Dispatcher) notify(ctx context.Context, b *domain.Booking, title, message string) {
	d.notificationSvc.Notify(ctx, b.RenterID, title, message, map[string]string{
		"booking_id":   strconv.FormatInt(b.ID, 10),
		"booking_code": b.Code,
		"status":       string(b.Status),
	})
}

func cancelReason(event *domain.BookingEvent, b *domain.Booking) string {
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err == nil && payload.Reason != "" {
		return payload.Reason
	}
	if b.CancelReason != "" {
		return b.CancelReason
	}
	return "no reason given"
}

func dueCents(b *domain.Booking) int64 {
	if b.PaymentOption == domain.PaymentOptionAdvance {
		return b.AdvanceCents
	}
	return b.TotalCents
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
