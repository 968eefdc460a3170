package jobs

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"motorent-backend/internal/logger"
	"motorent-backend/internal/service"
)

// ExpireStalePendingBookings cancels PENDING bookings that were never
// confirmed within the configured window. Each cancellation goes through the
// lifecycle so the usual cancelled-event side effects fire.
func (jr *JobRunner) ExpireStalePendingBookings() {
	jr.runWithRecovery("ExpireStalePendingBookings", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-time.Duration(jr.config.Booking.StalePendingHours) * time.Hour)

		stale, err := jr.store.BookingRepository.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending bookings", "error", err)
			return
		}

		count := 0
		systemActor := service.Actor{UserID: 0, Admin: true}
		reason := fmt.Sprintf("not confirmed within %d hours", jr.config.Booking.StalePendingHours)
		for _, b := range stale {
			if _, err := jr.services.Booking.Transition(ctx, systemActor, b.ID, service.EventCancel, reason); err != nil {
				logger.Error("Failed to expire pending booking", "booking_id", b.ID, "error", err)
				continue
			}
			count++
		}

		logger.Info("Expired stale pending bookings", "count", count, "cutoff", cutoff.Format(time.RFC3339))
	})
}

// SendReturnReminders notifies renters whose trip window has elapsed while
// the booking is still ACTIVE.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		overdue, err := jr.store.BookingRepository.ListActivePastEnd(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to list overdue active bookings", "error", err)
			return
		}

		for _, b := range overdue {
			jr.services.Notification.Notify(ctx, b.RenterID,
				"Vehicle return overdue",
				fmt.Sprintf("The trip window for booking %s ended on %s. Please return the vehicle.", b.Code, b.End.At.Format("Jan 2, 15:04")),
				map[string]string{
					"type":         "return_reminder",
					"booking_id":   strconv.FormatInt(b.ID, 10),
					"booking_code": b.Code,
				})
		}

		logger.Info("Sent return reminders", "count", len(overdue))
	})
}

// RetryFailedEvents requeues FAILED outbox events that are still under the
// attempt cap so the dispatcher picks them up again.
func (jr *JobRunner) RetryFailedEvents() {
	jr.runWithRecovery("RetryFailedEvents", func() {
		ctx := context.Background()

		requeued, err := jr.store.OutboxRepository.RequeueFailed(ctx, jr.config.Outbox.MaxAttempts)
		if err != nil {
			logger.Error("Failed to requeue failed events", "error", err)
			return
		}

		logger.Info("Requeued failed outbox events", "count", requeued)
	})
}
