package service

import (
	"context"
	"fmt"
	"time"

	"motorent-backend/internal/domain"
)

// Transition applies one state-machine event to a booking. Guards run against
// the freshly loaded row; the status update and the outbox event land in the
// same transaction.
func (s *bookingService) Transition(ctx context.Context, actor Actor, bookingID int64, event TransitionEvent, reason string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && b.RenterID != actor.UserID {
		return nil, domain.NewForbiddenError("booking belongs to another account")
	}
	if b.Status.IsTerminal() {
		return nil, domain.NewConflictError(fmt.Sprintf("booking %s is already %s", b.Code, b.Status))
	}

	prev := b.Status
	now := time.Now().UTC()
	var eventType domain.EventType

	switch event {
	case EventConfirm:
		if !actor.Admin {
			return nil, domain.NewForbiddenError("only an administrator can confirm a booking")
		}
		if b.Status != domain.BookingStatusPending {
			return nil, domain.NewConflictError(fmt.Sprintf("cannot confirm a %s booking", b.Status))
		}
		b.Status = domain.BookingStatusConfirmed
		b.ConfirmedOn = &now
		eventType = domain.EventBookingConfirmed

	case EventStartTrip:
		if b.Status != domain.BookingStatusConfirmed {
			return nil, domain.NewConflictError(fmt.Sprintf("cannot start a trip on a %s booking", b.Status))
		}
		if b.PaymentStatus == domain.PaymentStatusPending {
			return nil, domain.NewPaymentRequiredError("payment must be received before the trip starts")
		}
		b.Status = domain.BookingStatusActive
		b.TripStartedOn = &now
		b.TrackingEnabled = true
		eventType = domain.EventTripStarted

	case EventEndTrip:
		if b.Status != domain.BookingStatusActive {
			return nil, domain.NewConflictError(fmt.Sprintf("cannot end a trip on a %s booking", b.Status))
		}
		b.Status = domain.BookingStatusCompleted
		b.TripEndedOn = &now
		b.CompletedOn = &now
		b.TrackingEnabled = false
		eventType = domain.EventBookingCompleted

	case EventComplete:
		if !actor.Admin {
			return nil, domain.NewForbiddenError("only an administrator can force-complete a booking")
		}
		b.Status = domain.BookingStatusCompleted
		if b.TripEndedOn == nil {
			b.TripEndedOn = &now
		}
		b.CompletedOn = &now
		b.TrackingEnabled = false
		eventType = domain.EventBookingCompleted

	case EventCancel:
		b.Status = domain.BookingStatusCancelled
		b.CancelledOn = &now
		b.CancelReason = reason
		b.CancelledBy = cancelActorFor(actor)
		b.TrackingEnabled = false
		eventType = domain.EventBookingCancelled

	default:
		return nil, domain.NewValidationError("unknown transition event", "event")
	}

	// The repository rechecks prev so a racing transition that committed
	// after our read turns into a conflict instead of a silent overwrite.
	outboxEvent := newBookingEvent(eventType, b, reason, actor)
	if err := s.bookingRepo.UpdateStatus(ctx, b, prev, outboxEvent); err != nil {
		return nil, err
	}
	return b, nil
}

func cancelActorFor(actor Actor) domain.CancelActor {
	switch {
	case actor.UserID == 0:
		return domain.CancelActorSystem
	case actor.Admin:
		return domain.CancelActorAdmin
	default:
		return domain.CancelActorRenter
	}
}
