package domain

import (
	"encoding/json"
	"time"
)

// EventType identifies which side effects an outbox event triggers.
type EventType string

const (
	EventBookingAdmitted  EventType = "booking.admitted"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventTripStarted      EventType = "booking.trip_started"
	EventBookingCompleted EventType = "booking.completed"
	EventBookingCancelled EventType = "booking.cancelled"
)

type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusDispatched EventStatus = "DISPATCHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// BookingEvent is an outbox row. It is written in the same transaction as the
// booking change it describes and consumed by the dispatcher.
type BookingEvent struct {
	ID           int64       `json:"id"`
	BookingID    int64       `json:"booking_id"`
	Type         EventType   `json:"type"`
	Payload      []byte      `json:"payload"`
	Status       EventStatus `json:"status"`
	Attempts     int32       `json:"attempts"`
	CreatedOn    time.Time   `json:"created_on"`
	DispatchedOn *time.Time  `json:"dispatched_on,omitempty"`
}

// StampBookingID records a freshly generated booking id on the event and
// inside its payload. Admission events are built before the insert hands out
// an id, so the payload carries a placeholder until this runs.
func (e *BookingEvent) StampBookingID(id int64) {
	e.BookingID = id
	var body map[string]any
	if err := json.Unmarshal(e.Payload, &body); err != nil {
		return
	}
	body["booking_id"] = id
	if out, err := json.Marshal(body); err == nil {
		e.Payload = out
	}
}
