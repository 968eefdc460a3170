package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition may leave the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type PaymentOption string

const (
	PaymentOptionFull    PaymentOption = "FULL"
	PaymentOptionAdvance PaymentOption = "ADVANCE"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

type CancelActor string

const (
	CancelActorRenter CancelActor = "RENTER"
	CancelActorAdmin  CancelActor = "ADMIN"
	CancelActorSystem CancelActor = "SYSTEM"
)

// TripPoint is one end of the trip window.
type TripPoint struct {
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	At        time.Time `json:"at"`
}

// AddOnCounts holds the requested quantity per ancillary service.
type AddOnCounts struct {
	Driver    uint `json:"driver"`
	Bodyguard uint `json:"bodyguard"`
	Escort    uint `json:"escort"`
	Bouncer   uint `json:"bouncer"`
}

// IsZero reports whether no add-on was requested.
func (c AddOnCounts) IsZero() bool {
	return c.Driver == 0 && c.Bodyguard == 0 && c.Escort == 0 && c.Bouncer == 0
}

type Booking struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	RenterID  int64  `json:"renter_id"`
	VehicleID int64  `json:"vehicle_id"`

	Start     TripPoint `json:"start"`
	End       TripPoint `json:"end"`
	TotalDays int32     `json:"total_days"`

	// Price snapshot fields, captured at admission time in integer cents.
	// Later price-sheet or coupon edits never change an admitted booking.
	BaseCents             int64       `json:"base_cents"`
	WeekendSurchargeCents int64       `json:"weekend_surcharge_cents"`
	AddOnTotalCents       int64       `json:"addon_total_cents"`
	AddOns                AddOnCounts `json:"addons"`
	CouponCode            string      `json:"coupon_code,omitempty"`
	DiscountCents         int64       `json:"discount_cents"`
	TotalCents            int64       `json:"total_cents"`

	PaymentOption  PaymentOption `json:"payment_option"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	AdvanceCents   int64         `json:"advance_cents"`
	PaidCents      int64         `json:"paid_cents"`
	RemainingCents int64         `json:"remaining_cents"`

	Status          BookingStatus `json:"status"`
	TrackingEnabled bool          `json:"tracking_enabled"`

	ConfirmedOn   *time.Time `json:"confirmed_on,omitempty"`
	TripStartedOn *time.Time `json:"trip_started_on,omitempty"`
	TripEndedOn   *time.Time `json:"trip_ended_on,omitempty"`
	CompletedOn   *time.Time `json:"completed_on,omitempty"`
	CancelledOn   *time.Time `json:"cancelled_on,omitempty"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
	CancelledBy   CancelActor `json:"cancelled_by,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
