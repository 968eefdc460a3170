package domain

import "time"

// Default unit prices used when the sheet row is created lazily.
const (
	DefaultDriverCents    int64 = 50000
	DefaultBodyguardCents int64 = 80000
	DefaultEscortCents    int64 = 120000
	DefaultBouncerCents   int64 = 60000
)

// PriceSheet is the single current price list for ancillary services.
// Updates bump Version; bookings snapshot the prices they were quoted with.
type PriceSheet struct {
	Version        int32     `json:"version"`
	DriverCents    int64     `json:"driver_cents"`
	BodyguardCents int64     `json:"bodyguard_cents"`
	EscortCents    int64     `json:"escort_cents"`
	BouncerCents   int64     `json:"bouncer_cents"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// DefaultPriceSheet returns the sheet created on first access.
func DefaultPriceSheet() *PriceSheet {
	return &PriceSheet{
		Version:        1,
		DriverCents:    DefaultDriverCents,
		BodyguardCents: DefaultBodyguardCents,
		EscortCents:    DefaultEscortCents,
		BouncerCents:   DefaultBouncerCents,
	}
}

// PriceSheetUpdate carries a partial admin price change; nil fields keep the
// current value.
type PriceSheetUpdate struct {
	DriverCents    *int64 `json:"driver_cents,omitempty"`
	BodyguardCents *int64 `json:"bodyguard_cents,omitempty"`
	EscortCents    *int64 `json:"escort_cents,omitempty"`
	BouncerCents   *int64 `json:"bouncer_cents,omitempty"`
}

// IsZero reports whether the update changes nothing.
func (u PriceSheetUpdate) IsZero() bool {
	return u.DriverCents == nil && u.BodyguardCents == nil && u.EscortCents == nil && u.BouncerCents == nil
}
