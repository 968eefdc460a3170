// Package pricing computes booking price breakdowns. All arithmetic is in
// integer cents so surcharge and discount composition stays exact.
package pricing

import (
	"time"

	"motorent-backend/internal/domain"
)

// WeekendSurchargePercent is applied to the base when the trip starts on a
// Saturday or Sunday. It is a flat surcharge on the start date, not per day.
const WeekendSurchargePercent = 15

// AdvancePercent is the upfront share for the partial-payment option.
const AdvancePercent = 35

// Quote is the price breakdown for a proposed booking.
type Quote struct {
	TotalDays             int32
	BaseCents             int64
	WeekendSurchargeCents int64
	AddOnTotalCents       int64
	SubtotalCents         int64
	DiscountCents         int64
	TotalCents            int64
	AdvanceCents          int64
}

// TotalDays returns ceil(end-start in days) with a minimum of 1. The caller
// must have checked end > start already.
func TotalDays(start, end time.Time) int32 {
	d := end.Sub(start)
	days := int64(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return int32(days)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// percentOf returns pct% of amount in cents, rounded half up.
func percentOf(amount int64, pct int64) int64 {
	return (amount*pct + 50) / 100
}

// Compute builds a quote from the vehicle's daily rate, the trip window and
// the add-on selection priced against the current sheet. The discount is not
// part of this step; ApplyDiscount folds it in once the coupon is validated.
func Compute(dailyRateCents int64, start, end time.Time, addOns domain.AddOnCounts, sheet *domain.PriceSheet) Quote {
	q := Quote{TotalDays: TotalDays(start, end)}
	q.BaseCents = dailyRateCents * int64(q.TotalDays)
	if IsWeekend(start) {
		q.WeekendSurchargeCents = percentOf(q.BaseCents, WeekendSurchargePercent)
	}
	q.AddOnTotalCents = int64(addOns.Driver)*sheet.DriverCents +
		int64(addOns.Bodyguard)*sheet.BodyguardCents +
		int64(addOns.Escort)*sheet.EscortCents +
		int64(addOns.Bouncer)*sheet.BouncerCents
	q.SubtotalCents = q.BaseCents + q.WeekendSurchargeCents + q.AddOnTotalCents
	q.TotalCents = q.SubtotalCents
	q.AdvanceCents = percentOf(q.TotalCents, AdvancePercent)
	return q
}

// ApplyDiscount subtracts a validated coupon discount, floors the total at
// zero and recomputes the advance split.
func (q *Quote) ApplyDiscount(discountCents int64) {
	if discountCents < 0 {
		discountCents = 0
	}
	if discountCents > q.SubtotalCents {
		discountCents = q.SubtotalCents
	}
	q.DiscountCents = discountCents
	q.TotalCents = q.SubtotalCents - discountCents
	q.AdvanceCents = percentOf(q.TotalCents, AdvancePercent)
}
