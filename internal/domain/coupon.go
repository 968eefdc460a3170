package domain

import (
	"fmt"
	"strings"
	"time"
)

type DiscountKind string

const (
	DiscountKindPercent DiscountKind = "PERCENT"
	DiscountKindFlat    DiscountKind = "FLAT"
)

type Coupon struct {
	ID                int64        `json:"id"`
	Code              string       `json:"code"` // stored uppercase
	Kind              DiscountKind `json:"kind"`
	PercentOff        int32        `json:"percent_off,omitempty"`
	FlatOffCents      int64        `json:"flat_off_cents,omitempty"`
	MaxDiscountCents  int64        `json:"max_discount_cents,omitempty"` // 0 = uncapped
	MinSubtotalCents  int64        `json:"min_subtotal_cents"`
	VehicleCategories []string     `json:"vehicle_categories,omitempty"` // empty = any
	PerUserCap        int32        `json:"per_user_cap"` // 0 = unlimited
	UsageCount        int32        `json:"usage_count"`
	Active            bool         `json:"active"`
	ExpiresOn         *time.Time   `json:"expires_on,omitempty"`
	CreatedOn         time.Time    `json:"created_on"`
}

// NormalizeCouponCode uppercases a code for case-insensitive lookup.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// EligibleFor checks the coupon's own rules against an order. The returned
// reason is human-readable and safe to surface to the caller.
func (c *Coupon) EligibleFor(subtotalCents int64, vehicleCategory string, userRedemptions int32, now time.Time) (string, bool) {
	if !c.Active {
		return "coupon is no longer active", false
	}
	if c.ExpiresOn != nil && now.After(*c.ExpiresOn) {
		return "coupon has expired", false
	}
	if subtotalCents < c.MinSubtotalCents {
		return fmt.Sprintf("order total is below the coupon minimum of %d", c.MinSubtotalCents), false
	}
	if len(c.VehicleCategories) > 0 {
		found := false
		for _, cat := range c.VehicleCategories {
			if strings.EqualFold(cat, vehicleCategory) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Sprintf("coupon does not apply to %s vehicles", vehicleCategory), false
		}
	}
	if c.PerUserCap > 0 && userRedemptions >= c.PerUserCap {
		return "coupon usage limit reached for this account", false
	}
	return "", true
}

// DiscountFor computes the discount in cents for a subtotal. The result never
// exceeds the subtotal and respects the optional cap.
func (c *Coupon) DiscountFor(subtotalCents int64) int64 {
	var discount int64
	switch c.Kind {
	case DiscountKindPercent:
		discount = subtotalCents * int64(c.PercentOff) / 100
	case DiscountKindFlat:
		discount = c.FlatOffCents
	}
	if c.MaxDiscountCents > 0 && discount > c.MaxDiscountCents {
		discount = c.MaxDiscountCents
	}
	if discount > subtotalCents {
		discount = subtotalCents
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
