package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCouponCode("  save10 "))
	assert.Equal(t, "SAVE10", NormalizeCouponCode("SAVE10"))
}

func TestCoupon_EligibleFor(t *testing.T) {
	now := time.Date(2026, 1, 12, 12, 0, 0, 0, time.UTC)
	base := Coupon{Code: "SAVE10", Kind: DiscountKindPercent, PercentOff: 10, Active: true}

	t.Run("Active coupon passes", func(t *testing.T) {
		c := base
		_, ok := c.EligibleFor(100000, "SUV", 0, now)
		assert.True(t, ok)
	})

	t.Run("Inactive", func(t *testing.T) {
		c := base
		c.Active = false
		reason, ok := c.EligibleFor(100000, "SUV", 0, now)
		assert.False(t, ok)
		assert.Contains(t, reason, "no longer active")
	})

	t.Run("Expired", func(t *testing.T) {
		c := base
		expired := now.Add(-time.Hour)
		c.ExpiresOn = &expired
		_, ok := c.EligibleFor(100000, "SUV", 0, now)
		assert.False(t, ok)
	})

	t.Run("Below minimum subtotal", func(t *testing.T) {
		c := base
		c.MinSubtotalCents = 200000
		_, ok := c.EligibleFor(100000, "SUV", 0, now)
		assert.False(t, ok)
	})

	t.Run("Category mismatch", func(t *testing.T) {
		c := base
		c.VehicleCategories = []string{"LUXURY", "BUS"}
		reason, ok := c.EligibleFor(100000, "SUV", 0, now)
		assert.False(t, ok)
		assert.Contains(t, reason, "SUV")
	})

	t.Run("Category match is case-insensitive", func(t *testing.T) {
		c := base
		c.VehicleCategories = []string{"suv"}
		_, ok := c.EligibleFor(100000, "SUV", 0, now)
		assert.True(t, ok)
	})

	t.Run("Per-user cap reached", func(t *testing.T) {
		c := base
		c.PerUserCap = 2
		_, ok := c.EligibleFor(100000, "SUV", 2, now)
		assert.False(t, ok)
		_, ok = c.EligibleFor(100000, "SUV", 1, now)
		assert.True(t, ok)
	})
}

func TestCoupon_DiscountFor(t *testing.T) {
	t.Run("Percent", func(t *testing.T) {
		c := Coupon{Kind: DiscountKindPercent, PercentOff: 10}
		assert.Equal(t, int64(74000), c.DiscountFor(740000))
	})

	t.Run("Percent with cap", func(t *testing.T) {
		c := Coupon{Kind: DiscountKindPercent, PercentOff: 50, MaxDiscountCents: 100000}
		assert.Equal(t, int64(100000), c.DiscountFor(740000))
	})

	t.Run("Flat", func(t *testing.T) {
		c := Coupon{Kind: DiscountKindFlat, FlatOffCents: 50000}
		assert.Equal(t, int64(50000), c.DiscountFor(740000))
	})

	t.Run("Flat never exceeds subtotal", func(t *testing.T) {
		c := Coupon{Kind: DiscountKindFlat, FlatOffCents: 900000}
		assert.Equal(t, int64(740000), c.DiscountFor(740000))
	})
}
