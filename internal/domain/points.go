package domain

import "time"

type PointsType string

const (
	PointsTypeReferralReward    PointsType = "REFERRAL_REWARD"
	PointsTypeGuarantorCredit   PointsType = "GUARANTOR_CREDIT"
	PointsTypeGuarantorReversal PointsType = "GUARANTOR_REVERSAL"
	PointsTypeAdjustment        PointsType = "ADJUSTMENT"
)

// ReferralRewardPoints is credited to the referrer when their referred renter
// completes a first trip.
const ReferralRewardPoints int64 = 50

type PointsTransaction struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	Points           int64      `json:"points"` // positive credit, negative reversal
	Type             PointsType `json:"type"`
	RelatedBookingID *int64     `json:"related_booking_id,omitempty"`
	Description      string     `json:"description"`
	CreatedOn        time.Time  `json:"created_on"`
}
