package types

import (
	"github.com/samber/lo"
	ierr "github.com/tugohq/tugo/internal/errors"
)

// CouponStage represents where a coupon sits in the point-of-sale
// redemption workflow.
type CouponStage string

const (
	// CouponStageIssued is the initial stage: the coupon exists but no
	// operator has looked it up yet.
	CouponStageIssued CouponStage = "ISSUED"
	// CouponStageVerified means an operator resolved the code to a
	// customer; nothing has been mutated.
	CouponStageVerified CouponStage = "VERIFIED"
	// CouponStagePointsAdded means a bill amount was submitted and points
	// were credited.
	CouponStagePointsAdded CouponStage = "POINTS_ADDED"
	// CouponStagePointsRedeemed means accumulated points were spent.
	CouponStagePointsRedeemed CouponStage = "POINTS_REDEEMED"
	// CouponStageUsed is terminal: no further point operations are
	// permitted on this coupon.
	CouponStageUsed CouponStage = "USED"
)

func (s CouponStage) String() string {
	return string(s)
}

func (s CouponStage) Validate() error {
	allowed := []CouponStage{
		CouponStageIssued,
		CouponStageVerified,
		CouponStagePointsAdded,
		CouponStagePointsRedeemed,
		CouponStageUsed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid coupon stage").
			WithHint("Invalid coupon stage").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
				"stage":   s,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Terminal reports whether the stage accepts no further transitions.
func (s CouponStage) Terminal() bool {
	return s == CouponStageUsed
}

// CouponFilter represents the filter for listing coupons
type CouponFilter struct {
	*QueryFilter
	*TimeRangeFilter

	CouponIDs  []string `form:"coupon_ids"`
	CustomerID *string  `form:"customer_id"`
	IsUsed     *bool    `form:"is_used"`
}

// NewNoLimitCouponFilter creates a new coupon filter with no limit
func NewNoLimitCouponFilter() *CouponFilter {
	return &CouponFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the coupon filter
func (f *CouponFilter) Validate() error {
	if f == nil {
		return nil
	}

	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}

	return f.TimeRangeFilter.Validate()
}
