package coupon

import (
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/types"
)

// Coupon represents a discount code issued to one customer of one shop.
// The shop is the tenant; the coupon is created when the customer registers
// through the shop's QR flow and is consumed at most once at the point of
// sale.
type Coupon struct {
	ID         string `db:"id" json:"id"`
	Code       string `db:"code" json:"code"`
	CustomerID string `db:"customer_id" json:"customer_id"`

	// IsUsed flips to true exactly once, when an operator redeems the
	// coupon. It is never reset.
	IsUsed bool       `db:"is_used" json:"is_used"`
	UsedAt *time.Time `db:"used_at" json:"used_at,omitempty"`

	// MaxDiscount caps the discount as a percentage of the bill (0-100).
	MaxDiscount decimal.Decimal `db:"max_discount" json:"max_discount"`
	// CoinRatio is the percentage of the bill converted to loyalty
	// points (0-100).
	CoinRatio int `db:"coin_ratio" json:"coin_ratio"`
	// MinOrderValue is the minimum bill amount required for the coupon
	// to apply. The boundary is inclusive.
	MinOrderValue decimal.Decimal `db:"min_order_value" json:"min_order_value"`

	// ValidFrom bounds the start of the validity window. A nil value
	// means the coupon is valid from creation.
	ValidFrom *time.Time `db:"valid_from" json:"valid_from,omitempty"`

	types.BaseModel
}

func (c *Coupon) TableName() string {
	return "coupons"
}

func (c *Coupon) Validate() error {
	if c.Code == "" {
		return ierr.NewError("coupon code is required").
			WithHint("Coupon code is required").
			Mark(ierr.ErrValidation)
	}

	if c.CoinRatio < 0 || c.CoinRatio > 100 {
		return ierr.NewError("coin ratio out of range").
			WithHint("Coin ratio must be between 0 and 100").
			WithReportableDetails(map[string]any{
				"coin_ratio": c.CoinRatio,
			}).
			Mark(ierr.ErrValidation)
	}

	if c.MaxDiscount.IsNegative() || c.MaxDiscount.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("max discount out of range").
			WithHint("Max discount must be between 0 and 100").
			WithReportableDetails(map[string]any{
				"max_discount": c.MaxDiscount,
			}).
			Mark(ierr.ErrValidation)
	}

	if c.MinOrderValue.IsNegative() {
		return ierr.NewError("min order value must be non-negative").
			WithHint("Minimum order value must be non-negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// EnsureRedeemable checks that the coupon can enter the redemption
// workflow at the given time. A used coupon is terminal; a coupon before
// its validity window has not started yet.
func (c *Coupon) EnsureRedeemable(now time.Time) error {
	if c.IsUsed {
		return ierr.NewError("coupon already used").
			WithHint("This coupon has already been redeemed").
			WithReportableDetails(map[string]any{
				"code": c.Code,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return ierr.NewError("coupon not yet valid").
			WithHintf("This coupon becomes valid on %s", c.ValidFrom.Format(time.RFC3339)).
			Mark(ierr.ErrInvalidOperation)
	}

	return nil
}

// Stage derives the persisted workflow stage. VERIFIED and the two point
// stages are session-local to a running redemption; from storage alone a
// coupon is either still issued or terminally used.
func (c *Coupon) Stage() types.CouponStage {
	if c.IsUsed {
		return types.CouponStageUsed
	}
	return types.CouponStageIssued
}
