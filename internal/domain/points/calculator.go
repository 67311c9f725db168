// Package points holds the loyalty point award calculation. The functions
// here are pure: no I/O, no clock, deterministic for a given input.
package points

import (
	"github.com/shopspring/decimal"
	ierr "github.com/tugohq/tugo/internal/errors"
)

// Award converts a bill amount into an integer loyalty point award.
//
// A bill below the coupon's minimum order value does not qualify and earns
// zero points; the boundary is inclusive, so amount == minOrderValue
// qualifies. A qualifying bill earns floor(amount * coinRatio / 100).
//
// Inputs are validated up front: negative amounts, negative minimum order
// values and ratios outside [0,100] are rejected before any arithmetic
// happens. The caller is expected to have parsed the amount from the wire
// already, so a non-numeric value can never reach this function as a valid
// decimal.
func Award(amount decimal.Decimal, coinRatio int, minOrderValue decimal.Decimal) (int64, error) {
	if amount.IsNegative() {
		return 0, ierr.NewError("amount must be non-negative").
			WithHint("Bill amount must be non-negative").
			WithReportableDetails(map[string]any{
				"amount": amount,
			}).
			Mark(ierr.ErrValidation)
	}

	if coinRatio < 0 || coinRatio > 100 {
		return 0, ierr.NewError("coin ratio out of range").
			WithHint("Coin ratio must be between 0 and 100").
			WithReportableDetails(map[string]any{
				"coin_ratio": coinRatio,
			}).
			Mark(ierr.ErrValidation)
	}

	if minOrderValue.IsNegative() {
		return 0, ierr.NewError("min order value must be non-negative").
			WithHint("Minimum order value must be non-negative").
			WithReportableDetails(map[string]any{
				"min_order_value": minOrderValue,
			}).
			Mark(ierr.ErrValidation)
	}

	if amount.LessThan(minOrderValue) {
		return 0, nil
	}

	// Shift(-2) divides by 100 exactly, so the floor is taken on the
	// precise product rather than a rounded quotient.
	award := amount.Mul(decimal.NewFromInt(int64(coinRatio))).Shift(-2).Floor()

	return award.IntPart(), nil
}

// Qualifies reports whether the bill amount meets the coupon's minimum
// order value. Exposed separately so the redemption workflow can decide
// whether to consume the coupon without recomputing the award.
func Qualifies(amount decimal.Decimal, minOrderValue decimal.Decimal) bool {
	return !amount.IsNegative() && amount.GreaterThanOrEqual(minOrderValue)
}
