package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tugohq/tugo/internal/domain/ledger"
	"github.com/tugohq/tugo/internal/types"
	"github.com/tugohq/tugo/internal/validator"
)

// LookupCouponRequest resolves a coupon code presented at the point of
// sale.
type LookupCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type LookupCouponResponse struct {
	Coupon   *CouponResponse   `json:"coupon"`
	Customer *CustomerResponse `json:"customer"`
	Balance  int64             `json:"balance"`
	Stage    types.CouponStage `json:"stage"`
}

// CreditPointsRequest converts a bill amount into loyalty points for the
// customer holding the coupon.
type CreditPointsRequest struct {
	Code   string          `json:"code" validate:"required"`
	Amount decimal.Decimal `json:"amount"`

	// Consume controls whether a successful credit spends the coupon.
	// Defaults to true when omitted.
	Consume *bool `json:"consume,omitempty"`

	// IdempotencyKey de-duplicates retries of the same submission. The
	// server derives one from the request when empty.
	IdempotencyKey string `json:"idempotency_key,omitempty"`

	// AttemptID distinguishes deliberate re-submissions of the same bill
	// when the client does not supply its own idempotency key.
	AttemptID string `json:"attempt_id,omitempty"`
}

type CreditPointsResponse struct {
	Points   int64             `json:"points"`
	Consumed bool              `json:"consumed"`
	Balance  int64             `json:"balance"`
	Stage    types.CouponStage `json:"stage"`
	Entry    *ledger.Entry     `json:"entry,omitempty"`
}

// RedeemPointsRequest spends accumulated points against the customer's
// balance.
type RedeemPointsRequest struct {
	Code   string `json:"code" validate:"required"`
	Points int64  `json:"points" validate:"required,gt=0"`

	IdempotencyKey string `json:"idempotency_key,omitempty"`
	AttemptID      string `json:"attempt_id,omitempty"`
}

type RedeemPointsResponse struct {
	Points  int64             `json:"points"`
	Balance int64             `json:"balance"`
	Stage   types.CouponStage `json:"stage"`
	Entry   *ledger.Entry     `json:"entry,omitempty"`
}

func (r *LookupCouponRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreditPointsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ShouldConsume resolves the consume flag with its default.
func (r *CreditPointsRequest) ShouldConsume() bool {
	if r.Consume == nil {
		return true
	}
	return *r.Consume
}

func (r *RedeemPointsRequest) Validate() error {
	return validator.ValidateRequest(r)
}
