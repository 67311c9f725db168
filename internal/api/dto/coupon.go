package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tugohq/tugo/internal/domain/coupon"
	"github.com/tugohq/tugo/internal/types"
	"github.com/tugohq/tugo/internal/validator"
)

type CreateCouponRequest struct {
	CustomerID    string          `json:"customer_id" validate:"required"`
	MaxDiscount   decimal.Decimal `json:"max_discount"`
	CoinRatio     int             `json:"coin_ratio" validate:"gte=0,lte=100"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	ValidFrom     *time.Time      `json:"valid_from,omitempty"`
	// Code is optional; the server generates one when it is empty.
	Code string `json:"code" validate:"omitempty,max=32"`
}

type UpdateCouponRequest struct {
	MaxDiscount   *decimal.Decimal `json:"max_discount"`
	CoinRatio     *int             `json:"coin_ratio" validate:"omitempty,gte=0,lte=100"`
	MinOrderValue *decimal.Decimal `json:"min_order_value"`
	ValidFrom     *time.Time       `json:"valid_from,omitempty"`
}

type CouponResponse struct {
	*coupon.Coupon
	Stage types.CouponStage `json:"stage"`
}

// ListCouponsResponse represents the response for listing coupons
type ListCouponsResponse = types.ListResponse[*CouponResponse]

func NewCouponResponse(c *coupon.Coupon) *CouponResponse {
	return &CouponResponse{
		Coupon: c,
		Stage:  c.Stage(),
	}
}

func (r *CreateCouponRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCouponRequest) ToCoupon(ctx context.Context) *coupon.Coupon {
	code := r.Code
	if code == "" {
		code = types.GenerateCouponCode(types.COUPON_CODE_PREFIX)
	}

	return &coupon.Coupon{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COUPON),
		Code:          code,
		CustomerID:    r.CustomerID,
		MaxDiscount:   r.MaxDiscount,
		CoinRatio:     r.CoinRatio,
		MinOrderValue: r.MinOrderValue,
		ValidFrom:     r.ValidFrom,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateCouponRequest) Validate() error {
	return validator.ValidateRequest(r)
}
