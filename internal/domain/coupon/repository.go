package coupon

import (
	"context"

	"github.com/tugohq/tugo/internal/types"
)

// Repository defines the interface for coupon data access
type Repository interface {
	Create(ctx context.Context, coupon *Coupon) error
	Get(ctx context.Context, id string) (*Coupon, error)
	GetByCode(ctx context.Context, code string, tenantID string) (*Coupon, error)
	List(ctx context.Context, filter *types.CouponFilter) ([]*Coupon, error)
	Count(ctx context.Context, filter *types.CouponFilter) (int, error)
	Update(ctx context.Context, coupon *Coupon) error

	// MarkUsed flips IsUsed exactly once. Implementations must fail with
	// an invalid-operation error when the coupon is already used so that
	// concurrent redemptions cannot both succeed.
	MarkUsed(ctx context.Context, id string) error
}
