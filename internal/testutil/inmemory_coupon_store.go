package testutil

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/tugohq/tugo/internal/domain/coupon"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/types"
)

// InMemoryCouponStore implements coupon.Repository
type InMemoryCouponStore struct {
	*InMemoryStore[*coupon.Coupon]
}

// NewInMemoryCouponStore creates a new in-memory coupon store
func NewInMemoryCouponStore() *InMemoryCouponStore {
	return &InMemoryCouponStore{
		InMemoryStore: NewInMemoryStore[*coupon.Coupon](),
	}
}

func copyCoupon(c *coupon.Coupon) *coupon.Coupon {
	if c == nil {
		return nil
	}

	clone := &coupon.Coupon{
		ID:            c.ID,
		Code:          c.Code,
		CustomerID:    c.CustomerID,
		IsUsed:        c.IsUsed,
		MaxDiscount:   c.MaxDiscount,
		CoinRatio:     c.CoinRatio,
		MinOrderValue: c.MinOrderValue,
		BaseModel: types.BaseModel{
			TenantID:  c.TenantID,
			Status:    c.Status,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			CreatedBy: c.CreatedBy,
			UpdatedBy: c.UpdatedBy,
		},
	}
	if c.UsedAt != nil {
		usedAt := *c.UsedAt
		clone.UsedAt = &usedAt
	}
	if c.ValidFrom != nil {
		validFrom := *c.ValidFrom
		clone.ValidFrom = &validFrom
	}
	return clone
}

func (s *InMemoryCouponStore) Create(ctx context.Context, c *coupon.Coupon) error {
	// Codes are unique per tenant, same as the database constraint.
	if _, err := s.GetByCode(ctx, c.Code, c.TenantID); err == nil {
		return ierr.NewError("coupon code already exists").
			WithHintf("A coupon with code %s already exists", c.Code).
			Mark(ierr.ErrAlreadyExists)
	}

	if err := s.InMemoryStore.Create(ctx, c.ID, copyCoupon(c)); err != nil {
		return ierr.WithError(err).
			WithHint("A coupon with this ID already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryCouponStore) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c.TenantID != types.GetTenantID(ctx) || c.Status == types.StatusDeleted {
		return nil, ierr.NewError("coupon not found").
			WithHintf("Coupon with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCoupon(c), nil
}

func (s *InMemoryCouponStore) GetByCode(ctx context.Context, code string, tenantID string) (*coupon.Coupon, error) {
	filterFn := func(ctx context.Context, c *coupon.Coupon, _ interface{}) bool {
		return c.Code == code && c.TenantID == tenantID && c.Status != types.StatusDeleted
	}

	coupons, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}

	if len(coupons) == 0 {
		return nil, ierr.NewError("coupon not found").
			WithHintf("Coupon with code %s was not found", code).
			Mark(ierr.ErrNotFound)
	}

	return copyCoupon(coupons[0]), nil
}

func (s *InMemoryCouponStore) List(ctx context.Context, filter *types.CouponFilter) ([]*coupon.Coupon, error) {
	items, err := s.InMemoryStore.List(ctx, filter, couponFilterFn, couponSortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(c *coupon.Coupon, _ int) *coupon.Coupon {
		return copyCoupon(c)
	}), nil
}

func (s *InMemoryCouponStore) Count(ctx context.Context, filter *types.CouponFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, couponFilterFn)
}

func (s *InMemoryCouponStore) Update(ctx context.Context, c *coupon.Coupon) error {
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCoupon(c))
}

func (s *InMemoryCouponStore) MarkUsed(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if c.IsUsed {
		return ierr.NewError("coupon already used").
			WithHint("This coupon has already been redeemed").
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	c.IsUsed = true
	c.UsedAt = &now
	c.UpdatedAt = now
	c.UpdatedBy = types.GetUserID(ctx)
	return s.InMemoryStore.Update(ctx, id, c)
}

// couponFilterFn implements filtering logic for coupons
func couponFilterFn(ctx context.Context, c *coupon.Coupon, filter interface{}) bool {
	if c.TenantID != types.GetTenantID(ctx) || c.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.CouponFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.CouponIDs) > 0 && !lo.Contains(f.CouponIDs, c.ID) {
		return false
	}

	if f.CustomerID != nil && c.CustomerID != *f.CustomerID {
		return false
	}

	if f.IsUsed != nil && c.IsUsed != *f.IsUsed {
		return false
	}

	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && c.CreatedAt.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && c.CreatedAt.After(*f.EndTime) {
			return false
		}
	}

	return true
}

// couponSortFn sorts coupons by created date descending
func couponSortFn(i, j *coupon.Coupon) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
