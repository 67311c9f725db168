package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/tugohq/tugo/internal/api/dto"
	"github.com/tugohq/tugo/internal/cache"
	"github.com/tugohq/tugo/internal/domain/coupon"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/types"
)

type CouponService interface {
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error)
	GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error)
	GetCouponByCode(ctx context.Context, code string) (*dto.CouponResponse, error)
	GetCoupons(ctx context.Context, filter *types.CouponFilter) (*dto.ListCouponsResponse, error)
	UpdateCoupon(ctx context.Context, id string, req dto.UpdateCouponRequest) (*dto.CouponResponse, error)
	ExpireCoupon(ctx context.Context, id string) (*dto.CouponResponse, error)
}

type couponService struct {
	ServiceParams
}

func NewCouponService(params ServiceParams) CouponService {
	return &couponService{
		ServiceParams: params,
	}
}

func (s *couponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The coupon must belong to an existing customer of this tenant.
	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	c := req.ToCoupon(ctx)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.CouponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created coupon",
		"coupon_id", c.ID,
		"code", c.Code,
		"customer_id", c.CustomerID,
		"tenant_id", c.TenantID,
	)

	return dto.NewCouponResponse(c), nil
}

func (s *couponService) GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error) {
	c, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewCouponResponse(c), nil
}

func (s *couponService) GetCouponByCode(ctx context.Context, code string) (*dto.CouponResponse, error) {
	tenantID := types.GetTenantID(ctx)

	cacheKey := cache.GenerateKey(cache.PrefixCoupon, tenantID, code)
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if c, ok := cached.(*coupon.Coupon); ok {
			return dto.NewCouponResponse(c), nil
		}
	}

	c, err := s.CouponRepo.GetByCode(ctx, code, tenantID)
	if err != nil {
		return nil, err
	}

	// Only unused coupons are cached; a used coupon must always be read
	// fresh so the terminal state is never masked.
	if !c.IsUsed {
		s.Cache.Set(ctx, cacheKey, c, cache.DefaultExpiration)
	}

	return dto.NewCouponResponse(c), nil
}

func (s *couponService) GetCoupons(ctx context.Context, filter *types.CouponFilter) (*dto.ListCouponsResponse, error) {
	if filter == nil {
		filter = &types.CouponFilter{
			QueryFilter: types.NewDefaultQueryFilter(),
		}
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	coupons, err := s.CouponRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.CouponRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(coupons, func(c *coupon.Coupon, _ int) *dto.CouponResponse {
		return dto.NewCouponResponse(c)
	})

	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, id string, req dto.UpdateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.IsUsed {
		return nil, ierr.NewError("coupon already used").
			WithHint("A redeemed coupon cannot be changed").
			Mark(ierr.ErrInvalidOperation)
	}

	if req.MaxDiscount != nil {
		c.MaxDiscount = *req.MaxDiscount
	}
	if req.CoinRatio != nil {
		c.CoinRatio = *req.CoinRatio
	}
	if req.MinOrderValue != nil {
		c.MinOrderValue = *req.MinOrderValue
	}
	if req.ValidFrom != nil {
		c.ValidFrom = req.ValidFrom
	}
	c.UpdatedBy = types.GetUserID(ctx)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.CouponRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, c)
	return dto.NewCouponResponse(c), nil
}

// ExpireCoupon takes an unused coupon out of circulation without consuming
// it. The redemption workflow rejects an inactive coupon before the state
// machine runs; admin reads still return it.
func (s *couponService) ExpireCoupon(ctx context.Context, id string) (*dto.CouponResponse, error) {
	c, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.IsUsed {
		return nil, ierr.NewError("coupon already used").
			WithHint("A redeemed coupon cannot be expired").
			Mark(ierr.ErrInvalidOperation)
	}

	if c.Status == types.StatusInactive {
		return dto.NewCouponResponse(c), nil
	}

	c.Status = types.StatusInactive
	c.UpdatedBy = types.GetUserID(ctx)

	if err := s.CouponRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("expired coupon",
		"coupon_id", c.ID,
		"code", c.Code,
		"tenant_id", c.TenantID,
	)

	s.invalidateCache(ctx, c)
	return dto.NewCouponResponse(c), nil
}

func (s *couponService) invalidateCache(ctx context.Context, c *coupon.Coupon) {
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixCoupon, c.TenantID, c.Code))
}
