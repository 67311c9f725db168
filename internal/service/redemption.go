package service

import (
	"context"
	"time"

	"github.com/tugohq/tugo/internal/api/dto"
	"github.com/tugohq/tugo/internal/cache"
	"github.com/tugohq/tugo/internal/domain/coupon"
	"github.com/tugohq/tugo/internal/domain/ledger"
	"github.com/tugohq/tugo/internal/domain/redemption"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/idempotency"
	"github.com/tugohq/tugo/internal/metrics"
	"github.com/tugohq/tugo/internal/types"
)

// RedemptionService drives the point-of-sale workflow: an operator looks a
// coupon up, credits points from a bill amount, or redeems accumulated
// points. Credit and redeem are idempotent submissions running under the
// configured timeout.
type RedemptionService interface {
	LookupCoupon(ctx context.Context, req dto.LookupCouponRequest) (*dto.LookupCouponResponse, error)
	CreditPoints(ctx context.Context, req dto.CreditPointsRequest) (*dto.CreditPointsResponse, error)
	RedeemPoints(ctx context.Context, req dto.RedeemPointsRequest) (*dto.RedeemPointsResponse, error)
}

type redemptionService struct {
	ServiceParams
}

func NewRedemptionService(params ServiceParams) RedemptionService {
	return &redemptionService{
		ServiceParams: params,
	}
}

func (s *redemptionService) LookupCoupon(ctx context.Context, req dto.LookupCouponRequest) (*dto.LookupCouponResponse, error) {
	start := time.Now()

	resp, err := s.lookupCoupon(ctx, req)
	status := outcomeLabel(err)
	metrics.RecordRedemptionDuration("lookup", status, time.Since(start).Seconds())
	return resp, err
}

func (s *redemptionService) lookupCoupon(ctx context.Context, req dto.LookupCouponRequest) (*dto.LookupCouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.redeemableCoupon(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	machine := redemption.NewMachine(c)
	if err := machine.Verify(time.Now().UTC()); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}

	balance, err := s.LedgerRepo.BalanceByCustomer(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}

	return &dto.LookupCouponResponse{
		Coupon:   dto.NewCouponResponse(c),
		Customer: &dto.CustomerResponse{Customer: cust},
		Balance:  balance,
		Stage:    machine.Stage(),
	}, nil
}

func (s *redemptionService) CreditPoints(ctx context.Context, req dto.CreditPointsRequest) (*dto.CreditPointsResponse, error) {
	start := time.Now()

	ctx, cancel := s.submitContext(ctx)
	defer cancel()

	resp, err := s.creditPoints(ctx, req)
	status := outcomeLabel(err)
	metrics.RecordRedemptionDuration("credit", status, time.Since(start).Seconds())
	return resp, err
}

func (s *redemptionService) creditPoints(ctx context.Context, req dto.CreditPointsRequest) (*dto.CreditPointsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.redeemableCoupon(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	machine := redemption.NewMachine(c)
	if err := machine.Verify(time.Now().UTC()); err != nil {
		return nil, err
	}

	result, err := machine.CreditPoints(req.Amount, req.ShouldConsume())
	if err != nil {
		return nil, err
	}

	// A non-qualifying bill mutates nothing: no ledger entry, coupon kept.
	if result.Points == 0 {
		balance, err := s.LedgerRepo.BalanceByCustomer(ctx, c.CustomerID)
		if err != nil {
			return nil, err
		}
		return &dto.CreditPointsResponse{
			Points:   0,
			Consumed: false,
			Balance:  balance,
			Stage:    machine.Stage(),
		}, nil
	}

	key := req.IdempotencyKey
	if key == "" {
		key = s.IdempotencyGenerator.GenerateKey(idempotency.ScopePointCredit, map[string]interface{}{
			"tenant_id":   types.GetTenantID(ctx),
			"coupon_code": c.Code,
			"amount":      req.Amount.String(),
			"attempt_id":  req.AttemptID,
		})
	}

	entry := &ledger.Entry{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEDGER_ENTRY),
		CustomerID:     c.CustomerID,
		Coin:           result.Points,
		Amount:         req.Amount,
		HistoryType:    types.HistoryTypeAssigned,
		CoinRatio:      c.CoinRatio,
		AssignedBy:     types.GetUserID(ctx),
		CouponCode:     c.Code,
		IdempotencyKey: key,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	// The ledger append and the coupon consumption commit or roll back
	// together.
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.LedgerRepo.Create(txCtx, entry); err != nil {
			return err
		}

		if result.Consumed {
			if err := s.CouponRepo.MarkUsed(txCtx, c.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Consumed {
		s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixCoupon, c.TenantID, c.Code))
	}

	balance, err := s.LedgerRepo.BalanceByCustomer(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("credited points",
		"customer_id", c.CustomerID,
		"coupon_code", c.Code,
		"points", result.Points,
		"consumed", result.Consumed,
		"idempotency_key", key,
	)
	metrics.PointsCredited.Add(float64(result.Points))

	return &dto.CreditPointsResponse{
		Points:   result.Points,
		Consumed: result.Consumed,
		Balance:  balance,
		Stage:    machine.Stage(),
		Entry:    entry,
	}, nil
}

func (s *redemptionService) RedeemPoints(ctx context.Context, req dto.RedeemPointsRequest) (*dto.RedeemPointsResponse, error) {
	start := time.Now()

	ctx, cancel := s.submitContext(ctx)
	defer cancel()

	resp, err := s.redeemPoints(ctx, req)
	status := outcomeLabel(err)
	metrics.RecordRedemptionDuration("redeem", status, time.Since(start).Seconds())
	return resp, err
}

func (s *redemptionService) redeemPoints(ctx context.Context, req dto.RedeemPointsRequest) (*dto.RedeemPointsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.redeemableCoupon(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	machine := redemption.NewMachine(c)
	if err := machine.Verify(time.Now().UTC()); err != nil {
		return nil, err
	}

	balance, err := s.LedgerRepo.BalanceByCustomer(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := machine.RedeemPoints(req.Points, balance); err != nil {
		return nil, err
	}

	key := req.IdempotencyKey
	if key == "" {
		key = s.IdempotencyGenerator.GenerateKey(idempotency.ScopePointRedeem, map[string]interface{}{
			"tenant_id":   types.GetTenantID(ctx),
			"coupon_code": c.Code,
			"points":      req.Points,
			"attempt_id":  req.AttemptID,
		})
	}

	entry := &ledger.Entry{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEDGER_ENTRY),
		CustomerID:     c.CustomerID,
		Coin:           req.Points,
		HistoryType:    types.HistoryTypeUsed,
		CoinRatio:      c.CoinRatio,
		AssignedBy:     types.GetUserID(ctx),
		CouponCode:     c.Code,
		IdempotencyKey: key,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	// Spending points does not consume the coupon: only the ledger entry
	// is written, and the coupon stays open for further visits.
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.LedgerRepo.Create(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	newBalance, err := s.LedgerRepo.BalanceByCustomer(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("redeemed points",
		"customer_id", c.CustomerID,
		"coupon_code", c.Code,
		"points", req.Points,
		"idempotency_key", key,
	)
	metrics.PointsRedeemed.Add(float64(req.Points))

	return &dto.RedeemPointsResponse{
		Points:  req.Points,
		Balance: newBalance,
		Stage:   machine.Stage(),
		Entry:   entry,
	}, nil
}

// redeemableCoupon resolves a code to an active coupon of the caller's
// tenant. Expired (inactive) coupons are rejected here, before the state
// machine runs.
func (s *redemptionService) redeemableCoupon(ctx context.Context, code string) (*coupon.Coupon, error) {
	c, err := s.CouponRepo.GetByCode(ctx, code, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}

	if c.Status != types.StatusActive {
		return nil, ierr.NewError("coupon is not active").
			WithHint("This coupon has expired").
			WithReportableDetails(map[string]any{
				"code": code,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	return c, nil
}

// submitContext bounds a credit/redeem submission with the configured
// timeout so a stuck backend cannot hold the operator's request open.
func (s *redemptionService) submitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.Config.Redemption.SubmitTimeout
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func outcomeLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
