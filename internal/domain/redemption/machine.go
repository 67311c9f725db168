package redemption

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tugohq/tugo/internal/domain/coupon"
	"github.com/tugohq/tugo/internal/domain/points"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/types"
)

// Machine drives a single point-of-sale redemption session for one coupon.
// A session starts at the stage the stored coupon is in and advances through
// verify, credit and redeem. Every failed transition leaves the stage
// exactly where it was, so the caller can retry or abandon the session
// without cleanup.
type Machine struct {
	coupon *coupon.Coupon
	stage  types.CouponStage
}

// CreditResult reports what a credit transition actually did. Points is the
// number of loyalty points earned and Consumed whether the coupon was spent
// in the process. A non-qualifying bill earns zero points and never
// consumes the coupon.
type CreditResult struct {
	Points   int64
	Consumed bool
}

func NewMachine(c *coupon.Coupon) *Machine {
	return &Machine{
		coupon: c,
		stage:  c.Stage(),
	}
}

func (m *Machine) Stage() types.CouponStage {
	return m.stage
}

func (m *Machine) Coupon() *coupon.Coupon {
	return m.coupon
}

// Verify resolves the coupon for an operator. It is the only transition out
// of ISSUED and mutates nothing on the coupon itself.
func (m *Machine) Verify(now time.Time) error {
	if err := m.ensureOpen(); err != nil {
		return err
	}

	if m.stage != types.CouponStageIssued {
		return m.invalidTransition("verify")
	}

	if err := m.coupon.EnsureRedeemable(now); err != nil {
		return err
	}

	m.stage = types.CouponStageVerified
	return nil
}

// CreditPoints converts a bill amount into loyalty points using the
// coupon's coin ratio. When consume is set and the bill qualifies, the
// coupon is spent and the session reaches POINTS_ADDED. A bill below the
// coupon's minimum order value earns nothing and keeps the session at
// VERIFIED, so the customer can come back with a larger bill.
func (m *Machine) CreditPoints(amount decimal.Decimal, consume bool) (*CreditResult, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}

	if m.stage != types.CouponStageVerified {
		return nil, m.invalidTransition("credit")
	}

	award, err := points.Award(amount, m.coupon.CoinRatio, m.coupon.MinOrderValue)
	if err != nil {
		return nil, err
	}

	if award == 0 {
		return &CreditResult{Points: 0, Consumed: false}, nil
	}

	m.stage = types.CouponStagePointsAdded
	return &CreditResult{Points: award, Consumed: consume}, nil
}

// RedeemPoints spends accumulated points against the customer's balance.
// It is reachable from VERIFIED directly or after a credit in the same
// session. An insufficient balance fails the transition without advancing
// the stage.
func (m *Machine) RedeemPoints(amount int64, balance int64) error {
	if err := m.ensureOpen(); err != nil {
		return err
	}

	if m.stage != types.CouponStageVerified && m.stage != types.CouponStagePointsAdded {
		return m.invalidTransition("redeem")
	}

	if amount <= 0 {
		return ierr.NewError("redeem amount must be positive").
			WithHint("Points to redeem must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	if amount > balance {
		return ierr.NewError("insufficient point balance").
			WithHint("The customer does not have enough points").
			WithReportableDetails(map[string]any{
				"requested": amount,
				"balance":   balance,
			}).
			Mark(ierr.ErrInsufficientBalance)
	}

	m.stage = types.CouponStagePointsRedeemed
	return nil
}

func (m *Machine) ensureOpen() error {
	if m.stage.Terminal() {
		return ierr.NewError("coupon already used").
			WithHint("This coupon has already been redeemed").
			WithReportableDetails(map[string]any{
				"code": m.coupon.Code,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

func (m *Machine) invalidTransition(op string) error {
	return ierr.NewError("invalid redemption transition").
		WithHintf("Cannot %s a coupon in stage %s", op, m.stage).
		WithReportableDetails(map[string]any{
			"operation": op,
			"stage":     m.stage,
		}).
		Mark(ierr.ErrInvalidOperation)
}
