package ledger

import (
	"github.com/shopspring/decimal"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/types"
)

// Entry is an immutable point history record. Entries are append-only: the
// service never updates or deletes them, and a customer's balance is always
// sum(ASSIGNED.coin) - sum(USED.coin) over their entries.
type Entry struct {
	ID         string `db:"id" json:"id"`
	CustomerID string `db:"customer_id" json:"customer_id"`

	// Coin is the number of points moved by this entry. Always positive;
	// direction comes from HistoryType.
	Coin int64 `db:"coin" json:"coin"`
	// Amount is the bill amount that produced an ASSIGNED entry. Zero for
	// USED entries.
	Amount decimal.Decimal `db:"amount" json:"amount"`

	HistoryType types.HistoryType `db:"history_type" json:"history_type"`

	// CoinRatio snapshots the ratio in force when the entry was written,
	// so history stays explicable after the coupon changes.
	CoinRatio int `db:"coin_ratio" json:"coin_ratio"`

	// AssignedBy is the operator (user ID) who performed the credit or
	// redemption.
	AssignedBy string `db:"assigned_by" json:"assigned_by"`

	// CouponCode links the entry to the coupon presented at the point of
	// sale, when there was one.
	CouponCode string `db:"coupon_code" json:"coupon_code,omitempty"`

	// IdempotencyKey de-duplicates submissions: two attempts carrying the
	// same key write at most one entry.
	IdempotencyKey string `db:"idempotency_key" json:"idempotency_key"`

	types.BaseModel
}

func (e *Entry) TableName() string {
	return "tugo_history"
}

func (e *Entry) Validate() error {
	if e.CustomerID == "" {
		return ierr.NewError("customer id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := e.HistoryType.Validate(); err != nil {
		return err
	}

	if e.Coin <= 0 {
		return ierr.NewError("coin must be positive").
			WithHint("Point amount must be positive").
			WithReportableDetails(map[string]any{
				"coin": e.Coin,
			}).
			Mark(ierr.ErrValidation)
	}

	if e.Amount.IsNegative() {
		return ierr.NewError("amount must be non-negative").
			WithHint("Bill amount must be non-negative").
			Mark(ierr.ErrValidation)
	}

	if e.IdempotencyKey == "" {
		return ierr.NewError("idempotency key is required").
			WithHint("Idempotency key is required").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// SignedCoin returns the entry's effect on the balance: positive for
// ASSIGNED, negative for USED.
func (e *Entry) SignedCoin() int64 {
	if e.HistoryType == types.HistoryTypeUsed {
		return -e.Coin
	}
	return e.Coin
}
