package types

import (
	"github.com/samber/lo"
	ierr "github.com/tugohq/tugo/internal/errors"
)

// HistoryType classifies a point ledger entry. The ledger is append-only:
// a customer's balance is always sum(ASSIGNED.coin) - sum(USED.coin).
type HistoryType string

const (
	// HistoryTypeAssigned records points credited from a qualifying bill.
	HistoryTypeAssigned HistoryType = "ASSIGNED"
	// HistoryTypeUsed records points spent by the customer.
	HistoryTypeUsed HistoryType = "USED"
)

func (t HistoryType) String() string {
	return string(t)
}

func (t HistoryType) Validate() error {
	allowed := []HistoryType{
		HistoryTypeAssigned,
		HistoryTypeUsed,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid history type").
			WithHint("Invalid history type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
				"type":    t,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LedgerFilter represents the filter for listing point history entries
type LedgerFilter struct {
	*QueryFilter
	*TimeRangeFilter

	CustomerID  *string      `form:"customer_id"`
	HistoryType *HistoryType `form:"history_type"`
}

// NewNoLimitLedgerFilter creates a new ledger filter with no limit
func NewNoLimitLedgerFilter() *LedgerFilter {
	return &LedgerFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the ledger filter
func (f *LedgerFilter) Validate() error {
	if f == nil {
		return nil
	}

	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}

	if f.HistoryType != nil {
		if err := f.HistoryType.Validate(); err != nil {
			return err
		}
	}

	return f.TimeRangeFilter.Validate()
}
