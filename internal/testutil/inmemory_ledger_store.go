package testutil

import (
	"context"

	"github.com/samber/lo"
	"github.com/tugohq/tugo/internal/domain/ledger"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/types"
)

// InMemoryLedgerStore implements ledger.Repository
type InMemoryLedgerStore struct {
	*InMemoryStore[*ledger.Entry]
}

// NewInMemoryLedgerStore creates a new in-memory ledger store
func NewInMemoryLedgerStore() *InMemoryLedgerStore {
	return &InMemoryLedgerStore{
		InMemoryStore: NewInMemoryStore[*ledger.Entry](),
	}
}

func copyEntry(e *ledger.Entry) *ledger.Entry {
	if e == nil {
		return nil
	}

	return &ledger.Entry{
		ID:             e.ID,
		CustomerID:     e.CustomerID,
		Coin:           e.Coin,
		Amount:         e.Amount,
		HistoryType:    e.HistoryType,
		CoinRatio:      e.CoinRatio,
		AssignedBy:     e.AssignedBy,
		CouponCode:     e.CouponCode,
		IdempotencyKey: e.IdempotencyKey,
		BaseModel: types.BaseModel{
			TenantID:  e.TenantID,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
			CreatedBy: e.CreatedBy,
			UpdatedBy: e.UpdatedBy,
		},
	}
}

func (s *InMemoryLedgerStore) Create(ctx context.Context, e *ledger.Entry) error {
	// Idempotency keys are unique per tenant, same as the database
	// constraint.
	if _, err := s.GetByIdempotencyKey(ctx, e.IdempotencyKey); err == nil {
		return ierr.NewError("duplicate idempotency key").
			WithHint("This submission was already processed").
			WithReportableDetails(map[string]any{
				"idempotency_key": e.IdempotencyKey,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	if err := s.InMemoryStore.Create(ctx, e.ID, copyEntry(e)); err != nil {
		return ierr.WithError(err).
			WithHint("A history entry with this ID already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryLedgerStore) Get(ctx context.Context, id string) (*ledger.Entry, error) {
	e, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || e.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("history entry not found").
			WithHintf("History entry with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyEntry(e), nil
}

func (s *InMemoryLedgerStore) GetByIdempotencyKey(ctx context.Context, key string) (*ledger.Entry, error) {
	filterFn := func(ctx context.Context, e *ledger.Entry, _ interface{}) bool {
		return e.IdempotencyKey == key && e.TenantID == types.GetTenantID(ctx)
	}

	entries, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ierr.NewError("history entry not found").
			WithHint("No history entry exists for this idempotency key").
			Mark(ierr.ErrNotFound)
	}

	return copyEntry(entries[0]), nil
}

func (s *InMemoryLedgerStore) List(ctx context.Context, filter *types.LedgerFilter) ([]*ledger.Entry, error) {
	items, err := s.InMemoryStore.List(ctx, filter, ledgerFilterFn, ledgerSortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(e *ledger.Entry, _ int) *ledger.Entry {
		return copyEntry(e)
	}), nil
}

func (s *InMemoryLedgerStore) Count(ctx context.Context, filter *types.LedgerFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, ledgerFilterFn)
}

func (s *InMemoryLedgerStore) BalanceByCustomer(ctx context.Context, customerID string) (int64, error) {
	filterFn := func(ctx context.Context, e *ledger.Entry, _ interface{}) bool {
		return e.CustomerID == customerID && e.TenantID == types.GetTenantID(ctx)
	}

	entries, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return 0, err
	}

	var balance int64
	for _, e := range entries {
		balance += e.SignedCoin()
	}
	return balance, nil
}

// ledgerFilterFn implements filtering logic for ledger entries
func ledgerFilterFn(ctx context.Context, e *ledger.Entry, filter interface{}) bool {
	if e.TenantID != types.GetTenantID(ctx) {
		return false
	}

	f, ok := filter.(*types.LedgerFilter)
	if !ok || f == nil {
		return true
	}

	if f.CustomerID != nil && e.CustomerID != *f.CustomerID {
		return false
	}

	if f.HistoryType != nil && e.HistoryType != *f.HistoryType {
		return false
	}

	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && e.CreatedAt.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && e.CreatedAt.After(*f.EndTime) {
			return false
		}
	}

	return true
}

// ledgerSortFn sorts entries by created date descending
func ledgerSortFn(i, j *ledger.Entry) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
