package ledger

import (
	"context"

	"github.com/tugohq/tugo/internal/types"
)

// Repository defines the interface for point history persistence. The
// ledger is append-only by construction: there are no update or delete
// operations.
type Repository interface {
	// Create appends an entry. Implementations must reject a duplicate
	// idempotency key with an already-exists error.
	Create(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Entry, error)
	List(ctx context.Context, filter *types.LedgerFilter) ([]*Entry, error)
	Count(ctx context.Context, filter *types.LedgerFilter) (int, error)

	// BalanceByCustomer derives the current point balance from the
	// ledger. The balance is never stored; the ledger is the single
	// source of truth.
	BalanceByCustomer(ctx context.Context, customerID string) (int64, error)
}
