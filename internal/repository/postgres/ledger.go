package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domainLedger "github.com/tugohq/tugo/internal/domain/ledger"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/postgres"
	"github.com/tugohq/tugo/internal/types"
)

type ledgerRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewLedgerRepository(client postgres.IClient, log *logger.Logger) domainLedger.Repository {
	return &ledgerRepository{
		client: client,
		log:    log,
	}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *domainLedger.Entry) error {
	db := r.client.Querier(ctx)

	r.log.Debugw("appending ledger entry",
		"entry_id", entry.ID,
		"customer_id", entry.CustomerID,
		"history_type", entry.HistoryType,
		"coin", entry.Coin,
		"idempotency_key", entry.IdempotencyKey,
	)

	query := `
		INSERT INTO tugo_history (id, customer_id, coin, amount, history_type, coin_ratio,
			assigned_by, coupon_code, idempotency_key, tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :customer_id, :coin, :amount, :history_type, :coin_ratio,
			:assigned_by, :coupon_code, :idempotency_key, :tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)
	`

	if _, err := db.NamedExecContext(ctx, query, entry); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("This submission was already processed").
				WithReportableDetails(map[string]any{
					"idempotency_key": entry.IdempotencyKey,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to record point history").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *ledgerRepository) Get(ctx context.Context, id string) (*domainLedger.Entry, error) {
	db := r.client.Querier(ctx)

	var entry domainLedger.Entry
	query := `
		SELECT * FROM tugo_history
		WHERE id = $1 AND tenant_id = $2
	`

	err := db.GetContext(ctx, &entry, query, id, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("history entry not found").
				WithHintf("History entry with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get history entry").
			Mark(ierr.ErrDatabase)
	}

	return &entry, nil
}

func (r *ledgerRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domainLedger.Entry, error) {
	db := r.client.Querier(ctx)

	var entry domainLedger.Entry
	query := `
		SELECT * FROM tugo_history
		WHERE idempotency_key = $1 AND tenant_id = $2
	`

	err := db.GetContext(ctx, &entry, query, key, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("history entry not found").
				WithHint("No history entry exists for this idempotency key").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get history entry").
			Mark(ierr.ErrDatabase)
	}

	return &entry, nil
}

func (r *ledgerRepository) List(ctx context.Context, filter *types.LedgerFilter) ([]*domainLedger.Entry, error) {
	db := r.client.Querier(ctx)

	where, args := r.buildWhere(ctx, filter)
	query := fmt.Sprintf(`
		SELECT * FROM tugo_history
		WHERE %s
		ORDER BY created_at DESC
	`, where)

	if filter != nil && !filter.IsUnlimited() {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
	}

	entries := make([]*domainLedger.Entry, 0)
	if err := db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list point history").
			Mark(ierr.ErrDatabase)
	}

	return entries, nil
}

func (r *ledgerRepository) Count(ctx context.Context, filter *types.LedgerFilter) (int, error) {
	db := r.client.Querier(ctx)

	where, args := r.buildWhere(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM tugo_history WHERE %s", where)

	var count int
	if err := db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count point history").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

// BalanceByCustomer derives the balance from the ledger in one aggregate
// query. ASSIGNED entries add, USED entries subtract.
func (r *ledgerRepository) BalanceByCustomer(ctx context.Context, customerID string) (int64, error) {
	db := r.client.Querier(ctx)

	query := `
		SELECT COALESCE(SUM(CASE WHEN history_type = $1 THEN coin ELSE -coin END), 0)
		FROM tugo_history
		WHERE customer_id = $2 AND tenant_id = $3
	`

	var balance int64
	err := db.GetContext(ctx, &balance, query, types.HistoryTypeAssigned, customerID, types.GetTenantID(ctx))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to compute point balance").
			Mark(ierr.ErrDatabase)
	}

	return balance, nil
}

func (r *ledgerRepository) buildWhere(ctx context.Context, filter *types.LedgerFilter) (string, []interface{}) {
	conditions := []string{"tenant_id = ?"}
	args := []interface{}{types.GetTenantID(ctx)}

	if filter != nil {
		if filter.CustomerID != nil {
			conditions = append(conditions, "customer_id = ?")
			args = append(args, *filter.CustomerID)
		}
		if filter.HistoryType != nil {
			conditions = append(conditions, "history_type = ?")
			args = append(args, *filter.HistoryType)
		}
		if filter.TimeRangeFilter != nil {
			if filter.StartTime != nil {
				conditions = append(conditions, "created_at >= ?")
				args = append(args, *filter.StartTime)
			}
			if filter.EndTime != nil {
				conditions = append(conditions, "created_at <= ?")
				args = append(args, *filter.EndTime)
			}
		}
	}

	return rebind(strings.Join(conditions, " AND ")), args
}
