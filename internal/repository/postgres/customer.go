package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domainCustomer "github.com/tugohq/tugo/internal/domain/customer"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/postgres"
	"github.com/tugohq/tugo/internal/types"
)

type customerRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCustomerRepository(client postgres.IClient, log *logger.Logger) domainCustomer.Repository {
	return &customerRepository{
		client: client,
		log:    log,
	}
}

func (r *customerRepository) Create(ctx context.Context, c *domainCustomer.Customer) error {
	db := r.client.Querier(ctx)

	r.log.Debugw("creating customer",
		"customer_id", c.ID,
		"tenant_id", c.TenantID,
	)

	query := `
		INSERT INTO customers (id, name, phone, email, tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :name, :phone, :email, :tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)
	`

	if _, err := db.NamedExecContext(ctx, query, c); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A customer with this phone already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*domainCustomer.Customer, error) {
	db := r.client.Querier(ctx)

	r.log.Debugw("getting customer",
		"customer_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	var c domainCustomer.Customer
	query := `
		SELECT * FROM customers
		WHERE id = $1 AND tenant_id = $2 AND status != $3
	`

	err := db.GetContext(ctx, &c, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("customer not found").
				WithHintf("Customer with ID %s was not found", id).
				WithReportableDetails(map[string]any{
					"customer_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}

	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, filter *domainCustomer.CustomerFilter) ([]*domainCustomer.Customer, error) {
	db := r.client.Querier(ctx)

	where, args := r.buildWhere(ctx, filter)
	query := fmt.Sprintf(`
		SELECT * FROM customers
		WHERE %s
		ORDER BY created_at DESC
	`, where)

	if filter != nil && !filter.IsUnlimited() {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
	}

	customers := make([]*domainCustomer.Customer, 0)
	if err := db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}

	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *domainCustomer.CustomerFilter) (int, error) {
	db := r.client.Querier(ctx)

	where, args := r.buildWhere(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM customers WHERE %s", where)

	var count int
	if err := db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count customers").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domainCustomer.Customer) error {
	db := r.client.Querier(ctx)

	r.log.Debugw("updating customer",
		"customer_id", c.ID,
		"tenant_id", c.TenantID,
	)

	query := `
		UPDATE customers
		SET name = :name, phone = :phone, email = :email, status = :status,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *customerRepository) buildWhere(ctx context.Context, filter *domainCustomer.CustomerFilter) (string, []interface{}) {
	conditions := []string{"tenant_id = ?", "status != ?"}
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted}

	if filter != nil {
		if len(filter.CustomerIDs) > 0 {
			placeholders := make([]string, len(filter.CustomerIDs))
			for i, id := range filter.CustomerIDs {
				placeholders[i] = "?"
				args = append(args, id)
			}
			conditions = append(conditions, fmt.Sprintf("id IN (%s)", strings.Join(placeholders, ", ")))
		}
		if filter.Phone != nil {
			conditions = append(conditions, "phone = ?")
			args = append(args, *filter.Phone)
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
