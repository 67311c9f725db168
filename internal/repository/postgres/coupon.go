package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domainCoupon "github.com/tugohq/tugo/internal/domain/coupon"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/postgres"
	"github.com/tugohq/tugo/internal/types"
)

type couponRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCouponRepository(client postgres.IClient, log *logger.Logger) domainCoupon.Repository {
	return &couponRepository{
		client: client,
		log:    log,
	}
}

func (r *couponRepository) Create(ctx context.Context, c *domainCoupon.Coupon) error {
	db := r.client.Querier(ctx)

	r.log.Debugw("creating coupon",
		"coupon_id", c.ID,
		"code", c.Code,
		"tenant_id", c.TenantID,
	)

	query := `
		INSERT INTO coupons (id, code, customer_id, is_used, used_at, max_discount, coin_ratio,
			min_order_value, valid_from, tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :code, :customer_id, :is_used, :used_at, :max_discount, :coin_ratio,
			:min_order_value, :valid_from, :tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)
	`

	if _, err := db.NamedExecContext(ctx, query, c); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("A coupon with code %s already exists", c.Code).
				WithReportableDetails(map[string]any{
					"code": c.Code,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create coupon").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *couponRepository) Get(ctx context.Context, id string) (*domainCoupon.Coupon, error) {
	db := r.client.Querier(ctx)

	var c domainCoupon.Coupon
	query := `
		SELECT * FROM coupons
		WHERE id = $1 AND tenant_id = $2 AND status != $3
	`

	err := db.GetContext(ctx, &c, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("coupon not found").
				WithHintf("Coupon with ID %s was not found", id).
				WithReportableDetails(map[string]any{
					"coupon_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon").
			Mark(ierr.ErrDatabase)
	}

	return &c, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string, tenantID string) (*domainCoupon.Coupon, error) {
	db := r.client.Querier(ctx)

	r.log.Debugw("looking up coupon by code",
		"code", code,
		"tenant_id", tenantID,
	)

	var c domainCoupon.Coupon
	query := `
		SELECT * FROM coupons
		WHERE code = $1 AND tenant_id = $2 AND status != $3
	`

	err := db.GetContext(ctx, &c, query, code, tenantID, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("coupon not found").
				WithHintf("Coupon with code %s was not found", code).
				WithReportableDetails(map[string]any{
					"code": code,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon").
			Mark(ierr.ErrDatabase)
	}

	return &c, nil
}

func (r *couponRepository) List(ctx context.Context, filter *types.CouponFilter) ([]*domainCoupon.Coupon, error) {
	db := r.client.Querier(ctx)

	where, args := r.buildWhere(ctx, filter)
	query := fmt.Sprintf(`
		SELECT * FROM coupons
		WHERE %s
		ORDER BY created_at DESC
	`, where)

	if filter != nil && !filter.IsUnlimited() {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
	}

	coupons := make([]*domainCoupon.Coupon, 0)
	if err := db.SelectContext(ctx, &coupons, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list coupons").
			Mark(ierr.ErrDatabase)
	}

	return coupons, nil
}

func (r *couponRepository) Count(ctx context.Context, filter *types.CouponFilter) (int, error) {
	db := r.client.Querier(ctx)

	where, args := r.buildWhere(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM coupons WHERE %s", where)

	var count int
	if err := db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count coupons").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

func (r *couponRepository) Update(ctx context.Context, c *domainCoupon.Coupon) error {
	db := r.client.Querier(ctx)

	query := `
		UPDATE coupons
		SET max_discount = :max_discount, coin_ratio = :coin_ratio,
			min_order_value = :min_order_value, valid_from = :valid_from,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update coupon").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update coupon").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

// MarkUsed flips is_used exactly once. The is_used = false predicate makes
// the flip atomic under concurrent redemptions: the second writer matches
// zero rows and fails.
func (r *couponRepository) MarkUsed(ctx context.Context, id string) error {
	db := r.client.Querier(ctx)

	r.log.Debugw("marking coupon used",
		"coupon_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	query := `
		UPDATE coupons
		SET is_used = true, used_at = $1, updated_at = $1, updated_by = $2
		WHERE id = $3 AND tenant_id = $4 AND is_used = false
	`

	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query, now, types.GetUserID(ctx), id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to mark coupon used").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to mark coupon used").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		// Either the coupon does not exist or it was already consumed.
		if _, gerr := r.Get(ctx, id); gerr != nil {
			return gerr
		}
		return ierr.NewError("coupon already used").
			WithHint("This coupon has already been redeemed").
			WithReportableDetails(map[string]any{
				"coupon_id": id,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	return nil
}

func (r *couponRepository) buildWhere(ctx context.Context, filter *types.CouponFilter) (string, []interface{}) {
	conditions := []string{"tenant_id = ?", "status != ?"}
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted}

	if filter != nil {
		if len(filter.CouponIDs) > 0 {
			placeholders := make([]string, len(filter.CouponIDs))
			for i, id := range filter.CouponIDs {
				placeholders[i] = "?"
				args = append(args, id)
			}
			conditions = append(conditions, fmt.Sprintf("id IN (%s)", strings.Join(placeholders, ", ")))
		}
		if filter.CustomerID != nil {
			conditions = append(conditions, "customer_id = ?")
			args = append(args, *filter.CustomerID)
		}
		if filter.IsUsed != nil {
			conditions = append(conditions, "is_used = ?")
			args = append(args, *filter.IsUsed)
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
