package customer

import (
	"context"

	"github.com/tugohq/tugo/internal/types"
)

// CustomerFilter represents the filter for listing customers
type CustomerFilter struct {
	*types.QueryFilter
	*types.TimeRangeFilter

	CustomerIDs []string `form:"customer_ids"`
	Phone       *string  `form:"phone"`
}

// NewNoLimitCustomerFilter creates a new customer filter with no limit
func NewNoLimitCustomerFilter() *CustomerFilter {
	return &CustomerFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
	}
}

// Validate validates the customer filter
func (f *CustomerFilter) Validate() error {
	if f == nil {
		return nil
	}

	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}

	return f.TimeRangeFilter.Validate()
}

// Repository defines the interface for customer data access
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, filter *CustomerFilter) ([]*Customer, error)
	Count(ctx context.Context, filter *CustomerFilter) (int, error)
	Update(ctx context.Context, customer *Customer) error
}
