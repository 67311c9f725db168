package testutil

import (
	"context"

	"github.com/samber/lo"
	"github.com/tugohq/tugo/internal/domain/customer"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/types"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}

	return &customer.Customer{
		ID:    c.ID,
		Name:  c.Name,
		Phone: c.Phone,
		Email: c.Email,
		BaseModel: types.BaseModel{
			TenantID:  c.TenantID,
			Status:    c.Status,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			CreatedBy: c.CreatedBy,
			UpdatedBy: c.UpdatedBy,
		},
	}
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	if err := s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c)); err != nil {
		return ierr.WithError(err).
			WithHint("A customer with this ID already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c.TenantID != types.GetTenantID(ctx) || c.Status == types.StatusDeleted {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) List(ctx context.Context, filter *customer.CustomerFilter) ([]*customer.Customer, error) {
	items, err := s.InMemoryStore.List(ctx, filter, customerFilterFn, customerSortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(c *customer.Customer, _ int) *customer.Customer {
		return copyCustomer(c)
	}), nil
}

func (s *InMemoryCustomerStore) Count(ctx context.Context, filter *customer.CustomerFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, customerFilterFn)
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCustomer(c))
}

// customerFilterFn implements filtering logic for customers
func customerFilterFn(ctx context.Context, c *customer.Customer, filter interface{}) bool {
	if c.TenantID != types.GetTenantID(ctx) || c.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*customer.CustomerFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.CustomerIDs) > 0 && !lo.Contains(f.CustomerIDs, c.ID) {
		return false
	}

	if f.Phone != nil && c.Phone != *f.Phone {
		return false
	}

	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && c.CreatedAt.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && c.CreatedAt.After(*f.EndTime) {
			return false
		}
	}

	return true
}

// customerSortFn sorts customers by created date descending
func customerSortFn(i, j *customer.Customer) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
