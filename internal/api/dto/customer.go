package dto

import (
	"context"

	"github.com/tugohq/tugo/internal/domain/customer"
	"github.com/tugohq/tugo/internal/types"
	"github.com/tugohq/tugo/internal/validator"
)

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone" validate:"required,max=20"`
	Email string `json:"email" validate:"omitempty,email"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type CustomerResponse struct {
	*customer.Customer
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}
