package customer

import (
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/types"
)

// Customer represents a shop's loyalty customer. A customer belongs to one
// tenant (shop) and holds at most one active coupon relationship there.
type Customer struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Phone string `db:"phone" json:"phone"`
	Email string `db:"email" json:"email,omitempty"`

	types.BaseModel
}

func (c *Customer) TableName() string {
	return "customers"
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("customer name is required").
			WithHint("Customer name is required").
			Mark(ierr.ErrValidation)
	}

	if c.Phone == "" {
		return ierr.NewError("customer phone is required").
			WithHint("Customer phone is required").
			Mark(ierr.ErrValidation)
	}

	return nil
}
