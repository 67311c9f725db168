package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"github.com/tugohq/tugo/internal/api/dto"
	"github.com/tugohq/tugo/internal/auth"
	"github.com/tugohq/tugo/internal/domain/ledger"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/idempotency"
	"github.com/tugohq/tugo/internal/testutil"
	"github.com/tugohq/tugo/internal/types"
)

type CustomerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CustomerService
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCustomerService(ServiceParams{
		Logger:               s.GetLogger(),
		Config:               s.GetConfig(),
		DB:                   s.GetDB(),
		Cache:                s.GetCache(),
		Auth:                 auth.NewProvider(s.GetConfig()),
		IdempotencyGenerator: idempotency.NewGenerator(),
		CustomerRepo:         s.GetStores().CustomerRepo,
		CouponRepo:           s.GetStores().CouponRepo,
		LedgerRepo:           s.GetStores().LedgerRepo,
	})
}

func (s *CustomerServiceSuite) TestCreateCustomer() {
	testCases := []struct {
		name          string
		request       dto.CreateCustomerRequest
		expectedError bool
	}{
		{
			name: "successful_creation",
			request: dto.CreateCustomerRequest{
				Name:  "Test Customer",
				Phone: "+1-555-0100",
				Email: "test@example.com",
			},
		},
		{
			name: "missing_name",
			request: dto.CreateCustomerRequest{
				Phone: "+1-555-0100",
			},
			expectedError: true,
		},
		{
			name: "missing_phone",
			request: dto.CreateCustomerRequest{
				Name: "Test Customer",
			},
			expectedError: true,
		},
		{
			name: "invalid_email",
			request: dto.CreateCustomerRequest{
				Name:  "Test Customer",
				Phone: "+1-555-0100",
				Email: "not-an-email",
			},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreateCustomer(s.GetContext(), tc.request)
			if tc.expectedError {
				s.Error(err)
				return
			}

			s.NoError(err)
			s.NotEmpty(resp.ID)
			s.Equal(tc.request.Name, resp.Name)
			s.Equal(types.DefaultTenantID, resp.TenantID)
		})
	}
}

func (s *CustomerServiceSuite) TestGetCustomer() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "Test Customer",
		Phone: "+1-555-0100",
	})
	s.NoError(err)

	resp, err := s.service.GetCustomer(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.ID, resp.ID)

	_, err = s.service.GetCustomer(s.GetContext(), "cust_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CustomerServiceSuite) TestGetCustomers() {
	for i := 0; i < 3; i++ {
		_, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
			Name:  "Test Customer",
			Phone: "+1-555-010" + string(rune('0'+i)),
		})
		s.NoError(err)
	}

	resp, err := s.service.GetCustomers(s.GetContext(), nil)
	s.NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(3, resp.Pagination.Total)
}

func (s *CustomerServiceSuite) TestUpdateCustomer() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "Test Customer",
		Phone: "+1-555-0100",
	})
	s.NoError(err)

	updated, err := s.service.UpdateCustomer(s.GetContext(), created.ID, dto.UpdateCustomerRequest{
		Name: lo.ToPtr("Renamed Customer"),
	})
	s.NoError(err)
	s.Equal("Renamed Customer", updated.Name)
	s.Equal(created.Phone, updated.Phone)
}

func (s *CustomerServiceSuite) TestGetCustomerBalance() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "Test Customer",
		Phone: "+1-555-0100",
	})
	s.NoError(err)

	s.seedEntry(created.ID, 30, types.HistoryTypeAssigned, "key-1")
	s.seedEntry(created.ID, 10, types.HistoryTypeUsed, "key-2")

	resp, err := s.service.GetCustomerBalance(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(int64(20), resp.Balance)

	_, err = s.service.GetCustomerBalance(s.GetContext(), "cust_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CustomerServiceSuite) TestGetCustomerHistory() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "Test Customer",
		Phone: "+1-555-0100",
	})
	s.NoError(err)

	s.seedEntry(created.ID, 30, types.HistoryTypeAssigned, "key-1")
	s.seedEntry(created.ID, 10, types.HistoryTypeUsed, "key-2")

	resp, err := s.service.GetCustomerHistory(s.GetContext(), created.ID, nil)
	s.NoError(err)
	s.Len(resp.Items, 2)

	filter := &types.LedgerFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		HistoryType: lo.ToPtr(types.HistoryTypeUsed),
	}
	resp, err = s.service.GetCustomerHistory(s.GetContext(), created.ID, filter)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(types.HistoryTypeUsed, resp.Items[0].HistoryType)
}

func (s *CustomerServiceSuite) seedEntry(customerID string, coin int64, historyType types.HistoryType, key string) {
	entry := &ledger.Entry{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEDGER_ENTRY),
		CustomerID:     customerID,
		Coin:           coin,
		HistoryType:    historyType,
		AssignedBy:     types.DefaultUserID,
		IdempotencyKey: key,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().LedgerRepo.Create(s.GetContext(), entry))
}
