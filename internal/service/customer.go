package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/tugohq/tugo/internal/api/dto"
	"github.com/tugohq/tugo/internal/domain/customer"
	"github.com/tugohq/tugo/internal/types"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	GetCustomers(ctx context.Context, filter *customer.CustomerFilter) (*dto.ListCustomersResponse, error)
	UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomerHistory(ctx context.Context, id string, filter *types.LedgerFilter) (*dto.ListHistoryResponse, error)
	GetCustomerBalance(ctx context.Context, id string) (*dto.BalanceResponse, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{
		ServiceParams: params,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust := req.ToCustomer(ctx)
	if err := cust.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Create(ctx, cust); err != nil {
		return nil, err
	}

	s.Logger.Infow("created customer",
		"customer_id", cust.ID,
		"tenant_id", cust.TenantID,
	)

	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) GetCustomers(ctx context.Context, filter *customer.CustomerFilter) (*dto.ListCustomersResponse, error) {
	if filter == nil {
		filter = &customer.CustomerFilter{
			QueryFilter: types.NewDefaultQueryFilter(),
		}
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	customers, err := s.CustomerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.CustomerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerResponse {
		return &dto.CustomerResponse{Customer: c}
	})

	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cust.Name = *req.Name
	}
	if req.Phone != nil {
		cust.Phone = *req.Phone
	}
	if req.Email != nil {
		cust.Email = *req.Email
	}
	cust.UpdatedBy = types.GetUserID(ctx)

	if err := cust.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Update(ctx, cust); err != nil {
		return nil, err
	}

	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) GetCustomerHistory(ctx context.Context, id string, filter *types.LedgerFilter) (*dto.ListHistoryResponse, error) {
	// 404 before listing so callers can tell a missing customer from an
	// empty history.
	if _, err := s.CustomerRepo.Get(ctx, id); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = &types.LedgerFilter{
			QueryFilter: types.NewDefaultQueryFilter(),
		}
	}
	filter.CustomerID = lo.ToPtr(id)

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.LedgerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.LedgerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, &dto.HistoryEntryResponse{Entry: e})
	}

	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *customerService) GetCustomerBalance(ctx context.Context, id string) (*dto.BalanceResponse, error) {
	if _, err := s.CustomerRepo.Get(ctx, id); err != nil {
		return nil, err
	}

	balance, err := s.LedgerRepo.BalanceByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.BalanceResponse{
		CustomerID: id,
		Balance:    balance,
	}, nil
}
