package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tugohq/tugo/internal/api/dto"
	"github.com/tugohq/tugo/internal/auth"
	"github.com/tugohq/tugo/internal/domain/coupon"
	"github.com/tugohq/tugo/internal/domain/customer"
	"github.com/tugohq/tugo/internal/domain/ledger"
	"github.com/tugohq/tugo/internal/idempotency"
	"github.com/tugohq/tugo/internal/testutil"
	"github.com/tugohq/tugo/internal/types"
)

type AnalyticsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AnalyticsService
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceSuite))
}

func (s *AnalyticsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAnalyticsService(ServiceParams{
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

func (s *AnalyticsServiceSuite) seedCustomer(createdAt time.Time) *customer.Customer {
	cust := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Test Customer",
		Phone:     "+1-555-0100",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	cust.CreatedAt = createdAt
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), cust))
	return cust
}

func (s *AnalyticsServiceSuite) seedCoupon(customerID string, createdAt time.Time, used bool) {
	c := &coupon.Coupon{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COUPON),
		Code:          types.GenerateCouponCode(types.COUPON_CODE_PREFIX),
		CustomerID:    customerID,
		MaxDiscount:   decimal.NewFromInt(10),
		CoinRatio:     8,
		MinOrderValue: decimal.Zero,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	c.CreatedAt = createdAt
	s.NoError(s.GetStores().CouponRepo.Create(s.GetContext(), c))
	if used {
		s.NoError(s.GetStores().CouponRepo.MarkUsed(s.GetContext(), c.ID))
	}
}

func (s *AnalyticsServiceSuite) TestGetMonthlyReportCustomers() {
	s.seedCustomer(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	s.seedCustomer(time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))
	s.seedCustomer(time.Date(2026, time.July, 9, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.GetMonthlyReport(s.GetContext(), dto.MonthlyReportRequest{
		Entity: dto.MonthlyReportCustomers,
	})
	s.NoError(err)
	s.Len(resp.Months, 12)
	// Year-agnostic: both March registrations land in one bucket.
	s.Equal(int64(2), resp.Months[2].Count)
	s.Equal(int64(1), resp.Months[6].Count)

	resp, err = s.service.GetMonthlyReport(s.GetContext(), dto.MonthlyReportRequest{
		Entity: dto.MonthlyReportCustomers,
		Year:   2026,
	})
	s.NoError(err)
	s.Equal(int64(1), resp.Months[2].Count)
}

func (s *AnalyticsServiceSuite) TestGetMonthlyReportCoupons() {
	cust := s.seedCustomer(time.Now().UTC())
	s.seedCoupon(cust.ID, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), false)
	s.seedCoupon(cust.ID, time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), true)

	resp, err := s.service.GetMonthlyReport(s.GetContext(), dto.MonthlyReportRequest{
		Entity: dto.MonthlyReportCoupons,
	})
	s.NoError(err)
	s.Equal(int64(2), resp.Months[0].Count)
}

func (s *AnalyticsServiceSuite) TestGetMonthlyReportInvalidEntity() {
	_, err := s.service.GetMonthlyReport(s.GetContext(), dto.MonthlyReportRequest{
		Entity: "invoices",
	})
	s.Error(err)
}

func (s *AnalyticsServiceSuite) TestGetSummary() {
	cust := s.seedCustomer(time.Now().UTC())
	s.seedCoupon(cust.ID, time.Now().UTC(), false)
	s.seedCoupon(cust.ID, time.Now().UTC(), true)

	for i, e := range []struct {
		coin        int64
		historyType types.HistoryType
	}{
		{coin: 30, historyType: types.HistoryTypeAssigned},
		{coin: 20, historyType: types.HistoryTypeAssigned},
		{coin: 15, historyType: types.HistoryTypeUsed},
	} {
		entry := &ledger.Entry{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEDGER_ENTRY),
			CustomerID:     cust.ID,
			Coin:           e.coin,
			HistoryType:    e.historyType,
			AssignedBy:     types.DefaultUserID,
			IdempotencyKey: types.GenerateUUID(),
			BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
		}
		s.NoError(s.GetStores().LedgerRepo.Create(s.GetContext(), entry), "entry %d", i)
	}

	resp, err := s.service.GetSummary(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Customers)
	s.Equal(2, resp.CouponsIssued)
	s.Equal(1, resp.CouponsUsed)
	s.Equal(int64(50), resp.PointsAssigned)
	s.Equal(int64(15), resp.PointsUsed)
}
