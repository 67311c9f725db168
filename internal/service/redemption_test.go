package service

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tugohq/tugo/internal/api/dto"
	"github.com/tugohq/tugo/internal/auth"
	"github.com/tugohq/tugo/internal/domain/coupon"
	"github.com/tugohq/tugo/internal/domain/customer"
	"github.com/tugohq/tugo/internal/domain/ledger"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/idempotency"
	"github.com/tugohq/tugo/internal/testutil"
	"github.com/tugohq/tugo/internal/types"
)

// stalledLedgerStore blocks every append until the caller's context
// expires, the way a wedged database connection would.
type stalledLedgerStore struct {
	ledger.Repository
}

func (s *stalledLedgerStore) Create(ctx context.Context, entry *ledger.Entry) error {
	<-ctx.Done()
	return ierr.WithError(ctx.Err()).
		WithHint("The submission timed out").
		Mark(ierr.ErrDatabase)
}

type RedemptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service         RedemptionService
	customerService CustomerService
}

func TestRedemptionService(t *testing.T) {
	suite.Run(t, new(RedemptionServiceSuite))
}

func (s *RedemptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := s.serviceParams()
	s.service = NewRedemptionService(params)
	s.customerService = NewCustomerService(params)
}

func (s *RedemptionServiceSuite) serviceParams() ServiceParams {
	return ServiceParams{
		Logger:               s.GetLogger(),
		Config:               s.GetConfig(),
		DB:                   s.GetDB(),
		Cache:                s.GetCache(),
		Auth:                 auth.NewProvider(s.GetConfig()),
		IdempotencyGenerator: idempotency.NewGenerator(),
		CustomerRepo:         s.GetStores().CustomerRepo,
		CouponRepo:           s.GetStores().CouponRepo,
		LedgerRepo:           s.GetStores().LedgerRepo,
	}
}

func (s *RedemptionServiceSuite) createCustomer() *customer.Customer {
	cust := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Test Customer",
		Phone:     "+1-555-0100",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), cust))
	return cust
}

func (s *RedemptionServiceSuite) createCoupon(customerID string, coinRatio int, minOrder int64) *coupon.Coupon {
	c := &coupon.Coupon{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COUPON),
		Code:          types.GenerateCouponCode(types.COUPON_CODE_PREFIX),
		CustomerID:    customerID,
		MaxDiscount:   decimal.NewFromInt(10),
		CoinRatio:     coinRatio,
		MinOrderValue: decimal.NewFromInt(minOrder),
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CouponRepo.Create(s.GetContext(), c))
	return c
}

func (s *RedemptionServiceSuite) TestLookupCoupon() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 8, 100)

	resp, err := s.service.LookupCoupon(s.GetContext(), dto.LookupCouponRequest{Code: c.Code})
	s.NoError(err)
	s.Equal(types.CouponStageVerified, resp.Stage)
	s.Equal(cust.ID, resp.Customer.ID)
	s.Equal(c.Code, resp.Coupon.Code)
	s.Zero(resp.Balance)
}

func (s *RedemptionServiceSuite) TestLookupUnknownCode() {
	_, err := s.service.LookupCoupon(s.GetContext(), dto.LookupCouponRequest{Code: "TG-NOPE"})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *RedemptionServiceSuite) TestLookupExpiredCoupon() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 8, 100)

	c.Status = types.StatusInactive
	s.NoError(s.GetStores().CouponRepo.Update(s.GetContext(), c))

	_, err := s.service.LookupCoupon(s.GetContext(), dto.LookupCouponRequest{Code: c.Code})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RedemptionServiceSuite) TestCreditPoints() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 8, 100)

	resp, err := s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:   c.Code,
		Amount: decimal.NewFromInt(250),
	})
	s.NoError(err)
	s.Equal(int64(20), resp.Points)
	s.True(resp.Consumed)
	s.Equal(int64(20), resp.Balance)
	s.Equal(types.HistoryTypeAssigned, resp.Entry.HistoryType)
	s.Equal(c.Code, resp.Entry.CouponCode)

	// The coupon was consumed; a second lookup hits the terminal stage.
	_, err = s.service.LookupCoupon(s.GetContext(), dto.LookupCouponRequest{Code: c.Code})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RedemptionServiceSuite) TestCreditNonQualifyingBill() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 8, 100)

	resp, err := s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:   c.Code,
		Amount: decimal.NewFromInt(50),
	})
	s.NoError(err)
	s.Zero(resp.Points)
	s.False(resp.Consumed)
	s.Zero(resp.Balance)
	s.Nil(resp.Entry)
	s.Equal(types.CouponStageVerified, resp.Stage)

	// Nothing was written and the coupon survives for a larger bill.
	history, err := s.customerServiceHistory(cust.ID)
	s.NoError(err)
	s.Empty(history.Items)

	resp, err = s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:   c.Code,
		Amount: decimal.NewFromInt(100),
	})
	s.NoError(err)
	s.Equal(int64(8), resp.Points)
	s.True(resp.Consumed)
}

func (s *RedemptionServiceSuite) customerServiceHistory(customerID string) (*dto.ListHistoryResponse, error) {
	return s.customerService.GetCustomerHistory(s.GetContext(), customerID, nil)
}

func (s *RedemptionServiceSuite) TestCreditWithoutConsuming() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 10, 0)

	resp, err := s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:    c.Code,
		Amount:  decimal.NewFromInt(100),
		Consume: lo.ToPtr(false),
	})
	s.NoError(err)
	s.Equal(int64(10), resp.Points)
	s.False(resp.Consumed)

	// The coupon is still open for a later visit.
	lookup, err := s.service.LookupCoupon(s.GetContext(), dto.LookupCouponRequest{Code: c.Code})
	s.NoError(err)
	s.Equal(types.CouponStageVerified, lookup.Stage)
	s.Equal(int64(10), lookup.Balance)
}

func (s *RedemptionServiceSuite) TestCreditDuplicateSubmission() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 10, 0)

	req := dto.CreditPointsRequest{
		Code:           c.Code,
		Amount:         decimal.NewFromInt(100),
		Consume:        lo.ToPtr(false),
		IdempotencyKey: "credit-attempt-1",
	}

	_, err := s.service.CreditPoints(s.GetContext(), req)
	s.NoError(err)

	// The retry carries the same key and must not double-credit.
	_, err = s.service.CreditPoints(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))

	balance, err := s.GetStores().LedgerRepo.BalanceByCustomer(s.GetContext(), cust.ID)
	s.NoError(err)
	s.Equal(int64(10), balance)
}

func (s *RedemptionServiceSuite) TestCreditUsedCoupon() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 10, 0)
	s.NoError(s.GetStores().CouponRepo.MarkUsed(s.GetContext(), c.ID))

	_, err := s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:   c.Code,
		Amount: decimal.NewFromInt(100),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RedemptionServiceSuite) TestRedeemPoints() {
	cust := s.createCustomer()
	earn := s.createCoupon(cust.ID, 10, 0)

	_, err := s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:    earn.Code,
		Amount:  decimal.NewFromInt(200),
		Consume: lo.ToPtr(false),
	})
	s.NoError(err)

	spend := s.createCoupon(cust.ID, 10, 0)
	resp, err := s.service.RedeemPoints(s.GetContext(), dto.RedeemPointsRequest{
		Code:   spend.Code,
		Points: 15,
	})
	s.NoError(err)
	s.Equal(int64(15), resp.Points)
	s.Equal(int64(5), resp.Balance)
	s.Equal(types.CouponStagePointsRedeemed, resp.Stage)
	s.Equal(types.HistoryTypeUsed, resp.Entry.HistoryType)

	// Spending points does not consume the coupon.
	stored, err := s.GetStores().CouponRepo.Get(s.GetContext(), spend.ID)
	s.NoError(err)
	s.False(stored.IsUsed)
}

func (s *RedemptionServiceSuite) TestRedeemLeavesCouponOpen() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 8, 0)

	_, err := s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:    c.Code,
		Amount:  decimal.NewFromInt(250),
		Consume: lo.ToPtr(false),
	})
	s.NoError(err)

	_, err = s.service.RedeemPoints(s.GetContext(), dto.RedeemPointsRequest{
		Code:   c.Code,
		Points: 5,
	})
	s.NoError(err)

	stored, err := s.GetStores().CouponRepo.Get(s.GetContext(), c.ID)
	s.NoError(err)
	s.False(stored.IsUsed)

	// The same coupon carries a second redemption on a later visit.
	resp, err := s.service.RedeemPoints(s.GetContext(), dto.RedeemPointsRequest{
		Code:   c.Code,
		Points: 5,
	})
	s.NoError(err)
	s.Equal(int64(10), resp.Balance)
}

func (s *RedemptionServiceSuite) TestRedeemInsufficientBalance() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 10, 0)

	_, err := s.service.RedeemPoints(s.GetContext(), dto.RedeemPointsRequest{
		Code:   c.Code,
		Points: 5,
	})
	s.Error(err)
	s.True(ierr.IsInsufficientBalance(err))

	// The failed redeem left the coupon untouched.
	stored, err := s.GetStores().CouponRepo.Get(s.GetContext(), c.ID)
	s.NoError(err)
	s.False(stored.IsUsed)
}

func (s *RedemptionServiceSuite) TestRedeemDuplicateSubmission() {
	cust := s.createCustomer()
	earn := s.createCoupon(cust.ID, 10, 0)

	_, err := s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:    earn.Code,
		Amount:  decimal.NewFromInt(500),
		Consume: lo.ToPtr(false),
	})
	s.NoError(err)

	spendA := s.createCoupon(cust.ID, 10, 0)
	spendB := s.createCoupon(cust.ID, 10, 0)

	_, err = s.service.RedeemPoints(s.GetContext(), dto.RedeemPointsRequest{
		Code:           spendA.Code,
		Points:         10,
		IdempotencyKey: "redeem-attempt-1",
	})
	s.NoError(err)

	// Same key on another coupon: the ledger refuses the duplicate and
	// no second debit is recorded.
	_, err = s.service.RedeemPoints(s.GetContext(), dto.RedeemPointsRequest{
		Code:           spendB.Code,
		Points:         10,
		IdempotencyKey: "redeem-attempt-1",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))

	balance, err := s.GetStores().LedgerRepo.BalanceByCustomer(s.GetContext(), cust.ID)
	s.NoError(err)
	s.Equal(int64(40), balance)
}

func (s *RedemptionServiceSuite) TestBalanceDerivedFromLedger() {
	cust := s.createCustomer()

	for _, amount := range []int64{100, 200, 300} {
		c := s.createCoupon(cust.ID, 10, 0)
		_, err := s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
			Code:   c.Code,
			Amount: decimal.NewFromInt(amount),
		})
		s.NoError(err)
	}

	spend := s.createCoupon(cust.ID, 10, 0)
	_, err := s.service.RedeemPoints(s.GetContext(), dto.RedeemPointsRequest{
		Code:   spend.Code,
		Points: 25,
	})
	s.NoError(err)

	balance, err := s.GetStores().LedgerRepo.BalanceByCustomer(s.GetContext(), cust.ID)
	s.NoError(err)
	s.Equal(int64(10+20+30-25), balance)
}

func (s *RedemptionServiceSuite) TestSubmitTimeoutAdvancesNoState() {
	cust := s.createCustomer()
	c := s.createCoupon(cust.ID, 8, 0)

	cfg := s.GetConfig()
	original := cfg.Redemption.SubmitTimeout
	cfg.Redemption.SubmitTimeout = time.Millisecond
	defer func() { cfg.Redemption.SubmitTimeout = original }()

	params := s.serviceParams()
	params.LedgerRepo = &stalledLedgerStore{Repository: s.GetStores().LedgerRepo}
	svc := NewRedemptionService(params)

	_, err := svc.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:   c.Code,
		Amount: decimal.NewFromInt(250),
	})
	s.Error(err)

	// Nothing moved: the coupon stays open and the ledger stays empty.
	stored, lookupErr := s.GetStores().CouponRepo.Get(s.GetContext(), c.ID)
	s.NoError(lookupErr)
	s.False(stored.IsUsed)

	balance, balErr := s.GetStores().LedgerRepo.BalanceByCustomer(s.GetContext(), cust.ID)
	s.NoError(balErr)
	s.Zero(balance)

	// Seed a balance through the real service so the redeem path reaches
	// the stalled ledger append.
	_, err = s.service.CreditPoints(s.GetContext(), dto.CreditPointsRequest{
		Code:    c.Code,
		Amount:  decimal.NewFromInt(250),
		Consume: lo.ToPtr(false),
	})
	s.NoError(err)

	_, err = svc.RedeemPoints(s.GetContext(), dto.RedeemPointsRequest{
		Code:   c.Code,
		Points: 5,
	})
	s.Error(err)

	balance, balErr = s.GetStores().LedgerRepo.BalanceByCustomer(s.GetContext(), cust.ID)
	s.NoError(balErr)
	s.Equal(int64(20), balance)
}
