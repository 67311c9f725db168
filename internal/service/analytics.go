package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/tugohq/tugo/internal/api/dto"
	domainCustomer "github.com/tugohq/tugo/internal/domain/customer"
	"github.com/tugohq/tugo/internal/domain/reporting"
	"github.com/tugohq/tugo/internal/types"
)

// AnalyticsService feeds the dashboard: monthly registration/issuance
// buckets and the headline counters.
type AnalyticsService interface {
	GetMonthlyReport(ctx context.Context, req dto.MonthlyReportRequest) (*dto.MonthlyReportResponse, error)
	GetSummary(ctx context.Context) (*dto.SummaryResponse, error)
}

type analyticsService struct {
	ServiceParams
}

func NewAnalyticsService(params ServiceParams) AnalyticsService {
	return &analyticsService{
		ServiceParams: params,
	}
}

func (s *analyticsService) GetMonthlyReport(ctx context.Context, req dto.MonthlyReportRequest) (*dto.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var timestamps []time.Time
	switch req.Entity {
	case dto.MonthlyReportCustomers:
		customers, err := s.CustomerRepo.List(ctx, domainCustomer.NewNoLimitCustomerFilter())
		if err != nil {
			return nil, err
		}
		timestamps = lo.Map(customers, func(c *domainCustomer.Customer, _ int) time.Time {
			return c.CreatedAt
		})
	case dto.MonthlyReportCoupons:
		coupons, err := s.CouponRepo.List(ctx, types.NewNoLimitCouponFilter())
		if err != nil {
			return nil, err
		}
		timestamps = make([]time.Time, 0, len(coupons))
		for _, c := range coupons {
			timestamps = append(timestamps, c.CreatedAt)
		}
	}

	var months []reporting.MonthBucket
	if req.Year > 0 {
		months = reporting.MonthlyCountsForYear(timestamps, req.Year)
	} else {
		months = reporting.MonthlyCounts(timestamps)
	}

	return &dto.MonthlyReportResponse{
		Entity: req.Entity,
		Year:   req.Year,
		Months: months,
	}, nil
}

func (s *analyticsService) GetSummary(ctx context.Context) (*dto.SummaryResponse, error) {
	customers, err := s.CustomerRepo.Count(ctx, domainCustomer.NewNoLimitCustomerFilter())
	if err != nil {
		return nil, err
	}

	couponsIssued, err := s.CouponRepo.Count(ctx, types.NewNoLimitCouponFilter())
	if err != nil {
		return nil, err
	}

	usedFilter := types.NewNoLimitCouponFilter()
	usedFilter.IsUsed = lo.ToPtr(true)
	couponsUsed, err := s.CouponRepo.Count(ctx, usedFilter)
	if err != nil {
		return nil, err
	}

	assigned, err := s.sumPoints(ctx, types.HistoryTypeAssigned)
	if err != nil {
		return nil, err
	}

	used, err := s.sumPoints(ctx, types.HistoryTypeUsed)
	if err != nil {
		return nil, err
	}

	return &dto.SummaryResponse{
		Customers:      customers,
		CouponsIssued:  couponsIssued,
		CouponsUsed:    couponsUsed,
		PointsAssigned: assigned,
		PointsUsed:     used,
	}, nil
}

func (s *analyticsService) sumPoints(ctx context.Context, historyType types.HistoryType) (int64, error) {
	filter := types.NewNoLimitLedgerFilter()
	filter.HistoryType = lo.ToPtr(historyType)

	entries, err := s.LedgerRepo.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, e := range entries {
		total += e.Coin
	}
	return total, nil
}
